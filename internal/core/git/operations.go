// Package git wraps the git invocations sprout depends on. Worktree and
// branch mutations shell out to the git binary (go-git's worktree support
// is incomplete); repository detection and branch lookups use go-git.
// This is the only package that runs the external tool.
package git

import (
	"bytes"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Operations provides git operations against one source repository
type Operations struct {
	repoPath string
}

// NewOperations creates a git operations instance bound to repoPath
func NewOperations(repoPath string) *Operations {
	return &Operations{
		repoPath: repoPath,
	}
}

// IsGitRepository checks whether the bound path is inside a git repository
func (o *Operations) IsGitRepository() bool {
	_, err := gogit.PlainOpenWithOptions(o.repoPath, &gogit.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

// BranchExists reports whether a local branch exists in the repository
func (o *Operations) BranchExists(branch string) (bool, error) {
	repo, err := gogit.PlainOpenWithOptions(o.repoPath, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return false, err
	}

	_, err = repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err == plumbing.ErrReferenceNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateWorktree creates a worktree at path on a new branch
func (o *Operations) CreateWorktree(path, branch string) error {
	err := o.run("worktree", "add", "-b", branch, path)
	if err == nil {
		return nil
	}

	var toolErr *ToolError
	if errors.As(err, &toolErr) && strings.Contains(toolErr.Stderr, "already exists") {
		return ErrAlreadyExists{Target: branch}
	}
	return err
}

// RemoveWorktree removes the worktree at path
func (o *Operations) RemoveWorktree(path string) error {
	return o.run("worktree", "remove", "--force", path)
}

// PruneWorktrees drops worktree records whose directories are gone
func (o *Operations) PruneWorktrees() error {
	return o.run("worktree", "prune")
}

// DeleteBranch force-deletes a branch
func (o *Operations) DeleteBranch(branch string) error {
	return o.run("branch", "-D", branch)
}

// ListWorktrees lists all worktrees attached to the repository
func (o *Operations) ListWorktrees() ([]*WorktreeInfo, error) {
	out, err := o.output("worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parseWorktreeList(out), nil
}

func (o *Operations) run(args ...string) error {
	_, err := runGit(o.repoPath, args...)
	return err
}

func (o *Operations) output(args ...string) ([]byte, error) {
	return runGit(o.repoPath, args...)
}

// RepoRoot returns the top-level directory of the worktree containing dir
func RepoRoot(dir string) (string, error) {
	out, err := runGit(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", ErrNotAWorktree{Path: dir}
	}
	return strings.TrimSpace(string(out)), nil
}

// LastCommitTime returns the unix timestamp of the most recent commit in
// the worktree at path, or zero when there is none. Only used for sorting.
func LastCommitTime(path string) int64 {
	out, err := runGit(path, "log", "-1", "--format=%ct")
	if err != nil {
		return 0
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return 0
	}
	return ts
}

// runGit executes git with -C dir and returns stdout. A non-zero exit
// becomes a ToolError carrying stderr verbatim.
func runGit(dir string, args ...string) ([]byte, error) {
	cmdArgs := append([]string{"-C", dir}, args...)
	cmd := exec.Command("git", cmdArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &ToolError{Args: args, Stderr: stderr.String()}
	}
	return stdout.Bytes(), nil
}

// parseWorktreeList parses the output of 'git worktree list --porcelain'
func parseWorktreeList(output []byte) []*WorktreeInfo {
	var worktrees []*WorktreeInfo
	lines := bytes.Split(output, []byte("\n"))

	var current *WorktreeInfo
	for _, line := range lines {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			if current != nil {
				worktrees = append(worktrees, current)
				current = nil
			}
			continue
		}

		parts := bytes.SplitN(line, []byte(" "), 2)
		if len(parts) != 2 {
			continue
		}

		key := string(parts[0])
		value := string(parts[1])

		switch key {
		case "worktree":
			current = &WorktreeInfo{Path: value}
		case "branch":
			if current != nil {
				current.Branch = strings.TrimPrefix(value, "refs/heads/")
			}
		case "HEAD":
			if current != nil {
				current.Commit = value
			}
		}
	}

	if current != nil {
		worktrees = append(worktrees, current)
	}

	return worktrees
}
