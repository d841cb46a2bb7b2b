// Package worktree orchestrates the registry, the configuration, and the
// git backend into sprout's lifecycle operations: create, remove, list,
// base resolution, and reconciliation of entries whose directories vanished.
package worktree

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sprout-cli/sprout/internal/core/config"
	"github.com/sprout-cli/sprout/internal/core/git"
	"github.com/sprout-cli/sprout/internal/core/logger"
	"github.com/sprout-cli/sprout/internal/core/metadata"
)

// Manager coordinates worktree lifecycle operations
type Manager struct {
	config *config.Manager
	store  *metadata.Store
	log    logger.Logger
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithLogger sets the logger used by the manager
func WithLogger(log logger.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// NewManager creates a manager rooted at the given configuration
func NewManager(cm *config.Manager, opts ...ManagerOption) *Manager {
	m := &Manager{
		config: cm,
		store:  metadata.NewStore(cm.MetadataPath()),
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create makes a new worktree under the worktrees root on a fresh branch
// and registers it. The branch name is the configured prefix plus the
// worktree name. On registry save failure the worktree and branch are
// rolled back so the backend and the registry stay consistent.
func (m *Manager) Create(ctx context.Context, opts CreateOptions) (*metadata.Entry, error) {
	if err := validateName(opts.Name); err != nil {
		return nil, err
	}

	sourceRepo, err := git.RepoRoot(opts.SourceDir)
	if err != nil {
		return nil, err
	}
	sourceRepo = canonicalPath(sourceRepo)

	ops := git.NewOperations(sourceRepo)
	if !ops.IsGitRepository() {
		return nil, git.ErrNotAWorktree{Path: sourceRepo}
	}

	// Fail before touching git; the registry key is the name, so a second
	// create with the same name must not leave an orphan worktree behind.
	if _, err := m.store.Get(ctx, opts.Name); err == nil {
		return nil, metadata.ErrDuplicateName{Name: opts.Name}
	} else if !errors.As(err, &metadata.ErrNotFound{}) {
		return nil, err
	}

	cfg, err := m.config.Load()
	if err != nil {
		return nil, err
	}
	branch := cfg.BranchPrefixValue() + opts.Name

	exists, err := ops.BranchExists(branch)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, git.ErrAlreadyExists{Target: branch}
	}

	if err := os.MkdirAll(m.config.WorktreesDirPath(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create worktrees directory: %w", err)
	}
	worktreePath := filepath.Join(m.config.WorktreesDirPath(), opts.Name)

	if err := ops.CreateWorktree(worktreePath, branch); err != nil {
		return nil, err
	}

	entry := metadata.Entry{
		ID:         uuid.New().String(),
		Name:       opts.Name,
		Path:       canonicalPath(worktreePath),
		SourceRepo: sourceRepo,
		Branch:     branch,
		CreatedAt:  time.Now().Unix(),
	}

	if err := m.store.Insert(ctx, entry); err != nil {
		m.log.Warn("rolling back worktree after registry failure",
			"name", opts.Name, "path", worktreePath)
		if rmErr := ops.RemoveWorktree(worktreePath); rmErr != nil {
			m.log.Error("rollback failed to remove worktree",
				"path", worktreePath, "error", rmErr)
		}
		if brErr := ops.DeleteBranch(branch); brErr != nil {
			m.log.Error("rollback failed to delete branch",
				"branch", branch, "error", brErr)
		}
		return nil, err
	}

	m.log.Debug("worktree created",
		"name", entry.Name, "path", entry.Path, "branch", entry.Branch)
	return &entry, nil
}

// Get returns the registry entry for name
func (m *Manager) Get(ctx context.Context, name string) (*metadata.Entry, error) {
	return m.store.Get(ctx, name)
}

// Path returns the directory of the named worktree, verifying it still
// exists on disk. A registered worktree whose directory vanished is
// reported as dangling rather than handing the caller a dead path.
func (m *Manager) Path(ctx context.Context, name string) (string, error) {
	entry, err := m.store.Get(ctx, name)
	if err != nil {
		return "", err
	}
	if !dirExists(entry.Path) {
		return "", ErrDangling{Name: name, Path: entry.Path}
	}
	return entry.Path, nil
}

// ResolveBase returns the source repository root for the tracked worktree
// containing dir
func (m *Manager) ResolveBase(ctx context.Context, dir string) (string, error) {
	root, err := git.RepoRoot(dir)
	if err != nil {
		return "", err
	}
	root = canonicalPath(root)

	entries, err := m.store.List(ctx)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if canonicalPath(entry.Path) == root {
			return entry.SourceRepo, nil
		}
	}
	return "", ErrNotTracked{Path: root}
}

// List returns all registered worktrees decorated with last-commit time
// and liveness status, most recently committed first. Entries whose
// directories vanished sort last and never fail the listing.
func (m *Manager) List(ctx context.Context) ([]Row, error) {
	entries, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(entries))
	for _, entry := range entries {
		row := Row{Entry: entry, Status: StatusOK}
		if dirExists(entry.Path) {
			row.LastCommit = git.LastCommitTime(entry.Path)
		} else {
			row.Status = StatusDangling
		}
		rows = append(rows, row)
	}

	// Entries load name-sorted, so ties keep a deterministic order
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].LastCommit > rows[j].LastCommit
	})
	return rows, nil
}

// Remove deletes the named worktree, its branch, and its registry entry.
// When the directory is already gone the backend records are pruned
// instead, so dangling entries can still be deleted.
func (m *Manager) Remove(ctx context.Context, name string) error {
	entry, err := m.store.Get(ctx, name)
	if err != nil {
		return err
	}

	ops := git.NewOperations(entry.SourceRepo)
	if dirExists(entry.Path) {
		if err := ops.RemoveWorktree(entry.Path); err != nil {
			return err
		}
	} else {
		m.log.Info("worktree directory already gone, pruning backend records",
			"name", name, "path", entry.Path)
		if hasWorktreeRecord(ops, entry.Path) {
			if err := ops.PruneWorktrees(); err != nil {
				m.log.Warn("failed to prune worktree records", "error", err)
			}
		}
	}

	if err := ops.DeleteBranch(entry.Branch); err != nil {
		if !branchGone(err) {
			return err
		}
		m.log.Debug("branch already deleted", "branch", entry.Branch)
	}

	if _, err := m.store.Remove(ctx, name); err != nil {
		return err
	}

	m.log.Debug("worktree removed", "name", name, "path", entry.Path)
	return nil
}

// Prune drops registry entries whose directories no longer exist and
// returns them. With dryRun the stale entries are only reported.
func (m *Manager) Prune(ctx context.Context, dryRun bool) ([]metadata.Entry, error) {
	entries, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}

	var stale []metadata.Entry
	pruned := map[string]bool{}
	for _, entry := range entries {
		if dirExists(entry.Path) {
			continue
		}
		stale = append(stale, entry)
		if dryRun {
			continue
		}

		if !pruned[entry.SourceRepo] {
			pruned[entry.SourceRepo] = true
			if err := git.NewOperations(entry.SourceRepo).PruneWorktrees(); err != nil {
				m.log.Warn("failed to prune worktree records",
					"repo", entry.SourceRepo, "error", err)
			}
		}
		if _, err := m.store.Remove(ctx, entry.Name); err != nil {
			return stale, err
		}
		m.log.Debug("pruned dangling entry", "name", entry.Name, "path", entry.Path)
	}
	return stale, nil
}

// validateName rejects names that cannot serve as a single directory name
func validateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidName{Name: name}
	}
	if strings.ContainsAny(name, `/\`) {
		return ErrInvalidName{Name: name}
	}
	return nil
}

// hasWorktreeRecord reports whether git still lists a worktree at path.
// When the listing itself fails, assume a stale record so the prune runs.
func hasWorktreeRecord(ops *git.Operations, path string) bool {
	worktrees, err := ops.ListWorktrees()
	if err != nil {
		return true
	}
	for _, wt := range worktrees {
		if wt.Path == path || canonicalPath(wt.Path) == path {
			return true
		}
	}
	return false
}

// branchGone reports whether a branch deletion failed only because the
// branch no longer exists
func branchGone(err error) bool {
	var toolErr *git.ToolError
	return errors.As(err, &toolErr) && strings.Contains(toolErr.Stderr, "not found")
}

// canonicalPath resolves symlinks so path comparisons survive setups like
// macOS /tmp -> /private/tmp
func canonicalPath(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
