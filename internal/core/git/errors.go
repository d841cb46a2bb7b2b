package git

import (
	"fmt"
	"strings"
)

// ErrAlreadyExists is returned when git reports the target branch or
// worktree path already exists
type ErrAlreadyExists struct {
	Target string
}

func (e ErrAlreadyExists) Error() string {
	return fmt.Sprintf("already exists: %s", e.Target)
}

// ErrNotAWorktree is returned when a git query runs outside any worktree
type ErrNotAWorktree struct {
	Path string
}

func (e ErrNotAWorktree) Error() string {
	return fmt.Sprintf("not inside a git worktree: %s", e.Path)
}

// ToolError carries a failed git invocation with its stderr verbatim
type ToolError struct {
	Args   []string
	Stderr string
}

func (e *ToolError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = "exited with non-zero status"
	}
	return fmt.Sprintf("git %s: %s", strings.Join(e.Args, " "), msg)
}
