package worktree

import "fmt"

// ErrInvalidName is returned for names that cannot serve as a directory name
type ErrInvalidName struct {
	Name string
}

func (e ErrInvalidName) Error() string {
	return fmt.Sprintf("invalid worktree name: %q", e.Name)
}

// ErrDangling is returned when a registered worktree's directory has
// vanished outside sprout
type ErrDangling struct {
	Name string
	Path string
}

func (e ErrDangling) Error() string {
	return fmt.Sprintf("worktree %s is dangling: %s no longer exists (run 'sprout prune')", e.Name, e.Path)
}

// ErrNotTracked is returned when base resolution succeeds in git but the
// containing worktree is not in sprout's registry
type ErrNotTracked struct {
	Path string
}

func (e ErrNotTracked) Error() string {
	return fmt.Sprintf("not inside a tracked worktree: %s", e.Path)
}
