package metadata

import "fmt"

// ErrDuplicateName is returned when inserting an entry whose name is already registered
type ErrDuplicateName struct {
	Name string
}

func (e ErrDuplicateName) Error() string {
	return fmt.Sprintf("worktree name already exists: %s", e.Name)
}

// ErrNotFound is returned when a worktree name is not in the registry
type ErrNotFound struct {
	Name string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("unknown worktree: %s", e.Name)
}

// ParseError is returned when the registry file exists but cannot be parsed
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse metadata file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
