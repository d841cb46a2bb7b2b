// Package metadata provides the persistent registry mapping worktree names
// to their filesystem and repository details. The registry is a single JSON
// file owned by this package; the git worktree state it mirrors lives with
// git itself, so the two can drift and callers reconcile on read.
package metadata

// Entry is one registered worktree.
type Entry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Path       string `json:"path"`
	SourceRepo string `json:"source_repo"`
	Branch     string `json:"branch"`
	CreatedAt  int64  `json:"created_at"`
}

// Registry maps worktree names to entries. Names are globally unique,
// not scoped per source repository.
type Registry map[string]Entry
