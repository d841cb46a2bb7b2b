package worktree

import "github.com/sprout-cli/sprout/internal/core/metadata"

// Status reflects whether a registry entry still matches reality on disk
type Status string

const (
	// StatusOK means the worktree directory exists where registered
	StatusOK Status = "ok"
	// StatusDangling means the directory vanished outside sprout; the
	// entry is stale and a candidate for prune
	StatusDangling Status = "dangling"
)

// CreateOptions carries the inputs for creating a worktree
type CreateOptions struct {
	// Name is the worktree name, used as the directory name under the
	// worktrees root and as the registry key
	Name string
	// SourceDir is any directory inside the repository to branch from,
	// normally the caller's working directory
	SourceDir string
}

// Row is a registry entry decorated for display
type Row struct {
	metadata.Entry
	// LastCommit is the unix timestamp of the most recent commit in the
	// worktree, zero when unavailable
	LastCommit int64  `json:"last_commit"`
	Status     Status `json:"status"`
}
