package git

// WorktreeInfo describes one worktree as reported by git
type WorktreeInfo struct {
	Path   string
	Branch string
	Commit string
}
