package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprout-cli/sprout/internal/tests/helpers"
)

func TestIsGitRepository(t *testing.T) {
	repo := helpers.CreateTestRepo(t)

	assert.True(t, NewOperations(repo).IsGitRepository())
	assert.False(t, NewOperations(t.TempDir()).IsGitRepository())
}

func TestBranchExists(t *testing.T) {
	repo := helpers.CreateTestRepo(t)
	ops := NewOperations(repo)

	exists, err := ops.BranchExists("main")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = ops.BranchExists("no-such-branch")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateAndRemoveWorktree(t *testing.T) {
	repo := helpers.CreateTestRepo(t)
	ops := NewOperations(repo)

	worktreePath := filepath.Join(t.TempDir(), "wt")
	require.NoError(t, ops.CreateWorktree(worktreePath, "sprout/feat-a"))

	_, err := os.Stat(worktreePath)
	require.NoError(t, err)

	exists, err := ops.BranchExists("sprout/feat-a")
	require.NoError(t, err)
	assert.True(t, exists)

	worktrees, err := ops.ListWorktrees()
	require.NoError(t, err)
	require.Len(t, worktrees, 2)
	assert.Equal(t, "sprout/feat-a", worktrees[1].Branch)

	require.NoError(t, ops.RemoveWorktree(worktreePath))
	require.NoError(t, ops.DeleteBranch("sprout/feat-a"))

	_, err = os.Stat(worktreePath)
	assert.True(t, os.IsNotExist(err))
}

func TestCreateWorktree_BranchAlreadyExists(t *testing.T) {
	repo := helpers.CreateTestRepo(t)
	ops := NewOperations(repo)

	first := filepath.Join(t.TempDir(), "first")
	require.NoError(t, ops.CreateWorktree(first, "sprout/dup"))

	second := filepath.Join(t.TempDir(), "second")
	err := ops.CreateWorktree(second, "sprout/dup")

	var existsErr ErrAlreadyExists
	require.ErrorAs(t, err, &existsErr)
}

func TestRemoveWorktree_Failure(t *testing.T) {
	repo := helpers.CreateTestRepo(t)
	ops := NewOperations(repo)

	err := ops.RemoveWorktree(filepath.Join(t.TempDir(), "never-created"))

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.NotEmpty(t, toolErr.Stderr)
}

func TestRepoRoot(t *testing.T) {
	repo := helpers.CreateTestRepo(t)

	root, err := RepoRoot(repo)
	require.NoError(t, err)
	assert.Equal(t, resolvePath(t, repo), resolvePath(t, root))

	_, err = RepoRoot(t.TempDir())
	var notWt ErrNotAWorktree
	require.ErrorAs(t, err, &notWt)
}

func TestLastCommitTime(t *testing.T) {
	repo := helpers.CreateTestRepo(t)

	ts := LastCommitTime(repo)
	assert.Greater(t, ts, int64(0))

	// Outside any repository the timestamp degrades to zero
	assert.Equal(t, int64(0), LastCommitTime(t.TempDir()))
}

func TestParseWorktreeList(t *testing.T) {
	output := []byte("worktree /repos/demo\nHEAD abc123\nbranch refs/heads/main\n\n" +
		"worktree /worktrees/feat-a\nHEAD def456\nbranch refs/heads/sprout/feat-a\n\n")

	worktrees := parseWorktreeList(output)
	require.Len(t, worktrees, 2)
	assert.Equal(t, "/repos/demo", worktrees[0].Path)
	assert.Equal(t, "main", worktrees[0].Branch)
	assert.Equal(t, "abc123", worktrees[0].Commit)
	assert.Equal(t, "sprout/feat-a", worktrees[1].Branch)
}

// resolvePath normalizes symlinked temp dirs (macOS /var -> /private/var)
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}
