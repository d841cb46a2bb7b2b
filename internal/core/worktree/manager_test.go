package worktree

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprout-cli/sprout/internal/core/config"
	"github.com/sprout-cli/sprout/internal/core/git"
	"github.com/sprout-cli/sprout/internal/core/metadata"
	"github.com/sprout-cli/sprout/internal/tests/helpers"
)

func setup(t *testing.T) (*Manager, string) {
	t.Helper()
	repoDir := helpers.CreateTestRepo(t)
	cm := config.NewManager(t.TempDir())
	return NewManager(cm), repoDir
}

func TestManager_Create(t *testing.T) {
	ctx := context.Background()
	mgr, repoDir := setup(t)

	entry, err := mgr.Create(ctx, CreateOptions{Name: "feat-a", SourceDir: repoDir})
	require.NoError(t, err)

	assert.Equal(t, "feat-a", entry.Name)
	assert.Equal(t, "sprout/feat-a", entry.Branch)
	assert.NotEmpty(t, entry.ID)
	assert.NotZero(t, entry.CreatedAt)
	assert.DirExists(t, entry.Path)

	exists, err := git.NewOperations(repoDir).BranchExists("sprout/feat-a")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := mgr.Get(ctx, "feat-a")
	require.NoError(t, err)
	assert.Equal(t, entry.Path, got.Path)
}

func TestManager_Create_CustomPrefix(t *testing.T) {
	ctx := context.Background()
	repoDir := helpers.CreateTestRepo(t)
	cm := config.NewManager(t.TempDir())
	require.NoError(t, cm.Set(config.KeyBranchPrefix, "wip/"))
	mgr := NewManager(cm)

	entry, err := mgr.Create(ctx, CreateOptions{Name: "feat-b", SourceDir: repoDir})
	require.NoError(t, err)
	assert.Equal(t, "wip/feat-b", entry.Branch)
}

func TestManager_Create_EmptyPrefix(t *testing.T) {
	ctx := context.Background()
	repoDir := helpers.CreateTestRepo(t)
	cm := config.NewManager(t.TempDir())
	require.NoError(t, cm.Set(config.KeyBranchPrefix, ""))
	mgr := NewManager(cm)

	entry, err := mgr.Create(ctx, CreateOptions{Name: "feat-c", SourceDir: repoDir})
	require.NoError(t, err)
	assert.Equal(t, "feat-c", entry.Branch)
}

func TestManager_Create_DuplicateName(t *testing.T) {
	ctx := context.Background()
	mgr, repoDir := setup(t)

	_, err := mgr.Create(ctx, CreateOptions{Name: "feat-a", SourceDir: repoDir})
	require.NoError(t, err)

	_, err = mgr.Create(ctx, CreateOptions{Name: "feat-a", SourceDir: repoDir})
	assert.ErrorAs(t, err, &metadata.ErrDuplicateName{})
}

func TestManager_Create_InvalidName(t *testing.T) {
	ctx := context.Background()
	mgr, repoDir := setup(t)

	for _, name := range []string{"", ".", "..", "a/b", `a\b`} {
		_, err := mgr.Create(ctx, CreateOptions{Name: name, SourceDir: repoDir})
		assert.ErrorAs(t, err, &ErrInvalidName{}, "name %q", name)
	}
}

func TestManager_Create_NotARepository(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(config.NewManager(t.TempDir()))

	_, err := mgr.Create(ctx, CreateOptions{Name: "feat-a", SourceDir: t.TempDir()})
	assert.ErrorAs(t, err, &git.ErrNotAWorktree{})
}

func TestManager_Create_BranchCollision(t *testing.T) {
	ctx := context.Background()
	mgr, repoDir := setup(t)

	// A branch that already occupies the name sprout would pick
	cmd := exec.Command("git", "branch", "sprout/feat-a")
	cmd.Dir = repoDir
	require.NoError(t, cmd.Run())

	_, err := mgr.Create(ctx, CreateOptions{Name: "feat-a", SourceDir: repoDir})
	var exists git.ErrAlreadyExists
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, "sprout/feat-a", exists.Target)

	// The collision is caught before the worktree is made, and the failed
	// create must not leave a registry entry behind
	assert.NoDirExists(t, filepath.Join(mgr.config.WorktreesDirPath(), "feat-a"))
	_, err = mgr.Get(ctx, "feat-a")
	assert.ErrorAs(t, err, &metadata.ErrNotFound{})
}

func TestManager_Path(t *testing.T) {
	ctx := context.Background()
	mgr, repoDir := setup(t)

	entry, err := mgr.Create(ctx, CreateOptions{Name: "feat-a", SourceDir: repoDir})
	require.NoError(t, err)

	path, err := mgr.Path(ctx, "feat-a")
	require.NoError(t, err)
	assert.Equal(t, entry.Path, path)
}

func TestManager_Path_NotFound(t *testing.T) {
	ctx := context.Background()
	mgr, _ := setup(t)

	_, err := mgr.Path(ctx, "ghost")
	assert.ErrorAs(t, err, &metadata.ErrNotFound{})
}

func TestManager_Path_Dangling(t *testing.T) {
	ctx := context.Background()
	mgr, repoDir := setup(t)

	entry, err := mgr.Create(ctx, CreateOptions{Name: "feat-a", SourceDir: repoDir})
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(entry.Path))

	_, err = mgr.Path(ctx, "feat-a")
	var dangling ErrDangling
	require.ErrorAs(t, err, &dangling)
	assert.Equal(t, "feat-a", dangling.Name)
	assert.Equal(t, entry.Path, dangling.Path)
}

func TestManager_ResolveBase(t *testing.T) {
	ctx := context.Background()
	mgr, repoDir := setup(t)

	entry, err := mgr.Create(ctx, CreateOptions{Name: "feat-a", SourceDir: repoDir})
	require.NoError(t, err)

	// From the worktree root and from a subdirectory inside it
	sub := filepath.Join(entry.Path, "nested")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	for _, dir := range []string{entry.Path, sub} {
		base, err := mgr.ResolveBase(ctx, dir)
		require.NoError(t, err)
		assert.Equal(t, entry.SourceRepo, base)
	}
}

func TestManager_ResolveBase_Untracked(t *testing.T) {
	ctx := context.Background()
	mgr, repoDir := setup(t)

	// A git repo that sprout does not manage
	_, err := mgr.ResolveBase(ctx, repoDir)
	assert.ErrorAs(t, err, &ErrNotTracked{})
}

func TestManager_ResolveBase_NotARepository(t *testing.T) {
	ctx := context.Background()
	mgr, _ := setup(t)

	_, err := mgr.ResolveBase(ctx, t.TempDir())
	assert.ErrorAs(t, err, &git.ErrNotAWorktree{})
}

func TestManager_List_OrderedByLastCommit(t *testing.T) {
	ctx := context.Background()
	mgr, repoDir := setup(t)

	older, err := mgr.Create(ctx, CreateOptions{Name: "older", SourceDir: repoDir})
	require.NoError(t, err)
	newer, err := mgr.Create(ctx, CreateOptions{Name: "newer", SourceDir: repoDir})
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	helpers.CommitAt(t, older.Path, "a.txt", "a", "older work", base)
	helpers.CommitAt(t, newer.Path, "b.txt", "b", "newer work", base.Add(30*time.Minute))

	rows, err := mgr.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "newer", rows[0].Name)
	assert.Equal(t, "older", rows[1].Name)
	assert.Greater(t, rows[0].LastCommit, rows[1].LastCommit)
	assert.Equal(t, StatusOK, rows[0].Status)
}

func TestManager_List_DanglingSortsLast(t *testing.T) {
	ctx := context.Background()
	mgr, repoDir := setup(t)

	_, err := mgr.Create(ctx, CreateOptions{Name: "alive", SourceDir: repoDir})
	require.NoError(t, err)
	gone, err := mgr.Create(ctx, CreateOptions{Name: "gone", SourceDir: repoDir})
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(gone.Path))

	rows, err := mgr.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "alive", rows[0].Name)
	assert.Equal(t, "gone", rows[1].Name)
	assert.Equal(t, StatusDangling, rows[1].Status)
	assert.Zero(t, rows[1].LastCommit)
}

func TestManager_List_Empty(t *testing.T) {
	ctx := context.Background()
	mgr, _ := setup(t)

	rows, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestManager_Remove(t *testing.T) {
	ctx := context.Background()
	mgr, repoDir := setup(t)

	entry, err := mgr.Create(ctx, CreateOptions{Name: "feat-a", SourceDir: repoDir})
	require.NoError(t, err)

	require.NoError(t, mgr.Remove(ctx, "feat-a"))

	assert.NoDirExists(t, entry.Path)

	exists, err := git.NewOperations(repoDir).BranchExists(entry.Branch)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = mgr.Get(ctx, "feat-a")
	assert.ErrorAs(t, err, &metadata.ErrNotFound{})
}

func TestManager_Remove_NotFound(t *testing.T) {
	ctx := context.Background()
	mgr, _ := setup(t)

	err := mgr.Remove(ctx, "ghost")
	assert.ErrorAs(t, err, &metadata.ErrNotFound{})
}

func TestManager_Remove_DanglingEntry(t *testing.T) {
	ctx := context.Background()
	mgr, repoDir := setup(t)

	entry, err := mgr.Create(ctx, CreateOptions{Name: "feat-a", SourceDir: repoDir})
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(entry.Path))

	require.NoError(t, mgr.Remove(ctx, "feat-a"))

	_, err = mgr.Get(ctx, "feat-a")
	assert.ErrorAs(t, err, &metadata.ErrNotFound{})

	// The stale backend record is pruned along with the registry entry
	worktrees, err := git.NewOperations(repoDir).ListWorktrees()
	require.NoError(t, err)
	for _, wt := range worktrees {
		assert.NotEqual(t, entry.Path, wt.Path)
	}
}

func TestManager_Prune(t *testing.T) {
	ctx := context.Background()
	mgr, repoDir := setup(t)

	alive, err := mgr.Create(ctx, CreateOptions{Name: "alive", SourceDir: repoDir})
	require.NoError(t, err)
	gone, err := mgr.Create(ctx, CreateOptions{Name: "gone", SourceDir: repoDir})
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(gone.Path))

	// Dry run reports but keeps the entry
	stale, err := mgr.Prune(ctx, true)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "gone", stale[0].Name)

	_, err = mgr.Get(ctx, "gone")
	require.NoError(t, err)

	// Real run drops it and leaves the live entry alone
	stale, err = mgr.Prune(ctx, false)
	require.NoError(t, err)
	require.Len(t, stale, 1)

	_, err = mgr.Get(ctx, "gone")
	assert.ErrorAs(t, err, &metadata.ErrNotFound{})

	got, err := mgr.Get(ctx, "alive")
	require.NoError(t, err)
	assert.Equal(t, alive.Path, got.Path)
}
