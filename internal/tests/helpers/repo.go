// Package helpers provides shared test fixtures.
package helpers

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

// CreateTestRepo creates a temporary git repository with one commit
func CreateTestRepo(t *testing.T) string {
	t.Helper()

	// Clear git environment variables for test isolation
	origGitDir := os.Getenv("GIT_DIR")
	origGitWorkTree := os.Getenv("GIT_WORK_TREE")
	origGitIndexFile := os.Getenv("GIT_INDEX_FILE")

	os.Unsetenv("GIT_DIR")
	os.Unsetenv("GIT_WORK_TREE")
	os.Unsetenv("GIT_INDEX_FILE")

	t.Cleanup(func() {
		if origGitDir != "" {
			os.Setenv("GIT_DIR", origGitDir)
		}
		if origGitWorkTree != "" {
			os.Setenv("GIT_WORK_TREE", origGitWorkTree)
		}
		if origGitIndexFile != "" {
			os.Setenv("GIT_INDEX_FILE", origGitIndexFile)
		}
	})

	// Create the repo in the system temp dir so it is not nested inside
	// any existing repository
	tmpDir, err := os.MkdirTemp(os.TempDir(), "sprout-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = tmpDir
		if output, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v, output: %s", args, err, output)
		}
	}

	cmd := exec.Command("git", "init", "--initial-branch=main")
	cmd.Dir = tmpDir
	if err := cmd.Run(); err != nil {
		// Fallback for older git versions
		run("init")
	}

	run("config", "user.email", "test@example.com")
	run("config", "user.name", "Test User")

	readmePath := filepath.Join(tmpDir, "README.md")
	if err := os.WriteFile(readmePath, []byte("# Test Repository\n"), 0o644); err != nil {
		t.Fatalf("Failed to create README: %v", err)
	}

	run("add", "README.md")
	run("commit", "-m", "Initial commit")

	return tmpDir
}

// Commit adds a file with the given content and commits it in repoDir
func Commit(t *testing.T, repoDir, file, content, message string) {
	t.Helper()
	CommitAt(t, repoDir, file, content, message, time.Time{})
}

// CommitAt is Commit with a fixed commit timestamp, for tests that depend
// on commit ordering. A zero time uses the current clock.
func CommitAt(t *testing.T, repoDir, file, content, message string, when time.Time) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(repoDir, file), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", file, err)
	}

	for _, args := range [][]string{
		{"add", file},
		{"commit", "-m", message},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = repoDir
		if !when.IsZero() {
			stamp := when.Format(time.RFC3339)
			cmd.Env = append(os.Environ(),
				"GIT_AUTHOR_DATE="+stamp,
				"GIT_COMMITTER_DATE="+stamp,
			)
		}
		if output, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v, output: %s", args, err, output)
		}
	}
}
