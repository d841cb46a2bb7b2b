//go:build windows

package filemanager

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// createLock creates a file lock for the given path.
// On Windows, a separate lock file avoids conflicts with rename operations.
func createLock(path string) *flock.Flock {
	lockPath := path + ".lock"

	// Ensure the directory exists for the lock file
	_ = os.MkdirAll(filepath.Dir(lockPath), 0o755)

	return flock.New(lockPath)
}
