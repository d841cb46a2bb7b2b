//go:build !windows

package filemanager

import "github.com/gofrs/flock"

// createLock creates a file lock for the given path.
// On Unix systems the data file itself can be locked.
func createLock(path string) *flock.Flock {
	return flock.New(path)
}
