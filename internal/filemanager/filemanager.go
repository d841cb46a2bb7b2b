// Package filemanager provides process-safe JSON file operations for
// sprout's on-disk state. Reads and writes are serialized with advisory
// file locks, writes go through a temp file and an atomic rename, and
// Update retries load-modify-save cycles on concurrent modification.
package filemanager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrConcurrentModification is returned when a file has been modified since it was read
var ErrConcurrentModification = errors.New("file was modified concurrently")

// ErrLockTimeout is returned when acquiring a file lock times out
var ErrLockTimeout = errors.New("timeout acquiring file lock")

// DecodeError is returned when a file exists but its content cannot be decoded.
// Callers translate it into their own parse-error type carrying the file path.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// FileInfo represents metadata about a file used for CAS operations
type FileInfo struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// UpdateFunc is a function that modifies data in-place
type UpdateFunc[T any] func(data *T) error

// Manager provides process-safe JSON file operations with CAS support
type Manager[T any] struct {
	// lockTimeout is the maximum time to wait for a file lock
	lockTimeout time.Duration
}

// NewManager creates a new file manager with default settings
func NewManager[T any]() *Manager[T] {
	return &Manager[T]{
		lockTimeout: 5 * time.Second,
	}
}

// NewManagerWithTimeout creates a new file manager with custom lock timeout
func NewManagerWithTimeout[T any](timeout time.Duration) *Manager[T] {
	return &Manager[T]{
		lockTimeout: timeout,
	}
}

// Read reads a file with a shared lock
func (m *Manager[T]) Read(ctx context.Context, path string) (*T, *FileInfo, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, err
	}

	lock := createLock(path)

	lockCtx, cancel := context.WithTimeout(ctx, m.lockTimeout)
	defer cancel()

	locked, err := lock.TryRLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to acquire read lock: %w", err)
	}
	if !locked {
		return nil, nil, ErrLockTimeout
	}
	defer func() { _ = lock.Unlock() }()

	data, err := readFileWithRetry(path)
	if err != nil {
		return nil, nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	info := &FileInfo{
		Path:    path,
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
	}

	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, nil, &DecodeError{Path: path, Err: err}
	}

	return &result, info, nil
}

// Write writes a file with an exclusive lock (no CAS check)
func (m *Manager[T]) Write(ctx context.Context, path string, data *T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	lock := createLock(path)

	lockCtx, cancel := context.WithTimeout(ctx, m.lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	if !locked {
		return ErrLockTimeout
	}
	defer func() { _ = lock.Unlock() }()

	return m.writeAtomic(path, data)
}

// WriteWithCAS writes a file only if it hasn't changed since the provided FileInfo
func (m *Manager[T]) WriteWithCAS(ctx context.Context, path string, data *T, expectedInfo *FileInfo) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	lock := createLock(path)

	lockCtx, cancel := context.WithTimeout(ctx, m.lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	if !locked {
		return ErrLockTimeout
	}
	defer func() { _ = lock.Unlock() }()

	// Check whether the file changed since it was read
	if expectedInfo != nil {
		stat, err := os.Stat(path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat file: %w", err)
		}

		if err == nil {
			if !stat.ModTime().Equal(expectedInfo.ModTime) || stat.Size() != expectedInfo.Size {
				return ErrConcurrentModification
			}
		}
	}

	return m.writeAtomic(path, data)
}

// writeAtomic marshals data and writes it via temp file + atomic rename.
// Must be called with the exclusive lock held.
func (m *Manager[T]) writeAtomic(path string, data *T) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal json: %w", err)
	}
	jsonData = append(jsonData, '\n')

	// Use a unique temp file name to avoid conflicts on Windows
	tempFile := fmt.Sprintf("%s.%d.%d.tmp", path, os.Getpid(), time.Now().UnixNano())
	if err := os.WriteFile(tempFile, jsonData, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	// Sync to ensure data reaches disk before the rename
	if f, err := os.OpenFile(tempFile, os.O_RDWR, 0o644); err == nil {
		_ = f.Sync()
		_ = f.Close()
	}

	if err := atomicRename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

// Update reads a file, applies an update function, and writes it back with CAS
func (m *Manager[T]) Update(ctx context.Context, path string, updateFunc UpdateFunc[T]) error {
	const maxRetries = 10

	for i := 0; i < maxRetries; i++ {
		data, info, err := m.Read(ctx, path)
		if err != nil {
			if os.IsNotExist(err) {
				// File doesn't exist yet, create it
				var newData T
				if err := updateFunc(&newData); err != nil {
					return err
				}
				if err := m.Write(ctx, path, &newData); err != nil {
					if errors.Is(err, ErrConcurrentModification) {
						continue
					}
					return err
				}
				return nil
			}
			return err
		}

		if err := updateFunc(data); err != nil {
			return err
		}

		if err := m.WriteWithCAS(ctx, path, data, info); err != nil {
			if errors.Is(err, ErrConcurrentModification) {
				continue
			}
			return err
		}

		return nil
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, ErrConcurrentModification)
}
