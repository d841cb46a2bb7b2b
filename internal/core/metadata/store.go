package metadata

import (
	"context"
	"errors"
	"os"
	"sort"

	"github.com/sprout-cli/sprout/internal/filemanager"
)

// Store reads and writes the registry file. Every mutation is a
// load-modify-save cycle under an advisory file lock with an atomic
// whole-file rewrite, so a crash never leaves a partially written registry.
type Store struct {
	path string
	fm   *filemanager.Manager[Registry]
}

// NewStore creates a store for the registry file at path
func NewStore(path string) *Store {
	return &Store{
		path: path,
		fm:   filemanager.NewManager[Registry](),
	}
}

// Path returns the registry file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the full registry. A missing file is a first run and yields
// an empty registry; a malformed file is a ParseError.
func (s *Store) Load(ctx context.Context) (Registry, error) {
	reg, _, err := s.fm.Read(ctx, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Registry{}, nil
		}
		return nil, s.translate(err)
	}
	if *reg == nil {
		return Registry{}, nil
	}
	return *reg, nil
}

// Get returns the entry registered under name
func (s *Store) Get(ctx context.Context, name string) (*Entry, error) {
	reg, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	entry, ok := reg[name]
	if !ok {
		return nil, ErrNotFound{Name: name}
	}
	return &entry, nil
}

// List returns all entries sorted by name. Display ordering (most recent
// commit first) is the caller's concern, not the store's.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	reg, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(reg))
	for _, entry := range reg {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Insert registers a new entry. The duplicate check runs inside the same
// locked update cycle as the write, so two concurrent inserts of the same
// name cannot both succeed.
func (s *Store) Insert(ctx context.Context, entry Entry) error {
	err := s.fm.Update(ctx, s.path, func(reg *Registry) error {
		if *reg == nil {
			*reg = Registry{}
		}
		if _, ok := (*reg)[entry.Name]; ok {
			return ErrDuplicateName{Name: entry.Name}
		}
		(*reg)[entry.Name] = entry
		return nil
	})
	return s.translate(err)
}

// Remove deletes the entry registered under name and returns it
func (s *Store) Remove(ctx context.Context, name string) (*Entry, error) {
	var removed Entry
	err := s.fm.Update(ctx, s.path, func(reg *Registry) error {
		if *reg == nil {
			return ErrNotFound{Name: name}
		}
		entry, ok := (*reg)[name]
		if !ok {
			return ErrNotFound{Name: name}
		}
		removed = entry
		delete(*reg, name)
		return nil
	})
	if err != nil {
		return nil, s.translate(err)
	}
	return &removed, nil
}

// translate maps filemanager decode failures onto this package's ParseError
func (s *Store) translate(err error) error {
	var decodeErr *filemanager.DecodeError
	if errors.As(err, &decodeErr) {
		return &ParseError{Path: decodeErr.Path, Err: decodeErr.Err}
	}
	return err
}
