// Package testutil provides test doubles and fixtures for the editor.
package testutil

import (
	"errors"
	"maps"
	"slices"
	"sync"
)

// ErrNotFound is returned by MemStore.Load when a path has no content and
// the store was created without CreateMissing.
var ErrNotFound = errors.New("not found")

// MemStore is an in-memory document store. It records every call.
type MemStore struct {
	mu sync.Mutex

	files         map[string][]string
	createMissing bool

	// LoadErr and SaveErr, when set, are returned by the next calls.
	LoadErr error
	SaveErr error

	Loads int
	Saves int
}

// NewMemStore creates a store holding a copy of files.
// Missing paths load as empty documents, matching the real file store.
func NewMemStore(files map[string][]string) *MemStore {
	s := &MemStore{files: make(map[string][]string), createMissing: true}
	for path, lines := range files {
		s.files[path] = slices.Clone(lines)
	}
	return s
}

// Strict makes Load fail for paths the store does not know.
func (s *MemStore) Strict() *MemStore {
	s.createMissing = false
	return s
}

// Load returns the lines stored for path.
func (s *MemStore) Load(path string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Loads++
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	lines, ok := s.files[path]
	if !ok {
		if !s.createMissing {
			return nil, ErrNotFound
		}
		s.files[path] = nil
	}
	return slices.Clone(lines), nil
}

// Save stores lines for path.
func (s *MemStore) Save(path string, lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Saves++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.files[path] = slices.Clone(lines)
	return nil
}

// Lines returns the stored content of path.
func (s *MemStore) Lines(path string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.files[path])
}

// Put replaces the stored content of path, simulating an external edit.
func (s *MemStore) Put(path string, lines []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = slices.Clone(lines)
}

// Paths returns every known path.
func (s *MemStore) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.files))
}
