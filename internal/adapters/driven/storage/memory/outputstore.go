package memory

import (
	"context"
	"fmt"
	"path"
	"sort"
	"sync"

	"github.com/custodia-labs/docsplice/internal/core/domain"
	"github.com/custodia-labs/docsplice/internal/core/ports/driven"
)

// Ensure OutputStore implements the interface.
var _ driven.OutputStore = (*OutputStore)(nil)

// OutputStore is an in-memory implementation of driven.OutputStore.
type OutputStore struct {
	mu     sync.RWMutex
	files  map[string][]byte
	writes int
}

// NewOutputStore creates a new in-memory output store.
func NewOutputStore() *OutputStore {
	return &OutputStore{
		files: make(map[string][]byte),
	}
}

// ReadOutput returns a copy of the stored file.
func (s *OutputStore) ReadOutput(_ context.Context, p string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[path.Clean(p)]
	if !ok {
		return nil, fmt.Errorf("output %s: %w", p, domain.ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

// WriteOutput stores a copy of data.
func (s *OutputStore) WriteOutput(_ context.Context, p string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path.Clean(p)] = append([]byte(nil), data...)
	s.writes++
	return nil
}

// Paths returns stored paths, sorted.
func (s *OutputStore) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Writes returns how many times WriteOutput was called.
func (s *OutputStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
