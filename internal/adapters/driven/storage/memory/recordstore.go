package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/docsplice/internal/core/domain"
	"github.com/custodia-labs/docsplice/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
type RecordStore struct {
	mu      sync.RWMutex
	records []domain.GenerationRecord
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// SaveRecords appends records.
func (s *RecordStore) SaveRecords(_ context.Context, records []domain.GenerationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

// ListRecords returns records newest first.
func (s *RecordStore) ListRecords(_ context.Context, limit int) ([]domain.GenerationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.records)
	if limit > 0 && limit < n {
		n = limit
	}

	result := make([]domain.GenerationRecord, 0, n)
	for i := len(s.records) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, s.records[i])
	}
	return result, nil
}
