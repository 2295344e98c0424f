package driven

import (
	"context"

	"github.com/custodia-labs/docsplice/internal/core/domain"
)

// RecordStore persists generation history.
type RecordStore interface {
	// SaveRecords appends the records of one run.
	SaveRecords(ctx context.Context, records []domain.GenerationRecord) error

	// ListRecords returns the most recent records first.
	// A limit of zero or less returns everything.
	ListRecords(ctx context.Context, limit int) ([]domain.GenerationRecord, error)
}
