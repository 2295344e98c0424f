package driving

import (
	"context"

	"github.com/custodia-labs/docsplice/internal/core/domain"
)

// GeneratorService turns a manifest into generated Go documentation files.
type GeneratorService interface {
	// Plan resolves manifest entries into units, sorted by output path.
	Plan(ctx context.Context, m *domain.Manifest) ([]domain.PlannedUnit, error)

	// Generate renders every unit and writes the files that changed.
	Generate(ctx context.Context, m *domain.Manifest, opts GenerateOptions) (*domain.GenerateReport, error)

	// Check compares generated files on disk with fresh renders.
	Check(ctx context.Context, m *domain.Manifest) ([]domain.CheckResult, error)

	// Preview renders each unit's markdown to HTML, plus an index page.
	Preview(ctx context.Context, m *domain.Manifest) ([]domain.PreviewPage, error)

	// History returns recent generation records, newest first.
	History(ctx context.Context, limit int) ([]domain.GenerationRecord, error)
}

// GenerateOptions controls a generation run.
type GenerateOptions struct {
	// DryRun renders without writing files or recording history.
	DryRun bool
}
