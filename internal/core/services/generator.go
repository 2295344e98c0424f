package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docsplice/internal/core/domain"
	"github.com/custodia-labs/docsplice/internal/core/ports/driven"
	"github.com/custodia-labs/docsplice/internal/core/ports/driving"
	"github.com/custodia-labs/docsplice/internal/logger"
	"github.com/custodia-labs/docsplice/internal/splice"
)

// Ensure GeneratorService implements the interface.
var _ driving.GeneratorService = (*GeneratorService)(nil)

// GeneratorService resolves manifests and writes generated documentation.
type GeneratorService struct {
	source     driven.SourceReader
	outputs    driven.OutputStore
	normaliser driven.Normaliser
	records    driven.RecordStore  // optional
	renderer   driven.HTMLRenderer // optional

	now      func() time.Time
	newRunID func() string
}

// NewGeneratorService creates a generator service.
// records and renderer may be nil.
func NewGeneratorService(
	source driven.SourceReader,
	outputs driven.OutputStore,
	normaliser driven.Normaliser,
	records driven.RecordStore,
	renderer driven.HTMLRenderer,
) *GeneratorService {
	return &GeneratorService{
		source:     source,
		outputs:    outputs,
		normaliser: normaliser,
		records:    records,
		renderer:   renderer,
		now:        time.Now,
		newRunID:   uuid.NewString,
	}
}

// Generate renders every planned unit and writes the files whose contents
// changed. All units are rendered before anything is written, so a bad
// entry leaves the output tree untouched.
func (s *GeneratorService) Generate(
	ctx context.Context, m *domain.Manifest, opts driving.GenerateOptions,
) (*domain.GenerateReport, error) {
	units, err := s.Plan(ctx, m)
	if err != nil {
		return nil, err
	}

	files := make([]domain.GeneratedFile, 0, len(units))
	for i := range units {
		content, err := render(m, &units[i])
		if err != nil {
			return nil, err
		}
		files = append(files, domain.GeneratedFile{
			Unit:    units[i],
			Content: content,
			Digest:  digest(content),
		})
	}

	report := &domain.GenerateReport{
		RunID:  s.newRunID(),
		DryRun: opts.DryRun,
	}

	logger.Section("Generate")
	for i := range files {
		f := &files[i]

		existing, err := s.outputs.ReadOutput(ctx, f.Unit.Output)
		switch {
		case err == nil && bytes.Equal(existing, f.Content):
			f.Status = domain.OutputUnchanged
			report.Unchanged++
			logger.Debug("unchanged %s", f.Unit.Output)
			continue
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}

		if opts.DryRun {
			f.Status = domain.OutputPlanned
			report.Written++
			logger.Debug("would write %s", f.Unit.Output)
			continue
		}

		if err := s.outputs.WriteOutput(ctx, f.Unit.Output, f.Content); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.Unit.Output, err)
		}
		f.Status = domain.OutputWritten
		report.Written++
		logger.Info("wrote %s from %s", f.Unit.Output, f.Unit.Source)
	}
	report.Files = files

	if !opts.DryRun {
		s.record(ctx, report)
	}
	return report, nil
}

// record saves history. Failures are logged, not returned: the files are
// already written and history is optional.
func (s *GeneratorService) record(ctx context.Context, report *domain.GenerateReport) {
	if s.records == nil || len(report.Files) == 0 {
		return
	}

	at := s.now()
	records := make([]domain.GenerationRecord, 0, len(report.Files))
	for i := range report.Files {
		f := &report.Files[i]
		records = append(records, domain.GenerationRecord{
			RunID:       report.RunID,
			Source:      f.Unit.Source,
			Output:      f.Unit.Output,
			Digest:      f.Digest,
			Status:      f.Status,
			GeneratedAt: at,
		})
	}

	if err := s.records.SaveRecords(ctx, records); err != nil {
		logger.Warn("recording history for run %s: %v", report.RunID, err)
	}
}

// Check compares each output with a fresh render.
func (s *GeneratorService) Check(ctx context.Context, m *domain.Manifest) ([]domain.CheckResult, error) {
	units, err := s.Plan(ctx, m)
	if err != nil {
		return nil, err
	}

	results := make([]domain.CheckResult, 0, len(units))
	for i := range units {
		pu := &units[i]
		want, err := render(m, pu)
		if err != nil {
			return nil, err
		}

		result := domain.CheckResult{Output: pu.Output, Source: pu.Source}
		have, err := s.outputs.ReadOutput(ctx, pu.Output)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			result.Status = domain.CheckMissing
		case err != nil:
			return nil, err
		case bytes.Equal(have, want):
			result.Status = domain.CheckOK
		default:
			result.Status, result.Detail = classify(have, pu)
		}

		logger.Debug("check %s: %s", pu.Output, result.Status)
		results = append(results, result)
	}
	return results, nil
}

// classify distinguishes a file whose doc comment still carries the source
// text from one that no longer does.
func classify(have []byte, pu *domain.PlannedUnit) (domain.CheckStatus, string) {
	ex, err := splice.Extract(have)
	if err != nil {
		return domain.CheckDrifted, err.Error()
	}
	if ex.Unit.Text != pu.Unit.Text {
		return domain.CheckDrifted, "doc comment no longer matches " + pu.Source
	}
	if ex.Unit.Standalone() != pu.Unit.Standalone() {
		return domain.CheckStale, "documented declaration changed form"
	}
	return domain.CheckStale, "file differs from a fresh render"
}

// History returns recent generation records.
func (s *GeneratorService) History(ctx context.Context, limit int) ([]domain.GenerationRecord, error) {
	if s.records == nil {
		return nil, fmt.Errorf("history: %w", domain.ErrNotConfigured)
	}
	return s.records.ListRecords(ctx, limit)
}

func render(m *domain.Manifest, pu *domain.PlannedUnit) ([]byte, error) {
	content, err := splice.Render(splice.RenderParams{
		Header:  m.Generator.Header,
		Package: pu.PackageName,
		Unit:    pu.Unit,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", pu.Output, err)
	}
	return content, nil
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
