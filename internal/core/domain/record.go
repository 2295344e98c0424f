package domain

import "time"

// OutputStatus describes what a generation run did to one file.
type OutputStatus string

// Output statuses.
const (
	OutputWritten   OutputStatus = "written"
	OutputUnchanged OutputStatus = "unchanged"
	OutputPlanned   OutputStatus = "planned"
)

// GenerationRecord is the persisted outcome of generating one unit.
type GenerationRecord struct {
	// RunID groups records produced by the same run.
	RunID string

	// Source is the markdown path relative to the manifest root.
	Source string

	// Output is the generated file path relative to the output directory.
	Output string

	// Digest is the hex sha256 of the generated file.
	Digest string

	// Status is written or unchanged.
	Status OutputStatus

	// GeneratedAt is when the run processed the unit.
	GeneratedAt time.Time
}

// GeneratedFile is a rendered output and the unit it came from.
type GeneratedFile struct {
	Unit    PlannedUnit
	Content []byte
	Digest  string
	Status  OutputStatus
}

// GenerateReport summarises a generation run.
type GenerateReport struct {
	RunID     string
	DryRun    bool
	Files     []GeneratedFile
	Written   int
	Unchanged int
}

// CheckStatus is the verdict for one generated file.
type CheckStatus string

// Check statuses.
const (
	// CheckOK means the file matches a fresh render.
	CheckOK CheckStatus = "ok"
	// CheckStale means the file parses and round-trips but differs from a fresh render.
	CheckStale CheckStatus = "stale"
	// CheckMissing means the file does not exist.
	CheckMissing CheckStatus = "missing"
	// CheckDrifted means the file's doc comment no longer carries the source text.
	CheckDrifted CheckStatus = "drifted"
)

// CheckResult reports one output file against its source.
type CheckResult struct {
	Output string
	Source string
	Status CheckStatus
	Detail string
}

// OK reports whether the file is up to date.
func (c CheckResult) OK() bool {
	return c.Status == CheckOK
}

// PreviewPage is an HTML rendering of one unit, or the index page.
type PreviewPage struct {
	// Path is the page path relative to the preview directory.
	Path  string
	Title string
	HTML  []byte
}
