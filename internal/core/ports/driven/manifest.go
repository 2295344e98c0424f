package driven

import "github.com/custodia-labs/docsplice/internal/core/domain"

// ManifestStore loads and saves the generation manifest.
// Implementations handle persistence (e.g., TOML files).
type ManifestStore interface {
	// Load reads the manifest and applies defaults.
	// Returns domain.ErrNotFound if no manifest exists.
	Load() (*domain.Manifest, error)

	// Save writes the manifest.
	Save(m *domain.Manifest) error

	// Path returns the manifest location.
	Path() string

	// Dir returns the directory manifest paths resolve against.
	Dir() string
}
