package file

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/docsplice/internal/core/domain"
	"github.com/custodia-labs/docsplice/internal/core/ports/driven"
)

// DefaultManifestName is used when no manifest path is given.
const DefaultManifestName = "docsplice.toml"

// Ensure ManifestStore implements the interface.
var _ driven.ManifestStore = (*ManifestStore)(nil)

// ManifestStore is a file-based implementation of driven.ManifestStore using TOML.
type ManifestStore struct {
	mu       sync.RWMutex
	filePath string
}

// NewManifestStore creates a manifest store for filePath.
// If filePath is empty, defaults to docsplice.toml in the working directory.
func NewManifestStore(filePath string) *ManifestStore {
	if filePath == "" {
		filePath = DefaultManifestName
	}
	return &ManifestStore{filePath: filePath}
}

// Load reads, defaults and validates the manifest.
// Unknown keys are rejected so typos in entry fields surface immediately.
func (s *ManifestStore) Load() (*domain.Manifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("manifest %s: %w", s.filePath, domain.ErrNotFound)
		}
		return nil, err
	}

	var m domain.Manifest
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", domain.ErrInvalidManifest, s.filePath, describeDecodeError(err))
	}

	m.ApplyDefaults()
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", s.filePath, err)
	}
	return &m, nil
}

// Save writes the manifest, creating the parent directory if needed.
func (s *ManifestStore) Save(m *domain.Manifest) error {
	if m == nil {
		return fmt.Errorf("%w: nil manifest", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(m)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0o644)
}

// Path returns the manifest file path.
func (s *ManifestStore) Path() string {
	return s.filePath
}

// Dir returns the directory manifest paths are relative to.
func (s *ManifestStore) Dir() string {
	return filepath.Dir(s.filePath)
}

// StarterManifest returns the manifest written by `docsplice init`.
func StarterManifest() *domain.Manifest {
	return &domain.Manifest{
		Generator: domain.GeneratorSettings{
			Root:    ".",
			Out:     ".",
			Header:  domain.DefaultHeader,
			History: ".docsplice/history.db",
		},
		Units: []domain.Entry{
			{Source: "README.md", Package: "docs"},
			{Pattern: "posts/*.md", Package: "docs/{{stem}}"},
		},
	}
}

func describeDecodeError(err error) string {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Sprintf("line %d, column %d: %s", row, col, decodeErr.Error())
	}
	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) {
		return strictErr.String()
	}
	return err.Error()
}
