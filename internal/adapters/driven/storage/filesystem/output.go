package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/custodia-labs/docsplice/internal/core/domain"
	"github.com/custodia-labs/docsplice/internal/core/ports/driven"
)

// Ensure OutputStore implements the interface.
var _ driven.OutputStore = (*OutputStore)(nil)

// OutputStore writes generated files beneath a root directory.
type OutputStore struct {
	root string
}

// NewOutputStore creates an output store rooted at root.
// The directory is created on first write.
func NewOutputStore(root string) *OutputStore {
	return &OutputStore{root: root}
}

// Root returns the output directory.
func (s *OutputStore) Root() string {
	return s.root
}

// ReadOutput returns the contents of p.
func (s *OutputStore) ReadOutput(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	full, err := s.resolve(p)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("output %s: %w", p, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("reading output %s: %w", p, err)
	}
	return data, nil
}

// WriteOutput atomically replaces p with data.
func (s *OutputStore) WriteOutput(ctx context.Context, p string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	full, err := s.resolve(p)
	if err != nil {
		return err
	}

	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".docsplice-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", p, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", p, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions on %s: %w", p, err)
	}
	if err := os.Rename(tmpName, full); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", p, err)
	}
	return nil
}

func (s *OutputStore) resolve(p string) (string, error) {
	clean := path.Clean(p)
	if !fs.ValidPath(clean) || clean == "." {
		return "", fmt.Errorf("%w: output path %q", domain.ErrInvalidInput, p)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}
