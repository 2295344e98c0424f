package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/custodia-labs/docsplice/internal/core/domain"
	"github.com/custodia-labs/docsplice/internal/core/ports/driven"
	"github.com/custodia-labs/docsplice/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.SourceReader = (*Source)(nil)

// Source reads markdown files beneath a root directory.
type Source struct {
	rootPath string
	fsys     fs.FS
}

// New creates a source rooted at rootPath.
func New(rootPath string) *Source {
	return &Source{
		rootPath: rootPath,
		fsys:     os.DirFS(rootPath),
	}
}

// NewFromFS creates a source over an existing filesystem, e.g. fstest.MapFS.
func NewFromFS(fsys fs.FS) *Source {
	return &Source{fsys: fsys}
}

// Root returns the root directory, empty for NewFromFS sources.
func (s *Source) Root() string {
	return s.rootPath
}

// ReadSource returns the contents of p, relative to the root.
func (s *Source) ReadSource(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean := path.Clean(p)
	if !fs.ValidPath(clean) {
		return nil, fmt.Errorf("%w: source path %q", domain.ErrInvalidInput, p)
	}

	data, err := fs.ReadFile(s.fsys, clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("source %s: %w", clean, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("reading source %s: %w", clean, err)
	}

	logger.Debug("read source %s (%d bytes)", clean, len(data))
	return data, nil
}

// Glob returns files matching a doublestar pattern, sorted lexically.
func (s *Source) Glob(ctx context.Context, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: bad pattern %q", domain.ErrInvalidInput, pattern)
	}

	matches, err := doublestar.Glob(s.fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expanding %s: %w", pattern, err)
	}

	sort.Strings(matches)
	logger.Debug("pattern %s matched %d files", pattern, len(matches))
	return matches, nil
}
