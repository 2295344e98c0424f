package driven

import "context"

// SourceReader reads markdown sources relative to the manifest root.
type SourceReader interface {
	// ReadSource returns the raw bytes at path.
	// Returns domain.ErrNotFound if the file does not exist.
	ReadSource(ctx context.Context, path string) ([]byte, error)

	// Glob returns slash-separated paths matching a doublestar pattern,
	// sorted lexically.
	Glob(ctx context.Context, pattern string) ([]string, error)
}
