package driven

import "context"

// OutputStore reads and writes generated Go files relative to the output
// directory. Paths are slash-separated.
type OutputStore interface {
	// ReadOutput returns the current contents of path.
	// Returns domain.ErrNotFound if the file does not exist.
	ReadOutput(ctx context.Context, path string) ([]byte, error)

	// WriteOutput replaces path with data, creating parent directories.
	WriteOutput(ctx context.Context, path string, data []byte) error
}
