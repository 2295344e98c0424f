package driven

import "context"

// Normaliser prepares raw markdown bytes for embedding.
// Implementations must not alter the text beyond what a Go comment
// cannot carry.
type Normaliser interface {
	// SupportedExtensions returns the file extensions this normaliser handles.
	SupportedExtensions() []string

	// Normalise converts raw bytes read from path into embeddable text.
	Normalise(ctx context.Context, path string, raw []byte) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Text is the content to embed.
	Text string

	// Title is a display title, from the first heading or the file name.
	Title string

	// Summary is a one-line plain-text description shown by list and
	// preview. Never embedded.
	Summary string
}
