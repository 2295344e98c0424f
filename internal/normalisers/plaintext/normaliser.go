package plaintext

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docsplice/internal/core/domain"
	"github.com/custodia-labs/docsplice/internal/core/ports/driven"
	"github.com/custodia-labs/docsplice/internal/splice"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text sources.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".txt", ".text"}
}

// Normalise prepares a plain text file for embedding.
func (n *Normaliser) Normalise(_ context.Context, path string, raw []byte) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	text := splice.Normalize(string(raw))
	if err := splice.ValidateText(text); err != nil {
		return nil, err
	}

	return &driven.NormaliseResult{
		Text:    text,
		Title:   extractTitle(path),
		Summary: firstLine(text),
	}, nil
}

// extractTitle extracts a human-readable title from a path.
func extractTitle(path string) string {
	filename := filepath.Base(path)

	// Remove common extensions for cleaner title
	ext := filepath.Ext(filename)
	if ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}

	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")

	return filename
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
