package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsplice/internal/core/domain"
	"github.com/custodia-labs/docsplice/internal/normalisers/markdown"
	"github.com/custodia-labs/docsplice/internal/normalisers/plaintext"
)

func TestRegistry_SupportedExtensions(t *testing.T) {
	r := NewRegistry(markdown.New(), plaintext.New())

	assert.Equal(t, []string{".markdown", ".md", ".text", ".txt"}, r.SupportedExtensions())
}

func TestRegistry_RoutesByExtension(t *testing.T) {
	r := NewRegistry(markdown.New(), plaintext.New())
	ctx := context.Background()

	md, err := r.Normalise(ctx, "posts/Hello.MD", []byte("# Hello\n"))
	require.NoError(t, err)
	assert.Equal(t, "Hello", md.Title)

	txt, err := r.Normalise(ctx, "notes/aside.txt", []byte("# not a heading\n"))
	require.NoError(t, err)
	assert.Equal(t, "aside", txt.Title)
	assert.Equal(t, "# not a heading", txt.Summary)
}

func TestRegistry_Unsupported(t *testing.T) {
	r := NewRegistry(markdown.New())

	_, err := r.Normalise(context.Background(), "guide.rst", []byte("Guide\n=====\n"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistry_Fallback(t *testing.T) {
	r := NewRegistry(markdown.New())
	r.SetFallback(plaintext.New())

	result, err := r.Normalise(context.Background(), "guide.rst", []byte("Guide\n=====\n"))

	require.NoError(t, err)
	assert.Equal(t, "Guide\n=====\n", result.Text)
}
