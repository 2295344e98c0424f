// Package html renders markdown to HTML with goldmark for documentation
// previews.
package html

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/custodia-labs/docsplice/internal/core/ports/driven"
	"github.com/custodia-labs/docsplice/internal/logger"
)

// Ensure Renderer implements the interface.
var _ driven.HTMLRenderer = (*Renderer)(nil)

// Options tunes the goldmark engine.
type Options struct {
	// Extensions names goldmark extensions; empty selects GFM.
	Extensions []string

	// HardWraps renders newlines inside paragraphs as <br>.
	HardWraps bool

	// Unsafe passes raw HTML in the markdown through.
	Unsafe bool
}

// Renderer is stateless and safe for concurrent use.
type Renderer struct {
	engine goldmark.Markdown
}

// New builds a renderer from opts.
func New(opts Options) *Renderer {
	return &Renderer{engine: newEngine(opts)}
}

// Render converts markdown to an HTML fragment.
func (r *Renderer) Render(markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

func newEngine(opts Options) goldmark.Markdown {
	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, gmhtml.WithHardWraps())
	}
	if opts.Unsafe {
		rendererOptions = append(rendererOptions, gmhtml.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithExtensions(collectExtensions(opts.Extensions)...),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

// collectExtensions maps names to extenders, skipping duplicates and
// warning about unknown names.
func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			logger.Warn("unknown preview extension %q", name)
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}
	return extenders
}
