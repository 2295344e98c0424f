package markdown

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/docsplice/internal/core/domain"
	"github.com/custodia-labs/docsplice/internal/core/ports/driven"
	"github.com/custodia-labs/docsplice/internal/splice"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// summaryLimit caps the summary length in runes.
const summaryLimit = 120

var (
	codeBlockRe    = regexp.MustCompile("(?s)```[^`]*```")
	inlineCodeRe   = regexp.MustCompile("`[^`]+`")
	imageRe        = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	linkRe         = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headingRe      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquoteRe   = regexp.MustCompile(`(?m)^>\s*`)
	ruleRe         = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	listMarkerRe   = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberedListRe = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	newlinesRe     = regexp.MustCompile(`\n{3,}`)
)

// Normaliser handles Markdown sources.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

// Normalise prepares a markdown file for embedding.
// Text is the raw content after splice.Normalize; the title and summary are
// derived for display only and never embedded.
func (n *Normaliser) Normalise(_ context.Context, path string, raw []byte) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	text := splice.Normalize(string(raw))
	if err := splice.ValidateText(text); err != nil {
		return nil, err
	}

	title := extractMarkdownTitle(text, path)

	return &driven.NormaliseResult{
		Text:    text,
		Title:   title,
		Summary: summarise(stripMarkdown(text), title),
	}, nil
}

// extractMarkdownTitle extracts a title from the markdown content or falls back to filename.
func extractMarkdownTitle(content, path string) string {
	// First H1 outside fenced code
	inFence := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "```") || strings.HasPrefix(line, "~~~") {
			inFence = !inFence
			continue
		}
		if !inFence && strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}

	// Fall back to filename
	filename := filepath.Base(path)
	ext := filepath.Ext(filename)
	if ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}

// stripMarkdown reduces markdown to plain text for summaries.
func stripMarkdown(content string) string {
	content = codeBlockRe.ReplaceAllString(content, "")
	content = inlineCodeRe.ReplaceAllString(content, "")
	content = imageRe.ReplaceAllString(content, "")

	// Convert links [text](url) to just text
	content = linkRe.ReplaceAllString(content, "$1")
	content = headingRe.ReplaceAllString(content, "")

	// Remove bold/italic markers
	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")
	content = strings.ReplaceAll(content, "*", "")
	content = strings.ReplaceAll(content, "_", " ")

	content = blockquoteRe.ReplaceAllString(content, "")
	content = ruleRe.ReplaceAllString(content, "")
	content = listMarkerRe.ReplaceAllString(content, "")
	content = numberedListRe.ReplaceAllString(content, "")
	content = newlinesRe.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}

// summarise returns the first paragraph that is not the title, on one line.
func summarise(plain, title string) string {
	for _, para := range strings.Split(plain, "\n\n") {
		para = strings.Join(strings.Fields(para), " ")
		if para == "" || para == title {
			continue
		}
		if utf8.RuneCountInString(para) > summaryLimit {
			runes := []rune(para)
			para = strings.TrimSpace(string(runes[:summaryLimit])) + "..."
		}
		return para
	}
	return ""
}
