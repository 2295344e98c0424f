package splice

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/docsplice/internal/core/domain"
)

const (
	linePrefix = "//"
	bom        = "\uFEFF"
)

// Normalize strips carriage returns and a leading byte order mark.
// The Go scanner removes '\r' from comment text, so a comment can never
// carry one back out.
func Normalize(text string) string {
	text = strings.TrimPrefix(text, bom)
	return strings.ReplaceAll(text, "\r", "")
}

// ValidateText reports whether normalised text can live inside line comments.
func ValidateText(text string) error {
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w: invalid UTF-8", domain.ErrInvalidText)
	}
	if i := strings.IndexByte(text, 0); i >= 0 {
		return fmt.Errorf("%w: NUL byte at offset %d", domain.ErrInvalidText, i)
	}
	if i := strings.Index(text, bom); i >= 0 {
		return fmt.Errorf("%w: byte order mark at offset %d", domain.ErrInvalidText, i)
	}
	return nil
}

// Comment encodes text as consecutive line comments without a trailing
// newline. Every line gets "// "; empty lines become a bare "//", so a
// trailing newline in text shows up as a final "//".
func Comment(text string) string {
	lines := strings.Split(text, "\n")

	var b strings.Builder
	b.Grow(len(text) + 3*len(lines))
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(linePrefix)
		if line != "" {
			b.WriteByte(' ')
			b.WriteString(line)
		}
	}
	return b.String()
}

// Uncomment inverts Comment. Each element is one raw "//" comment,
// as found in ast.Comment.Text.
func Uncomment(lines []string) (string, error) {
	out := make([]string, len(lines))
	for i, line := range lines {
		if !strings.HasPrefix(line, linePrefix) {
			return "", fmt.Errorf("%w: line %d is not a line comment", domain.ErrInvalidInput, i+1)
		}
		line = strings.TrimPrefix(line, linePrefix)
		out[i] = strings.TrimPrefix(line, " ")
	}
	return strings.Join(out, "\n"), nil
}
