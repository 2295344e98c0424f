package splice

import (
	"bytes"
	"fmt"
	"go/parser"
	"go/token"
	"strings"

	"github.com/custodia-labs/docsplice/internal/core/domain"
)

// Placeholder is the inert declaration standalone units document.
const Placeholder = "import ()"

// RenderParams holds everything Render needs for one file.
type RenderParams struct {
	// Header is an optional single-line comment written first and separated
	// from the documentation by a blank line.
	Header string

	// Package is the package name for non-package targets and placeholders.
	// For package targets it must be empty or match the clause.
	Package string

	Unit domain.Unit
}

// Render produces the Go source file for a documentation unit.
func Render(p RenderParams) ([]byte, error) {
	if strings.ContainsAny(p.Header, "\r\n") {
		return nil, fmt.Errorf("%w: header must be a single line", domain.ErrInvalidInput)
	}

	text := Normalize(p.Unit.Text)
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if p.Header != "" {
		buf.WriteString(Comment(p.Header))
		buf.WriteString("\n\n")
	}

	if p.Unit.Standalone() {
		if err := writePackageClause(&buf, p.Package); err != nil {
			return nil, err
		}
		writeDocumented(&buf, text, Placeholder)
		return checkParses(buf.Bytes())
	}

	info, err := ParseDecl(p.Unit.Target.Source)
	if err != nil {
		return nil, err
	}

	if info.Kind == domain.DeclPackage {
		if p.Package != "" && p.Package != info.Name {
			return nil, fmt.Errorf("%w: clause declares %q, expected %q", domain.ErrPackageConflict, info.Name, p.Package)
		}
	} else if err := writePackageClause(&buf, p.Package); err != nil {
		return nil, err
	}

	writeDocumented(&buf, text, info.Source)
	return checkParses(buf.Bytes())
}

func writePackageClause(buf *bytes.Buffer, name string) error {
	if !IsPackageName(name) {
		return fmt.Errorf("%w: %q is not a valid package name", domain.ErrInvalidInput, name)
	}
	fmt.Fprintf(buf, "package %s\n\n", name)
	return nil
}

func writeDocumented(buf *bytes.Buffer, text, decl string) {
	buf.WriteString(Comment(text))
	buf.WriteByte('\n')
	buf.WriteString(decl)
	buf.WriteByte('\n')
}

// checkParses guards against inputs that validate separately but not
// together.
func checkParses(src []byte) ([]byte, error) {
	if _, err := parser.ParseFile(token.NewFileSet(), "", src, parser.ParseComments); err != nil {
		return nil, fmt.Errorf("%w: generated source does not parse: %v", domain.ErrInvalidDecl, err)
	}
	return src, nil
}
