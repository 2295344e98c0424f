package splice

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/custodia-labs/docsplice/internal/core/domain"
)

// Extracted is a unit recovered from a generated file.
type Extracted struct {
	// Header is the text of the leading comment, if separated from the unit.
	Header string

	// Package is the file's package name.
	Package string

	Unit domain.Unit
}

// Extract parses a rendered file and recovers its documentation unit.
// Returns domain.ErrNotFound when the file carries no documented unit.
func Extract(src []byte) (Extracted, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", src, parser.ParseComments)
	if err != nil {
		return Extracted{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	out := Extracted{
		Header:  header(f),
		Package: f.Name.Name,
	}
	tokFile := fset.File(f.Pos())

	if f.Doc != nil {
		text, err := groupText(f.Doc)
		if err != nil {
			return Extracted{}, err
		}
		decl := tail(src, tokFile.Offset(f.Package))
		out.Unit = domain.EmbedOn(text, domain.Decl{Source: decl})
		return out, nil
	}

	if len(f.Decls) == 0 {
		return Extracted{}, fmt.Errorf("%w: no documented declaration", domain.ErrNotFound)
	}

	first := f.Decls[0]
	doc := declDoc(first)
	if doc == nil {
		return Extracted{}, fmt.Errorf("%w: no documented declaration", domain.ErrNotFound)
	}

	text, err := groupText(doc)
	if err != nil {
		return Extracted{}, err
	}

	if isPlaceholder(first) && len(f.Decls) == 1 {
		out.Unit = domain.EmbedStandalone(text)
		return out, nil
	}

	decl := tail(src, tokFile.Offset(first.Pos()))
	out.Unit = domain.EmbedOn(text, domain.Decl{Source: decl})
	return out, nil
}

func declDoc(d ast.Decl) *ast.CommentGroup {
	switch d := d.(type) {
	case *ast.GenDecl:
		return d.Doc
	case *ast.FuncDecl:
		return d.Doc
	}
	return nil
}

func isPlaceholder(d ast.Decl) bool {
	g, ok := d.(*ast.GenDecl)
	return ok && g.Tok == token.IMPORT && len(g.Specs) == 0 && g.Lparen.IsValid()
}

// header returns the first comment group when it is not the package doc
// and sits above the package clause.
func header(f *ast.File) string {
	if len(f.Comments) == 0 {
		return ""
	}
	cg := f.Comments[0]
	if cg == f.Doc || cg.Pos() > f.Package {
		return ""
	}
	text, err := groupText(cg)
	if err != nil {
		return ""
	}
	return text
}

func groupText(cg *ast.CommentGroup) (string, error) {
	lines := make([]string, 0, len(cg.List))
	for _, c := range cg.List {
		lines = append(lines, c.Text)
	}
	return Uncomment(lines)
}

func tail(src []byte, offset int) string {
	return strings.TrimSpace(string(src[offset:]))
}
