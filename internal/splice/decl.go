package splice

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/custodia-labs/docsplice/internal/core/domain"
)

// wrapperClause lets a bare declaration parse as a file.
const wrapperClause = "package _splice\n\n"

// DeclInfo describes a validated declaration.
type DeclInfo struct {
	Kind domain.DeclKind

	// Name is the package name for package clauses, otherwise the name of
	// the first declared identifier (or the import path for imports).
	Name string

	// Source is the canonical source: the input with surrounding
	// whitespace removed.
	Source string
}

// ParseDecl validates src as a Go declaration that can take a doc comment.
//
// A source beginning with a package clause is a package target and may be
// followed by further declarations. Anything else must parse as one or more
// top-level declarations; the doc comment attaches to the first. Sources with
// their own comments ahead of the first declaration are rejected, since the
// generated comment would merge with them.
func ParseDecl(src string) (DeclInfo, error) {
	canonical := strings.TrimSpace(src)
	if canonical == "" {
		return DeclInfo{}, fmt.Errorf("%w: empty declaration", domain.ErrInvalidDecl)
	}

	if startsWithPackage(canonical) {
		return parsePackageDecl(canonical)
	}
	return parseTopLevelDecl(canonical)
}

func parsePackageDecl(src string) (DeclInfo, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", src, parser.ParseComments)
	if err != nil {
		return DeclInfo{}, fmt.Errorf("%w: %v", domain.ErrInvalidDecl, err)
	}
	if f.Doc != nil || commentsBefore(f, f.Package) {
		return DeclInfo{}, fmt.Errorf("%w: package clause already carries a comment", domain.ErrInvalidDecl)
	}

	return DeclInfo{Kind: domain.DeclPackage, Name: f.Name.Name, Source: src}, nil
}

func parseTopLevelDecl(src string) (DeclInfo, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", wrapperClause+src, parser.ParseComments)
	if err != nil {
		return DeclInfo{}, fmt.Errorf("%w: %v", domain.ErrInvalidDecl, err)
	}
	if len(f.Decls) == 0 {
		return DeclInfo{}, fmt.Errorf("%w: no declaration found", domain.ErrInvalidDecl)
	}

	first := f.Decls[0]
	if commentsBefore(f, first.Pos()) {
		return DeclInfo{}, fmt.Errorf("%w: declaration already carries a comment", domain.ErrInvalidDecl)
	}

	kind, name, err := describe(first)
	if err != nil {
		return DeclInfo{}, err
	}
	return DeclInfo{Kind: kind, Name: name, Source: src}, nil
}

func describe(d ast.Decl) (domain.DeclKind, string, error) {
	switch d := d.(type) {
	case *ast.FuncDecl:
		return domain.DeclFunc, d.Name.Name, nil
	case *ast.GenDecl:
		var kind domain.DeclKind
		switch d.Tok {
		case token.IMPORT:
			if len(d.Specs) == 0 {
				return "", "", fmt.Errorf("%w: empty import block is the standalone placeholder", domain.ErrInvalidDecl)
			}
			kind = domain.DeclImport
		case token.TYPE:
			kind = domain.DeclType
		case token.VAR:
			kind = domain.DeclVar
		case token.CONST:
			kind = domain.DeclConst
		default:
			return "", "", fmt.Errorf("%w: unsupported token %s", domain.ErrInvalidDecl, d.Tok)
		}
		return kind, firstSpecName(d), nil
	default:
		return "", "", fmt.Errorf("%w: unsupported declaration %T", domain.ErrInvalidDecl, d)
	}
}

func firstSpecName(d *ast.GenDecl) string {
	if len(d.Specs) == 0 {
		return ""
	}
	switch s := d.Specs[0].(type) {
	case *ast.TypeSpec:
		return s.Name.Name
	case *ast.ValueSpec:
		if len(s.Names) > 0 {
			return s.Names[0].Name
		}
	case *ast.ImportSpec:
		if p, err := strconv.Unquote(s.Path.Value); err == nil {
			return p
		}
	}
	return ""
}

// commentsBefore reports whether any comment starts before pos.
func commentsBefore(f *ast.File, pos token.Pos) bool {
	for _, cg := range f.Comments {
		if cg.Pos() < pos {
			return true
		}
	}
	return false
}

func startsWithPackage(src string) bool {
	rest, ok := strings.CutPrefix(src, "package")
	if !ok {
		return false
	}
	return rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\n'
}

// IsPackageName reports whether name can be used in a package clause.
func IsPackageName(name string) bool {
	return name != "_" && token.IsIdentifier(name)
}
