package domain

// DeclKind classifies the Go declaration a unit is attached to.
type DeclKind string

// Declaration kinds.
const (
	DeclPackage DeclKind = "package"
	DeclType    DeclKind = "type"
	DeclFunc    DeclKind = "func"
	DeclVar     DeclKind = "var"
	DeclConst   DeclKind = "const"
	DeclImport  DeclKind = "import"
)

// Decl is a Go declaration that receives a doc comment.
// Source is emitted verbatim; it is never reformatted.
type Decl struct {
	// Source is the declaration's Go source, e.g. "package example" or
	// "type Server struct{}".
	Source string
}

// Unit pairs markdown text with the declaration it documents.
// A unit without a target is attached to an empty placeholder.
type Unit struct {
	// Text is the full contents of one markdown file.
	Text string

	// Target is the documented declaration, nil for a standalone unit.
	Target *Decl
}

// EmbedStandalone returns a unit documenting an empty placeholder.
func EmbedStandalone(text string) Unit {
	return Unit{Text: text}
}

// EmbedOn returns a unit documenting decl.
func EmbedOn(text string, decl Decl) Unit {
	return Unit{Text: text, Target: &decl}
}

// Standalone reports whether the unit has no target declaration.
func (u Unit) Standalone() bool {
	return u.Target == nil
}

// Form returns "standalone" or "attached" for display.
func (u Unit) Form() string {
	if u.Standalone() {
		return "standalone"
	}
	return "attached"
}
