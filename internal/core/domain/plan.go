package domain

// PlannedUnit is a manifest entry resolved against the source tree.
type PlannedUnit struct {
	// Entry is the label of the manifest entry that produced this unit.
	Entry string

	// Source is the markdown path relative to the manifest root.
	Source string

	// Title is the display title extracted from the markdown.
	Title string

	// Summary is a one-line description of the text, possibly empty.
	Summary string

	// Unit is the text and its target.
	Unit Unit

	// Package is the output package path relative to the output directory.
	Package string

	// PackageName is the Go package name of the generated file.
	PackageName string

	// Output is the generated file path relative to the output directory,
	// always slash-separated.
	Output string
}

// ImportPath joins module and the unit's package path.
// Returns the bare package path when module is empty.
func (p PlannedUnit) ImportPath(module string) string {
	if module == "" {
		return p.Package
	}
	if p.Package == "" || p.Package == "." {
		return module
	}
	return module + "/" + p.Package
}
