package domain

import (
	"fmt"
	"path"
	"strings"
)

// StemPlaceholder is replaced by a source file's stem when a pattern entry
// expands into units.
const StemPlaceholder = "{{stem}}"

// DefaultHeader marks generated files so tooling treats them as generated.
const DefaultHeader = "Code generated by docsplice. DO NOT EDIT."

// Manifest describes which markdown files document which Go units.
type Manifest struct {
	Generator GeneratorSettings `toml:"generator"`
	Preview   PreviewSettings   `toml:"preview,omitempty"`
	Units     []Entry           `toml:"unit"`
}

// GeneratorSettings holds run-wide options.
type GeneratorSettings struct {
	// Root is the directory holding markdown sources.
	Root string `toml:"root"`

	// Out is the directory where Go packages are generated.
	Out string `toml:"out"`

	// Module is the import path of Out. Informational only.
	Module string `toml:"module,omitempty"`

	// Header is written as the first comment of every generated file.
	Header string `toml:"header"`

	// History is the sqlite database recording generation runs.
	// Empty disables history; the history command then reports that it is
	// not configured.
	History string `toml:"history,omitempty"`
}

// PreviewSettings tunes the markdown renderer used by preview.
// They never affect generated Go files.
type PreviewSettings struct {
	// Extensions names goldmark extensions. Empty selects GFM.
	Extensions []string `toml:"extensions,omitempty"`

	// HardWraps renders newlines inside paragraphs as line breaks.
	HardWraps bool `toml:"hard_wraps,omitempty"`

	// Unsafe passes raw HTML in the markdown through to the page.
	Unsafe bool `toml:"unsafe,omitempty"`
}

// Entry is one [[unit]] table of the manifest.
type Entry struct {
	// Name labels the entry in output and errors. Defaults to the source path.
	Name string `toml:"name,omitempty"`

	// Source is a markdown path relative to Root.
	Source string `toml:"source,omitempty"`

	// Pattern is a doublestar glob relative to Root; each match becomes a unit.
	Pattern string `toml:"pattern,omitempty"`

	// Package is the output package path relative to Out.
	// It may contain StemPlaceholder when Pattern is set.
	Package string `toml:"package"`

	// Decl is the declaration to document. Empty means the package clause.
	Decl string `toml:"decl,omitempty"`

	// Standalone attaches the text to an empty placeholder.
	Standalone bool `toml:"standalone,omitempty"`

	// File overrides the generated file name.
	File string `toml:"file,omitempty"`
}

// Label returns a human-readable identifier for the entry.
func (e Entry) Label() string {
	switch {
	case e.Name != "":
		return e.Name
	case e.Source != "":
		return e.Source
	default:
		return e.Pattern
	}
}

// Validate checks the entry in isolation.
func (e Entry) Validate() error {
	if (e.Source == "") == (e.Pattern == "") {
		return fmt.Errorf("%w: unit %q: exactly one of source or pattern is required", ErrInvalidManifest, e.Label())
	}
	if strings.TrimSpace(e.Package) == "" {
		return fmt.Errorf("%w: unit %q: package is required", ErrInvalidManifest, e.Label())
	}
	if e.Standalone && strings.TrimSpace(e.Decl) != "" {
		return fmt.Errorf("%w: unit %q: standalone units cannot name a declaration", ErrInvalidManifest, e.Label())
	}
	if e.Source != "" && strings.Contains(e.Package, StemPlaceholder) {
		return fmt.Errorf("%w: unit %q: %s is only valid with pattern", ErrInvalidManifest, e.Label(), StemPlaceholder)
	}
	if e.File != "" && (strings.ContainsAny(e.File, `/\`) || path.Ext(e.File) != ".go") {
		return fmt.Errorf("%w: unit %q: file must be a bare .go file name", ErrInvalidManifest, e.Label())
	}
	if e.Pattern != "" && e.File != "" && !strings.Contains(e.Package, StemPlaceholder) {
		return fmt.Errorf("%w: unit %q: a fixed file name needs %s in package", ErrInvalidManifest, e.Label(), StemPlaceholder)
	}
	if isOutside(e.Package) {
		return fmt.Errorf("%w: unit %q: package %q escapes the output directory", ErrInvalidManifest, e.Label(), e.Package)
	}
	return nil
}

// Validate checks settings and every entry.
func (m *Manifest) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil manifest", ErrInvalidManifest)
	}
	if strings.TrimSpace(m.Generator.Out) == "" {
		return fmt.Errorf("%w: generator.out is required", ErrInvalidManifest)
	}
	if strings.Contains(m.Generator.Header, "\n") {
		return fmt.Errorf("%w: generator.header must be a single line", ErrInvalidManifest)
	}
	if len(m.Units) == 0 {
		return fmt.Errorf("%w: no units defined", ErrInvalidManifest)
	}
	for _, e := range m.Units {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ApplyDefaults fills unset settings.
func (m *Manifest) ApplyDefaults() {
	if m.Generator.Root == "" {
		m.Generator.Root = "."
	}
	if m.Generator.Out == "" {
		m.Generator.Out = "docs"
	}
	if m.Generator.Header == "" {
		m.Generator.Header = DefaultHeader
	}
}

func isOutside(p string) bool {
	if path.IsAbs(p) {
		return true
	}
	clean := path.Clean(p)
	return clean == ".." || strings.HasPrefix(clean, "../")
}
