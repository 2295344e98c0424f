package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validManifest() *Manifest {
	return &Manifest{
		Generator: GeneratorSettings{Root: ".", Out: "docs", Header: DefaultHeader},
		Units: []Entry{
			{Source: "README.md", Package: "posts"},
		},
	}
}

func TestManifest_Validate_Success(t *testing.T) {
	assert.NoError(t, validManifest().Validate())
}

func TestManifest_Validate_Nil(t *testing.T) {
	var m *Manifest
	assert.ErrorIs(t, m.Validate(), ErrInvalidManifest)
}

func TestManifest_Validate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Manifest)
	}{
		{"missing out", func(m *Manifest) { m.Generator.Out = "" }},
		{"multiline header", func(m *Manifest) { m.Generator.Header = "a\nb" }},
		{"no units", func(m *Manifest) { m.Units = nil }},
		{"source and pattern", func(m *Manifest) { m.Units[0].Pattern = "*.md" }},
		{"neither source nor pattern", func(m *Manifest) { m.Units[0].Source = "" }},
		{"missing package", func(m *Manifest) { m.Units[0].Package = " " }},
		{"standalone with decl", func(m *Manifest) {
			m.Units[0].Standalone = true
			m.Units[0].Decl = "type A struct{}"
		}},
		{"stem without pattern", func(m *Manifest) { m.Units[0].Package = "posts/{{stem}}" }},
		{"file with directory", func(m *Manifest) { m.Units[0].File = "sub/doc.go" }},
		{"file without .go", func(m *Manifest) { m.Units[0].File = "doc.txt" }},
		{"escaping package", func(m *Manifest) { m.Units[0].Package = "../posts" }},
		{"absolute package", func(m *Manifest) { m.Units[0].Package = "/posts" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validManifest()
			tt.mutate(m)
			assert.ErrorIs(t, m.Validate(), ErrInvalidManifest)
		})
	}
}

func TestEntry_Validate_PatternWithFixedFile(t *testing.T) {
	e := Entry{Pattern: "posts/*.md", Package: "posts", File: "doc.go"}
	assert.ErrorIs(t, e.Validate(), ErrInvalidManifest)

	e.Package = "posts/{{stem}}"
	assert.NoError(t, e.Validate())
}

func TestEntry_Label(t *testing.T) {
	assert.Equal(t, "intro", Entry{Name: "intro", Source: "a.md"}.Label())
	assert.Equal(t, "a.md", Entry{Source: "a.md"}.Label())
	assert.Equal(t, "posts/*.md", Entry{Pattern: "posts/*.md"}.Label())
}

func TestManifest_ApplyDefaults(t *testing.T) {
	m := &Manifest{}
	m.ApplyDefaults()

	assert.Equal(t, ".", m.Generator.Root)
	assert.Equal(t, "docs", m.Generator.Out)
	assert.Equal(t, DefaultHeader, m.Generator.Header)
}

func TestManifest_ApplyDefaults_KeepsValues(t *testing.T) {
	m := &Manifest{Generator: GeneratorSettings{Root: "content", Out: "gen", Header: "custom"}}
	m.ApplyDefaults()

	assert.Equal(t, "content", m.Generator.Root)
	assert.Equal(t, "gen", m.Generator.Out)
	assert.Equal(t, "custom", m.Generator.Header)
}
