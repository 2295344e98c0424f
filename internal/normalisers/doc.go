// Package normalisers provides implementations of the Normaliser interface.
// A normaliser prepares source files for embedding: it fixes what a Go
// comment cannot carry and derives display metadata, nothing more.
//
// Registry picks a normaliser by file extension, so one manifest can mix
// markdown and plain text sources.
package normalisers
