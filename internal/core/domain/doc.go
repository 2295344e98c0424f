// Package domain defines the core entities for docsplice.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Unit: Markdown text paired with the declaration it documents
//   - Decl: A Go declaration emitted verbatim under the text
//   - Manifest: Which markdown files document which packages
//   - PlannedUnit: A manifest entry resolved against the source tree
//   - GenerationRecord: What a run wrote, for history
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
