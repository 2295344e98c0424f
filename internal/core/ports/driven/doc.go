// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the generator to function:
//
//   - SourceReader: Reads markdown sources and expands globs
//   - OutputStore: Reads and writes generated Go files
//   - Normaliser: Prepares markdown text for embedding
//   - ManifestStore: Manifest persistence
//
// # Optional Interfaces
//
// These can be nil - the generator degrades gracefully:
//
//   - RecordStore: Generation history. Without it, history is not kept.
//   - HTMLRenderer: Markdown previews. Without it, Preview is unavailable.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
