// Package sqlite provides a SQLite-backed RecordStore for generation history.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, so docsplice stays a plain `go run` away from any `go generate` directive.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// The database path comes from the manifest's generator.history setting,
// typically .docsplice/history.db next to the manifest.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
