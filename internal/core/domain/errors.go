package domain

import "errors"

// Domain errors represent generation failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested source, output or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDecl indicates a declaration that does not parse as Go,
	// or one that cannot take a doc comment.
	ErrInvalidDecl = errors.New("invalid declaration")

	// ErrInvalidText indicates text that cannot be carried by a Go comment
	// (NUL bytes, invalid UTF-8, an interior byte order mark).
	ErrInvalidText = errors.New("text cannot be embedded in a Go comment")

	// ErrInvalidManifest indicates a manifest that fails validation.
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrDuplicateOutput indicates two units resolve to the same output file.
	ErrDuplicateOutput = errors.New("duplicate output path")

	// ErrPackageConflict indicates two units in one directory disagree on the package name.
	ErrPackageConflict = errors.New("conflicting package names")

	// ErrNotConfigured indicates an optional adapter was not provided.
	ErrNotConfigured = errors.New("not configured")

	// ErrStale indicates generated files are missing or out of date.
	ErrStale = errors.New("generated documentation is out of date")
)
