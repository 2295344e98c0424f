package filesystem

import (
	"path/filepath"
	"strings"
)

// ResolvePath resolves a manifest path against the manifest's directory.
// Handles file:// URIs, absolute paths and paths relative to base.
func ResolvePath(base, p string) string {
	// Strip file:// prefix for local paths
	p = strings.TrimPrefix(p, "file://")

	if p == "" {
		return filepath.Clean(base)
	}
	// Absolute paths pass through unchanged
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, filepath.FromSlash(p))
}
