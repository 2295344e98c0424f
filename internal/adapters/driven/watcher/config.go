package watcher

import "time"

// Config tunes the watcher.
type Config struct {
	// DebounceWindow is how long the tree must stay quiet before a batch
	// is delivered.
	DebounceWindow time.Duration

	// MaxBatchSize flushes a batch early once this many paths are pending.
	MaxBatchSize int

	// MinInterval is the minimum time between two deliveries.
	MinInterval time.Duration

	// Extensions limits events to these file extensions. Empty accepts all.
	Extensions []string

	// IgnorePatterns are doublestar patterns matched against slash paths
	// relative to the watched root.
	IgnorePatterns []string

	// WatchHidden includes dot files and dot directories.
	WatchHidden bool
}

// DefaultConfig returns the settings used by docsplice watch.
func DefaultConfig() Config {
	return Config{
		DebounceWindow: 250 * time.Millisecond,
		MaxBatchSize:   100,
		MinInterval:    time.Second,
		Extensions:     []string{".md", ".markdown", ".toml"},
		IgnorePatterns: []string{
			"**/.git/**",
			"**/node_modules/**",
			"**/vendor/**",
			"**/*.go",
		},
	}
}
