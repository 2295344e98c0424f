// Package cli provides the docsplice command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsplice/internal/core/domain"
	"github.com/custodia-labs/docsplice/internal/core/ports/driven"
	"github.com/custodia-labs/docsplice/internal/core/ports/driving"
	"github.com/custodia-labs/docsplice/internal/logger"
)

// DefaultManifest is the manifest path used when --manifest is not given.
const DefaultManifest = "docsplice.toml"

var version = "dev"

var (
	manifestPath string
	verbose      bool
	noColor      bool
)

// WatchFunc calls onChange with the changed paths whenever the sources of
// m or the manifest directory dir change, until ctx is done.
type WatchFunc func(ctx context.Context, dir string, m *domain.Manifest, onChange func(ctx context.Context, changed []string) error) error

// Wiring connects the commands to concrete adapters.
type Wiring struct {
	// Manifests returns the store for a manifest path.
	Manifests func(path string) driven.ManifestStore

	// Generator builds a generator for a loaded manifest. dir is the
	// manifest's directory; relative manifest paths resolve against it.
	// The closer may be nil.
	Generator func(dir string, m *domain.Manifest) (driving.GeneratorService, io.Closer, error)

	// Outputs returns a store writing beneath dir. Used for previews.
	Outputs func(dir string) driven.OutputStore

	// Starter returns the manifest written by init.
	Starter func() *domain.Manifest

	// Watch is used by the watch command.
	Watch WatchFunc
}

var wiring *Wiring

// SetWiring sets the adapters used by all commands.
func SetWiring(w *Wiring) {
	wiring = w
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "docsplice",
	Short: "Embed markdown files as Go package documentation",
	Long: `docsplice turns markdown files into Go doc comments.

Each unit in the manifest names a markdown file and the Go package it
documents. docsplice generates a source file whose doc comment carries the
file's text, so go doc and pkgsite render it as that package's documentation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", DefaultManifest, "path to the manifest file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// session is a loaded manifest plus the generator built for it.
type session struct {
	store     driven.ManifestStore
	manifest  *domain.Manifest
	generator driving.GeneratorService
	closer    io.Closer
}

func (s *session) Close() {
	if s.closer == nil {
		return
	}
	if err := s.closer.Close(); err != nil {
		logger.Warn("closing: %v", err)
	}
}

func manifestStore() (driven.ManifestStore, error) {
	if wiring == nil || wiring.Manifests == nil {
		return nil, errors.New("manifest store not configured")
	}
	return wiring.Manifests(manifestPath), nil
}

func openSession() (*session, error) {
	store, err := manifestStore()
	if err != nil {
		return nil, err
	}
	if wiring.Generator == nil {
		return nil, errors.New("generator not configured")
	}

	m, err := store.Load()
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no manifest at %s (run docsplice init): %w", store.Path(), err)
		}
		return nil, err
	}

	gen, closer, err := wiring.Generator(store.Dir(), m)
	if err != nil {
		return nil, err
	}
	return &session{store: store, manifest: m, generator: gen, closer: closer}, nil
}
