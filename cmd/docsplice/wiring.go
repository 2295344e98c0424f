package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/docsplice/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docsplice/internal/adapters/driven/render/html"
	"github.com/custodia-labs/docsplice/internal/adapters/driven/storage/filesystem"
	"github.com/custodia-labs/docsplice/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docsplice/internal/adapters/driven/watcher"
	"github.com/custodia-labs/docsplice/internal/adapters/driving/cli"
	sources "github.com/custodia-labs/docsplice/internal/connectors/filesystem"
	"github.com/custodia-labs/docsplice/internal/core/domain"
	"github.com/custodia-labs/docsplice/internal/core/ports/driven"
	"github.com/custodia-labs/docsplice/internal/core/ports/driving"
	"github.com/custodia-labs/docsplice/internal/core/services"
	"github.com/custodia-labs/docsplice/internal/logger"
	"github.com/custodia-labs/docsplice/internal/normalisers"
	"github.com/custodia-labs/docsplice/internal/normalisers/markdown"
	"github.com/custodia-labs/docsplice/internal/normalisers/plaintext"
)

// newNormaliser routes markdown and plain text sources.
func newNormaliser() *normalisers.Registry {
	return normalisers.NewRegistry(markdown.New(), plaintext.New())
}

func newWiring() *cli.Wiring {
	return &cli.Wiring{
		Manifests: func(path string) driven.ManifestStore {
			return file.NewManifestStore(path)
		},
		Generator: buildGenerator,
		Outputs: func(dir string) driven.OutputStore {
			return filesystem.NewOutputStore(dir)
		},
		Starter: file.StarterManifest,
		Watch:   watch,
	}
}

// buildGenerator wires a generator for m. Manifest paths resolve against dir.
func buildGenerator(dir string, m *domain.Manifest) (driving.GeneratorService, io.Closer, error) {
	var (
		records driven.RecordStore
		closer  io.Closer
	)
	if m.Generator.History != "" {
		store, err := sqlite.NewStore(sources.ResolvePath(dir, m.Generator.History))
		if err != nil {
			return nil, nil, fmt.Errorf("opening history: %w", err)
		}
		records = store.RecordStore()
		closer = store
	}

	source := sources.New(sources.ResolvePath(dir, m.Generator.Root))
	outputs := filesystem.NewOutputStore(sources.ResolvePath(dir, m.Generator.Out))
	logger.Debug("sources %s, output %s", source.Root(), outputs.Root())

	gen := services.NewGeneratorService(
		source,
		outputs,
		newNormaliser(),
		records,
		html.New(html.Options{
			Extensions: m.Preview.Extensions,
			HardWraps:  m.Preview.HardWraps,
			Unsafe:     m.Preview.Unsafe,
		}),
	)
	return gen, closer, nil
}

// watch watches the source root and the manifest directory.
func watch(
	ctx context.Context, dir string, m *domain.Manifest,
	onChange func(ctx context.Context, changed []string) error,
) error {
	cfg := watcher.DefaultConfig()
	cfg.Extensions = append(newNormaliser().SupportedExtensions(), ".toml")

	w, err := watcher.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Close(); err != nil {
			logger.Warn("closing watcher: %v", err)
		}
	}()

	for _, root := range []string{sources.ResolvePath(dir, m.Generator.Root), dir} {
		if err := w.Add(root); err != nil {
			return err
		}
	}
	logger.Info("watching %s", strings.Join(w.Roots(), ", "))

	return w.Run(ctx, func(ctx context.Context, events []watcher.Event) error {
		changed := make([]string, len(events))
		for i, e := range events {
			changed[i] = e.Path
		}
		return onChange(ctx, changed)
	})
}
