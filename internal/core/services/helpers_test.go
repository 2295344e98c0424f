package services

import (
	"testing/fstest"
	"time"

	"github.com/custodia-labs/docsplice/internal/adapters/driven/render/html"
	"github.com/custodia-labs/docsplice/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docsplice/internal/connectors/filesystem"
	"github.com/custodia-labs/docsplice/internal/core/domain"
	"github.com/custodia-labs/docsplice/internal/normalisers/markdown"
)

var fixedTime = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	service *GeneratorService
	outputs *memory.OutputStore
	records *memory.RecordStore
}

func blogFS() fstest.MapFS {
	return fstest.MapFS{
		"README.md":              {Data: []byte("# Blog\n\nAll posts.\n")},
		"posts/hello-world.md":   {Data: []byte("# Hello\n\nBody.\n")},
		"posts/02-second.md":     {Data: []byte("# Second\n\nMore.\n")},
		"notes/aside.md":         {Data: []byte("An aside.")},
		"redbox/server.md":       {Data: []byte("# Server\r\n\r\nServes boxes.\r\n")},
		"broken/nul.md":          {Data: []byte("bad\x00text")},
		"posts/drafts/ignore.md": {Data: []byte("# Draft\n")},
	}
}

func newTestEnv(fsys fstest.MapFS) *testEnv {
	outputs := memory.NewOutputStore()
	records := memory.NewRecordStore()
	service := NewGeneratorService(
		filesystem.NewFromFS(fsys),
		outputs,
		markdown.New(),
		records,
		html.New(html.Options{}),
	)
	service.now = func() time.Time { return fixedTime }
	service.newRunID = func() string { return "run-1" }
	return &testEnv{service: service, outputs: outputs, records: records}
}

func blogManifest(units ...domain.Entry) *domain.Manifest {
	m := &domain.Manifest{
		Generator: domain.GeneratorSettings{Module: "example.com/blog/docs"},
		Units:     units,
	}
	m.ApplyDefaults()
	return m
}
