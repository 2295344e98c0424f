package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsplice/internal/core/domain"
	"github.com/custodia-labs/docsplice/internal/core/ports/driven"
	"github.com/custodia-labs/docsplice/internal/core/ports/driving"
)

// mockManifestStore keeps one manifest in memory.
type mockManifestStore struct {
	path     string
	manifest *domain.Manifest
	loadErr  error
	saved    *domain.Manifest
}

func (m *mockManifestStore) Load() (*domain.Manifest, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.manifest == nil {
		return nil, domain.ErrNotFound
	}
	return m.manifest, nil
}

func (m *mockManifestStore) Save(manifest *domain.Manifest) error {
	m.saved = manifest
	m.manifest = manifest
	return nil
}

func (m *mockManifestStore) Path() string {
	return m.path
}

func (m *mockManifestStore) Dir() string {
	return filepath.Dir(m.path)
}

// mockGenerator implements driving.GeneratorService for testing.
type mockGenerator struct {
	units   []domain.PlannedUnit
	report  *domain.GenerateReport
	results []domain.CheckResult
	pages   []domain.PreviewPage
	records []domain.GenerationRecord
	err     error
	histErr error
	dryRun  bool
	limit   int
}

func (m *mockGenerator) Plan(context.Context, *domain.Manifest) ([]domain.PlannedUnit, error) {
	return m.units, m.err
}

func (m *mockGenerator) Generate(_ context.Context, _ *domain.Manifest, opts driving.GenerateOptions) (*domain.GenerateReport, error) {
	m.dryRun = opts.DryRun
	if m.err != nil {
		return nil, m.err
	}
	report := *m.report
	report.DryRun = opts.DryRun
	return &report, nil
}

func (m *mockGenerator) Check(context.Context, *domain.Manifest) ([]domain.CheckResult, error) {
	return m.results, m.err
}

func (m *mockGenerator) Preview(context.Context, *domain.Manifest) ([]domain.PreviewPage, error) {
	return m.pages, m.err
}

func (m *mockGenerator) History(_ context.Context, limit int) ([]domain.GenerationRecord, error) {
	m.limit = limit
	return m.records, m.histErr
}

// mockOutputs records preview writes.
type mockOutputs struct {
	dir   string
	files map[string][]byte
}

func (m *mockOutputs) ReadOutput(_ context.Context, p string) ([]byte, error) {
	data, ok := m.files[p]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

func (m *mockOutputs) WriteOutput(_ context.Context, p string, data []byte) error {
	m.files[p] = data
	return nil
}

type closeCounter struct{ closed int }

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

type testWiring struct {
	store   *mockManifestStore
	gen     *mockGenerator
	outputs *mockOutputs
	closer  *closeCounter
	genDir  string
}

func testPlannedUnit() domain.PlannedUnit {
	return domain.PlannedUnit{
		Entry:       "posts",
		Source:      "posts/hello-world.md",
		Title:       "Hello",
		Summary:     "Says hello.",
		Unit:        domain.EmbedOn("# Hello\n\nSays hello.\n", domain.Decl{Source: "package hello_world"}),
		Package:     "posts/hello_world",
		PackageName: "hello_world",
		Output:      "posts/hello_world/doc.go",
	}
}

func testManifest() *domain.Manifest {
	m := &domain.Manifest{
		Generator: domain.GeneratorSettings{Module: "example.com/blog/docs"},
		Units:     []domain.Entry{{Pattern: "posts/*.md", Package: "posts/{{stem}}"}},
	}
	m.ApplyDefaults()
	return m
}

func setupTestWiring(t *testing.T) *testWiring {
	t.Helper()

	unit := testPlannedUnit()
	tw := &testWiring{
		store: &mockManifestStore{path: "/work/blog/docsplice.toml", manifest: testManifest()},
		gen: &mockGenerator{
			units: []domain.PlannedUnit{unit},
			report: &domain.GenerateReport{
				RunID:   "0f8e2d4c-1111-2222-3333-444455556666",
				Files:   []domain.GeneratedFile{{Unit: unit, Status: domain.OutputWritten}},
				Written: 1,
			},
		},
		closer: &closeCounter{},
	}
	tw.outputs = &mockOutputs{files: make(map[string][]byte)}

	old := wiring
	SetWiring(&Wiring{
		Manifests: func(path string) driven.ManifestStore {
			return tw.store
		},
		Generator: func(dir string, _ *domain.Manifest) (driving.GeneratorService, io.Closer, error) {
			tw.genDir = dir
			return tw.gen, tw.closer, nil
		},
		Outputs: func(dir string) driven.OutputStore {
			tw.outputs.dir = dir
			return tw.outputs
		},
		Starter: func() *domain.Manifest {
			return testManifest()
		},
		Watch: func(ctx context.Context, _ string, _ *domain.Manifest, onChange func(context.Context, []string) error) error {
			if err := onChange(ctx, []string{"posts/hello-world.md"}); err != nil {
				return err
			}
			return context.Canceled
		},
	})

	t.Cleanup(func() {
		wiring = old
		manifestPath = DefaultManifest
		verbose = false
		noColor = false
		generateDryRun = false
		initForce = false
		historyLimit = 20
		previewOut = "docsplice-preview"
		rootCmd.SetArgs(nil)
	})
	return tw
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "docsplice", rootCmd.Use)
	assert.Contains(t, rootCmd.Long, "go doc")
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("manifest")
	require.NotNil(t, flag)
	assert.Equal(t, "m", flag.Shorthand)
	assert.Equal(t, DefaultManifest, flag.DefValue)

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("no-color"))
}

func TestRootCmd_NotConfigured(t *testing.T) {
	setupTestWiring(t)
	wiring = nil

	_, err := execute(t, "generate")

	assert.EqualError(t, err, "manifest store not configured")
}

func TestRootCmd_MissingManifest(t *testing.T) {
	tw := setupTestWiring(t)
	tw.store.manifest = nil

	_, err := execute(t, "list")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "docsplice init")
}

func TestRootCmd_GeneratorBuiltFromManifestDir(t *testing.T) {
	tw := setupTestWiring(t)

	_, err := execute(t, "list")

	require.NoError(t, err)
	assert.Equal(t, "/work/blog", tw.genDir)
	assert.Equal(t, 1, tw.closer.closed)
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("")
	assert.Equal(t, original, version)

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}

func TestVersionCmd_Executes(t *testing.T) {
	setupTestWiring(t)
	original := version
	version = "test-version-1.0.0"
	defer func() { version = original }()

	out, err := execute(t, "version")

	assert.NoError(t, err)
	assert.Contains(t, out, "docsplice version test-version-1.0.0")
}

func TestInitCmd_WritesStarter(t *testing.T) {
	tw := setupTestWiring(t)
	tw.store.manifest = nil

	out, err := execute(t, "init")

	require.NoError(t, err)
	require.NotNil(t, tw.store.saved)
	assert.Contains(t, out, "Created /work/blog/docsplice.toml")
}

func TestInitCmd_RefusesOverwrite(t *testing.T) {
	tw := setupTestWiring(t)

	_, err := execute(t, "init")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
	assert.Nil(t, tw.store.saved)
}

func TestInitCmd_RefusesOverwriteOfInvalidManifest(t *testing.T) {
	tw := setupTestWiring(t)
	tw.store.loadErr = domain.ErrInvalidManifest

	_, err := execute(t, "init")

	require.Error(t, err)
	assert.Nil(t, tw.store.saved)
}

func TestInitCmd_Force(t *testing.T) {
	tw := setupTestWiring(t)

	_, err := execute(t, "init", "--force")

	require.NoError(t, err)
	assert.NotNil(t, tw.store.saved)
}

func TestGenerateCmd_Executes(t *testing.T) {
	tw := setupTestWiring(t)

	out, err := execute(t, "generate")

	require.NoError(t, err)
	assert.False(t, tw.gen.dryRun)
	assert.Contains(t, out, "written")
	assert.Contains(t, out, "posts/hello_world/doc.go")
	assert.Contains(t, out, "<- posts/hello-world.md")
	assert.Contains(t, out, "1 written, 0 unchanged")
	assert.Contains(t, out, "(run 0f8e2d4c-1111-2222-3333-444455556666)")
}

func TestGenerateCmd_DryRun(t *testing.T) {
	tw := setupTestWiring(t)

	out, err := execute(t, "generate", "--dry-run")

	require.NoError(t, err)
	assert.True(t, tw.gen.dryRun)
	assert.Contains(t, out, "Dry run: 1 file(s) would be written, 0 unchanged")
}

func TestGenerateCmd_Error(t *testing.T) {
	tw := setupTestWiring(t)
	tw.gen.err = domain.ErrInvalidDecl

	_, err := execute(t, "generate")

	assert.ErrorIs(t, err, domain.ErrInvalidDecl)
}

func TestCheckCmd_AllOK(t *testing.T) {
	tw := setupTestWiring(t)
	tw.gen.results = []domain.CheckResult{
		{Output: "posts/hello_world/doc.go", Status: domain.CheckOK},
	}

	out, err := execute(t, "check")

	require.NoError(t, err)
	assert.Contains(t, out, "All 1 output(s) up to date.")
}

func TestCheckCmd_Stale(t *testing.T) {
	tw := setupTestWiring(t)
	tw.gen.results = []domain.CheckResult{
		{Output: "blog/doc.go", Status: domain.CheckOK},
		{Output: "posts/hello_world/doc.go", Status: domain.CheckDrifted, Detail: "doc comment no longer matches posts/hello-world.md"},
		{Output: "redbox/server_doc.go", Status: domain.CheckMissing},
	}

	out, err := execute(t, "check")

	assert.ErrorIs(t, err, domain.ErrStale)
	assert.Contains(t, err.Error(), "2 of 3")
	assert.Contains(t, out, "drifted")
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, "doc comment no longer matches")
}

func TestListCmd_Executes(t *testing.T) {
	setupTestWiring(t)

	out, err := execute(t, "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 unit(s)")
	assert.Contains(t, out, "Hello [attached]")
	assert.Contains(t, out, "    Says hello.\n")
	assert.Contains(t, out, "Source:  posts/hello-world.md")
	assert.Contains(t, out, "Package: example.com/blog/docs/posts/hello_world")
}

func TestListCmd_Empty(t *testing.T) {
	tw := setupTestWiring(t)
	tw.gen.units = nil

	out, err := execute(t, "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No units planned.")
}

func TestPreviewCmd_WritesPages(t *testing.T) {
	tw := setupTestWiring(t)
	tw.gen.pages = []domain.PreviewPage{
		{Path: "posts/hello_world/doc.html", Title: "Hello", HTML: []byte("<h1>Hello</h1>")},
		{Path: "index.html", Title: "Index", HTML: []byte("<ul></ul>")},
	}

	out, err := execute(t, "preview", "--out", "site")

	require.NoError(t, err)
	assert.Equal(t, "/work/blog/site", tw.outputs.dir)
	assert.Equal(t, []byte("<h1>Hello</h1>"), tw.outputs.files["posts/hello_world/doc.html"])
	assert.Contains(t, out, "Wrote 2 page(s) to /work/blog/site")
}

func TestPreviewCmd_NotConfigured(t *testing.T) {
	tw := setupTestWiring(t)
	tw.gen.err = domain.ErrNotConfigured

	_, err := execute(t, "preview")

	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestHistoryCmd_Executes(t *testing.T) {
	tw := setupTestWiring(t)
	tw.gen.records = []domain.GenerationRecord{{
		RunID:       "0f8e2d4c-1111-2222-3333-444455556666",
		Output:      "posts/hello_world/doc.go",
		Status:      domain.OutputWritten,
		GeneratedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}}

	out, err := execute(t, "history", "--limit", "5")

	require.NoError(t, err)
	assert.Equal(t, 5, tw.gen.limit)
	assert.Contains(t, out, "0f8e2d4c")
	assert.NotContains(t, out, "0f8e2d4c-1111")
	assert.Contains(t, out, "posts/hello_world/doc.go")
}

func TestHistoryCmd_Disabled(t *testing.T) {
	tw := setupTestWiring(t)
	tw.gen.histErr = domain.ErrNotConfigured

	out, err := execute(t, "history")

	require.NoError(t, err)
	assert.Contains(t, out, "History is disabled")
}

func TestHistoryCmd_Empty(t *testing.T) {
	setupTestWiring(t)

	out, err := execute(t, "history")

	require.NoError(t, err)
	assert.Contains(t, out, "No generation runs recorded.")
}

func TestWatchCmd_RegeneratesOnChange(t *testing.T) {
	tw := setupTestWiring(t)

	out, err := execute(t, "watch")

	require.NoError(t, err)
	assert.Contains(t, out, "Watching for changes")
	assert.Contains(t, out, "1 file(s) changed, regenerating")
	assert.Contains(t, out, "Stopped.")
	assert.Equal(t, 2, tw.closer.closed)
}

func TestWatchCmd_PropagatesWatchErrors(t *testing.T) {
	setupTestWiring(t)
	wiring.Watch = func(context.Context, string, *domain.Manifest, func(context.Context, []string) error) error {
		return errors.New("too many open files")
	}

	_, err := execute(t, "watch")

	assert.EqualError(t, err, "too many open files")
}

func TestStyles_PlainWhenNotTerminal(t *testing.T) {
	st := newStyles(new(bytes.Buffer))

	assert.Equal(t, "ok       ", st.checkStatus(domain.CheckOK))
	assert.Equal(t, "written  ", st.outputStatus(domain.OutputWritten))
}
