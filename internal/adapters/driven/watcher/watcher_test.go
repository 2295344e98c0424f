package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, cfg Config) (*Watcher, string) {
	t.Helper()
	root := t.TempDir()
	w, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	require.NoError(t, w.Add(root))
	return w, root
}

func TestEventTypeFromOp(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want EventType
		ok   bool
	}{
		{fsnotify.Create, EventCreate, true},
		{fsnotify.Write, EventModify, true},
		{fsnotify.Remove, EventDelete, true},
		{fsnotify.Rename, EventRename, true},
		{fsnotify.Chmod, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			got, ok := eventType(tt.op)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWatcher_Relevant(t *testing.T) {
	w, root := newTestWatcher(t, DefaultConfig())

	tests := []struct {
		path string
		want bool
	}{
		{"posts/hello.md", true},
		{"README.MD", true},
		{"docsplice.toml", true},
		{"docs/posts/doc.go", false},
		{"notes.txt", false},
		{".git/config.toml", false},
		{"posts/.draft.md", false},
		{"docs/.docsplice-123.tmp", false},
		{"node_modules/pkg/readme.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Relevant(filepath.Join(root, filepath.FromSlash(tt.path))))
		})
	}
}

func TestWatcher_WatchHidden(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WatchHidden = true
	w, root := newTestWatcher(t, cfg)

	assert.True(t, w.Relevant(filepath.Join(root, ".drafts", "post.md")))
	assert.False(t, w.Relevant(filepath.Join(root, ".git", "notes.md")))
}

func TestWatcher_AddIsIdempotent(t *testing.T) {
	w, root := newTestWatcher(t, DefaultConfig())

	require.NoError(t, w.Add(root))

	assert.Len(t, w.Roots(), 1)
}

func TestWatcher_AddMissingRoot(t *testing.T) {
	w, err := New(DefaultConfig())
	require.NoError(t, err)
	defer w.Close()

	err = w.Add(filepath.Join(t.TempDir(), "missing"))

	assert.Error(t, err)
}

func TestWatcher_RunDeliversBatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DebounceWindow = 20 * time.Millisecond
	cfg.MinInterval = 0
	w, root := newTestWatcher(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got := make(chan []Event, 1)
	runErr := make(chan error, 1)
	go func() {
		runErr <- w.Run(ctx, func(_ context.Context, events []Event) error {
			select {
			case got <- events:
			default:
			}
			return errors.New("handler errors are logged")
		})
	}()

	require.NoError(t, os.WriteFile(filepath.Join(root, "ignored.go"), []byte("package x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "post.md"), []byte("# Post\n"), 0o644))

	select {
	case events := <-got:
		require.NotEmpty(t, events)
		for _, e := range events {
			assert.Equal(t, filepath.Join(root, "post.md"), e.Path)
		}
	case <-ctx.Done():
		t.Fatal("no batch delivered")
	}

	cancel()
	assert.ErrorIs(t, <-runErr, context.Canceled)
}
