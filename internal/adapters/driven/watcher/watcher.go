// Package watcher reports batches of source changes so docsplice can
// regenerate documentation while authors edit markdown.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docsplice/internal/logger"
)

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("watcher closed")

// HandlerFunc receives one debounced batch of changes.
type HandlerFunc func(ctx context.Context, events []Event) error

// Watcher watches directory trees recursively.
type Watcher struct {
	config      Config
	fsWatcher   *fsnotify.Watcher
	fsWatcherMu sync.Mutex
	debouncer   *Debouncer
	limiter     *rate.Limiter
	batches     chan []Event

	mu    sync.RWMutex
	roots []string
}

// New creates a watcher. Call Add for each tree, then Run.
func New(config Config) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	limit := rate.Inf
	if config.MinInterval > 0 {
		limit = rate.Every(config.MinInterval)
	}

	w := &Watcher{
		config:    config,
		fsWatcher: fsWatcher,
		limiter:   rate.NewLimiter(limit, 1),
		batches:   make(chan []Event, 1),
	}
	w.debouncer = NewDebouncer(config.DebounceWindow, config.MaxBatchSize, w.onFlush)
	return w, nil
}

// Add watches root and every directory beneath it that is not ignored.
func (w *Watcher) Add(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", root, err)
	}

	w.mu.Lock()
	if slices.Contains(w.roots, abs) {
		w.mu.Unlock()
		return nil
	}
	w.roots = append(w.roots, abs)
	w.mu.Unlock()

	if err := w.addToWatcher(abs); err != nil {
		return fmt.Errorf("watching %s: %w", abs, err)
	}
	logger.Debug("watching %s", abs)
	return w.walkAndAdd(abs)
}

// Roots returns the watched roots.
func (w *Watcher) Roots() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.roots)
}

func (w *Watcher) addToWatcher(path string) error {
	w.fsWatcherMu.Lock()
	defer w.fsWatcherMu.Unlock()
	return w.fsWatcher.Add(path)
}

func (w *Watcher) walkAndAdd(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		if w.shouldIgnore(full) {
			continue
		}
		if err := w.addToWatcher(full); err != nil {
			logger.Warn("cannot watch %s: %v", full, err)
			continue
		}
		logger.Debug("watching %s", full)
		if err := w.walkAndAdd(full); err != nil {
			logger.Warn("%v", err)
		}
	}
	return nil
}

// Run delivers batches to handle until ctx is cancelled. Handler errors are
// logged and watching continues. Deliveries are spaced by MinInterval.
func (w *Watcher) Run(ctx context.Context, handle HandlerFunc) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return ErrClosed
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return ErrClosed
			}
			logger.Warn("watch error: %v", err)

		case batch := <-w.batches:
			if err := w.limiter.Wait(ctx); err != nil {
				return ctx.Err()
			}
			if err := handle(ctx, batch); err != nil {
				logger.Warn("handling %d change(s): %v", len(batch), err)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	logger.Debug("file event %s %s", event.Op, event.Name)

	if event.Has(fsnotify.Create) && !w.shouldIgnore(event.Name) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addToWatcher(event.Name); err == nil {
				_ = w.walkAndAdd(event.Name)
			}
			return
		}
	}

	if !w.Relevant(event.Name) {
		return
	}
	typ, ok := eventType(event.Op)
	if !ok {
		return
	}
	w.debouncer.Add(Event{Path: event.Name, Type: typ, Timestamp: time.Now()})
}

// onFlush hands a batch to Run. A pending batch already triggers a full
// regeneration, so a second one is dropped.
func (w *Watcher) onFlush(events []Event) {
	select {
	case w.batches <- events:
	default:
		logger.Debug("regeneration pending, dropping %d change(s)", len(events))
	}
}

// Relevant reports whether a change to path should trigger a batch.
func (w *Watcher) Relevant(path string) bool {
	if w.shouldIgnore(path) {
		return false
	}
	if len(w.config.Extensions) == 0 {
		return true
	}
	return slices.Contains(w.config.Extensions, strings.ToLower(filepath.Ext(path)))
}

func (w *Watcher) shouldIgnore(path string) bool {
	rel := w.relative(path)

	if !w.config.WatchHidden {
		for _, part := range strings.Split(rel, "/") {
			if strings.HasPrefix(part, ".") && part != "." && part != ".." {
				return true
			}
		}
	}

	for _, pattern := range w.config.IgnorePatterns {
		if match, _ := doublestar.Match(pattern, rel); match {
			return true
		}
	}
	return false
}

// relative returns path as a slash path relative to its watched root.
func (w *Watcher) relative(path string) string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, root := range w.roots {
		rel, err := filepath.Rel(root, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(path)
}

// Close stops the watcher and flushes pending events.
func (w *Watcher) Close() error {
	w.debouncer.Stop()

	w.fsWatcherMu.Lock()
	defer w.fsWatcherMu.Unlock()
	return w.fsWatcher.Close()
}
