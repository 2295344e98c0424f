package watcher

import (
	"sort"
	"sync"
	"time"
)

// Debouncer coalesces events per path and flushes them once no new event
// has arrived for the window, or as soon as maxBatch paths are pending.
type Debouncer struct {
	window   time.Duration
	maxBatch int
	events   map[string]Event
	mu       sync.Mutex
	timer    *time.Timer
	onFlush  func([]Event)
	stopped  bool
}

// NewDebouncer creates a debouncer. onFlush runs without the lock held.
func NewDebouncer(window time.Duration, maxBatch int, onFlush func([]Event)) *Debouncer {
	return &Debouncer{
		window:   window,
		maxBatch: maxBatch,
		events:   make(map[string]Event),
		onFlush:  onFlush,
	}
}

// Add records an event, replacing any pending event for the same path.
func (d *Debouncer) Add(event Event) {
	d.mu.Lock()

	if d.stopped {
		d.mu.Unlock()
		return
	}

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.events[event.Path] = event

	if d.maxBatch > 0 && len(d.events) >= d.maxBatch {
		d.flushLocked()
		return
	}

	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		if d.stopped {
			d.mu.Unlock()
			return
		}
		d.flushLocked()
	})

	d.mu.Unlock()
}

// flushLocked releases d.mu before calling onFlush.
func (d *Debouncer) flushLocked() {
	events := make([]Event, 0, len(d.events))
	for _, event := range d.events {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Path < events[j].Path })

	d.events = make(map[string]Event)

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.mu.Unlock()

	if len(events) > 0 && d.onFlush != nil {
		d.onFlush(events)
	}
}

// Stop flushes pending events and ignores any that arrive later.
func (d *Debouncer) Stop() {
	d.mu.Lock()

	if d.stopped {
		d.mu.Unlock()
		return
	}

	d.stopped = true

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if len(d.events) > 0 {
		d.flushLocked()
		return
	}
	d.mu.Unlock()
}
