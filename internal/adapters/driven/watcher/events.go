package watcher

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType classifies a file change.
type EventType int

const (
	EventCreate EventType = iota
	EventModify
	EventDelete
	EventRename
)

func (e EventType) String() string {
	switch e {
	case EventCreate:
		return "create"
	case EventModify:
		return "modify"
	case EventDelete:
		return "delete"
	case EventRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Event is a change to one file.
type Event struct {
	Path      string
	Type      EventType
	Timestamp time.Time
}

// eventType maps an fsnotify operation; chmod-only events report false.
func eventType(op fsnotify.Op) (EventType, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return EventCreate, true
	case op.Has(fsnotify.Write):
		return EventModify, true
	case op.Has(fsnotify.Remove):
		return EventDelete, true
	case op.Has(fsnotify.Rename):
		return EventRename, true
	default:
		return 0, false
	}
}
