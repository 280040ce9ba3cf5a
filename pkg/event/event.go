// Package event defines the raw input events the runtime dispatches to
// widgets, and the status a widget returns after seeing one.
package event

import (
	"fmt"
	"time"

	"github.com/go-drift/mvu/pkg/graphics"
)

// Event is any input delivered by the platform or synthesized by the runtime.
type Event interface {
	// Timestamp returns when the event happened.
	Timestamp() time.Time
}

// Stamp carries the event timestamp. Embed it in event types.
type Stamp struct {
	At time.Time
}

// Timestamp returns when the event happened.
func (s Stamp) Timestamp() time.Time { return s.At }

// Status reports whether a widget consumed an event.
type Status int

const (
	// Ignored lets the event continue to the next candidate.
	Ignored Status = iota
	// Captured stops propagation.
	Captured
)

// Merge returns Captured if either status is Captured.
func (s Status) Merge(other Status) Status {
	if s == Captured || other == Captured {
		return Captured
	}
	return Ignored
}

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case Ignored:
		return "ignored"
	case Captured:
		return "captured"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Cursor is the last known pointer position.
type Cursor struct {
	Position  graphics.Offset
	Available bool
}

// IsOver reports whether the cursor is known and inside bounds.
func (c Cursor) IsOver(bounds graphics.Rect) bool {
	return c.Available && bounds.Contains(c.Position)
}
