package event

import (
	"time"

	"github.com/go-drift/mvu/pkg/graphics"
)

// WindowKind identifies a window event.
type WindowKind int

const (
	Resized WindowKind = iota
	Focused
	Unfocused
	CloseRequested
	// RedrawRequested is delivered when a requested redraw is due.
	RedrawRequested
)

// String returns a human-readable representation of the kind.
func (k WindowKind) String() string {
	switch k {
	case Resized:
		return "resized"
	case Focused:
		return "focused"
	case Unfocused:
		return "unfocused"
	case CloseRequested:
		return "close_requested"
	case RedrawRequested:
		return "redraw_requested"
	default:
		return "unknown"
	}
}

// Window is broadcast to every widget.
type Window struct {
	Stamp
	Kind WindowKind
	// Size is the new viewport for Resized.
	Size graphics.Size
}

// Redraw returns a RedrawRequested event for now.
func Redraw(now time.Time) Window {
	return Window{Stamp: Stamp{At: now}, Kind: RedrawRequested}
}
