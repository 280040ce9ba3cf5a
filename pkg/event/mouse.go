package event

import "github.com/go-drift/mvu/pkg/graphics"

// MouseKind identifies a mouse event.
type MouseKind int

const (
	CursorMoved MouseKind = iota
	ButtonPressed
	ButtonReleased
	WheelScrolled
	// CursorEntered and CursorLeft refer to the window, not to widgets.
	CursorEntered
	CursorLeft
)

// String returns a human-readable representation of the kind.
func (k MouseKind) String() string {
	switch k {
	case CursorMoved:
		return "cursor_moved"
	case ButtonPressed:
		return "button_pressed"
	case ButtonReleased:
		return "button_released"
	case WheelScrolled:
		return "wheel_scrolled"
	case CursorEntered:
		return "cursor_entered"
	case CursorLeft:
		return "cursor_left"
	default:
		return "unknown"
	}
}

// MouseButton identifies a pointer button.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

// Mouse is a pointer event. Position is in window coordinates.
type Mouse struct {
	Stamp
	Kind     MouseKind
	Position graphics.Offset
	Button   MouseButton
	// Delta is the scroll amount for WheelScrolled, in logical pixels.
	Delta graphics.Offset
}

// Hover notifies a widget that the cursor entered or left its bounds.
// It is synthesized by the dispatcher and never captured.
type Hover struct {
	Stamp
	Entered bool
}
