package core

import (
	"sync"
	"time"
)

type redrawKind uint8

const (
	redrawWait redrawKind = iota
	redrawAt
	redrawNextFrame
)

// RedrawRequest asks the runtime to redraw at some point.
// The zero value waits for the next event.
type RedrawRequest struct {
	kind redrawKind
	at   time.Time
}

// RedrawNextFrame requests a redraw as soon as possible.
func RedrawNextFrame() RedrawRequest {
	return RedrawRequest{kind: redrawNextFrame}
}

// RedrawAt requests a redraw no later than t.
func RedrawAt(t time.Time) RedrawRequest {
	return RedrawRequest{kind: redrawAt, at: t}
}

// RedrawWait requests no redraw.
func RedrawWait() RedrawRequest {
	return RedrawRequest{}
}

// IsWait reports whether no redraw was requested.
func (r RedrawRequest) IsWait() bool { return r.kind == redrawWait }

// IsNextFrame reports whether an immediate redraw was requested.
func (r RedrawRequest) IsNextFrame() bool { return r.kind == redrawNextFrame }

// At returns the requested deadline for timed requests.
func (r RedrawRequest) At() (time.Time, bool) {
	return r.at, r.kind == redrawAt
}

// Merge returns the more urgent of two requests.
func (r RedrawRequest) Merge(other RedrawRequest) RedrawRequest {
	switch {
	case r.kind == redrawNextFrame || other.kind == redrawNextFrame:
		return RedrawNextFrame()
	case r.kind == redrawWait:
		return other
	case other.kind == redrawWait:
		return r
	case other.at.Before(r.at):
		return other
	default:
		return r
	}
}

// Clipboard gives widgets and tasks access to the system clipboard.
type Clipboard interface {
	Read() (string, bool)
	Write(text string)
}

// NullClipboard discards writes and never has content.
type NullClipboard struct{}

func (NullClipboard) Read() (string, bool) { return "", false }
func (NullClipboard) Write(string)         {}

// MemoryClipboard is an in-process clipboard.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
	set  bool
}

// Read returns the stored text.
func (c *MemoryClipboard) Read() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, c.set
}

// Write replaces the stored text.
func (c *MemoryClipboard) Write(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text, c.set = text, true
}

// FocusRequest is a focus change asked for by a widget.
type FocusRequest struct {
	// Target is the node that asked; nil for a release.
	Target *Tree
	// Release drops focus instead of taking it.
	Release bool
}

// Shell collects the side effects of one event dispatch pass.
//
// Widgets never mutate application state. They publish messages and request
// redraws, relayouts, rebuilds or focus changes through the shell, and the
// runtime applies them once the pass completes.
type Shell struct {
	messages       []Message
	redraw         RedrawRequest
	layoutInvalid  bool
	widgetsInvalid bool
	focus          []FocusRequest
	clipboard      Clipboard
	target         *Tree
}

// NewShell returns a shell backed by clipboard. A nil clipboard is replaced
// by NullClipboard.
func NewShell(clipboard Clipboard) *Shell {
	if clipboard == nil {
		clipboard = NullClipboard{}
	}
	return &Shell{clipboard: clipboard}
}

// Publish emits a message to the update function.
func (s *Shell) Publish(msg Message) {
	s.messages = append(s.messages, msg)
}

// RequestRedraw asks for a redraw on the next frame.
func (s *Shell) RequestRedraw() {
	s.redraw = s.redraw.Merge(RedrawNextFrame())
}

// RequestRedrawAt asks for a redraw no later than t.
func (s *Shell) RequestRedrawAt(t time.Time) {
	s.redraw = s.redraw.Merge(RedrawAt(t))
}

// InvalidateLayout forces a layout pass before the next draw.
func (s *Shell) InvalidateLayout() {
	s.layoutInvalid = true
}

// InvalidateWidgets forces the view to be rebuilt even without messages.
func (s *Shell) InvalidateWidgets() {
	s.widgetsInvalid = true
}

// RequestFocus asks for keyboard focus on the widget handling the event.
func (s *Shell) RequestFocus() {
	if s.target == nil {
		return
	}
	s.focus = append(s.focus, FocusRequest{Target: s.target})
}

// Unfocus releases keyboard focus.
func (s *Shell) Unfocus() {
	s.focus = append(s.focus, FocusRequest{Release: true})
}

// Clipboard returns the clipboard available during this pass.
func (s *Shell) Clipboard() Clipboard {
	return s.clipboard
}

// Messages returns the published messages in emission order.
func (s *Shell) Messages() []Message {
	return s.messages
}

// Redraw returns the merged redraw request.
func (s *Shell) Redraw() RedrawRequest {
	return s.redraw
}

// IsLayoutInvalid reports whether a widget invalidated layout.
func (s *Shell) IsLayoutInvalid() bool {
	return s.layoutInvalid
}

// AreWidgetsInvalid reports whether a widget asked for a rebuild.
func (s *Shell) AreWidgetsInvalid() bool {
	return s.widgetsInvalid
}

// SetTarget records the node currently receiving an event.
// It is called by the dispatcher before each delivery.
func (s *Shell) SetTarget(t *Tree) {
	s.target = t
}

// TakeFocusRequests returns and clears pending focus requests.
func (s *Shell) TakeFocusRequests() []FocusRequest {
	reqs := s.focus
	s.focus = nil
	return reqs
}
