// Package engine owns the live widget tree of an application: it diffs new
// views against the state tree, lays the tree out lazily, routes input
// events to widgets and records frames.
package engine

import (
	"go.uber.org/zap"

	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/errors"
	"github.com/go-drift/mvu/pkg/event"
	"github.com/go-drift/mvu/pkg/focus"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/layout"
)

// State summarizes what a dispatch pass asks of the application loop.
type State struct {
	// Outdated reports that messages were published or a widget asked for a
	// rebuild, so the view must be regenerated.
	Outdated bool
	// Redraw is the most urgent redraw request made during the pass.
	Redraw core.RedrawRequest
}

// Stats counts the work done by a UserInterface.
type Stats struct {
	Layouts int
	Frames  int
}

// UserInterface is the runtime view of one widget tree.
//
// It is not safe for concurrent use; the application loop owns it.
type UserInterface struct {
	root      core.Widget
	tree      *core.Tree
	viewport  graphics.Size
	layout    layout.Node
	laidOut   bool
	clipboard core.Clipboard
	cursor    event.Cursor
	focus     focus.Manager
	// captured is the innermost widget under the pointer when a button went
	// down; pointer events go to it and its ancestors until release.
	captured *core.Tree
	hovered  []*core.Tree
	stats    Stats
}

// New builds the state tree for root.
func New(root core.Widget, viewport graphics.Size, clipboard core.Clipboard) *UserInterface {
	if clipboard == nil {
		clipboard = core.NullClipboard{}
	}
	return &UserInterface{
		root:      root,
		tree:      core.NewTree(root),
		viewport:  viewport,
		clipboard: clipboard,
	}
}

// Root returns the current root widget.
func (ui *UserInterface) Root() core.Widget { return ui.root }

// Tree returns the root state node.
func (ui *UserInterface) Tree() *core.Tree { return ui.tree }

// Viewport returns the current viewport size.
func (ui *UserInterface) Viewport() graphics.Size { return ui.viewport }

// Stats returns work counters.
func (ui *UserInterface) Stats() Stats { return ui.stats }

// Cursor returns the last known cursor.
func (ui *UserInterface) Cursor() event.Cursor { return ui.cursor }

// Rebuild diffs a new view against the state tree. Widget state survives
// wherever tags match; focus, pointer capture and hover are dropped for
// widgets that disappeared. Focus is also dropped when the focused widget
// stopped being focusable; it is told so, and the messages it publishes in
// response are returned.
func (ui *UserInterface) Rebuild(root core.Widget) []core.Message {
	ui.root = root
	ui.tree = ui.tree.Diff(root)
	ui.laidOut = false

	var msgs []core.Message
	if change := ui.focus.Validate(ui.root, ui.tree); change.Changed() {
		Logger().Debug("focused widget lost focus on rebuild")
		shell := core.NewShell(ui.clipboard)
		ui.notifyFocus(change, shell)
		msgs = shell.Messages()
	}
	if ui.captured != nil && ui.chainOf(ui.captured) == nil {
		ui.captured = nil
	}
	kept := ui.hovered[:0]
	for _, h := range ui.hovered {
		if ui.chainOf(h) != nil {
			kept = append(kept, h)
		}
	}
	ui.hovered = kept
	return msgs
}

// Resize changes the viewport. Layout is recomputed only if the size changed.
func (ui *UserInterface) Resize(size graphics.Size) {
	if size == ui.viewport {
		return
	}
	ui.viewport = size
	ui.laidOut = false
}

// InvalidateLayout forces the next access to recompute layout.
func (ui *UserInterface) InvalidateLayout() {
	ui.laidOut = false
}

// Layout returns the current layout, recomputing it if needed.
func (ui *UserInterface) Layout() layout.Node {
	if !ui.laidOut {
		ui.layout = layout.Root(core.LayoutChild(ui.root, ui.tree), ui.viewport)
		ui.laidOut = true
		ui.stats.Layouts++
	}
	return ui.layout
}

// Draw records the tree into a frame.
func (ui *UserInterface) Draw(background graphics.Color) graphics.Frame {
	node := ui.Layout()
	r := graphics.NewRecorder(ui.viewport)
	r.Clear(background)
	core.Draw(ui.root, ui.tree, r, node)
	ui.stats.Frames++
	return r.Finish()
}

// HitTest returns the widgets under pos, innermost first.
func (ui *UserInterface) HitTest(pos graphics.Offset) HitTestResult {
	var result HitTestResult
	hitTest(ui.rootFrame(), pos, &result)
	return result
}

// Entries returns every widget of the current layout in tree order.
func (ui *UserInterface) Entries() []Entry {
	var out []Entry
	walk(ui.rootFrame(), func(e Entry) { out = append(out, e) })
	return out
}

// Focused returns the focused widget entry.
func (ui *UserInterface) Focused() (Entry, bool) {
	if ui.focus.Primary() == nil {
		return Entry{}, false
	}
	c := ui.chainOf(ui.focus.Primary())
	if c == nil {
		return Entry{}, false
	}
	return c[0], true
}

// FocusID focuses the widget with the given id and returns the messages
// published by the widgets notified of the change. Unknown ids are ignored.
func (ui *UserInterface) FocusID(id string) []core.Message {
	ui.Layout()
	target, ok := focus.FindByID(ui.root, ui.tree, id)
	if !ok {
		Logger().Debug("focus request for unknown widget", zap.String("id", id))
		return nil
	}
	f, isF := target.Widget.(core.Focusable)
	if !isF || !f.Focusable(target.Tree) {
		Logger().Debug("focus request for non-focusable widget", zap.String("id", id))
		return nil
	}
	shell := core.NewShell(ui.clipboard)
	ui.notifyFocus(ui.focus.SetPrimary(target.Tree), shell)
	return shell.Messages()
}

// MoveFocus moves focus in tree order and returns the notification messages.
func (ui *UserInterface) MoveFocus(direction focus.TraversalDirection) []core.Message {
	ui.Layout()
	shell := core.NewShell(ui.clipboard)
	if change, ok := ui.focus.Move(ui.root, ui.tree, direction); ok {
		ui.notifyFocus(change, shell)
	}
	return shell.Messages()
}

// Unfocus clears focus and returns the notification messages.
func (ui *UserInterface) Unfocus() []core.Message {
	shell := core.NewShell(ui.clipboard)
	ui.notifyFocus(ui.focus.Clear(), shell)
	return shell.Messages()
}

func (ui *UserInterface) rootFrame() frame {
	return frame{
		widget: ui.root,
		tree:   ui.tree,
		node:   ui.Layout(),
		path:   core.Path{},
		clip:   ui.viewport.Rect(),
	}
}

func (ui *UserInterface) chainOf(tree *core.Tree) []Entry {
	if tree == nil {
		return nil
	}
	return chain(ui.rootFrame(), tree)
}

// deliver hands ev to one widget. A panicking widget is reported and
// treated as having ignored the event.
func (ui *UserInterface) deliver(e Entry, ev event.Event, shell *core.Shell) (status event.Status) {
	defer func() {
		if r := recover(); r != nil {
			errors.ReportWidgetError(&errors.WidgetError{
				Widget:     core.WidgetName(e.Widget),
				Method:     "OnEvent",
				Path:       e.Path.String(),
				Recovered:  r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  ev.Timestamp(),
			})
			status = event.Ignored
		}
	}()
	shell.SetTarget(e.Tree)
	return e.Widget.OnEvent(e.Tree, ev, e.Bounds, ui.cursor, shell)
}

// propagate delivers ev from the first entry outwards until one captures it.
func (ui *UserInterface) propagate(entries []Entry, ev event.Event, shell *core.Shell) event.Status {
	for _, e := range entries {
		if ui.deliver(e, ev, shell) == event.Captured {
			return event.Captured
		}
	}
	return event.Ignored
}
