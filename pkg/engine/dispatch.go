package engine

import (
	"time"

	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/event"
	"github.com/go-drift/mvu/pkg/focus"
)

// Update dispatches a batch of events.
//
// Each event goes through hit testing (or focus lookup), delivery and
// resolution in turn. All events of the batch share one Shell, so the
// returned messages keep their emission order across events. The statuses
// slice is parallel to events.
func (ui *UserInterface) Update(events []event.Event) (State, []event.Status, []core.Message) {
	shell := core.NewShell(ui.clipboard)
	statuses := make([]event.Status, len(events))

	for i, ev := range events {
		statuses[i] = ui.dispatch(ev, shell)
		ui.resolveFocus(shell)
		if shell.IsLayoutInvalid() {
			// Later events in the batch hit test against the new geometry.
			ui.InvalidateLayout()
		}
	}

	return State{
		Outdated: len(shell.Messages()) > 0 || shell.AreWidgetsInvalid(),
		Redraw:   shell.Redraw(),
	}, statuses, shell.Messages()
}

func (ui *UserInterface) dispatch(ev event.Event, shell *core.Shell) event.Status {
	switch e := ev.(type) {
	case event.Mouse:
		return ui.dispatchMouse(e, shell)
	case event.Keyboard:
		return ui.dispatchKeyboard(e, shell)
	case event.Window:
		return ui.dispatchWindow(e, shell)
	case event.Focus, event.Hover:
		// Synthesized by the dispatcher only.
		return event.Ignored
	default:
		return ui.broadcast(ev, shell)
	}
}

func (ui *UserInterface) dispatchMouse(e event.Mouse, shell *core.Shell) event.Status {
	switch e.Kind {
	case event.CursorEntered:
		return event.Ignored
	case event.CursorLeft:
		ui.cursor = event.Cursor{}
		ui.updateHover(nil, e.At, shell)
		return event.Ignored
	}

	ui.cursor = event.Cursor{Position: e.Position, Available: true}
	hit := ui.HitTest(e.Position)

	if e.Kind == event.CursorMoved {
		ui.updateHover(hit.Entries, e.At, shell)
	}

	targets := hit.Entries
	if ui.captured != nil && (e.Kind == event.CursorMoved || e.Kind == event.ButtonReleased) {
		if c := ui.chainOf(ui.captured); c != nil {
			targets = c
		}
	}

	if e.Kind == event.ButtonPressed {
		ui.captured = nil
		if len(hit.Entries) > 0 {
			ui.captured = hit.Entries[0].Tree
		}
		// Pressing outside the focused widget releases focus. A widget on the
		// hit path may take it back during delivery.
		if primary := ui.focus.Primary(); primary != nil && !hit.Contains(primary) {
			ui.notifyFocus(ui.focus.Clear(), shell)
		}
	}

	status := ui.propagate(targets, e, shell)

	if e.Kind == event.ButtonReleased {
		ui.captured = nil
	}
	return status
}

func (ui *UserInterface) dispatchKeyboard(e event.Keyboard, shell *core.Shell) event.Status {
	var targets []Entry
	if primary := ui.focus.Primary(); primary != nil {
		targets = ui.chainOf(primary)
	}
	status := ui.propagate(targets, e, shell)
	if status == event.Captured || e.Kind != event.KeyPressed || e.Key != event.KeyTab {
		return status
	}

	direction := focus.TraversalNext
	if e.Modifiers.Shift() {
		direction = focus.TraversalPrevious
	}
	change, ok := ui.focus.Move(ui.root, ui.tree, direction)
	if !ok {
		return event.Ignored
	}
	ui.notifyFocus(change, shell)
	return event.Captured
}

func (ui *UserInterface) dispatchWindow(e event.Window, shell *core.Shell) event.Status {
	switch e.Kind {
	case event.Resized:
		ui.Resize(e.Size)
	case event.Unfocused:
		ui.notifyFocus(ui.focus.Clear(), shell)
	}
	return ui.broadcast(e, shell)
}

// broadcast delivers ev to every widget in tree order, regardless of status.
func (ui *UserInterface) broadcast(ev event.Event, shell *core.Shell) event.Status {
	var entries []Entry
	walk(ui.rootFrame(), func(e Entry) { entries = append(entries, e) })

	status := event.Ignored
	for _, e := range entries {
		status = status.Merge(ui.deliver(e, ev, shell))
	}
	return status
}

// updateHover sends Hover notifications to widgets the cursor left or entered.
func (ui *UserInterface) updateHover(hit []Entry, at time.Time, shell *core.Shell) {
	for _, old := range ui.hovered {
		if containsEntry(hit, old) {
			continue
		}
		if c := ui.chainOf(old); c != nil {
			ui.deliver(c[0], event.Hover{Stamp: event.Stamp{At: at}, Entered: false}, shell)
		}
	}
	next := make([]*core.Tree, 0, len(hit))
	for _, e := range hit {
		if !ui.isHovered(e.Tree) {
			ui.deliver(e, event.Hover{Stamp: event.Stamp{At: at}, Entered: true}, shell)
		}
		next = append(next, e.Tree)
	}
	ui.hovered = next
}

func (ui *UserInterface) isHovered(tree *core.Tree) bool {
	for _, h := range ui.hovered {
		if h == tree {
			return true
		}
	}
	return false
}

// resolveFocus applies the first valid focus request collected during
// delivery. Innermost widgets are delivered to first, so they win over
// ancestors. Requests made while notifying focus changes are dropped.
func (ui *UserInterface) resolveFocus(shell *core.Shell) {
	for _, req := range shell.TakeFocusRequests() {
		if req.Release {
			ui.notifyFocus(ui.focus.Clear(), shell)
			break
		}
		c := ui.chainOf(req.Target)
		if c == nil {
			continue
		}
		f, ok := c[0].Widget.(core.Focusable)
		if !ok || !f.Focusable(c[0].Tree) {
			Logger().Debug("focus requested by non-focusable widget")
			continue
		}
		ui.notifyFocus(ui.focus.SetPrimary(req.Target), shell)
		break
	}
	shell.TakeFocusRequests()
}

// notifyFocus tells the widgets involved in a focus change about it.
func (ui *UserInterface) notifyFocus(change focus.Change, shell *core.Shell) {
	if !change.Changed() {
		return
	}
	now := time.Now()
	if c := ui.chainOf(change.Lost); c != nil {
		ui.deliver(c[0], event.Focus{Stamp: event.Stamp{At: now}, Gained: false}, shell)
	}
	if c := ui.chainOf(change.Gained); c != nil {
		ui.deliver(c[0], event.Focus{Stamp: event.Stamp{At: now}, Gained: true}, shell)
	}
	shell.RequestRedraw()
}
