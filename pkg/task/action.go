package task

import (
	"context"

	"github.com/go-drift/mvu/pkg/core"
)

// Action is a message addressed to the runtime rather than to the update
// function.
type Action interface {
	action()
}

// ExitAction stops the application loop.
type ExitAction struct{}

// WriteClipboardAction stores text in the clipboard.
type WriteClipboardAction struct{ Text string }

// ReadClipboardAction reads the clipboard and feeds the result to Then.
type ReadClipboardAction struct {
	Then func(text string, ok bool) core.Message
}

// FocusAction moves keyboard focus.
type FocusAction struct {
	// ID targets an identified widget. Empty means traversal.
	ID string
	// Previous selects backward traversal when ID is empty.
	Previous bool
	// Release clears focus.
	Release bool
}

func (ExitAction) action()           {}
func (WriteClipboardAction) action() {}
func (ReadClipboardAction) action()  {}
func (FocusAction) action()          {}

func actionTask(a Action) Task {
	return Task{units: []Unit{{
		Run: func(_ context.Context, emit Emit) error {
			emit(a)
			return nil
		},
	}}}
}

// Exit returns a task that stops the application.
func Exit() Task {
	return actionTask(ExitAction{})
}

// WriteClipboard returns a task that stores text in the clipboard.
func WriteClipboard(text string) Task {
	return actionTask(WriteClipboardAction{Text: text})
}

// ReadClipboard returns a task that reads the clipboard into a message.
func ReadClipboard(then func(text string, ok bool) core.Message) Task {
	return actionTask(ReadClipboardAction{Then: then})
}

// Focus returns a task that focuses the widget with the given id.
func Focus(id string) Task {
	return actionTask(FocusAction{ID: id})
}

// FocusNext returns a task that moves focus forward in tree order.
func FocusNext() Task {
	return actionTask(FocusAction{})
}

// FocusPrevious returns a task that moves focus backward in tree order.
func FocusPrevious() Task {
	return actionTask(FocusAction{Previous: true})
}

// Unfocus returns a task that clears focus.
func Unfocus() Task {
	return actionTask(FocusAction{Release: true})
}
