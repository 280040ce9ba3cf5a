// Package app runs a model-view-update application.
//
// An Application is four functions over a state type S. Init produces the
// first state, Update folds one message into the state and may return a
// task, View builds the widget tree from the state and Subscription declares
// the long-lived event sources the state needs.
//
// An Instance owns the state and drives the engine from a single goroutine:
// platform events and task output are serialized through it, so Update and
// View never run concurrently.
package app

import (
	"fmt"

	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/event"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/subscription"
	"github.com/go-drift/mvu/pkg/task"
)

// Application describes a program.
type Application[S any] struct {
	// Init returns the initial state and a task to run at startup.
	Init func() (S, task.Task)
	// Update folds a message into the state.
	Update func(state S, msg core.Message) (S, task.Task)
	// View builds the widget tree for the state.
	View func(state S) core.Widget
	// Subscription is optional.
	Subscription func(state S) subscription.Subscription
	// Background is optional and defaults to white.
	Background func(state S) graphics.Color
}

func (a Application[S]) validate() error {
	switch {
	case a.Init == nil:
		return fmt.Errorf("app: Init is required")
	case a.Update == nil:
		return fmt.Errorf("app: Update is required")
	case a.View == nil:
		return fmt.Errorf("app: View is required")
	}
	return nil
}

// Platform supplies input events. The channel is closed when the platform
// shuts down.
type Platform interface {
	Events() <-chan event.Event
}

// Sizer is implemented by platforms that know their initial surface size.
type Sizer interface {
	Size() graphics.Size
}

// Renderer consumes frames. It must not retain the frame's primitive slice
// beyond the call.
type Renderer interface {
	Render(frame graphics.Frame) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(frame graphics.Frame) error

// Render calls f.
func (f RendererFunc) Render(frame graphics.Frame) error {
	return f(frame)
}
