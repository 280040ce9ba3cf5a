package main

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/go-drift/mvu/pkg/app"
	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/event"
	"github.com/go-drift/mvu/pkg/layout"
	"github.com/go-drift/mvu/pkg/subscription"
	"github.com/go-drift/mvu/pkg/task"
	"github.com/go-drift/mvu/pkg/widgets"
)

// Counter is the application state.
type Counter struct {
	Value int64
}

// Messages.
type (
	Increment struct{}
	Decrement struct{}
	// EventSeen carries a runtime event no widget captured.
	EventSeen struct{ Event event.Event }
)

// Metrics sizes the view for a backend.
type Metrics struct {
	Padding     float64
	ValueSize   float64
	ButtonInset layout.Padding
}

var (
	// PixelMetrics suits the raster backend.
	PixelMetrics = Metrics{Padding: 20, ValueSize: 50, ButtonInset: layout.PaddingSymmetric(8, 16)}
	// CellMetrics suits the terminal, where a unit is a cell.
	CellMetrics = Metrics{Padding: 1, ValueSize: 1, ButtonInset: layout.PaddingSymmetric(0, 1)}
)

// NewApp returns the counter application.
func NewApp(m Metrics) app.Application[Counter] {
	return app.Application[Counter]{
		Init:   func() (Counter, task.Task) { return Counter{}, task.None() },
		Update: update,
		View: func(c Counter) core.Widget {
			return view(c, m)
		},
		Subscription: func(Counter) subscription.Subscription {
			return subscription.Events(func(ev event.Event) (core.Message, bool) {
				if w, ok := ev.(event.Window); ok && w.Kind == event.RedrawRequested {
					return nil, false
				}
				return EventSeen{Event: ev}, true
			})
		},
	}
}

func update(c Counter, msg core.Message) (Counter, task.Task) {
	switch msg := msg.(type) {
	case Increment:
		c.Value++
	case Decrement:
		c.Value--
	case EventSeen:
		logger().Debug("event", zap.String("type", eventName(msg.Event)))
	}
	return c, task.None()
}

func view(c Counter, m Metrics) core.Widget {
	return widgets.ColumnOf(
		widgets.ButtonOf("Increment", Increment{}).WithPadding(m.ButtonInset),
		widgets.TextOf(strconv.FormatInt(c.Value, 10)).WithSize(m.ValueSize),
		widgets.ButtonOf("Decrement", Decrement{}).WithPadding(m.ButtonInset),
	).WithPadding(layout.PaddingAll(m.Padding)).WithAlign(layout.AlignCenter)
}

func eventName(ev event.Event) string {
	switch ev := ev.(type) {
	case event.Mouse:
		return "mouse." + ev.Kind.String()
	case event.Window:
		return "window." + ev.Kind.String()
	case event.Keyboard:
		return "keyboard." + string(ev.Key)
	default:
		return "other"
	}
}
