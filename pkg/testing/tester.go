package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/mvu/pkg/animation"
	"github.com/go-drift/mvu/pkg/app"
	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/engine"
	"github.com/go-drift/mvu/pkg/event"
	"github.com/go-drift/mvu/pkg/executor"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/settings"
	"github.com/go-drift/mvu/pkg/task"
)

const (
	// DefaultTestWidth is the default logical width of the test window.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default logical height of the test window.
	DefaultTestHeight = 600
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: frames are still requested")

// Tester drives an application instance on the test goroutine.
type Tester[S any] struct {
	tb        testing.TB
	inst      *app.Instance[S]
	tasks     *executor.Manual
	clock     *FakeClock
	clipboard *core.MemoryClipboard
	frame     graphics.Frame
}

// NewTester starts a with a test window of DefaultTestWidth by
// DefaultTestHeight, settles its initial task and renders the first frame.
// Options are applied after the tester's own, so they can override the
// window size or the executors.
func NewTester[S any](tb testing.TB, a app.Application[S], opts ...app.Option) *Tester[S] {
	tb.Helper()
	t := &Tester[S]{
		tb:        tb,
		tasks:     &executor.Manual{},
		clock:     NewFakeClock(),
		clipboard: &core.MemoryClipboard{},
	}
	s := settings.Default()
	s.Viewport = settings.Viewport{Width: DefaultTestWidth, Height: DefaultTestHeight}
	base := []app.Option{
		app.WithSettings(s),
		app.WithExecutor(t.tasks),
		app.WithClipboard(t.clipboard),
		app.WithClock(t.clock.Now),
	}
	inst, err := app.New(a, append(base, opts...)...)
	if err != nil {
		tb.Fatalf("app.New: %v", err)
	}
	tb.Cleanup(inst.Close)
	t.inst = inst
	t.Settle()
	t.Frame()
	return t
}

// Messages is the state of a widget tester: every message the widget
// published, in order.
type Messages []core.Message

// NewWidgetTester mounts a single widget. Published messages are recorded in
// the state instead of being handled. The widget can be replaced with
// SetWidget.
func NewWidgetTester(tb testing.TB, w core.Widget) *WidgetTester {
	tb.Helper()
	holder := &widgetHolder{widget: w}
	a := app.Application[Messages]{
		Init: func() (Messages, task.Task) { return nil, task.None() },
		Update: func(m Messages, msg core.Message) (Messages, task.Task) {
			return append(m, msg), task.None()
		},
		View: func(Messages) core.Widget { return holder.widget },
	}
	return &WidgetTester{Tester: NewTester(tb, a), holder: holder}
}

// WidgetTester is a Tester around a single widget.
type WidgetTester struct {
	*Tester[Messages]
	holder *widgetHolder
}

type widgetHolder struct {
	widget core.Widget
}

// SetWidget replaces the mounted widget, keeping the state of the widgets
// that match, and renders a frame.
func (t *WidgetTester) SetWidget(w core.Widget) {
	t.holder.widget = w
	t.inst.Refresh()
	t.Frame()
}

// Instance returns the application instance under test.
func (t *Tester[S]) Instance() *app.Instance[S] { return t.inst }

// UI returns the user interface of the instance.
func (t *Tester[S]) UI() *engine.UserInterface { return t.inst.UI() }

// State returns the current application state.
func (t *Tester[S]) State() S { return t.inst.State() }

// Clock returns the fake clock the instance reads.
func (t *Tester[S]) Clock() *FakeClock { return t.clock }

// Clipboard returns the in-memory clipboard the widgets use.
func (t *Tester[S]) Clipboard() *core.MemoryClipboard { return t.clipboard }

// LastFrame returns the most recently rendered frame.
func (t *Tester[S]) LastFrame() graphics.Frame { return t.frame }

// Settle runs queued tasks and delivers their messages until no work is
// left. Tasks that block forever block the test.
func (t *Tester[S]) Settle() {
	for t.tasks.RunPending() > 0 || t.inst.Pump() > 0 {
	}
}

// Send runs Update for msgs and settles.
func (t *Tester[S]) Send(msgs ...core.Message) {
	t.inst.Send(msgs...)
	t.Settle()
}

// Dispatch delivers events and settles.
func (t *Tester[S]) Dispatch(events ...event.Event) {
	t.inst.Dispatch(events...)
	t.Settle()
}

// Frame renders a frame regardless of whether one was requested.
func (t *Tester[S]) Frame() graphics.Frame {
	t.frame = t.inst.Frame()
	t.Settle()
	return t.frame
}

// Advance moves the clock forward by d and renders a frame if one became
// due. It reports whether a frame was rendered.
func (t *Tester[S]) Advance(d time.Duration) bool {
	t.clock.Advance(d)
	due, ok := t.inst.NextFrame()
	if !ok || due.After(t.clock.Now()) {
		return false
	}
	t.Frame()
	return true
}

// PumpAndSettle renders frames until no frame is requested. Before each
// frame the clock advances to the requested time, and by at least one
// frame interval. It returns ErrSettleTimeout if
// frames are still requested after timeout of fake time.
func (t *Tester[S]) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed <= timeout {
		due, ok := t.inst.NextFrame()
		if !ok {
			return nil
		}
		step := max(due.Sub(t.clock.Now()), animation.FrameInterval)
		t.clock.Advance(step)
		elapsed += step
		t.Frame()
	}
	return ErrSettleTimeout
}

// WaitFor pumps the queue on real time until cond holds for the state or
// timeout passes. It is meant for messages produced by subscriptions.
func (t *Tester[S]) WaitFor(cond func(S) bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		t.Settle()
		if cond(t.inst.State()) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
}

func (t *Tester[S]) stamp() event.Stamp {
	return event.Stamp{At: t.clock.Now()}
}
