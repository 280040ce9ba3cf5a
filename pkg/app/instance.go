package app

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/engine"
	"github.com/go-drift/mvu/pkg/errors"
	"github.com/go-drift/mvu/pkg/event"
	"github.com/go-drift/mvu/pkg/executor"
	"github.com/go-drift/mvu/pkg/focus"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/subscription"
	"github.com/go-drift/mvu/pkg/task"
)

// minFrameInterval keeps a continuously animating tree from starving input.
const minFrameInterval = time.Millisecond

// Stats counts the work done by an instance.
type Stats struct {
	Updates int
	Frames  int
	Batches int
	// Dropped counts batches discarded because their source was cancelled.
	Dropped int
}

// Instance is a running application.
//
// Every method must be called from the goroutine that owns the instance.
// Run does that itself; tests usually drive the step methods (Dispatch,
// Deliver, Pump, Frame) directly.
type Instance[S any] struct {
	app Application[S]
	cfg config

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	state   S
	ui      *engine.UserInterface
	queue   *executor.Queue
	sources *executor.Sources
	runtime *executor.Runtime
	tracker *executor.Tracker

	pending   []core.Message
	outdated  bool
	redraw    core.RedrawRequest
	lastFrame time.Time
	exited    bool
	stats     Stats
}

// New initializes an application: it runs Init, builds the first view,
// schedules the initial task and starts the initial subscriptions.
func New[S any](a Application[S], opts ...Option) (*Instance[S], error) {
	if err := a.validate(); err != nil {
		return nil, err
	}
	cfg := newConfig(opts)
	if err := cfg.settings.Validate(); err != nil {
		return nil, &errors.RuntimeError{Op: "app.New", Kind: errors.KindConfig, Err: err}
	}

	ctx, cancel := context.WithCancel(context.Background())
	queue := executor.NewQueue(cfg.settings.QueueCapacity)
	sources := executor.NewSources()
	i := &Instance[S]{
		app:     a,
		cfg:     cfg,
		ctx:     ctx,
		cancel:  cancel,
		queue:   queue,
		sources: sources,
		runtime: executor.NewRuntime(cfg.tasks, queue, sources),
		tracker: executor.NewTracker(cfg.subscriptions, queue, sources, cfg.settings.SubscriptionBuffer),
		redraw:  core.RedrawNextFrame(),
	}

	state, initial := a.Init()
	i.state = state
	viewport := graphics.Size{Width: cfg.settings.Viewport.Width, Height: cfg.settings.Viewport.Height}
	i.ui = engine.New(i.view(nil), viewport, cfg.clipboard)
	i.runtime.Spawn(ctx, initial)
	i.syncSubscriptions()
	return i, nil
}

// State returns the current application state.
func (i *Instance[S]) State() S { return i.state }

// UI returns the engine holding the widget and state trees.
func (i *Instance[S]) UI() *engine.UserInterface { return i.ui }

// Exited reports whether an exit was requested.
func (i *Instance[S]) Exited() bool { return i.exited }

// Redraw returns the pending redraw request.
func (i *Instance[S]) Redraw() core.RedrawRequest { return i.redraw }

// Stats returns the instance counters.
func (i *Instance[S]) Stats() Stats { return i.stats }

// Dispatch delivers platform events to the widgets, then runs Update for
// every message they published. Widget and subscription handling share the
// statuses: subscriptions see whether a widget captured each event.
func (i *Instance[S]) Dispatch(events ...event.Event) {
	if len(events) == 0 {
		return
	}
	for _, ev := range events {
		if w, ok := ev.(event.Window); ok {
			switch w.Kind {
			case event.Resized:
				i.redraw = core.RedrawNextFrame()
			case event.CloseRequested:
				i.exited = true
			}
		}
	}

	st, statuses, msgs := i.ui.Update(events)
	for k, ev := range events {
		i.tracker.Broadcast(subscription.Interaction{Event: ev, Status: statuses[k]})
	}
	i.redraw = i.redraw.Merge(st.Redraw)
	i.pending = append(i.pending, msgs...)
	i.outdated = i.outdated || st.Outdated
	i.flush()
}

// Deliver folds batches produced by tasks and subscriptions, one message at
// a time. Liveness is checked before every message, so once an update
// cancels a source (by dropping its subscription or aborting its task) none
// of its remaining output is folded. Runtime actions are performed in order:
// the view is rebuilt from the messages ahead of an action first.
func (i *Instance[S]) Deliver(batches ...executor.Batch) {
	for _, b := range batches {
		i.deliver(b)
		i.sources.Delivered(b.Source)
	}
	i.flush()
}

func (i *Instance[S]) deliver(b executor.Batch) {
	if !i.sources.Alive(b.Source) {
		i.stats.Dropped++
		Logger().Debug("dropped batch from cancelled source", zap.Stringer("source", b.Source))
		return
	}
	i.stats.Batches++
	for k, m := range b.Messages {
		if !i.sources.Alive(b.Source) {
			Logger().Debug("source cancelled mid-batch",
				zap.Stringer("source", b.Source), zap.Int("skipped", len(b.Messages)-k))
			return
		}
		if a, ok := m.(task.Action); ok {
			i.flush()
			i.perform(a)
			continue
		}
		i.fold(m)
	}
}

// Pump delivers every batch already queued, without blocking, and returns
// the number of batches taken from the queue.
func (i *Instance[S]) Pump() int {
	batches := i.queue.Drain()
	if len(batches) > 0 {
		i.Deliver(batches...)
	}
	return len(batches)
}

// Send runs Update for msgs as if a widget had published them.
func (i *Instance[S]) Send(msgs ...core.Message) {
	i.pending = append(i.pending, msgs...)
	i.flush()
}

// Refresh rebuilds the view from the current state without running Update.
func (i *Instance[S]) Refresh() {
	i.outdated = true
	i.flush()
}

// Frame dispatches a redraw event, so animating widgets can advance, and
// records the current tree.
func (i *Instance[S]) Frame() graphics.Frame {
	now := i.cfg.now()
	i.redraw = core.RedrawWait()
	i.Dispatch(event.Redraw(now))
	frame := i.ui.Draw(i.background())
	i.lastFrame = now
	i.stats.Frames++
	return frame
}

// NextFrame returns when the next frame is due, if one was requested.
// Immediate requests are paced by Settings.RedrawInterval.
func (i *Instance[S]) NextFrame() (time.Time, bool) {
	if i.redraw.IsNextFrame() {
		interval := max(i.cfg.settings.RedrawInterval.Duration, minFrameInterval)
		return i.lastFrame.Add(interval), true
	}
	return i.redraw.At()
}

// Run drives the application until it exits, the platform closes its event
// channel or ctx is done. Frames are rendered when widgets or state changes
// ask for them.
func (i *Instance[S]) Run(ctx context.Context, platform Platform, renderer Renderer) error {
	defer i.Close()

	if s, ok := platform.(Sizer); ok {
		i.ui.Resize(s.Size())
	}
	events := platform.Events()
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for !i.exited {
		var wake <-chan time.Time
		if at, ok := i.NextFrame(); ok {
			d := at.Sub(i.cfg.now())
			if d <= 0 {
				if err := renderer.Render(i.Frame()); err != nil {
					errors.Report(&errors.RuntimeError{Op: "app.Instance.Run", Kind: errors.KindRender, Err: err})
				}
				continue
			}
			timer.Reset(d)
			wake = timer.C
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			i.Dispatch(drainEvents(ev, events)...)
		case b := <-i.queue.C():
			i.Deliver(append([]executor.Batch{b}, i.queue.Drain()...)...)
		case <-wake:
		}
		timer.Stop()
	}
	return nil
}

// Close cancels running tasks and subscriptions. It is safe to call more
// than once.
func (i *Instance[S]) Close() {
	i.closeOnce.Do(func() {
		i.tracker.Stop()
		i.cancel()
	})
}

// flush folds pending messages and, if anything changed, rebuilds the view.
// Messages published while rebuilding are folded in turn.
func (i *Instance[S]) flush() {
	for len(i.pending) > 0 || i.outdated {
		for len(i.pending) > 0 {
			m := i.pending[0]
			i.pending = i.pending[1:]
			i.fold(m)
		}
		if i.outdated {
			i.outdated = false
			i.pending = append(i.pending, i.ui.Rebuild(i.view(i.ui.Root()))...)
			i.redraw = core.RedrawNextFrame()
		}
	}
}

// fold runs Update for one message, schedules its task and re-derives the
// subscriptions from the new state.
func (i *Instance[S]) fold(msg core.Message) {
	i.runtime.Spawn(i.ctx, i.update(msg))
	i.stats.Updates++
	i.outdated = true
	i.syncSubscriptions()
}

// update runs Update for one message. A panicking update leaves the state
// unchanged and yields no task.
func (i *Instance[S]) update(msg core.Message) task.Task {
	var t task.Task
	err := errors.Guard("app.Instance.update", func() error {
		next, tk := i.app.Update(i.state, msg)
		i.state, t = next, tk
		return nil
	})
	if err != nil {
		report("app.Instance.update", err)
		return task.None()
	}
	return t
}

// view builds the widget tree. If View panics or returns nil the previous
// root is kept.
func (i *Instance[S]) view(previous core.Widget) core.Widget {
	var root core.Widget
	err := errors.Guard("app.Instance.view", func() error {
		root = i.app.View(i.state)
		return nil
	})
	if err != nil {
		report("app.Instance.view", err)
	}
	if root == nil {
		if previous != nil {
			return previous
		}
		return blank{}
	}
	return root
}

func (i *Instance[S]) syncSubscriptions() {
	if i.app.Subscription == nil {
		return
	}
	var s subscription.Subscription
	err := errors.Guard("app.Instance.subscription", func() error {
		s = i.app.Subscription(i.state)
		return nil
	})
	if err != nil {
		report("app.Instance.subscription", err)
		return
	}
	if started, stopped := i.tracker.Update(i.ctx, s); started+stopped > 0 {
		Logger().Debug("subscriptions updated",
			zap.Int("started", started), zap.Int("stopped", stopped), zap.Int("running", i.tracker.Len()))
	}
}

func (i *Instance[S]) perform(a task.Action) {
	switch a := a.(type) {
	case task.ExitAction:
		i.exited = true
	case task.WriteClipboardAction:
		i.cfg.clipboard.Write(a.Text)
	case task.ReadClipboardAction:
		if a.Then != nil {
			text, ok := i.cfg.clipboard.Read()
			i.pending = append(i.pending, a.Then(text, ok))
		}
	case task.FocusAction:
		var msgs []core.Message
		switch {
		case a.Release:
			msgs = i.ui.Unfocus()
		case a.ID != "":
			msgs = i.ui.FocusID(a.ID)
		case a.Previous:
			msgs = i.ui.MoveFocus(focus.TraversalPrevious)
		default:
			msgs = i.ui.MoveFocus(focus.TraversalNext)
		}
		i.pending = append(i.pending, msgs...)
		i.redraw = i.redraw.Merge(core.RedrawNextFrame())
	}
}

func (i *Instance[S]) background() graphics.Color {
	if i.app.Background == nil {
		return graphics.ColorWhite
	}
	return i.app.Background(i.state)
}

func report(op string, err error) {
	var pe *errors.PanicError
	if stderrors.As(err, &pe) {
		errors.ReportPanic(pe)
		return
	}
	errors.Report(&errors.RuntimeError{Op: op, Kind: errors.KindUnknown, Err: err})
}

// drainEvents batches the events already buffered behind first.
func drainEvents(first event.Event, ch <-chan event.Event) []event.Event {
	batch := []event.Event{first}
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return batch
			}
			batch = append(batch, ev)
		default:
			return batch
		}
	}
}
