// Package task describes asynchronous effects as values.
//
// The update function returns a Task instead of performing work. The runtime
// hands each unit of the task to an executor; when a unit finishes, the
// messages it produced are delivered back to the update function as one
// ordered batch.
package task

import (
	"context"

	"github.com/go-drift/mvu/pkg/core"
)

// Emit delivers one message produced by a unit.
type Emit func(msg core.Message)

// Unit is one independently scheduled piece of work.
type Unit struct {
	// Run performs the work. It must return promptly once ctx is done.
	Run func(ctx context.Context, emit Emit) error
	// Streaming units deliver each message as soon as it is emitted
	// instead of batching them until Run returns.
	Streaming bool
	// OnError converts a failure into a message. Nil drops the failure
	// after logging it.
	OnError func(err error) core.Message
	// Handle, when set, cancels the unit and discards its pending output.
	Handle *Handle
}

// Task is an ordered collection of units. The zero value does nothing.
type Task struct {
	units []Unit
}

// None returns a task that does nothing.
func None() Task {
	return Task{}
}

// Units returns the units of the task.
func (t Task) Units() []Unit {
	return t.units
}

// IsNone reports whether the task has no work.
func (t Task) IsNone() bool {
	return len(t.units) == 0
}

// Done returns a task that immediately yields msgs, in order.
func Done(msgs ...core.Message) Task {
	if len(msgs) == 0 {
		return None()
	}
	out := append([]core.Message(nil), msgs...)
	return Task{units: []Unit{{
		Run: func(_ context.Context, emit Emit) error {
			for _, m := range out {
				emit(m)
			}
			return nil
		},
	}}}
}

// Perform runs fn and maps its result to a message.
func Perform[T any](fn func(ctx context.Context) (T, error), then func(T) core.Message) Task {
	return Task{units: []Unit{{
		Run: func(ctx context.Context, emit Emit) error {
			v, err := fn(ctx)
			if err != nil {
				return err
			}
			if then != nil {
				emit(then(v))
			}
			return nil
		},
	}}}
}

// Run runs fn with an emit callback. Messages are delivered together when
// fn returns.
func Run(fn func(ctx context.Context, emit Emit) error) Task {
	return Task{units: []Unit{{Run: fn}}}
}

// Stream runs fn and delivers every emitted message as soon as possible.
func Stream(fn func(ctx context.Context, emit Emit) error) Task {
	return Task{units: []Unit{{Run: fn, Streaming: true}}}
}

// Batch combines tasks. Their units run concurrently; each unit's batch is
// delivered when that unit completes.
func Batch(tasks ...Task) Task {
	var units []Unit
	for _, t := range tasks {
		units = append(units, t.units...)
	}
	return Task{units: units}
}

// Map transforms every message the task produces. Runtime actions pass
// through untouched.
func (t Task) Map(f func(core.Message) core.Message) Task {
	if t.IsNone() {
		return t
	}
	units := make([]Unit, len(t.units))
	for i, u := range t.units {
		run, onError := u.Run, u.OnError
		u.Run = func(ctx context.Context, emit Emit) error {
			return run(ctx, func(msg core.Message) {
				if _, ok := msg.(Action); ok {
					emit(msg)
					return
				}
				emit(f(msg))
			})
		}
		if onError != nil {
			u.OnError = func(err error) core.Message { return f(onError(err)) }
		}
		units[i] = u
	}
	return Task{units: units}
}

// OnError sets the failure mapper of every unit that does not have one.
func (t Task) OnError(f func(error) core.Message) Task {
	units := make([]Unit, len(t.units))
	for i, u := range t.units {
		if u.OnError == nil {
			u.OnError = f
		}
		units[i] = u
	}
	return Task{units: units}
}

// Abortable returns the task bound to a new handle. Aborting the handle
// cancels every unit and discards any output not yet delivered.
func (t Task) Abortable() (Task, *Handle) {
	h := NewHandle()
	units := make([]Unit, len(t.units))
	for i, u := range t.units {
		u.Handle = h
		units[i] = u
	}
	return Task{units: units}, h
}
