package executor

import (
	"context"
	stderrors "errors"
	"sync"

	"go.uber.org/zap"

	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/errors"
	"github.com/go-drift/mvu/pkg/task"
)

// Runtime turns tasks into scheduled units whose output lands in a Queue.
type Runtime struct {
	exec    Executor
	queue   *Queue
	sources *Sources
}

// NewRuntime returns a runtime scheduling on exec and delivering to queue.
func NewRuntime(exec Executor, queue *Queue, sources *Sources) *Runtime {
	return &Runtime{exec: exec, queue: queue, sources: sources}
}

// Spawn schedules every unit of t. It never blocks on the work itself.
func (r *Runtime) Spawn(ctx context.Context, t task.Task) {
	for _, u := range t.Units() {
		r.spawnUnit(ctx, u)
	}
}

func (r *Runtime) spawnUnit(ctx context.Context, u task.Unit) {
	id := r.sources.New()
	if u.Handle != nil {
		u.Handle.OnAbort(func() { r.sources.Kill(id) })
	}

	r.exec.Spawn(ctx, func(ctx context.Context) {
		defer r.sources.Finish(id)
		if u.Handle != nil {
			var cancel context.CancelFunc
			ctx, cancel = u.Handle.Bind(ctx)
			defer cancel()
		}

		var (
			mu       sync.Mutex
			msgs     []core.Message
			returned bool
		)
		emit := func(m core.Message) {
			mu.Lock()
			defer mu.Unlock()
			if returned {
				Logger().Debug("message emitted after its unit returned", zap.Stringer("source", id))
				return
			}
			if u.Streaming {
				r.push(ctx, id, []core.Message{m})
				return
			}
			msgs = append(msgs, m)
		}

		err := errors.Guard("executor.Runtime.unit", func() error { return u.Run(ctx, emit) })
		mu.Lock()
		returned = true
		out := msgs
		mu.Unlock()

		if err != nil && ctx.Err() == nil {
			if m, ok := r.failure(id, u.OnError, err); ok {
				out = append(out, m)
			}
		}
		if u.Handle != nil && u.Handle.Aborted() {
			return
		}
		if len(out) > 0 {
			r.push(ctx, id, out)
		}
	})
}

func (r *Runtime) push(ctx context.Context, id SourceID, msgs []core.Message) {
	if err := push(ctx, r.queue, r.sources, Batch{Source: id, Messages: msgs}); err != nil {
		Logger().Debug("dropping batch from cancelled source",
			zap.Stringer("source", id), zap.Int("messages", len(msgs)))
	}
}

// failure maps a unit error to a message, or reports and drops it.
func (r *Runtime) failure(id SourceID, onError func(error) core.Message, err error) (core.Message, bool) {
	if onError != nil {
		var msg core.Message
		mapErr := errors.Guard("executor.Runtime.onError", func() error {
			msg = onError(err)
			return nil
		})
		if mapErr == nil {
			return msg, true
		}
		err = mapErr
	}
	reportFailure("executor.Runtime", errors.KindTask, id, err)
	return nil, false
}

func reportFailure(op string, kind errors.ErrorKind, id SourceID, err error) {
	var pe *errors.PanicError
	if stderrors.As(err, &pe) {
		errors.ReportPanic(pe)
		return
	}
	errors.Report(&errors.RuntimeError{
		Op:     op,
		Kind:   kind,
		Err:    err,
		Source: id.String(),
	})
}
