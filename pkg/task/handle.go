package task

import (
	"context"
	"sync"
)

// Handle aborts the units of an abortable task.
type Handle struct {
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once

	mu      sync.Mutex
	aborted bool
	onAbort []func()
}

// NewHandle returns a live handle.
func NewHandle() *Handle {
	ctx, cancel := context.WithCancel(context.Background())
	return &Handle{ctx: ctx, cancel: cancel}
}

// Abort cancels the bound units and runs the OnAbort callbacks before
// returning. It is safe to call more than once.
func (h *Handle) Abort() {
	h.once.Do(func() {
		h.cancel()
		h.mu.Lock()
		h.aborted = true
		fs := h.onAbort
		h.onAbort = nil
		h.mu.Unlock()
		for _, f := range fs {
			f()
		}
	})
}

// Aborted reports whether Abort was called.
func (h *Handle) Aborted() bool {
	return h.ctx.Err() != nil
}

// OnAbort registers f to run inside Abort, on the aborting goroutine. If the
// handle is already aborted f runs immediately.
func (h *Handle) OnAbort(f func()) {
	h.mu.Lock()
	if h.aborted {
		h.mu.Unlock()
		f()
		return
	}
	h.onAbort = append(h.onAbort, f)
	h.mu.Unlock()
}

// Bind returns a context cancelled when either parent is done or the handle
// is aborted.
func (h *Handle) Bind(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(h.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
