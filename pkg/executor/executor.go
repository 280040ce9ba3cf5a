// Package executor runs tasks and subscriptions off the application loop and
// funnels their messages back through a single bounded queue.
package executor

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Executor schedules work. Implementations decide where fn runs; fn must
// honor ctx.
type Executor interface {
	Spawn(ctx context.Context, fn func(ctx context.Context))
}

// Pool runs each job on its own goroutine, with an optional bound on how many
// run at once.
type Pool struct {
	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

// NewPool returns a pool running at most limit jobs concurrently.
// A limit of zero or less means unbounded.
func NewPool(limit int64) *Pool {
	p := &Pool{}
	if limit > 0 {
		p.sem = semaphore.NewWeighted(limit)
	}
	return p
}

// Spawn starts fn. When the pool is full the goroutine waits for a slot, or
// gives up if ctx is done first.
func (p *Pool) Spawn(ctx context.Context, fn func(ctx context.Context)) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if p.sem != nil {
			if err := p.sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer p.sem.Release(1)
		}
		fn(ctx)
	}()
}

// Wait blocks until every spawned job has returned.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Manual queues jobs until RunPending is called. It makes task execution
// deterministic in tests.
type Manual struct {
	mu      sync.Mutex
	pending []job
}

type job struct {
	ctx context.Context
	fn  func(ctx context.Context)
}

// Spawn queues fn.
func (m *Manual) Spawn(ctx context.Context, fn func(ctx context.Context)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, job{ctx: ctx, fn: fn})
}

// Pending returns the number of queued jobs.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// RunPending runs queued jobs on the calling goroutine in FIFO order,
// including jobs spawned while running, and returns how many ran. Jobs whose
// context is already done are skipped.
func (m *Manual) RunPending() int {
	ran := 0
	for {
		m.mu.Lock()
		if len(m.pending) == 0 {
			m.mu.Unlock()
			return ran
		}
		j := m.pending[0]
		m.pending = m.pending[1:]
		m.mu.Unlock()

		if j.ctx.Err() != nil {
			continue
		}
		j.fn(j.ctx)
		ran++
	}
}
