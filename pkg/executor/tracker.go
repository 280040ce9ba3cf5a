package executor

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/errors"
	"github.com/go-drift/mvu/pkg/subscription"
)

// DefaultEventBuffer is the per-subscription backlog of broadcast events.
const DefaultEventBuffer = 64

// Tracker keeps the running set of subscriptions in sync with the
// application's declared subscription.
type Tracker struct {
	mu      sync.Mutex
	exec    Executor
	queue   *Queue
	sources *Sources
	buffer  int
	running map[subscription.Key]*running
}

type running struct {
	source SourceID
	cancel context.CancelFunc
	events chan subscription.Interaction
}

// NewTracker returns a tracker spawning recipes on exec. Recipes usually run
// for the application's lifetime, so exec should not bound concurrency.
func NewTracker(exec Executor, queue *Queue, sources *Sources, buffer int) *Tracker {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	return &Tracker{
		exec:    exec,
		queue:   queue,
		sources: sources,
		buffer:  buffer,
		running: make(map[subscription.Key]*running),
	}
}

// Update reconciles the running recipes with s. Recipes whose key is already
// running are left alone, new keys are started and missing keys are
// cancelled; any batch a cancelled recipe left in the queue is discarded.
func (t *Tracker) Update(ctx context.Context, s subscription.Subscription) (started, stopped int) {
	type wanted struct {
		key    subscription.Key
		recipe subscription.Recipe
	}
	var order []wanted
	seen := make(map[subscription.Key]bool)
	for _, r := range s.Recipes() {
		k := r.Key()
		if !k.Valid() {
			errors.Report(&errors.RuntimeError{
				Op:   "executor.Tracker.Update",
				Kind: errors.KindSubscription,
				Err:  fmt.Errorf("subscription id %T is not comparable", k.ID),
			})
			continue
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		order = append(order, wanted{key: k, recipe: r})
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for k, run := range t.running {
		if seen[k] {
			continue
		}
		run.cancel()
		t.sources.Kill(run.source)
		delete(t.running, k)
		stopped++
		Logger().Debug("subscription stopped", zap.Stringer("key", k))
	}

	for _, w := range order {
		if _, ok := t.running[w.key]; ok {
			continue
		}
		t.running[w.key] = t.start(ctx, w.key, w.recipe)
		started++
		Logger().Debug("subscription started", zap.Stringer("key", w.key))
	}
	return started, stopped
}

func (t *Tracker) start(parent context.Context, key subscription.Key, r subscription.Recipe) *running {
	ctx, cancel := context.WithCancel(parent)
	run := &running{
		source: t.sources.New(),
		cancel: cancel,
		events: make(chan subscription.Interaction, t.buffer),
	}
	id := run.source
	emit := func(m core.Message) {
		if err := push(ctx, t.queue, t.sources, Batch{Source: id, Messages: []core.Message{m}}); err != nil {
			Logger().Debug("subscription message dropped", zap.Stringer("key", key))
		}
	}
	t.exec.Spawn(ctx, func(ctx context.Context) {
		defer t.sources.Finish(id)
		err := errors.Guard("executor.Tracker.run", func() error {
			return r.Run(ctx, run.events, emit)
		})
		if err != nil && ctx.Err() == nil {
			reportFailure("executor.Tracker.run", errors.KindSubscription, id, err)
		}
	})
	return run
}

// Broadcast offers an interaction to every running recipe. Recipes that are
// not keeping up miss it rather than stall the application loop.
func (t *Tracker) Broadcast(in subscription.Interaction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k, run := range t.running {
		select {
		case run.events <- in:
		default:
			Logger().Debug("subscription event backlog full", zap.Stringer("key", k))
		}
	}
}

// Len returns the number of running recipes.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.running)
}

// Stop cancels every running recipe.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k, run := range t.running {
		run.cancel()
		t.sources.Kill(run.source)
		delete(t.running, k)
	}
}
