package executor

import (
	"context"
	"strconv"
	"sync"

	"github.com/go-drift/mvu/pkg/core"
)

// DefaultQueueCapacity bounds the number of undelivered batches.
const DefaultQueueCapacity = 100

// SourceID identifies the task unit or subscription that produced a batch.
type SourceID uint64

func (id SourceID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Batch is the ordered output of one source, delivered as a unit.
type Batch struct {
	Source   SourceID
	Messages []core.Message
}

// Queue is the single channel through which background work talks to the
// application loop. Producers block when it is full.
type Queue struct {
	ch chan Batch
}

// NewQueue returns a queue holding up to capacity batches.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{ch: make(chan Batch, capacity)}
}

// Push enqueues b, waiting for room until ctx is done.
func (q *Queue) Push(ctx context.Context, b Batch) error {
	select {
	case q.ch <- b:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// C returns the receive side of the queue.
func (q *Queue) C() <-chan Batch {
	return q.ch
}

// Drain returns every batch currently queued without blocking.
func (q *Queue) Drain() []Batch {
	var out []Batch
	for {
		select {
		case b := <-q.ch:
			out = append(out, b)
		default:
			return out
		}
	}
}

// Len returns the number of queued batches.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Sources hands out source ids and tracks which may still deliver.
//
// A source is forgotten once it is cancelled or finished and none of its
// batches is left in the queue, so the registry only holds sources that
// can still matter. Forgotten sources are not alive.
type Sources struct {
	mu     sync.Mutex
	next   SourceID
	states map[SourceID]*sourceState
}

type sourceState struct {
	queued   int
	killed   bool
	finished bool
}

// NewSources returns an empty registry.
func NewSources() *Sources {
	return &Sources{states: make(map[SourceID]*sourceState)}
}

// New allocates a fresh source id.
func (s *Sources) New() SourceID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.states[s.next] = &sourceState{}
	return s.next
}

// Kill marks a source as cancelled. Its queued batches are dropped when
// delivered.
func (s *Sources) Kill(id SourceID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[id]; ok {
		st.killed = true
		s.forget(id, st)
	}
}

// Finish records that a source will not push again.
func (s *Sources) Finish(id SourceID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[id]; ok {
		st.finished = true
		s.forget(id, st)
	}
}

// Delivered records that a batch of id left the queue, whether it was
// folded or dropped.
func (s *Sources) Delivered(id SourceID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[id]; ok && st.queued > 0 {
		st.queued--
		s.forget(id, st)
	}
}

func (s *Sources) pushed(id SourceID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[id]; ok {
		st.queued++
	}
}

func (s *Sources) forget(id SourceID, st *sourceState) {
	if st.queued == 0 && (st.killed || st.finished) {
		delete(s.states, id)
	}
}

// Alive reports whether batches from id should still be delivered.
func (s *Sources) Alive(id SourceID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	return ok && !st.killed
}

// Len returns the number of sources the registry still tracks.
func (s *Sources) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}

// Filter keeps the batches whose source is alive.
func (s *Sources) Filter(batches []Batch) []Batch {
	kept := batches[:0]
	for _, b := range batches {
		if s.Alive(b.Source) {
			kept = append(kept, b)
		}
	}
	return kept
}

// push enqueues b on behalf of its source, so the source is not forgotten
// while b is queued.
func push(ctx context.Context, q *Queue, s *Sources, b Batch) error {
	s.pushed(b.Source)
	if err := q.Push(ctx, b); err != nil {
		s.Delivered(b.Source)
		return err
	}
	return nil
}
