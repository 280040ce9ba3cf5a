package subscription

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/event"
)

func keys(s Subscription) []Key {
	var out []Key
	for _, r := range s.Recipes() {
		out = append(out, r.Key())
	}
	return out
}

func onTick(time.Time) core.Message { return "tick" }

func TestKeysAreStableAcrossCalls(t *testing.T) {
	build := func() Subscription {
		return Batch(
			Every(time.Second, onTick),
			Run("socket", func(context.Context, func(core.Message)) error { return nil }),
		)
	}
	a, b := keys(build()), keys(build())
	if len(a) != 2 {
		t.Fatalf("got %d keys, want 2", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("key %d changed between calls: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestKeysDistinguishIDsAndTypes(t *testing.T) {
	tests := []struct {
		name string
		a, b Subscription
		same bool
	}{
		{"same period", Every(time.Second, onTick), Every(time.Second, onTick), true},
		{"different period", Every(time.Second, onTick), Every(time.Minute, onTick), false},
		{"different id", Run(1, nil), Run(2, nil), false},
		{"map keeps key", Every(time.Second, onTick).Map(func(m core.Message) core.Message { return m }), Every(time.Second, onTick), true},
		{"recipe type matters", Run(time.Second, nil), Every(time.Second, onTick), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			same := keys(tt.a)[0] == keys(tt.b)[0]
			if same != tt.same {
				t.Errorf("same key = %v, want %v", same, tt.same)
			}
		})
	}
}

func TestKeyValid(t *testing.T) {
	tests := []struct {
		key  Key
		want bool
	}{
		{Key{}, false},
		{KeyOf(runRecipe{}, nil), true},
		{KeyOf(runRecipe{}, "id"), true},
		{KeyOf(runRecipe{}, []string{"x"}), false},
		{KeyOf(runRecipe{}, map[string]int{}), false},
	}
	for _, tt := range tests {
		if got := tt.key.Valid(); got != tt.want {
			t.Errorf("%v.Valid() = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestBatchAndNone(t *testing.T) {
	if !None().IsNone() {
		t.Error("None() should be empty")
	}
	var zero Subscription
	s := Batch(zero, Every(time.Second, onTick), None())
	if got := len(s.Recipes()); got != 1 {
		t.Errorf("Batch recipes = %d, want 1", got)
	}
}

func collect(t *testing.T, s Subscription, in []Interaction) []core.Message {
	t.Helper()
	events := make(chan Interaction, len(in))
	for _, i := range in {
		events <- i
	}
	close(events)

	var out []core.Message
	for _, r := range s.Recipes() {
		if err := r.Run(context.Background(), events, func(m core.Message) { out = append(out, m) }); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	}
	return out
}

func TestEventsSkipsCapturedEvents(t *testing.T) {
	s := Events(func(ev event.Event) (core.Message, bool) {
		k, ok := ev.(event.Keyboard)
		return string(k.Key), ok
	})
	got := collect(t, s, []Interaction{
		{Event: event.Keyboard{Key: "a"}, Status: event.Captured},
		{Event: event.Keyboard{Key: "b"}, Status: event.Ignored},
		{Event: event.Window{Kind: event.Resized}, Status: event.Ignored},
	})
	if diff := cmp.Diff([]core.Message{"b"}, got); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestEventsWithStatusSeesEverything(t *testing.T) {
	s := EventsWithStatus(func(ev event.Event, status event.Status) (core.Message, bool) {
		return status.String(), true
	})
	got := collect(t, s, []Interaction{
		{Event: event.Keyboard{Key: "a"}, Status: event.Captured},
		{Event: event.Keyboard{Key: "b"}, Status: event.Ignored},
	})
	if diff := cmp.Diff([]core.Message{event.Captured.String(), event.Ignored.String()}, got); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestMapAndOnError(t *testing.T) {
	s := Run("feed", func(_ context.Context, emit func(core.Message)) error {
		emit(1)
		return errors.New("closed")
	}).
		Map(func(m core.Message) core.Message { return m.(int) * 10 }).
		OnError(func(err error) core.Message { return err.Error() })

	got := collect(t, s, nil)
	if diff := cmp.Diff([]core.Message{10, "closed"}, got); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestEveryRejectsInvalidPeriod(t *testing.T) {
	err := Every(0, onTick).Recipes()[0].Run(context.Background(), nil, func(core.Message) {})
	if err == nil {
		t.Error("expected an error for a zero period")
	}
}

func TestEveryStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ticks := 0
	err := Every(time.Millisecond, onTick).Recipes()[0].Run(ctx, nil, func(core.Message) {
		ticks++
		if ticks == 3 {
			cancel()
		}
	})
	if err != nil || ticks < 3 {
		t.Errorf("Run() = %v after %d ticks", err, ticks)
	}
}
