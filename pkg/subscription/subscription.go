// Package subscription describes long-lived event sources as values.
//
// The application returns a Subscription from its current state after every
// update. The runtime compares the recipes it gets against the ones already
// running, by Key: unchanged keys keep running untouched, new keys start and
// keys that disappeared are cancelled.
package subscription

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/event"
)

// Interaction is a runtime event together with how the widgets handled it.
type Interaction struct {
	Event  event.Event
	Status event.Status
}

// Key identifies a recipe across updates.
type Key struct {
	Type reflect.Type
	ID   any
}

// KeyOf builds a key from the recipe's concrete type and an id.
func KeyOf(recipe any, id any) Key {
	return Key{Type: reflect.TypeOf(recipe), ID: id}
}

// Valid reports whether the key can be used to track a recipe. The id must
// be comparable so keys can index a map.
func (k Key) Valid() bool {
	if k.Type == nil {
		return false
	}
	return k.ID == nil || reflect.ValueOf(k.ID).Comparable()
}

// String returns a human-readable representation of the key.
func (k Key) String() string {
	return fmt.Sprintf("%v(%v)", k.Type, k.ID)
}

// Recipe describes how to run one subscription.
type Recipe interface {
	Key() Key
	// Run produces messages until ctx is done. Events carries the runtime
	// events broadcast to subscriptions; recipes that do not need them can
	// ignore the channel.
	Run(ctx context.Context, events <-chan Interaction, emit func(core.Message)) error
}

// Subscription is a set of recipes. The zero value subscribes to nothing.
type Subscription struct {
	recipes []Recipe
}

// None returns an empty subscription.
func None() Subscription {
	return Subscription{}
}

// FromRecipe wraps a single recipe.
func FromRecipe(r Recipe) Subscription {
	return Subscription{recipes: []Recipe{r}}
}

// Batch merges subscriptions.
func Batch(subs ...Subscription) Subscription {
	var recipes []Recipe
	for _, s := range subs {
		recipes = append(recipes, s.recipes...)
	}
	return Subscription{recipes: recipes}
}

// Recipes returns the recipes of the subscription.
func (s Subscription) Recipes() []Recipe {
	return s.recipes
}

// IsNone reports whether the subscription is empty.
func (s Subscription) IsNone() bool {
	return len(s.recipes) == 0
}

// Map transforms every message. Keys are unchanged, so mapping a running
// subscription does not restart it.
func (s Subscription) Map(f func(core.Message) core.Message) Subscription {
	recipes := make([]Recipe, len(s.recipes))
	for i, r := range s.recipes {
		recipes[i] = mapRecipe{inner: r, f: f}
	}
	return Subscription{recipes: recipes}
}

// OnError converts a recipe failure into a message. Without it failures are
// logged and dropped.
func (s Subscription) OnError(f func(error) core.Message) Subscription {
	recipes := make([]Recipe, len(s.recipes))
	for i, r := range s.recipes {
		recipes[i] = catchRecipe{inner: r, f: f}
	}
	return Subscription{recipes: recipes}
}

type mapRecipe struct {
	inner Recipe
	f     func(core.Message) core.Message
}

func (m mapRecipe) Key() Key { return m.inner.Key() }

func (m mapRecipe) Run(ctx context.Context, events <-chan Interaction, emit func(core.Message)) error {
	return m.inner.Run(ctx, events, func(msg core.Message) { emit(m.f(msg)) })
}

type catchRecipe struct {
	inner Recipe
	f     func(error) core.Message
}

func (c catchRecipe) Key() Key { return c.inner.Key() }

func (c catchRecipe) Run(ctx context.Context, events <-chan Interaction, emit func(core.Message)) error {
	err := c.inner.Run(ctx, events, emit)
	if err != nil && ctx.Err() == nil {
		emit(c.f(err))
		return nil
	}
	return err
}

// Run subscribes to a user-defined stream identified by id.
func Run(id any, fn func(ctx context.Context, emit func(core.Message)) error) Subscription {
	return FromRecipe(runRecipe{id: id, fn: fn})
}

type runRecipe struct {
	id any
	fn func(ctx context.Context, emit func(core.Message)) error
}

func (r runRecipe) Key() Key { return KeyOf(r, r.id) }

func (r runRecipe) Run(ctx context.Context, _ <-chan Interaction, emit func(core.Message)) error {
	return r.fn(ctx, emit)
}

// Every emits f(t) every period. Subscriptions with the same period share a
// key.
func Every(period time.Duration, f func(time.Time) core.Message) Subscription {
	return FromRecipe(everyRecipe{period: period, f: f})
}

type everyRecipe struct {
	period time.Duration
	f      func(time.Time) core.Message
}

func (e everyRecipe) Key() Key { return KeyOf(e, e.period) }

func (e everyRecipe) Run(ctx context.Context, _ <-chan Interaction, emit func(core.Message)) error {
	if e.period <= 0 {
		return fmt.Errorf("every: invalid period %v", e.period)
	}
	ticker := time.NewTicker(e.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			emit(e.f(t))
		}
	}
}

// Events subscribes to runtime events no widget captured. f returns false to
// skip an event.
func Events(f func(event.Event) (core.Message, bool)) Subscription {
	return EventsWithStatus(func(ev event.Event, status event.Status) (core.Message, bool) {
		if status == event.Captured {
			return nil, false
		}
		return f(ev)
	}).withID(reflect.ValueOf(f).Pointer())
}

// EventsWithStatus subscribes to every runtime event, captured or not.
func EventsWithStatus(f func(event.Event, event.Status) (core.Message, bool)) Subscription {
	return FromRecipe(eventsRecipe{id: reflect.ValueOf(f).Pointer(), f: f})
}

func (s Subscription) withID(id uintptr) Subscription {
	for i, r := range s.recipes {
		if er, ok := r.(eventsRecipe); ok {
			er.id = id
			s.recipes[i] = er
		}
	}
	return s
}

type eventsRecipe struct {
	id uintptr
	f  func(event.Event, event.Status) (core.Message, bool)
}

func (e eventsRecipe) Key() Key { return KeyOf(e, e.id) }

func (e eventsRecipe) Run(ctx context.Context, events <-chan Interaction, emit func(core.Message)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case in, ok := <-events:
			if !ok {
				return nil
			}
			if msg, keep := e.f(in.Event, in.Status); keep {
				emit(msg)
			}
		}
	}
}
