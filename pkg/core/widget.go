package core

import (
	"reflect"

	"github.com/go-drift/mvu/pkg/event"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/layout"
)

// Message is an application-defined value produced by widgets, tasks and
// subscriptions and consumed by the update function.
type Message = any

// Widget is a node of the declarative view.
//
// All methods receive the widget's state tree node. Measure and Arrange
// implement the two layout passes; Draw records primitives in local
// coordinates; OnEvent reacts to input and may only affect the world through
// the Shell.
type Widget interface {
	Sizing() layout.Sizing
	Measure(tree *Tree, limits layout.Limits) graphics.Size
	Arrange(tree *Tree, size graphics.Size) layout.Node
	Draw(tree *Tree, r *graphics.Recorder, node layout.Node)
	OnEvent(tree *Tree, ev event.Event, bounds graphics.Rect, cursor event.Cursor, shell *Shell) event.Status
}

// Stateful widgets own internal state that survives rebuilds.
type Stateful interface {
	InitState() any
}

// Parent widgets have ordered children.
type Parent interface {
	Children() []Widget
}

// Keyed widgets carry an explicit identity used to match them against the
// previous tree independently of their position.
type Keyed interface {
	Key() any
}

// Tagger overrides the tag derived from the widget's runtime type.
type Tagger interface {
	Tag() Tag
}

// Differ widgets reconcile their own state node. Implementations must diff
// their children themselves, usually with tree.DiffChildren.
type Differ interface {
	Diff(tree *Tree)
}

// Focusable widgets can hold keyboard focus.
type Focusable interface {
	Focusable(tree *Tree) bool
}

// Scroller widgets translate their children by a content offset and clip
// them to their own bounds.
type Scroller interface {
	ContentOffset(tree *Tree) graphics.Offset
}

// Identified widgets can be targeted by id, for example by focus tasks.
type Identified interface {
	ID() string
}

// ChildrenOf returns the non-nil children of w.
func ChildrenOf(w Widget) []Widget {
	p, ok := w.(Parent)
	if !ok {
		return nil
	}
	children := p.Children()
	for _, c := range children {
		if c == nil {
			return compact(children)
		}
	}
	return children
}

func compact(children []Widget) []Widget {
	out := make([]Widget, 0, len(children))
	for _, c := range children {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Tag identifies the kind of state a tree node holds.
type Tag struct {
	Type  reflect.Type
	Key   any
	Keyed bool
}

// TagOf derives the tag of a widget from its runtime type and optional key.
func TagOf(w Widget) Tag {
	if t, ok := w.(Tagger); ok {
		return t.Tag()
	}
	tag := Tag{Type: reflect.TypeOf(w)}
	if k, ok := w.(Keyed); ok {
		tag.Key = k.Key()
		tag.Keyed = tag.Key != nil
	}
	return tag
}

// Equal reports whether two tags identify the same state.
// Keys are compared structurally.
func (t Tag) Equal(other Tag) bool {
	if t.Type != other.Type || t.Keyed != other.Keyed {
		return false
	}
	return !t.Keyed || reflect.DeepEqual(t.Key, other.Key)
}

// IgnoreEvents can be embedded by widgets that never react to input.
type IgnoreEvents struct{}

// OnEvent ignores every event.
func (IgnoreEvents) OnEvent(*Tree, event.Event, graphics.Rect, event.Cursor, *Shell) event.Status {
	return event.Ignored
}
