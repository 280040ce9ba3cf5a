package core

import (
	"go.uber.org/zap"

	"github.com/go-drift/mvu/pkg/errors"
)

// Tree is the persistent state node of a widget.
//
// Its shape mirrors the widget tree. A node's identity (its pointer) is the
// identity of the widget instance across rebuilds: the same *Tree is reused
// for as long as its tag matches.
type Tree struct {
	Tag      Tag
	State    any
	Children []*Tree
}

// NewTree builds a fresh state tree for w.
func NewTree(w Widget) *Tree {
	t := &Tree{Tag: TagOf(w)}
	if s, ok := w.(Stateful); ok {
		t.State = s.InitState()
	}
	children := ChildrenOf(w)
	if len(children) > 0 {
		t.Children = make([]*Tree, len(children))
		for i, c := range children {
			t.Children[i] = NewTree(c)
		}
	}
	return t
}

// Diff reconciles t with a new widget value and returns the node to keep.
//
// When the tags match, t is returned with its state intact and its children
// diffed. Otherwise the old subtree is discarded and a new one is built.
func (t *Tree) Diff(w Widget) *Tree {
	if t == nil || !t.Tag.Equal(TagOf(w)) {
		return NewTree(w)
	}
	if d, ok := w.(Differ); ok {
		d.Diff(t)
		return t
	}
	t.DiffChildren(ChildrenOf(w))
	return t
}

// DiffChildren reconciles the children of t with widgets.
//
// Without keys children are matched by index. When any widget is keyed,
// keyed widgets first claim the old node carrying the same key; the rest
// take the remaining old nodes in order. Duplicate keys among siblings lose
// their key and match by position.
func (t *Tree) DiffChildren(widgets []Widget) {
	if !anyKeyed(widgets) {
		t.diffByIndex(widgets)
		return
	}

	old := t.Children
	claimed := make([]bool, len(old))
	next := make([]*Tree, len(widgets))
	tags := make([]Tag, len(widgets))
	for i, w := range widgets {
		tags[i] = TagOf(w)
	}
	dup := duplicateKeys(tags)

	for i, w := range widgets {
		if !tags[i].Keyed || dup[i] {
			continue
		}
		for j, o := range old {
			if !claimed[j] && o.Tag.Equal(tags[i]) {
				claimed[j] = true
				next[i] = o.Diff(w)
				break
			}
		}
	}

	cursor := 0
	for i, w := range widgets {
		if next[i] != nil {
			continue
		}
		if tags[i].Keyed && !dup[i] {
			next[i] = NewTree(w)
			continue
		}
		for cursor < len(old) && claimed[cursor] {
			cursor++
		}
		if cursor < len(old) {
			claimed[cursor] = true
			next[i] = old[cursor].Diff(w)
			cursor++
			continue
		}
		next[i] = NewTree(w)
	}
	t.Children = next
}

func (t *Tree) diffByIndex(widgets []Widget) {
	if len(t.Children) > len(widgets) {
		t.Children = t.Children[:len(widgets)]
	}
	for i, w := range widgets {
		if i < len(t.Children) {
			t.Children[i] = t.Children[i].Diff(w)
		} else {
			t.Children = append(t.Children, NewTree(w))
		}
	}
}

func anyKeyed(widgets []Widget) bool {
	for _, w := range widgets {
		if k, ok := w.(Keyed); ok && k.Key() != nil {
			return true
		}
	}
	return false
}

// duplicateKeys marks every tag whose key appears more than once.
func duplicateKeys(tags []Tag) []bool {
	dup := make([]bool, len(tags))
	for i := range tags {
		if !tags[i].Keyed {
			continue
		}
		for j := i + 1; j < len(tags); j++ {
			if tags[j].Keyed && tags[i].Equal(tags[j]) {
				if !dup[i] {
					errors.Logger().Debug("duplicate sibling key; matching by position",
						zap.Any("key", tags[i].Key))
				}
				dup[i], dup[j] = true, true
			}
		}
	}
	return dup
}

// StateOf returns the tree state as T.
// It panics if the state holds a different type, like a failed type assertion.
func StateOf[T any](tree *Tree) T {
	return tree.State.(T)
}
