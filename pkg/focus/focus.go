// Package focus tracks which widget holds keyboard focus and implements
// tab-order traversal over the state tree.
package focus

import (
	"github.com/go-drift/mvu/pkg/core"
)

// TraversalDirection indicates the focus traversal direction.
type TraversalDirection int

const (
	// TraversalNext moves to the next focusable widget in tree order.
	TraversalNext TraversalDirection = iota
	// TraversalPrevious moves to the previous focusable widget in tree order.
	TraversalPrevious
)

// linearDelta returns +1 or -1 for linear focus traversal based on direction.
func linearDelta(direction TraversalDirection) int {
	if direction == TraversalPrevious {
		return -1
	}
	return 1
}

// Target is a focusable widget located in the current tree.
type Target struct {
	Widget core.Widget
	Tree   *core.Tree
	Path   core.Path
}

// Collect returns every widget that can currently take focus, in tree order
// (depth-first, parents before children).
func Collect(root core.Widget, tree *core.Tree) []Target {
	var out []Target
	walk(root, tree, core.Path{}, func(t Target) bool {
		if f, ok := t.Widget.(core.Focusable); ok && f.Focusable(t.Tree) {
			out = append(out, t)
		}
		return true
	})
	return out
}

// Find returns the widget whose state node is tree.
func Find(root core.Widget, rootTree, tree *core.Tree) (Target, bool) {
	var found Target
	ok := false
	walk(root, rootTree, core.Path{}, func(t Target) bool {
		if t.Tree == tree {
			found, ok = t, true
			return false
		}
		return true
	})
	return found, ok
}

// FindByID returns the first widget whose ID matches id.
func FindByID(root core.Widget, tree *core.Tree, id string) (Target, bool) {
	var found Target
	ok := false
	walk(root, tree, core.Path{}, func(t Target) bool {
		if w, isID := t.Widget.(core.Identified); isID && w.ID() == id {
			found, ok = t, true
			return false
		}
		return true
	})
	return found, ok
}

// walk visits widgets depth-first. Returning false from visit stops the walk.
func walk(w core.Widget, tree *core.Tree, path core.Path, visit func(Target) bool) bool {
	if tree == nil {
		return true
	}
	if !visit(Target{Widget: w, Tree: tree, Path: path}) {
		return false
	}
	for i, c := range core.ChildrenOf(w) {
		if i >= len(tree.Children) {
			break
		}
		if !walk(c, tree.Children[i], path.Child(i), visit) {
			return false
		}
	}
	return true
}

// Manager holds the single focused widget, identified by its state node.
type Manager struct {
	primary *core.Tree
}

// Primary returns the focused state node, or nil.
func (m *Manager) Primary() *core.Tree {
	return m.primary
}

// Change describes a focus transition.
type Change struct {
	Lost   *core.Tree
	Gained *core.Tree
}

// Changed reports whether focus actually moved.
func (c Change) Changed() bool {
	return c.Lost != c.Gained
}

// SetPrimary moves focus to node. A nil node clears focus.
func (m *Manager) SetPrimary(node *core.Tree) Change {
	c := Change{Lost: m.primary, Gained: node}
	if !c.Changed() {
		return Change{}
	}
	m.primary = node
	return c
}

// Clear removes focus.
func (m *Manager) Clear() Change {
	return m.SetPrimary(nil)
}

// Validate drops focus if the focused node no longer belongs to the tree.
func (m *Manager) Validate(root core.Widget, tree *core.Tree) Change {
	if m.primary == nil {
		return Change{}
	}
	t, ok := Find(root, tree, m.primary)
	if ok {
		if f, isF := t.Widget.(core.Focusable); isF && f.Focusable(t.Tree) {
			return Change{}
		}
	}
	return m.Clear()
}

// Move moves focus in direction among the focusable widgets of the tree,
// wrapping at both ends. It reports false when nothing is focusable.
func (m *Manager) Move(root core.Widget, tree *core.Tree, direction TraversalDirection) (Change, bool) {
	nodes := Collect(root, tree)
	if len(nodes) == 0 {
		return Change{}, false
	}
	current := -1
	for i, n := range nodes {
		if n.Tree == m.primary {
			current = i
			break
		}
	}
	delta := linearDelta(direction)
	var next int
	if current == -1 {
		if delta > 0 {
			next = 0
		} else {
			next = len(nodes) - 1
		}
	} else {
		next = wrapIndex(current+delta, len(nodes))
	}
	return m.SetPrimary(nodes[next].Tree), true
}

// wrapIndex wraps an index to stay within [0, count).
func wrapIndex(index, count int) int {
	index = index % count
	if index < 0 {
		index += count
	}
	return index
}
