package engine

import (
	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/layout"
)

// Entry is a widget located in the current layout.
type Entry struct {
	Widget core.Widget
	Tree   *core.Tree
	Path   core.Path
	// Bounds is the widget rectangle in window coordinates.
	Bounds graphics.Rect
}

// HitTestResult lists the widgets under a point, innermost first.
type HitTestResult struct {
	Entries []Entry
}

// Add appends an entry. Children are added before their parents.
func (r *HitTestResult) Add(e Entry) {
	r.Entries = append(r.Entries, e)
}

// Contains reports whether the node tree is part of the result.
func (r *HitTestResult) Contains(tree *core.Tree) bool {
	return containsEntry(r.Entries, tree)
}

// frame is the traversal state of one widget during a walk.
type frame struct {
	widget core.Widget
	tree   *core.Tree
	node   layout.Node
	path   core.Path
	// origin is the window position of the parent's content.
	origin graphics.Offset
	clip   graphics.Rect
}

func (f frame) bounds() graphics.Rect {
	return graphics.RectFromOffsetSize(f.origin.Add(f.node.Position), f.node.Size)
}

func (f frame) entry() Entry {
	return Entry{Widget: f.widget, Tree: f.tree, Path: f.path, Bounds: f.bounds()}
}

// children returns the traversal frames of f's children.
// Scrollers shift their children by the content offset and clip them.
func (f frame) children() []frame {
	widgets := core.ChildrenOf(f.widget)
	if len(widgets) == 0 {
		return nil
	}
	bounds := f.bounds()
	origin, clip := bounds.Origin(), f.clip
	if s, ok := f.widget.(core.Scroller); ok {
		origin = origin.Sub(s.ContentOffset(f.tree))
		clip = clip.Intersect(bounds)
	}
	out := make([]frame, 0, len(widgets))
	for i, w := range widgets {
		if i >= len(f.tree.Children) || i >= len(f.node.Children) {
			break
		}
		out = append(out, frame{
			widget: w,
			tree:   f.tree.Children[i],
			node:   f.node.Children[i],
			path:   f.path.Child(i),
			origin: origin,
			clip:   clip,
		})
	}
	return out
}

// hitTest collects the widgets containing pos. Among overlapping siblings
// the last one, drawn on top, wins.
func hitTest(f frame, pos graphics.Offset, result *HitTestResult) bool {
	bounds := f.bounds()
	if !bounds.Contains(pos) || !f.clip.Contains(pos) {
		return false
	}
	children := f.children()
	for i := len(children) - 1; i >= 0; i-- {
		if hitTest(children[i], pos, result) {
			break
		}
	}
	result.Add(f.entry())
	return true
}

// chain returns the entry for target followed by its ancestors, or nil when
// target is not part of the tree.
func chain(f frame, target *core.Tree) []Entry {
	if f.tree == target {
		return []Entry{f.entry()}
	}
	for _, c := range f.children() {
		if found := chain(c, target); found != nil {
			return append(found, f.entry())
		}
	}
	return nil
}

// walk visits every widget in tree order.
func walk(f frame, visit func(Entry)) {
	visit(f.entry())
	for _, c := range f.children() {
		walk(c, visit)
	}
}

func containsEntry(entries []Entry, tree *core.Tree) bool {
	for _, e := range entries {
		if e.Tree == tree {
			return true
		}
	}
	return false
}
