package core

import (
	"fmt"
	"time"

	"github.com/go-drift/mvu/pkg/errors"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/layout"
)

// LayoutChild adapts a widget and its state node to a layout participant.
// Panics in Measure or Arrange are reported and yield an empty size or node.
func LayoutChild(w Widget, tree *Tree) layout.Child {
	return child{w: w, tree: tree}
}

// LayoutChildren adapts every child of parent.
func LayoutChildren(parent Widget, tree *Tree) []layout.Child {
	widgets := ChildrenOf(parent)
	out := make([]layout.Child, 0, len(widgets))
	for i, w := range widgets {
		if i >= len(tree.Children) {
			break
		}
		out = append(out, child{w: w, tree: tree.Children[i]})
	}
	return out
}

type child struct {
	w    Widget
	tree *Tree
}

func (c child) Sizing() layout.Sizing {
	return c.w.Sizing()
}

func (c child) Measure(limits layout.Limits) (size graphics.Size) {
	defer recoverWidget(c.w, "Measure", func() { size = graphics.Size{} })
	return c.w.Measure(c.tree, limits)
}

func (c child) Arrange(size graphics.Size) (node layout.Node) {
	defer recoverWidget(c.w, "Arrange", func() { node = layout.NewNode(size) })
	return c.w.Arrange(c.tree, size)
}

// Draw draws w, isolating panics so the rest of the frame still renders.
func Draw(w Widget, tree *Tree, r *graphics.Recorder, node layout.Node) {
	depth := r.Depth()
	defer recoverWidget(w, "Draw", func() { r.RestoreTo(depth) })
	w.Draw(tree, r, node)
}

// DrawChildren draws every child of parent at its position in node.
// Children entirely outside the current clip are skipped.
func DrawChildren(parent Widget, tree *Tree, r *graphics.Recorder, node layout.Node) {
	for i, w := range ChildrenOf(parent) {
		if i >= len(tree.Children) || i >= len(node.Children) {
			return
		}
		n := node.Children[i]
		if !r.Visible(n.Bounds()) {
			continue
		}
		r.Save()
		r.Translate(n.Position.X, n.Position.Y)
		Draw(w, tree.Children[i], r, n)
		r.Restore()
	}
}

// WidgetName returns the type name used in error reports.
func WidgetName(w Widget) string {
	return fmt.Sprintf("%T", w)
}

func recoverWidget(w Widget, method string, fallback func()) {
	if r := recover(); r != nil {
		errors.ReportWidgetError(&errors.WidgetError{
			Widget:     WidgetName(w),
			Method:     method,
			Recovered:  r,
			StackTrace: errors.CaptureStack(),
			Timestamp:  time.Now(),
		})
		fallback()
	}
}
