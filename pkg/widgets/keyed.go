package widgets

import (
	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/layout"
)

// Keyed gives its child an explicit identity. Among siblings, a keyed child
// keeps its state when the list is reordered, filtered or grown.
//
//	widgets.ColumnOf(items...) // items built as widgets.KeyedOf(item.ID, row)
type Keyed struct {
	core.IgnoreEvents

	ID    any
	Child core.Widget
}

// KeyedOf wraps child with key.
func KeyedOf(key any, child core.Widget) Keyed {
	return Keyed{ID: key, Child: child}
}

func (k Keyed) Key() any { return k.ID }

func (k Keyed) Children() []core.Widget { return []core.Widget{k.Child} }

func (k Keyed) Sizing() layout.Sizing {
	if k.Child == nil {
		return layout.Sizing{}
	}
	return k.Child.Sizing()
}

func (k Keyed) Measure(tree *core.Tree, limits layout.Limits) graphics.Size {
	children := core.LayoutChildren(k, tree)
	if len(children) == 0 {
		return graphics.Size{}
	}
	return children[0].Measure(limits)
}

func (k Keyed) Arrange(tree *core.Tree, size graphics.Size) layout.Node {
	children := core.LayoutChildren(k, tree)
	if len(children) == 0 {
		return layout.NewNode(size)
	}
	node := children[0].Arrange(size)
	node.Size = size
	return layout.WithChildren(size, []layout.Node{node.Move(graphics.Offset{})})
}

func (k Keyed) Draw(tree *core.Tree, r *graphics.Recorder, node layout.Node) {
	core.DrawChildren(k, tree, r, node)
}
