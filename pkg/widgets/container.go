package widgets

import (
	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/layout"
)

// Container positions a single child inside a padded, optionally decorated
// box.
type Container struct {
	core.IgnoreEvents

	Child   core.Widget
	Padding layout.Padding
	Width   layout.Length
	Height  layout.Length
	AlignX  layout.Alignment
	AlignY  layout.Alignment
	// Background is not drawn when zero.
	Background graphics.Color
	Border     graphics.Border
}

// ContainerOf wraps child.
func ContainerOf(child core.Widget) Container {
	return Container{Child: child}
}

// WithPadding returns a copy of the container with the given padding.
func (c Container) WithPadding(padding layout.Padding) Container {
	c.Padding = padding
	return c
}

// WithSize returns a copy of the container with the given sizing policies.
func (c Container) WithSize(width, height layout.Length) Container {
	c.Width, c.Height = width, height
	return c
}

// WithAlign returns a copy of the container with the given alignments.
func (c Container) WithAlign(x, y layout.Alignment) Container {
	c.AlignX, c.AlignY = x, y
	return c
}

// WithBackground returns a copy of the container with the given background.
func (c Container) WithBackground(color graphics.Color) Container {
	c.Background = color
	return c
}

func (c Container) single() layout.Single {
	return layout.Single{Padding: c.Padding, Horizontal: c.AlignX, Vertical: c.AlignY}
}

func (c Container) Children() []core.Widget {
	if c.Child == nil {
		return nil
	}
	return []core.Widget{c.Child}
}

func (c Container) Sizing() layout.Sizing {
	return layout.Sizing{Width: c.Width, Height: c.Height}
}

func (c Container) Measure(tree *core.Tree, limits layout.Limits) graphics.Size {
	children := core.LayoutChildren(c, tree)
	if len(children) == 0 {
		return limits.Constrain(c.Padding.Inflate(graphics.Size{}))
	}
	return c.single().Measure(limits, children[0])
}

func (c Container) Arrange(tree *core.Tree, size graphics.Size) layout.Node {
	children := core.LayoutChildren(c, tree)
	if len(children) == 0 {
		return layout.NewNode(size)
	}
	return c.single().Arrange(size, children[0])
}

func (c Container) Draw(tree *core.Tree, r *graphics.Recorder, node layout.Node) {
	if c.Background != 0 || c.Border.Width > 0 {
		r.DrawQuad(node.Size.Rect(), c.Background, c.Border)
	}
	r.Save()
	r.ClipRect(node.Size.Rect())
	core.DrawChildren(c, tree, r, node)
	r.Restore()
}

// Space is an empty widget that takes room.
type Space struct {
	core.IgnoreEvents

	Width  layout.Length
	Height layout.Length
}

func (s Space) Sizing() layout.Sizing {
	return layout.Sizing{Width: s.Width, Height: s.Height}
}

func (s Space) Measure(_ *core.Tree, limits layout.Limits) graphics.Size {
	return limits.Constrain(graphics.Size{})
}

func (s Space) Arrange(_ *core.Tree, size graphics.Size) layout.Node {
	return layout.NewNode(size)
}

func (s Space) Draw(*core.Tree, *graphics.Recorder, layout.Node) {}
