package widgets

import (
	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/layout"
	"github.com/go-drift/mvu/pkg/text"
)

// Text displays a string. Lines are separated by '\n'; text is never
// wrapped and overflow is clipped by the parent.
type Text struct {
	core.IgnoreEvents

	// Content is the displayed string.
	Content string
	// Size is the text size. Zero uses text.DefaultSize.
	Size float64
	// Color is the text color. Zero is black.
	Color graphics.Color
	// Width and Height default to Shrink.
	Width  layout.Length
	Height layout.Length
	// AlignX positions the text horizontally when it has extra room.
	AlignX layout.Alignment
	// AlignY positions the text vertically when it has extra room.
	AlignY layout.Alignment
}

// TextOf creates a text widget.
func TextOf(content string) Text {
	return Text{Content: content}
}

// WithSize returns a copy of the text with the given size.
func (t Text) WithSize(size float64) Text {
	t.Size = size
	return t
}

// WithColor returns a copy of the text with the given color.
func (t Text) WithColor(color graphics.Color) Text {
	t.Color = color
	return t
}

// WithWidth returns a copy of the text with the given width policy.
func (t Text) WithWidth(width layout.Length) Text {
	t.Width = width
	return t
}

// WithAlign returns a copy of the text with the given alignment.
func (t Text) WithAlign(x, y layout.Alignment) Text {
	t.AlignX, t.AlignY = x, y
	return t
}

func (t Text) size() float64 {
	if t.Size <= 0 {
		return text.DefaultSize
	}
	return t.Size
}

func (t Text) color() graphics.Color {
	if t.Color == 0 {
		return graphics.ColorBlack
	}
	return t.Color
}

func (t Text) extent() graphics.Size {
	return text.Default().Measure(t.Content, t.size())
}

func (t Text) Sizing() layout.Sizing {
	return layout.Sizing{Width: t.Width, Height: t.Height}
}

func (t Text) Measure(_ *core.Tree, limits layout.Limits) graphics.Size {
	return limits.Constrain(t.extent())
}

func (t Text) Arrange(_ *core.Tree, size graphics.Size) layout.Node {
	return layout.NewNode(size)
}

func (t Text) Draw(_ *core.Tree, r *graphics.Recorder, node layout.Node) {
	extent := t.extent()
	origin := graphics.Offset{
		X: t.AlignX.Offset(node.Size.Width, extent.Width),
		Y: t.AlignY.Offset(node.Size.Height, extent.Height),
	}
	r.Save()
	r.ClipRect(node.Size.Rect())
	r.DrawText(t.Content, origin, extent, t.size(), t.color())
	r.Restore()
}
