package layout

import "github.com/go-drift/mvu/pkg/graphics"

// Padding is the inner spacing between a widget's edge and its content.
type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// PaddingAll returns uniform padding on every side.
func PaddingAll(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// PaddingSymmetric returns padding with equal vertical and horizontal sides.
func PaddingSymmetric(vertical, horizontal float64) Padding {
	return Padding{Top: vertical, Right: horizontal, Bottom: vertical, Left: horizontal}
}

// Horizontal returns the total left and right padding.
func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

// Vertical returns the total top and bottom padding.
func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

// Inflate grows a content size by the padding.
func (p Padding) Inflate(size graphics.Size) graphics.Size {
	return graphics.Size{Width: size.Width + p.Horizontal(), Height: size.Height + p.Vertical()}
}

// Deflate removes the padding from size, clamping at zero.
func (p Padding) Deflate(size graphics.Size) graphics.Size {
	return graphics.Size{
		Width:  nonNegative(size.Width - p.Horizontal()),
		Height: nonNegative(size.Height - p.Vertical()),
	}
}

// Origin returns the top-left offset of the content area.
func (p Padding) Origin() graphics.Offset {
	return graphics.Offset{X: p.Left, Y: p.Top}
}
