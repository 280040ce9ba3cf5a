package graphics

import "image"

// Primitive is a single backend-agnostic draw instruction.
//
// Positions are absolute (viewport coordinates). Every primitive carries the
// clip rectangle that was active when it was recorded; renderers must not
// paint outside it.
type Primitive interface {
	// Bounds returns the area the primitive covers before clipping.
	Bounds() Rect
	// ClipRect returns the clip active when the primitive was recorded.
	ClipRect() Rect
}

// Border describes the outline of a Quad.
type Border struct {
	Color  Color
	Width  float64
	Radius float64
}

// Quad is a filled, optionally bordered rectangle.
type Quad struct {
	Rect       Rect
	Background Color
	Border     Border
	Clip       Rect
}

func (q Quad) Bounds() Rect   { return q.Rect }
func (q Quad) ClipRect() Rect { return q.Clip }

// Text is a run of shaped text anchored at its top-left corner.
type Text struct {
	Content string
	Origin  Offset
	// Extent is the measured size of the run, as reported by the text measurer.
	Extent Size
	// Size is the font size in logical pixels.
	Size  float64
	Color Color
	Clip  Rect
}

func (t Text) Bounds() Rect   { return RectFromOffsetSize(t.Origin, t.Extent) }
func (t Text) ClipRect() Rect { return t.Clip }

// Image draws a decoded raster image scaled into Rect.
type Image struct {
	Source image.Image
	Rect   Rect
	Clip   Rect
}

func (i Image) Bounds() Rect   { return i.Rect }
func (i Image) ClipRect() Rect { return i.Clip }

// Path is a polyline, optionally closed and filled.
type Path struct {
	Points      []Offset
	Closed      bool
	Fill        Color
	Stroke      Color
	StrokeWidth float64
	Clip        Rect
}

// Bounds returns the bounding box of the path points.
func (p Path) Bounds() Rect {
	if len(p.Points) == 0 {
		return Rect{}
	}
	r := Rect{Left: p.Points[0].X, Top: p.Points[0].Y, Right: p.Points[0].X, Bottom: p.Points[0].Y}
	for _, pt := range p.Points[1:] {
		r = r.Union(Rect{Left: pt.X, Top: pt.Y, Right: pt.X, Bottom: pt.Y})
	}
	return r
}

func (p Path) ClipRect() Rect { return p.Clip }

// Custom is an opaque primitive interpreted only by renderers that know its
// payload. Other renderers skip it.
type Custom struct {
	Rect    Rect
	Payload any
	Clip    Rect
}

func (c Custom) Bounds() Rect   { return c.Rect }
func (c Custom) ClipRect() Rect { return c.Clip }

// Frame is the complete output of one draw pass.
type Frame struct {
	Viewport   Size
	Background Color
	Primitives []Primitive
}
