package layout

import (
	"math"

	"github.com/go-drift/mvu/pkg/graphics"
)

// Child is one participant of a layout pass.
//
// Measure may be called more than once per pass and must be pure. Arrange
// receives the final size and returns the child's node; the caller positions
// it.
type Child interface {
	Sizing() Sizing
	Measure(limits Limits) graphics.Size
	Arrange(size graphics.Size) Node
}

// Flex lays children out in a single run along Axis.
//
// Fixed and Shrink children are sized first, in order, each limited to the
// space left by its predecessors. The space that remains is split between
// Fill and FillPortion children by weight. Nothing is ever sized negative:
// a child that does not fit gets what is left, possibly zero.
type Flex struct {
	Axis    Axis
	Spacing float64
	Padding Padding
	// Align positions children along the cross axis.
	Align Alignment
	// Justify positions the run along the main axis when it does not fill it.
	Justify Alignment
}

// Measure returns the intrinsic size of the run under limits, padding included.
func (f Flex) Measure(limits Limits, children []Child) graphics.Size {
	inner := limits.Shrink(f.Padding)
	sizes := f.distribute(f.main(inner.Max), f.cross(inner.Max), children)

	var main, cross float64
	for _, s := range sizes {
		main += f.main(s)
		cross = math.Max(cross, f.cross(s))
	}
	main += f.spacing(len(children))
	return f.Padding.Inflate(f.pack(main, cross))
}

// Arrange positions children inside size and returns the resulting node.
func (f Flex) Arrange(size graphics.Size, children []Child) Node {
	inner := f.Padding.Deflate(size)
	mainExtent, crossExtent := f.main(inner), f.cross(inner)
	sizes := f.distribute(mainExtent, crossExtent, children)

	used := f.spacing(len(children))
	for _, s := range sizes {
		used += f.main(s)
	}

	origin := f.Padding.Origin()
	pos := f.Justify.Offset(mainExtent, used)
	nodes := make([]Node, len(children))
	for i, c := range children {
		node := c.Arrange(sizes[i])
		node.Size = sizes[i]
		crossPos := f.Align.Offset(crossExtent, f.cross(sizes[i]))
		offset := f.offset(pos, crossPos)
		nodes[i] = node.Move(origin.Add(offset))
		pos += f.main(sizes[i]) + f.Spacing
	}
	return WithChildren(size, nodes)
}

func (f Flex) distribute(mainAvail, crossAvail float64, children []Child) []graphics.Size {
	sizes := make([]graphics.Size, len(children))
	remaining := nonNegative(mainAvail - f.spacing(len(children)))

	var totalWeight float64
	lastFill := -1
	for i, c := range children {
		sizing := c.Sizing()
		if l := f.mainLength(sizing); l.IsFill() {
			totalWeight += l.FillFactor()
			lastFill = i
			continue
		}
		limits := Limits{Max: f.pack(remaining, crossAvail)}
		sizes[i] = limits.Resolve(sizing, c.Measure(limits))
		remaining = nonNegative(remaining - f.main(sizes[i]))
	}
	if totalWeight == 0 {
		return sizes
	}

	var allotted float64
	for i, c := range children {
		sizing := c.Sizing()
		l := f.mainLength(sizing)
		if !l.IsFill() {
			continue
		}
		share := remaining * l.FillFactor() / totalWeight
		if i == lastFill && !math.IsInf(remaining, 1) {
			// The last fill child absorbs rounding so shares sum exactly.
			share = nonNegative(remaining - allotted)
		}
		allotted += share
		limits := Limits{Max: f.pack(share, crossAvail)}
		sizes[i] = limits.Resolve(sizing, c.Measure(limits))
	}
	return sizes
}

func (f Flex) spacing(n int) float64 {
	if n < 2 {
		return 0
	}
	return f.Spacing * float64(n-1)
}

func (f Flex) main(s graphics.Size) float64 {
	if f.Axis == AxisHorizontal {
		return s.Width
	}
	return s.Height
}

func (f Flex) cross(s graphics.Size) float64 {
	if f.Axis == AxisHorizontal {
		return s.Height
	}
	return s.Width
}

func (f Flex) pack(main, cross float64) graphics.Size {
	if f.Axis == AxisHorizontal {
		return graphics.Size{Width: main, Height: cross}
	}
	return graphics.Size{Width: cross, Height: main}
}

func (f Flex) offset(main, cross float64) graphics.Offset {
	if f.Axis == AxisHorizontal {
		return graphics.Offset{X: main, Y: cross}
	}
	return graphics.Offset{X: cross, Y: main}
}

func (f Flex) mainLength(s Sizing) Length {
	if f.Axis == AxisHorizontal {
		return s.Width
	}
	return s.Height
}

// Single lays out one child inside a padded box.
type Single struct {
	Padding    Padding
	Horizontal Alignment
	Vertical   Alignment
}

// Measure returns the intrinsic size of the padded child.
func (s Single) Measure(limits Limits, child Child) graphics.Size {
	inner := limits.Shrink(s.Padding)
	return s.Padding.Inflate(inner.Resolve(child.Sizing(), child.Measure(inner)))
}

// Arrange places the child inside size according to the alignments.
func (s Single) Arrange(size graphics.Size, child Child) Node {
	inner := s.Padding.Deflate(size)
	limits := Loose(inner)
	childSize := limits.Resolve(child.Sizing(), child.Measure(limits))
	node := child.Arrange(childSize)
	node.Size = childSize
	pos := s.Padding.Origin().Add(graphics.Offset{
		X: s.Horizontal.Offset(inner.Width, childSize.Width),
		Y: s.Vertical.Offset(inner.Height, childSize.Height),
	})
	return WithChildren(size, []Node{node.Move(pos)})
}

// Root lays out the root child against the viewport.
func Root(child Child, viewport graphics.Size) Node {
	limits := Loose(viewport)
	size := limits.Resolve(child.Sizing(), child.Measure(limits))
	node := child.Arrange(size)
	node.Size = size
	return node.Move(graphics.Offset{})
}
