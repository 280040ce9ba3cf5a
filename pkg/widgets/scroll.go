package widgets

import (
	"math"

	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/event"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/layout"
)

const scrollbarWidth = 4

// Scrollable shows a vertically scrolling view of a child taller than its
// own bounds. The child is laid out with unbounded height.
//
// The scroll offset is widget state: it survives rebuilds and is clamped
// whenever the content or the viewport changes size.
type Scrollable struct {
	Child  core.Widget
	Width  layout.Length
	Height layout.Length
	// OnScroll, if set, is published with the new offset after each scroll.
	OnScroll func(offset float64) core.Message
	// ScrollbarColor defaults to a translucent gray.
	ScrollbarColor graphics.Color
}

// ScrollableOf wraps child in a scrollable that fills its parent.
func ScrollableOf(child core.Widget) Scrollable {
	return Scrollable{Child: child, Width: layout.Fill(), Height: layout.Fill()}
}

type scrollState struct {
	offset   float64
	content  float64
	viewport float64
}

func (s *scrollState) maxOffset() float64 {
	return math.Max(0, s.content-s.viewport)
}

func (s *scrollState) scrollTo(offset float64) bool {
	clamped := math.Max(0, math.Min(offset, s.maxOffset()))
	changed := clamped != s.offset
	s.offset = clamped
	return changed
}

func (s Scrollable) InitState() any { return &scrollState{} }

func (s Scrollable) Children() []core.Widget {
	if s.Child == nil {
		return nil
	}
	return []core.Widget{s.Child}
}

func (s Scrollable) Sizing() layout.Sizing {
	return layout.Sizing{Width: s.Width, Height: s.Height}
}

func contentLimits(width float64) layout.Limits {
	return layout.Limits{Max: graphics.Size{Width: width, Height: math.Inf(1)}}
}

func (s Scrollable) contentSize(child layout.Child, width float64) graphics.Size {
	limits := contentLimits(width)
	return limits.Resolve(child.Sizing(), child.Measure(limits))
}

func (s Scrollable) Measure(tree *core.Tree, limits layout.Limits) graphics.Size {
	children := core.LayoutChildren(s, tree)
	if len(children) == 0 {
		return limits.Constrain(graphics.Size{})
	}
	return limits.Constrain(s.contentSize(children[0], limits.Max.Width))
}

func (s Scrollable) Arrange(tree *core.Tree, size graphics.Size) layout.Node {
	st := core.StateOf[*scrollState](tree)
	children := core.LayoutChildren(s, tree)
	if len(children) == 0 {
		st.content, st.viewport = 0, size.Height
		st.scrollTo(st.offset)
		return layout.NewNode(size)
	}
	contentSize := s.contentSize(children[0], size.Width)
	node := children[0].Arrange(contentSize)
	node.Size = contentSize
	st.content, st.viewport = contentSize.Height, size.Height
	st.scrollTo(st.offset)
	return layout.WithChildren(size, []layout.Node{node.Move(graphics.Offset{})})
}

func (s Scrollable) ContentOffset(tree *core.Tree) graphics.Offset {
	return graphics.Offset{Y: core.StateOf[*scrollState](tree).offset}
}

// Offset returns the current scroll offset stored in tree.
func (s Scrollable) Offset(tree *core.Tree) float64 {
	return core.StateOf[*scrollState](tree).offset
}

func (s Scrollable) Draw(tree *core.Tree, r *graphics.Recorder, node layout.Node) {
	st := core.StateOf[*scrollState](tree)
	r.Save()
	r.ClipRect(node.Size.Rect())
	r.Translate(0, -st.offset)
	core.DrawChildren(s, tree, r, node)
	r.Restore()

	if st.content <= st.viewport || st.content == 0 {
		return
	}
	color := s.ScrollbarColor
	if color == 0 {
		color = graphics.RGBA(0x80, 0x80, 0x80, 0xA0)
	}
	thumb := st.viewport * st.viewport / st.content
	top := (st.viewport - thumb) * st.offset / st.maxOffset()
	r.DrawQuad(graphics.RectFromLTWH(node.Size.Width-scrollbarWidth, top, scrollbarWidth, thumb), color,
		graphics.Border{Radius: scrollbarWidth / 2})
}

func (s Scrollable) OnEvent(tree *core.Tree, ev event.Event, bounds graphics.Rect, cursor event.Cursor, shell *core.Shell) event.Status {
	m, ok := ev.(event.Mouse)
	if !ok || m.Kind != event.WheelScrolled || !cursor.IsOver(bounds) {
		return event.Ignored
	}
	st := core.StateOf[*scrollState](tree)
	if !st.scrollTo(st.offset - m.Delta.Y) {
		return event.Ignored
	}
	shell.RequestRedraw()
	if s.OnScroll != nil {
		shell.Publish(s.OnScroll(st.offset))
	}
	return event.Captured
}
