package widgets

import (
	"time"

	"github.com/go-drift/mvu/pkg/animation"
	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/event"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/layout"
)

// pressFade is how long the press highlight takes to fade after release.
const pressFade = 150 * time.Millisecond

// Button is a pressable box around a label or custom content.
//
// A press starts when the left button goes down inside the button and
// publishes OnPress when it is released inside. Without OnPress the button
// is drawn disabled and ignores input.
type Button struct {
	// Label is used when Content is nil.
	Label string
	// Content replaces the label.
	Content core.Widget
	// OnPress is published when the button is clicked.
	OnPress core.Message
	// Padding defaults to symmetric(8, 16) when zero.
	Padding layout.Padding
	Width   layout.Length
	Height  layout.Length
	// Style overrides the default colors.
	Style ButtonStyle
}

// ButtonStyle holds the button colors. Zero fields use the defaults.
type ButtonStyle struct {
	Background graphics.Color
	Hovered    graphics.Color
	Pressed    graphics.Color
	Disabled   graphics.Color
	Text       graphics.Color
	Radius     float64
}

// DefaultButtonStyle is used for zero style fields.
var DefaultButtonStyle = ButtonStyle{
	Background: graphics.RGB(0x25, 0x63, 0xEB),
	Hovered:    graphics.RGB(0x3B, 0x82, 0xF6),
	Pressed:    graphics.RGB(0x1D, 0x4E, 0xD8),
	Disabled:   graphics.RGB(0x9C, 0xA3, 0xAF),
	Text:       graphics.ColorWhite,
	Radius:     4,
}

// ButtonOf creates a labeled button publishing onPress.
func ButtonOf(label string, onPress core.Message) Button {
	return Button{Label: label, OnPress: onPress}
}

// WithPadding returns a copy of the button with the given padding.
func (b Button) WithPadding(padding layout.Padding) Button {
	b.Padding = padding
	return b
}

// WithWidth returns a copy of the button with the given width policy.
func (b Button) WithWidth(width layout.Length) Button {
	b.Width = width
	return b
}

// WithStyle returns a copy of the button with the given style.
func (b Button) WithStyle(style ButtonStyle) Button {
	b.Style = style
	return b
}

type buttonState struct {
	hovered bool
	pressed bool
	// highlight is 1 while pressed and fades to 0 after release.
	highlight animation.Animation
	// frame is the time of the frame being drawn.
	frame time.Time
}

func (b Button) InitState() any {
	return &buttonState{highlight: animation.Animation{Curve: animation.EaseOut}}
}

func (b Button) Children() []core.Widget {
	return []core.Widget{b.content()}
}

func (b Button) content() core.Widget {
	if b.Content != nil {
		return b.Content
	}
	return Text{Content: b.Label, Color: b.style().Text}
}

func (b Button) style() ButtonStyle {
	s := b.Style
	d := DefaultButtonStyle
	if s.Background == 0 {
		s.Background = d.Background
	}
	if s.Hovered == 0 {
		s.Hovered = d.Hovered
	}
	if s.Pressed == 0 {
		s.Pressed = d.Pressed
	}
	if s.Disabled == 0 {
		s.Disabled = d.Disabled
	}
	if s.Text == 0 {
		s.Text = d.Text
	}
	if s.Radius == 0 {
		s.Radius = d.Radius
	}
	return s
}

func (b Button) single() layout.Single {
	padding := b.Padding
	if padding == (layout.Padding{}) {
		padding = layout.PaddingSymmetric(8, 16)
	}
	return layout.Single{Padding: padding, Horizontal: layout.AlignCenter, Vertical: layout.AlignCenter}
}

func (b Button) Sizing() layout.Sizing {
	return layout.Sizing{Width: b.Width, Height: b.Height}
}

func (b Button) Measure(tree *core.Tree, limits layout.Limits) graphics.Size {
	return b.single().Measure(limits, core.LayoutChildren(b, tree)[0])
}

func (b Button) Arrange(tree *core.Tree, size graphics.Size) layout.Node {
	return b.single().Arrange(size, core.LayoutChildren(b, tree)[0])
}

// background returns the fill color for the given state at now.
func (b Button) background(st *buttonState, now time.Time) graphics.Color {
	s := b.style()
	switch {
	case b.OnPress == nil:
		return s.Disabled
	case st.pressed:
		return s.Pressed
	}
	base := s.Background
	if st.hovered {
		base = s.Hovered
	}
	return animation.LerpColor(base, s.Pressed, st.highlight.Value(now))
}

func (b Button) Draw(tree *core.Tree, r *graphics.Recorder, node layout.Node) {
	st := core.StateOf[*buttonState](tree)
	r.DrawQuad(node.Size.Rect(), b.background(st, st.frame), graphics.Border{Radius: b.style().Radius})
	core.DrawChildren(b, tree, r, node)
}

func (b Button) OnEvent(tree *core.Tree, ev event.Event, bounds graphics.Rect, cursor event.Cursor, shell *core.Shell) event.Status {
	st := core.StateOf[*buttonState](tree)
	switch e := ev.(type) {
	case event.Hover:
		st.hovered = e.Entered
		shell.RequestRedraw()
	case event.Mouse:
		if b.OnPress == nil || e.Button != event.ButtonLeft {
			return event.Ignored
		}
		switch e.Kind {
		case event.ButtonPressed:
			if !cursor.IsOver(bounds) {
				return event.Ignored
			}
			st.pressed = true
			st.highlight = animation.Animation{From: 1, To: 1, Start: e.At, Curve: animation.EaseOut}
			shell.RequestRedraw()
			return event.Captured
		case event.ButtonReleased:
			if !st.pressed {
				return event.Ignored
			}
			st.pressed = false
			st.highlight = st.highlight.Go(0, e.At, pressFade)
			shell.RequestRedraw()
			if cursor.IsOver(bounds) {
				shell.Publish(b.OnPress)
			}
			return event.Captured
		}
	case event.Window:
		if e.Kind != event.RedrawRequested {
			return event.Ignored
		}
		st.frame = e.At
		if next, ok := st.highlight.NextFrame(e.At); ok {
			shell.RequestRedrawAt(next)
		}
	}
	return event.Ignored
}
