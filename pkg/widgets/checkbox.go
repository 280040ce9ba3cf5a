package widgets

import (
	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/event"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/layout"
	"github.com/go-drift/mvu/pkg/text"
)

// Checkbox is a labeled toggle.
//
// Checkbox is controlled: it displays Checked and publishes OnToggle with
// the new value when clicked. Without OnToggle it is drawn disabled.
type Checkbox struct {
	Label    string
	Checked  bool
	OnToggle func(checked bool) core.Message
	// BoxSize defaults to 16.
	BoxSize float64
	// Spacing between box and label defaults to 8.
	Spacing  float64
	TextSize float64
	Color    graphics.Color
}

// CheckboxOf creates a checkbox.
func CheckboxOf(label string, checked bool, onToggle func(bool) core.Message) Checkbox {
	return Checkbox{Label: label, Checked: checked, OnToggle: onToggle}
}

type checkboxState struct {
	hovered bool
	pressed bool
}

func (c Checkbox) InitState() any { return &checkboxState{} }

func (c Checkbox) boxSize() float64 {
	if c.BoxSize <= 0 {
		return 16
	}
	return c.BoxSize
}

func (c Checkbox) spacing() float64 {
	if c.Spacing <= 0 {
		return 8
	}
	return c.Spacing
}

func (c Checkbox) textSize() float64 {
	if c.TextSize <= 0 {
		return text.DefaultSize
	}
	return c.TextSize
}

func (c Checkbox) color() graphics.Color {
	if c.Color == 0 {
		return DefaultButtonStyle.Background
	}
	return c.Color
}

func (c Checkbox) Sizing() layout.Sizing { return layout.Sizing{} }

func (c Checkbox) Measure(_ *core.Tree, limits layout.Limits) graphics.Size {
	box := c.boxSize()
	size := graphics.Size{Width: box, Height: box}
	if c.Label != "" {
		label := text.Default().Measure(c.Label, c.textSize())
		size.Width += c.spacing() + label.Width
		size.Height = max(size.Height, label.Height)
	}
	return limits.Constrain(size)
}

func (c Checkbox) Arrange(_ *core.Tree, size graphics.Size) layout.Node {
	return layout.NewNode(size)
}

func (c Checkbox) Draw(tree *core.Tree, r *graphics.Recorder, node layout.Node) {
	st := core.StateOf[*checkboxState](tree)
	box := c.boxSize()
	top := layout.AlignCenter.Offset(node.Size.Height, box)
	rect := graphics.RectFromLTWH(0, top, box, box)

	accent := c.color()
	if c.OnToggle == nil {
		accent = DefaultButtonStyle.Disabled
	}
	borderWidth := 1.0
	if st.hovered || st.pressed {
		borderWidth = 2
	}
	fill := graphics.ColorWhite
	if c.Checked {
		fill = accent
	}
	r.DrawQuad(rect, fill, graphics.Border{Color: accent, Width: borderWidth, Radius: 2})
	if c.Checked {
		r.DrawPath(graphics.Path{
			Points: []graphics.Offset{
				{X: rect.Left + box*0.2, Y: rect.Top + box*0.5},
				{X: rect.Left + box*0.42, Y: rect.Top + box*0.72},
				{X: rect.Left + box*0.8, Y: rect.Top + box*0.28},
			},
			Stroke:      graphics.ColorWhite,
			StrokeWidth: box / 8,
		})
	}

	if c.Label != "" {
		extent := text.Default().Measure(c.Label, c.textSize())
		origin := graphics.Offset{X: box + c.spacing(), Y: layout.AlignCenter.Offset(node.Size.Height, extent.Height)}
		r.DrawText(c.Label, origin, extent, c.textSize(), graphics.ColorBlack)
	}
}

func (c Checkbox) OnEvent(tree *core.Tree, ev event.Event, bounds graphics.Rect, cursor event.Cursor, shell *core.Shell) event.Status {
	st := core.StateOf[*checkboxState](tree)
	switch e := ev.(type) {
	case event.Hover:
		st.hovered = e.Entered
		shell.RequestRedraw()
	case event.Mouse:
		if c.OnToggle == nil || e.Button != event.ButtonLeft {
			return event.Ignored
		}
		switch e.Kind {
		case event.ButtonPressed:
			if !cursor.IsOver(bounds) {
				return event.Ignored
			}
			st.pressed = true
			shell.RequestRedraw()
			return event.Captured
		case event.ButtonReleased:
			if !st.pressed {
				return event.Ignored
			}
			st.pressed = false
			shell.RequestRedraw()
			if cursor.IsOver(bounds) {
				shell.Publish(c.OnToggle(!c.Checked))
			}
			return event.Captured
		}
	}
	return event.Ignored
}
