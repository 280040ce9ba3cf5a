package widgets

import (
	"strings"

	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/event"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/layout"
	"github.com/go-drift/mvu/pkg/text"
)

// TextInput is a single-line editable text field.
//
// TextInput is controlled: it displays Value and publishes OnInput with the
// edited string; the application stores it and passes it back on the next
// view. Without OnInput the field is read-only but can still be focused and
// copied from.
type TextInput struct {
	// Name identifies the field for focus tasks.
	Name        string
	Value       string
	Placeholder string
	OnInput     func(value string) core.Message
	// OnSubmit is published when Enter is pressed.
	OnSubmit core.Message
	// Secure masks the value and disables copying.
	Secure  bool
	Size    float64
	Padding layout.Padding
	Width   layout.Length
}

// TextInputOf creates an input with a placeholder and an input handler.
func TextInputOf(placeholder, value string, onInput func(string) core.Message) TextInput {
	return TextInput{Placeholder: placeholder, Value: value, OnInput: onInput}
}

// WithName returns a copy of the input with the given focus name.
func (t TextInput) WithName(name string) TextInput {
	t.Name = name
	return t
}

// WithOnSubmit returns a copy of the input publishing msg on Enter.
func (t TextInput) WithOnSubmit(msg core.Message) TextInput {
	t.OnSubmit = msg
	return t
}

// WithSecure returns a copy of the input with masking enabled or disabled.
func (t TextInput) WithSecure(secure bool) TextInput {
	t.Secure = secure
	return t
}

type inputState struct {
	focused bool
	// cursor is a rune index into the value.
	cursor int
}

func (t TextInput) InitState() any { return &inputState{cursor: -1} }

func (t TextInput) ID() string { return t.Name }

func (t TextInput) Focusable(*core.Tree) bool { return true }

func (t TextInput) size() float64 {
	if t.Size <= 0 {
		return text.DefaultSize
	}
	return t.Size
}

func (t TextInput) padding() layout.Padding {
	if t.Padding == (layout.Padding{}) {
		return layout.PaddingAll(4)
	}
	return t.Padding
}

func (t TextInput) display(value string) string {
	if t.Secure {
		return strings.Repeat("*", len([]rune(value)))
	}
	return value
}

func (t TextInput) Sizing() layout.Sizing {
	return layout.Sizing{Width: t.Width}
}

func (t TextInput) Measure(_ *core.Tree, limits layout.Limits) graphics.Size {
	m := text.Default()
	content := m.Measure(t.display(t.Value), t.size())
	placeholder := m.Measure(t.Placeholder, t.size())
	inner := graphics.Size{
		Width:  max(content.Width, placeholder.Width) + 1,
		Height: max(t.size(), content.Height),
	}
	return limits.Constrain(t.padding().Inflate(inner))
}

func (t TextInput) Arrange(_ *core.Tree, size graphics.Size) layout.Node {
	return layout.NewNode(size)
}

func (t TextInput) Draw(tree *core.Tree, r *graphics.Recorder, node layout.Node) {
	st := core.StateOf[*inputState](tree)
	border := graphics.Border{Color: graphics.RGB(0xD1, 0xD5, 0xDB), Width: 1, Radius: 2}
	if st.focused {
		border = graphics.Border{Color: DefaultButtonStyle.Background, Width: 2, Radius: 2}
	}
	r.DrawQuad(node.Size.Rect(), graphics.ColorWhite, border)

	pad := t.padding()
	inner := pad.Deflate(node.Size)
	r.Save()
	r.Translate(pad.Left, pad.Top)
	r.ClipRect(inner.Rect())

	m := text.Default()
	content, color := t.display(t.Value), graphics.ColorBlack
	if t.Value == "" {
		content, color = t.Placeholder, graphics.RGB(0x9C, 0xA3, 0xAF)
	}
	extent := m.Measure(content, t.size())
	r.DrawText(content, graphics.Offset{}, extent, t.size(), color)

	if st.focused {
		runes := []rune(t.display(t.Value))
		cursor := clampCursor(st.cursor, len(runes))
		x := m.Measure(string(runes[:cursor]), t.size()).Width
		r.DrawQuad(graphics.RectFromLTWH(x, 0, 1, t.size()), graphics.ColorBlack, graphics.Border{})
	}
	r.Restore()
}

func (t TextInput) OnEvent(tree *core.Tree, ev event.Event, bounds graphics.Rect, cursor event.Cursor, shell *core.Shell) event.Status {
	st := core.StateOf[*inputState](tree)
	switch e := ev.(type) {
	case event.Focus:
		st.focused = e.Gained
		if e.Gained && st.cursor < 0 {
			st.cursor = len([]rune(t.Value))
		}
		shell.RequestRedraw()
	case event.Mouse:
		if e.Kind != event.ButtonPressed || !cursor.IsOver(bounds) {
			return event.Ignored
		}
		x := cursor.Position.X - bounds.Left - t.padding().Left
		st.cursor = t.cursorAt(x)
		shell.RequestFocus()
		shell.RequestRedraw()
		return event.Captured
	case event.Keyboard:
		if !st.focused || e.Kind != event.KeyPressed {
			return event.Ignored
		}
		return t.onKey(st, e, shell)
	}
	return event.Ignored
}

// cursorAt returns the rune index closest to x, in content coordinates.
func (t TextInput) cursorAt(x float64) int {
	runes := []rune(t.display(t.Value))
	m := text.Default()
	prev := 0.0
	for i := range runes {
		w := m.Measure(string(runes[:i+1]), t.size()).Width
		if x < (prev+w)/2 {
			return i
		}
		prev = w
	}
	return len(runes)
}

func (t TextInput) onKey(st *inputState, e event.Keyboard, shell *core.Shell) event.Status {
	runes := []rune(t.Value)
	cur := clampCursor(st.cursor, len(runes))
	edit := func(value []rune, cursor int) event.Status {
		st.cursor = cursor
		shell.RequestRedraw()
		if t.OnInput != nil {
			shell.Publish(t.OnInput(string(value)))
		}
		return event.Captured
	}
	move := func(cursor int) event.Status {
		st.cursor = cursor
		shell.RequestRedraw()
		return event.Captured
	}

	if e.Modifiers.Command() {
		switch strings.ToLower(string(e.Key)) {
		case "c":
			if !t.Secure {
				shell.Clipboard().Write(t.Value)
			}
			return event.Captured
		case "x":
			if t.Secure || t.OnInput == nil {
				return event.Captured
			}
			shell.Clipboard().Write(t.Value)
			return edit(nil, 0)
		case "v":
			pasted, ok := shell.Clipboard().Read()
			if !ok || t.OnInput == nil {
				return event.Captured
			}
			return t.insert(runes, cur, pasted, edit)
		}
		return event.Ignored
	}

	switch e.Key {
	case event.KeyEnter:
		if t.OnSubmit != nil {
			shell.Publish(t.OnSubmit)
		}
		return event.Captured
	case event.KeyBackspace:
		if cur == 0 || t.OnInput == nil {
			return event.Captured
		}
		return edit(append(runes[:cur-1:cur-1], runes[cur:]...), cur-1)
	case event.KeyDelete:
		if cur == len(runes) || t.OnInput == nil {
			return event.Captured
		}
		return edit(append(runes[:cur:cur], runes[cur+1:]...), cur)
	case event.KeyLeft:
		return move(max(cur-1, 0))
	case event.KeyRight:
		return move(min(cur+1, len(runes)))
	case event.KeyHome:
		return move(0)
	case event.KeyEnd:
		return move(len(runes))
	case event.KeyTab, event.KeyEscape:
		return event.Ignored
	}

	if e.Text == "" || t.OnInput == nil {
		return event.Ignored
	}
	return t.insert(runes, cur, e.Text, edit)
}

func (t TextInput) insert(runes []rune, cur int, s string, edit func([]rune, int) event.Status) event.Status {
	// Single line: drop anything after a newline.
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	ins := []rune(s)
	value := make([]rune, 0, len(runes)+len(ins))
	value = append(value, runes[:cur]...)
	value = append(value, ins...)
	value = append(value, runes[cur:]...)
	return edit(value, cur+len(ins))
}

func clampCursor(cursor, n int) int {
	if cursor < 0 || cursor > n {
		return n
	}
	return cursor
}
