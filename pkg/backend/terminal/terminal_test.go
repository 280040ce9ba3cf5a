package terminal

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/mvu/pkg/event"
	"github.com/go-drift/mvu/pkg/graphics"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestPaint_BorderAndText(t *testing.T) {
	full := graphics.RectFromLTWH(0, 0, 8, 3)
	f := graphics.Frame{
		Viewport: graphics.Size{Width: 8, Height: 3},
		Primitives: []graphics.Primitive{
			graphics.Quad{Rect: full, Border: graphics.Border{Color: graphics.ColorBlack, Width: 1}, Clip: full},
			graphics.Text{Content: "hi", Origin: graphics.Offset{X: 1, Y: 1}, Extent: graphics.Size{Width: 2, Height: 1}, Color: graphics.ColorBlack, Clip: full},
		},
	}

	want := strings.Join([]string{
		"┌──────┐",
		"│hi    │",
		"└──────┘",
	}, "\n")
	if diff := cmp.Diff(want, Paint(f).Plain()); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestPaint_ClipsText(t *testing.T) {
	f := graphics.Frame{
		Viewport: graphics.Size{Width: 6, Height: 1},
		Primitives: []graphics.Primitive{
			graphics.Text{Content: "abcdef", Origin: graphics.Offset{X: 0, Y: 0}, Color: graphics.ColorBlack, Clip: graphics.RectFromLTWH(0, 0, 3, 1)},
		},
	}
	if got := Paint(f).Plain(); got != "abc   " {
		t.Errorf("Plain() = %q", got)
	}
}

func TestPaint_QuadBackground(t *testing.T) {
	f := graphics.Frame{
		Viewport:   graphics.Size{Width: 4, Height: 2},
		Background: graphics.ColorWhite,
		Primitives: []graphics.Primitive{
			graphics.Quad{Rect: graphics.RectFromLTWH(1, 0, 2, 1), Background: graphics.ColorBlue, Clip: graphics.RectFromLTWH(0, 0, 4, 2)},
		},
	}
	g := Paint(f)
	var got []graphics.Color
	for _, c := range g.Cells[0] {
		got = append(got, c.BG)
	}
	want := []graphics.Color{graphics.ColorWhite, graphics.ColorBlue, graphics.ColorBlue, graphics.ColorWhite}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("backgrounds mismatch (-want +got):\n%s", diff)
	}
}

func TestPaint_WideRunes(t *testing.T) {
	f := graphics.Frame{
		Viewport: graphics.Size{Width: 4, Height: 1},
		Primitives: []graphics.Primitive{
			graphics.Text{Content: "日x", Color: graphics.ColorBlack, Clip: graphics.RectFromLTWH(0, 0, 4, 1)},
		},
	}
	if got := Paint(f).Plain(); got != "日x " {
		t.Errorf("Plain() = %q", got)
	}
}

func TestConvertKeys(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want event.Keyboard
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, event.Keyboard{Key: "a", Text: "a"}},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a"), Alt: true}, event.Keyboard{Key: "a", Modifiers: event.ModAlt}},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, event.Keyboard{Key: event.KeySpace, Text: " "}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, event.Keyboard{Key: event.KeyEnter}},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, event.Keyboard{Key: event.KeyTab, Modifiers: event.ModShift}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, event.Keyboard{Key: event.KeyBackspace}},
		{"paste", tea.KeyMsg{Type: tea.KeyCtrlV}, event.Keyboard{Key: "v", Modifiers: event.ModCtrl}},
		{"copy", tea.KeyMsg{Type: tea.KeyCtrlY}, event.Keyboard{Key: "c", Modifiers: event.ModCtrl}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convert(tt.msg, epoch)
			if len(got) != 2 {
				t.Fatalf("got %d events, want press and release", len(got))
			}
			want := tt.want
			want.Stamp = event.Stamp{At: epoch}
			want.Kind = event.KeyPressed
			if diff := cmp.Diff(event.Event(want), got[0]); diff != "" {
				t.Errorf("press mismatch (-want +got):\n%s", diff)
			}
			if rel := got[1].(event.Keyboard); rel.Kind != event.KeyReleased || rel.Text != "" {
				t.Errorf("release = %+v", rel)
			}
		})
	}
}

func TestConvertCtrlCCloses(t *testing.T) {
	got := convert(tea.KeyMsg{Type: tea.KeyCtrlC}, epoch)
	want := []event.Event{event.Window{Stamp: event.Stamp{At: epoch}, Kind: event.CloseRequested}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertUnknownKeyIsDropped(t *testing.T) {
	if got := convert(tea.KeyMsg{Type: tea.KeyF5}, epoch); got != nil {
		t.Errorf("convert(F5) = %v, want nil", got)
	}
}

func TestConvertMouse(t *testing.T) {
	stamp := event.Stamp{At: epoch}
	center := graphics.Offset{X: 3.5, Y: 2.5}
	tests := []struct {
		name string
		msg  tea.MouseMsg
		want []event.Event
	}{
		{
			"press",
			tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
			[]event.Event{event.Mouse{Stamp: stamp, Kind: event.ButtonPressed, Position: center, Button: event.ButtonLeft}},
		},
		{
			"release",
			tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone},
			[]event.Event{event.Mouse{Stamp: stamp, Kind: event.ButtonReleased, Position: center, Button: event.ButtonLeft}},
		},
		{
			"motion",
			tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionMotion},
			[]event.Event{event.Mouse{Stamp: stamp, Kind: event.CursorMoved, Position: center, Button: event.ButtonLeft}},
		},
		{
			"wheel up",
			tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp},
			[]event.Event{event.Mouse{Stamp: stamp, Kind: event.WheelScrolled, Position: center, Delta: graphics.Offset{Y: 1}}},
		},
		{
			"wheel down",
			tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown},
			[]event.Event{event.Mouse{Stamp: stamp, Kind: event.WheelScrolled, Position: center, Delta: graphics.Offset{Y: -1}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, convert(tt.msg, epoch)); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertWindow(t *testing.T) {
	stamp := event.Stamp{At: epoch}
	tests := []struct {
		msg  tea.Msg
		want event.Event
	}{
		{tea.WindowSizeMsg{Width: 100, Height: 30}, event.Window{Stamp: stamp, Kind: event.Resized, Size: graphics.Size{Width: 100, Height: 30}}},
		{tea.FocusMsg{}, event.Window{Stamp: stamp, Kind: event.Focused}},
		{tea.BlurMsg{}, event.Window{Stamp: stamp, Kind: event.Unfocused}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff([]event.Event{tt.want}, convert(tt.msg, epoch)); diff != "" {
			t.Errorf("convert(%T) mismatch (-want +got):\n%s", tt.msg, diff)
		}
	}
}
