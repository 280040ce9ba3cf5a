package terminal

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/mvu/pkg/event"
	"github.com/go-drift/mvu/pkg/graphics"
)

var namedKeys = map[tea.KeyType]event.Key{
	tea.KeyTab:       event.KeyTab,
	tea.KeyShiftTab:  event.KeyTab,
	tea.KeyEnter:     event.KeyEnter,
	tea.KeyEsc:       event.KeyEscape,
	tea.KeyBackspace: event.KeyBackspace,
	tea.KeyDelete:    event.KeyDelete,
	tea.KeyLeft:      event.KeyLeft,
	tea.KeyRight:     event.KeyRight,
	tea.KeyUp:        event.KeyUp,
	tea.KeyDown:      event.KeyDown,
	tea.KeyHome:      event.KeyHome,
	tea.KeyEnd:       event.KeyEnd,
}

// ctrlKeys are the control combinations widgets understand.
var ctrlKeys = map[tea.KeyType]event.Key{
	tea.KeyCtrlA: "a",
	tea.KeyCtrlV: "v",
	tea.KeyCtrlX: "x",
	tea.KeyCtrlY: "c",
}

// convert translates a bubbletea message into runtime events. Ctrl+C closes
// the window, so copying is bound to Ctrl+Y.
func convert(msg tea.Msg, now time.Time) []event.Event {
	stamp := event.Stamp{At: now}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return []event.Event{event.Window{
			Stamp: stamp,
			Kind:  event.Resized,
			Size:  graphics.Size{Width: float64(msg.Width), Height: float64(msg.Height)},
		}}
	case tea.FocusMsg:
		return []event.Event{event.Window{Stamp: stamp, Kind: event.Focused}}
	case tea.BlurMsg:
		return []event.Event{event.Window{Stamp: stamp, Kind: event.Unfocused}}
	case tea.KeyMsg:
		return convertKey(msg, stamp)
	case tea.MouseMsg:
		if ev, ok := convertMouse(msg, stamp); ok {
			return []event.Event{ev}
		}
	}
	return nil
}

func convertKey(msg tea.KeyMsg, stamp event.Stamp) []event.Event {
	if msg.Type == tea.KeyCtrlC {
		return []event.Event{event.Window{Stamp: stamp, Kind: event.CloseRequested}}
	}
	var mods event.Modifiers
	if msg.Alt {
		mods |= event.ModAlt
	}

	kb := event.Keyboard{Stamp: stamp, Kind: event.KeyPressed, Modifiers: mods}
	switch {
	case msg.Type == tea.KeyRunes:
		kb.Key = event.Key(string(msg.Runes))
		if !msg.Alt {
			kb.Text = string(msg.Runes)
		}
	case msg.Type == tea.KeySpace:
		kb.Key, kb.Text = event.KeySpace, " "
	default:
		if k, ok := namedKeys[msg.Type]; ok {
			kb.Key = k
			if msg.Type == tea.KeyShiftTab {
				kb.Modifiers |= event.ModShift
			}
			break
		}
		k, ok := ctrlKeys[msg.Type]
		if !ok {
			return nil
		}
		kb.Key = k
		kb.Modifiers |= event.ModCtrl
	}
	// Terminals report no key releases; synthesize one so widgets see
	// balanced pairs.
	release := kb
	release.Kind, release.Text = event.KeyReleased, ""
	return []event.Event{kb, release}
}

func convertMouse(msg tea.MouseMsg, stamp event.Stamp) (event.Event, bool) {
	// Cells are addressed by their center.
	pos := graphics.Offset{X: float64(msg.X) + 0.5, Y: float64(msg.Y) + 0.5}
	m := event.Mouse{Stamp: stamp, Position: pos}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.Kind, m.Delta = event.WheelScrolled, graphics.Offset{Y: 1}
		return m, msg.Action == tea.MouseActionPress
	case tea.MouseButtonWheelDown:
		m.Kind, m.Delta = event.WheelScrolled, graphics.Offset{Y: -1}
		return m, msg.Action == tea.MouseActionPress
	case tea.MouseButtonRight:
		m.Button = event.ButtonRight
	case tea.MouseButtonMiddle:
		m.Button = event.ButtonMiddle
	default:
		m.Button = event.ButtonLeft
	}
	switch msg.Action {
	case tea.MouseActionPress:
		m.Kind = event.ButtonPressed
	case tea.MouseActionRelease:
		m.Kind = event.ButtonReleased
	case tea.MouseActionMotion:
		m.Kind = event.CursorMoved
	default:
		return nil, false
	}
	return m, true
}
