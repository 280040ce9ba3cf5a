package testing

import (
	"fmt"

	"github.com/go-drift/mvu/pkg/event"
	"github.com/go-drift/mvu/pkg/graphics"
)

func (t *Tester[S]) center(op string, finder Finder) (graphics.Offset, error) {
	result := t.Find(finder)
	if !result.Exists() {
		return graphics.Offset{}, fmt.Errorf("%s: finder matched no widgets: %s", op, finder.Description())
	}
	return result.Bounds().Center(), nil
}

// Tap clicks the center of the first widget matched by finder.
func (t *Tester[S]) Tap(finder Finder) error {
	pos, err := t.center("Tap", finder)
	if err != nil {
		return err
	}
	t.TapAt(pos)
	return nil
}

// TapAt moves the cursor to pos and clicks the left button there.
func (t *Tester[S]) TapAt(pos graphics.Offset) {
	t.MoveTo(pos)
	t.Dispatch(
		event.Mouse{Stamp: t.stamp(), Kind: event.ButtonPressed, Position: pos, Button: event.ButtonLeft},
		event.Mouse{Stamp: t.stamp(), Kind: event.ButtonReleased, Position: pos, Button: event.ButtonLeft},
	)
}

// Hover moves the cursor to the center of the first widget matched by finder.
func (t *Tester[S]) Hover(finder Finder) error {
	pos, err := t.center("Hover", finder)
	if err != nil {
		return err
	}
	t.MoveTo(pos)
	return nil
}

// MoveTo moves the cursor to pos.
func (t *Tester[S]) MoveTo(pos graphics.Offset) {
	t.Dispatch(event.Mouse{Stamp: t.stamp(), Kind: event.CursorMoved, Position: pos})
}

// Drag presses at the center of the first widget matched by finder, moves
// by delta and releases.
func (t *Tester[S]) Drag(finder Finder, delta graphics.Offset) error {
	start, err := t.center("Drag", finder)
	if err != nil {
		return err
	}
	end := start.Add(delta)
	t.MoveTo(start)
	t.Dispatch(
		event.Mouse{Stamp: t.stamp(), Kind: event.ButtonPressed, Position: start, Button: event.ButtonLeft},
		event.Mouse{Stamp: t.stamp(), Kind: event.CursorMoved, Position: end},
		event.Mouse{Stamp: t.stamp(), Kind: event.ButtonReleased, Position: end, Button: event.ButtonLeft},
	)
	return nil
}

// Scroll turns the wheel over the first widget matched by finder. A
// positive dy scrolls towards the top of the content, like a wheel turned
// away from the user.
func (t *Tester[S]) Scroll(finder Finder, dy float64) error {
	pos, err := t.center("Scroll", finder)
	if err != nil {
		return err
	}
	t.MoveTo(pos)
	t.Dispatch(event.Mouse{Stamp: t.stamp(), Kind: event.WheelScrolled, Position: pos, Delta: graphics.Offset{Y: dy}})
	return nil
}

// PressKey presses and releases key with mods held.
func (t *Tester[S]) PressKey(key event.Key, mods event.Modifiers) {
	t.Dispatch(
		event.Keyboard{Stamp: t.stamp(), Kind: event.KeyPressed, Key: key, Modifiers: mods},
		event.Keyboard{Stamp: t.stamp(), Kind: event.KeyReleased, Key: key, Modifiers: mods},
	)
}

// Type sends one key press per rune of text, carrying the rune as the
// produced text.
func (t *Tester[S]) Type(text string) {
	for _, r := range text {
		s := string(r)
		t.Dispatch(event.Keyboard{Stamp: t.stamp(), Kind: event.KeyPressed, Key: event.Key(s), Text: s})
	}
}

// EnterText taps the first widget matched by finder to focus it, then types
// text into it.
func (t *Tester[S]) EnterText(finder Finder, text string) error {
	if err := t.Tap(finder); err != nil {
		return fmt.Errorf("EnterText: %w", err)
	}
	t.Type(text)
	return nil
}
