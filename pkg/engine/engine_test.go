package engine

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/errors"
	"github.com/go-drift/mvu/pkg/event"
	"github.com/go-drift/mvu/pkg/focus"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/layout"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// probe records every event it receives into a shared log.
type probe struct {
	name      string
	width     float64
	height    float64
	capture   bool
	focusable bool
	panics    bool
	scroll    float64
	log       *[]string
	children  []core.Widget
}

func (p probe) Sizing() layout.Sizing {
	return layout.Sizing{Width: layout.Fixed(p.width), Height: layout.Fixed(p.height)}
}

func (p probe) flex() layout.Flex { return layout.Flex{Axis: layout.AxisVertical} }

func (p probe) Measure(tree *core.Tree, limits layout.Limits) graphics.Size {
	return p.flex().Measure(limits, core.LayoutChildren(p, tree))
}

func (p probe) Arrange(tree *core.Tree, size graphics.Size) layout.Node {
	return p.flex().Arrange(size, core.LayoutChildren(p, tree))
}

func (p probe) Draw(tree *core.Tree, r *graphics.Recorder, node layout.Node) {
	r.DrawQuad(node.Size.Rect(), graphics.ColorWhite, graphics.Border{})
	core.DrawChildren(p, tree, r, node)
}

func (p probe) OnEvent(tree *core.Tree, ev event.Event, _ graphics.Rect, _ event.Cursor, shell *core.Shell) event.Status {
	if p.panics {
		panic("probe failure")
	}
	*p.log = append(*p.log, p.name+":"+describe(ev))
	if m, ok := ev.(event.Mouse); ok && m.Kind == event.ButtonPressed {
		shell.Publish(p.name)
		if p.focusable {
			shell.RequestFocus()
		}
	}
	if _, isMouse := ev.(event.Mouse); isMouse && p.capture {
		return event.Captured
	}
	return event.Ignored
}

func (p probe) Children() []core.Widget   { return p.children }
func (p probe) Focusable(*core.Tree) bool { return p.focusable }
func (p probe) ID() string                { return p.name }

// scroller is a probe whose only child gets unbounded height and is
// shifted up by scroll.
type scroller struct{ probe }

func (s scroller) Arrange(tree *core.Tree, size graphics.Size) layout.Node {
	child := core.LayoutChildren(s, tree)[0]
	limits := layout.Limits{Max: graphics.Size{Width: size.Width, Height: math.Inf(1)}}
	childSize := limits.Resolve(child.Sizing(), child.Measure(limits))
	node := child.Arrange(childSize)
	node.Size = childSize
	return layout.WithChildren(size, []layout.Node{node})
}

func (s scroller) ContentOffset(*core.Tree) graphics.Offset {
	return graphics.Offset{Y: s.scroll}
}

func describe(ev event.Event) string {
	switch e := ev.(type) {
	case event.Mouse:
		return e.Kind.String()
	case event.Keyboard:
		return "key " + string(e.Key)
	case event.Focus:
		return fmt.Sprintf("focus %v", e.Gained)
	case event.Hover:
		return fmt.Sprintf("hover %v", e.Entered)
	case event.Window:
		return e.Kind.String()
	default:
		return fmt.Sprintf("%T", ev)
	}
}

// only keeps the log lines ending in suffix.
func only(log []string, suffix string) []string {
	var out []string
	for _, l := range log {
		if strings.HasSuffix(l, suffix) {
			out = append(out, l)
		}
	}
	return out
}

func mouse(kind event.MouseKind, x, y float64) event.Mouse {
	return event.Mouse{Stamp: event.Stamp{At: epoch}, Kind: kind, Position: graphics.Offset{X: x, Y: y}}
}

func key(k event.Key, mods event.Modifiers) event.Keyboard {
	return event.Keyboard{Stamp: event.Stamp{At: epoch}, Kind: event.KeyPressed, Key: k, Modifiers: mods}
}

// sampleTree lays out as:
//
//	root 100x100
//	├── a   100x40 at y=0
//	│   └── a1 50x20
//	└── b   100x40 at y=40 (captures)
func sampleTree(log *[]string) core.Widget {
	return probe{name: "root", width: 100, height: 100, log: log, children: []core.Widget{
		probe{name: "a", width: 100, height: 40, log: log, focusable: true, children: []core.Widget{
			probe{name: "a1", width: 50, height: 20, log: log, focusable: true},
		}},
		probe{name: "b", width: 100, height: 40, log: log, capture: true, focusable: true},
	}}
}

func newUI(root core.Widget) *UserInterface {
	return New(root, graphics.Size{Width: 100, Height: 100}, nil)
}

func TestPointerBubblesInnermostFirst(t *testing.T) {
	var log []string
	ui := newUI(sampleTree(&log))

	_, statuses, msgs := ui.Update([]event.Event{mouse(event.ButtonPressed, 10, 10)})

	want := []string{"a1:button_pressed", "a:button_pressed", "root:button_pressed"}
	if diff := cmp.Diff(want, only(log, "button_pressed")); diff != "" {
		t.Errorf("delivery mismatch (-want +got):\n%s", diff)
	}
	if statuses[0] != event.Ignored {
		t.Errorf("status = %v, want ignored", statuses[0])
	}
	if diff := cmp.Diff([]core.Message{"a1", "a", "root"}, msgs); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestCaptureStopsPropagation(t *testing.T) {
	var log []string
	ui := newUI(sampleTree(&log))

	state, statuses, msgs := ui.Update([]event.Event{mouse(event.ButtonPressed, 10, 50)})

	if diff := cmp.Diff([]string{"b:button_pressed"}, only(log, "button_pressed")); diff != "" {
		t.Errorf("delivery mismatch (-want +got):\n%s", diff)
	}
	if statuses[0] != event.Captured {
		t.Errorf("status = %v, want captured", statuses[0])
	}
	if len(msgs) != 1 || !state.Outdated {
		t.Errorf("expected one message and an outdated state, got %v %+v", msgs, state)
	}
}

func TestPressCapturesPointerUntilRelease(t *testing.T) {
	var log []string
	ui := newUI(sampleTree(&log))

	ui.Update([]event.Event{
		mouse(event.ButtonPressed, 10, 50),
		mouse(event.CursorMoved, 10, 10),
		mouse(event.ButtonReleased, 10, 10),
	})

	var bLog []string
	for _, l := range log {
		if len(l) > 2 && l[:2] == "b:" {
			bLog = append(bLog, l)
		}
	}
	want := []string{"b:button_pressed", "b:focus true", "b:cursor_moved", "b:button_released"}
	if diff := cmp.Diff(want, bLog); diff != "" {
		t.Errorf("captured delivery mismatch (-want +got):\n%s", diff)
	}
	for _, l := range log {
		if l == "a1:button_released" {
			t.Error("release should go to the captured widget, not the one under the cursor")
		}
	}
}

func TestHoverEnterAndLeave(t *testing.T) {
	var log []string
	ui := newUI(sampleTree(&log))

	ui.Update([]event.Event{mouse(event.CursorMoved, 10, 10)})
	log = log[:0]
	ui.Update([]event.Event{mouse(event.CursorMoved, 60, 50)})

	want := []string{
		"a1:hover false",
		"a:hover false",
		"b:hover true",
		"b:cursor_moved",
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("hover mismatch (-want +got):\n%s", diff)
	}
}

func TestKeyboardGoesToFocusedThenAncestors(t *testing.T) {
	var log []string
	ui := newUI(sampleTree(&log))

	ui.Update([]event.Event{mouse(event.ButtonPressed, 10, 10)})
	focused, ok := ui.Focused()
	if !ok || focused.Widget.(probe).name != "a1" {
		t.Fatalf("focused = %+v, %v; want a1 (the innermost requester wins)", focused, ok)
	}

	log = log[:0]
	ui.Update([]event.Event{key("x", 0)})
	want := []string{"a1:key x", "a:key x", "root:key x"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("keyboard delivery mismatch (-want +got):\n%s", diff)
	}
}

func TestTabTraversal(t *testing.T) {
	var log []string
	ui := newUI(sampleTree(&log))

	names := func() string {
		e, ok := ui.Focused()
		if !ok {
			return ""
		}
		return e.Widget.(probe).name
	}

	steps := []struct {
		mods event.Modifiers
		want string
	}{
		{0, "a"},
		{0, "a1"},
		{0, "b"},
		{0, "a"},
		{event.ModShift, "b"},
	}
	for i, s := range steps {
		_, statuses, _ := ui.Update([]event.Event{key(event.KeyTab, s.mods)})
		if statuses[0] != event.Captured {
			t.Errorf("step %d: tab status = %v, want captured", i, statuses[0])
		}
		if got := names(); got != s.want {
			t.Errorf("step %d: focused %q, want %q", i, got, s.want)
		}
	}

	focusLog := 0
	for _, l := range log {
		if l == "a:focus true" || l == "a:focus false" {
			focusLog++
		}
	}
	if focusLog != 4 {
		t.Errorf("a received %d focus notifications, want 4", focusLog)
	}
}

func TestPressOutsideReleasesFocus(t *testing.T) {
	var log []string
	root := probe{name: "root", width: 100, height: 100, log: &log, children: []core.Widget{
		probe{name: "field", width: 100, height: 20, log: &log, focusable: true},
	}}
	ui := newUI(root)
	ui.FocusID("field")

	log = log[:0]
	ui.Update([]event.Event{mouse(event.ButtonPressed, 50, 90)})
	if _, ok := ui.Focused(); ok {
		t.Error("pressing outside the focused widget should release focus")
	}
	if len(log) == 0 || log[0] != "field:focus false" {
		t.Errorf("log = %v, want a focus loss first", log)
	}
}

func TestFocusUnknownIDIsNoop(t *testing.T) {
	var log []string
	ui := newUI(sampleTree(&log))
	if msgs := ui.FocusID("missing"); msgs != nil {
		t.Errorf("FocusID() = %v, want nil", msgs)
	}
	if _, ok := ui.Focused(); ok {
		t.Error("focus should stay empty")
	}
	if msgs := ui.FocusID("root"); msgs != nil {
		t.Errorf("non-focusable widgets cannot take focus, got %v", msgs)
	}
}

func TestFocusSurvivesRebuild(t *testing.T) {
	var log []string
	ui := newUI(sampleTree(&log))
	ui.MoveFocus(focus.TraversalNext)
	before, _ := ui.Focused()

	ui.Rebuild(sampleTree(&log))
	after, ok := ui.Focused()
	if !ok || after.Tree != before.Tree {
		t.Error("focus should follow the persistent state node")
	}

	ui.Rebuild(probe{name: "root", width: 100, height: 100, log: &log})
	if _, ok := ui.Focused(); ok {
		t.Error("focus should be dropped when the widget disappears")
	}
}

func TestRebuildNotifiesWidgetThatStopsBeingFocusable(t *testing.T) {
	var log []string
	ui := newUI(sampleTree(&log))
	ui.MoveFocus(focus.TraversalNext)
	if got, ok := ui.Focused(); !ok || got.Widget.(probe).name != "a" {
		t.Fatalf("Focused() = %v, %v, want a", got, ok)
	}
	log = nil

	disabled := probe{name: "root", width: 100, height: 100, log: &log, children: []core.Widget{
		probe{name: "a", width: 100, height: 40, log: &log},
		probe{name: "b", width: 100, height: 40, log: &log, focusable: true},
	}}
	ui.Rebuild(disabled)

	if _, ok := ui.Focused(); ok {
		t.Error("focus should be dropped")
	}
	if diff := cmp.Diff([]string{"a:focus false"}, only(log, "focus false")); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestWindowEventsAreBroadcast(t *testing.T) {
	var log []string
	ui := newUI(sampleTree(&log))

	ui.Update([]event.Event{event.Redraw(epoch)})
	want := []string{
		"root:redraw_requested",
		"a:redraw_requested",
		"a1:redraw_requested",
		"b:redraw_requested",
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("broadcast mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutIsLazy(t *testing.T) {
	var log []string
	ui := newUI(sampleTree(&log))

	first := ui.Layout()
	ui.Layout()
	ui.Draw(graphics.ColorBlack)
	ui.Update([]event.Event{mouse(event.CursorMoved, 1, 1)})
	if got := ui.Stats().Layouts; got != 1 {
		t.Errorf("layouts = %d, want 1", got)
	}

	ui.Resize(graphics.Size{Width: 100, Height: 100})
	if ui.Layout(); ui.Stats().Layouts != 1 {
		t.Error("resizing to the same size should not relayout")
	}

	ui.Update([]event.Event{event.Window{Stamp: event.Stamp{At: epoch}, Kind: event.Resized, Size: graphics.Size{Width: 200, Height: 100}}})
	ui.Layout()
	if got := ui.Stats().Layouts; got != 2 {
		t.Errorf("layouts = %d, want 2 after resize", got)
	}

	ui.Resize(graphics.Size{Width: 100, Height: 100})
	if diff := cmp.Diff(first, ui.Layout()); diff != "" {
		t.Errorf("layout not deterministic (-first +again):\n%s", diff)
	}
}

func TestPanickingWidgetIsIsolated(t *testing.T) {
	old := errors.DefaultHandler
	var reported int
	errors.SetHandler(countingHandler{n: &reported})
	defer errors.SetHandler(old)

	var log []string
	root := probe{name: "root", width: 100, height: 100, log: &log, children: []core.Widget{
		probe{name: "bad", width: 100, height: 50, log: &log, panics: true},
	}}
	ui := newUI(root)

	_, statuses, _ := ui.Update([]event.Event{mouse(event.ButtonPressed, 5, 5)})
	if statuses[0] != event.Ignored {
		t.Errorf("status = %v", statuses[0])
	}
	if diff := cmp.Diff([]string{"root:button_pressed"}, log); diff != "" {
		t.Errorf("delivery mismatch (-want +got):\n%s", diff)
	}
	if reported != 1 {
		t.Errorf("reported %d widget errors, want 1", reported)
	}
}

func TestScrollerShiftsHitTesting(t *testing.T) {
	var log []string
	content := probe{name: "content", width: 100, height: 300, log: &log, children: []core.Widget{
		probe{name: "top", width: 100, height: 150, log: &log},
		probe{name: "bottom", width: 100, height: 150, log: &log},
	}}
	root := scroller{probe: probe{name: "scroll", width: 100, height: 100, log: &log, scroll: 120, children: []core.Widget{content}}}
	ui := newUI(root)

	hit := ui.HitTest(graphics.Offset{X: 10, Y: 40})
	if len(hit.Entries) == 0 || hit.Entries[0].Widget.(probe).name != "bottom" {
		t.Fatalf("hit = %+v, want bottom first", hit.Entries)
	}
	if got := hit.Entries[0].Bounds.Top; got != 30 {
		t.Errorf("bottom bounds top = %v, want 30", got)
	}
}

type countingHandler struct{ n *int }

func (h countingHandler) HandleError(*errors.RuntimeError)      {}
func (h countingHandler) HandlePanic(*errors.PanicError)        {}
func (h countingHandler) HandleWidgetError(*errors.WidgetError) { *h.n++ }
