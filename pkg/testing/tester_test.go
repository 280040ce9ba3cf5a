package testing

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/mvu/pkg/app"
	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/task"
	"github.com/go-drift/mvu/pkg/widgets"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	if elapsed := clk.Now().Sub(start); elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestWidgetTester_RendersFirstFrame(t *testing.T) {
	tester := NewWidgetTester(t, widgets.TextOf("hello"))

	frame := tester.LastFrame()
	want := graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight}
	if frame.Viewport != want {
		t.Errorf("viewport = %v, want %v", frame.Viewport, want)
	}
	if diff := cmp.Diff([]string{"hello"}, Texts(frame)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
}

func TestWidgetTester_TapRecordsMessages(t *testing.T) {
	tester := NewWidgetTester(t, widgets.ColumnOf(
		widgets.ButtonOf("one", "first"),
		widgets.ButtonOf("two", "second"),
	))

	if err := tester.Tap(ByText("two")); err != nil {
		t.Fatalf("Tap failed: %v", err)
	}
	if err := tester.Tap(ByText("one")); err != nil {
		t.Fatalf("Tap failed: %v", err)
	}

	if diff := cmp.Diff(Messages{"second", "first"}, tester.State()); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestWidgetTester_TapMissing(t *testing.T) {
	tester := NewWidgetTester(t, widgets.TextOf("hello"))

	if err := tester.Tap(ByText("absent")); err == nil {
		t.Error("expected an error for a finder without matches")
	}
}

func TestFinders(t *testing.T) {
	tester := NewWidgetTester(t, widgets.ColumnOf(
		widgets.TextOf("a"),
		widgets.Keyed{ID: "row", Child: widgets.RowOf(widgets.TextOf("b"), widgets.TextOf("c"))},
		widgets.TextInputOf("name", "", nil).WithName("name"),
	))

	tests := []struct {
		finder Finder
		want   int
	}{
		{ByType[widgets.Text](), 3},
		{ByType[widgets.Row](), 1},
		{ByText("b"), 1},
		{ByID("name"), 1},
		{ByID("other"), 0},
		{ByKey("row"), 1},
		{ByPredicate("has children", func(w core.Widget) bool { return len(core.ChildrenOf(w)) > 0 }), 3},
	}
	for _, tt := range tests {
		t.Run(tt.finder.Description(), func(t *testing.T) {
			if got := tester.Find(tt.finder).Count(); got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFinderResult_FirstPanicsWhenEmpty(t *testing.T) {
	tester := NewWidgetTester(t, widgets.TextOf("a"))
	defer func() {
		if recover() == nil {
			t.Error("expected First to panic")
		}
	}()
	tester.Find(ByText("b")).First()
}

func TestPumpAndSettle_FinishesPressAnimation(t *testing.T) {
	tester := NewWidgetTester(t, widgets.ButtonOf("go", "pressed"))

	if err := tester.Tap(ByText("go")); err != nil {
		t.Fatalf("Tap failed: %v", err)
	}
	start := tester.Clock().Now()
	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatalf("PumpAndSettle: %v", err)
	}
	if elapsed := tester.Clock().Now().Sub(start); elapsed < 150*time.Millisecond {
		t.Errorf("settled after %v, before the press highlight faded", elapsed)
	}
	if _, ok := tester.Instance().NextFrame(); ok {
		t.Error("frame still requested after settling")
	}
}

func TestAdvance_OnlyRendersDueFrames(t *testing.T) {
	tester := NewWidgetTester(t, widgets.TextOf("static"))
	frames := tester.Instance().Stats().Frames

	if tester.Advance(time.Second) {
		t.Error("Advance rendered a frame nobody requested")
	}
	if got := tester.Instance().Stats().Frames; got != frames {
		t.Errorf("frames = %d, want %d", got, frames)
	}
}

func TestSetWidgetKeepsMatchingState(t *testing.T) {
	tester := NewWidgetTester(t, widgets.ColumnOf(widgets.ButtonOf("a", "a")))
	before := tester.Find(ByType[widgets.Button]()).Tree()

	tester.SetWidget(widgets.ColumnOf(widgets.ButtonOf("a", "a"), widgets.TextOf("new")))

	if after := tester.Find(ByType[widgets.Button]()).Tree(); after != before {
		t.Error("button state was rebuilt")
	}
	if !tester.Find(ByText("new")).Exists() {
		t.Error("new widget not mounted")
	}
}

type counter struct {
	value  int
	loaded bool
}

func counterApp() app.Application[counter] {
	return app.Application[counter]{
		Init: func() (counter, task.Task) { return counter{}, task.Done("loaded") },
		Update: func(c counter, msg core.Message) (counter, task.Task) {
			switch msg {
			case "loaded":
				c.loaded = true
			case "inc":
				c.value++
			}
			return c, task.None()
		},
		View: func(c counter) core.Widget {
			return widgets.ButtonOf("+", "inc")
		},
	}
}

func TestTester_SettlesInitTask(t *testing.T) {
	tester := NewTester(t, counterApp())
	if !tester.State().loaded {
		t.Error("init task not delivered")
	}
}

func TestTester_Send(t *testing.T) {
	tester := NewTester(t, counterApp())
	tester.Send("inc", "inc")
	if got := tester.State().value; got != 2 {
		t.Errorf("value = %d, want 2", got)
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	tester := NewWidgetTester(t, widgets.Centered(widgets.TextOf("snap")))
	path := filepath.Join(t.TempDir(), "snap.json")

	snap := tester.CaptureSnapshot()
	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile: %v", err)
	}
	snap.MatchesFile(t, path)

	tester.SetWidget(widgets.Centered(widgets.TextOf("changed")))
	if diff := tester.CaptureSnapshot().Diff(snap); diff == "" {
		t.Error("expected a diff after changing the text")
	}
}
