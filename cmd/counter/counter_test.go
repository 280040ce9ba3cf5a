package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/mvu/pkg/event"
	mvutest "github.com/go-drift/mvu/pkg/testing"
	"github.com/go-drift/mvu/pkg/widgets"
)

func TestCounter_TapIncrement(t *testing.T) {
	tester := mvutest.NewTester(t, NewApp(PixelMetrics))
	before := tester.Find(mvutest.ByType[widgets.Button]()).First().Tree

	for iter := 0; iter < 5; iter++ {
		if err := tester.Tap(mvutest.ByText("Increment")); err != nil {
			t.Fatal(err)
		}
	}
	tester.Frame()

	if got := tester.State().Value; got != 5 {
		t.Errorf("Value = %d, want 5", got)
	}
	if !tester.Find(mvutest.ByText("5")).Exists() {
		t.Error("value text not shown")
	}
	if after := tester.Find(mvutest.ByType[widgets.Button]()).First().Tree; after != before {
		t.Error("button state was rebuilt")
	}
}

func TestCounter_Decrement(t *testing.T) {
	tester := mvutest.NewTester(t, NewApp(PixelMetrics))
	if err := tester.Tap(mvutest.ByText("Decrement")); err != nil {
		t.Fatal(err)
	}
	tester.Frame()
	if diff := cmp.Diff([]string{"Increment", "-1", "Decrement"}, mvutest.Texts(tester.LastFrame())); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name string
		msg  any
		want int64
	}{
		{"increment", Increment{}, 4},
		{"decrement", Decrement{}, 2},
		{"event", EventSeen{Event: event.Redraw(mvutest.Epoch)}, 3},
		{"unknown", "noise", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := update(Counter{Value: 3}, tt.msg)
			if got.Value != tt.want {
				t.Errorf("Value = %d, want %d", got.Value, tt.want)
			}
		})
	}
}

func TestEventName(t *testing.T) {
	tests := []struct {
		ev   event.Event
		want string
	}{
		{event.Mouse{Kind: event.CursorMoved}, "mouse." + event.CursorMoved.String()},
		{event.Window{Kind: event.Resized}, "window." + event.Resized.String()},
		{event.Keyboard{Key: event.KeyEnter}, "keyboard." + string(event.KeyEnter)},
	}
	for _, tt := range tests {
		if got := eventName(tt.ev); got != tt.want {
			t.Errorf("eventName(%T) = %q, want %q", tt.ev, got, tt.want)
		}
	}
}

func TestRun_HeadlessPNG(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "counter.png")
	err := run([]string{"-config", filepath.Join(dir, "missing.yaml"), "-png", out, "-clicks", "3"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != 1024 || cfg.Height != 768 {
		t.Errorf("size = %dx%d, want 1024x768", cfg.Width, cfg.Height)
	}
}

func TestRun_BadFlag(t *testing.T) {
	if err := run([]string{"-nope"}); err == nil {
		t.Error("expected an error for an unknown flag")
	}
}
