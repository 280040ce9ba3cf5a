package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/graphics"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the laid out widgets and the primitives of a frame.
type Snapshot struct {
	Widgets    []WidgetNode `json:"widgets"`
	Primitives []DrawOp     `json:"primitives,omitempty"`
}

// WidgetNode is one laid out widget. Rect is left, top, width, height in
// window coordinates.
type WidgetNode struct {
	Path string     `json:"path"`
	Type string     `json:"type"`
	Rect [4]float64 `json:"rect"`
}

// DrawOp is one recorded primitive.
type DrawOp struct {
	Op    string         `json:"op"`
	Rect  [4]float64     `json:"rect"`
	Props map[string]any `json:"props,omitempty"`
}

// CaptureSnapshot records the current layout and the last rendered frame.
func (t *Tester[S]) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{}
	for _, e := range t.inst.UI().Entries() {
		snap.Widgets = append(snap.Widgets, WidgetNode{
			Path: e.Path.String(),
			Type: core.WidgetName(e.Widget),
			Rect: rect4(e.Bounds),
		})
	}
	snap.Primitives = serializeFrame(t.frame)
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When MVU_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("MVU_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: MVU_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: MVU_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between other and this snapshot, or the empty
// string if they are equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return lineDiff(string(b), string(a))
}

func serializeFrame(f graphics.Frame) []DrawOp {
	ops := make([]DrawOp, 0, len(f.Primitives))
	for _, p := range f.Primitives {
		op := DrawOp{Rect: rect4(p.Bounds())}
		switch p := p.(type) {
		case graphics.Quad:
			op.Op = "quad"
			op.Props = map[string]any{"background": colorHex(p.Background)}
			if p.Border.Width > 0 {
				op.Props["border"] = colorHex(p.Border.Color)
				op.Props["borderWidth"] = round2(p.Border.Width)
			}
		case graphics.Text:
			op.Op = "text"
			op.Props = map[string]any{"content": p.Content, "size": round2(p.Size), "color": colorHex(p.Color)}
		case graphics.Path:
			op.Op = "path"
			op.Props = map[string]any{"points": len(p.Points)}
		case graphics.Image:
			op.Op = "image"
		default:
			op.Op = fmt.Sprintf("%T", p)
		}
		ops = append(ops, op)
	}
	return ops
}

func rect4(r graphics.Rect) [4]float64 {
	return [4]float64{round2(r.Left), round2(r.Top), round2(r.Width()), round2(r.Height())}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func colorHex(c graphics.Color) string {
	return fmt.Sprintf("#%08X", uint32(c))
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// lineDiff produces a simple line-oriented diff.
func lineDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")
	for i := 0; i < max(len(expectedLines), len(actualLines)); i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e == a {
			continue
		}
		if i < len(expectedLines) {
			fmt.Fprintf(&buf, "-%s\n", e)
		}
		if i < len(actualLines) {
			fmt.Fprintf(&buf, "+%s\n", a)
		}
	}
	return buf.String()
}
