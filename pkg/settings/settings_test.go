package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseYAML(t *testing.T) {
	data := []byte(`
version: 1.2.0
viewport:
  width: 320
  height: 240
queue_capacity: 10
redraw_interval: 33ms
antialiasing: false
`)
	got, err := Parse(data, FormatYAML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := Default()
	want.Version = "1.2.0"
	want.Viewport = Viewport{Width: 320, Height: 240}
	want.QueueCapacity = 10
	want.RedrawInterval = Duration{33 * time.Millisecond}
	want.Antialiasing = false
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
version = "v1.0.0"
max_concurrent_tasks = 2
default_text_size = 20.0

[app]
name = "counter"
`)
	got, err := Parse(data, FormatTOML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := Default()
	want.MaxConcurrentTasks = 2
	want.DefaultTextSize = 20
	want.App.Name = "counter"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Settings)
		wantErr string
	}{
		{"default", func(*Settings) {}, ""},
		{"empty version", func(s *Settings) { s.Version = "" }, ""},
		{"future major", func(s *Settings) { s.Version = "v2.0.0" }, "not supported"},
		{"garbage version", func(s *Settings) { s.Version = "latest" }, "not a semantic version"},
		{"negative viewport", func(s *Settings) { s.Viewport.Width = -1 }, "viewport"},
		{"zero text size", func(s *Settings) { s.DefaultTextSize = 0 }, "default_text_size"},
		{"zero queue", func(s *Settings) { s.QueueCapacity = 0 }, "queue_capacity"},
		{"zero buffer", func(s *Settings) { s.SubscriptionBuffer = 0 }, "subscription_buffer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.modify(&s)
			err := s.Validate()
			switch {
			case tt.wantErr == "" && err != nil:
				t.Errorf("Validate() error = %v", err)
			case tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)):
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseRejectsBadDuration(t *testing.T) {
	if _, err := Parse([]byte(`redraw_interval = "-1s"`), FormatTOML); err == nil {
		t.Error("expected an error for a negative duration")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	got, err := Load(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("Load(missing) error = %v", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("missing file should yield defaults (-want +got):\n%s", diff)
	}

	path := filepath.Join(dir, "app.yml")
	if err := os.WriteFile(path, []byte("queue_capacity: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = Load(path)
	if err != nil || got.QueueCapacity != 5 {
		t.Errorf("Load(yml) = %v, %v", got.QueueCapacity, err)
	}

	bad := filepath.Join(dir, "app.json")
	if err := os.WriteFile(bad, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected an error for an unsupported extension")
	}
}

func TestResolveAppName(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/tools/counter/v2\n\ngo 1.24\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := Default()
	if err := s.ResolveAppName(dir); err != nil {
		t.Fatalf("ResolveAppName() error = %v", err)
	}
	if s.App.Name != "counter" {
		t.Errorf("App.Name = %q, want counter", s.App.Name)
	}

	s.App.Name = "explicit"
	if err := s.ResolveAppName(dir); err != nil || s.App.Name != "explicit" {
		t.Errorf("explicit name overwritten: %q, %v", s.App.Name, err)
	}

	empty := t.TempDir()
	s = Default()
	if err := s.ResolveAppName(empty); err != nil || s.App.Name != filepath.Base(empty) {
		t.Errorf("App.Name = %q, %v; want directory name", s.App.Name, err)
	}
}
