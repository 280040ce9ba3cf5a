// Package settings holds the runtime configuration of an application.
//
// Settings are read from a YAML or TOML file; every field is optional and
// falls back to Default.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the settings schema version written by this package.
// Files declaring another major version are rejected.
const SchemaVersion = "v1.0.0"

// Settings configures an application instance.
type Settings struct {
	Version            string   `yaml:"version" toml:"version"`
	App                App      `yaml:"app" toml:"app"`
	Viewport           Viewport `yaml:"viewport" toml:"viewport"`
	DefaultTextSize    float64  `yaml:"default_text_size" toml:"default_text_size"`
	QueueCapacity      int      `yaml:"queue_capacity" toml:"queue_capacity"`
	MaxConcurrentTasks int64    `yaml:"max_concurrent_tasks" toml:"max_concurrent_tasks"`
	SubscriptionBuffer int      `yaml:"subscription_buffer" toml:"subscription_buffer"`
	RedrawInterval     Duration `yaml:"redraw_interval" toml:"redraw_interval"`
	Antialiasing       bool     `yaml:"antialiasing" toml:"antialiasing"`
}

// App contains application metadata.
type App struct {
	Name string `yaml:"name,omitempty" toml:"name,omitempty"`
}

// Viewport is the initial logical size of the surface.
type Viewport struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// Default returns the settings used when no file is given.
func Default() Settings {
	return Settings{
		Version:            SchemaVersion,
		Viewport:           Viewport{Width: 1024, Height: 768},
		DefaultTextSize:    16,
		QueueCapacity:      100,
		MaxConcurrentTasks: 8,
		SubscriptionBuffer: 64,
		RedrawInterval:     Duration{16 * time.Millisecond},
		Antialiasing:       true,
	}
}

// Load reads settings from path. The format is chosen by extension:
// .yaml and .yml are YAML, .toml is TOML. A missing file yields Default.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return Parse(data, FormatYAML)
	case ".toml":
		return Parse(data, FormatTOML)
	default:
		return Settings{}, fmt.Errorf("unsupported settings format %q", ext)
	}
}

// Format selects the settings encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// String returns a human-readable representation of the format.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// Parse decodes settings over Default and validates the result.
func Parse(data []byte, format Format) (Settings, error) {
	s := Default()
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
			return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
		}
	default:
		return Settings{}, fmt.Errorf("unsupported settings format %v", format)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate reports the first invalid field.
func (s Settings) Validate() error {
	v := canonicalVersion(s.Version)
	if !semver.IsValid(v) {
		return fmt.Errorf("settings version %q is not a semantic version", s.Version)
	}
	if semver.Major(v) != semver.Major(SchemaVersion) {
		return fmt.Errorf("settings version %s is not supported (want %s.x)", v, semver.Major(SchemaVersion))
	}
	if s.Viewport.Width < 0 || s.Viewport.Height < 0 {
		return fmt.Errorf("viewport must not be negative (got %vx%v)", s.Viewport.Width, s.Viewport.Height)
	}
	if s.DefaultTextSize <= 0 {
		return fmt.Errorf("default_text_size must be positive (got %v)", s.DefaultTextSize)
	}
	if s.QueueCapacity <= 0 {
		return fmt.Errorf("queue_capacity must be positive (got %d)", s.QueueCapacity)
	}
	if s.SubscriptionBuffer <= 0 {
		return fmt.Errorf("subscription_buffer must be positive (got %d)", s.SubscriptionBuffer)
	}
	return nil
}

func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return SchemaVersion
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// Duration is a time.Duration written as a string such as "16ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if parsed < 0 {
		return fmt.Errorf("negative duration %q not allowed", s)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
