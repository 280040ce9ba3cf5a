// Package text measures strings for layout.
//
// Shaping and rasterization belong to the renderer; widgets only need to know
// how much room a string takes. The package ships a measurer for the
// built-in bitmap font used by the raster backend and one for terminal cells.
package text

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/go-drift/mvu/pkg/graphics"
)

// DefaultSize is the text size used when a widget does not set one.
const DefaultSize = 16

// Measurer reports the extent of a string drawn at the given size.
// Content may span several lines separated by '\n'.
type Measurer interface {
	Measure(content string, size float64) graphics.Size
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(content string, size float64) graphics.Size

// Measure calls f.
func (f MeasurerFunc) Measure(content string, size float64) graphics.Size {
	return f(content, size)
}

// BasicMeasurer measures with the fixed 7x13 bitmap face, scaled linearly to
// the requested size.
type BasicMeasurer struct{}

// basicHeight is the nominal pixel height of basicfont.Face7x13.
const basicHeight = 13

// Measure implements Measurer.
func (BasicMeasurer) Measure(content string, size float64) graphics.Size {
	if size <= 0 {
		size = DefaultSize
	}
	scale := size / basicHeight
	var width float64
	lines := strings.Split(content, "\n")
	for _, line := range lines {
		adv := font.MeasureString(basicfont.Face7x13, line)
		width = max(width, float64(adv.Round())*scale)
	}
	return graphics.Size{Width: width, Height: float64(len(lines)) * size}
}

// CellMeasurer measures in terminal cells: every line is one cell tall and
// as wide as its display width. Size is ignored.
type CellMeasurer struct{}

// Measure implements Measurer.
func (CellMeasurer) Measure(content string, _ float64) graphics.Size {
	var width int
	lines := strings.Split(content, "\n")
	for _, line := range lines {
		width = max(width, runewidth.StringWidth(line))
	}
	return graphics.Size{Width: float64(width), Height: float64(len(lines))}
}

var (
	defaultMu       sync.RWMutex
	defaultMeasurer Measurer = NewCache(BasicMeasurer{}, DefaultCacheSize)
)

// Default returns the measurer used by the built-in widgets.
func Default() Measurer {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultMeasurer
}

// SetDefault replaces the measurer used by the built-in widgets. Backends
// call it before the first frame. Passing nil restores the basic measurer.
func SetDefault(m Measurer) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if m == nil {
		m = NewCache(BasicMeasurer{}, DefaultCacheSize)
	}
	defaultMeasurer = m
}
