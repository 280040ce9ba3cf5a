package layout

import (
	"math"

	"github.com/go-drift/mvu/pkg/graphics"
)

// Limits bound the size a widget may take.
type Limits struct {
	Min graphics.Size
	Max graphics.Size
}

// Loose returns limits from zero up to max.
func Loose(max graphics.Size) Limits {
	return Limits{Max: max}
}

// Tight returns limits that admit exactly size.
func Tight(size graphics.Size) Limits {
	return Limits{Min: size, Max: size}
}

// Unbounded returns limits with no upper bound.
func Unbounded() Limits {
	return Limits{Max: graphics.Size{Width: math.Inf(1), Height: math.Inf(1)}}
}

// Shrink removes padding from the limits, never going below zero.
func (l Limits) Shrink(p Padding) Limits {
	return Limits{
		Min: graphics.Size{
			Width:  nonNegative(l.Min.Width - p.Horizontal()),
			Height: nonNegative(l.Min.Height - p.Vertical()),
		},
		Max: graphics.Size{
			Width:  nonNegative(l.Max.Width - p.Horizontal()),
			Height: nonNegative(l.Max.Height - p.Vertical()),
		},
	}
}

// Constrain clamps size into the limits.
func (l Limits) Constrain(size graphics.Size) graphics.Size {
	return graphics.Size{
		Width:  clamp(size.Width, l.Min.Width, l.Max.Width),
		Height: clamp(size.Height, l.Min.Height, l.Max.Height),
	}
}

// Resolve applies a sizing policy to an intrinsic size.
//
// Fixed lengths are clamped into the limits, Fill takes the maximum (or the
// intrinsic size when the maximum is unbounded) and Shrink keeps the
// intrinsic size.
func (l Limits) Resolve(sizing Sizing, intrinsic graphics.Size) graphics.Size {
	return graphics.Size{
		Width:  resolveAxis(sizing.Width, l.Min.Width, l.Max.Width, intrinsic.Width),
		Height: resolveAxis(sizing.Height, l.Min.Height, l.Max.Height, intrinsic.Height),
	}
}

func resolveAxis(length Length, min, max, intrinsic float64) float64 {
	switch length.kind {
	case lengthFixed:
		return clamp(length.value, min, max)
	case lengthFill:
		if math.IsInf(max, 1) {
			return clamp(intrinsic, min, max)
		}
		return nonNegative(max)
	default:
		return clamp(intrinsic, min, max)
	}
}

func clamp(v, min, max float64) float64 {
	if v > max {
		v = max
	}
	if v < min {
		v = min
	}
	return nonNegative(v)
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
