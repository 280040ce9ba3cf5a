package animation

import "github.com/go-drift/mvu/pkg/graphics"

// LerpFloat64 linearly interpolates between a and b.
func LerpFloat64(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpOffset linearly interpolates between two offsets.
func LerpOffset(a, b graphics.Offset, t float64) graphics.Offset {
	return graphics.Offset{X: LerpFloat64(a.X, b.X, t), Y: LerpFloat64(a.Y, b.Y, t)}
}

// LerpColor linearly interpolates each channel of two colors.
func LerpColor(a, b graphics.Color, t float64) graphics.Color {
	channel := func(shift uint) uint32 {
		ca := float64((a >> shift) & 0xFF)
		cb := float64((b >> shift) & 0xFF)
		return uint32(uint8(LerpFloat64(ca, cb, t)+0.5)) << shift
	}
	return graphics.Color(channel(24) | channel(16) | channel(8) | channel(0))
}
