package animation

import "math"

// Curve maps linear progress in [0, 1] to eased progress.
type Curve func(t float64) float64

// Linear applies no easing.
func Linear(t float64) float64 {
	return t
}

// Standard curves, equivalent to their CSS namesakes.
var (
	Ease      Curve = CubicBezier(0.25, 0.1, 0.25, 1.0)
	EaseIn    Curve = CubicBezier(0.4, 0.0, 1.0, 1.0)
	EaseOut   Curve = CubicBezier(0.0, 0.0, 0.2, 1.0)
	EaseInOut Curve = CubicBezier(0.4, 0.0, 0.2, 1.0)
)

// CubicBezier returns the curve through (0,0), (x1,y1), (x2,y2) and (1,1),
// like CSS cubic-bezier().
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return bezier(y1, y2, solveX(x1, x2, t))
	}
}

// solveX finds the curve parameter whose x coordinate is t. Newton steps
// usually converge; bisection covers flat derivatives.
func solveX(x1, x2, t float64) float64 {
	u := t
	for iter := 0; iter < 8; iter++ {
		x := bezier(x1, x2, u) - t
		if math.Abs(x) < 1e-7 {
			return clampUnit(u)
		}
		dx := bezierSlope(x1, x2, u)
		if math.Abs(dx) < 1e-7 {
			break
		}
		u -= x / dx
	}

	lo, hi := 0.0, 1.0
	u = clampUnit(u)
	for iter := 0; iter < 12; iter++ {
		x := bezier(x1, x2, u) - t
		if math.Abs(x) < 1e-7 {
			break
		}
		if x > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) / 2
	}
	return u
}

func bezier(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func bezierSlope(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
