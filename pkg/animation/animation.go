// Package animation computes time-based transitions for widget state.
//
// Widgets keep an Animation in their state tree node. The runtime delivers a
// redraw event with the frame time; the widget reads Value at that time and
// asks for the next frame with the deadline NextFrame returns. Nothing ticks
// in the background.
package animation

import (
	"fmt"
	"time"
)

// FrameInterval is the frame spacing requested while an animation runs.
const FrameInterval = 16 * time.Millisecond

// Status is the phase of an animation at a given time.
type Status int

const (
	// Idle means the animation was never started.
	Idle Status = iota
	// Running means the value is moving toward its target.
	Running
	// Completed means the value has reached its target.
	Completed
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Animation moves a value from From to To over Duration, starting at Start.
// The zero value is idle at 0.
type Animation struct {
	From     float64
	To       float64
	Start    time.Time
	Duration time.Duration
	// Curve eases the progress. Nil is Linear.
	Curve Curve
}

// Go returns an animation from the value a currently has at now to target.
// Restarting mid-flight is continuous.
func (a Animation) Go(target float64, now time.Time, duration time.Duration) Animation {
	return Animation{
		From:     a.Value(now),
		To:       target,
		Start:    now,
		Duration: duration,
		Curve:    a.Curve,
	}
}

// Progress returns the linear progress in [0, 1] at now.
func (a Animation) Progress(now time.Time) float64 {
	if a.Start.IsZero() || a.Duration <= 0 {
		return 1
	}
	return clampUnit(float64(now.Sub(a.Start)) / float64(a.Duration))
}

// Value returns the eased value at now.
func (a Animation) Value(now time.Time) float64 {
	if a.Start.IsZero() {
		return a.To
	}
	p := a.Progress(now)
	if a.Curve != nil {
		p = a.Curve(p)
	}
	return LerpFloat64(a.From, a.To, p)
}

// Status returns the phase at now.
func (a Animation) Status(now time.Time) Status {
	switch {
	case a.Start.IsZero():
		return Idle
	case a.Progress(now) < 1:
		return Running
	default:
		return Completed
	}
}

// NextFrame returns when the next frame should be drawn, if the animation
// is still running at now.
func (a Animation) NextFrame(now time.Time) (time.Time, bool) {
	if a.Status(now) != Running {
		return time.Time{}, false
	}
	return now.Add(FrameInterval), true
}
