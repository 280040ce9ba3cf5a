package layout

import "fmt"

// Axis represents the layout direction.
// AxisVertical is the zero value.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// String returns a human-readable representation of the axis.
func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Alignment positions content inside a larger extent.
type Alignment int

const (
	// AlignStart places content at the start (left or top).
	AlignStart Alignment = iota
	// AlignCenter centers content.
	AlignCenter
	// AlignEnd places content at the end (right or bottom).
	AlignEnd
)

// String returns a human-readable representation of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
}

// Offset returns where content of extent used starts inside available.
// Overflowing content is start-aligned.
func (a Alignment) Offset(available, used float64) float64 {
	free := available - used
	if free <= 0 {
		return 0
	}
	switch a {
	case AlignCenter:
		return free / 2
	case AlignEnd:
		return free
	default:
		return 0
	}
}
