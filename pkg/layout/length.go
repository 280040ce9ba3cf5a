package layout

import "fmt"

type lengthKind uint8

const (
	lengthShrink lengthKind = iota
	lengthFill
	lengthFixed
)

// Length is a sizing policy along one axis.
// The zero value is [Shrink].
type Length struct {
	kind  lengthKind
	value float64
}

// Fixed requests exactly n logical pixels, clamped to the available space.
func Fixed(n float64) Length {
	if n < 0 {
		n = 0
	}
	return Length{kind: lengthFixed, value: n}
}

// Fill requests all remaining space, shared equally with other Fill siblings.
func Fill() Length {
	return Length{kind: lengthFill, value: 1}
}

// FillPortion requests a weighted share of the remaining space.
// A weight of zero behaves like [Shrink].
func FillPortion(weight uint16) Length {
	if weight == 0 {
		return Shrink()
	}
	return Length{kind: lengthFill, value: float64(weight)}
}

// Shrink requests the content's intrinsic size.
func Shrink() Length {
	return Length{}
}

// IsFill reports whether the length takes a share of remaining space.
func (l Length) IsFill() bool {
	return l.kind == lengthFill
}

// FillFactor returns the fill weight, or zero for non-fill lengths.
func (l Length) FillFactor() float64 {
	if l.kind != lengthFill {
		return 0
	}
	return l.value
}

// FixedValue returns the fixed size and true for [Fixed] lengths.
func (l Length) FixedValue() (float64, bool) {
	return l.value, l.kind == lengthFixed
}

// String returns a human-readable representation of the length.
func (l Length) String() string {
	switch l.kind {
	case lengthFixed:
		return fmt.Sprintf("fixed(%g)", l.value)
	case lengthFill:
		if l.value == 1 {
			return "fill"
		}
		return fmt.Sprintf("fill_portion(%g)", l.value)
	default:
		return "shrink"
	}
}

// Sizing pairs the width and height policies of a widget.
type Sizing struct {
	Width  Length
	Height Length
}
