package widgets

import (
	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/layout"
)

// Centered wraps child in a container filling its parent with the child
// centered.
func Centered(child core.Widget) Container {
	return Container{
		Child:  child,
		Width:  layout.Fill(),
		Height: layout.Fill(),
		AlignX: layout.AlignCenter,
		AlignY: layout.AlignCenter,
	}
}

// Padded wraps child with the given padding.
func Padded(padding layout.Padding, child core.Widget) Container {
	return Container{Padding: padding, Child: child}
}

// VSpace creates a fixed-height vertical spacer.
func VSpace(height float64) Space {
	return Space{Height: layout.Fixed(height)}
}

// HSpace creates a fixed-width horizontal spacer.
func HSpace(width float64) Space {
	return Space{Width: layout.Fixed(width)}
}

// HFill creates a spacer taking the remaining width of a row.
func HFill() Space {
	return Space{Width: layout.Fill()}
}

// VFill creates a spacer taking the remaining height of a column.
func VFill() Space {
	return Space{Height: layout.Fill()}
}
