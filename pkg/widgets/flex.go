package widgets

import (
	"github.com/go-drift/mvu/pkg/core"
	"github.com/go-drift/mvu/pkg/graphics"
	"github.com/go-drift/mvu/pkg/layout"
)

// Column lays its children out vertically.
//
// Children are sized in order: fixed and shrinking children first, then the
// remaining height is split between filling children by weight.
type Column struct {
	core.IgnoreEvents

	ChildrenWidgets []core.Widget
	Spacing         float64
	Padding         layout.Padding
	// Align positions children horizontally.
	Align layout.Alignment
	// Justify positions the run vertically when it does not fill the column.
	Justify layout.Alignment
	Width   layout.Length
	Height  layout.Length
}

// ColumnOf creates a column with the given children.
func ColumnOf(children ...core.Widget) Column {
	return Column{ChildrenWidgets: children}
}

// WithSpacing returns a copy of the column with the given spacing.
func (c Column) WithSpacing(spacing float64) Column {
	c.Spacing = spacing
	return c
}

// WithPadding returns a copy of the column with the given padding.
func (c Column) WithPadding(padding layout.Padding) Column {
	c.Padding = padding
	return c
}

// WithAlign returns a copy of the column with the given cross-axis alignment.
func (c Column) WithAlign(align layout.Alignment) Column {
	c.Align = align
	return c
}

// WithSize returns a copy of the column with the given sizing policies.
func (c Column) WithSize(width, height layout.Length) Column {
	c.Width, c.Height = width, height
	return c
}

func (c Column) flex() layout.Flex {
	return layout.Flex{Axis: layout.AxisVertical, Spacing: c.Spacing, Padding: c.Padding, Align: c.Align, Justify: c.Justify}
}

func (c Column) Children() []core.Widget { return c.ChildrenWidgets }

func (c Column) Sizing() layout.Sizing {
	return layout.Sizing{Width: c.Width, Height: c.Height}
}

func (c Column) Measure(tree *core.Tree, limits layout.Limits) graphics.Size {
	return c.flex().Measure(limits, core.LayoutChildren(c, tree))
}

func (c Column) Arrange(tree *core.Tree, size graphics.Size) layout.Node {
	return c.flex().Arrange(size, core.LayoutChildren(c, tree))
}

func (c Column) Draw(tree *core.Tree, r *graphics.Recorder, node layout.Node) {
	core.DrawChildren(c, tree, r, node)
}

// Row lays its children out horizontally.
type Row struct {
	core.IgnoreEvents

	ChildrenWidgets []core.Widget
	Spacing         float64
	Padding         layout.Padding
	// Align positions children vertically.
	Align layout.Alignment
	// Justify positions the run horizontally when it does not fill the row.
	Justify layout.Alignment
	Width   layout.Length
	Height  layout.Length
}

// RowOf creates a row with the given children.
func RowOf(children ...core.Widget) Row {
	return Row{ChildrenWidgets: children}
}

// WithSpacing returns a copy of the row with the given spacing.
func (r Row) WithSpacing(spacing float64) Row {
	r.Spacing = spacing
	return r
}

// WithPadding returns a copy of the row with the given padding.
func (r Row) WithPadding(padding layout.Padding) Row {
	r.Padding = padding
	return r
}

// WithAlign returns a copy of the row with the given cross-axis alignment.
func (r Row) WithAlign(align layout.Alignment) Row {
	r.Align = align
	return r
}

// WithSize returns a copy of the row with the given sizing policies.
func (r Row) WithSize(width, height layout.Length) Row {
	r.Width, r.Height = width, height
	return r
}

func (r Row) flex() layout.Flex {
	return layout.Flex{Axis: layout.AxisHorizontal, Spacing: r.Spacing, Padding: r.Padding, Align: r.Align, Justify: r.Justify}
}

func (r Row) Children() []core.Widget { return r.ChildrenWidgets }

func (r Row) Sizing() layout.Sizing {
	return layout.Sizing{Width: r.Width, Height: r.Height}
}

func (r Row) Measure(tree *core.Tree, limits layout.Limits) graphics.Size {
	return r.flex().Measure(limits, core.LayoutChildren(r, tree))
}

func (r Row) Arrange(tree *core.Tree, size graphics.Size) layout.Node {
	return r.flex().Arrange(size, core.LayoutChildren(r, tree))
}

func (r Row) Draw(tree *core.Tree, rec *graphics.Recorder, node layout.Node) {
	core.DrawChildren(r, tree, rec, node)
}
