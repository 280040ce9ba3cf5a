package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/mvu/pkg/graphics"
)

// box is a leaf child with a fixed intrinsic size.
type box struct {
	sizing    Sizing
	intrinsic graphics.Size
}

func (b box) Sizing() Sizing { return b.sizing }

func (b box) Measure(limits Limits) graphics.Size {
	return limits.Constrain(b.intrinsic)
}

func (b box) Arrange(size graphics.Size) Node { return NewNode(size) }

func widths(n Node) []float64 {
	out := make([]float64, len(n.Children))
	for i, c := range n.Children {
		out[i] = c.Size.Width
	}
	return out
}

func TestFlexFixedAndFill(t *testing.T) {
	row := Flex{Axis: AxisHorizontal}
	children := []Child{
		box{sizing: Sizing{Width: Fixed(100)}},
		box{sizing: Sizing{Width: Fill()}},
	}

	tests := []struct {
		name  string
		width float64
		want  []float64
	}{
		{"enough space", 300, []float64{100, 200}},
		{"insufficient space", 50, []float64{50, 0}},
		{"zero space", 0, []float64{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := row.Arrange(graphics.Size{Width: tt.width, Height: 10}, children)
			if diff := cmp.Diff(tt.want, widths(node)); diff != "" {
				t.Errorf("widths mismatch (-want +got):\n%s", diff)
			}
			if node.Children[1].Position.X != node.Children[0].Size.Width {
				t.Errorf("fill child at x=%v, want %v", node.Children[1].Position.X, node.Children[0].Size.Width)
			}
		})
	}
}

func TestFlexFillPortion(t *testing.T) {
	row := Flex{Axis: AxisHorizontal, Spacing: 10}
	children := []Child{
		box{sizing: Sizing{Width: FillPortion(1)}},
		box{sizing: Sizing{Width: FillPortion(2)}},
		box{sizing: Sizing{Width: Shrink()}, intrinsic: graphics.Size{Width: 20}},
	}
	node := row.Arrange(graphics.Size{Width: 100, Height: 10}, children)
	if diff := cmp.Diff([]float64{20, 40, 20}, widths(node)); diff != "" {
		t.Errorf("widths mismatch (-want +got):\n%s", diff)
	}
	if got := node.Children[2].Position.X; got != 80 {
		t.Errorf("shrink child at x=%v, want 80", got)
	}
}

func TestFlexPaddingAndAlignment(t *testing.T) {
	col := Flex{
		Axis:    AxisVertical,
		Padding: PaddingAll(5),
		Align:   AlignCenter,
		Justify: AlignEnd,
	}
	children := []Child{box{intrinsic: graphics.Size{Width: 10, Height: 10}}}
	node := col.Arrange(graphics.Size{Width: 50, Height: 50}, children)

	want := graphics.Offset{X: 20, Y: 35}
	if diff := cmp.Diff(want, node.Children[0].Position); diff != "" {
		t.Errorf("position mismatch (-want +got):\n%s", diff)
	}
}

func TestFlexMeasure(t *testing.T) {
	col := Flex{Axis: AxisVertical, Spacing: 4, Padding: PaddingAll(2)}
	children := []Child{
		box{intrinsic: graphics.Size{Width: 30, Height: 10}},
		box{intrinsic: graphics.Size{Width: 20, Height: 10}},
	}
	got := col.Measure(Loose(graphics.Size{Width: 100, Height: 100}), children)
	want := graphics.Size{Width: 34, Height: 28}
	if got != want {
		t.Errorf("Measure() = %v, want %v", got, want)
	}
}

func TestFlexDeterministic(t *testing.T) {
	row := Flex{Axis: AxisHorizontal, Spacing: 3, Padding: PaddingAll(1)}
	children := []Child{
		box{sizing: Sizing{Width: FillPortion(3)}},
		box{sizing: Sizing{Width: Fixed(17)}},
		box{sizing: Sizing{Width: FillPortion(7)}},
	}
	size := graphics.Size{Width: 123.4, Height: 9}
	first := row.Arrange(size, children)
	for iter := 0; iter < 10; iter++ {
		if diff := cmp.Diff(first, row.Arrange(size, children)); diff != "" {
			t.Fatalf("layout not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestSingleCentersChild(t *testing.T) {
	s := Single{Padding: PaddingAll(20), Horizontal: AlignCenter, Vertical: AlignCenter}
	child := box{intrinsic: graphics.Size{Width: 10, Height: 10}}

	if got := s.Measure(Loose(graphics.Size{Width: 500, Height: 500}), child); got != (graphics.Size{Width: 50, Height: 50}) {
		t.Errorf("Measure() = %v", got)
	}
	node := s.Arrange(graphics.Size{Width: 100, Height: 60}, child)
	if got := node.Children[0].Position; got != (graphics.Offset{X: 45, Y: 25}) {
		t.Errorf("child position = %v", got)
	}
}

func TestLimitsResolve(t *testing.T) {
	limits := Limits{Max: graphics.Size{Width: 50, Height: 50}}
	tests := []struct {
		name   string
		sizing Sizing
		want   graphics.Size
	}{
		{"fixed clamps", Sizing{Width: Fixed(100), Height: Fixed(10)}, graphics.Size{Width: 50, Height: 10}},
		{"fill takes max", Sizing{Width: Fill(), Height: Fill()}, graphics.Size{Width: 50, Height: 50}},
		{"shrink keeps intrinsic", Sizing{}, graphics.Size{Width: 5, Height: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := limits.Resolve(tt.sizing, graphics.Size{Width: 5, Height: 6})
			if got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLengthString(t *testing.T) {
	tests := []struct {
		l    Length
		want string
	}{
		{Fixed(3), "fixed(3)"},
		{Fill(), "fill"},
		{FillPortion(2), "fill_portion(2)"},
		{FillPortion(0), "shrink"},
		{Shrink(), "shrink"},
	}
	for _, tt := range tests {
		if got := tt.l.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
