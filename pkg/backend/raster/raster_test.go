package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/go-drift/mvu/pkg/graphics"
)

func frameOf(w, h float64, prims ...graphics.Primitive) graphics.Frame {
	return graphics.Frame{
		Viewport:   graphics.Size{Width: w, Height: h},
		Background: graphics.ColorWhite,
		Primitives: prims,
	}
}

func rgba(c graphics.Color) color.RGBA {
	r, g, b, a := c.NRGBA().RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func TestRasterize_Background(t *testing.T) {
	img := Rasterize(frameOf(10, 5), 2)
	if got := img.Bounds(); got != image.Rect(0, 0, 20, 10) {
		t.Fatalf("bounds = %v", got)
	}
	if got := img.RGBAAt(19, 9); got != rgba(graphics.ColorWhite) {
		t.Errorf("pixel = %v, want white", got)
	}
}

func TestRasterize_QuadRespectsClip(t *testing.T) {
	quad := graphics.Quad{
		Rect:       graphics.RectFromLTWH(2, 2, 10, 10),
		Background: graphics.ColorRed,
		Clip:       graphics.RectFromLTWH(0, 0, 6, 20),
	}
	img := Rasterize(frameOf(20, 20, quad), 1)

	tests := []struct {
		x, y int
		want graphics.Color
	}{
		{3, 3, graphics.ColorRed},
		{5, 11, graphics.ColorRed},
		{6, 3, graphics.ColorWhite}, // clipped
		{1, 1, graphics.ColorWhite},
		{12, 12, graphics.ColorWhite},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != rgba(tt.want) {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, rgba(tt.want))
		}
	}
}

func TestRasterize_RoundedCornersAndBorder(t *testing.T) {
	quad := graphics.Quad{
		Rect:       graphics.RectFromLTWH(0, 0, 20, 20),
		Background: graphics.ColorBlue,
		Border:     graphics.Border{Color: graphics.ColorBlack, Width: 2, Radius: 6},
		Clip:       graphics.RectFromLTWH(0, 0, 20, 20),
	}
	img := Rasterize(frameOf(20, 20, quad), 1)

	if got := img.RGBAAt(0, 0); got != rgba(graphics.ColorWhite) {
		t.Errorf("corner pixel = %v, want background", got)
	}
	if got := img.RGBAAt(10, 0); got != rgba(graphics.ColorBlack) {
		t.Errorf("edge pixel = %v, want border", got)
	}
	if got := img.RGBAAt(10, 10); got != rgba(graphics.ColorBlue) {
		t.Errorf("center pixel = %v, want fill", got)
	}
}

func TestRasterize_TextDrawsInk(t *testing.T) {
	txt := graphics.Text{
		Content: "Hi",
		Origin:  graphics.Offset{X: 2, Y: 2},
		Extent:  graphics.Size{Width: 14, Height: 13},
		Size:    13,
		Color:   graphics.ColorBlack,
		Clip:    graphics.RectFromLTWH(0, 0, 30, 20),
	}
	img := Rasterize(frameOf(30, 20, txt), 1)

	inked := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 30; x++ {
			if c := img.RGBAAt(x, y); c.R < 128 {
				inked++
				if x < 2 || y < 2 || x >= 16 || y >= 15 {
					t.Errorf("ink outside the text box at (%d,%d)", x, y)
				}
			}
		}
	}
	if inked == 0 {
		t.Error("no text drawn")
	}
}

func TestRasterize_PathStroke(t *testing.T) {
	path := graphics.Path{
		Points:      []graphics.Offset{{X: 0, Y: 10}, {X: 20, Y: 10}},
		Stroke:      graphics.ColorBlack,
		StrokeWidth: 4,
		Clip:        graphics.RectFromLTWH(0, 0, 20, 20),
	}
	img := Rasterize(frameOf(20, 20, path), 1)

	if got := img.RGBAAt(10, 10); got != rgba(graphics.ColorBlack) {
		t.Errorf("pixel on the line = %v", got)
	}
	if got := img.RGBAAt(10, 2); got != rgba(graphics.ColorWhite) {
		t.Errorf("pixel off the line = %v", got)
	}
}

func TestRenderer_WritePNG(t *testing.T) {
	var r Renderer
	var buf bytes.Buffer
	if err := r.WritePNG(&buf); err != ErrNoFrame {
		t.Fatalf("WritePNG before render = %v, want ErrNoFrame", err)
	}

	if err := r.Render(frameOf(8, 4)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := r.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 8, 4) {
		t.Errorf("bounds = %v", got)
	}
}
