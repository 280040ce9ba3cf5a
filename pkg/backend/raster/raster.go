// Package raster renders frames into images in software.
//
// It is a reference renderer: quads, text, images and paths are drawn with
// golang.org/x/image and the built-in 7x13 bitmap face. Text is scaled from
// the face's native size, so it matches text.BasicMeasurer.
package raster

import (
	stderrors "errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/go-drift/mvu/pkg/errors"
	"github.com/go-drift/mvu/pkg/graphics"
)

// basicHeight is the nominal pixel height of basicfont.Face7x13.
const basicHeight = 13

// Rasterize draws f into a new image. Scale is the number of pixels per
// logical unit; values <= 0 mean 1.
func Rasterize(f graphics.Frame, scale float64) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(f.Viewport.Width * scale))
	h := int(math.Ceil(f.Viewport.Height * scale))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(f.Background.NRGBA()), image.Point{}, draw.Src)

	p := painter{dst: dst, scale: scale}
	for _, prim := range f.Primitives {
		p.draw(prim)
	}
	return dst
}

type painter struct {
	dst   *image.RGBA
	scale float64
}

func (p painter) rect(r graphics.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Left*p.scale)),
		int(math.Floor(r.Top*p.scale)),
		int(math.Ceil(r.Right*p.scale)),
		int(math.Ceil(r.Bottom*p.scale)),
	)
}

// target returns the part of the destination a primitive may touch.
func (p painter) target(clip graphics.Rect) (*image.RGBA, bool) {
	r := p.rect(clip).Intersect(p.dst.Bounds())
	if r.Empty() {
		return nil, false
	}
	return p.dst.SubImage(r).(*image.RGBA), true
}

func (p painter) draw(prim graphics.Primitive) {
	dst, ok := p.target(prim.ClipRect())
	if !ok {
		return
	}
	switch prim := prim.(type) {
	case graphics.Quad:
		p.quad(dst, prim)
	case graphics.Text:
		p.text(dst, prim)
	case graphics.Image:
		xdraw.CatmullRom.Scale(dst, p.rect(prim.Rect), prim.Source, prim.Source.Bounds(), xdraw.Over, nil)
	case graphics.Path:
		p.path(dst, prim)
	}
}

func (p painter) quad(dst *image.RGBA, q graphics.Quad) {
	outer := scaled(q.Rect, p.scale)
	radius := q.Border.Radius * p.scale
	bounds := p.rect(q.Rect).Intersect(dst.Bounds())
	if q.Background.Alpha() > 0 {
		draw.DrawMask(dst, bounds, image.NewUniform(q.Background.NRGBA()), image.Point{},
			roundedMask{rect: outer, radius: radius}, bounds.Min, draw.Over)
	}
	if q.Border.Width > 0 && q.Border.Color.Alpha() > 0 {
		bw := q.Border.Width * p.scale
		inner := graphics.Rect{Left: outer.Left + bw, Top: outer.Top + bw, Right: outer.Right - bw, Bottom: outer.Bottom - bw}
		draw.DrawMask(dst, bounds, image.NewUniform(q.Border.Color.NRGBA()), image.Point{},
			ringMask{outer: roundedMask{rect: outer, radius: radius}, inner: roundedMask{rect: inner, radius: max(radius-bw, 0)}},
			bounds.Min, draw.Over)
	}
}

func (p painter) text(dst *image.RGBA, t graphics.Text) {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	size := t.Size
	if size <= 0 {
		size = basicHeight
	}

	var lines []string
	start := 0
	for i := 0; i <= len(t.Content); i++ {
		if i == len(t.Content) || t.Content[i] == '\n' {
			lines = append(lines, t.Content[start:i])
			start = i + 1
		}
	}
	width := 0
	for _, line := range lines {
		width = max(width, font.MeasureString(face, line).Ceil())
	}
	if width == 0 {
		return
	}

	// Draw at the face's native size, then scale into place.
	native := image.NewRGBA(image.Rect(0, 0, width, lineHeight*len(lines)))
	d := font.Drawer{Dst: native, Src: image.NewUniform(t.Color.NRGBA()), Face: face}
	for i, line := range lines {
		d.Dot = fixed.Point26_6{X: 0, Y: fixed.I(i*lineHeight) + metrics.Ascent}
		d.DrawString(line)
	}

	factor := size / basicHeight * p.scale
	target := image.Rect(
		int(math.Round(t.Origin.X*p.scale)),
		int(math.Round(t.Origin.Y*p.scale)),
		int(math.Round(t.Origin.X*p.scale+float64(width)*factor)),
		int(math.Round(t.Origin.Y*p.scale+float64(native.Bounds().Dy())*factor)),
	)
	xdraw.ApproxBiLinear.Scale(dst, target, native, native.Bounds(), xdraw.Over, nil)
}

func (p painter) path(dst *image.RGBA, path graphics.Path) {
	if len(path.Points) == 0 {
		return
	}
	b := dst.Bounds()
	origin := b.Min
	at := func(o graphics.Offset) (float32, float32) {
		return float32(o.X*p.scale) - float32(origin.X), float32(o.Y*p.scale) - float32(origin.Y)
	}

	if path.Closed && path.Fill.Alpha() > 0 && len(path.Points) > 2 {
		z := vector.NewRasterizer(b.Dx(), b.Dy())
		z.MoveTo(at(path.Points[0]))
		for _, pt := range path.Points[1:] {
			z.LineTo(at(pt))
		}
		z.ClosePath()
		z.Draw(dst, b, image.NewUniform(path.Fill.NRGBA()), image.Point{})
	}

	if path.StrokeWidth <= 0 || path.Stroke.Alpha() == 0 || len(path.Points) < 2 {
		return
	}
	points := path.Points
	if path.Closed {
		points = append(points[:len(points):len(points)], points[0])
	}
	half := path.StrokeWidth * p.scale / 2
	src := image.NewUniform(path.Stroke.NRGBA())
	for i := 1; i < len(points); i++ {
		z := vector.NewRasterizer(b.Dx(), b.Dy())
		if !segment(z, points[i-1], points[i], half, p.scale, origin) {
			continue
		}
		z.Draw(dst, b, src, image.Point{})
	}
}

// segment adds a stroked line from a to b as a quadrilateral.
func segment(z *vector.Rasterizer, a, b graphics.Offset, half, scale float64, origin image.Point) bool {
	ax, ay := a.X*scale-float64(origin.X), a.Y*scale-float64(origin.Y)
	bx, by := b.X*scale-float64(origin.X), b.Y*scale-float64(origin.Y)
	dx, dy := bx-ax, by-ay
	length := math.Hypot(dx, dy)
	if length == 0 {
		return false
	}
	// Extend by half the width so joints overlap.
	ux, uy := dx/length*half, dy/length*half
	nx, ny := -uy, ux
	ax, ay, bx, by = ax-ux, ay-uy, bx+ux, by+uy
	z.MoveTo(float32(ax+nx), float32(ay+ny))
	z.LineTo(float32(bx+nx), float32(by+ny))
	z.LineTo(float32(bx-nx), float32(by-ny))
	z.LineTo(float32(ax-nx), float32(ay-ny))
	z.ClosePath()
	return true
}

func scaled(r graphics.Rect, s float64) graphics.Rect {
	return graphics.Rect{Left: r.Left * s, Top: r.Top * s, Right: r.Right * s, Bottom: r.Bottom * s}
}

// roundedMask covers the pixels whose center lies in a rounded rectangle.
type roundedMask struct {
	rect   graphics.Rect
	radius float64
}

func (m roundedMask) ColorModel() color.Model { return color.AlphaModel }

func (m roundedMask) Bounds() image.Rectangle {
	return image.Rect(int(math.Floor(m.rect.Left)), int(math.Floor(m.rect.Top)),
		int(math.Ceil(m.rect.Right)), int(math.Ceil(m.rect.Bottom)))
}

func (m roundedMask) At(x, y int) color.Color {
	if m.contains(float64(x)+0.5, float64(y)+0.5) {
		return color.Opaque
	}
	return color.Transparent
}

func (m roundedMask) contains(px, py float64) bool {
	r := m.rect
	if px < r.Left || px >= r.Right || py < r.Top || py >= r.Bottom {
		return false
	}
	radius := min(m.radius, r.Width()/2, r.Height()/2)
	if radius <= 0 {
		return true
	}
	cx := min(max(px, r.Left+radius), r.Right-radius)
	cy := min(max(py, r.Top+radius), r.Bottom-radius)
	return math.Hypot(px-cx, py-cy) <= radius
}

// ringMask covers outer minus inner.
type ringMask struct {
	outer, inner roundedMask
}

func (m ringMask) ColorModel() color.Model { return color.AlphaModel }
func (m ringMask) Bounds() image.Rectangle { return m.outer.Bounds() }

func (m ringMask) At(x, y int) color.Color {
	px, py := float64(x)+0.5, float64(y)+0.5
	if m.outer.contains(px, py) && !m.inner.contains(px, py) {
		return color.Opaque
	}
	return color.Transparent
}

// Renderer keeps the most recent rendered image. It implements the
// application renderer interface, so a headless run can render into it.
type Renderer struct {
	// Scale is the number of pixels per logical unit.
	Scale float64

	mu   sync.Mutex
	last *image.RGBA
}

// ErrNoFrame is returned by WritePNG before anything was rendered.
var ErrNoFrame = stderrors.New("raster: no frame rendered")

// Render rasterizes f and keeps the result. A primitive that makes the
// rasterizer panic fails the frame instead of the application.
func (r *Renderer) Render(f graphics.Frame) error {
	return errors.Guard("raster.Renderer.Render", func() error {
		img := Rasterize(f, r.Scale)
		r.mu.Lock()
		r.last = img
		r.mu.Unlock()
		return nil
	})
}

// Image returns the last rendered image, or nil before the first frame.
func (r *Renderer) Image() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// WritePNG encodes the last rendered image.
func (r *Renderer) WritePNG(w io.Writer) error {
	img := r.Image()
	if img == nil {
		return ErrNoFrame
	}
	return png.Encode(w, img)
}
