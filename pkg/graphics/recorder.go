package graphics

// Recorder records primitives for a frame.
//
// Widgets draw in local coordinates; the recorder keeps a save stack of
// translation and clip, so parents position children with
// Save/Translate/Restore the same way a canvas would.
type Recorder struct {
	viewport   Size
	background Color
	prims      []Primitive
	state      recorderState
	stack      []recorderState
}

type recorderState struct {
	offset Offset
	clip   Rect
}

// NewRecorder starts recording a frame of the given viewport size.
func NewRecorder(viewport Size) *Recorder {
	return &Recorder{
		viewport: viewport,
		state:    recorderState{clip: viewport.Rect()},
	}
}

// Save pushes the current translation and clip.
func (r *Recorder) Save() {
	r.stack = append(r.stack, r.state)
}

// Restore pops the translation and clip pushed by the matching Save.
// Unbalanced calls are ignored.
func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.state = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

// Depth returns the number of unmatched Save calls.
func (r *Recorder) Depth() int {
	return len(r.stack)
}

// RestoreTo pops saved states until Depth equals depth.
func (r *Recorder) RestoreTo(depth int) {
	for len(r.stack) > depth {
		r.Restore()
	}
}

// Translate moves the local origin by (dx, dy).
func (r *Recorder) Translate(dx, dy float64) {
	r.state.offset.X += dx
	r.state.offset.Y += dy
}

// ClipRect intersects the current clip with rect, given in local coordinates.
func (r *Recorder) ClipRect(rect Rect) {
	r.state.clip = r.state.clip.Intersect(r.absolute(rect))
}

// Visible reports whether any part of a local rect survives the current clip.
func (r *Recorder) Visible(rect Rect) bool {
	return !r.absolute(rect).Intersect(r.state.clip).IsEmpty()
}

// LocalClip returns the current clip in local coordinates.
func (r *Recorder) LocalClip() Rect {
	return r.state.clip.Translate(-r.state.offset.X, -r.state.offset.Y)
}

// Clear sets the frame background.
func (r *Recorder) Clear(color Color) {
	r.background = color
}

// DrawQuad records a rectangle given in local coordinates.
func (r *Recorder) DrawQuad(rect Rect, background Color, border Border) {
	abs := r.absolute(rect)
	if !r.keep(abs) {
		return
	}
	r.prims = append(r.prims, Quad{Rect: abs, Background: background, Border: border, Clip: r.state.clip})
}

// DrawText records a text run whose top-left corner is origin.
func (r *Recorder) DrawText(content string, origin Offset, extent Size, size float64, color Color) {
	if content == "" {
		return
	}
	abs := origin.Add(r.state.offset)
	if !r.keep(RectFromOffsetSize(abs, extent)) {
		return
	}
	r.prims = append(r.prims, Text{
		Content: content,
		Origin:  abs,
		Extent:  extent,
		Size:    size,
		Color:   color,
		Clip:    r.state.clip,
	})
}

// DrawImage records an image scaled into rect.
func (r *Recorder) DrawImage(img Image) {
	img.Rect = r.absolute(img.Rect)
	if img.Source == nil || !r.keep(img.Rect) {
		return
	}
	img.Clip = r.state.clip
	r.prims = append(r.prims, img)
}

// DrawPath records a path given in local coordinates.
func (r *Recorder) DrawPath(p Path) {
	points := make([]Offset, len(p.Points))
	for i, pt := range p.Points {
		points[i] = pt.Add(r.state.offset)
	}
	p.Points = points
	if len(points) == 0 {
		return
	}
	// Straight lines have an empty box; grow it by the stroke.
	pad := p.StrokeWidth/2 + 0.5
	b := p.Bounds()
	b = Rect{Left: b.Left - pad, Top: b.Top - pad, Right: b.Right + pad, Bottom: b.Bottom + pad}
	if b.Intersect(r.state.clip).IsEmpty() {
		return
	}
	p.Clip = r.state.clip
	r.prims = append(r.prims, p)
}

// DrawCustom records an opaque primitive.
func (r *Recorder) DrawCustom(rect Rect, payload any) {
	abs := r.absolute(rect)
	if !r.keep(abs) {
		return
	}
	r.prims = append(r.prims, Custom{Rect: abs, Payload: payload, Clip: r.state.clip})
}

// Finish returns the recorded frame. The recorder can keep recording
// afterwards; the returned frame does not alias its storage.
func (r *Recorder) Finish() Frame {
	prims := make([]Primitive, len(r.prims))
	copy(prims, r.prims)
	return Frame{Viewport: r.viewport, Background: r.background, Primitives: prims}
}

func (r *Recorder) absolute(rect Rect) Rect {
	return rect.Translate(r.state.offset.X, r.state.offset.Y)
}

// keep drops primitives that are entirely clipped away.
func (r *Recorder) keep(abs Rect) bool {
	if abs.IsEmpty() {
		return false
	}
	return !abs.Intersect(r.state.clip).IsEmpty()
}
