package testing

import "github.com/go-drift/mvu/pkg/graphics"

// Texts returns the content of every text primitive of f, in draw order.
func Texts(f graphics.Frame) []string {
	var out []string
	for _, p := range PrimitivesOf[graphics.Text](f) {
		out = append(out, p.Content)
	}
	return out
}

// PrimitivesOf returns the primitives of f of type P, in draw order.
func PrimitivesOf[P graphics.Primitive](f graphics.Frame) []P {
	var out []P
	for _, p := range f.Primitives {
		if v, ok := p.(P); ok {
			out = append(out, v)
		}
	}
	return out
}
