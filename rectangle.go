package pdf

import "io"

// Rectangle is a PDF rectangle object, e.g. a page's MediaBox.
// Coordinates are in PDF user space (points), llx/lly being the lower
// left corner.
type Rectangle struct {
	LLx, LLy, URx, URy float64
}

func (r *Rectangle) PDF(w io.Writer) error {
	arr := Array{Real(r.LLx), Real(r.LLy), Real(r.URx), Real(r.URy)}
	return arr.PDF(w)
}

// Width returns the rectangle's horizontal extent.
func (r *Rectangle) Width() float64 { return r.URx - r.LLx }

// Height returns the rectangle's vertical extent.
func (r *Rectangle) Height() float64 { return r.URy - r.LLy }
