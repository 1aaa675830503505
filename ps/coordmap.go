package ps

// CoordinateTransform maps PS-space points into PDF user space: a
// uniform scale that fits the source bounding box into the target
// paper size, centered, followed by a Y-flip about the page height.
// Both PostScript and PDF put the origin at the bottom left, so the flip
// mirrors the content vertically: the bottom edge of the bounding box
// lands at the top of the centered area on the PDF page.
type CoordinateTransform struct {
	Scale         float64
	OffsetX       float64
	OffsetY       float64
	PDFPageHeight float64
}

// NewCoordinateTransform derives the transform once per document, after
// the DSC prelude has been scanned and before any coordinate-producing
// operator is processed. It also returns the page dimensions to use:
// normally paperW/paperH, but the PS bbox itself when degenerate.
func NewCoordinateTransform(bbox BoundingBox, paperW, paperH float64) (ct CoordinateTransform, pageW, pageH float64) {
	psW := bbox.Width()
	psH := bbox.Height()

	if bbox.IsDegenerate() || psW < 0 || psH < 0 {
		return CoordinateTransform{
			Scale:         1,
			OffsetX:       0,
			OffsetY:       0,
			PDFPageHeight: psH,
		}, psW, psH
	}

	scale := paperW / psW
	if alt := paperH / psH; alt < scale {
		scale = alt
	}
	sw := psW * scale
	sh := psH * scale
	ox := (paperW-sw)/2 - bbox.X1*scale
	oy := (paperH-sh)/2 - bbox.Y1*scale

	return CoordinateTransform{
		Scale:         scale,
		OffsetX:       ox,
		OffsetY:       oy,
		PDFPageHeight: paperH,
	}, paperW, paperH
}

// Apply maps a PS-space point (xs, ys) to PDF user space.
func (c CoordinateTransform) Apply(xs, ys float64) (xp, yp float64) {
	xp = xs*c.Scale + c.OffsetX
	yp = c.PDFPageHeight - (ys*c.Scale + c.OffsetY)
	return xp, yp
}
