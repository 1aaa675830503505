package ps

import "parchment.dev/ps2pdf/geom2d"

// TextElement is a single Tj placement captured from a show/Tj operator.
type TextElement struct {
	X, Y     float64
	Text     []byte
	FontName string
	FontSize float64
	Color    [3]float64
}

// Item is a page-level drawing item: either a completed path batch or
// a text placement, in the order the interpreter committed them.
type Item struct {
	PathBatch *PathBatch // nil if this item is a TextElement
	Text      *TextElement
}

// Page holds the ordered drawing items committed to one page, plus its
// final dimensions (set once the coordinate transform is resolved).
type Page struct {
	WidthPts, HeightPts float64
	Items               []Item
}

// BoundingBox is the PS-space bounding box from %%BoundingBox, or the
// A4 default when absent. It is geom2d's general rectangle, narrowed to
// this role.
type BoundingBox = geom2d.Rect

// DefaultBoundingBox is used when no %%BoundingBox DSC comment is seen.
func DefaultBoundingBox() BoundingBox {
	return BoundingBox{X1: 0, Y1: 0, X2: 595.276, Y2: 841.890, Valid: false}
}
