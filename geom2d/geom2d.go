// Package geom2d provides the small amount of 2-D affine geometry the
// renderer needs: points, rectangles and the current transformation
// matrix, narrowed to what a PostScript CTM and a PDF MediaBox require.
package geom2d

import "math"

// Point is a location in some 2-D coordinate system.
type Point struct {
	X, Y float64
}

// Matrix is a 2-D affine transformation, stored as the six coefficients
// of the PostScript convention:
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the matrix that leaves every point unchanged.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Mul returns the matrix representing "apply m, then apply n" -- i.e.
// the product m×n in PostScript's row-vector notation, the form concat
// uses for M×CTM.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.C,
		B: m.A*n.B + m.B*n.D,
		C: m.C*n.A + m.D*n.C,
		D: m.C*n.B + m.D*n.D,
		E: m.E*n.A + m.F*n.C + n.E,
		F: m.E*n.B + m.F*n.D + n.F,
	}
}

// Apply transforms a point by the matrix.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// Translate returns the matrix for a translation by (dx, dy).
func Translate(dx, dy float64) Matrix {
	return Matrix{A: 1, D: 1, E: dx, F: dy}
}

// Scale returns the matrix for scaling by (sx, sy) about the origin.
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Rotate returns the matrix for a counter-clockwise rotation by theta
// degrees about the origin.
func Rotate(degrees float64) Matrix {
	r := degrees * math.Pi / 180
	sin, cos := math.Sin(r), math.Cos(r)
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

// Rect is an axis-aligned rectangle given by two opposite corners.
// Valid is false until the rectangle has been populated from real data
// (e.g. a %%BoundingBox comment); a zero Rect is not assumed valid.
type Rect struct {
	X1, Y1, X2, Y2 float64
	Valid          bool
}

// Width returns the rectangle's horizontal extent.
func (r Rect) Width() float64 { return r.X2 - r.X1 }

// Height returns the rectangle's vertical extent.
func (r Rect) Height() float64 { return r.Y2 - r.Y1 }

// IsDegenerate reports whether the rectangle has zero area.
func (r Rect) IsDegenerate() bool {
	return r.Width() == 0 || r.Height() == 0
}
