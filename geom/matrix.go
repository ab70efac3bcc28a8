package geom

import "math"

// Matrix2D represents the affine transform
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Transform applies the matrix to (x, y).
func (a Matrix2D) Transform(x, y float64) (float64, float64) {
	return x*a.A + y*a.C + a.E, x*a.B + y*a.D + a.F
}

// TransformVector applies the linear part of the matrix to (x, y).
func (a Matrix2D) TransformVector(x, y float64) (float64, float64) {
	return x*a.A + y*a.C, x*a.B + y*a.D
}

// Mult returns a * b.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate returns a * translation(x, y).
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale returns a * scaling(x, y).
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate returns a * rotation(theta), theta in radians.
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	s, c := math.Sincos(theta)
	return a.Mult(Matrix2D{c, s, -s, c, 0, 0})
}

// RotateAround returns a * rotation(theta) around (cx, cy).
func (a Matrix2D) RotateAround(theta, cx, cy float64) Matrix2D {
	return a.Translate(cx, cy).Rotate(theta).Translate(-cx, -cy)
}

// Invert returns the inverse transform. A singular matrix
// is returned unchanged, with ok false.
func (a Matrix2D) Invert() (m Matrix2D, ok bool) {
	det := a.A*a.D - a.B*a.C
	if det == 0 || !IsValidCoordinate(det) {
		return a, false
	}
	return Matrix2D{
		A: a.D / det,
		B: -a.B / det,
		C: -a.C / det,
		D: a.A / det,
		E: (a.C*a.F - a.D*a.E) / det,
		F: (a.B*a.E - a.A*a.F) / det,
	}, true
}

// IsIdentity reports whether a is the identity, with the default Epsilon.
func (a Matrix2D) IsIdentity() bool {
	return EqualsDouble(a.A, 1) && EqualsDouble(a.B, 0) && EqualsDouble(a.C, 0) &&
		EqualsDouble(a.D, 1) && EqualsDouble(a.E, 0) && EqualsDouble(a.F, 0)
}
