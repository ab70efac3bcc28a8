package geom

import (
	"fmt"
	"math"
)

// Point is a mutable 2D point.
// Use the setters to update it: they silently ignore non finite values,
// so that a point built from valid coordinates stays valid.
type Point struct {
	X, Y float64
}

// NewPoint returns a new point. The coordinates are stored as given;
// use Valid to check them.
func NewPoint(x, y float64) *Point {
	return &Point{X: x, Y: y}
}

// Valid returns true if p is non nil and both its coordinates are finite.
func (p *Point) Valid() bool {
	return p != nil && IsValidCoordinate(p.X) && IsValidCoordinate(p.Y)
}

// Copy returns a new point with the same coordinates.
func (p *Point) Copy() *Point {
	if p == nil {
		return nil
	}
	return &Point{X: p.X, Y: p.Y}
}

func (p *Point) SetX(x float64) {
	if IsValidCoordinate(x) {
		p.X = x
	}
}

func (p *Point) SetY(y float64) {
	if IsValidCoordinate(y) {
		p.Y = y
	}
}

// SetPoint sets both coordinates; each invalid one is ignored.
func (p *Point) SetPoint(x, y float64) {
	p.SetX(x)
	p.SetY(y)
}

// Set copies the coordinates of q, if q is not nil.
func (p *Point) Set(q *Point) {
	if q != nil {
		p.SetPoint(q.X, q.Y)
	}
}

// Translate moves the point; nothing is done if one of the
// translation components is not finite.
func (p *Point) Translate(tx, ty float64) {
	if IsValidCoordinate(tx) && IsValidCoordinate(ty) {
		p.SetPoint(p.X+tx, p.Y+ty)
	}
}

// ComputeAngle returns the angle in [0, 2π) of the vector p→q
// measured from the positive x-axis, or NaN if q is not valid.
func (p *Point) ComputeAngle(q *Point) float64 {
	if !p.Valid() || !q.Valid() {
		return math.NaN()
	}
	dx := q.X - p.X
	dy := q.Y - p.Y

	var angle float64
	if EqualsDouble(dx, 0) {
		angle = math.Pi / 2
		if dy < 0 {
			angle = 2*math.Pi - angle
		}
		return angle
	}
	if dx < 0 {
		angle = math.Pi - math.Atan(-dy/dx)
	} else {
		angle = math.Atan(dy / dx)
	}
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// ComputeRotationAngle returns the angle between p→q1 and p→q2.
func (p *Point) ComputeRotationAngle(q1, q2 *Point) float64 {
	if !q1.Valid() || !q2.Valid() {
		return math.NaN()
	}
	return p.ComputeAngle(q2) - p.ComputeAngle(q1)
}

// Rotate returns p rotated around pivot by theta radians,
// or nil if pivot or theta is invalid.
// Multiples of π/2 use exact cosine and sine values.
func (p *Point) Rotate(pivot *Point, theta float64) *Point {
	if !p.Valid() || !pivot.Valid() || !IsValidCoordinate(theta) {
		return nil
	}
	angle := NormaliseAngle(theta)
	if EqualsDouble(angle, 0) {
		return p.Copy()
	}

	var cosTheta, sinTheta float64
	switch {
	case EqualsDouble(angle-math.Pi/2, 0):
		cosTheta, sinTheta = 0, 1
	case EqualsDouble(angle-math.Pi, 0):
		cosTheta, sinTheta = -1, 0
	case EqualsDouble(angle-3*math.Pi/2, 0):
		cosTheta, sinTheta = 0, -1
	default:
		cosTheta, sinTheta = math.Cos(angle), math.Sin(angle)
	}

	gx, gy := pivot.X, pivot.Y
	return &Point{
		X: cosTheta*(p.X-gx) - sinTheta*(p.Y-gy) + gx,
		Y: sinTheta*(p.X-gx) + cosTheta*(p.Y-gy) + gy,
	}
}

// CentralSymmetry is the rotation of p by π around centre.
func (p *Point) CentralSymmetry(centre *Point) *Point {
	return p.Rotate(centre, math.Pi)
}

// HorizontalSymmetry mirrors p across the vertical line going through axis.
func (p *Point) HorizontalSymmetry(axis *Point) *Point {
	if !p.Valid() || !axis.Valid() {
		return nil
	}
	return &Point{X: 2*axis.X - p.X, Y: p.Y}
}

// VerticalSymmetry mirrors p across the horizontal line going through axis.
func (p *Point) VerticalSymmetry(axis *Point) *Point {
	if !p.Valid() || !axis.Valid() {
		return nil
	}
	return &Point{X: p.X, Y: 2*axis.Y - p.Y}
}

// Equals compares p and q coordinate-wise with the given gap.
func (p *Point) Equals(q *Point, gap float64) bool {
	if !IsValidCoordinate(gap) || !p.Valid() || !q.Valid() {
		return false
	}
	return EqualsDoubleGap(p.X, q.X, gap) && EqualsDoubleGap(p.Y, q.Y, gap)
}

// MiddlePoint returns the middle of [p, q], or nil if q is nil.
func (p *Point) MiddlePoint(q *Point) *Point {
	if q == nil {
		return nil
	}
	return &Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Distance returns the euclidean distance, or NaN if q is nil.
func (p *Point) Distance(q *Point) float64 {
	if q == nil {
		return math.NaN()
	}
	return p.DistanceTo(q.X, q.Y)
}

func (p *Point) DistanceTo(x, y float64) float64 {
	return math.Hypot(x-p.X, y-p.Y)
}

// Sub returns p - q, or nil if q is nil.
func (p *Point) Sub(q *Point) *Point {
	if q == nil {
		return nil
	}
	return &Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q. A nil q is treated as the origin.
func (p *Point) Add(q *Point) *Point {
	out := p.Copy()
	if q != nil {
		out.Translate(q.X, q.Y)
	}
	return out
}

func (p *Point) Magnitude() float64 {
	return math.Hypot(p.X, p.Y)
}

// Normalise returns the unit vector of p, or nil for the null vector.
func (p *Point) Normalise() *Point {
	m := p.Magnitude()
	if EqualsDouble(m, 0) || !IsValidCoordinate(m) {
		return nil
	}
	return &Point{X: p.X / m, Y: p.Y / m}
}

func (p *Point) String() string {
	return fmt.Sprintf("Point[x=%g, y=%g]", p.X, p.Y)
}
