package shape

import (
	"github.com/benoitkugler/latexdraw/geom"
)

// base holds what every non group shape shares.
type base struct {
	points   []*geom.Point
	rotation float64
	style    Style
}

func newBase(nbPoints int) base {
	pts := make([]*geom.Point, nbPoints)
	for i := range pts {
		pts[i] = geom.NewPoint(0, 0)
	}
	return base{points: pts, style: DefaultStyle()}
}

func (b *base) Points() []*geom.Point { return b.points }
func (b *base) NbPoints() int         { return len(b.points) }
func (b *base) Rotation() float64     { return b.rotation }
func (b *base) Style() *Style         { return &b.style }

// SetRotation ignores non finite angles.
func (b *base) SetRotation(theta float64) {
	if geom.IsValidCoordinate(theta) {
		b.rotation = geom.NormaliseAngle(theta)
	}
}

func (b *base) pointsBounds() geom.Rect {
	pts := make([]geom.Point, len(b.points))
	for i, p := range b.points {
		pts[i] = *p
	}
	return geom.RectFromPoints(pts...)
}

func (b *base) Translate(tx, ty float64) {
	if !geom.IsValidCoordinate(tx) || !geom.IsValidCoordinate(ty) {
		return
	}
	for _, p := range b.points {
		p.Translate(tx, ty)
	}
}

// rotate moves the centre of the shape around pivot and
// accumulates theta into the rotation angle.
func (b *base) rotate(centre, pivot *geom.Point, theta float64) {
	if !pivot.Valid() || !geom.IsValidCoordinate(theta) {
		return
	}
	moved := centre.Rotate(pivot, theta)
	if moved == nil {
		return
	}
	b.Translate(moved.X-centre.X, moved.Y-centre.Y)
	b.SetRotation(b.rotation + theta)
}

// copyBase copies the point coordinates when both shapes have the
// same number of points, plus the rotation and style capabilities.
func (b *base) copyBase(src Shape) {
	if src == nil {
		return
	}
	if pts := src.Points(); len(pts) == len(b.points) {
		for i, p := range pts {
			b.points[i].Set(p)
		}
	}
	if r, ok := src.(Rotatable); ok {
		b.SetRotation(r.Rotation())
	}
	if s, ok := src.(Styled); ok {
		b.style = *s.Style()
	}
}

func (b *base) cloneBase() base {
	out := base{rotation: b.rotation, style: b.style}
	out.points = make([]*geom.Point, len(b.points))
	for i, p := range b.points {
		out.points[i] = p.Copy()
	}
	return out
}

// toLocal maps (x, y) into the unrotated frame of a shape
// with the given centre.
func (b *base) toLocal(centre geom.Point, x, y float64) (float64, float64) {
	if geom.EqualsDouble(b.rotation, 0) {
		return x, y
	}
	q := geom.NewPoint(x, y).Rotate(&centre, -b.rotation)
	if q == nil {
		return x, y
	}
	return q.X, q.Y
}

// localRect maps the corners of r into the unrotated frame.
func (b *base) localRect(centre geom.Point, r geom.Rect) []geom.Point {
	cs := r.Corners()
	for i := range cs {
		cs[i].X, cs[i].Y = b.toLocal(centre, cs[i].X, cs[i].Y)
	}
	return cs[:]
}

// matrix returns the transform applied to the unrotated points
// when drawing the shape.
func (b *base) matrix(centre geom.Point) geom.Matrix2D {
	if geom.EqualsDouble(b.rotation, 0) {
		return geom.Identity
	}
	return geom.Identity.RotateAround(b.rotation, centre.X, centre.Y)
}

// tolerance is the distance under which a point is considered on a border.
func (b *base) tolerance() float64 {
	return b.style.LineWidth/2 + 1
}
