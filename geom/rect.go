package geom

import "math"

// Rect is an axis aligned rectangle. Internal coordinates
// have their y axis pointing down, so (MinX, MinY) is the top left corner.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// RectFromPoints returns the smallest rectangle containing pts.
// The zero Rect is returned for an empty slice.
func RectFromPoints(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		r = r.Extend(p.X, p.Y)
	}
	return r
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Centre returns the middle of the rectangle.
func (r Rect) Centre() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// IsEmpty is true for rectangles with no area.
func (r Rect) IsEmpty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Contains returns true if (x, y) lies inside r, borders included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Intersects returns true if r and o overlap, borders included.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX <= o.MaxX && o.MinX <= r.MaxX && r.MinY <= o.MaxY && o.MinY <= r.MaxY
}

// Extend returns the smallest rectangle containing r and (x, y).
func (r Rect) Extend(x, y float64) Rect {
	return Rect{
		MinX: math.Min(r.MinX, x), MinY: math.Min(r.MinY, y),
		MaxX: math.Max(r.MaxX, x), MaxY: math.Max(r.MaxY, y),
	}
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return r.Extend(o.MinX, o.MinY).Extend(o.MaxX, o.MaxY)
}

// Grow grows (d > 0) or shrinks (d < 0) the rectangle on every side.
func (r Rect) Grow(d float64) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// Corners returns the four corners, clockwise from the top left one
// (top left, top right, bottom right, bottom left).
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.MinX, Y: r.MinY},
		{X: r.MaxX, Y: r.MinY},
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MinX, Y: r.MaxY},
	}
}

// Transform returns the corners of r mapped by m.
func (r Rect) Transform(m Matrix2D) [4]Point {
	cs := r.Corners()
	for i, c := range cs {
		cs[i].X, cs[i].Y = m.Transform(c.X, c.Y)
	}
	return cs
}

// ConvexIntersect tells whether the two convex polygons a and b overlap,
// using the separating axis theorem. Touching polygons overlap.
func ConvexIntersect(a, b []Point) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return !hasSeparatingAxis(a, b) && !hasSeparatingAxis(b, a)
}

func hasSeparatingAxis(a, b []Point) bool {
	for i := range a {
		p1, p2 := a[i], a[(i+1)%len(a)]
		nx, ny := p2.Y-p1.Y, p1.X-p2.X // edge normal
		if nx == 0 && ny == 0 {
			continue
		}
		minA, maxA := project(a, nx, ny)
		minB, maxB := project(b, nx, ny)
		if maxA < minB-Epsilon || maxB < minA-Epsilon {
			return true
		}
	}
	return false
}

func project(poly []Point, nx, ny float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range poly {
		d := p.X*nx + p.Y*ny
		lo, hi = math.Min(lo, d), math.Max(hi, d)
	}
	return lo, hi
}

// PolygonContains implements the even-odd rule.
func PolygonContains(poly []Point, x, y float64) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			in = !in
		}
	}
	return in
}

// SegmentDistance returns the distance between (x, y) and the segment [a, b].
func SegmentDistance(a, b Point, x, y float64) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(x-a.X, y-a.Y)
	}
	t := ((x-a.X)*dx + (y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(x-(a.X+t*dx), y-(a.Y+t*dy))
}
