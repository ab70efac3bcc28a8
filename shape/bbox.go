package shape

import (
	"math"

	"github.com/benoitkugler/latexdraw/geom"
)

// segment is a Bézier curve of degree len(segment)-1,
// a line being of degree 1.
type segment []geom.Point

// at evaluates s at t with de Casteljau's algorithm.
func (s segment) at(t float64) geom.Point {
	pts := append(segment(nil), s...)
	for n := len(pts) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			pts[i] = geom.Point{
				X: pts[i].X + t*(pts[i+1].X-pts[i].X),
				Y: pts[i].Y + t*(pts[i+1].Y-pts[i].Y),
			}
		}
	}
	return pts[0]
}

// extrema returns the parameters in ]0, 1[ where one coordinate
// of s reaches a local extremum.
func (s segment) extrema() []float64 {
	var out []float64
	for _, coord := range [2]func(geom.Point) float64{
		func(p geom.Point) float64 { return p.X },
		func(p geom.Point) float64 { return p.Y },
	} {
		var roots []float64
		switch len(s) {
		case 3:
			// derivative: 2[(p0 - 2p1 + p2)t + (p1 - p0)]
			p0, p1, p2 := coord(s[0]), coord(s[1]), coord(s[2])
			roots = polyRoots(0, p0-2*p1+p2, p1-p0)
		case 4:
			// derivative: 3[at² + bt + c]
			p0, p1, p2, p3 := coord(s[0]), coord(s[1]), coord(s[2]), coord(s[3])
			roots = polyRoots(p3-3*p2+3*p1-p0, 2*(p2-2*p1+p0), p1-p0)
		}
		for _, t := range roots {
			if t > 0 && t < 1 {
				out = append(out, t)
			}
		}
	}
	return out
}

// polyRoots returns the real roots of at² + bt + c.
func polyRoots(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}
	delta := b*b - 4*a*c
	if delta < 0 {
		return nil
	}
	sq := math.Sqrt(delta)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// Bounds returns the exact bounding box of the path, curve
// extrema included, or the zero Rect for an empty path.
func (p Path) Bounds() geom.Rect {
	var (
		pts            []geom.Point
		current, start geom.Point
	)
	for _, op := range p {
		if _, ok := op.(Close); ok {
			current = start
			continue
		}
		seg := segment{current}
		for _, q := range op.points() {
			seg = append(seg, fixedToPoint(q))
		}
		end := seg[len(seg)-1]
		if _, ok := op.(MoveTo); ok {
			start = end
		} else {
			for _, t := range seg.extrema() {
				pts = append(pts, seg.at(t))
			}
		}
		pts = append(pts, end)
		current = end
	}
	if len(pts) == 0 {
		return geom.Rect{}
	}
	return geom.RectFromPoints(pts...)
}
