package shape

import (
	"math"

	"github.com/benoitkugler/latexdraw/geom"
)

// indexes of the frame points
const (
	topLeft = iota
	topRight
	bottomRight
	bottomLeft
)

// rectangular is the frame shared by rectangles, ellipses,
// triangles and arcs: four points ordered clockwise from the
// top left one. The position of the shape is its bottom left point.
type rectangular struct {
	base
}

func newRectangular() rectangular {
	return rectangular{base: newBase(4)}
}

// setFrame places the bottom left point at (x, y).
func (r *rectangular) setFrame(x, y, w, h float64) {
	r.points[topLeft].SetPoint(x, y-h)
	r.points[topRight].SetPoint(x+w, y-h)
	r.points[bottomRight].SetPoint(x+w, y)
	r.points[bottomLeft].SetPoint(x, y)
}

// Position returns the live bottom left point.
func (r *rectangular) Position() *geom.Point { return r.points[bottomLeft] }

func (r *rectangular) Width() float64 {
	return r.points[topRight].X - r.points[topLeft].X
}

func (r *rectangular) Height() float64 {
	return r.points[bottomLeft].Y - r.points[topLeft].Y
}

// setWidth keeps the left side in place.
func (r *rectangular) setWidth(w float64) {
	if !geom.IsValidCoordinate(w) || w <= 0 {
		return
	}
	x := r.points[topLeft].X + w
	r.points[topRight].SetX(x)
	r.points[bottomRight].SetX(x)
}

// setHeight keeps the bottom side in place.
func (r *rectangular) setHeight(h float64) {
	if !geom.IsValidCoordinate(h) || h <= 0 {
		return
	}
	y := r.points[bottomLeft].Y - h
	r.points[topLeft].SetY(y)
	r.points[topRight].SetY(y)
}

func (r *rectangular) Bounds() geom.Rect { return r.pointsBounds() }

func (r *rectangular) GravityCentre() *geom.Point {
	c := r.Bounds().Centre()
	return &c
}

func (r *rectangular) Rotate(pivot *geom.Point, theta float64) {
	r.rotate(r.GravityCentre(), pivot, theta)
}

// local returns (x, y) in the unrotated frame.
func (r *rectangular) local(x, y float64) (float64, float64) {
	return r.toLocal(r.Bounds().Centre(), x, y)
}

func (r *rectangular) Intersects(rect geom.Rect) bool {
	b := r.Bounds()
	corners := b.Corners()
	return geom.ConvexIntersect(corners[:], r.localRect(b.Centre(), rect))
}

func (r *rectangular) adder() *matrixAdder {
	return &matrixAdder{M: r.matrix(r.Bounds().Centre()), path: new(Path)}
}

// Rectangle is a rectangle or, when built as such, a square.
type Rectangle struct {
	rectangular
	square bool
}

func (r *Rectangle) Kind() Kind {
	if r.square {
		return KindSquare
	}
	return KindRectangle
}

// IsSquare returns true if the width and height are bound together.
func (r *Rectangle) IsSquare() bool { return r.square }

func (r *Rectangle) SetWidth(w float64) {
	r.setWidth(w)
	if r.square {
		r.setHeight(w)
	}
}

func (r *Rectangle) SetHeight(h float64) {
	r.setHeight(h)
	if r.square {
		r.setWidth(h)
	}
}

func (r *Rectangle) Contains(x, y float64) bool {
	lx, ly := r.local(x, y)
	return r.Bounds().Grow(r.tolerance()).Contains(lx, ly)
}

func (r *Rectangle) Path() Path {
	a := r.adder()
	cs := r.Bounds().Corners()
	a.polygon(cs[:])
	return *a.path
}

func (r *Rectangle) Copy(src Shape) { r.copyBase(src) }

func (r *Rectangle) Clone() Shape {
	return &Rectangle{rectangular: rectangular{r.cloneBase()}, square: r.square}
}

// Ellipse is an ellipse or, when built as such, a circle.
type Ellipse struct {
	rectangular
	circle bool
}

func (e *Ellipse) Kind() Kind {
	if e.circle {
		return KindCircle
	}
	return KindEllipse
}

func (e *Ellipse) IsCircle() bool { return e.circle }

// Rx returns the horizontal radius.
func (e *Ellipse) Rx() float64 { return e.Width() / 2 }

// Ry returns the vertical radius.
func (e *Ellipse) Ry() float64 { return e.Height() / 2 }

func (e *Ellipse) SetWidth(w float64) {
	e.setWidth(w)
	if e.circle {
		e.setHeight(w)
	}
}

func (e *Ellipse) SetHeight(h float64) {
	e.setHeight(h)
	if e.circle {
		e.setWidth(h)
	}
}

func (e *Ellipse) Contains(x, y float64) bool {
	lx, ly := e.local(x, y)
	c := e.Bounds().Centre()
	tol := e.tolerance()
	rx, ry := e.Rx()+tol, e.Ry()+tol
	dx, dy := (lx-c.X)/rx, (ly-c.Y)/ry
	return dx*dx+dy*dy <= 1
}

func (e *Ellipse) Path() Path {
	a := e.adder()
	c := e.Bounds().Centre()
	rx, ry := e.Rx(), e.Ry()
	a.start(c.X+rx, c.Y)
	a.ellipseArc(c.X, c.Y, rx, ry, 0, 2*math.Pi)
	a.close()
	return *a.path
}

func (e *Ellipse) Copy(src Shape) { e.copyBase(src) }

func (e *Ellipse) Clone() Shape {
	return &Ellipse{rectangular: rectangular{e.cloneBase()}, circle: e.circle}
}

// Triangle is an isosceles triangle inscribed in its frame,
// its base being the bottom side.
type Triangle struct {
	rectangular
}

func (*Triangle) Kind() Kind { return KindTriangle }

func (t *Triangle) SetWidth(w float64)  { t.setWidth(w) }
func (t *Triangle) SetHeight(h float64) { t.setHeight(h) }

// polygon returns the unrotated vertices: apex, bottom right, bottom left.
func (t *Triangle) polygon() []geom.Point {
	b := t.Bounds()
	return []geom.Point{
		{X: (b.MinX + b.MaxX) / 2, Y: b.MinY},
		{X: b.MaxX, Y: b.MaxY},
		{X: b.MinX, Y: b.MaxY},
	}
}

func (t *Triangle) Contains(x, y float64) bool {
	lx, ly := t.local(x, y)
	poly := t.polygon()
	if geom.PolygonContains(poly, lx, ly) {
		return true
	}
	tol := t.tolerance()
	for i := range poly {
		if geom.SegmentDistance(poly[i], poly[(i+1)%3], lx, ly) <= tol {
			return true
		}
	}
	return false
}

func (t *Triangle) Intersects(rect geom.Rect) bool {
	return geom.ConvexIntersect(t.polygon(), t.localRect(t.Bounds().Centre(), rect))
}

func (t *Triangle) Path() Path {
	a := t.adder()
	a.polygon(t.polygon())
	return *a.path
}

func (t *Triangle) Copy(src Shape) { t.copyBase(src) }

func (t *Triangle) Clone() Shape {
	return &Triangle{rectangular: rectangular{t.cloneBase()}}
}

// ArcStyle selects how a circle arc is closed.
type ArcStyle uint8

const (
	// ArcOpen is a single curve, as drawn by \psarc.
	ArcOpen ArcStyle = iota
	// Wedge joins both ends to the centre, as drawn by \pswedge.
	Wedge
	// Chord joins both ends with a segment.
	Chord
)

func (s ArcStyle) String() string {
	switch s {
	case Wedge:
		return "Wedge"
	case Chord:
		return "Chord"
	}
	return "Arc"
}

// Arc is a circle arc or wedge. The angles, in radians, are
// independent: the arc always runs counter clockwise from the start
// angle to the end angle, as PSTricks draws it.
type Arc struct {
	rectangular
	start, end float64
	style      ArcStyle
}

func (*Arc) Kind() Kind { return KindCircleArc }

func (a *Arc) AngleStart() float64 { return a.start }
func (a *Arc) AngleEnd() float64   { return a.end }

func (a *Arc) SetAngleStart(v float64) {
	if geom.IsValidCoordinate(v) {
		a.start = v
	}
}

func (a *Arc) SetAngleEnd(v float64) {
	if geom.IsValidCoordinate(v) {
		a.end = v
	}
}

func (a *Arc) ArcStyle() ArcStyle     { return a.style }
func (a *Arc) SetArcStyle(s ArcStyle) { a.style = s }

// Radius returns the half width of the frame.
func (a *Arc) Radius() float64 { return a.Width() / 2 }

func (a *Arc) SetWidth(w float64) {
	a.setWidth(w)
	a.setHeight(w)
}

func (a *Arc) SetHeight(h float64) { a.SetWidth(h) }

// Sweep returns the angular extent of the arc, in (0, 2π].
func (a *Arc) Sweep() float64 {
	sweep := geom.NormaliseAngle(a.end - a.start)
	if geom.EqualsDouble(sweep, 0) {
		sweep = 2 * math.Pi
	}
	return sweep
}

// inSweep returns true if the page angle theta is covered by the arc.
func (a *Arc) inSweep(theta float64) bool {
	return geom.NormaliseAngle(theta-a.start) <= a.Sweep()+geom.Epsilon
}

func (a *Arc) Contains(x, y float64) bool {
	lx, ly := a.local(x, y)
	c := a.Bounds().Centre()
	d := math.Hypot(lx-c.X, ly-c.Y)
	theta := math.Atan2(c.Y-ly, lx-c.X) // y axis pointing down
	tol := a.tolerance()
	switch a.style {
	case Wedge:
		return d <= a.Radius()+tol && (d <= tol || a.inSweep(theta))
	case Chord:
		if d > a.Radius()+tol {
			return false
		}
		poly := a.chordPolygon(c)
		return geom.PolygonContains(poly, lx, ly) ||
			geom.SegmentDistance(poly[0], poly[len(poly)-1], lx, ly) <= tol ||
			(math.Abs(d-a.Radius()) <= tol && a.inSweep(theta))
	}
	return math.Abs(d-a.Radius()) <= tol && a.inSweep(theta)
}

// chordPolygon samples the unrotated arc, from start to end.
func (a *Arc) chordPolygon(c geom.Point) []geom.Point {
	const n = 64
	r, sweep := a.Radius(), a.Sweep()
	out := make([]geom.Point, n+1)
	for i := range out {
		sin, cos := math.Sincos(a.start + sweep*float64(i)/n)
		out[i] = geom.Point{X: c.X + r*cos, Y: c.Y - r*sin}
	}
	return out
}

func (a *Arc) Path() Path {
	add := a.adder()
	c := a.Bounds().Centre()
	r := a.Radius()
	sin, cos := math.Sincos(a.start)
	sx, sy := c.X+r*cos, c.Y-r*sin
	if a.style == Wedge {
		add.start(c.X, c.Y)
		add.line(sx, sy)
	} else {
		add.start(sx, sy)
	}
	add.ellipseArc(c.X, c.Y, r, r, a.start, a.Sweep())
	add.path.Stop(a.style != ArcOpen)
	return *add.path
}

func (a *Arc) Copy(src Shape) {
	a.copyBase(src)
	if arc, ok := src.(Arcer); ok {
		a.start, a.end = arc.AngleStart(), arc.AngleEnd()
		a.style = arc.ArcStyle()
	}
}

func (a *Arc) Clone() Shape {
	return &Arc{rectangular: rectangular{a.cloneBase()}, start: a.start, end: a.end, style: a.style}
}
