package shape

import (
	"github.com/benoitkugler/latexdraw/geom"
)

// FreehandType selects how the sampled points are joined.
type FreehandType uint8

const (
	Lines FreehandType = iota
	Curves
)

func (t FreehandType) String() string {
	if t == Curves {
		return "CURVES"
	}
	return "LINES"
}

// Sampler is implemented by freehand shapes.
type Sampler interface {
	FreehandType() FreehandType
	SetFreehandType(t FreehandType)
	// Interval is the step between two used points.
	Interval() int
	SetInterval(n int)
	IsOpen() bool
	SetOpen(open bool)
}

// SegmentOp is the kind of a freehand segment.
type SegmentOp uint8

const (
	SegMove SegmentOp = iota
	SegLine
	SegCurve
)

// Segment is one step of a freehand outline. Move and line
// segments only use Pts[0]; curves use the two control points
// then the end point.
type Segment struct {
	Op  SegmentOp
	Pts [3]geom.Point
}

// Freehand is a curve drawn through sampled points.
type Freehand struct {
	base
	ftype    FreehandType
	interval int
	open     bool
}

func (*Freehand) Kind() Kind { return KindFreehand }

func (f *Freehand) FreehandType() FreehandType     { return f.ftype }
func (f *Freehand) SetFreehandType(t FreehandType) { f.ftype = t }
func (f *Freehand) Interval() int                  { return f.interval }
func (f *Freehand) IsOpen() bool                   { return f.open }
func (f *Freehand) SetOpen(open bool)              { f.open = open }

// SetInterval ignores values lower than 1.
func (f *Freehand) SetInterval(n int) {
	if n > 0 {
		f.interval = n
	}
}

// AddPoint appends a copy of p; invalid points are ignored.
func (f *Freehand) AddPoint(p *geom.Point) {
	if p.Valid() {
		f.points = append(f.points, p.Copy())
	}
}

func (f *Freehand) Bounds() geom.Rect { return f.pointsBounds() }

func (f *Freehand) GravityCentre() *geom.Point {
	c := f.Bounds().Centre()
	return &c
}

func (f *Freehand) Rotate(pivot *geom.Point, theta float64) {
	f.rotate(f.GravityCentre(), pivot, theta)
}

// Segments returns the outline of the unrotated shape.
// Curves are smoothed through the middles of the sampled points.
func (f *Freehand) Segments() []Segment {
	size := len(f.points)
	if size == 0 {
		return nil
	}
	interval := f.interval
	if interval < 1 {
		interval = 1
	}
	pt := func(i int) geom.Point { return *f.points[i] }

	out := []Segment{{Op: SegMove, Pts: [3]geom.Point{pt(0)}}}
	last := pt(size - 1)
	end := pt(0)
	addLine := func(p geom.Point) {
		out = append(out, Segment{Op: SegLine, Pts: [3]geom.Point{p}})
		end = p
	}
	addCurve := func(c1, c2, p geom.Point) {
		out = append(out, Segment{Op: SegCurve, Pts: [3]geom.Point{c1, c2, p}})
		end = p
	}

	switch f.ftype {
	case Curves:
		cur := pt(0)
		var prev, mid geom.Point
		if size > interval {
			prev, cur = cur, pt(interval)
			mid = geom.Point{X: (cur.X + prev.X) / 2, Y: (cur.Y + prev.Y) / 2}
			addLine(mid)
		}
		i := interval * 2
		for ; i < size; i += interval {
			c1 := geom.Point{X: (mid.X + cur.X) / 2, Y: (mid.Y + cur.Y) / 2}
			prev, cur = cur, pt(i)
			mid = geom.Point{X: (cur.X + prev.X) / 2, Y: (cur.Y + prev.Y) / 2}
			c2 := geom.Point{X: (prev.X + mid.X) / 2, Y: (prev.Y + mid.Y) / 2}
			addCurve(c1, c2, mid)
		}
		if i-interval+1 < size {
			c1 := geom.Point{X: (mid.X + cur.X) / 2, Y: (mid.Y + cur.Y) / 2}
			prev, cur = cur, last
			mid = geom.Point{X: (cur.X + prev.X) / 2, Y: (cur.Y + prev.Y) / 2}
			c2 := geom.Point{X: (prev.X + mid.X) / 2, Y: (prev.Y + mid.Y) / 2}
			addCurve(c1, c2, last)
		}
	default:
		for i := interval; i < size; i += interval {
			addLine(pt(i))
		}
	}
	if size > 1 && end != last {
		addLine(last)
	}
	return out
}

// polyline returns the sampled points used by the outline.
func (f *Freehand) polyline() []geom.Point {
	var out []geom.Point
	for _, s := range f.Segments() {
		switch s.Op {
		case SegCurve:
			out = append(out, s.Pts[2])
		default:
			out = append(out, s.Pts[0])
		}
	}
	return out
}

func (f *Freehand) Contains(x, y float64) bool {
	lx, ly := f.toLocal(f.Bounds().Centre(), x, y)
	poly := f.polyline()
	if !f.open && geom.PolygonContains(poly, lx, ly) {
		return true
	}
	tol := f.tolerance()
	for i := 1; i < len(poly); i++ {
		if geom.SegmentDistance(poly[i-1], poly[i], lx, ly) <= tol {
			return true
		}
	}
	return len(poly) == 1 && poly[0].DistanceTo(lx, ly) <= tol
}

func (f *Freehand) Intersects(r geom.Rect) bool {
	b := f.Bounds()
	local := f.localRect(b.Centre(), r)
	for _, p := range f.polyline() {
		if geom.PolygonContains(local, p.X, p.Y) {
			return true
		}
	}
	poly := f.polyline()
	for i := 1; i < len(poly); i++ {
		if geom.ConvexIntersect(poly[i-1:i+1], local) {
			return true
		}
	}
	return false
}

func (f *Freehand) Path() Path {
	a := &matrixAdder{M: f.matrix(f.Bounds().Centre()), path: new(Path)}
	for _, s := range f.Segments() {
		switch s.Op {
		case SegMove:
			a.start(s.Pts[0].X, s.Pts[0].Y)
		case SegLine:
			a.line(s.Pts[0].X, s.Pts[0].Y)
		case SegCurve:
			a.cubic(s.Pts[0].X, s.Pts[0].Y, s.Pts[1].X, s.Pts[1].Y, s.Pts[2].X, s.Pts[2].Y)
		}
	}
	a.path.Stop(!f.open)
	return *a.path
}

// Copy also copies the sampled points when src is a freehand shape.
func (f *Freehand) Copy(src Shape) {
	if other, ok := src.(*Freehand); ok && len(other.points) != len(f.points) {
		f.points = other.cloneBase().points
	}
	f.copyBase(src)
	if s, ok := src.(Sampler); ok {
		f.ftype, f.interval, f.open = s.FreehandType(), s.Interval(), s.IsOpen()
	}
}

func (f *Freehand) Clone() Shape {
	return &Freehand{base: f.cloneBase(), ftype: f.ftype, interval: f.interval, open: f.open}
}
