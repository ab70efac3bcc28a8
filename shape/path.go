package shape

import (
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/latexdraw/geom"
	"golang.org/x/image/math/fixed"
)

// Operation is one step of a Path.
type Operation interface {
	// points returns the points of the operation, the end point last.
	points() []fixed.Point26_6
	// letter is the SVG command of the operation.
	letter() byte
}

type (
	MoveTo  fixed.Point26_6
	LineTo  fixed.Point26_6
	QuadTo  [2]fixed.Point26_6 // control, end
	CubicTo [3]fixed.Point26_6 // control, control, end
	Close   struct{}
)

func (op MoveTo) points() []fixed.Point26_6  { return []fixed.Point26_6{fixed.Point26_6(op)} }
func (op LineTo) points() []fixed.Point26_6  { return []fixed.Point26_6{fixed.Point26_6(op)} }
func (op QuadTo) points() []fixed.Point26_6  { return op[:] }
func (op CubicTo) points() []fixed.Point26_6 { return op[:] }
func (Close) points() []fixed.Point26_6      { return nil }

func (MoveTo) letter() byte  { return 'M' }
func (LineTo) letter() byte  { return 'L' }
func (QuadTo) letter() byte  { return 'Q' }
func (CubicTo) letter() byte { return 'C' }
func (Close) letter() byte   { return 'Z' }

// Path is a sequence of drawing operations, in internal units.
// Every shape reduces to a path.
type Path []Operation

func fixedTof(p fixed.Point26_6) (float64, float64) {
	return float64(p.X) / 64, float64(p.Y) / 64
}

func fixedToPoint(p fixed.Point26_6) geom.Point {
	x, y := fixedTof(p)
	return geom.Point{X: x, Y: y}
}

// ToFixed converts internal coordinates to a fixed point.
func ToFixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.Int26_6(math.Round(y * 64))}
}

// ToSVGPath returns the SVG path data of p, with 3 decimals.
func (p Path) ToSVGPath() string {
	var sb strings.Builder
	for i, op := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(op.letter())
		for j, pt := range op.points() {
			if j > 0 {
				sb.WriteByte(',')
			}
			x, y := fixedTof(pt)
			sb.WriteString(strconv.FormatFloat(x, 'f', 3, 32) + "," + strconv.FormatFloat(y, 'f', 3, 32))
		}
	}
	return sb.String()
}

func (p Path) String() string { return p.ToSVGPath() }

// The methods below implement Drawer.

func (p *Path) Start(a fixed.Point26_6)            { *p = append(*p, MoveTo(a)) }
func (p *Path) Line(b fixed.Point26_6)             { *p = append(*p, LineTo(b)) }
func (p *Path) QuadBezier(b, c fixed.Point26_6)    { *p = append(*p, QuadTo{b, c}) }
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) { *p = append(*p, CubicTo{b, c, d}) }

func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Transform returns a copy of p with every point mapped by m.
func (p Path) Transform(m geom.Matrix2D) Path {
	tr := func(q fixed.Point26_6) fixed.Point26_6 {
		x, y := fixedTof(q)
		return ToFixed(m.Transform(x, y))
	}
	out := make(Path, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			out[i] = MoveTo(tr(fixed.Point26_6(op)))
		case LineTo:
			out[i] = LineTo(tr(fixed.Point26_6(op)))
		case QuadTo:
			out[i] = QuadTo{tr(op[0]), tr(op[1])}
		case CubicTo:
			out[i] = CubicTo{tr(op[0]), tr(op[1]), tr(op[2])}
		case Close:
			out[i] = op
		}
	}
	return out
}

// Drawer accumulates path operations. *Path implements it,
// as well as the render drivers.
type Drawer interface {
	Start(a fixed.Point26_6)
	Line(b fixed.Point26_6)
	QuadBezier(b, c fixed.Point26_6)
	CubeBezier(b, c, d fixed.Point26_6)
	Stop(closeLoop bool)
}

// AddTo replays p on d.
func (p Path) AddTo(d Drawer) {
	started := false
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			if started {
				d.Stop(false)
			}
			d.Start(fixed.Point26_6(op))
			started = true
		case LineTo:
			d.Line(fixed.Point26_6(op))
		case QuadTo:
			d.QuadBezier(op[0], op[1])
		case CubicTo:
			d.CubeBezier(op[0], op[1], op[2])
		case Close:
			d.Stop(true)
			started = false
		}
	}
	if started {
		d.Stop(false)
	}
}

// matrixAdder applies a transform to the points
// before adding them to the path.
type matrixAdder struct {
	M    geom.Matrix2D
	path *Path
}

func (a *matrixAdder) tr(x, y float64) fixed.Point26_6 {
	return ToFixed(a.M.Transform(x, y))
}

func (a *matrixAdder) start(x, y float64) { a.path.Start(a.tr(x, y)) }
func (a *matrixAdder) line(x, y float64)  { a.path.Line(a.tr(x, y)) }
func (a *matrixAdder) cubic(x1, y1, x2, y2, x3, y3 float64) {
	a.path.CubeBezier(a.tr(x1, y1), a.tr(x2, y2), a.tr(x3, y3))
}
func (a *matrixAdder) close() { a.path.Stop(true) }

// polygon adds a closed polygon.
func (a *matrixAdder) polygon(pts []geom.Point) {
	if len(pts) == 0 {
		return
	}
	a.start(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		a.line(p.X, p.Y)
	}
	a.close()
}

// arcStep bounds the angle spanned by one cubic of an elliptic arc.
const arcStep = math.Pi / 8

// ellipseArc adds the elliptic arc of centre (cx, cy) and radii rx, ry,
// starting at angle start and spanning sweep radians counter clockwise
// (as seen on the page, the y axis pointing down).
// The current point must already be at the start of the arc.
//
// Each piece is the cubic of L. Maisonobe's "Drawing an elliptical arc
// using polylines, quadratic or cubic Bezier curves" (2003).
func (a *matrixAdder) ellipseArc(cx, cy, rx, ry, start, sweep float64) {
	n := int(math.Abs(sweep)/arcStep) + 1
	step := sweep / float64(n)
	t := math.Tan(step / 2)
	k := math.Sin(step) * (math.Sqrt(4+3*t*t) - 1) / 3

	// on the page: x = cx + rx cos θ, y = cy - ry sin θ
	at := func(theta float64) (p, d geom.Point) {
		sin, cos := math.Sincos(theta)
		return geom.Point{X: cx + rx*cos, Y: cy - ry*sin}, geom.Point{X: -rx * sin, Y: -ry * cos}
	}
	from, dFrom := at(start)
	for i := 1; i <= n; i++ {
		to, dTo := at(start + step*float64(i))
		a.cubic(from.X+k*dFrom.X, from.Y+k*dFrom.Y, to.X-k*dTo.X, to.Y-k*dTo.Y, to.X, to.Y)
		from, dFrom = to, dTo
	}
}
