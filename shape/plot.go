package shape

import (
	"fmt"
	"math"

	"github.com/benoitkugler/latexdraw/geom"
	"github.com/benoitkugler/latexdraw/psfunc"
)

// PlotStyle is the PSTricks plotstyle option.
type PlotStyle uint8

const (
	PlotLine PlotStyle = iota
	PlotPolygon
	PlotCurve
	PlotDots
)

func (s PlotStyle) PSTName() string {
	switch s {
	case PlotPolygon:
		return "polygon"
	case PlotCurve:
		return "curve"
	case PlotDots:
		return "dots"
	default:
		return "line"
	}
}

func ParsePlotStyle(s string) (PlotStyle, bool) {
	switch s {
	case "line":
		return PlotLine, true
	case "polygon":
		return PlotPolygon, true
	case "curve", "ecurve", "ccurve":
		return PlotCurve, true
	case "dots":
		return PlotDots, true
	}
	return 0, false
}

// DefaultPlotPoints is the PSTricks default for plotpoints.
const DefaultPlotPoints = 50

// MaxPlotPoints bounds the number of sampled points of a plot.
const MaxPlotPoints = 10000

// Plot draws a function, given as a PostScript expression,
// between two values of its parameter (in cm). A parametric plot
// expression leaves two values on the stack: x then y.
type Plot struct {
	base
	fn         *psfunc.Function
	min, max   float64
	nbPoints   int
	parametric bool
	plotStyle  PlotStyle
}

func (*Plot) Kind() Kind { return KindPlot }

// Position returns the live origin of the plot.
func (p *Plot) Position() *geom.Point { return p.points[0] }

func (p *Plot) Function() *psfunc.Function { return p.fn }
func (p *Plot) Min() float64               { return p.min }
func (p *Plot) Max() float64               { return p.max }
func (p *Plot) NbPlottedPoints() int       { return p.nbPoints }
func (p *Plot) IsParametric() bool         { return p.parametric }
func (p *Plot) PlotStyle() PlotStyle       { return p.plotStyle }
func (p *Plot) SetPlotStyle(s PlotStyle)   { p.plotStyle = s }

// SetNbPlottedPoints ignores values outside [2, MaxPlotPoints].
func (p *Plot) SetNbPlottedPoints(n int) {
	if n >= 2 && n <= MaxPlotPoints {
		p.nbPoints = n
	}
}

// Sample evaluates the function and returns the unrotated points,
// in internal units.
func (p *Plot) Sample() ([]geom.Point, error) {
	out := make([]geom.Point, 0, p.nbPoints)
	step := (p.max - p.min) / float64(p.nbPoints-1)
	origin := p.points[0]
	for i := 0; i < p.nbPoints; i++ {
		t := p.min + float64(i)*step
		if i == p.nbPoints-1 {
			t = p.max
		}
		var x, y float64
		if p.parametric {
			vs, err := p.fn.EvalN(t, 2)
			if err != nil {
				return nil, fmt.Errorf("plot of %q at %g: %w", p.fn.Source, t, err)
			}
			x, y = vs[0], vs[1]
		} else {
			v, err := p.fn.Eval(t)
			if err != nil {
				return nil, fmt.Errorf("plot of %q at %g: %w", p.fn.Source, t, err)
			}
			x, y = t, v
		}
		if !geom.IsValidCoordinate(x) || !geom.IsValidCoordinate(y) {
			return nil, fmt.Errorf("plot of %q at %g: %w", p.fn.Source, t, psfunc.ErrRangeCheck)
		}
		out = append(out, geom.Point{X: origin.X + x*PPC, Y: origin.Y - y*PPC})
	}
	return out, nil
}

// samples ignores evaluation errors, falling back to the origin.
func (p *Plot) samples() []geom.Point {
	pts, err := p.Sample()
	if err != nil || len(pts) == 0 {
		return []geom.Point{*p.points[0]}
	}
	return pts
}

func (p *Plot) Bounds() geom.Rect { return geom.RectFromPoints(p.samples()...) }

func (p *Plot) GravityCentre() *geom.Point {
	c := p.Bounds().Centre()
	return &c
}

func (p *Plot) Rotate(pivot *geom.Point, theta float64) {
	p.rotate(p.GravityCentre(), pivot, theta)
}

// asFreehand returns an equivalent freehand shape, used
// for hit testing and paths.
func (p *Plot) asFreehand() *Freehand {
	f := &Freehand{base: base{rotation: p.rotation, style: p.style}, interval: 1, open: p.plotStyle != PlotPolygon}
	for _, pt := range p.samples() {
		f.points = append(f.points, geom.NewPoint(pt.X, pt.Y))
	}
	if p.plotStyle == PlotCurve {
		f.ftype = Curves
	}
	return f
}

func (p *Plot) Contains(x, y float64) bool  { return p.asFreehand().Contains(x, y) }
func (p *Plot) Intersects(r geom.Rect) bool { return p.asFreehand().Intersects(r) }

func (p *Plot) Path() Path {
	if p.plotStyle != PlotDots {
		return p.asFreehand().Path()
	}
	b := p.Bounds()
	a := &matrixAdder{M: p.matrix(b.Centre()), path: new(Path)}
	r := p.style.LineWidth
	for _, pt := range p.samples() {
		a.start(pt.X+r, pt.Y)
		a.ellipseArc(pt.X, pt.Y, r, r, 0, 2*math.Pi)
		a.close()
	}
	return *a.path
}

func (p *Plot) Copy(src Shape) {
	p.copyBase(src)
	if other, ok := src.(*Plot); ok {
		p.fn, p.min, p.max = other.fn, other.min, other.max
		p.nbPoints, p.parametric, p.plotStyle = other.nbPoints, other.parametric, other.plotStyle
	}
}

func (p *Plot) Clone() Shape {
	out := *p
	out.base = p.cloneBase()
	return &out
}
