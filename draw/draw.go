// Package draw reduces shapes to painting orders sent to a Driver
// (the rasterizer of the raster package, the PDF writer of pdfdraw).
//
// Drivers only see device coordinates: the shape rotation and the
// drawing transform are applied before the points reach them.
package draw

import (
	"image/color"
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/latexdraw/geom"
	"github.com/benoitkugler/latexdraw/shape"
)

// Drawer receives the path operations of one painting.
type Drawer interface {
	shape.Drawer

	// Clear forgets the operations of the previous painting.
	Clear()
	SetColor(c color.RGBA)
	// Draw paints the operations received since Clear.
	Draw()
}

type Filler interface {
	Drawer
	// SetWinding selects the non-zero (true) or even-odd rule.
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer
	SetStrokeOptions(options StrokeOptions)
}

// Driver is a painting backend.
type Driver interface {
	// SetupDrawers is called once per painting. A drawer is nil when
	// its will flag is false. When both are requested, the Stroker
	// receives the same operations as the Filler, after it.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

// TextDriver is implemented by drivers able to write texts.
// Other drivers skip the texts.
type TextDriver interface {
	// DrawText writes text with its baseline starting at (x, y),
	// rotated by theta radians around that point.
	DrawText(text string, x, y, theta float64, c color.RGBA)
}

// DashOptions is the dash pattern of a stroke, in device units.
// An empty Dash means a solid line.
type DashOptions struct {
	Dash       []float64
	DashOffset float64
}

type JoinMode uint8

const (
	Round JoinMode = iota
	Bevel
	Miter
)

type CapMode uint8

const (
	ButtCap CapMode = iota
	SquareCap
	RoundCap
)

type StrokeOptions struct {
	LineWidth  fixed.Int26_6
	MiterLimit fixed.Int26_6
	Join       JoinMode
	Cap        CapMode
	Dash       DashOptions
}

// PSTricks draws with miter joins and butt caps.
var defaultJoin = struct {
	miterLimit fixed.Int26_6
	join       JoinMode
	cap        CapMode
}{miterLimit: 4 * 64, join: Miter, cap: ButtCap}

// Drawing paints every shape of d, mapping the drawing
// coordinates with m.
func Drawing(drv Driver, d *shape.Drawing, m geom.Matrix2D) {
	for _, s := range d.Shapes() {
		Shape(drv, s, m)
	}
}

// Shape paints s: its shadow, then its interior, then its border.
func Shape(drv Driver, s shape.Shape, m geom.Matrix2D) {
	switch s := s.(type) {
	case *shape.Group:
		for _, child := range s.Shapes() {
			Shape(drv, child, m)
		}
		return
	case *shape.Text:
		drawText(drv, s, m)
		return
	}
	sh, ok := s.(shape.Styled)
	if !ok {
		return
	}
	st := sh.Style()
	path := s.Path()
	if len(path) == 0 {
		return
	}
	scale := lengthScale(m)

	if st.Shadow {
		dx, dy := shadowOffset(st)
		shadow := path.Transform(m.Translate(dx, dy))
		paint(drv, shadow, st.IsFilled() || isClosed(path), st.IsStroked(), st.ShadowColor, st.ShadowColor, stroke(st, scale))
	}
	paint(drv, path.Transform(m), st.IsFilled(), st.IsStroked(), st.FillColor, st.LineColor, stroke(st, scale))
}

// paint sends path to the drawers of drv.
func paint(drv Driver, path shape.Path, fill, line bool, fillColor, lineColor color.RGBA, opts StrokeOptions) {
	filler, stroker := drv.SetupDrawers(fill, line)
	if filler != nil {
		filler.Clear()
		filler.SetWinding(true)
		path.AddTo(filler)
		filler.SetColor(fillColor)
		filler.Draw()
	}
	if stroker != nil {
		stroker.Clear()
		stroker.SetStrokeOptions(opts)
		path.AddTo(stroker)
		stroker.SetColor(lineColor)
		stroker.Draw()
	}
}

func stroke(st *shape.Style, scale float64) StrokeOptions {
	opts := StrokeOptions{
		LineWidth:  fixed.Int26_6(st.LineWidth * scale * 64),
		MiterLimit: defaultJoin.miterLimit,
		Join:       defaultJoin.join,
		Cap:        defaultJoin.cap,
	}
	for _, v := range st.Dashes() {
		opts.Dash.Dash = append(opts.Dash.Dash, v*scale)
	}
	return opts
}

// shadowOffset returns the translation of the shadow, in the
// y-down drawing space.
func shadowOffset(st *shape.Style) (dx, dy float64) {
	s, c := math.Sincos(geom.Radians(st.ShadowAngle))
	return st.ShadowSize * c, -st.ShadowSize * s
}

// lengthScale returns the mean scaling factor of m.
func lengthScale(m geom.Matrix2D) float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

func isClosed(p shape.Path) bool {
	_, ok := p[len(p)-1].(shape.Close)
	return ok
}

func drawText(drv Driver, t *shape.Text, m geom.Matrix2D) {
	td, ok := drv.(TextDriver)
	if !ok {
		return
	}
	b := t.Bounds()
	var descent float64
	if face := t.Face(); face != nil {
		descent = float64(face.Metrics().Descent) / 64
	}
	// rotation around the centre of the frame, as shapes do
	local := geom.Identity.RotateAround(t.Rotation(), b.Centre().X, b.Centre().Y)
	x, y := m.Mult(local).Transform(b.MinX, b.MaxY-descent)
	vx, vy := m.Mult(local).TransformVector(1, 0)
	td.DrawText(t.Text(), x, y, math.Atan2(vy, vx), t.Style().LineColor)
}
