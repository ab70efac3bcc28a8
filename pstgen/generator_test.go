package pstgen

import (
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/latexdraw/geom"
	"github.com/benoitkugler/latexdraw/psfunc"
	"github.com/benoitkugler/latexdraw/pst"
	"github.com/benoitkugler/latexdraw/shape"
)

const ppc = shape.PPC

var factory = shape.NewFactory()

func pt(x, y float64) *geom.Point { return geom.NewPoint(x*ppc, -y*ppc) }

// reparse parses code which must give exactly one shape.
func reparse(t *testing.T, code string) shape.Shape {
	t.Helper()
	d, log, err := pst.NewParser(pst.Options{Mode: pst.IgnoreErrorMode}).Parse(code)
	require.NoError(t, err, code)
	require.True(t, log.Empty(), log.Error())
	require.Equal(t, 1, d.Len(), code)
	return d.ShapeAt(0)
}

func assertPointsClose(t *testing.T, exp, got shape.Shape) {
	t.Helper()
	pe, pg := exp.Points(), got.Points()
	require.Len(t, pg, len(pe))
	for i := range pe {
		assert.InDelta(t, pe[i].X, pg[i].X, 1e-3, "point %d", i)
		assert.InDelta(t, pe[i].Y, pg[i].Y, 1e-3, "point %d", i)
	}
}

func TestNum(t *testing.T) {
	g := New(Options{})
	for _, test := range []struct {
		in  float64
		exp string
	}{
		{0, "0"},
		{1e-12, "0"},
		{-0.00001, "0"},
		{1, "1"},
		{-2.5, "-2.5"},
		{1. / 3, "0.3333"},
		{123.456789, "123.4568"},
	} {
		assert.Equal(t, test.exp, g.num(test.in), "%v", test.in)
	}
	g = New(Options{Precision: 1})
	assert.Equal(t, "0.3", g.num(1./3))
}

func TestRectangleCode(t *testing.T) {
	r, err := factory.NewRectangle(pt(1, 3), pt(4, 1))
	require.NoError(t, err)
	g := New(Options{})
	assert.Equal(t, `\psframe[linecolor=black, linewidth=0.04](1,1)(4,3)`, g.ShapeCode(r))

	got := reparse(t, g.ShapeCode(r))
	assertPointsClose(t, r, got)
}

func TestRoundTrip(t *testing.T) {
	circle, err := factory.NewCircle(pt(1, 1), 2*ppc)
	require.NoError(t, err)
	ellipse, err := factory.NewEllipse(pt(-1, 2), pt(3, 0))
	require.NoError(t, err)
	triangle, err := factory.NewTriangle(pt(0, 2), pt(2, 0))
	require.NoError(t, err)
	wedge, err := factory.NewArc(pt(0, 0), ppc, geom.Radians(30), geom.Radians(120), shape.Wedge)
	require.NoError(t, err)
	arc, err := factory.NewArc(pt(1, 1), 2*ppc, 0, geom.Radians(90), shape.ArcOpen)
	require.NoError(t, err)
	line, err := factory.NewFreehand([]*geom.Point{pt(0, 0), pt(1, 1), pt(2, 0)}, shape.Lines, true)
	require.NoError(t, err)

	g := New(Options{})
	for _, s := range []shape.Shape{circle, ellipse, triangle, wedge, arc, line} {
		code := g.ShapeCode(s)
		got := reparse(t, code)
		assert.Equal(t, s.Kind(), got.Kind(), code)
		assertPointsClose(t, s, got)
		if a, ok := s.(shape.Arcer); ok {
			b := got.(shape.Arcer)
			assert.InDelta(t, a.AngleStart(), b.AngleStart(), 1e-6)
			assert.InDelta(t, a.AngleEnd(), b.AngleEnd(), 1e-6)
			assert.Equal(t, a.ArcStyle(), b.ArcStyle())
		}
	}
}

// assertSameShape is a tolerant shape.Equal: the generated numbers are
// rounded, so coordinates and dimensions are compared with a delta.
func assertSameShape(t *testing.T, exp, got shape.Shape) {
	t.Helper()
	require.Equal(t, exp.Kind(), got.Kind())
	if ge, ok := exp.(shape.Container); ok {
		se, sg := ge.Shapes(), got.(shape.Container).Shapes()
		require.Len(t, sg, len(se))
		for i := range se {
			assertSameShape(t, se[i], sg[i])
		}
		return
	}
	assertPointsClose(t, exp, got)
	if re, ok := exp.(shape.Rotatable); ok {
		assert.InDelta(t, re.Rotation(), got.(shape.Rotatable).Rotation(), 1e-6)
	}
	if se, ok := exp.(shape.Styled); ok {
		approx := cmpopts.EquateApprox(0, 1e-6)
		if diff := cmp.Diff(*se.Style(), *got.(shape.Styled).Style(), approx); diff != "" {
			t.Errorf("unexpected style (-want +got):\n%s", diff)
		}
	}
	if te, ok := exp.(shape.Texter); ok {
		tg := got.(shape.Texter)
		assert.Equal(t, te.Text(), tg.Text())
		assert.Equal(t, te.TextPosition(), tg.TextPosition())
	}
	if ae, ok := exp.(shape.Arcer); ok {
		ag := got.(shape.Arcer)
		assert.InDelta(t, ae.AngleStart(), ag.AngleStart(), 1e-6)
		assert.InDelta(t, ae.AngleEnd(), ag.AngleEnd(), 1e-6)
		assert.Equal(t, ae.ArcStyle(), ag.ArcStyle())
	}
}

func TestRoundTripAttributes(t *testing.T) {
	g := New(Options{})
	roundTrip := func(s shape.Shape) shape.Shape {
		t.Helper()
		code := g.ColourDefinitions(s) + g.ShapeCode(s)
		d, log, err := pst.NewParser(pst.Options{Mode: pst.StrictErrorMode}).Parse(code)
		require.NoError(t, err, code)
		require.True(t, log.Empty(), log.Error())
		require.Equal(t, 1, d.Len(), code)
		return d.ShapeAt(0)
	}

	chord, err := factory.NewArc(pt(1, 1), 2*ppc, geom.Radians(20), geom.Radians(160), shape.Chord)
	require.NoError(t, err)
	assertSameShape(t, chord, roundTrip(chord))

	rotated, err := factory.NewRectangle(pt(0, 2), pt(3, 0))
	require.NoError(t, err)
	rotated.Rotate(rotated.GravityCentre(), geom.Radians(60))
	assertSameShape(t, rotated, roundTrip(rotated))

	text, err := factory.NewText(pt(-1, 2), "hello world")
	require.NoError(t, err)
	text.SetTextPosition(shape.TextTopLeft)
	text.SetRotation(-geom.Radians(30))
	text.Style().LineColor = color.RGBA{0x20, 0x40, 0x60, 0xff}
	assertSameShape(t, text, roundTrip(text))

	styled, err := factory.NewRectangle(pt(0, 1), pt(2, 0))
	require.NoError(t, err)
	st := styled.Style()
	st.LineStyle = shape.DashedLine
	st.LineWidth = 0.1 * ppc
	st.LineColor = color.RGBA{0xff, 0, 0, 0xff}
	st.FillStyle = shape.SolidFill
	st.FillColor = color.RGBA{0x10, 0x20, 0x30, 0xff}
	st.Shadow = true
	st.ShadowSize = 0.2 * ppc
	st.ShadowAngle = 45
	assertSameShape(t, styled, roundTrip(styled))

	c1, err := factory.NewCircle(pt(0, 0), ppc)
	require.NoError(t, err)
	c1.Style().LineStyle = shape.DottedLine
	tri, err := factory.NewTriangle(pt(2, 2), pt(4, 0))
	require.NoError(t, err)
	group, err := factory.NewGroup(c1, tri, chord.Clone())
	require.NoError(t, err)
	assertSameShape(t, group, roundTrip(group))

	// lossy: a square is written as \psframe and read back as a rectangle
	square, err := factory.NewSquare(pt(0, 2), 2*ppc)
	require.NoError(t, err)
	got := roundTrip(square)
	assert.Equal(t, shape.KindRectangle, got.Kind())
	assertPointsClose(t, square, got)

	// lossy: arrows are accepted by the parser but not modelled
	d, log, err := pst.NewParser(pst.Options{Mode: pst.StrictErrorMode}).Parse(`\psline{->}(0,0)(1,1)`)
	require.NoError(t, err)
	require.True(t, log.Empty())
	require.Equal(t, 1, d.Len())
	assert.NotContains(t, g.ShapeCode(d.ShapeAt(0)), "->")
}

func TestChordCode(t *testing.T) {
	chord, err := factory.NewArc(pt(0, 0), ppc, 0, geom.Radians(90), shape.Chord)
	require.NoError(t, err)
	assert.Equal(t, `\pscustom[linecolor=black, linewidth=0.04]{\psarc(0,0){1}{0}{90}\closepath}`, New(Options{}).ShapeCode(chord))
}

func TestStyleCode(t *testing.T) {
	r, err := factory.NewRectangle(pt(0, 1), pt(1, 0))
	require.NoError(t, err)
	st := r.Style()
	st.LineStyle = shape.DashedLine
	st.FillStyle = shape.SolidFill
	st.FillColor = color.RGBA{0x10, 0x20, 0x30, 0xff}
	st.Shadow = true
	st.ShadowSize = 0.2 * ppc

	g := New(Options{})
	code := g.ShapeCode(r)
	assert.Contains(t, code, "linestyle=dashed")
	assert.Contains(t, code, "fillstyle=solid, fillcolor=userColour1")
	assert.Contains(t, code, "shadow=true, shadowsize=0.2")
	assert.NotContains(t, code, "shadowangle")

	defs := g.ColourDefinitions(r)
	assert.Equal(t, "\\newrgbcolor{userColour1}{0.063 0.125 0.188}\n", defs)

	p := pst.NewParser(pst.Options{Mode: pst.IgnoreErrorMode})
	d, log, err := p.Parse(defs + code)
	require.NoError(t, err)
	require.True(t, log.Empty(), log.Error())
	require.Equal(t, 1, d.Len())
	got := d.ShapeAt(0).(shape.Styled).Style()
	assert.Equal(t, shape.DashedLine, got.LineStyle)
	assert.Equal(t, st.FillColor, got.FillColor)
	assert.True(t, got.Shadow)
	assert.InDelta(t, st.ShadowSize, got.ShadowSize, 1e-9)
}

func TestRotatedShape(t *testing.T) {
	r, err := factory.NewRectangle(pt(0, 2), pt(2, 0))
	require.NoError(t, err)
	r.Rotate(r.GravityCentre(), -geom.Radians(30))

	g := New(Options{})
	code := g.ShapeCode(r)
	assert.True(t, strings.HasPrefix(code, `\rotate{30}{\psframe`), code)

	got := reparse(t, code)
	assert.InDelta(t, r.Rotation(), got.(shape.Rotatable).Rotation(), 1e-6)
	assertPointsClose(t, r, got)
}

func TestTextCode(t *testing.T) {
	text, err := factory.NewText(pt(1, 2), "hello")
	require.NoError(t, err)
	g := New(Options{})
	assert.Equal(t, `\rput[bl](1,2){hello}`, g.ShapeCode(text))

	text.SetTextPosition(shape.TextTopLeft)
	text.SetRotation(-geom.Radians(45))
	text.Style().LineColor = color.RGBA{0xff, 0, 0, 0xff}
	code := g.ShapeCode(text)
	assert.Equal(t, `\rput[tl]{45}(1,2){\textcolor{red}{hello}}`, code)

	got := reparse(t, code).(*shape.Text)
	assert.Equal(t, "hello", got.Text())
	assert.Equal(t, text.TextPosition(), got.TextPosition())
	assert.InDelta(t, text.Rotation(), got.Rotation(), 1e-6)
	assert.Equal(t, text.Style().LineColor, got.Style().LineColor)
}

func TestFreehandCode(t *testing.T) {
	f, err := factory.NewFreehand([]*geom.Point{pt(0, 0), pt(1, 0), pt(1, 1)}, shape.Lines, false)
	require.NoError(t, err)
	g := New(Options{})
	code := g.ShapeCode(f)
	assert.Equal(t, "\\pscustom[linecolor=black, linewidth=0.04]\n{\n\\newpath\n\\moveto(0,0)\n\\lineto(1,0)\n\\lineto(1,1)\n\\closepath\n}", code)

	got := reparse(t, code)
	assertPointsClose(t, f, got)
	assert.False(t, got.(shape.Sampler).IsOpen())

	single, err := factory.NewFreehand([]*geom.Point{pt(0, 0)}, shape.Lines, true)
	require.NoError(t, err)
	assert.Empty(t, g.ShapeCode(single))
}

func TestPlotCode(t *testing.T) {
	fn, err := psfunc.Parse("x 2 mul", nil)
	require.NoError(t, err)
	p, err := factory.NewPlot(pt(0, 0), fn, -1, 3, false)
	require.NoError(t, err)
	p.SetNbPlottedPoints(10)
	p.SetPlotStyle(shape.PlotDots)

	g := New(Options{})
	code := g.ShapeCode(p)
	assert.Equal(t, `\psplot[linecolor=black, linewidth=0.04, plotpoints=10, plotstyle=dots]{-1}{3}{x 2 mul}`, code)

	got := reparse(t, code).(*shape.Plot)
	assert.Equal(t, 10, got.NbPlottedPoints())
	assert.Equal(t, shape.PlotDots, got.PlotStyle())
	assert.Equal(t, -1., got.Min())
	assert.Equal(t, 3., got.Max())

	p.Translate(ppc, -ppc)
	code = g.ShapeCode(p)
	assert.True(t, strings.HasPrefix(code, `\rput(1,1){\psplot`), code)
	got = reparse(t, code).(*shape.Plot)
	assert.InDelta(t, ppc, got.Position().X, 1e-6)
	assert.InDelta(t, -ppc, got.Position().Y, 1e-6)
}

func TestGroupCode(t *testing.T) {
	c1, err := factory.NewCircle(pt(0, 0), ppc)
	require.NoError(t, err)
	c2, err := factory.NewCircle(pt(3, 0), ppc)
	require.NoError(t, err)
	gr, err := factory.NewGroup(c1, c2)
	require.NoError(t, err)

	g := New(Options{})
	code := g.ShapeCode(gr)
	assert.True(t, strings.HasPrefix(code, "{\n\\pscircle"), code)
	got := reparse(t, code)
	require.Equal(t, shape.KindGroup, got.Kind())
	assert.Equal(t, 2, got.(*shape.Group).Len())

	empty, err := factory.NewGroup()
	require.NoError(t, err)
	assert.Empty(t, g.ShapeCode(empty))
}

func TestMemoization(t *testing.T) {
	c, err := factory.NewCircle(pt(0, 0), ppc)
	require.NoError(t, err)
	g := New(Options{})

	first := g.ShapeCode(c)
	assert.Equal(t, first, g.ShapeCode(c))
	assert.Equal(t, 1, g.Generations())

	c.Style().LineColor = color.RGBA{0, 0, 0xff, 0xff}
	second := g.ShapeCode(c)
	assert.NotEqual(t, first, second)
	assert.Contains(t, second, "linecolor=blue")
	assert.Equal(t, 2, g.Generations())

	c.Translate(ppc, 0)
	assert.Contains(t, g.ShapeCode(c), "(1,0)")
	assert.Equal(t, 3, g.Generations())

	g.Forget(c)
	g.ShapeCode(c)
	assert.Equal(t, 4, g.Generations())
}

func TestDrawingCode(t *testing.T) {
	g := New(Options{})
	assert.Empty(t, g.DrawingCode(shape.NewDrawing()))

	r, err := factory.NewRectangle(pt(0, 2), pt(3, 0))
	require.NoError(t, err)
	r.Style().LineColor = color.RGBA{0x11, 0x22, 0x33, 0xff}
	d := shape.NewDrawing()
	d.Add(r)

	code := g.DrawingCode(d)
	lines := strings.Split(code, "\n")
	require.GreaterOrEqual(t, len(lines), 6)
	assert.True(t, strings.HasPrefix(lines[0], `\newrgbcolor{userColour1}`))
	assert.True(t, strings.HasPrefix(lines[1], `\psscalebox{1.0 1.0}`))
	assert.Contains(t, code, "\\begin{pspicture}")
	assert.Contains(t, code, "\\end{pspicture}\n}\n")

	got, log, err := pst.NewParser(pst.Options{Mode: pst.IgnoreErrorMode}).Parse(code)
	require.NoError(t, err)
	assert.True(t, log.Empty(), log.Error())
	require.Equal(t, 1, got.Len())
	assertPointsClose(t, r, got.ShapeAt(0))
	b := got.Bounds()
	assert.False(t, math.IsInf(b.MinX, 0))
}
