package shape

import (
	"errors"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/benoitkugler/latexdraw/geom"
	"github.com/benoitkugler/latexdraw/psfunc"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fac = NewFactory()

func TestCircleConstructor(t *testing.T) {
	for _, tc := range []struct {
		centre *geom.Point
		radius float64
	}{
		{nil, 10},
		{geom.NewPoint(math.NaN(), 1), 10},
		{geom.NewPoint(1, math.Inf(-1)), 10},
		{geom.NewPoint(1, 1), -10},
		{geom.NewPoint(1, 1), 0},
	} {
		_, err := fac.NewCircle(tc.centre, tc.radius)
		assert.Error(t, err)
	}

	c, err := fac.NewCircle(geom.NewPoint(1, 2), 10)
	require.NoError(t, err)
	assert.Equal(t, KindCircle, c.Kind())
	assert.Equal(t, 4, c.NbPoints())
	assert.Equal(t, geom.Point{X: 1, Y: 2}, *c.GravityCentre())
	assert.Equal(t, 20., c.Width())
	assert.Equal(t, c.Width(), c.Height())
	assert.Equal(t, c.Rx(), c.Ry())
	assert.Equal(t, geom.Point{X: -9, Y: 12}, *c.Position())

	c.SetWidth(30)
	assert.Equal(t, 30., c.Height(), "a circle keeps its width and height equal")
}

func TestEllipseConstructor(t *testing.T) {
	_, err := fac.NewEllipse(geom.NewPoint(1, 0), geom.NewPoint(2, 0))
	assert.True(t, errors.Is(err, ErrInvalidDimension))
	_, err = fac.NewEllipse(geom.NewPoint(1, math.NaN()), geom.NewPoint(2, 0))
	assert.True(t, errors.Is(err, ErrInvalidPoint))

	e, err := fac.NewEllipse(geom.NewPoint(20, 26), geom.NewPoint(30, 35))
	require.NoError(t, err)
	assert.Equal(t, KindEllipse, e.Kind())
	assert.Equal(t, geom.Point{X: 20, Y: 35}, *e.Position())
	assert.Equal(t, 10., e.Width())
	assert.Equal(t, 9., e.Height())
}

func TestPointsOrder(t *testing.T) {
	r, err := fac.NewRectangle(geom.NewPoint(0, 0), geom.NewPoint(4, 2))
	require.NoError(t, err)
	var got []geom.Point
	for _, p := range r.Points() {
		got = append(got, *p)
	}
	want := []geom.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 0, Y: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected points (-want +got):\n%s", diff)
	}
}

func TestRotationAwareHitTest(t *testing.T) {
	r, err := fac.NewRectangle(geom.NewPoint(0, 0), geom.NewPoint(100, 10))
	require.NoError(t, err)
	assert.True(t, r.Contains(90, 5))

	r.Rotate(r.GravityCentre(), math.Pi/2)
	assert.InDelta(t, math.Pi/2, r.Rotation(), 1e-12)
	assert.Equal(t, geom.Point{X: 50, Y: 5}, *r.GravityCentre(), "rotating around the centre does not move the shape")

	assert.True(t, r.Contains(50, 40))
	assert.False(t, r.Contains(90, 5))
	assert.True(t, r.Intersects(geom.Rect{MinX: 48, MinY: -40, MaxX: 52, MaxY: -30}))
	assert.False(t, r.Intersects(geom.Rect{MinX: 80, MinY: 0, MaxX: 90, MaxY: 10}))

	b := RotatedBounds(r)
	assert.InDelta(t, 45, b.MinX, 1e-9)
	assert.InDelta(t, -45, b.MinY, 1e-9)
	assert.InDelta(t, 55, b.MaxX, 1e-9)
	assert.InDelta(t, 55, b.MaxY, 1e-9)
}

func TestRotationNormalised(t *testing.T) {
	r, _ := fac.NewRectangle(geom.NewPoint(0, 0), geom.NewPoint(1, 1))
	r.SetRotation(-math.Pi / 2)
	assert.InDelta(t, 3*math.Pi/2, r.Rotation(), 1e-12)
	r.SetRotation(math.NaN())
	assert.InDelta(t, 3*math.Pi/2, r.Rotation(), 1e-12)
	r.Rotate(geom.NewPoint(0, 0), math.Pi)
	assert.InDelta(t, math.Pi/2, r.Rotation(), 1e-12)
	assert.InDelta(t, -0.5, r.GravityCentre().X, 1e-9)
}

func TestWedgeContains(t *testing.T) {
	w, err := fac.NewArc(geom.NewPoint(0, 0), 10, 0, math.Pi/2, Wedge)
	require.NoError(t, err)
	assert.True(t, w.Contains(5, -5))
	assert.False(t, w.Contains(5, 5))

	// no ordering between the angles: 200° to 100° goes through 0°
	w.SetAngleStart(geom.Radians(200))
	w.SetAngleEnd(geom.Radians(100))
	assert.Equal(t, geom.Radians(200), w.AngleStart())
	assert.InDelta(t, geom.Radians(260), w.Sweep(), 1e-12)
	assert.True(t, w.Contains(2.5, 4.33))
	assert.False(t, w.Contains(-4.33, -2.5))
}

func TestChord(t *testing.T) {
	c, err := fac.NewArc(geom.NewPoint(0, 0), 10, 0, math.Pi/2, Chord)
	require.NoError(t, err)
	assert.Equal(t, "Chord", c.ArcStyle().String())
	assert.True(t, c.Contains(6, -6))
	assert.True(t, c.Contains(5, -5)) // on the chord
	assert.False(t, c.Contains(3, -3))
	assert.False(t, c.Contains(0, 0))

	p := c.Path()
	_, isMove := p[0].(MoveTo)
	assert.True(t, isMove)
	_, closed := p[len(p)-1].(Close)
	assert.True(t, closed)
}

func TestCopyCapabilities(t *testing.T) {
	text, err := fac.NewText(geom.NewPoint(0, 0), "hello")
	require.NoError(t, err)
	text.SetTextPosition(TextTopRight)
	text.Style().LineColor = color.RGBA{0xff, 0, 0, 0xff}

	other, _ := fac.NewText(geom.NewPoint(5, 5), "")
	assert.Equal(t, DefaultText, other.Text())
	other.Copy(text)
	assert.Equal(t, "hello", other.Text())
	assert.Equal(t, TextTopRight, other.TextPosition())
	assert.Equal(t, geom.Point{}, *other.Position())

	// a rectangle has no text: only the style is copied
	rect, _ := fac.NewRectangle(geom.NewPoint(0, 0), geom.NewPoint(4, 2))
	rect.Style().LineWidth = 7
	other.Copy(rect)
	assert.Equal(t, "hello", other.Text())
	assert.Equal(t, 7., other.Style().LineWidth)

	arc, _ := fac.NewArc(geom.NewPoint(0, 0), 1, 1, 2, ArcOpen)
	arc.Copy(rect)
	assert.Equal(t, 1., arc.AngleStart())
	assert.Equal(t, geom.Point{X: 4, Y: 2}, *arc.Points()[bottomRight])
}

func TestTextBounds(t *testing.T) {
	text, err := fac.NewText(geom.NewPoint(0, 0), "abc")
	require.NoError(t, err)
	assert.Equal(t, geom.Rect{MinX: 0, MinY: -13, MaxX: 21, MaxY: 0}, text.Bounds())
	text.SetTextPosition(TextCentre)
	assert.Equal(t, geom.Rect{MinX: -10.5, MinY: -6.5, MaxX: 10.5, MaxY: 6.5}, text.Bounds())
	text.SetTextPosition(TextTopRight)
	assert.Equal(t, geom.Rect{MinX: -21, MinY: 0, MaxX: 0, MaxY: 13}, text.Bounds())
}

func TestRefPoints(t *testing.T) {
	for pos := TextBottomLeft; pos <= TextTopRight; pos++ {
		got, ok := ParseRefPoint(pos.RefPoint())
		assert.True(t, ok)
		assert.Equal(t, pos, got)
	}
	got, ok := ParseRefPoint("rt")
	assert.True(t, ok)
	assert.Equal(t, TextTopRight, got)
	_, ok = ParseRefPoint("tb")
	assert.False(t, ok)
	_, ok = ParseRefPoint("x")
	assert.False(t, ok)
}

func TestGroupCycle(t *testing.T) {
	g, _ := fac.NewGroup()
	inner, _ := fac.NewGroup()
	require.NoError(t, g.Add(inner))
	assert.True(t, errors.Is(inner.Add(g), ErrCycle))
	assert.True(t, errors.Is(g.Add(g), ErrCycle))
}

func TestGroupTransforms(t *testing.T) {
	r, _ := fac.NewRectangle(geom.NewPoint(0, 0), geom.NewPoint(2, 2))
	c, _ := fac.NewCircle(geom.NewPoint(10, 0), 1)
	g, err := fac.NewGroup(r, c)
	require.NoError(t, err)
	assert.Equal(t, 8, g.NbPoints())
	assert.Equal(t, geom.Rect{MinX: 0, MinY: -1, MaxX: 11, MaxY: 2}, g.Bounds())

	g.Translate(1, 1)
	assert.Equal(t, geom.Point{X: 11, Y: 1}, *c.GravityCentre())

	g.Rotate(geom.NewPoint(1, 1), math.Pi)
	assert.InDelta(t, -9, c.GravityCentre().X, 1e-9)
	assert.InDelta(t, math.Pi, c.Rotation(), 1e-12)
	assert.True(t, g.Contains(-9, 1))
}

func TestFreehandSegments(t *testing.T) {
	var pts []*geom.Point
	for i := 0; i < 6; i++ {
		pts = append(pts, geom.NewPoint(float64(i*10), float64(i%2)))
	}
	f, err := fac.NewFreehand(pts, Lines, true)
	require.NoError(t, err)
	segs := f.Segments()
	require.Len(t, segs, 6)
	assert.Equal(t, SegMove, segs[0].Op)

	f.SetInterval(2)
	segs = f.Segments()
	// 0, 2, 4 then the last point
	require.Len(t, segs, 4)
	assert.Equal(t, geom.Point{X: 50, Y: 1}, segs[3].Pts[0])

	f.SetFreehandType(Curves)
	f.SetInterval(1)
	segs = f.Segments()
	assert.Equal(t, SegLine, segs[1].Op)
	assert.Equal(t, geom.Point{X: 5, Y: 0.5}, segs[1].Pts[0])
	// the smoothed curve stops at the last middle, then joins the last point
	curve := segs[len(segs)-2]
	assert.Equal(t, SegCurve, curve.Op)
	assert.Equal(t, geom.Point{X: 45, Y: 0.5}, curve.Pts[2])
	last := segs[len(segs)-1]
	assert.Equal(t, SegLine, last.Op)
	assert.Equal(t, geom.Point{X: 50, Y: 1}, last.Pts[0])

	assert.True(t, f.Contains(25, 0.5))
	assert.False(t, f.Contains(25, 30))
}

func TestPaths(t *testing.T) {
	r, _ := fac.NewRectangle(geom.NewPoint(0, 0), geom.NewPoint(4, 2))
	assert.Equal(t, "M0.000,0.000 L4.000,0.000 L4.000,2.000 L0.000,2.000 Z", r.Path().ToSVGPath())

	c, _ := fac.NewCircle(geom.NewPoint(0, 0), 10)
	svg := c.Path().ToSVGPath()
	assert.True(t, strings.HasPrefix(svg, "M10.000,0.000 C"))
	assert.NotContains(t, svg, "CC")

	b := c.Path().Bounds()
	assert.InDelta(t, -10, b.MinX, 0.05)
	assert.InDelta(t, 10, b.MaxY, 0.05)

	// a rotated square keeps its centre
	sq, _ := fac.NewSquare(geom.NewPoint(0, 0), 10)
	sq.SetRotation(math.Pi / 4)
	pb := sq.Path().Bounds()
	assert.InDelta(t, 5, pb.Centre().X, 0.05)
	assert.InDelta(t, 10*math.Sqrt2, pb.Width(), 0.05)
}

func TestEqualAndClone(t *testing.T) {
	shapes := []Shape{}
	r, _ := fac.NewRectangle(geom.NewPoint(0, 0), geom.NewPoint(4, 2))
	a, _ := fac.NewArc(geom.NewPoint(0, 0), 3, 1, 2, Wedge)
	tx, _ := fac.NewText(geom.NewPoint(1, 1), "x")
	f, _ := fac.NewFreehand([]*geom.Point{geom.NewPoint(0, 0), geom.NewPoint(1, 1)}, Curves, false)
	g, _ := fac.NewGroup(r.Clone(), tx.Clone())
	p, _ := fac.NewPlot(geom.NewPoint(0, 0), psfunc.MustParse("x 2 mul"), 0, 1, false)
	shapes = append(shapes, r, a, tx, f, g, p)

	for _, s := range shapes {
		cl := Clone(s)
		assert.True(t, Equal(s, cl), s.Kind().String())
		cl.Translate(1, 0)
		assert.False(t, Equal(s, cl), s.Kind().String())
	}

	a2 := a.Clone().(*Arc)
	a2.SetAngleEnd(3)
	assert.False(t, Equal(a, a2))
	assert.False(t, Equal(r, a))
	assert.True(t, Equal(nil, nil))
}

func TestPlotSample(t *testing.T) {
	p, err := fac.NewPlot(geom.NewPoint(0, 0), psfunc.MustParse("x 2 mul"), 0, 2, false)
	require.NoError(t, err)
	p.SetNbPlottedPoints(3)
	pts, err := p.Sample()
	require.NoError(t, err)
	want := []geom.Point{{X: 0, Y: 0}, {X: PPC, Y: -2 * PPC}, {X: 2 * PPC, Y: -4 * PPC}}
	if diff := cmp.Diff(want, pts); diff != "" {
		t.Fatalf("unexpected samples (-want +got):\n%s", diff)
	}

	bad, _ := fac.NewPlot(geom.NewPoint(0, 0), psfunc.MustParse("1 x div"), -1, 1, false)
	bad.SetNbPlottedPoints(3)
	_, err = bad.Sample()
	assert.True(t, errors.Is(err, psfunc.ErrDivisionByZero))

	_, err = fac.NewPlot(geom.NewPoint(0, 0), psfunc.MustParse("x"), 1, 1, false)
	assert.Error(t, err)
}

func TestDrawing(t *testing.T) {
	d := NewDrawing()
	assert.True(t, d.IsEmpty())
	r, _ := fac.NewRectangle(geom.NewPoint(0, 0), geom.NewPoint(10, 10))
	c, _ := fac.NewCircle(geom.NewPoint(5, 5), 2)
	d.Add(r)
	d.Add(c)
	d.Add(nil)
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, 1, d.HitTest(5, 5))
	assert.Equal(t, 0, d.HitTest(9, 9))
	assert.Equal(t, -1, d.HitTest(50, 50))
	assert.Equal(t, []int{0}, d.Select(geom.Rect{MinX: 9, MinY: 9, MaxX: 20, MaxY: 20}))
	assert.Equal(t, r, d.Remove(0))
	assert.Nil(t, d.ShapeAt(3))
}
