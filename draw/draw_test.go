package draw

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/latexdraw/geom"
	"github.com/benoitkugler/latexdraw/shape"
)

// recorder logs the paintings it receives.
type recorder struct {
	paintings []painting
	texts     []string
}

type painting struct {
	fill    bool
	colour  color.RGBA
	opts    StrokeOptions
	start   fixed.Point26_6
	nbOps   int
	closed  bool
	winding bool
}

type recordDrawer struct {
	r   *recorder
	cur painting
}

func (d *recordDrawer) Clear()                             { d.cur = painting{fill: d.cur.fill} }
func (d *recordDrawer) Start(a fixed.Point26_6)            { d.cur.start = a; d.cur.nbOps++ }
func (d *recordDrawer) Line(b fixed.Point26_6)             { d.cur.nbOps++ }
func (d *recordDrawer) QuadBezier(b, c fixed.Point26_6)    { d.cur.nbOps++ }
func (d *recordDrawer) CubeBezier(b, c, e fixed.Point26_6) { d.cur.nbOps++ }
func (d *recordDrawer) Stop(closeLoop bool)                { d.cur.closed = d.cur.closed || closeLoop }
func (d *recordDrawer) SetColor(c color.RGBA)              { d.cur.colour = c }
func (d *recordDrawer) Draw()                              { d.r.paintings = append(d.r.paintings, d.cur) }
func (d *recordDrawer) SetWinding(w bool)                  { d.cur.winding = w }
func (d *recordDrawer) SetStrokeOptions(o StrokeOptions)   { d.cur.opts = o }

func (r *recorder) SetupDrawers(willFill, willStroke bool) (f Filler, s Stroker) {
	if willFill {
		f = &recordDrawer{r: r, cur: painting{fill: true}}
	}
	if willStroke {
		s = &recordDrawer{r: r}
	}
	return f, s
}

func (r *recorder) DrawText(text string, x, y, theta float64, c color.RGBA) {
	r.texts = append(r.texts, text)
}

func TestFillThenStroke(t *testing.T) {
	f := shape.NewFactory()
	rect, err := f.NewRectangle(geom.NewPoint(0, 0), geom.NewPoint(100, 50))
	require.NoError(t, err)
	st := rect.Style()
	st.FillStyle = shape.SolidFill
	st.FillColor = color.RGBA{0xff, 0, 0, 0xff}
	st.LineWidth = 4

	var r recorder
	Shape(&r, rect, geom.Identity.Scale(2, 2))
	require.Len(t, r.paintings, 2)
	fill, line := r.paintings[0], r.paintings[1]
	assert.True(t, fill.fill)
	assert.True(t, fill.winding)
	assert.Equal(t, st.FillColor, fill.colour)
	assert.True(t, fill.closed)
	assert.False(t, line.fill)
	assert.Equal(t, st.LineColor, line.colour)
	assert.Equal(t, fixed.Int26_6(8*64), line.opts.LineWidth)
	assert.Empty(t, line.opts.Dash.Dash)
}

func TestNoLine(t *testing.T) {
	c, err := shape.NewFactory().NewCircle(geom.NewPoint(0, 0), 10)
	require.NoError(t, err)
	c.Style().LineStyle = shape.NoLine

	var r recorder
	Shape(&r, c, geom.Identity)
	assert.Empty(t, r.paintings)
}

func TestDashes(t *testing.T) {
	c, err := shape.NewFactory().NewCircle(geom.NewPoint(0, 0), 10)
	require.NoError(t, err)
	c.Style().LineStyle = shape.DashedLine

	var r recorder
	Shape(&r, c, geom.Identity)
	require.Len(t, r.paintings, 1)
	assert.Equal(t, []float64{shape.DefaultDashBlack, shape.DefaultDashWhite}, r.paintings[0].opts.Dash.Dash)
}

func TestShadow(t *testing.T) {
	rect, err := shape.NewFactory().NewRectangle(geom.NewPoint(0, 0), geom.NewPoint(10, 10))
	require.NoError(t, err)
	st := rect.Style()
	st.Shadow = true
	st.ShadowAngle = 0
	st.ShadowSize = 5

	var r recorder
	Shape(&r, rect, geom.Identity)
	// shadow fill and stroke, then the shape stroke
	require.Len(t, r.paintings, 3)
	assert.Equal(t, st.ShadowColor, r.paintings[0].colour)
	assert.Equal(t, st.ShadowColor, r.paintings[1].colour)
	assert.Equal(t, st.LineColor, r.paintings[2].colour)
	assert.Equal(t, r.paintings[2].start.X+5*64, r.paintings[0].start.X)
	assert.Equal(t, r.paintings[2].start.Y, r.paintings[0].start.Y)

	dx, dy := shadowOffset(&shape.Style{ShadowSize: 2, ShadowAngle: -90})
	assert.InDelta(t, 0, dx, 1e-9)
	assert.InDelta(t, 2, dy, 1e-9)
}

func TestGroupAndText(t *testing.T) {
	f := shape.NewFactory()
	c, err := f.NewCircle(geom.NewPoint(0, 0), 10)
	require.NoError(t, err)
	text, err := f.NewText(geom.NewPoint(0, 0), "label")
	require.NoError(t, err)
	g, err := f.NewGroup(c, text)
	require.NoError(t, err)

	d := shape.NewDrawing()
	d.Add(g)
	var r recorder
	Drawing(&r, d, geom.Identity)
	assert.Len(t, r.paintings, 1)
	assert.Equal(t, []string{"label"}, r.texts)
}
