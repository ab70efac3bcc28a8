// Package pdfdraw renders drawings as PDF documents, on top
// of github.com/jung-kurt/gofpdf.
package pdfdraw

import (
	"image/color"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/latexdraw/draw"
	"github.com/benoitkugler/latexdraw/geom"
	"github.com/benoitkugler/latexdraw/shape"
)

var (
	_ draw.Driver     = (*Renderer)(nil)
	_ draw.TextDriver = (*Renderer)(nil)
	_ draw.Filler     = (*filler)(nil)
	_ draw.Stroker    = (*stroker)(nil)
)

// PtPerUnit converts drawing units into PDF points.
const PtPerUnit = 72 / 2.54 / shape.PPC

// Renderer paints on the current page of a gofpdf document,
// whose unit must be the point.
type Renderer struct {
	pdf    *gofpdf.Fpdf
	extent geom.Rect // of the painted paths
	inked  bool
}

func NewRenderer(pdf *gofpdf.Fpdf) *Renderer {
	return &Renderer{pdf: pdf}
}

// Extent returns the bounding box of the paths painted so far,
// and false if nothing was painted.
func (r *Renderer) Extent() (geom.Rect, bool) { return r.extent, r.inked }

func (r *Renderer) SetupDrawers(willFill, willStroke bool) (draw.Filler, draw.Stroker) {
	var (
		f *filler
		s *stroker
	)
	if willFill {
		f = &filler{painting: painting{r: r}}
	}
	if willStroke {
		s = &stroker{painting: painting{r: r}, filler: f}
		if f != nil {
			// one "FD" operator paints both
			f.paired = true
		}
	}
	// avoid non nil interfaces holding nil pointers
	switch {
	case f != nil && s != nil:
		return f, s
	case f != nil:
		return f, nil
	case s != nil:
		return nil, s
	}
	return nil, nil
}

// DrawText writes text with the current font.
func (r *Renderer) DrawText(text string, x, y, theta float64, c color.RGBA) {
	r.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
	if geom.EqualsDouble(theta, 0) {
		r.pdf.Text(x, y, text)
		return
	}
	r.pdf.TransformBegin()
	// gofpdf angles are counter clockwise
	r.pdf.TransformRotate(-geom.Degrees(theta), x, y)
	r.pdf.Text(x, y, text)
	r.pdf.TransformEnd()
}

// pen writes path operations to the document.
type pen struct{ pdf *gofpdf.Fpdf }

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p pen) Start(a fixed.Point26_6) { p.pdf.MoveTo(fixedTof(a)) }
func (p pen) Line(b fixed.Point26_6)  { p.pdf.LineTo(fixedTof(b)) }

func (p pen) QuadBezier(b, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.CurveTo(cx, cy, x, y)
}

func (p pen) CubeBezier(b, c, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p pen) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

// painting buffers the operations of one path until Draw.
type painting struct {
	shape.Path
	r *Renderer
}

func (p *painting) Clear() { p.Path = p.Path[:0] }

// emit writes the buffered path and paints it with the given
// gofpdf style, recording its extent widened by margin.
func (p *painting) emit(style string, margin float64) {
	if len(p.Path) == 0 {
		return
	}
	p.Path.AddTo(pen{p.r.pdf})
	p.r.pdf.DrawPath(style)

	b := p.Path.Bounds().Grow(margin)
	if p.r.inked {
		p.r.extent = p.r.extent.Union(b)
	} else {
		p.r.extent, p.r.inked = b, true
	}
}

type filler struct {
	painting
	nonZero bool
	paired  bool // the stroker paints the path
}

func (f *filler) SetColor(c color.RGBA) {
	f.r.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	f.r.pdf.SetAlpha(float64(c.A)/255, "Normal")
}

func (f *filler) SetWinding(useNonZeroWinding bool) { f.nonZero = useNonZeroWinding }

func (f *filler) Draw() {
	if f.paired {
		return
	}
	if f.nonZero {
		f.emit("F", 0)
	} else {
		f.emit("F*", 0)
	}
}

type stroker struct {
	painting
	filler *filler // nil for a stroke only painting
}

func (s *stroker) SetStrokeOptions(options draw.StrokeOptions) {
	pdf := s.r.pdf
	pdf.SetLineWidth(float64(options.LineWidth) / 64)
	pdf.SetLineCapStyle(capStyles[options.Cap])
	pdf.SetLineJoinStyle(joinStyles[options.Join])
	pdf.SetDashPattern(options.Dash.Dash, options.Dash.DashOffset)
}

var (
	capStyles  = [...]string{draw.ButtCap: "butt", draw.SquareCap: "square", draw.RoundCap: "round"}
	joinStyles = [...]string{draw.Round: "round", draw.Bevel: "bevel", draw.Miter: "miter"}
)

func (s *stroker) SetColor(c color.RGBA) {
	s.r.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	s.r.pdf.SetAlpha(float64(c.A)/255, "Normal")
}

func (s *stroker) Draw() {
	style := "D"
	if s.filler != nil {
		style = "FD*"
		if s.filler.nonZero {
			style = "FD"
		}
	}
	s.emit(style, s.r.pdf.GetLineWidth()/2)
}

// Options tunes the PDF output of a drawing.
type Options struct {
	// Margin around the drawing, in points.
	Margin float64
}

// Write renders d in a one page PDF sized to its bounds.
func Write(w io.Writer, d *shape.Drawing, opts Options) error {
	b := d.Bounds()
	if d.IsEmpty() {
		b = geom.Rect{}
	}
	width := b.Width()*PtPerUnit + 2*opts.Margin
	height := b.Height()*PtPerUnit + 2*opts.Margin
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: math.Max(width, 1), Ht: math.Max(height, 1)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 10)

	// gofpdf uses a y-down space, as the drawing does
	m := geom.Identity.Translate(opts.Margin, opts.Margin).
		Scale(PtPerUnit, PtPerUnit).
		Translate(-b.MinX, -b.MinY)
	draw.Drawing(NewRenderer(pdf), d, m)
	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
