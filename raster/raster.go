// Package raster implements a raster backend to preview drawings,
// by wrapping rasterx.
package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	ldraw "github.com/benoitkugler/latexdraw/draw"
	"github.com/benoitkugler/latexdraw/geom"
	"github.com/benoitkugler/latexdraw/shape"
)

var (
	_ ldraw.Driver     = (*Renderer)(nil) // assert interface conformance
	_ ldraw.TextDriver = (*Renderer)(nil)
)

type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
	img    draw.Image
	face   font.Face
}

// NewRenderer returns a renderer painting into img.
func NewRenderer(img draw.Image) *Renderer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	// separated scanners: the filler and the dasher hold their own colour
	fs := rasterx.NewScannerGV(w, h, img, b)
	ds := rasterx.NewScannerGV(w, h, img, b)
	return &Renderer{
		dasher: rasterx.NewDasher(w, h, ds),
		filler: rasterx.NewFiller(w, h, fs),
		img:    img,
		face:   basicfont.Face7x13,
	}
}

// Options tunes the preview of a drawing.
type Options struct {
	// Scale is the number of pixels per drawing unit; zero means 1.
	Scale float64
	// Margin is added around the drawing, in pixels.
	Margin int
	// Background paints the image before drawing; nil means transparent.
	Background color.Color
}

// Image renders d into a new image sized to its bounds.
// An empty drawing gives an empty image.
func Image(d *shape.Drawing, opts Options) *image.RGBA {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if d.IsEmpty() {
		return image.NewRGBA(image.Rect(0, 0, 2*opts.Margin, 2*opts.Margin))
	}
	bounds := d.Bounds()
	// room for the borders of the shapes
	pad := maxLineWidth(d.Shapes()) / 2
	bounds = bounds.Grow(pad)
	w := int(math.Ceil(bounds.Width()*opts.Scale)) + 2*opts.Margin
	h := int(math.Ceil(bounds.Height()*opts.Scale)) + 2*opts.Margin
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if opts.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}
	m := geom.Identity.Translate(float64(opts.Margin), float64(opts.Margin)).
		Scale(opts.Scale, opts.Scale).
		Translate(-bounds.MinX, -bounds.MinY)
	ldraw.Drawing(NewRenderer(img), d, m)
	return img
}

func maxLineWidth(shapes []shape.Shape) float64 {
	var out float64
	for _, s := range shapes {
		if c, ok := s.(shape.Container); ok {
			out = math.Max(out, maxLineWidth(c.Shapes()))
			continue
		}
		if st, ok := s.(shape.Styled); ok {
			w := st.Style().LineWidth
			if st.Style().Shadow {
				w += 2 * st.Style().ShadowSize
			}
			out = math.Max(out, w)
		}
	}
	return out
}

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (f ldraw.Filler, s ldraw.Stroker) {
	if willFill {
		f = filler{rd.filler}
	}
	if willStroke {
		s = stroker{rd.dasher}
	}
	return f, s
}

// DrawText writes text with the basic font. Rotated texts are
// rendered in a horizontal mask which is then mapped onto the image.
func (rd *Renderer) DrawText(text string, x, y, theta float64, c color.RGBA) {
	if math.Abs(theta) < 1e-6 {
		d := font.Drawer{
			Dst:  rd.img,
			Src:  image.NewUniform(c),
			Face: rd.face,
			Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
		}
		d.DrawString(text)
		return
	}

	m := rd.face.Metrics()
	ascent := m.Ascent.Ceil()
	w := font.MeasureString(rd.face, text).Ceil()
	h := ascent + m.Descent.Ceil()
	if w <= 0 || h <= 0 {
		return
	}
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  src,
		Src:  image.NewUniform(c),
		Face: rd.face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(text)

	// the baseline start of src goes to (x, y)
	sin, cos := math.Sincos(theta)
	a := float64(ascent)
	s2d := f64.Aff3{
		cos, -sin, x + sin*a,
		sin, cos, y - cos*a,
	}
	draw.BiLinear.Transform(rd.img, s2d, src, src.Bounds(), draw.Over, nil)
}

type filler struct{ *rasterx.Filler }

func (f filler) SetColor(c color.RGBA) { f.Scanner.SetColor(c) }

type stroker struct{ *rasterx.Dasher }

func (s stroker) SetColor(c color.RGBA) { s.Scanner.SetColor(c) }

var (
	joinToJoin = [...]rasterx.JoinMode{
		ldraw.Round: rasterx.Round,
		ldraw.Bevel: rasterx.Bevel,
		ldraw.Miter: rasterx.Miter,
	}

	capToFunc = [...]rasterx.CapFunc{
		ldraw.ButtCap:   rasterx.ButtCap,
		ldraw.SquareCap: rasterx.SquareCap,
		ldraw.RoundCap:  rasterx.RoundCap,
	}
)

func (s stroker) SetStrokeOptions(options ldraw.StrokeOptions) {
	s.SetStroke(
		options.LineWidth, options.MiterLimit, capToFunc[options.Cap],
		capToFunc[options.Cap], rasterx.FlatGap,
		joinToJoin[options.Join], options.Dash.Dash, options.Dash.DashOffset,
	)
}
