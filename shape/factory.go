package shape

import (
	"errors"
	"fmt"
	"math"

	"github.com/benoitkugler/latexdraw/geom"
	"github.com/benoitkugler/latexdraw/psfunc"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var (
	_ Shape = (*Rectangle)(nil)
	_ Shape = (*Ellipse)(nil)
	_ Shape = (*Triangle)(nil)
	_ Shape = (*Arc)(nil)
	_ Shape = (*Freehand)(nil)
	_ Shape = (*Text)(nil)
	_ Shape = (*Group)(nil)
	_ Shape = (*Plot)(nil)

	_ Arcer   = (*Arc)(nil)
	_ Sampler = (*Freehand)(nil)
	_ Texter  = (*Text)(nil)
	_ Sizer   = (*Rectangle)(nil)
	_ Sizer   = (*Ellipse)(nil)
	_ Sizer   = (*Triangle)(nil)
	_ Sizer   = (*Arc)(nil)
)

var (
	ErrInvalidPoint     = errors.New("invalid point")
	ErrInvalidDimension = errors.New("invalid dimension")
)

// Factory is the single construction point of shapes.
// It carries the font face used to measure texts.
type Factory struct {
	Face font.Face
}

// NewFactory returns a factory measuring texts with a basic fixed font.
func NewFactory() *Factory {
	return &Factory{Face: basicfont.Face7x13}
}

func checkPoints(pts ...*geom.Point) error {
	for _, p := range pts {
		if !p.Valid() {
			return fmt.Errorf("%w: %v", ErrInvalidPoint, p)
		}
	}
	return nil
}

// checkFrame returns the dimensions of the frame defined
// by its top left and bottom right corners.
func checkFrame(tl, br *geom.Point) (w, h float64, err error) {
	if err := checkPoints(tl, br); err != nil {
		return 0, 0, err
	}
	w, h = br.X-tl.X, br.Y-tl.Y
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: frame %v %v", ErrInvalidDimension, tl, br)
	}
	return w, h, nil
}

func checkLength(v float64) error {
	if !geom.IsValidCoordinate(v) || v <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidDimension, v)
	}
	return nil
}

func framed(tl, br *geom.Point) (rectangular, error) {
	w, h, err := checkFrame(tl, br)
	if err != nil {
		return rectangular{}, err
	}
	r := newRectangular()
	r.setFrame(tl.X, br.Y, w, h)
	return r, nil
}

func (f *Factory) NewRectangle(tl, br *geom.Point) (*Rectangle, error) {
	r, err := framed(tl, br)
	if err != nil {
		return nil, err
	}
	return &Rectangle{rectangular: r}, nil
}

// NewSquare returns a square of the given side, tl being its top left corner.
func (f *Factory) NewSquare(tl *geom.Point, side float64) (*Rectangle, error) {
	if err := checkPoints(tl); err != nil {
		return nil, err
	}
	if err := checkLength(side); err != nil {
		return nil, err
	}
	r := newRectangular()
	r.setFrame(tl.X, tl.Y+side, side, side)
	return &Rectangle{rectangular: r, square: true}, nil
}

func (f *Factory) NewEllipse(tl, br *geom.Point) (*Ellipse, error) {
	r, err := framed(tl, br)
	if err != nil {
		return nil, err
	}
	return &Ellipse{rectangular: r}, nil
}

// NewCircle returns a circle; radius must be strictly positive.
func (f *Factory) NewCircle(centre *geom.Point, radius float64) (*Ellipse, error) {
	if err := checkPoints(centre); err != nil {
		return nil, err
	}
	if err := checkLength(radius); err != nil {
		return nil, err
	}
	r := newRectangular()
	r.setFrame(centre.X-radius, centre.Y+radius, 2*radius, 2*radius)
	return &Ellipse{rectangular: r, circle: true}, nil
}

func (f *Factory) NewTriangle(tl, br *geom.Point) (*Triangle, error) {
	r, err := framed(tl, br)
	if err != nil {
		return nil, err
	}
	return &Triangle{rectangular: r}, nil
}

// NewArc returns a circle arc, angles being in radians.
func (f *Factory) NewArc(centre *geom.Point, radius, start, end float64, style ArcStyle) (*Arc, error) {
	if err := checkPoints(centre); err != nil {
		return nil, err
	}
	if err := checkLength(radius); err != nil {
		return nil, err
	}
	if !geom.IsValidCoordinate(start) || !geom.IsValidCoordinate(end) {
		return nil, fmt.Errorf("%w: arc angles %g %g", ErrInvalidDimension, start, end)
	}
	r := newRectangular()
	r.setFrame(centre.X-radius, centre.Y+radius, 2*radius, 2*radius)
	return &Arc{rectangular: r, start: start, end: end, style: style}, nil
}

// NewFreehand copies the given points, which must all be valid.
func (f *Factory) NewFreehand(pts []*geom.Point, t FreehandType, open bool) (*Freehand, error) {
	if len(pts) == 0 {
		return nil, fmt.Errorf("%w: no point", ErrInvalidPoint)
	}
	if err := checkPoints(pts...); err != nil {
		return nil, err
	}
	out := &Freehand{base: base{style: DefaultStyle()}, ftype: t, interval: 1, open: open}
	for _, p := range pts {
		out.points = append(out.points, p.Copy())
	}
	return out, nil
}

// NewText returns a text anchored by its bottom left corner.
// An empty text is replaced by DefaultText.
func (f *Factory) NewText(pos *geom.Point, text string) (*Text, error) {
	if err := checkPoints(pos); err != nil {
		return nil, err
	}
	if text == "" {
		text = DefaultText
	}
	out := &Text{base: newBase(1), text: text, pos: TextBottomLeft, face: f.Face}
	out.points[0].Set(pos)
	return out, nil
}

func (f *Factory) NewGroup(shapes ...Shape) (*Group, error) {
	g := &Group{}
	for _, s := range shapes {
		if err := g.Add(s); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// NewPlot returns a plot of fn between min and max, with its origin at pos.
func (f *Factory) NewPlot(pos *geom.Point, fn *psfunc.Function, min, max float64, parametric bool) (*Plot, error) {
	if err := checkPoints(pos); err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, errors.New("missing plot function")
	}
	if !geom.IsValidCoordinate(min) || !geom.IsValidCoordinate(max) || math.Abs(max-min) < geom.Epsilon {
		return nil, fmt.Errorf("%w: plot range [%g, %g]", ErrInvalidDimension, min, max)
	}
	out := &Plot{base: newBase(1), fn: fn, min: min, max: max, nbPoints: DefaultPlotPoints, parametric: parametric}
	out.points[0].Set(pos)
	return out, nil
}
