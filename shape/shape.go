// Package shape implements the drawing model: typed shapes built on
// the geometry kernel, their styles and their reduction to paths
// of fixed-point operations, consumed by the code generators and the
// render drivers.
//
// Coordinates are stored in internal units (PPC units per centimetre),
// with the y axis pointing down. Shapes keep their unrotated points and
// a rotation angle, applied around their gravity centre.
package shape

import (
	"github.com/benoitkugler/latexdraw/geom"
)

// PPC is the number of internal units per centimetre.
const PPC = 50.

// Kind identifies the concrete type of a shape.
type Kind uint8

const (
	KindRectangle Kind = iota
	KindSquare
	KindCircle
	KindEllipse
	KindTriangle
	KindFreehand
	KindCircleArc
	KindText
	KindGroup
	KindPlot
)

func (k Kind) String() string {
	switch k {
	case KindRectangle:
		return "Rectangle"
	case KindSquare:
		return "Square"
	case KindCircle:
		return "Circle"
	case KindEllipse:
		return "Ellipse"
	case KindTriangle:
		return "Triangle"
	case KindFreehand:
		return "Freehand"
	case KindCircleArc:
		return "CircleArc"
	case KindText:
		return "Text"
	case KindGroup:
		return "Group"
	case KindPlot:
		return "Plot"
	default:
		return "<unknown Kind>"
	}
}

// Shape is implemented by every element of a drawing.
// Optional features are exposed through the capability
// interfaces of this package (Rotatable, Styled, Texter, Arcer, ...).
type Shape interface {
	Kind() Kind

	// Points returns the live points of the shape:
	// modifying them modifies the shape.
	Points() []*geom.Point
	NbPoints() int

	// Bounds returns the bounding box of the unrotated shape.
	Bounds() geom.Rect
	GravityCentre() *geom.Point

	Translate(tx, ty float64)
	// Rotate rotates the shape around pivot by theta radians.
	Rotate(pivot *geom.Point, theta float64)

	// Contains and Intersects take the rotation of the shape into account.
	Contains(x, y float64) bool
	Intersects(r geom.Rect) bool

	// Path returns the outline of the shape, rotation applied.
	Path() Path

	// Copy copies into the shape every attribute of src
	// belonging to a capability both shapes implement.
	Copy(src Shape)
	// Clone returns a deep copy.
	Clone() Shape
}

// Rotatable is implemented by shapes carrying a rotation angle,
// always normalised in [0, 2π).
type Rotatable interface {
	Rotation() float64
	SetRotation(theta float64)
}

// Styled is implemented by shapes with line and fill attributes.
type Styled interface {
	// Style returns a pointer to the live style.
	Style() *Style
}

// Texter is implemented by shapes holding a text.
type Texter interface {
	Text() string
	SetText(text string)
	TextPosition() TextPosition
	SetTextPosition(pos TextPosition)
}

// Arcer is implemented by circle arcs.
type Arcer interface {
	AngleStart() float64
	AngleEnd() float64
	SetAngleStart(a float64)
	SetAngleEnd(a float64)
	ArcStyle() ArcStyle
	SetArcStyle(s ArcStyle)
}

// Sizer is implemented by shapes defined by a rectangular frame.
type Sizer interface {
	Position() *geom.Point
	Width() float64
	Height() float64
	SetWidth(w float64)
	SetHeight(h float64)
}

// Container is implemented by groups.
type Container interface {
	Shapes() []Shape
}

// RotatedBounds returns the bounding box of s with its rotation applied.
func RotatedBounds(s Shape) geom.Rect {
	if c, ok := s.(Container); ok {
		var (
			out   geom.Rect
			first = true
		)
		for _, child := range c.Shapes() {
			b := RotatedBounds(child)
			if first {
				out, first = b, false
			} else {
				out = out.Union(b)
			}
		}
		return out
	}
	corners := rotatedCorners(s)
	return geom.RectFromPoints(corners[:]...)
}

// rotationOf returns the rotation of s, or 0.
func rotationOf(s Shape) float64 {
	if r, ok := s.(Rotatable); ok {
		return r.Rotation()
	}
	return 0
}

// rotatedCorners returns the bounds corners of s, rotated
// around its centre.
func rotatedCorners(s Shape) [4]geom.Point {
	b := s.Bounds()
	theta := rotationOf(s)
	if geom.EqualsDouble(theta, 0) {
		return b.Corners()
	}
	c := b.Centre()
	return b.Transform(geom.Identity.RotateAround(theta, c.X, c.Y))
}
