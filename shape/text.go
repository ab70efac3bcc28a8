package shape

import (
	"strings"

	"github.com/benoitkugler/latexdraw/geom"
	"golang.org/x/image/font"
)

// DefaultText replaces empty texts.
const DefaultText = "text"

// TextPosition is the anchor of a text relatively to its position point.
type TextPosition uint8

const (
	TextBottomLeft TextPosition = iota
	TextBottom
	TextBottomRight
	TextLeft
	TextCentre
	TextRight
	TextTopLeft
	TextTop
	TextTopRight
)

// RefPoint returns the PSTricks reference point of the anchor,
// as used by \rput. The centre is the empty string.
func (p TextPosition) RefPoint() string {
	switch p {
	case TextBottom:
		return "b"
	case TextBottomRight:
		return "br"
	case TextLeft:
		return "l"
	case TextCentre:
		return ""
	case TextRight:
		return "r"
	case TextTopLeft:
		return "tl"
	case TextTop:
		return "t"
	case TextTopRight:
		return "tr"
	default:
		return "bl"
	}
}

func (p TextPosition) String() string {
	if p == TextCentre {
		return "c"
	}
	return p.RefPoint()
}

// ParseRefPoint reads a PSTricks reference point, the letters
// being in any order. The baseline B is treated as the bottom.
func ParseRefPoint(ref string) (TextPosition, bool) {
	var top, bottom, left, right bool
	for _, c := range ref {
		switch c {
		case 't':
			top = true
		case 'b', 'B':
			bottom = true
		case 'l':
			left = true
		case 'r':
			right = true
		case 'c':
		default:
			return 0, false
		}
	}
	if (top && bottom) || (left && right) {
		return 0, false
	}
	row, col := 1, 1 // centre
	if top {
		row = 2
	} else if bottom {
		row = 0
	}
	if left {
		col = 0
	} else if right {
		col = 2
	}
	return TextPosition(row*3 + col), true
}

// Text is a single line of text anchored at its position point.
// The text colour is the line colour of its style.
type Text struct {
	base
	text string
	pos  TextPosition
	face font.Face
}

func (*Text) Kind() Kind { return KindText }

func (t *Text) Text() string { return t.text }

// SetText ignores empty strings.
func (t *Text) SetText(text string) {
	if text != "" {
		t.text = text
	}
}

func (t *Text) TextPosition() TextPosition { return t.pos }

func (t *Text) SetTextPosition(pos TextPosition) {
	if pos <= TextTopRight {
		t.pos = pos
	}
}

// Position returns the live anchor point.
func (t *Text) Position() *geom.Point { return t.points[0] }

// size returns the dimensions of the text, using the font face.
func (t *Text) size() (w, h float64) {
	if t.face == nil {
		// rough metrics of a 10pt font
		return float64(len([]rune(t.text))) * 0.18 * PPC, 0.35 * PPC
	}
	var maxW float64
	lines := strings.Split(t.text, "\n")
	for _, l := range lines {
		if lw := float64(font.MeasureString(t.face, l)) / 64; lw > maxW {
			maxW = lw
		}
	}
	m := t.face.Metrics()
	lineH := float64(m.Ascent+m.Descent) / 64
	return maxW, lineH * float64(len(lines))
}

// Bounds returns the box of the text around the anchor point.
func (t *Text) Bounds() geom.Rect {
	w, h := t.size()
	p := t.points[0]
	x, y := p.X, p.Y
	switch t.pos % 3 {
	case 1:
		x -= w / 2
	case 2:
		x -= w
	}
	switch t.pos / 3 {
	case 0:
		y -= h
	case 1:
		y -= h / 2
	}
	return geom.Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

func (t *Text) GravityCentre() *geom.Point {
	c := t.Bounds().Centre()
	return &c
}

func (t *Text) Rotate(pivot *geom.Point, theta float64) {
	t.rotate(t.GravityCentre(), pivot, theta)
}

func (t *Text) Contains(x, y float64) bool {
	b := t.Bounds()
	lx, ly := t.toLocal(b.Centre(), x, y)
	return b.Contains(lx, ly)
}

func (t *Text) Intersects(r geom.Rect) bool {
	b := t.Bounds()
	corners := b.Corners()
	return geom.ConvexIntersect(corners[:], t.localRect(b.Centre(), r))
}

// Path returns the frame of the text.
func (t *Text) Path() Path {
	b := t.Bounds()
	a := &matrixAdder{M: t.matrix(b.Centre()), path: new(Path)}
	cs := b.Corners()
	a.polygon(cs[:])
	return *a.path
}

// Face returns the font used to measure the text.
func (t *Text) Face() font.Face { return t.face }

func (t *Text) Copy(src Shape) {
	t.copyBase(src)
	if other, ok := src.(Texter); ok {
		t.SetText(other.Text())
		t.SetTextPosition(other.TextPosition())
	}
}

func (t *Text) Clone() Shape {
	return &Text{base: t.cloneBase(), text: t.text, pos: t.pos, face: t.face}
}
