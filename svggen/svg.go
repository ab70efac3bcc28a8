// Package svggen exports drawings as SVG documents.
//
// Shapes are written unrotated, as <path> elements carrying a
// rotate transform around their centre, so that the document keeps
// the structure of the drawing: groups become <g> elements and
// texts <text> elements.
package svggen

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/latexdraw/geom"
	"github.com/benoitkugler/latexdraw/shape"
)

const svgNamespace = "http://www.w3.org/2000/svg"

type document struct {
	XMLName  xml.Name `xml:"svg"`
	Xmlns    string   `xml:"xmlns,attr"`
	Width    string   `xml:"width,attr"`
	Height   string   `xml:"height,attr"`
	ViewBox  string   `xml:"viewBox,attr"`
	Elements []any
}

type group struct {
	XMLName  xml.Name `xml:"g"`
	Elements []any
}

type path struct {
	XMLName     xml.Name `xml:"path"`
	D           string   `xml:"d,attr"`
	Fill        string   `xml:"fill,attr"`
	Stroke      string   `xml:"stroke,attr"`
	StrokeWidth string   `xml:"stroke-width,attr,omitempty"`
	DashArray   string   `xml:"stroke-dasharray,attr,omitempty"`
	Transform   string   `xml:"transform,attr,omitempty"`
}

type text struct {
	XMLName   xml.Name `xml:"text"`
	X         string   `xml:"x,attr"`
	Y         string   `xml:"y,attr"`
	Fill      string   `xml:"fill,attr"`
	FontSize  string   `xml:"font-size,attr"`
	Transform string   `xml:"transform,attr,omitempty"`
	Content   string   `xml:",chardata"`
}

// Options tunes the SVG output.
type Options struct {
	// Margin around the drawing, in drawing units.
	Margin float64
}

// Write writes d as an SVG document, sized in centimetres.
func Write(w io.Writer, d *shape.Drawing, opts Options) error {
	b := geom.Rect{}
	if !d.IsEmpty() {
		b = d.Bounds()
	}
	b = b.Grow(opts.Margin)
	doc := document{
		Xmlns:   svgNamespace,
		Width:   num(b.Width()/shape.PPC) + "cm",
		Height:  num(b.Height()/shape.PPC) + "cm",
		ViewBox: strings.Join([]string{num(b.MinX), num(b.MinY), num(b.Width()), num(b.Height())}, " "),
	}
	for _, s := range d.Shapes() {
		doc.Elements = append(doc.Elements, elements(s)...)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding svg: %w", err)
	}
	return enc.Close()
}

// elements returns the SVG elements of s: its shadow, if any,
// then the shape itself.
func elements(s shape.Shape) []any {
	switch s := s.(type) {
	case *shape.Group:
		g := group{}
		for _, child := range s.Shapes() {
			g.Elements = append(g.Elements, elements(child)...)
		}
		if len(g.Elements) == 0 {
			return nil
		}
		return []any{g}
	case *shape.Text:
		return []any{textElement(s)}
	}
	sh, ok := s.(shape.Styled)
	if !ok {
		return nil
	}
	st := sh.Style()

	// the path of the unrotated shape
	flat := s.Clone()
	var rotation string
	if r, ok := flat.(shape.Rotatable); ok && !geom.EqualsDouble(r.Rotation(), 0) {
		c := s.Bounds().Centre()
		rotation = rotate(r.Rotation(), c.X, c.Y)
		r.SetRotation(0)
	}
	p := flat.Path()
	if len(p) == 0 {
		return nil
	}
	elem := path{
		D:         p.ToSVGPath(),
		Fill:      "none",
		Stroke:    "none",
		Transform: rotation,
	}
	if st.IsFilled() {
		elem.Fill = rgb(st.FillColor)
	}
	if st.IsStroked() {
		elem.Stroke = rgb(st.LineColor)
		elem.StrokeWidth = num(st.LineWidth)
		if dashes := st.Dashes(); len(dashes) != 0 {
			chunks := make([]string, len(dashes))
			for i, v := range dashes {
				chunks[i] = num(v)
			}
			elem.DashArray = strings.Join(chunks, " ")
		}
	}
	if !st.Shadow {
		return []any{elem}
	}
	shadow := elem
	if elem.Fill != "none" || isClosed(p) {
		shadow.Fill = rgb(st.ShadowColor)
	}
	if elem.Stroke != "none" {
		shadow.Stroke = rgb(st.ShadowColor)
	}
	s1, c1 := sincos(st.ShadowAngle)
	shadow.Transform = strings.TrimSpace(fmt.Sprintf("translate(%s %s) %s",
		num(st.ShadowSize*c1), num(-st.ShadowSize*s1), rotation))
	return []any{shadow, elem}
}

func textElement(t *shape.Text) text {
	b := t.Bounds()
	size := 0.35 * shape.PPC
	if face := t.Face(); face != nil {
		m := face.Metrics()
		size = float64(m.Ascent+m.Descent) / 64
	}
	out := text{
		X:        num(b.MinX),
		Y:        num(b.MaxY),
		Fill:     rgb(t.Style().LineColor),
		FontSize: num(size),
		Content:  t.Text(),
	}
	if !geom.EqualsDouble(t.Rotation(), 0) {
		c := b.Centre()
		out.Transform = rotate(t.Rotation(), c.X, c.Y)
	}
	return out
}

func isClosed(p shape.Path) bool {
	_, ok := p[len(p)-1].(shape.Close)
	return ok
}

// rotate returns the SVG transform rotating by theta radians
// (clockwise, since the y axis points down) around (cx, cy).
func rotate(theta, cx, cy float64) string {
	return fmt.Sprintf("rotate(%s %s %s)", num(geom.Degrees(theta)), num(cx), num(cy))
}

func rgb(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func sincos(deg float64) (float64, float64) { return math.Sincos(geom.Radians(deg)) }

// num writes v with at most 3 decimals.
func num(v float64) string {
	v = math.Round(geom.CutNumber(v)*1000) / 1000
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
