package pstgen

import (
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/benoitkugler/latexdraw/geom"
	"github.com/benoitkugler/latexdraw/shape"
)

// writer accumulates the code of one shape.
type writer struct {
	g       *Generator
	sb      strings.Builder
	colours map[string]bool
}

func (w *writer) str(s ...string) {
	for _, v := range s {
		w.sb.WriteString(v)
	}
}

// point writes "(x,y)".
func (w *writer) point(x, y float64) {
	w.str("(", w.g.num(w.g.x(x)), ",", w.g.num(w.g.y(y)), ")")
}

// dim writes a length in centimetres.
func (w *writer) dim(v float64) string { return w.g.num(v / shape.PPC) }

func (w *writer) colour(c color.RGBA) string {
	name, ok := w.g.colors.Name(c)
	if !ok {
		name = w.g.colors.AddUser(c)
	}
	if w.g.colors.IsUser(name) {
		if w.colours == nil {
			w.colours = map[string]bool{}
		}
		w.colours[name] = true
	}
	return name
}

func (w *writer) userColours() []string {
	out := make([]string, 0, len(w.colours))
	for name := range w.colours {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// properties writes the options of a styled shape.
func (w *writer) properties(st *shape.Style, extra ...string) {
	def := shape.DefaultStyle()
	opts := []string{"linecolor=" + w.colour(st.LineColor), "linewidth=" + w.dim(st.LineWidth)}
	if st.LineStyle != shape.SolidLine {
		opts = append(opts, "linestyle="+st.LineStyle.PSTName())
	}
	if st.IsFilled() {
		opts = append(opts, "fillstyle="+st.FillStyle.PSTName(), "fillcolor="+w.colour(st.FillColor))
	}
	if st.Shadow {
		opts = append(opts, "shadow=true")
		if st.ShadowColor != def.ShadowColor {
			opts = append(opts, "shadowcolor="+w.colour(st.ShadowColor))
		}
		if st.ShadowSize != def.ShadowSize {
			opts = append(opts, "shadowsize="+w.dim(st.ShadowSize))
		}
		if st.ShadowAngle != def.ShadowAngle {
			opts = append(opts, "shadowangle="+w.g.num(st.ShadowAngle))
		}
	}
	opts = append(opts, extra...)
	w.str("[", strings.Join(opts, ", "), "]")
}

// rotation returns the angle in degrees of the \rotate header,
// or false for a negligible rotation.
func (w *writer) rotation(s shape.Shape) (string, bool) {
	r, ok := s.(shape.Rotatable)
	if !ok {
		return "", false
	}
	theta := geom.NormaliseAngle(r.Rotation())
	if geom.EqualsDouble(theta, 0) {
		return "", false
	}
	deg := -geom.Degrees(theta)
	if deg <= -180 {
		deg += 360
	}
	return w.g.num(deg), true
}

func (w *writer) shape(s shape.Shape) {
	switch s := s.(type) {
	case *shape.Group:
		w.group(s)
		return
	case *shape.Text:
		w.text(s)
		return
	}
	deg, rotated := w.rotation(s)
	if rotated {
		w.str("\\rotate{", deg, "}{")
	}
	switch s := s.(type) {
	case *shape.Rectangle:
		w.rectangle(s)
	case *shape.Ellipse:
		w.ellipse(s)
	case *shape.Triangle:
		w.triangle(s)
	case *shape.Arc:
		w.arc(s)
	case *shape.Freehand:
		w.freehand(s)
	case *shape.Plot:
		w.plot(s)
	}
	if rotated {
		w.str("}")
	}
}

func (w *writer) group(g *shape.Group) {
	if g.Len() == 0 {
		return
	}
	w.str("{\n")
	for _, s := range g.Shapes() {
		w.shape(s)
		w.str("\n")
	}
	w.str("}")
}

func (w *writer) rectangle(r *shape.Rectangle) {
	bl := r.Position()
	w.str("\\psframe")
	w.properties(r.Style())
	w.point(bl.X, bl.Y)
	w.point(bl.X+r.Width(), bl.Y-r.Height())
}

func (w *writer) ellipse(e *shape.Ellipse) {
	c := e.GravityCentre()
	if e.IsCircle() {
		w.str("\\pscircle")
		w.properties(e.Style())
		w.point(c.X, c.Y)
		w.str("{", w.dim(e.Rx()), "}")
		return
	}
	w.str("\\psellipse")
	w.properties(e.Style())
	w.point(c.X, c.Y)
	w.str("(", w.dim(e.Rx()), ",", w.dim(e.Ry()), ")")
}

func (w *writer) triangle(t *shape.Triangle) {
	bl := t.Position()
	w.str("\\pstriangle")
	w.properties(t.Style())
	w.point(bl.X+t.Width()/2, bl.Y)
	w.str("(", w.dim(t.Width()), ",", w.dim(t.Height()), ")")
}

// arc writes \pswedge or \psarc. A chord has no command of its own:
// the arc is closed inside a \pscustom.
func (w *writer) arc(a *shape.Arc) {
	chord := a.ArcStyle() == shape.Chord
	switch a.ArcStyle() {
	case shape.Wedge:
		w.str("\\pswedge")
		w.properties(a.Style())
	case shape.Chord:
		w.str("\\pscustom")
		w.properties(a.Style())
		w.str("{\\psarc")
	default:
		w.str("\\psarc")
		w.properties(a.Style())
	}
	c := a.GravityCentre()
	w.point(c.X, c.Y)
	w.str("{", w.dim(a.Radius()), "}{", w.g.num(geom.Degrees(a.AngleStart())), "}{", w.g.num(geom.Degrees(a.AngleEnd())), "}")
	if chord {
		w.str("\\closepath}")
	}
}

// freehand writes a \pscustom path, or nothing for less than two points.
func (w *writer) freehand(f *shape.Freehand) {
	if f.NbPoints() < 2 {
		return
	}
	w.str("\\pscustom")
	w.properties(f.Style())
	w.str("\n{\n\\newpath\n")
	for _, seg := range f.Segments() {
		switch seg.Op {
		case shape.SegMove:
			w.str("\\moveto")
			w.point(seg.Pts[0].X, seg.Pts[0].Y)
		case shape.SegLine:
			w.str("\\lineto")
			w.point(seg.Pts[0].X, seg.Pts[0].Y)
		case shape.SegCurve:
			w.str("\\curveto")
			for _, p := range seg.Pts {
				w.point(p.X, p.Y)
			}
		}
		w.str("\n")
	}
	if !f.IsOpen() {
		w.str("\\closepath\n")
	}
	if f.Style().Shadow {
		w.str("\\openshadow\n")
	}
	w.str("}")
}

// plot writes \psplot or \parametricplot, moved by \rput
// when its origin is not the drawing origin.
func (w *writer) plot(p *shape.Plot) {
	o := p.Position()
	moved := !geom.EqualsDouble(o.X, w.g.origin.X) || !geom.EqualsDouble(o.Y, w.g.origin.Y)
	if moved {
		w.str("\\rput")
		w.point(o.X, o.Y)
		w.str("{")
	}
	if p.IsParametric() {
		w.str("\\parametricplot")
	} else {
		w.str("\\psplot")
	}
	extra := []string{"plotpoints=" + strconv.Itoa(p.NbPlottedPoints())}
	if p.PlotStyle() != shape.PlotLine {
		extra = append(extra, "plotstyle="+p.PlotStyle().PSTName())
	}
	w.properties(p.Style(), extra...)
	w.str("{", w.g.num(p.Min()), "}{", w.g.num(p.Max()), "}{", p.Function().Source, "}")
	if moved {
		w.str("}")
	}
}

// text writes \rput[refpoint]{angle}(x,y){text}, the angle
// being the rotation of the text.
func (w *writer) text(t *shape.Text) {
	w.str("\\rput")
	if ref := t.TextPosition().RefPoint(); ref != "" {
		w.str("[", ref, "]")
	}
	if deg, ok := w.rotation(t); ok {
		w.str("{", deg, "}")
	}
	p := t.Position()
	w.point(p.X, p.Y)
	if c := t.Style().LineColor; c != shape.DefaultStyle().LineColor {
		w.str("{\\textcolor{", w.colour(c), "}{", t.Text(), "}}")
		return
	}
	w.str("{", t.Text(), "}")
}
