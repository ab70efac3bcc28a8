package pst

import (
	"fmt"
	"math"
	"strings"

	"github.com/benoitkugler/latexdraw/colors"
	"github.com/benoitkugler/latexdraw/geom"
	"github.com/benoitkugler/latexdraw/psfunc"
	"github.com/benoitkugler/latexdraw/shape"
)

func init() {
	// avoids cyclical static declaration:
	// these commands parse nested code
	commands["rput"] = rputF
	commands["rotate"] = rotateF
	commands["psscalebox"] = scaleboxF
	commands["scalebox"] = scaleboxF
}

// commandFunc handles a command whose name has been read. It returns
// either the shapes produced or a *SoftError or *HardError.
type commandFunc func(c *cursor, cmd Token) ([]shape.Shape, error)

var commands = map[string]commandFunc{
	"pscircle":       circleF,
	"psellipse":      ellipseF,
	"psframe":        frameF,
	"pstriangle":     triangleF,
	"pswedge":        wedgeF,
	"psarc":          arcF,
	"psline":         lineF,
	"pspolygon":      polygonF,
	"pscustom":       customF,
	"psplot":         plotF,
	"parametricplot": parametricPlotF,
	"psset":          pssetF,
	"newrgbcolor":    newRGBColorF,

	// structural commands, see structural
	"documentclass": skip(1),
	"usepackage":    skip(1),
	"begin":         skip(1),
	"end":           skip(1),
	"pagestyle":     skip(1),
	"pspicture":     skip(0),
	"endpspicture":  skip(0),
	"centering":     skip(0),
	"makeatletter":  skip(0),
	"makeatother":   skip(0),
}

// structural commands and settings produce no shape.
var structural = map[string]bool{
	"documentclass": true,
	"usepackage":    true,
	"begin":         true,
	"end":           true,
	"pagestyle":     true,
	"pspicture":     true,
	"endpspicture":  true,
	"centering":     true,
	"makeatletter":  true,
	"makeatother":   true,
	"psset":         true,
	"newrgbcolor":   true,
}

// skip returns a handler ignoring a command and its options,
// coordinates and n braces.
func skip(n int) commandFunc {
	return func(c *cursor, cmd Token) ([]shape.Shape, error) {
		if c.peekKind(0, TokBracket) {
			c.pos++
		}
		for i := 0; i < n && c.peekKind(0, TokBrace); i++ {
			c.pos++
		}
		for c.peekKind(0, TokParen) {
			c.pos++
		}
		return nil, nil
	}
}

// converter keeps the first conversion error, so that
// arguments may be converted in a row.
type converter struct {
	err error
}

func (v *converter) dim(s string) float64 {
	if v.err != nil {
		return 0
	}
	d, err := parseDim(s)
	v.err = err
	return d
}

func (v *converter) number(s string) float64 {
	if v.err != nil {
		return 0
	}
	n, err := ParseNumber(s)
	v.err = err
	return n
}

func (v *converter) coord(s string) *geom.Point {
	if v.err != nil {
		return geom.NewPoint(0, 0)
	}
	p, err := parseCoord(s)
	v.err = err
	if err != nil {
		return geom.NewPoint(0, 0)
	}
	return p
}

// coordOr returns the i-th coordinate, or the origin if it is missing.
func (v *converter) coordOr(coords []string, i int) *geom.Point {
	if i < len(coords) {
		return v.coord(coords[i])
	}
	return geom.NewPoint(0, 0)
}

// twoPoints returns the last two coordinates, the first
// one defaulting to the origin.
func (v *converter) twoPoints(coords []string) (p1, p2 *geom.Point) {
	if len(coords) == 1 {
		return geom.NewPoint(0, 0), v.coord(coords[0])
	}
	return v.coord(coords[0]), v.coord(coords[1])
}

func frame(p1, p2 *geom.Point) (tl, br *geom.Point) {
	return geom.NewPoint(math.Min(p1.X, p2.X), math.Min(p1.Y, p2.Y)),
		geom.NewPoint(math.Max(p1.X, p2.X), math.Max(p1.Y, p2.Y))
}

// \pscircle[opts](x,y){r}
func circleF(c *cursor, cmd Token) ([]shape.Shape, error) {
	a, err := c.read(cmd, 0, 1, 1)
	if err != nil {
		return nil, err
	}
	var v converter
	centre := v.coordOr(a.coords, 0)
	r := v.dim(a.braces[0])
	if v.err != nil {
		return nil, soft(cmd, v.err)
	}
	st, err := c.settings(cmd, a.opts)
	if err != nil {
		return nil, soft(cmd, err)
	}
	s, err := c.p.factory.NewCircle(centre, math.Abs(r))
	if err != nil {
		return nil, soft(cmd, err)
	}
	return styled(s, st), nil
}

// \psellipse[opts](x,y)(rx,ry)
func ellipseF(c *cursor, cmd Token) ([]shape.Shape, error) {
	a, err := c.read(cmd, 1, 2, 0)
	if err != nil {
		return nil, err
	}
	var v converter
	centre, radii := v.twoPoints(a.coords)
	if v.err != nil {
		return nil, soft(cmd, v.err)
	}
	st, err := c.settings(cmd, a.opts)
	if err != nil {
		return nil, soft(cmd, err)
	}
	rx, ry := math.Abs(radii.X), math.Abs(radii.Y)
	s, err := c.p.factory.NewEllipse(geom.NewPoint(centre.X-rx, centre.Y-ry), geom.NewPoint(centre.X+rx, centre.Y+ry))
	if err != nil {
		return nil, soft(cmd, err)
	}
	return styled(s, st), nil
}

// \psframe[opts](x0,y0)(x1,y1)
func frameF(c *cursor, cmd Token) ([]shape.Shape, error) {
	a, err := c.read(cmd, 1, 2, 0)
	if err != nil {
		return nil, err
	}
	var v converter
	p1, p2 := v.twoPoints(a.coords)
	if v.err != nil {
		return nil, soft(cmd, v.err)
	}
	st, err := c.settings(cmd, a.opts)
	if err != nil {
		return nil, soft(cmd, err)
	}
	s, err := c.p.factory.NewRectangle(frame(p1, p2))
	if err != nil {
		return nil, soft(cmd, err)
	}
	return styled(s, st), nil
}

// \pstriangle[opts](x,y)(w,h), (x,y) being the middle of the base
func triangleF(c *cursor, cmd Token) ([]shape.Shape, error) {
	a, err := c.read(cmd, 1, 2, 0)
	if err != nil {
		return nil, err
	}
	var v converter
	base, dims := v.twoPoints(a.coords)
	if v.err != nil {
		return nil, soft(cmd, v.err)
	}
	st, err := c.settings(cmd, a.opts)
	if err != nil {
		return nil, soft(cmd, err)
	}
	w, h := math.Abs(dims.X), math.Abs(dims.Y)
	s, err := c.p.factory.NewTriangle(geom.NewPoint(base.X-w/2, base.Y-h), geom.NewPoint(base.X+w/2, base.Y))
	if err != nil {
		return nil, soft(cmd, err)
	}
	return styled(s, st), nil
}

// \pswedge[opts](x,y){r}{angle1}{angle2}
func wedgeF(c *cursor, cmd Token) ([]shape.Shape, error) {
	a, err := c.read(cmd, 0, 1, 3)
	if err != nil {
		return nil, err
	}
	return circleArc(c, cmd, a, shape.Wedge)
}

// \psarc[opts]{arrows}(x,y){r}{angle1}{angle2}
func arcF(c *cursor, cmd Token) ([]shape.Shape, error) {
	a, err := c.readArrows(cmd, 0, 1, 3)
	if err != nil {
		return nil, err
	}
	return circleArc(c, cmd, a, shape.ArcOpen)
}

func circleArc(c *cursor, cmd Token, a args, style shape.ArcStyle) ([]shape.Shape, error) {
	var v converter
	centre := v.coordOr(a.coords, 0)
	r := v.dim(a.braces[0])
	start := v.number(a.braces[1])
	end := v.number(a.braces[2])
	if v.err != nil {
		return nil, soft(cmd, v.err)
	}
	st, err := c.settings(cmd, a.opts)
	if err != nil {
		return nil, soft(cmd, err)
	}
	s, err := c.p.factory.NewArc(centre, math.Abs(r), geom.Radians(start), geom.Radians(end), style)
	if err != nil {
		return nil, soft(cmd, err)
	}
	return styled(s, st), nil
}

// \psline[opts]{arrows}(x0,y0)(x1,y1)...
func lineF(c *cursor, cmd Token) ([]shape.Shape, error) {
	a, err := c.readArrows(cmd, 1, -1, 0)
	if err != nil {
		return nil, err
	}
	return polyline(c, cmd, a, true)
}

// \pspolygon[opts](x0,y0)(x1,y1)...
func polygonF(c *cursor, cmd Token) ([]shape.Shape, error) {
	a, err := c.read(cmd, 1, -1, 0)
	if err != nil {
		return nil, err
	}
	return polyline(c, cmd, a, false)
}

func polyline(c *cursor, cmd Token, a args, open bool) ([]shape.Shape, error) {
	var v converter
	var pts []*geom.Point
	if len(a.coords) == 1 {
		pts = append(pts, geom.NewPoint(0, 0))
	}
	for _, s := range a.coords {
		pts = append(pts, v.coord(s))
	}
	if v.err != nil {
		return nil, soft(cmd, v.err)
	}
	st, err := c.settings(cmd, a.opts)
	if err != nil {
		return nil, soft(cmd, err)
	}
	s, err := c.p.factory.NewFreehand(pts, shape.Lines, open)
	if err != nil {
		return nil, soft(cmd, err)
	}
	return styled(s, st), nil
}

// subpath is a piece of \pscustom path.
type subpath struct {
	pts    []*geom.Point
	curves bool
	closed bool
}

// pathCommands are accepted inside \pscustom without effect.
var pathCommands = map[string]bool{
	"openshadow":   true,
	"closedshadow": true,
	"fill":         true,
	"stroke":       true,
	"gsave":        true,
	"grestore":     true,
}

// \pscustom[opts]{\moveto(x,y)\lineto(x,y)\curveto(x1,y1)(x2,y2)(x3,y3)\closepath}
// Each sub path becomes a freehand shape; only the end points
// of the curves are kept. A \psarc closed by \closepath is a chord.
func customF(c *cursor, cmd Token) ([]shape.Shape, error) {
	a, err := c.read(cmd, 0, 0, 1)
	if err != nil {
		return nil, err
	}
	st, err := c.settings(cmd, a.opts)
	if err != nil {
		return nil, soft(cmd, err)
	}
	body, err := c.sub(a.braces[0], cmd.Line)
	if err != nil {
		return nil, err
	}

	var (
		out   []shape.Shape
		paths []*subpath
		cur   *subpath
		v     converter
	)
	flush := func() error {
		for _, sp := range paths {
			ft := shape.Lines
			if sp.curves {
				ft = shape.Curves
			}
			s, err := c.p.factory.NewFreehand(sp.pts, ft, !sp.closed)
			if err != nil {
				return soft(cmd, err)
			}
			out = append(out, styled(s, st)...)
		}
		paths, cur = nil, nil
		return nil
	}
	for body.pos < len(body.tokens) {
		tok := body.next()
		if tok.Kind != TokCommand {
			continue
		}
		var nbCoords int
		switch tok.Value {
		case "moveto", "lineto":
			nbCoords = 1
		case "curveto":
			nbCoords = 3
		case "newpath":
			cur = nil
			continue
		case "closepath":
			if cur != nil {
				cur.closed = true
			}
			continue
		case "psarc":
			if err := flush(); err != nil {
				return nil, err
			}
			arc, err := customArc(c, body, tok, st)
			if err != nil {
				return nil, err
			}
			out = append(out, arc...)
			continue
		default:
			if pathCommands[tok.Value] {
				continue
			}
			if err := c.report(soft(tok, ErrUnknownCommand)); err != nil {
				return nil, err
			}
			continue
		}
		ca, err := body.read(tok, nbCoords, nbCoords, 0)
		if err != nil {
			return nil, err
		}
		var end *geom.Point
		for _, coord := range ca.coords {
			end = v.coord(coord)
		}
		if tok.Value == "moveto" || cur == nil {
			cur = &subpath{}
			paths = append(paths, cur)
		}
		cur.pts = append(cur.pts, end)
		cur.curves = cur.curves || tok.Value == "curveto"
	}
	if v.err != nil {
		return nil, soft(cmd, v.err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

// customArc reads a \psarc of a \pscustom body, styled by the
// \pscustom settings st.
func customArc(c, body *cursor, tok Token, st settings) ([]shape.Shape, error) {
	a, err := body.readArrows(tok, 0, 1, 3)
	if err != nil {
		return nil, err
	}
	style := shape.ArcOpen
	if next := body.peek(0); next != nil && next.Kind == TokCommand && next.Value == "closepath" {
		body.pos++
		style = shape.Chord
	}
	saved := c.state
	c.state = st
	defer func() { c.state = saved }()
	return circleArc(c, tok, a, style)
}

func plotF(c *cursor, cmd Token) ([]shape.Shape, error) { return plot(c, cmd, false) }

func parametricPlotF(c *cursor, cmd Token) ([]shape.Shape, error) { return plot(c, cmd, true) }

// \psplot[opts]{xmin}{xmax}{function} and
// \parametricplot[opts]{tmin}{tmax}{fx fy}
func plot(c *cursor, cmd Token, parametric bool) ([]shape.Shape, error) {
	a, err := c.read(cmd, 0, 0, 3)
	if err != nil {
		return nil, err
	}
	var v converter
	from, to := v.number(a.braces[0]), v.number(a.braces[1])
	if v.err != nil {
		return nil, soft(cmd, v.err)
	}
	st, err := c.settings(cmd, a.opts)
	if err != nil {
		return nil, soft(cmd, err)
	}
	fn, err := psfunc.Parse(a.braces[2], nil)
	if err != nil {
		return nil, soft(cmd, fmt.Errorf("%w: %w", ErrInvalidPlot, err))
	}
	s, err := c.p.factory.NewPlot(geom.NewPoint(0, 0), fn, from, to, parametric)
	if err != nil {
		return nil, soft(cmd, fmt.Errorf("%w: %w", ErrInvalidPlot, err))
	}
	out := styled(s, st)
	if _, err := s.Sample(); err != nil {
		return nil, soft(cmd, fmt.Errorf("%w: %w", ErrInvalidPlot, err))
	}
	return out, nil
}

// \psset{opts} changes the settings of the current scope.
func pssetF(c *cursor, cmd Token) ([]shape.Shape, error) {
	a, err := c.read(cmd, 0, 0, 1)
	if err != nil {
		return nil, err
	}
	ignored, err := c.state.apply(a.braces[0], c.p.colors)
	if len(ignored) != 0 {
		c.p.logger.Debug("ignored PSTricks options", "command", cmd.Value, "line", cmd.Line, "options", ignored)
	}
	if err != nil {
		return nil, soft(cmd, err)
	}
	return nil, nil
}

// \newrgbcolor{name}{r g b}
func newRGBColorF(c *cursor, cmd Token) ([]shape.Shape, error) {
	a, err := c.read(cmd, 0, 0, 2)
	if err != nil {
		return nil, err
	}
	col, err := colors.ParseRGB(a.braces[1])
	if err != nil {
		return nil, soft(cmd, fmt.Errorf("%w: %w", ErrMalformedValue, err))
	}
	c.p.colors.Define(a.braces[0], col)
	return nil, nil
}

// parseContent parses the content of a brace, in its own scope.
func (c *cursor) parseContent(content string, line int) ([]shape.Shape, error) {
	sub, err := c.sub(content, line)
	if err != nil {
		return nil, err
	}
	return sub.parseAll()
}

// {...} groups its shapes.
func groupF(c *cursor, tok Token) ([]shape.Shape, error) {
	shapes, err := c.parseContent(tok.Value, tok.Line)
	if err != nil || len(shapes) == 0 {
		return nil, err
	}
	g, err := c.p.factory.NewGroup(shapes...)
	if err != nil {
		return nil, hard(tok, err)
	}
	return []shape.Shape{g}, nil
}

// \psscalebox{sx sy}{...}: the scale is ignored.
func scaleboxF(c *cursor, cmd Token) ([]shape.Shape, error) {
	if _, err := c.read(cmd, 0, 0, 1); err != nil {
		return nil, err
	}
	if !c.peekKind(0, TokBrace) {
		return nil, hard(cmd, fmt.Errorf("%w: content", ErrMissingArgument))
	}
	tok := c.next()
	return c.parseContent(tok.Value, tok.Line)
}

// rotateAround rotates shapes, as a whole, around the centre of their bounds.
func rotateAround(shapes []shape.Shape, theta float64) {
	if len(shapes) == 0 || geom.EqualsDouble(geom.NormaliseAngle(theta), 0) {
		return
	}
	b := shape.RotatedBounds(shapes[0])
	for _, s := range shapes[1:] {
		b = b.Union(shape.RotatedBounds(s))
	}
	centre := b.Centre()
	for _, s := range shapes {
		s.Rotate(&centre, theta)
	}
}

// \rotate{angle}{...}, angle in degrees, counter clockwise
func rotateF(c *cursor, cmd Token) ([]shape.Shape, error) {
	if !c.peekKind(0, TokBrace) {
		return nil, hard(cmd, fmt.Errorf("%w: angle", ErrMissingArgument))
	}
	angle := strings.TrimSpace(c.next().Value)
	if angle == "" {
		return nil, hard(cmd, fmt.Errorf("%w: angle is empty", ErrMissingArgument))
	}
	if !c.peekKind(0, TokBrace) {
		return nil, hard(cmd, fmt.Errorf("%w: content", ErrMissingArgument))
	}
	content := c.next()
	deg, err := parseRotation(angle)
	if err != nil {
		return nil, soft(cmd, err)
	}
	shapes, err := c.parseContent(content.Value, content.Line)
	if err != nil {
		return nil, err
	}
	rotateAround(shapes, -geom.Radians(deg))
	return shapes, nil
}

// parseRotation accepts a number of degrees or one of the
// PSTricks rotation letters.
func parseRotation(s string) (float64, error) {
	switch strings.TrimPrefix(strings.TrimSpace(s), "*") {
	case "U", "N":
		return 0, nil
	case "L", "W":
		return 90, nil
	case "D", "S":
		return 180, nil
	case "R", "E":
		return 270, nil
	}
	return ParseNumber(strings.TrimPrefix(strings.TrimSpace(s), "*"))
}

// \rput[refpoint]{rotation}(x,y){content}
// The content is either PSTricks code, whose shapes are moved to (x,y),
// or a text, possibly coloured with \textcolor{colour}{text}.
func rputF(c *cursor, cmd Token) ([]shape.Shape, error) {
	var ref, rotation, coord string
	if c.peekKind(0, TokBracket) {
		ref = strings.TrimSpace(c.next().Value)
	}
	if c.peekKind(0, TokBrace) && c.peekKind(1, TokParen) {
		rotation = c.next().Value
	}
	if c.peekKind(0, TokParen) {
		coord = c.next().Value
	}
	if !c.peekKind(0, TokBrace) {
		return nil, hard(cmd, fmt.Errorf("%w: content", ErrMissingArgument))
	}
	content := c.next()
	if strings.TrimSpace(content.Value) == "" {
		return nil, hard(cmd, fmt.Errorf("%w: content is empty", ErrMissingArgument))
	}

	var v converter
	pos := geom.NewPoint(0, 0)
	if coord != "" {
		pos = v.coord(coord)
	}
	var deg float64
	if strings.TrimSpace(rotation) != "" && v.err == nil {
		deg, v.err = parseRotation(rotation)
	}
	textPos, ok := shape.ParseRefPoint(ref)
	if !ok && v.err == nil {
		v.err = fmt.Errorf("%w: reference point %q", ErrMalformedValue, ref)
	}
	if v.err != nil {
		return nil, soft(cmd, v.err)
	}
	theta := -geom.Radians(deg)

	sub, err := c.sub(content.Value, content.Line)
	if err != nil {
		return nil, err
	}
	if hasShapeCommand(sub.tokens) {
		shapes, err := sub.parseAll()
		if err != nil {
			return nil, err
		}
		for _, s := range shapes {
			s.Translate(pos.X, pos.Y)
			s.Rotate(pos, theta)
		}
		return shapes, nil
	}

	text, st := strings.TrimSpace(content.Value), c.state
	if len(sub.tokens) == 3 && sub.tokens[0].Kind == TokCommand && sub.tokens[0].Value == "textcolor" &&
		sub.tokens[1].Kind == TokBrace && sub.tokens[2].Kind == TokBrace {
		col, err := lookupColor(c.p.colors, strings.TrimSpace(sub.tokens[1].Value))
		if err != nil {
			return nil, soft(cmd, err)
		}
		st.style.LineColor = col
		text = strings.TrimSpace(sub.tokens[2].Value)
	}
	t, err := c.p.factory.NewText(pos, text)
	if err != nil {
		return nil, soft(cmd, err)
	}
	t.SetTextPosition(textPos)
	t.SetRotation(theta)
	return styled(t, st), nil
}

// hasShapeCommand returns true if tokens hold a command producing
// shapes or a group.
func hasShapeCommand(tokens []Token) bool {
	for _, tok := range tokens {
		switch tok.Kind {
		case TokCommand:
			if _, ok := commands[tok.Value]; ok && !structural[tok.Value] {
				return true
			}
		case TokBrace:
			if hasShapeCommand(mustTokenize(tok.Value)) {
				return true
			}
		}
	}
	return false
}

// mustTokenize returns nil on error.
func mustTokenize(s string) []Token {
	tokens, _ := tokenize(s, 1)
	return tokens
}
