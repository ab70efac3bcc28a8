// Package pstgen generates PSTricks code from shapes.
//
// The code of each shape is memoized: it is only regenerated
// when the shape changed since the previous generation, which is
// detected by comparing the shape with a snapshot taken at that time.
package pstgen

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/benoitkugler/latexdraw/colors"
	"github.com/benoitkugler/latexdraw/geom"
	"github.com/benoitkugler/latexdraw/shape"
)

// DefaultPrecision is the default number of decimals of the emitted numbers.
const DefaultPrecision = 4

type Options struct {
	// Precision is the number of decimals of the emitted numbers.
	// Zero means DefaultPrecision.
	Precision int
	// Origin is the drawing point mapped to (0,0).
	Origin geom.Point
	// Colors names the colours of the shapes; colours without
	// a name are added as user colours.
	Colors *colors.Registry
}

// view is the memoized code of a shape.
type view struct {
	snapshot shape.Shape
	code     string
	colours  []string // user colours used by code
}

// Generator emits PSTricks code. It is not safe for concurrent use.
type Generator struct {
	precision int
	origin    geom.Point
	colors    *colors.Registry

	views       map[shape.Shape]*view
	generations int
}

func New(opts Options) *Generator {
	g := &Generator{precision: opts.Precision, origin: opts.Origin, colors: opts.Colors, views: make(map[shape.Shape]*view)}
	if g.precision <= 0 {
		g.precision = DefaultPrecision
	}
	if g.colors == nil {
		g.colors = colors.New()
	}
	return g
}

// Colors returns the registry used to name colours.
func (g *Generator) Colors() *colors.Registry { return g.colors }

// Generations returns the number of shape codes generated so far,
// memoized codes excluded.
func (g *Generator) Generations() int { return g.generations }

// Forget drops the memoized code of s.
func (g *Generator) Forget(s shape.Shape) { delete(g.views, s) }

func (g *Generator) view(s shape.Shape) *view {
	if v, ok := g.views[s]; ok && shape.Equal(v.snapshot, s) {
		return v
	}
	w := writer{g: g}
	w.shape(s)
	v := &view{snapshot: shape.Clone(s), code: w.sb.String(), colours: w.userColours()}
	g.views[s] = v
	g.generations++
	return v
}

// ShapeCode returns the code of s, without the definition of its colours.
func (g *Generator) ShapeCode(s shape.Shape) string {
	if s == nil {
		return ""
	}
	return g.view(s).code
}

// ColourDefinitions returns the \newrgbcolor commands needed by shapes.
func (g *Generator) ColourDefinitions(shapes ...shape.Shape) string {
	seen := map[string]bool{}
	var names []string
	for _, s := range shapes {
		if s == nil {
			continue
		}
		for _, name := range g.view(s).colours {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(g.colors.UserCode(name))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// DrawingCode returns the code of a whole drawing: the colour
// definitions then a pspicture sized to the drawing.
func (g *Generator) DrawingCode(d *shape.Drawing) string {
	if d.IsEmpty() {
		return ""
	}
	shapes := d.Shapes()
	var sb strings.Builder
	sb.WriteString(g.ColourDefinitions(shapes...))
	b := d.Bounds()
	sb.WriteString("\\psscalebox{1.0 1.0} % Change this value to rescale the drawing.\n{\n")
	sb.WriteString("\\begin{pspicture}(" + g.num(g.x(b.MinX)) + "," + g.num(g.y(b.MaxY)) + ")(" +
		g.num(g.x(b.MaxX)) + "," + g.num(g.y(b.MinY)) + ")\n")
	for _, s := range shapes {
		if code := g.ShapeCode(s); code != "" {
			sb.WriteString(code)
			sb.WriteByte('\n')
		}
	}
	sb.WriteString("\\end{pspicture}\n}\n")
	return sb.String()
}

// x and y convert drawing coordinates into centimetres.
func (g *Generator) x(v float64) float64 { return (v - g.origin.X) / shape.PPC }
func (g *Generator) y(v float64) float64 { return (g.origin.Y - v) / shape.PPC }

// num returns the cut number of v.
func (g *Generator) num(v float64) string {
	v = geom.CutNumber(v)
	p := math.Pow(10, float64(g.precision))
	v = math.Round(v*p) / p
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
