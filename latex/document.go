// Package latex compiles pieces of LaTeX code into images, using
// an external toolchain (latex, dvips, ps2pdf, pdfcrop, pdftops
// and convert by default).
package latex

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/benoitkugler/latexdraw/colors"
	"github.com/benoitkugler/latexdraw/geom"
	"github.com/benoitkugler/latexdraw/pst"
	"github.com/benoitkugler/latexdraw/shape"
)

// DocumentOptions tunes the document wrapping a piece of code.
type DocumentOptions struct {
	// Packages are appended to the preamble, e.g. "\usepackage{amsmath}".
	Packages []string
	// Colour of the text; the default line colour adds no definition.
	Colour color.RGBA
	// Colors names Colour. Nil means a new registry.
	Colors *colors.Registry
}

// Scale is the factor mapping LaTeX points to drawing pixels,
// so that the compiled image matches the size of the drawing.
var Scale = shape.PPC / pst.PtPerCm

// Document returns a standalone LaTeX document rendering code.
func Document(code string, opts DocumentOptions) string {
	var sb strings.Builder
	sb.WriteString(`\documentclass[10pt]{article}\usepackage[usenames,dvipsnames]{pstricks}`)
	for _, p := range opts.Packages {
		sb.WriteString(p)
	}
	scale := strconv.FormatFloat(geom.CutNumber(Scale), 'g', -1, 32)
	sb.WriteString(`\pagestyle{empty}\begin{document}\psscalebox{` + scale + " " + scale + "}{")

	coloured := opts.Colour != (color.RGBA{}) && opts.Colour != colors.LineColor
	if coloured {
		reg := opts.Colors
		if reg == nil {
			reg = colors.New()
		}
		name := reg.AddUser(opts.Colour)
		sb.WriteString(reg.UserCode(name))
		sb.WriteString(`\textcolor{` + name + "}{")
	}
	sb.WriteString(code)
	if coloured {
		sb.WriteByte('}')
	}
	sb.WriteString(`}\end{document}`)
	return sb.String()
}

// TextDocument returns the document of a text shape, coloured
// with its line colour.
func TextDocument(t *shape.Text, reg *colors.Registry, packages []string) string {
	return Document(t.Text(), DocumentOptions{Packages: packages, Colour: t.Style().LineColor, Colors: reg})
}
