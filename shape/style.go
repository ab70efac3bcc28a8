package shape

import (
	"image/color"

	"github.com/benoitkugler/latexdraw/colors"
)

// LineStyle is the stroking pattern of a shape border.
type LineStyle uint8

const (
	SolidLine LineStyle = iota
	DashedLine
	DottedLine
	NoLine
)

// PSTName returns the value of the PSTricks linestyle option.
func (l LineStyle) PSTName() string {
	switch l {
	case DashedLine:
		return "dashed"
	case DottedLine:
		return "dotted"
	case NoLine:
		return "none"
	default:
		return "solid"
	}
}

// ParseLineStyle is the inverse of PSTName.
func ParseLineStyle(s string) (LineStyle, bool) {
	switch s {
	case "solid":
		return SolidLine, true
	case "dashed":
		return DashedLine, true
	case "dotted":
		return DottedLine, true
	case "none":
		return NoLine, true
	}
	return 0, false
}

// FillStyle tells how the interior of a shape is painted.
type FillStyle uint8

const (
	NoFill FillStyle = iota
	SolidFill
)

func (f FillStyle) PSTName() string {
	if f == SolidFill {
		return "solid"
	}
	return "none"
}

func ParseFillStyle(s string) (FillStyle, bool) {
	switch s {
	case "none":
		return NoFill, true
	case "solid":
		return SolidFill, true
	}
	return 0, false
}

// Default style values, in internal units.
const (
	DefaultLineWidth   = 2.
	DefaultShadowSize  = 3.
	DefaultShadowAngle = -45. // degrees
	DefaultDashBlack   = 0.16 * PPC
	DefaultDashWhite   = 0.16 * PPC
	DefaultDotSep      = 0.08 * PPC
)

// Style groups the line, fill and shadow attributes of a shape.
type Style struct {
	LineWidth float64
	LineColor color.RGBA
	LineStyle LineStyle

	FillStyle FillStyle
	FillColor color.RGBA

	Shadow      bool
	ShadowColor color.RGBA
	ShadowSize  float64
	ShadowAngle float64 // in degrees, as PSTricks does
}

// DefaultStyle returns the PSTricks defaults.
func DefaultStyle() Style {
	return Style{
		LineWidth:   DefaultLineWidth,
		LineColor:   colors.LineColor,
		LineStyle:   SolidLine,
		FillStyle:   NoFill,
		FillColor:   colors.FillColor,
		ShadowColor: colors.DarkGray,
		ShadowSize:  DefaultShadowSize,
		ShadowAngle: DefaultShadowAngle,
	}
}

// IsFilled returns true if the interior is painted.
func (s Style) IsFilled() bool { return s.FillStyle != NoFill }

// IsStroked returns true if the border is painted.
func (s Style) IsStroked() bool { return s.LineStyle != NoLine && s.LineWidth > 0 }

// Dashes returns the dash pattern of the line style, in internal units,
// or nil for solid lines.
func (s Style) Dashes() []float64 {
	switch s.LineStyle {
	case DashedLine:
		return []float64{DefaultDashBlack, DefaultDashWhite}
	case DottedLine:
		return []float64{s.LineWidth, DefaultDotSep}
	default:
		return nil
	}
}
