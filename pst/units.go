package pst

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benoitkugler/latexdraw/geom"
	"github.com/benoitkugler/latexdraw/shape"
)

// PtPerCm is the number of TeX points in a centimetre.
const PtPerCm = 28.45274

// Unit is a PSTricks length unit.
type Unit uint8

const (
	Cm Unit = iota // also the unit of unitless values
	Mm
	Pt
	Inch
)

var unitSuffixes = [...]struct {
	suffix string
	unit   Unit
}{
	{"cm", Cm},
	{"mm", Mm},
	{"pt", Pt},
	{"in", Inch},
}

// ToCm converts v, expressed in u, into centimetres.
// Inches are divided by 2.54, as LaTeXDraw always did.
func (u Unit) ToCm(v float64) float64 {
	switch u {
	case Mm:
		return v / 10
	case Pt:
		return v / PtPerCm
	case Inch:
		return v / 2.54
	default:
		return v
	}
}

// ParseNumber parses a decimal number which may be prefixed by a run
// of signs: the parity of the '-' characters decides the sign, so that
// "--+12" is 12 and "+-3" is -3.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	neg := false
	i := 0
	for ; i < len(s) && (s[i] == '+' || s[i] == '-'); i++ {
		if s[i] == '-' {
			neg = !neg
		}
	}
	body := strings.TrimSpace(s[i:])
	if body == "" || body[0] == '+' || body[0] == '-' {
		return 0, fmt.Errorf("%w: number %q", ErrMalformedValue, s)
	}
	v, err := strconv.ParseFloat(body, 64)
	if err != nil || !geom.IsValidCoordinate(v) {
		return 0, fmt.Errorf("%w: number %q", ErrMalformedValue, s)
	}
	if neg {
		v = -v
	}
	return v, nil
}

// ParseLength parses a number followed by an optional unit
// and returns its value in centimetres.
func ParseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	unit := Cm
	for _, us := range unitSuffixes {
		if strings.HasSuffix(s, us.suffix) {
			unit = us.unit
			s = strings.TrimSuffix(s, us.suffix)
			break
		}
	}
	v, err := ParseNumber(s)
	if err != nil {
		return 0, err
	}
	return unit.ToCm(v), nil
}

// parseDim returns a length in drawing units.
func parseDim(s string) (float64, error) {
	v, err := ParseLength(s)
	return v * shape.PPC, err
}

// parseCoord parses the content of a "(x,y)" group. Missing
// components default to 0. The returned point is in drawing
// units, with y pointing down.
func parseCoord(s string) (*geom.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: coordinate (%s)", ErrMalformedValue, s)
	}
	var xy [2]float64
	for i, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		v, err := ParseLength(part)
		if err != nil {
			return nil, err
		}
		xy[i] = v
	}
	return geom.NewPoint(xy[0]*shape.PPC, -xy[1]*shape.PPC), nil
}
