package pst

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/benoitkugler/latexdraw/colors"
	"github.com/benoitkugler/latexdraw/shape"
)

// settings holds the graphics parameters in force, as
// set by \psset or by the options of a command.
type settings struct {
	style      shape.Style
	plotPoints int
	plotStyle  shape.PlotStyle
}

func defaultSettings() settings {
	return settings{style: shape.DefaultStyle(), plotPoints: shape.DefaultPlotPoints}
}

// splitOptions splits "k1=v1, k2=v2" into pairs. Commas inside
// braces do not separate options.
func splitOptions(s string) [][2]string {
	var (
		out   [][2]string
		depth int
		start int
	)
	add := func(part string) {
		part = strings.TrimSpace(part)
		if part == "" {
			return
		}
		k, v, _ := strings.Cut(part, "=")
		v = strings.TrimSpace(v)
		v = strings.TrimSuffix(strings.TrimPrefix(v, "{"), "}")
		out = append(out, [2]string{strings.TrimSpace(k), strings.TrimSpace(v)})
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				add(s[start:i])
				start = i + 1
			}
		}
	}
	add(s[start:])
	return out
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "", "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: boolean %q", ErrMalformedValue, v)
}

func lookupColor(reg *colors.Registry, name string) (color.RGBA, error) {
	c, ok := reg.Lookup(name)
	if !ok {
		return c, fmt.Errorf("%w: unknown colour %q", ErrMalformedValue, name)
	}
	return c, nil
}

// apply sets the options found in opts. Valid options are applied
// even if others are malformed; the returned error joins the failures.
// Unsupported keys are returned in ignored.
func (st *settings) apply(opts string, reg *colors.Registry) (ignored []string, err error) {
	var errs []error
	for _, kv := range splitOptions(opts) {
		if e := st.applyOne(kv[0], kv[1], reg); e != nil {
			if errors.Is(e, errUnsupportedOption) {
				ignored = append(ignored, kv[0])
				continue
			}
			errs = append(errs, fmt.Errorf("option %s: %w", kv[0], e))
		}
	}
	return ignored, errors.Join(errs...)
}

var errUnsupportedOption = errors.New("unsupported option")

func (st *settings) applyOne(k, v string, reg *colors.Registry) error {
	switch k {
	case "linewidth":
		w, err := parseDim(v)
		if err != nil {
			return err
		}
		st.style.LineWidth = w
	case "linecolor", "fillcolor", "shadowcolor":
		c, err := lookupColor(reg, v)
		if err != nil {
			return err
		}
		switch k {
		case "linecolor":
			st.style.LineColor = c
		case "fillcolor":
			st.style.FillColor = c
		default:
			st.style.ShadowColor = c
		}
	case "linestyle":
		ls, ok := shape.ParseLineStyle(v)
		if !ok {
			return fmt.Errorf("%w: line style %q", ErrMalformedValue, v)
		}
		st.style.LineStyle = ls
	case "fillstyle":
		fs, ok := shape.ParseFillStyle(v)
		if !ok {
			return fmt.Errorf("%w: fill style %q", ErrMalformedValue, v)
		}
		st.style.FillStyle = fs
	case "shadow":
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		st.style.Shadow = b
	case "shadowsize":
		d, err := parseDim(v)
		if err != nil {
			return err
		}
		st.style.ShadowSize = d
	case "shadowangle":
		a, err := ParseNumber(v)
		if err != nil {
			return err
		}
		st.style.ShadowAngle = a
	case "plotpoints":
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 2 || n > shape.MaxPlotPoints {
			return fmt.Errorf("%w: plotpoints %q", ErrMalformedValue, v)
		}
		st.plotPoints = n
	case "plotstyle":
		ps, ok := shape.ParsePlotStyle(v)
		if !ok {
			return fmt.Errorf("%w: plot style %q", ErrMalformedValue, v)
		}
		st.plotStyle = ps
	default:
		// framearc, dimen, arrows...
		return errUnsupportedOption
	}
	return nil
}
