// Package colors maps PSTricks colour names to RGB values.
//
// A Registry is explicitly built with New and passed to the parser,
// the generators and the LaTeX document builder: user colours
// defined while parsing (\newrgbcolor) or created while generating
// code are visible to every component sharing the registry.
package colors

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
)

// Default colours used by PSTricks.
var (
	Black     = color.RGBA{0, 0, 0, 0xff}
	White     = color.RGBA{0xff, 0xff, 0xff, 0xff}
	DarkGray  = color.RGBA{0x40, 0x40, 0x40, 0xff}
	LineColor = Black
	FillColor = White
)

// base colours defined by pstricks.tex, plus a few dvips names
var builtins = map[string]color.RGBA{
	"black":     Black,
	"white":     White,
	"red":       {0xff, 0, 0, 0xff},
	"green":     {0, 0xff, 0, 0xff},
	"blue":      {0, 0, 0xff, 0xff},
	"cyan":      {0, 0xff, 0xff, 0xff},
	"magenta":   {0xff, 0, 0xff, 0xff},
	"yellow":    {0xff, 0xff, 0, 0xff},
	"gray":      {0x80, 0x80, 0x80, 0xff},
	"lightgray": {0xbf, 0xbf, 0xbf, 0xff},
	"darkgray":  DarkGray,

	"Apricot":     {0xff, 0xad, 0x7a, 0xff},
	"Aquamarine":  {0x2e, 0xff, 0xb2, 0xff},
	"Bittersweet": {0xc2, 0x03, 0x00, 0xff},
	"Brown":       {0x66, 0x00, 0x00, 0xff},
	"Dandelion":   {0xfd, 0xbc, 0x42, 0xff},
	"ForestGreen": {0x00, 0xe0, 0x00, 0xff},
	"Goldenrod":   {0xff, 0xe5, 0x29, 0xff},
	"Maroon":      {0xad, 0x00, 0x00, 0xff},
	"NavyBlue":    {0x0f, 0x75, 0xff, 0xff},
	"OliveGreen":  {0x00, 0x99, 0x00, 0xff},
	"Orange":      {0xff, 0x63, 0x21, 0xff},
	"Peach":       {0xff, 0x80, 0x4d, 0xff},
	"Plum":        {0x80, 0x00, 0xff, 0xff},
	"RoyalBlue":   {0x00, 0x80, 0xff, 0xff},
	"Salmon":      {0xff, 0x78, 0x9e, 0xff},
	"SkyBlue":     {0x61, 0xff, 0xe0, 0xff},
	"Tan":         {0xdb, 0x94, 0x70, 0xff},
	"Violet":      {0x36, 0x1f, 0xff, 0xff},
}

// UserPrefix starts the names created by AddUser.
const UserPrefix = "userColour"

// Registry is a two-way mapping between names and colours.
// It is not safe for concurrent use.
type Registry struct {
	byName  map[string]color.RGBA
	user    map[string]bool
	nbUsers int
}

// New returns a registry holding the builtin names.
func New() *Registry {
	r := &Registry{
		byName: make(map[string]color.RGBA, len(builtins)),
		user:   make(map[string]bool),
	}
	for name, c := range builtins {
		r.byName[name] = c
	}
	return r
}

// Lookup returns the colour registered for name.
func (r *Registry) Lookup(name string) (color.RGBA, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Name returns a name registered for c, preferring builtin names.
func (r *Registry) Name(c color.RGBA) (string, bool) {
	var found []string
	for name, col := range r.byName {
		if col == c {
			found = append(found, name)
		}
	}
	if len(found) == 0 {
		return "", false
	}
	sort.Slice(found, func(i, j int) bool {
		ui, uj := r.user[found[i]], r.user[found[j]]
		if ui != uj {
			return !ui
		}
		return found[i] < found[j]
	})
	return found[0], true
}

// Define registers (or overrides) a user colour.
func (r *Registry) Define(name string, c color.RGBA) {
	r.byName[name] = c
	r.user[name] = true
}

// AddUser returns the name of c, creating a new user colour if needed.
func (r *Registry) AddUser(c color.RGBA) string {
	if name, ok := r.Name(c); ok {
		return name
	}
	var name string
	for {
		r.nbUsers++
		name = UserPrefix + strconv.Itoa(r.nbUsers)
		if _, taken := r.byName[name]; !taken {
			break
		}
	}
	r.Define(name, c)
	return name
}

// IsUser returns true for colours which are not builtin.
func (r *Registry) IsUser(name string) bool { return r.user[name] }

// UserCode returns the \newrgbcolor definition of a user colour,
// or an empty string for builtin or unknown names.
func (r *Registry) UserCode(name string) string {
	c, ok := r.byName[name]
	if !ok || !r.user[name] {
		return ""
	}
	return fmt.Sprintf("\\newrgbcolor{%s}{%s %s %s}", name,
		component(c.R), component(c.G), component(c.B))
}

// ParseRGB reads the "r g b" argument of \newrgbcolor, with
// components in [0, 1].
func ParseRGB(s string) (color.RGBA, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return color.RGBA{}, fmt.Errorf("invalid rgb colour %q: 3 components expected", s)
	}
	var out [3]uint8
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid rgb colour %q: %w", s, err)
		}
		if v < 0 || v > 1 {
			return color.RGBA{}, fmt.Errorf("invalid rgb colour %q: component out of [0,1]", s)
		}
		out[i] = uint8(v*255 + 0.5)
	}
	return color.RGBA{out[0], out[1], out[2], 0xff}, nil
}

func component(v uint8) string {
	return strconv.FormatFloat(float64(v)/255, 'f', 3, 64)
}
