package shape

import (
	"errors"

	"github.com/benoitkugler/latexdraw/geom"
)

// ErrCycle is returned when adding a group into itself.
var ErrCycle = errors.New("a group cannot contain itself")

// Group is an ordered list of shapes. A group has no rotation
// of its own: rotating it rotates each child around the pivot.
type Group struct {
	shapes []Shape
}

func (*Group) Kind() Kind { return KindGroup }

// Shapes returns the children; the slice must not be modified.
func (g *Group) Shapes() []Shape { return g.shapes }

func (g *Group) Len() int { return len(g.shapes) }

// Add appends s to the group. Adding g itself, directly or
// through a nested group, returns ErrCycle.
func (g *Group) Add(s Shape) error {
	if s == nil {
		return nil
	}
	if contains(s, g) {
		return ErrCycle
	}
	g.shapes = append(g.shapes, s)
	return nil
}

// contains returns true if target is s or one of its descendants.
func contains(s Shape, target *Group) bool {
	if gr, ok := s.(*Group); ok {
		if gr == target {
			return true
		}
		for _, child := range gr.shapes {
			if contains(child, target) {
				return true
			}
		}
	}
	return false
}

// Remove removes the shape at index i, returning it.
func (g *Group) Remove(i int) Shape {
	if i < 0 || i >= len(g.shapes) {
		return nil
	}
	s := g.shapes[i]
	g.shapes = append(g.shapes[:i], g.shapes[i+1:]...)
	return s
}

// Points returns the points of every child, in order.
func (g *Group) Points() []*geom.Point {
	var out []*geom.Point
	for _, s := range g.shapes {
		out = append(out, s.Points()...)
	}
	return out
}

func (g *Group) NbPoints() int {
	n := 0
	for _, s := range g.shapes {
		n += s.NbPoints()
	}
	return n
}

// Bounds returns the union of the rotated bounds of the children.
func (g *Group) Bounds() geom.Rect { return RotatedBounds(g) }

func (g *Group) GravityCentre() *geom.Point {
	c := g.Bounds().Centre()
	return &c
}

func (g *Group) Translate(tx, ty float64) {
	for _, s := range g.shapes {
		s.Translate(tx, ty)
	}
}

func (g *Group) Rotate(pivot *geom.Point, theta float64) {
	for _, s := range g.shapes {
		s.Rotate(pivot, theta)
	}
}

func (g *Group) Contains(x, y float64) bool {
	for _, s := range g.shapes {
		if s.Contains(x, y) {
			return true
		}
	}
	return false
}

func (g *Group) Intersects(r geom.Rect) bool {
	for _, s := range g.shapes {
		if s.Intersects(r) {
			return true
		}
	}
	return false
}

// Path concatenates the paths of the children.
func (g *Group) Path() Path {
	var out Path
	for _, s := range g.shapes {
		out = append(out, s.Path()...)
	}
	return out
}

// Copy copies each child of src into the child with the same
// index, when src is a group of the same length.
func (g *Group) Copy(src Shape) {
	other, ok := src.(Container)
	if !ok || len(other.Shapes()) != len(g.shapes) {
		return
	}
	for i, s := range other.Shapes() {
		g.shapes[i].Copy(s)
	}
}

func (g *Group) Clone() Shape {
	out := &Group{shapes: make([]Shape, len(g.shapes))}
	for i, s := range g.shapes {
		out.shapes[i] = s.Clone()
	}
	return out
}
