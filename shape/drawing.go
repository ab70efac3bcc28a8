package shape

import (
	"github.com/benoitkugler/latexdraw/geom"
)

// Drawing is the ordered list of the top level shapes of a document.
// It owns its shapes.
type Drawing struct {
	root Group
}

func NewDrawing() *Drawing { return &Drawing{} }

// Add appends s, ignoring nil shapes.
func (d *Drawing) Add(s Shape) {
	if s != nil {
		d.root.shapes = append(d.root.shapes, s)
	}
}

func (d *Drawing) Shapes() []Shape { return d.root.shapes }
func (d *Drawing) Len() int        { return len(d.root.shapes) }
func (d *Drawing) IsEmpty() bool   { return len(d.root.shapes) == 0 }

// ShapeAt returns the i-th shape, or nil if i is out of range.
func (d *Drawing) ShapeAt(i int) Shape {
	if i < 0 || i >= len(d.root.shapes) {
		return nil
	}
	return d.root.shapes[i]
}

// Remove removes and returns the i-th shape.
func (d *Drawing) Remove(i int) Shape { return d.root.Remove(i) }

// Bounds returns the bounding box of the rotated shapes.
func (d *Drawing) Bounds() geom.Rect { return RotatedBounds(&d.root) }

// HitTest returns the index of the top most shape containing (x, y), or -1.
func (d *Drawing) HitTest(x, y float64) int {
	for i := len(d.root.shapes) - 1; i >= 0; i-- {
		if d.root.shapes[i].Contains(x, y) {
			return i
		}
	}
	return -1
}

// Select returns the indices of the shapes intersecting r.
func (d *Drawing) Select(r geom.Rect) []int {
	var out []int
	for i, s := range d.root.shapes {
		if s.Intersects(r) {
			out = append(out, i)
		}
	}
	return out
}
