package latex

import (
	"context"
	"image"
	"image/color"
	"sync"

	"github.com/benoitkugler/latexdraw/colors"
	"github.com/benoitkugler/latexdraw/shape"
)

// textView is the compiled image of a text, with the
// attributes it was compiled from.
type textView struct {
	text   string
	colour color.RGBA
	pos    shape.TextPosition

	img image.Image
	log string
	err error
}

func (v *textView) matches(t *shape.Text) bool {
	return v.text == t.Text() && v.colour == t.Style().LineColor && v.pos == t.TextPosition()
}

// TextImager provides the LaTeX rendering of text shapes. An image
// is only compiled again when the text, its colour or its position
// changed.
type TextImager struct {
	compile  func(ctx context.Context, doc string) (image.Image, string, error)
	colors   *colors.Registry
	packages []string

	mu    sync.Mutex
	views map[*shape.Text]*textView
}

func NewTextImager(c *Compiler, reg *colors.Registry, packages []string) *TextImager {
	if reg == nil {
		reg = colors.New()
	}
	return &TextImager{compile: c.Compile, colors: reg, packages: packages, views: make(map[*shape.Text]*textView)}
}

// Image returns the compiled image of t, or the error and
// the log of the failed compilation.
func (ti *TextImager) Image(ctx context.Context, t *shape.Text) (image.Image, string, error) {
	ti.mu.Lock()
	defer ti.mu.Unlock()

	if v, ok := ti.views[t]; ok && v.matches(t) {
		return v.img, v.log, v.err
	}
	v := &textView{text: t.Text(), colour: t.Style().LineColor, pos: t.TextPosition()}
	v.img, v.log, v.err = ti.compile(ctx, TextDocument(t, ti.colors, ti.packages))
	if ctx.Err() == nil {
		// a cancelled compilation is tried again next time
		ti.views[t] = v
	}
	return v.img, v.log, v.err
}

// Forget drops the image of t.
func (ti *TextImager) Forget(t *shape.Text) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	delete(ti.views, t)
}
