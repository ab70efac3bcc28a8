package latex

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/latexdraw/colors"
	"github.com/benoitkugler/latexdraw/geom"
	"github.com/benoitkugler/latexdraw/shape"
)

func TestDocument(t *testing.T) {
	doc := Document("hello", DocumentOptions{})
	assert.True(t, strings.HasPrefix(doc, `\documentclass[10pt]{article}\usepackage[usenames,dvipsnames]{pstricks}`+
		`\pagestyle{empty}\begin{document}\psscalebox{1.75729`), doc)
	assert.True(t, strings.HasSuffix(doc, "}{hello}\\end{document}"), doc)
	assert.InDelta(t, 1.7573, Scale, 1e-4)

	doc = Document("hello", DocumentOptions{Colour: colors.LineColor, Packages: []string{`\usepackage{amsmath}`}})
	assert.Contains(t, doc, `{pstricks}\usepackage{amsmath}\pagestyle`)
	assert.NotContains(t, doc, "textcolor")

	reg := colors.New()
	doc = Document("hello", DocumentOptions{Colour: color.RGBA{0x12, 0x34, 0x56, 0xff}, Colors: reg})
	assert.Contains(t, doc, `\newrgbcolor{userColour1}{0.071 0.204 0.337}\textcolor{userColour1}{hello}}\end{document}`)

	// builtin colours need no definition
	doc = Document("hello", DocumentOptions{Colour: color.RGBA{0xff, 0, 0, 0xff}})
	assert.Contains(t, doc, `{\textcolor{red}{hello}}\end{document}`)
	assert.NotContains(t, doc, "newrgbcolor")
}

func TestNewCompiler(t *testing.T) {
	c, err := NewCompiler(CompilerOptions{})
	require.NoError(t, err)
	assert.Len(t, c.steps, len(DefaultSteps))
	assert.Equal(t, DefaultTimeout, c.timeout)

	c, err = NewCompiler(CompilerOptions{Steps: []string{`convert "my file.ps" {base}.png`}})
	require.NoError(t, err)
	assert.Equal(t, []string{"convert", "my file.ps", "{base}.png"}, c.steps[0])
	assert.Equal(t, []string{"convert", "my file.ps", "/tmp/x/pic.png"}, expand(c.steps[0], "/tmp/x", "/tmp/x/pic"))

	_, err = NewCompiler(CompilerOptions{Steps: []string{`latex "unterminated`}})
	assert.Error(t, err)
	_, err = NewCompiler(CompilerOptions{Steps: []string{"  "}})
	assert.Error(t, err)
}

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
}

// assertCleaned checks that no temporary directory is left in root.
func assertCleaned(t *testing.T, root string) {
	t.Helper()
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCompileSuccess(t *testing.T) {
	requireTool(t, "cp")
	src := filepath.Join(t.TempDir(), "ref.png")
	f, err := os.Create(src)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 3, 2))))
	require.NoError(t, f.Close())

	root := t.TempDir()
	c, err := NewCompiler(CompilerOptions{
		Steps:   []string{"cp " + src + " {base}.png"},
		TempDir: root,
	})
	require.NoError(t, err)
	img, log, err := c.Compile(context.Background(), Document("x", DocumentOptions{}))
	require.NoError(t, err)
	assert.Empty(t, log)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assertCleaned(t, root)
}

func TestCompileFailures(t *testing.T) {
	root := t.TempDir()
	c, err := NewCompiler(CompilerOptions{Steps: []string{"latexdraw-missing-tool {base}.tex"}, TempDir: root, Retries: 2})
	require.NoError(t, err)

	_, _, err = c.Compile(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyCode)

	_, _, err = c.Compile(context.Background(), "doc")
	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.True(t, strings.HasPrefix(ce.Step, "latexdraw-missing-tool "))
	assert.ErrorIs(t, err, exec.ErrNotFound)
	assertCleaned(t, root)
}

func TestCompileNoImage(t *testing.T) {
	requireTool(t, "true")
	root := t.TempDir()
	c, err := NewCompiler(CompilerOptions{Steps: []string{"true"}, TempDir: root})
	require.NoError(t, err)
	_, _, err = c.Compile(context.Background(), "doc")
	assert.ErrorIs(t, err, ErrNoImage)
	assertCleaned(t, root)
}

func TestCompileLog(t *testing.T) {
	requireTool(t, "sh")
	root := t.TempDir()
	c, err := NewCompiler(CompilerOptions{Steps: []string{`sh -c "echo broken; exit 1"`}, TempDir: root, Retries: 1})
	require.NoError(t, err)
	_, log, err := c.Compile(context.Background(), "doc")
	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "broken\n", log)
	assert.Equal(t, log, ce.Log)
	assertCleaned(t, root)
}

func TestCompileTimeout(t *testing.T) {
	requireTool(t, "sleep")
	root := t.TempDir()
	c, err := NewCompiler(CompilerOptions{Steps: []string{"sleep 10"}, TempDir: root, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	start := time.Now()
	_, _, err = c.Compile(context.Background(), "doc")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
	assertCleaned(t, root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = c.Compile(ctx, "doc")
	assert.ErrorIs(t, err, context.Canceled)
	assertCleaned(t, root)
}

func TestTextImager(t *testing.T) {
	var docs []string
	ti := NewTextImager(&Compiler{}, nil, nil)
	ti.compile = func(ctx context.Context, doc string) (image.Image, string, error) {
		docs = append(docs, doc)
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), "", nil
	}

	text, err := shape.NewFactory().NewText(geom.NewPoint(0, 0), "a")
	require.NoError(t, err)
	ctx := context.Background()

	img, _, err := ti.Image(ctx, text)
	require.NoError(t, err)
	assert.NotNil(t, img)
	_, _, _ = ti.Image(ctx, text)
	assert.Len(t, docs, 1)

	text.SetText("b")
	_, _, _ = ti.Image(ctx, text)
	assert.Len(t, docs, 2)
	assert.Contains(t, docs[1], "{b}")

	text.Style().LineColor = color.RGBA{0, 0, 0xff, 0xff}
	_, _, _ = ti.Image(ctx, text)
	require.Len(t, docs, 3)
	assert.Contains(t, docs[2], `\textcolor{blue}{b}`)

	text.SetTextPosition(shape.TextCentre)
	_, _, _ = ti.Image(ctx, text)
	assert.Len(t, docs, 4)

	ti.Forget(text)
	_, _, _ = ti.Image(ctx, text)
	assert.Len(t, docs, 5)
}

func TestTextImagerFailure(t *testing.T) {
	var calls int
	ti := NewTextImager(&Compiler{}, nil, nil)
	ti.compile = func(ctx context.Context, doc string) (image.Image, string, error) {
		calls++
		return nil, "! Undefined control sequence.", &CompileError{Step: "latex", Err: errors.New("exit status 1")}
	}
	text, err := shape.NewFactory().NewText(geom.NewPoint(0, 0), `\foo`)
	require.NoError(t, err)

	img, log, err := ti.Image(context.Background(), text)
	assert.Nil(t, img)
	assert.Contains(t, log, "Undefined control sequence")
	assert.Error(t, err)
	// failures are memoized as well
	_, _, _ = ti.Image(context.Background(), text)
	assert.Equal(t, 1, calls)
}
