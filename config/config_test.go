package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/latexdraw/latex"
	"github.com/benoitkugler/latexdraw/pst"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, pst.WarnErrorMode, cfg.Mode())
	assert.Equal(t, latex.DefaultSteps, cfg.LaTeX.Steps)

	// the defaults are not shared
	cfg.LaTeX.Steps[0] = "pdflatex"
	assert.NotEqual(t, "pdflatex", latex.DefaultSteps[0])
}

func TestDecode(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
precision = 2
error_mode = "strict"
charset = "latin1"

[latex]
timeout = "5s"
retries = 1
packages = ['\usepackage{amsmath}']

[raster]
scale = 2.5
`))
	require.NoError(t, err)

	exp := Default()
	exp.Precision = 2
	exp.ErrorMode = "strict"
	exp.Charset = "latin1"
	exp.LaTeX.Timeout = Duration(5 * time.Second)
	exp.LaTeX.Retries = 1
	exp.LaTeX.Packages = []string{`\usepackage{amsmath}`}
	exp.Raster.Scale = 2.5
	if diff := cmp.Diff(exp, cfg); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}
	assert.Equal(t, pst.StrictErrorMode, cfg.Mode())
}

func TestDecodeErrors(t *testing.T) {
	for _, input := range []string{
		`unknown = 1`,
		`error_mode = "loud"`,
		`precision = -1`,
		"[latex]\ntimeout = \"soon\"",
		"[latex]\nretries = -2",
		"[raster]\nscale = 0",
		`precision = `,
	} {
		_, err := Decode(strings.NewReader(input))
		assert.Error(t, err, input)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("precision = 3\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Precision)
	assert.Equal(t, Default().Raster, cfg.Raster)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("precision = 30\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, path)
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.LaTeX.Packages = []string{`\usepackage{amssymb}`}
	var buf bytes.Buffer
	require.NoError(t, cfg.Write(&buf))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestCompiler(t *testing.T) {
	cfg := Default()
	cfg.LaTeX.Steps = []string{`sh -c "unterminated`}
	_, err := cfg.Compiler(latex.CompilerOptions{})
	assert.Error(t, err)

	cfg.LaTeX.Steps = []string{"true"}
	c, err := cfg.Compiler(latex.CompilerOptions{})
	require.NoError(t, err)
	assert.NotNil(t, c)
}
