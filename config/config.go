// Package config loads the settings of latexdraw from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/benoitkugler/latexdraw/latex"
	"github.com/benoitkugler/latexdraw/pst"
	"github.com/benoitkugler/latexdraw/pstgen"
)

// Duration is a time.Duration written as "30s" in files.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) { return []byte(time.Duration(d).String()), nil }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

type Config struct {
	// Precision is the number of decimals of the generated numbers.
	Precision int `toml:"precision"`
	// ErrorMode is one of "warn", "ignore", "strict".
	ErrorMode string `toml:"error_mode"`
	// Charset is the label of the input encoding; empty means UTF-8.
	Charset string `toml:"charset"`

	LaTeX  LaTeX  `toml:"latex"`
	Raster Raster `toml:"raster"`
}

type LaTeX struct {
	// Steps are the command lines turning {base}.tex into {base}.png.
	Steps    []string `toml:"steps"`
	Timeout  Duration `toml:"timeout"`
	Retries  int      `toml:"retries"`
	Packages []string `toml:"packages"`
}

type Raster struct {
	// Scale is the number of pixels per drawing unit.
	Scale  float64 `toml:"scale"`
	Margin int     `toml:"margin"`
}

// Default returns a working configuration.
func Default() Config {
	return Config{
		Precision: pstgen.DefaultPrecision,
		ErrorMode: pst.WarnErrorMode.String(),
		LaTeX: LaTeX{
			Steps:   append([]string(nil), latex.DefaultSteps...),
			Timeout: Duration(latex.DefaultTimeout),
		},
		Raster: Raster{Scale: 1, Margin: 10},
	}
}

// DefaultPath returns ~/.config/latexdraw/config.toml.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "latexdraw", "config.toml"), nil
}

// Decode overlays the TOML content of r on the defaults.
// Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the file at path, "~" being expanded.
// An empty path means DefaultPath, which may not exist.
func Load(path string) (Config, error) {
	optional := path == ""
	if optional {
		var err error
		if path, err = DefaultPath(); err != nil {
			return Default(), nil
		}
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return Config{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values which can't be fixed silently.
func (c Config) Validate() error {
	if c.Precision < 0 || c.Precision > 15 {
		return fmt.Errorf("invalid precision %d", c.Precision)
	}
	if _, err := pst.ParseErrorMode(c.ErrorMode); err != nil {
		return err
	}
	if c.LaTeX.Retries < 0 {
		return fmt.Errorf("invalid retries count %d", c.LaTeX.Retries)
	}
	if c.Raster.Scale <= 0 {
		return fmt.Errorf("invalid raster scale %g", c.Raster.Scale)
	}
	return nil
}

// Mode returns the parsed error mode.
func (c Config) Mode() pst.ErrorMode {
	m, _ := pst.ParseErrorMode(c.ErrorMode)
	return m
}

// Compiler returns the LaTeX compiler configured by c.
func (c Config) Compiler(opts latex.CompilerOptions) (*latex.Compiler, error) {
	opts.Steps = c.LaTeX.Steps
	opts.Timeout = time.Duration(c.LaTeX.Timeout)
	opts.Retries = c.LaTeX.Retries
	return latex.NewCompiler(opts)
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
