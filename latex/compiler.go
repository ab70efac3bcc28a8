package latex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-shellwords"
)

// Placeholders of the step command lines.
const (
	DirPlaceholder  = "{dir}"  // the temporary directory
	BasePlaceholder = "{base}" // the path of the files, without extension
)

// DefaultSteps turn {base}.tex into {base}.png.
var DefaultSteps = []string{
	"latex --halt-on-error --interaction=nonstopmode --output-directory={dir} {base}.tex",
	"dvips {base}.dvi -o {base}.ps",
	"ps2pdf {base}.ps {base}.pdf",
	"pdfcrop {base}.pdf {base}.pdf",
	"pdftops {base}.pdf {base}.ps",
	"convert -channel RGBA {base}.ps {base}.png",
}

const (
	DefaultTimeout = 30 * time.Second
	baseName       = "latexdrawTmpPic"
)

var (
	ErrEmptyCode = errors.New("empty LaTeX code")
	ErrNoImage   = errors.New("no image produced")
)

// CompileError is returned when a step of the toolchain fails.
// Log holds the output of the failing step.
type CompileError struct {
	Step string
	Log  string
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("latex step %q failed: %s", e.Step, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// CompilerOptions tunes a Compiler. The zero value uses the defaults.
type CompilerOptions struct {
	Steps []string
	// Timeout bounds each step.
	Timeout time.Duration
	// Retries is the number of additional attempts of a failing step.
	Retries int
	// TempDir is the parent of the temporary directories;
	// empty means os.TempDir().
	TempDir string
	Logger  *slog.Logger
}

// Compiler runs the external toolchain. It is safe for concurrent use:
// each compilation uses its own temporary directory.
type Compiler struct {
	steps   [][]string
	timeout time.Duration
	retries int
	tempDir string
	logger  *slog.Logger
}

// NewCompiler splits the step command lines with shell rules.
func NewCompiler(opts CompilerOptions) (*Compiler, error) {
	c := &Compiler{timeout: opts.Timeout, retries: opts.Retries, tempDir: opts.TempDir, logger: opts.Logger}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.retries < 0 {
		c.retries = 0
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	steps := opts.Steps
	if len(steps) == 0 {
		steps = DefaultSteps
	}
	for _, line := range steps {
		args, err := shellwords.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("invalid step %q: %w", line, err)
		}
		if len(args) == 0 {
			return nil, fmt.Errorf("invalid step %q: empty command", line)
		}
		c.steps = append(c.steps, args)
	}
	return c, nil
}

// Compile writes doc in a temporary directory, runs the steps and
// decodes the resulting PNG. The returned log is the output of the
// failing step, if any. The temporary directory is always removed.
func (c *Compiler) Compile(ctx context.Context, doc string) (image.Image, string, error) {
	if strings.TrimSpace(doc) == "" {
		return nil, "", ErrEmptyCode
	}
	dir, err := os.MkdirTemp(c.tempDir, "latexdraw")
	if err != nil {
		return nil, "", err
	}
	defer os.RemoveAll(dir)

	base := filepath.Join(dir, baseName)
	if err := os.WriteFile(base+".tex", []byte(doc), 0o644); err != nil {
		return nil, "", err
	}
	for _, step := range c.steps {
		args := expand(step, dir, base)
		if log, err := c.run(ctx, dir, args); err != nil {
			return nil, log, &CompileError{Step: strings.Join(args, " "), Log: log, Err: err}
		}
	}

	f, err := os.Open(base + ".png")
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrNoImage, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrNoImage, err)
	}
	return img, "", nil
}

// run executes one step, retrying on failure unless ctx is done.
func (c *Compiler) run(ctx context.Context, dir string, args []string) (string, error) {
	var (
		log string
		err error
	)
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying latex step", "step", args[0], "attempt", attempt, "err", err)
		}
		log, err = c.runOnce(ctx, dir, args)
		if err == nil || ctx.Err() != nil || errors.Is(err, exec.ErrNotFound) {
			break
		}
	}
	return log, err
}

func (c *Compiler) runOnce(ctx context.Context, dir string, args []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	if ctx.Err() != nil {
		// the kill error hides the cause
		err = ctx.Err()
	}
	return out.String(), err
}

// expand replaces the placeholders in every argument.
func expand(step []string, dir, base string) []string {
	r := strings.NewReplacer(DirPlaceholder, dir, BasePlaceholder, base)
	out := make([]string, len(step))
	for i, a := range step {
		out[i] = r.Replace(a)
	}
	return out
}
