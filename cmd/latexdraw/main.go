// Command latexdraw reads a PSTricks drawing and writes it back as
// PSTricks, SVG, PNG or PDF.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/latexdraw/config"
	"github.com/benoitkugler/latexdraw/latex"
	"github.com/benoitkugler/latexdraw/pdfdraw"
	"github.com/benoitkugler/latexdraw/pst"
	"github.com/benoitkugler/latexdraw/pstgen"
	"github.com/benoitkugler/latexdraw/raster"
	"github.com/benoitkugler/latexdraw/shape"
	"github.com/benoitkugler/latexdraw/svggen"
)

var formats = []string{"pst", "svg", "png", "pdf"}

type options struct {
	configPath string
	output     string
	format     string
	useLaTeX   bool
	verbose    bool
	input      string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("latexdraw", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "configuration file (default ~/.config/latexdraw/config.toml)")
	fs.StringVar(&opts.output, "o", "", "output file (default standard output)")
	fs.StringVar(&opts.format, "format", "", "output format: "+strings.Join(formats, ", ")+" (default from the output extension, or pst)")
	fs.BoolVar(&opts.useLaTeX, "latex", false, "render PNG with the LaTeX toolchain")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: latexdraw [options] input.tex\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return opts, errors.New("expected one input file")
	}
	opts.input = fs.Arg(0)

	if opts.format == "" {
		opts.format = strings.TrimPrefix(filepath.Ext(opts.output), ".")
		if opts.format == "tex" || opts.format == "" {
			opts.format = "pst"
		}
	}
	opts.format = strings.ToLower(opts.format)
	for _, f := range formats {
		if f == opts.format {
			return opts, nil
		}
	}
	return opts, fmt.Errorf("unsupported format %q", opts.format)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "latexdraw:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	in, err := os.Open(opts.input)
	if err != nil {
		return err
	}
	defer in.Close()
	parser := pst.NewParser(pst.Options{Mode: cfg.Mode(), Logger: logger})
	d, errLog, err := parser.ReadDrawing(in, cfg.Charset)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.input, err)
	}
	logger.Debug("drawing parsed", "shapes", d.Len(), "errors", len(errLog))

	out := stdout
	var file *os.File
	if opts.output != "" {
		if file, err = os.Create(opts.output); err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	switch opts.format {
	case "pst":
		g := pstgen.New(pstgen.Options{Precision: cfg.Precision, Colors: parser.Colors()})
		_, err = io.WriteString(out, g.DrawingCode(d))
	case "svg":
		err = svggen.Write(out, d, svggen.Options{Margin: float64(cfg.Raster.Margin)})
	case "pdf":
		err = pdfdraw.Write(out, d, pdfdraw.Options{Margin: float64(cfg.Raster.Margin)})
	case "png":
		if opts.useLaTeX {
			err = compilePNG(ctx, out, d, parser, cfg, logger)
		} else {
			err = png.Encode(out, raster.Image(d, raster.Options{
				Scale:      cfg.Raster.Scale,
				Margin:     cfg.Raster.Margin,
				Background: color.White,
			}))
		}
	}
	if err != nil {
		return err
	}
	if file != nil {
		return file.Close()
	}
	return nil
}

// compilePNG renders the PSTricks code of d through the LaTeX toolchain.
func compilePNG(ctx context.Context, w io.Writer, d *shape.Drawing, parser *pst.Parser, cfg config.Config, logger *slog.Logger) error {
	c, err := cfg.Compiler(latex.CompilerOptions{Logger: logger})
	if err != nil {
		return err
	}
	g := pstgen.New(pstgen.Options{Precision: cfg.Precision, Colors: parser.Colors()})
	img, log, err := c.Compile(ctx, latex.Document(g.DrawingCode(d), latex.DocumentOptions{Packages: cfg.LaTeX.Packages}))
	if err != nil {
		if log != "" {
			logger.Error("latex compilation failed", "log", log)
		}
		return err
	}
	return png.Encode(w, img)
}
