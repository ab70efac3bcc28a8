// Package pst reads PSTricks code into a shape.Drawing.
//
// Errors come in two flavours: a malformed value (such as {foo}
// given as a radius) is a *SoftError, collected in the ErrorLog
// returned with the drawing, the faulty command yielding no shape.
// A missing or empty mandatory argument, or an unbalanced brace,
// is a *HardError aborting the parsing.
package pst

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/benoitkugler/latexdraw/colors"
	"github.com/benoitkugler/latexdraw/shape"
)

// Options tunes a Parser. The zero value is valid.
type Options struct {
	Mode    ErrorMode
	Logger  *slog.Logger     // default to slog.Default()
	Colors  *colors.Registry // receives \newrgbcolor definitions
	Factory *shape.Factory
}

// Parser converts PSTricks code into shapes. The colour registry
// is shared by successive parsings.
type Parser struct {
	mode    ErrorMode
	logger  *slog.Logger
	colors  *colors.Registry
	factory *shape.Factory
}

func NewParser(opts Options) *Parser {
	p := &Parser{mode: opts.Mode, logger: opts.Logger, colors: opts.Colors, factory: opts.Factory}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.colors == nil {
		p.colors = colors.New()
	}
	if p.factory == nil {
		p.factory = shape.NewFactory()
	}
	return p
}

// Colors returns the registry holding the colours defined by the parsed code.
func (p *Parser) Colors() *colors.Registry { return p.colors }

// Parse converts code into a drawing. The soft errors are returned in the log,
// which must be checked independently of the returned error. A non nil
// error means the parsing was aborted, and no drawing is returned.
func (p *Parser) Parse(code string) (*shape.Drawing, ErrorLog, error) {
	var log ErrorLog
	c, err := p.newCursor(code, 1, defaultSettings(), &log)
	if err != nil {
		return nil, log, err
	}
	shapes, err := c.parseAll()
	if err != nil {
		return nil, log, err
	}
	d := shape.NewDrawing()
	for _, s := range shapes {
		d.Add(s)
	}
	return d, log, nil
}

// ReadDrawing parses the code read from r, decoded from the
// given charset label (an empty label means UTF-8).
func (p *Parser) ReadDrawing(r io.Reader, charsetLabel string) (*shape.Drawing, ErrorLog, error) {
	if charsetLabel != "" {
		var err error
		r, err = charset.NewReaderLabel(charsetLabel, r)
		if err != nil {
			return nil, nil, err
		}
	}
	code, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	return p.Parse(string(code))
}

// Parse uses a parser with default options.
func Parse(code string) (*shape.Drawing, ErrorLog, error) {
	return NewParser(Options{}).Parse(code)
}

// ReadDrawing uses a parser with default options.
func ReadDrawing(r io.Reader, charsetLabel string) (*shape.Drawing, ErrorLog, error) {
	return NewParser(Options{}).ReadDrawing(r, charsetLabel)
}

// cursor walks through the tokens of a piece of code.
type cursor struct {
	p      *Parser
	tokens []Token
	pos    int
	state  settings
	log    *ErrorLog
}

func (p *Parser) newCursor(code string, line int, state settings, log *ErrorLog) (*cursor, error) {
	tokens, err := tokenize(code, line)
	if err != nil {
		return nil, err
	}
	return &cursor{p: p, tokens: tokens, state: state, log: log}, nil
}

// sub returns a cursor over the content of a group, in a new scope.
func (c *cursor) sub(content string, line int) (*cursor, error) {
	return c.p.newCursor(content, line, c.state, c.log)
}

// peek returns the i-th next token, or nil.
func (c *cursor) peek(i int) *Token {
	if c.pos+i >= len(c.tokens) {
		return nil
	}
	return &c.tokens[c.pos+i]
}

func (c *cursor) peekKind(i int, kind TokenKind) bool {
	tok := c.peek(i)
	return tok != nil && tok.Kind == kind
}

func (c *cursor) next() Token {
	tok := c.tokens[c.pos]
	c.pos++
	return tok
}

// parseAll processes the remaining tokens, text being ignored.
func (c *cursor) parseAll() ([]shape.Shape, error) {
	var out []shape.Shape
	for c.pos < len(c.tokens) {
		tok := c.next()
		var (
			shapes []shape.Shape
			err    error
		)
		switch tok.Kind {
		case TokCommand:
			f, ok := commands[tok.Value]
			if !ok {
				err = soft(tok, ErrUnknownCommand)
				break
			}
			shapes, err = f(c, tok)
		case TokBrace:
			shapes, err = groupF(c, tok)
		default:
			continue
		}
		if err != nil {
			if err = c.report(err); err != nil {
				return nil, err
			}
			continue
		}
		out = append(out, shapes...)
	}
	return out, nil
}

// report records a soft error and returns nil, unless
// the parsing must stop.
func (c *cursor) report(err error) error {
	var se *SoftError
	if !errors.As(err, &se) {
		var he *HardError
		if errors.As(err, &he) {
			return he
		}
		return &HardError{Err: err}
	}
	*c.log = append(*c.log, se)
	switch c.p.mode {
	case StrictErrorMode:
		return se
	case WarnErrorMode:
		c.p.logger.Warn("invalid PSTricks command", "command", se.Command, "line", se.Line, "err", se.Err)
	}
	return nil
}

func soft(cmd Token, err error) error {
	return &SoftError{Command: cmd.Value, Line: cmd.Line, Err: err}
}

func hard(cmd Token, err error) error {
	return &HardError{Command: cmd.Value, Line: cmd.Line, Err: err}
}

// args are the raw arguments of a command.
type args struct {
	opts   string
	coords []string
	braces []string
}

// read reads the arguments of cmd: optional options, between minCoords
// and maxCoords coordinates (maxCoords < 0 means no limit) and nbBraces
// mandatory non empty braces.
func (c *cursor) read(cmd Token, minCoords, maxCoords, nbBraces int) (args, error) {
	var a args
	if c.peekKind(0, TokBracket) {
		a.opts = c.next().Value
	}
	err := c.readArgs(cmd, &a, minCoords, maxCoords, nbBraces)
	return a, err
}

// readArrows is like read, for commands accepting arrows
// after their options, such as \psline{->}.
func (c *cursor) readArrows(cmd Token, minCoords, maxCoords, nbBraces int) (args, error) {
	var a args
	if c.peekKind(0, TokBracket) {
		a.opts = c.next().Value
	}
	if c.peekKind(0, TokBrace) && c.peekKind(1, TokParen) {
		c.pos++
	}
	err := c.readArgs(cmd, &a, minCoords, maxCoords, nbBraces)
	return a, err
}

func (c *cursor) readArgs(cmd Token, a *args, minCoords, maxCoords, nbBraces int) error {
	for c.peekKind(0, TokParen) && (maxCoords < 0 || len(a.coords) < maxCoords) {
		a.coords = append(a.coords, c.next().Value)
	}
	if len(a.coords) < minCoords {
		return hard(cmd, fmt.Errorf("%w: expected %d coordinates, got %d", ErrMissingArgument, minCoords, len(a.coords)))
	}
	for i := 0; i < nbBraces; i++ {
		if !c.peekKind(0, TokBrace) {
			return hard(cmd, fmt.Errorf("%w: argument %d", ErrMissingArgument, i+1))
		}
		v := strings.TrimSpace(c.next().Value)
		if v == "" {
			return hard(cmd, fmt.Errorf("%w: argument %d is empty", ErrMissingArgument, i+1))
		}
		a.braces = append(a.braces, v)
	}
	return nil
}

// settings returns the settings in force for cmd.
func (c *cursor) settings(cmd Token, opts string) (settings, error) {
	st := c.state
	ignored, err := st.apply(opts, c.p.colors)
	if len(ignored) != 0 {
		c.p.logger.Debug("ignored PSTricks options", "command", cmd.Value, "line", cmd.Line, "options", ignored)
	}
	if err != nil {
		return st, err
	}
	if cmd.Star {
		st.style.FillStyle = shape.SolidFill
		st.style.FillColor = st.style.LineColor
	}
	return st, nil
}

// styled applies st to s and returns it as a one element slice.
func styled(s shape.Shape, st settings) []shape.Shape {
	if sh, ok := s.(shape.Styled); ok {
		*sh.Style() = st.style
	}
	if pl, ok := s.(*shape.Plot); ok {
		pl.SetNbPlottedPoints(st.plotPoints)
		pl.SetPlotStyle(st.plotStyle)
	}
	return []shape.Shape{s}
}
