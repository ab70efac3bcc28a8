// Package psfunc evaluates the PostScript arithmetic subset used by
// PSTricks plotting commands (\psplot, \parametricplot).
//
// A function is a postfix sequence of numbers, the free variable
// (x, or t for parametric plots) and named commands, such as
// "x 2 exp 3 mul 1 add".
package psfunc

import (
	"fmt"
	"strconv"
	"strings"
)

// Function is a compiled PostScript expression.
type Function struct {
	// Source is the normalised text of the expression.
	Source string
	cmds   []Command
}

// isVariable accepts the names of the free variable.
func isVariable(tok string) bool { return tok == "x" || tok == "t" }

// Parse compiles src, resolving command names with reg.
// A nil reg means DefaultRegistry().
func Parse(src string, reg Registry) (*Function, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}
	src = strings.NewReplacer("{", " ", "}", " ").Replace(src)
	tokens := strings.Fields(src)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	fn := &Function{Source: strings.Join(tokens, " "), cmds: make([]Command, 0, len(tokens))}
	for _, tok := range tokens {
		if isVariable(tok) {
			fn.cmds = append(fn.cmds, Variable{})
			continue
		}
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			fn.cmds = append(fn.cmds, Number(v))
			continue
		}
		cmd, ok := reg[tok]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, tok)
		}
		fn.cmds = append(fn.cmds, cmd)
	}
	return fn, nil
}

// MustParse is like Parse but panics on error.
func MustParse(src string) *Function {
	fn, err := Parse(src, nil)
	if err != nil {
		panic(err)
	}
	return fn
}

func (f *Function) String() string { return f.Source }

func (f *Function) run(x float64) (*Stack, error) {
	var s Stack
	for _, cmd := range f.cmds {
		if err := cmd.Execute(&s, x); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// Eval evaluates the function for x and returns the top of the stack.
func (f *Function) Eval(x float64) (float64, error) {
	s, err := f.run(x)
	if err != nil {
		return 0, err
	}
	v, err := s.Pop()
	if err != nil {
		return 0, fmt.Errorf("no result: %w", err)
	}
	return v, nil
}

// EvalN evaluates the function for x and returns the n top values
// of the stack, the deepest one first. Parametric plots use n = 2.
func (f *Function) EvalN(x float64, n int) ([]float64, error) {
	s, err := f.run(x)
	if err != nil {
		return nil, err
	}
	out, err := s.PopN(n)
	if err != nil {
		return nil, fmt.Errorf("%d result(s) expected: %w", n, err)
	}
	return out, nil
}
