package psfunc

import (
	"fmt"
	"math"
)

// Command is one step of a PostScript function. x is the value
// of the free variable for the current evaluation.
type Command interface {
	Execute(s *Stack, x float64) error
}

// CommandFunc adapts a function to the Command interface.
type CommandFunc func(s *Stack, x float64) error

func (f CommandFunc) Execute(s *Stack, x float64) error { return f(s, x) }

// Number pushes a constant.
type Number float64

func (n Number) Execute(s *Stack, _ float64) error {
	s.Push(float64(n))
	return nil
}

// Variable pushes the free variable.
type Variable struct{}

func (Variable) Execute(s *Stack, x float64) error {
	s.Push(x)
	return nil
}

// Registry maps command names to their implementation.
type Registry map[string]Command

// unary builds a command popping one operand.
func unary(name string, f func(a float64) (float64, error)) Command {
	return CommandFunc(func(s *Stack, _ float64) error {
		ops, err := s.PopN(1)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		r, err := f(ops[0])
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		s.Push(r)
		return nil
	})
}

// binary builds a command popping two operands, a being the deepest one.
func binary(name string, f func(a, b float64) (float64, error)) Command {
	return CommandFunc(func(s *Stack, _ float64) error {
		ops, err := s.PopN(2)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		r, err := f(ops[0], ops[1])
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		s.Push(r)
		return nil
	})
}

func pure1(f func(a float64) float64) func(float64) (float64, error) {
	return func(a float64) (float64, error) { return f(a), nil }
}

func pure2(f func(a, b float64) float64) func(float64, float64) (float64, error) {
	return func(a, b float64) (float64, error) { return f(a, b), nil }
}

func boolean(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
func radians(deg float64) float64 { return deg * math.Pi / 180 }

// DefaultRegistry returns the arithmetic, comparison and
// trigonometric operators of PostScript, working on reals.
// Angles are in degrees.
func DefaultRegistry() Registry {
	return Registry{
		"add": binary("add", pure2(func(a, b float64) float64 { return a + b })),
		"sub": binary("sub", pure2(func(a, b float64) float64 { return a - b })),
		"mul": binary("mul", pure2(func(a, b float64) float64 { return a * b })),
		"div": binary("div", func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, ErrDivisionByZero
			}
			return a / b, nil
		}),
		"idiv": binary("idiv", func(a, b float64) (float64, error) {
			if math.Trunc(b) == 0 {
				return 0, ErrDivisionByZero
			}
			return math.Trunc(math.Trunc(a) / math.Trunc(b)), nil
		}),
		"mod": binary("mod", func(a, b float64) (float64, error) {
			if math.Trunc(b) == 0 {
				return 0, ErrDivisionByZero
			}
			return math.Mod(math.Trunc(a), math.Trunc(b)), nil
		}),
		"neg": unary("neg", pure1(func(a float64) float64 { return -a })),
		"abs": unary("abs", pure1(math.Abs)),
		"sqrt": unary("sqrt", func(a float64) (float64, error) {
			if a < 0 {
				return 0, ErrRangeCheck
			}
			return math.Sqrt(a), nil
		}),
		"exp": binary("exp", func(base, exponent float64) (float64, error) {
			r := math.Pow(base, exponent)
			if math.IsNaN(r) || math.IsInf(r, 0) {
				return 0, ErrRangeCheck
			}
			return r, nil
		}),
		"ln": unary("ln", func(a float64) (float64, error) {
			if a <= 0 {
				return 0, ErrRangeCheck
			}
			return math.Log(a), nil
		}),
		"log": unary("log", func(a float64) (float64, error) {
			if a <= 0 {
				return 0, ErrRangeCheck
			}
			return math.Log10(a), nil
		}),
		"sin": unary("sin", pure1(func(a float64) float64 { return math.Sin(radians(a)) })),
		"cos": unary("cos", pure1(func(a float64) float64 { return math.Cos(radians(a)) })),
		"atan": binary("atan", func(num, den float64) (float64, error) {
			if num == 0 && den == 0 {
				return 0, ErrRangeCheck
			}
			angle := degrees(math.Atan2(num, den))
			if angle < 0 {
				angle += 360
			}
			return angle, nil
		}),
		"floor":    unary("floor", pure1(math.Floor)),
		"ceiling":  unary("ceiling", pure1(math.Ceil)),
		"round":    unary("round", pure1(func(a float64) float64 { return math.Floor(a + 0.5) })),
		"truncate": unary("truncate", pure1(math.Trunc)),

		"eq": binary("eq", pure2(func(a, b float64) float64 { return boolean(a == b) })),
		"ne": binary("ne", pure2(func(a, b float64) float64 { return boolean(a != b) })),
		"gt": binary("gt", pure2(func(a, b float64) float64 { return boolean(a > b) })),
		"ge": binary("ge", pure2(func(a, b float64) float64 { return boolean(a >= b) })),
		"lt": binary("lt", pure2(func(a, b float64) float64 { return boolean(a < b) })),
		"le": binary("le", pure2(func(a, b float64) float64 { return boolean(a <= b) })),

		"dup": CommandFunc(func(s *Stack, _ float64) error {
			ops, err := s.PopN(1)
			if err != nil {
				return fmt.Errorf("dup: %w", err)
			}
			s.Push(ops[0])
			s.Push(ops[0])
			return nil
		}),
		"exch": CommandFunc(func(s *Stack, _ float64) error {
			ops, err := s.PopN(2)
			if err != nil {
				return fmt.Errorf("exch: %w", err)
			}
			s.Push(ops[1])
			s.Push(ops[0])
			return nil
		}),
		"pop": CommandFunc(func(s *Stack, _ float64) error {
			if _, err := s.Pop(); err != nil {
				return fmt.Errorf("pop: %w", err)
			}
			return nil
		}),
	}
}
