package psfunc

import (
	"errors"
	"fmt"
)

// ErrInvalidExpression is the root of every evaluation error:
// use errors.Is to test for it.
var ErrInvalidExpression = errors.New("invalid PostScript expression")

var (
	ErrStackUnderflow = fmt.Errorf("%w: stack underflow", ErrInvalidExpression)
	ErrDivisionByZero = fmt.Errorf("%w: division by zero", ErrInvalidExpression)
	ErrRangeCheck     = fmt.Errorf("%w: range check", ErrInvalidExpression)
	ErrUnknownCommand = fmt.Errorf("%w: unknown command", ErrInvalidExpression)
	ErrSyntax         = fmt.Errorf("%w: syntax error", ErrInvalidExpression)
)
