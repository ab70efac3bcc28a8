package pst

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedValue  = errors.New("malformed value")
	ErrMissingArgument = errors.New("missing mandatory argument")
	ErrUnbalanced      = errors.New("unbalanced delimiter")
	ErrUnknownCommand  = errors.New("unsupported command")
	ErrInvalidPlot     = errors.New("invalid plot")
)

// ErrorMode decides what happens to the soft errors
// met while parsing.
type ErrorMode uint8

const (
	// WarnErrorMode collects the soft errors and logs them.
	WarnErrorMode ErrorMode = iota
	// IgnoreErrorMode only collects the soft errors.
	IgnoreErrorMode
	// StrictErrorMode aborts on the first soft error.
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case StrictErrorMode:
		return "strict"
	default:
		return "warn"
	}
}

// ParseErrorMode accepts the names returned by String.
func ParseErrorMode(s string) (ErrorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "warn":
		return WarnErrorMode, nil
	case "ignore":
		return IgnoreErrorMode, nil
	case "strict":
		return StrictErrorMode, nil
	}
	return 0, fmt.Errorf("unknown error mode %q", s)
}

// SoftError is a recoverable error: the command producing it
// yields no shape but the parsing goes on.
type SoftError struct {
	Command string
	Line    int
	Err     error
}

func (e *SoftError) Error() string {
	return fmt.Sprintf("line %d: \\%s: %s", e.Line, e.Command, e.Err)
}

func (e *SoftError) Unwrap() error { return e.Err }

// HardError aborts the parsing.
type HardError struct {
	Command string
	Line    int
	Err     error
}

func (e *HardError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: \\%s: %s", e.Line, e.Command, e.Err)
}

func (e *HardError) Unwrap() error { return e.Err }

// ErrorLog collects the soft errors of a parsing, in order.
type ErrorLog []*SoftError

func (l ErrorLog) Empty() bool { return len(l) == 0 }

func (l ErrorLog) Error() string {
	lines := make([]string, len(l))
	for i, e := range l {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}
