package psfunc

import "fmt"

// Stack is the operand stack of an evaluation.
// A fresh stack is used for each evaluation.
type Stack struct {
	values []float64
}

func (s *Stack) Push(v float64) { s.values = append(s.values, v) }

func (s *Stack) Len() int { return len(s.values) }

// Pop removes and returns the top value.
func (s *Stack) Pop() (float64, error) {
	if len(s.values) == 0 {
		return 0, ErrStackUnderflow
	}
	v := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return v, nil
}

// PopN removes the n top values and returns them,
// the deepest one first.
func (s *Stack) PopN(n int) ([]float64, error) {
	if len(s.values) < n {
		return nil, fmt.Errorf("%w: %d operand(s) needed, %d available", ErrStackUnderflow, n, len(s.values))
	}
	out := make([]float64, n)
	copy(out, s.values[len(s.values)-n:])
	s.values = s.values[:len(s.values)-n]
	return out, nil
}

// Values returns a copy of the stack content, bottom first.
func (s *Stack) Values() []float64 {
	return append([]float64(nil), s.values...)
}
