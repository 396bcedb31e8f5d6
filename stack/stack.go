package stack

type Stack[T any] struct {
	vals []T
}

func NewStack[T any]() *Stack[T] { return &Stack[T]{vals: []T{}} }

func (s *Stack[T]) Push(val T) {
	s.vals = append(s.vals, val)
}

func (s *Stack[T]) Pop() (T, bool) {
	if len(s.vals) == 0 {
		var zero T
		return zero, false
	}
	top := s.vals[len(s.vals)-1]
	s.vals = s.vals[:len(s.vals)-1]
	return top, true
}

func (s *Stack[T]) HeadValue() (T, bool) {
	if len(s.vals) == 0 {
		var zero T
		return zero, false
	}
	top := s.vals[len(s.vals)-1]
	return top, true
}

func (s *Stack[T]) Len() int {
	return len(s.vals)
}

// FromTop indexes into the stack with 0 as the top, so that callers can
// walk it from the innermost item outwards.
func (s *Stack[T]) FromTop(i int) (T, bool) {
	if i < 0 || i >= len(s.vals) {
		var zero T
		return zero, false
	}
	return s.vals[len(s.vals)-1-i], true
}
