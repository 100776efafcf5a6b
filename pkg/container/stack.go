package container

// Stack is a LIFO sequence container. Not safe for concurrent use.
type Stack[T any] struct {
	items []T
}

// NewStack creates an empty stack.
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push appends an element on top. O(1), never fails.
func (s *Stack[T]) Push(e T) {
	s.items = append(s.items, e)
}

// Pop removes and returns the top element. The second return is false
// when the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	e := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	return e, true
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns the number of elements. O(1).
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the stack holds no elements.
func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Contains scans bottom-to-top for an element matching pred. O(n).
// Equality is supplied by the caller since element types carry their
// own value semantics.
func (s *Stack[T]) Contains(pred func(T) bool) bool {
	for _, e := range s.items {
		if pred(e) {
			return true
		}
	}
	return false
}

// Items returns a snapshot of the contents in bottom-to-top order.
// The stack is not mutated and the returned slice is independent.
func (s *Stack[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Clear removes all elements.
func (s *Stack[T]) Clear() {
	s.items = nil
}
