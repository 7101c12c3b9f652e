package containers

// Stack is a LIFO backed by a slice. The zero value is ready to use.
type Stack[E any] struct {
	items []E
}

func NewStack[E any](capacity int) *Stack[E] {
	return &Stack[E]{items: make([]E, 0, capacity)}
}

func (s *Stack[E]) Push(e E) {
	s.items = append(s.items, e)
}

// Pop removes the top element. ok is false on an empty stack.
func (s *Stack[E]) Pop() (e E, ok bool) {
	if len(s.items) == 0 {
		return e, false
	}
	e = s.items[len(s.items)-1]
	var zero E
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	return e, true
}

// Top panics on an empty stack.
func (s *Stack[E]) Top() E {
	return s.items[len(s.items)-1]
}

// SetTop replaces the top element in place.
func (s *Stack[E]) SetTop(e E) {
	s.items[len(s.items)-1] = e
}

func (s *Stack[E]) Len() int {
	return len(s.items)
}

func (s *Stack[E]) Empty() bool {
	return len(s.items) == 0
}

// Reset empties the stack, keeping its storage.
func (s *Stack[E]) Reset() {
	clear(s.items)
	s.items = s.items[:0]
}
