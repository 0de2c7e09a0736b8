package ds

type Stack[T any] struct {
	slice []T
}

func NewStack[T any](items ...T) *Stack[T] {
	stack := &Stack[T]{
		slice: make([]T, 0, len(items)),
	}
	for _, item := range items {
		stack.Push(item)
	}
	return stack
}

func (r *Stack[T]) Len() int {
	return len(r.slice)
}

func (r *Stack[T]) IsEmpty() bool {
	return r.Len() == 0
}

func (r *Stack[T]) Push(t T) T {
	r.slice = append(r.slice, t)
	return t
}

// PushReversed pushes ts so that ts[0] ends up on top.
func (r *Stack[T]) PushReversed(ts []T) {
	for i := len(ts) - 1; i >= 0; i-- {
		r.Push(ts[i])
	}
}

func (r *Stack[T]) Pop() T {
	last := r.slice[r.Len()-1]
	r.slice = r.slice[:r.Len()-1]
	return last
}

func (r *Stack[T]) Peek() T {
	last := r.slice[r.Len()-1]
	return last
}
