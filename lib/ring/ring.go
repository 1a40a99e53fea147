// Package ring implements a fixed-capacity FIFO that evicts its oldest
// element when a push would overflow it.
package ring

// Ring is not safe for concurrent use; owners guard it with their own lock.
type Ring[T any] struct {
	items []T
	head  int // index of the oldest element
	size  int
}

// New returns an empty ring holding at most capacity elements.
// A capacity below 1 is treated as 1.
func New[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{items: make([]T, capacity)}
}

// From builds a ring from values in oldest-first order. If there are more
// values than capacity, only the newest ones are kept.
func From[T any](capacity int, values []T) *Ring[T] {
	r := New[T](capacity)
	for _, v := range values {
		r.Push(v)
	}
	return r
}

// Push appends v, evicting the oldest element when full.
func (r *Ring[T]) Push(v T) {
	if r.size < len(r.items) {
		r.items[(r.head+r.size)%len(r.items)] = v
		r.size++
		return
	}
	r.items[r.head] = v
	r.head = (r.head + 1) % len(r.items)
}

func (r *Ring[T]) Len() int {
	return r.size
}

func (r *Ring[T]) Cap() int {
	return len(r.items)
}

// Items returns a copy of the contents, oldest first.
func (r *Ring[T]) Items() []T {
	out := make([]T, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.items[(r.head+i)%len(r.items)]
	}
	return out
}
