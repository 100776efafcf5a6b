// Package container implements the FIFO queue and LIFO stack underlying
// the orderflow engine. Both containers keep O(1) size accounting and
// expose non-mutating snapshots for inspection.
package container

// Queue is a FIFO sequence container. The zero value is not usable;
// construct with NewQueue. Not safe for concurrent use — the owning
// engine serializes access.
type Queue[T any] struct {
	items []T
	head  int
}

// NewQueue creates an empty queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Enqueue appends an element at the rear. O(1), never fails.
func (q *Queue[T]) Enqueue(e T) {
	q.items = append(q.items, e)
}

// Dequeue removes and returns the front element. The second return is
// false when the queue is empty. Amortized O(1): the head index advances
// instead of re-slicing on every removal, and storage is compacted once
// the dead prefix dominates.
func (q *Queue[T]) Dequeue() (T, bool) {
	var zero T
	if q.head >= len(q.items) {
		return zero, false
	}
	e := q.items[q.head]
	q.items[q.head] = zero // release for GC
	q.head++
	if q.head > 32 && q.head*2 >= len(q.items) {
		q.compact()
	}
	return e, true
}

// Peek returns the front element without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	if q.head >= len(q.items) {
		var zero T
		return zero, false
	}
	return q.items[q.head], true
}

// Len returns the number of live elements. O(1).
func (q *Queue[T]) Len() int {
	return len(q.items) - q.head
}

// IsEmpty reports whether the queue holds no elements.
func (q *Queue[T]) IsEmpty() bool {
	return q.Len() == 0
}

// Items returns a snapshot of the contents in front-to-rear order.
// The queue is not mutated and the returned slice is independent.
func (q *Queue[T]) Items() []T {
	out := make([]T, q.Len())
	copy(out, q.items[q.head:])
	return out
}

// Clear removes all elements.
func (q *Queue[T]) Clear() {
	q.items = nil
	q.head = 0
}

func (q *Queue[T]) compact() {
	live := copy(q.items, q.items[q.head:])
	var zero T
	for i := live; i < len(q.items); i++ {
		q.items[i] = zero
	}
	q.items = q.items[:live]
	q.head = 0
}
