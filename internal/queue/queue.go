// Package queue implements a FIFO ring buffer used as a worklist by grammar analysis.
package queue

const minCap = 4

// Queue is a FIFO queue, the zero value is an empty queue ready to use.
type Queue[T any] struct {
	items      []T
	head, size int
}

func New[T any](items ...T) *Queue[T] {
	q := &Queue[T]{}
	for _, item := range items {
		q.Append(item)
	}
	return q
}

func (q *Queue[T]) IsEmpty() bool {
	return q.size == 0
}

func (q *Queue[T]) Len() int {
	return q.size
}

// Append adds item to the tail of the queue.
func (q *Queue[T]) Append(item T) *Queue[T] {
	if q.size == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.size)&(len(q.items)-1)] = item
	q.size++
	return q
}

// First removes and returns the head item.
// Returns zero value and false if the queue is empty.
func (q *Queue[T]) First() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}

	item := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) & (len(q.items) - 1)
	q.size--
	return item, true
}

// Items returns queued items from head to tail.
func (q *Queue[T]) Items() []T {
	result := make([]T, q.size)
	for i := range result {
		result[i] = q.items[(q.head+i)&(len(q.items)-1)]
	}
	return result
}

func (q *Queue[T]) grow() {
	c := len(q.items) << 1
	if c < minCap {
		c = minCap
	}
	items := make([]T, c)
	copy(items, q.Items())
	q.items = items
	q.head = 0
}
