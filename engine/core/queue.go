package core

// eventQueue is a fixed-capacity FIFO ring. Pushing onto a full queue drops
// the oldest entry: input is lossy, never blocking.
type eventQueue[T any] struct {
	buf  []T
	head int // index of the oldest entry
	n    int
}

func newEventQueue[T any](capacity int) eventQueue[T] {
	if capacity <= 0 {
		capacity = DefaultMaxQueuedEvents
	}
	return eventQueue[T]{buf: make([]T, capacity)}
}

func (q *eventQueue[T]) push(v T) {
	if q.n == len(q.buf) {
		// evict oldest
		q.head = (q.head + 1) % len(q.buf)
		q.n--
	}
	q.buf[(q.head+q.n)%len(q.buf)] = v
	q.n++
}

func (q *eventQueue[T]) pop() (T, bool) {
	var zero T
	if q.n == 0 {
		return zero, false
	}
	v := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.n--
	return v, true
}

func (q eventQueue[T]) len() int { return q.n }
func (q eventQueue[T]) cap() int { return len(q.buf) }
