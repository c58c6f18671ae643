package queue

import (
	"sync/atomic"
)

// Queue is a lock-free FIFO of pending actions. Pushers may be arbitrary
// goroutines (effects reporting back); the store's drain loop is the only
// consumer, but Pop is safe to race with Push.
type Queue[T any] struct {
	items atomic.Pointer[[]T]
}

func New[T any](maybeSize ...int) *Queue[T] {
	var items []T
	if len(maybeSize) > 0 {
		items = make([]T, 0, maybeSize[0])
	}
	q := &Queue[T]{}
	q.items.Store(&items)
	return q
}

func (q *Queue[T]) Len() int {
	return len(*q.items.Load())
}

func (q *Queue[T]) Push(item T) {
	for {
		old := q.items.Load()
		items := make([]T, len(*old), len(*old)+1)
		copy(items, *old)
		items = append(items, item)
		if q.items.CompareAndSwap(old, &items) {
			return
		}
	}
}

func (q *Queue[T]) Pop() (T, bool) {
	for {
		old := q.items.Load()
		if len(*old) == 0 {
			var zero T
			return zero, false
		}
		items := (*old)[1:]
		if q.items.CompareAndSwap(old, &items) {
			return (*old)[0], true
		}
	}
}
