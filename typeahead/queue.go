package typeahead

import "sync"

// Queue collects dispatched callbacks from resolver goroutines until the
// owner drains them on its own goroutine.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Dispatch appends fn. It satisfies Dispatcher and is safe from any goroutine.
func (q *Queue) Dispatch(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Drain runs the queued callbacks in order on the calling goroutine and
// returns how many ran. Callbacks queued while draining wait for the next call.
func (q *Queue) Drain() int {
	q.mu.Lock()
	fns := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Len returns the number of queued callbacks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
