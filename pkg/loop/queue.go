package loop

import (
	"time"
)

// Queue is a Dispatcher that holds callbacks until the caller runs them.
// Tests use it to decide exactly when (and in which order) settlements land.
type Queue struct {
	ch chan func()
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{ch: make(chan func(), 1024)}
}

// Dispatch implements Dispatcher.
func (q *Queue) Dispatch(fn func()) {
	q.ch <- fn
}

// RunNext waits up to timeout for a callback and runs it on the calling
// goroutine. It reports whether a callback ran.
func (q *Queue) RunNext(timeout time.Duration) bool {
	select {
	case fn := <-q.ch:
		fn()
		return true
	case <-time.After(timeout):
		return false
	}
}

// Next waits up to timeout for a callback and returns it without running it.
func (q *Queue) Next(timeout time.Duration) (func(), bool) {
	select {
	case fn := <-q.ch:
		return fn, true
	case <-time.After(timeout):
		return nil, false
	}
}

// Drain runs every callback that is queued right now and returns how many ran.
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case fn := <-q.ch:
			fn()
			n++
		default:
			return n
		}
	}
}

// Pending returns the number of queued callbacks.
func (q *Queue) Pending() int {
	return len(q.ch)
}
