// Package loop provides the single goroutine on which navigation, view and
// lifecycle state is mutated.
//
// Work started elsewhere (fetch goroutines, HTTP handlers, websocket readers)
// never touches that state directly. It posts a closure with Dispatch and the
// closure runs on the loop, one at a time, to completion.
package loop

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// ErrStopped is returned by Call when the loop stops before the callback ran.
var ErrStopped = errors.New("loop stopped")

// DefaultQueueSize is the dispatch buffer used when no size is configured.
const DefaultQueueSize = 256

// Dispatcher schedules fn to run on the owning goroutine.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatchFunc adapts a function to the Dispatcher interface.
type DispatchFunc func(fn func())

// Dispatch calls f(fn).
func (f DispatchFunc) Dispatch(fn func()) { f(fn) }

// Inline runs every dispatched function immediately on the caller's goroutine.
// It is only safe when the caller is already the owning goroutine.
var Inline Dispatcher = DispatchFunc(func(fn func()) { fn() })

// Loop drains dispatched callbacks on a single goroutine.
type Loop struct {
	dispatchCh chan func()
	done       chan struct{}
	closed     atomic.Bool
	stopOnce   sync.Once
	logger     *slog.Logger
	queueSize  int
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used for panics in dispatched callbacks.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithQueueSize sets the dispatch buffer size.
func WithQueueSize(n int) Option {
	return func(l *Loop) {
		if n > 0 {
			l.queueSize = n
		}
	}
}

// New creates a loop. Nothing runs until Run is called.
func New(opts ...Option) *Loop {
	l := &Loop{
		done:      make(chan struct{}),
		logger:    slog.Default(),
		queueSize: DefaultQueueSize,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.dispatchCh = make(chan func(), l.queueSize)
	return l
}

// Dispatch queues fn for execution on the loop goroutine. It blocks while the
// queue is full and returns without queuing once the loop is stopped.
//
// Dispatch must not be called from the loop goroutine with a full queue; code
// already running on the loop should call fn directly.
func (l *Loop) Dispatch(fn func()) {
	if fn == nil || l.closed.Load() {
		return
	}
	select {
	case l.dispatchCh <- fn:
	case <-l.done:
	}
}

// Call dispatches fn and waits until it has run.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	ran := make(chan struct{})
	l.Dispatch(func() {
		defer close(ran)
		fn()
	})
	select {
	case <-ran:
		return nil
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes dispatched callbacks until ctx is cancelled or Stop is called.
// It returns ctx.Err() on cancellation and nil on Stop.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-l.dispatchCh:
			l.execute(fn)
		case <-l.done:
			return nil
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		}
	}
}

// Stop stops the loop. Callbacks still queued are dropped.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.closed.Store(true)
		close(l.done)
	})
}

// Done is closed when the loop stops.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// execute runs a dispatched function with panic recovery.
func (l *Loop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("dispatch panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}
