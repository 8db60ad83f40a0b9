package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/alitto/pond/v2"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/fetch"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/loop"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/metrics"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/router"
)

// Activator is the type-erased lifecycle API used by the view host.
type Activator interface {
	Activate(ctx context.Context, params router.Params) bool
	Reactivate(ctx context.Context, params router.Params)
	Dispose()
	Snapshot() Snapshot
	OnSnapshot(fn func(Snapshot)) (unsubscribe func())
}

// Option configures a Lifecycle.
type Option func(*options)

type options struct {
	name    string
	logger  *slog.Logger
	metrics *metrics.Collector
}

// WithName names the lifecycle in logs and metrics (usually the view id).
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records activations and discards in m.
func WithMetrics(m *metrics.Collector) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// Lifecycle runs a Plan for the params of the active view.
//
// All methods except the fetches themselves must be called from the goroutine
// that owns the dispatcher. Fetches run on their own goroutines and hand their
// result back through the dispatcher.
type Lifecycle[T any] struct {
	options
	plan       Plan[T]
	source     fetch.Source
	dispatcher loop.Dispatcher

	state    FetchState[T]
	instance uint64
	disposed bool

	subMu sync.Mutex
	subs  []*func(FetchState[T])
}

var _ Activator = (*Lifecycle[any])(nil)

// New creates a lifecycle. No instance exists until Activate is called.
func New[T any](plan Plan[T], source fetch.Source, dispatcher loop.Dispatcher, opts ...Option) *Lifecycle[T] {
	l := &Lifecycle[T]{
		options: options{
			name:   "resource",
			logger: slog.Default(),
		},
		plan:       plan,
		source:     source,
		dispatcher: dispatcher,
	}
	for _, opt := range opts {
		opt(&l.options)
	}
	return l
}

// State returns the current state.
func (l *Lifecycle[T]) State() FetchState[T] {
	s := l.state
	s.Key = s.Key.Clone()
	return s
}

// Snapshot returns the current state as an untyped snapshot.
func (l *Lifecycle[T]) Snapshot() Snapshot {
	return l.state.snapshot(l.instance)
}

// Activate starts an instance for params unless the current instance already
// has the same key and is pending or succeeded. An instance in Error is
// replaced, which is how a caller retries. It reports whether an instance
// was started.
func (l *Lifecycle[T]) Activate(ctx context.Context, params router.Params) bool {
	if l.instance > 0 && l.state.Key.Equal(params) &&
		(l.state.Status == Pending || l.state.Status == Success) {
		return false
	}
	kind := "activate"
	if l.instance > 0 && l.state.Key.Equal(params) {
		kind = "retry"
	}
	l.start(ctx, params, kind)
	return true
}

// Reactivate replaces the current instance with one for params. Fetches of the
// replaced instance keep running and are discarded when they settle.
func (l *Lifecycle[T]) Reactivate(ctx context.Context, params router.Params) {
	l.start(ctx, params, "reactivate")
}

// Dispose detaches the lifecycle: later settlements are discarded and
// subscribers are dropped.
func (l *Lifecycle[T]) Dispose() {
	l.disposed = true
	l.subMu.Lock()
	l.subs = nil
	l.subMu.Unlock()
}

func (l *Lifecycle[T]) start(ctx context.Context, params router.Params, kind string) {
	l.disposed = false
	l.instance++
	key := params.Clone()

	l.state = FetchState[T]{Status: Idle, Key: key}
	l.metrics.RecordActivation(l.name, kind)
	l.logger.Debug("lifecycle start",
		"name", l.name,
		"kind", kind,
		"key", key.String(),
		"fetches", len(l.plan.Fetches))

	l.state.Status = Pending
	l.notify()

	urls := make([]string, len(l.plan.Fetches))
	for i, f := range l.plan.Fetches {
		u, err := Expand(f.URL, key)
		if err != nil {
			l.Settle(key, Result[T]{Err: &FetchError{URL: f.URL, Err: err}})
			return
		}
		urls[i] = u
	}

	if len(urls) == 0 {
		data, err := l.combine(nil, nil)
		l.Settle(key, Result[T]{Data: data, Err: err})
		return
	}

	go func() {
		result := l.run(ctx, urls)
		l.dispatcher.Dispatch(func() {
			l.Settle(key, result)
		})
	}()
}

// run issues every fetch concurrently and joins the results. The first
// failure becomes the result's error.
func (l *Lifecycle[T]) run(ctx context.Context, urls []string) Result[T] {
	pool := pond.NewResultPool[any](len(urls))
	group := pool.NewGroupContext(ctx)

	for i, u := range urls {
		parse := l.plan.Fetches[i].Parse
		group.SubmitErr(func() (any, error) {
			raw, err := l.source.Fetch(ctx, fetch.Get(u))
			if err != nil {
				return nil, &FetchError{URL: u, Err: err}
			}
			if parse == nil {
				return raw, nil
			}
			v, err := parse(raw)
			if err != nil {
				return nil, &FetchError{URL: u, Err: fmt.Errorf("parsing response: %w", err)}
			}
			return v, nil
		})
	}

	results, err := group.Wait()
	if err != nil {
		var fe *FetchError
		if !errors.As(err, &fe) {
			err = &FetchError{URL: strings.Join(urls, ","), Err: err}
		}
		return Result[T]{Err: err}
	}
	data, err := l.combine(urls, results)
	return Result[T]{Data: data, Err: err}
}

func (l *Lifecycle[T]) combine(urls []string, results []any) (data T, err error) {
	if l.plan.Combine == nil {
		return data, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = &FetchError{URL: strings.Join(urls, ","), Err: fmt.Errorf("combining results: %v", r)}
		}
	}()
	data, err = l.plan.Combine(results)
	if err != nil {
		return data, &FetchError{URL: strings.Join(urls, ","), Err: fmt.Errorf("combining results: %w", err)}
	}
	return data, nil
}

// Settle applies the outcome of the fetches started for key. It is a no-op
// when key is no longer the current key, when the current instance has
// already settled, or when the lifecycle was disposed. It reports whether
// the state changed.
func (l *Lifecycle[T]) Settle(key router.Params, result Result[T]) bool {
	reason := ""
	switch {
	case l.disposed:
		reason = "disposed"
	case !l.state.Key.Equal(key):
		reason = "key"
	case l.state.Status != Pending:
		reason = "settled"
	}
	if reason != "" {
		l.metrics.RecordStaleDiscard(reason)
		l.logger.Debug("stale settlement discarded",
			"name", l.name,
			"key", key.String(),
			"current", l.state.Key.String(),
			"reason", reason)
		return false
	}

	if result.Err != nil {
		l.state.Status = Error
		l.state.Err = result.Err
		l.logger.Debug("lifecycle error",
			"name", l.name,
			"key", key.String(),
			"error", result.Err)
	} else {
		l.state.Status = Success
		l.state.Data = result.Data
	}
	l.notify()
	return true
}

// OnChange registers fn to be called after every state transition.
func (l *Lifecycle[T]) OnChange(fn func(FetchState[T])) (unsubscribe func()) {
	p := &fn
	l.subMu.Lock()
	l.subs = append(slices.Clip(l.subs), p)
	l.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.subMu.Lock()
			defer l.subMu.Unlock()
			l.subs = slices.DeleteFunc(slices.Clone(l.subs), func(x *func(FetchState[T])) bool {
				return x == p
			})
		})
	}
}

// OnSnapshot is OnChange for untyped observers.
func (l *Lifecycle[T]) OnSnapshot(fn func(Snapshot)) (unsubscribe func()) {
	return l.OnChange(func(s FetchState[T]) {
		fn(s.snapshot(l.instance))
	})
}

func (l *Lifecycle[T]) notify() {
	l.subMu.Lock()
	subs := l.subs
	l.subMu.Unlock()

	state := l.State()
	for _, fn := range subs {
		(*fn)(state)
	}
}
