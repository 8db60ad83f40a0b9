package resource

import (
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/router"
)

// Status is the state of a lifecycle instance.
type Status int

const (
	Idle    Status = iota // Created, no fetch issued yet
	Pending               // Fetches in flight
	Success               // All fetches succeeded
	Error                 // A fetch, parse or combine step failed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Settled reports whether s is a final status.
func (s Status) Settled() bool {
	return s == Success || s == Error
}

// FetchState is the state of one lifecycle instance.
type FetchState[T any] struct {
	Status Status

	// Data is only meaningful when Status is Success.
	Data T

	// Err is only set when Status is Error.
	Err error

	// Key is the params the instance was started with.
	Key router.Params
}

// Value returns the data and whether the instance succeeded.
func (s FetchState[T]) Value() (T, bool) {
	if s.Status != Success {
		var zero T
		return zero, false
	}
	return s.Data, true
}

// Result is the outcome of an instance's fetches.
type Result[T any] struct {
	Data T
	Err  error
}

// Snapshot is an untyped, read-only copy of a FetchState for renderers.
type Snapshot struct {
	Status Status
	Data   any // nil unless Status is Success
	Err    error
	Key    router.Params

	// Instance increments every time a new instance starts.
	Instance uint64
}

func (s FetchState[T]) snapshot(instance uint64) Snapshot {
	snap := Snapshot{
		Status:   s.Status,
		Err:      s.Err,
		Key:      s.Key.Clone(),
		Instance: instance,
	}
	if s.Status == Success {
		snap.Data = s.Data
	}
	return snap
}
