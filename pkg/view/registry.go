// Package view resolves locations to views, drives their data lifecycles and
// publishes read-only frames to renderers.
package view

import (
	"fmt"
	"log/slog"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/fetch"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/loop"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/metrics"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/navigation"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/resource"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/router"
)

// Deps are the collaborators a view's lifecycle is built with.
type Deps struct {
	View       router.ViewID
	Source     fetch.Source
	Dispatcher loop.Dispatcher
	Logger     *slog.Logger
	Metrics    *metrics.Collector
}

// Context is what Derive sees.
type Context struct {
	Location navigation.Location
	Params   router.Params
	State    resource.Snapshot
}

// Definition declares a view.
type Definition struct {
	ID    router.ViewID
	Title string

	// New builds the view's data lifecycle. nil means the view loads nothing
	// and is always in Success.
	New func(Deps) resource.Activator

	// Derive computes view state from the location and data. Optional.
	Derive func(Context) any
}

// Data returns a Definition.New that runs plan.
func Data[T any](plan resource.Plan[T]) func(Deps) resource.Activator {
	return func(d Deps) resource.Activator {
		return resource.New(plan, d.Source, d.Dispatcher,
			resource.WithName(string(d.View)),
			resource.WithLogger(d.Logger),
			resource.WithMetrics(d.Metrics))
	}
}

// Registry maps view ids to definitions.
type Registry struct {
	defs  map[router.ViewID]Definition
	order []router.ViewID
}

// NewRegistry creates a registry. Duplicate or empty ids are an error.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{defs: make(map[router.ViewID]Definition, len(defs))}
	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("view: definition with empty id")
		}
		if _, dup := r.defs[d.ID]; dup {
			return nil, fmt.Errorf("view: duplicate definition %q", d.ID)
		}
		r.defs[d.ID] = d
		r.order = append(r.order, d.ID)
	}
	return r, nil
}

// Get returns the definition for id.
func (r *Registry) Get(id router.ViewID) (Definition, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []router.ViewID {
	return append([]router.ViewID(nil), r.order...)
}

// Validate checks that every view the table references is registered.
func (r *Registry) Validate(table *router.Table) error {
	for i, e := range table.Entries() {
		if _, ok := r.defs[e.View]; !ok {
			return &router.ConfigError{
				Code:    router.CodeUnregisteredView,
				Index:   i,
				Pattern: e.Pattern,
				Reason:  fmt.Sprintf("view %q is not registered", e.View),
			}
		}
	}
	return nil
}
