// Package navigation holds the current location and notifies subscribers when
// it changes.
//
// A Controller is confined to one goroutine (usually the one running a
// loop.Loop). Current is the exception: the location is published atomically
// and may be read from anywhere.
package navigation

import (
	"errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/metrics"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/routepath"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/router"
)

// Location is the current position in the app.
type Location struct {
	// Path is the canonical path (without query string).
	Path string

	// Query is the raw query string (without leading "?").
	Query string

	// Matched is the route the path resolved to.
	Matched router.MatchResult
}

// View returns the view the location resolved to.
func (l Location) View() router.ViewID {
	return l.Matched.View()
}

// URL returns the path with its query string.
func (l Location) URL() string {
	if l.Query == "" {
		return l.Path
	}
	return l.Path + "?" + l.Query
}

// Navigator performs imperative navigation.
type Navigator interface {
	Navigate(path string) Location
}

type subscriber struct {
	fn func(Location)
}

// Controller tracks the current Location.
type Controller struct {
	table   *router.Table
	current atomic.Pointer[Location]
	logger  *slog.Logger
	metrics *metrics.Collector

	initialPath string

	subMu sync.Mutex
	subs  []*subscriber // replaced, never mutated in place
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithMetrics records navigations in m.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithInitialPath sets the location the controller starts at (default "/").
// No subscriber is notified for it.
func WithInitialPath(path string) Option {
	return func(c *Controller) {
		c.initialPath = path
	}
}

// New creates a controller over table.
func New(table *router.Table, opts ...Option) *Controller {
	c := &Controller{
		table:       table,
		logger:      slog.Default(),
		initialPath: "/",
	}
	for _, opt := range opts {
		opt(c)
	}
	loc := c.resolve(c.initialPath)
	c.current.Store(&loc)
	return c
}

// Table returns the route table the controller matches against.
func (c *Controller) Table() *router.Table {
	return c.table
}

// Current returns the current location. It never blocks.
func (c *Controller) Current() Location {
	return *c.current.Load()
}

// Navigate matches path, replaces the current location and notifies every
// subscriber in registration order before returning.
//
// Navigating to the current path still notifies subscribers.
func (c *Controller) Navigate(path string) Location {
	loc := c.resolve(path)
	c.current.Store(&loc)

	c.logger.Debug("navigate",
		"path", loc.Path,
		"view", loc.View(),
		"pattern", loc.Matched.Pattern())
	c.metrics.RecordNavigation(string(loc.View()))

	c.subMu.Lock()
	subs := c.subs
	c.subMu.Unlock()

	for _, s := range subs {
		s.fn(loc)
	}
	return loc
}

// resolve canonicalizes and matches a path. A path with a malformed percent
// escape is matched as written; other paths that fail canonicalization resolve
// to the wildcard view.
func (c *Controller) resolve(path string) Location {
	canon, err := routepath.Canonicalize(path)
	if err != nil {
		p, q := routepath.SplitPathAndQuery(path)
		if errors.Is(err, routepath.ErrInvalidPercentEscape) {
			p = routepath.Clean(p)
			return Location{Path: p, Query: q, Matched: c.table.Match(p)}
		}
		c.logger.Warn("invalid navigation path",
			"path", path,
			"error", err)
		return Location{Path: p, Query: q, Matched: c.table.Fallback()}
	}
	return Location{
		Path:    canon.Path,
		Query:   canon.Query,
		Matched: c.table.Match(canon.Path),
	}
}

// Subscribe registers fn to be called with the new location after every
// navigation. The returned function unsubscribes; calling it more than once is
// a no-op. Unsubscribing while a notification pass is running does not change
// who is called in that pass.
func (c *Controller) Subscribe(fn func(Location)) (unsubscribe func()) {
	s := &subscriber{fn: fn}

	c.subMu.Lock()
	c.subs = append(slices.Clip(c.subs), s)
	c.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subMu.Lock()
			defer c.subMu.Unlock()
			c.subs = slices.DeleteFunc(slices.Clone(c.subs), func(x *subscriber) bool {
				return x == s
			})
		})
	}
}

// Link creates a declarative link to href.
func (c *Controller) Link(href string) Link {
	return Link{Href: href, nav: c}
}

var defaultController atomic.Pointer[Controller]

// Default returns the process-wide controller, or nil if none was set.
func Default() *Controller {
	return defaultController.Load()
}

// SetDefault installs c as the process-wide controller.
func SetDefault(c *Controller) {
	defaultController.Store(c)
}
