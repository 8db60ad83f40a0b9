package view

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/navigation"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/resource"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/router"
)

// Frame is a read-only snapshot of what should be on screen.
type Frame struct {
	// Seq increases with every published frame.
	Seq uint64

	Location navigation.Location
	View     router.ViewID
	Title    string
	Params   router.Params
	State    resource.Snapshot
	Derived  any
}

// active is the view currently on screen.
type active struct {
	def    Definition
	params router.Params
	data   resource.Activator
	unsub  func()
}

// Host follows the navigation controller and keeps the matching view's data
// lifecycle running. Like the controller it is confined to one goroutine;
// Current may be read from anywhere.
type Host struct {
	nav      *navigation.Controller
	registry *Registry
	deps     Deps
	logger   *slog.Logger

	ctx      context.Context
	location navigation.Location
	current  *active
	seq      uint64
	holding  bool
	unsubNav func()

	frame atomic.Pointer[Frame]

	subMu sync.Mutex
	subs  []*func(Frame)
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHostLogger sets the host logger.
func WithHostLogger(logger *slog.Logger) HostOption {
	return func(h *Host) {
		h.logger = logger
	}
}

// NewHost creates a host. Nothing happens until Start.
func NewHost(nav *navigation.Controller, registry *Registry, deps Deps, opts ...HostOption) *Host {
	h := &Host{
		nav:      nav,
		registry: registry,
		deps:     deps,
		logger:   slog.Default(),
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.deps.Logger == nil {
		h.deps.Logger = h.logger
	}
	h.frame.Store(&Frame{})
	return h
}

// Start shows the controller's current location and follows later
// navigations. ctx is handed to every fetch the host starts.
func (h *Host) Start(ctx context.Context) {
	h.ctx = ctx
	h.unsubNav = h.nav.Subscribe(h.show)
	h.show(h.nav.Current())
}

// Stop stops following navigations and disposes the active view's data.
func (h *Host) Stop() {
	if h.unsubNav != nil {
		h.unsubNav()
		h.unsubNav = nil
	}
	h.dispose()
}

// Current returns the latest frame.
func (h *Host) Current() Frame {
	return *h.frame.Load()
}

// Retry activates the current view's data again. It only starts new fetches
// when the data is in Error.
func (h *Host) Retry() bool {
	if h.current == nil || h.current.data == nil {
		return false
	}
	return h.current.data.Activate(h.ctx, h.current.params)
}

// show makes loc the location on screen.
func (h *Host) show(loc navigation.Location) {
	id, params := router.Resolve(loc.Matched)
	h.location = loc

	// Frames are held back until the navigation is fully applied.
	h.holding = true
	defer func() {
		h.holding = false
		h.publish()
	}()

	if cur := h.current; cur != nil && cur.def.ID == id {
		prev := cur.params
		cur.params = params
		switch {
		case cur.data == nil:
		case prev.Equal(params):
			cur.data.Activate(h.ctx, params)
		default:
			cur.data.Reactivate(h.ctx, params)
		}
		return
	}

	h.dispose()

	def, ok := h.registry.Get(id)
	if !ok {
		h.logger.Error("view not registered", "view", id, "path", loc.Path)
		def = Definition{ID: id}
	}
	next := &active{def: def, params: params}
	if def.New != nil {
		deps := h.deps
		deps.View = id
		next.data = def.New(deps)
		next.unsub = next.data.OnSnapshot(func(resource.Snapshot) { h.publish() })
	}
	h.current = next

	h.logger.Debug("view activated", "view", id, "params", params.String())
	if next.data != nil {
		next.data.Activate(h.ctx, params)
	}
}

func (h *Host) dispose() {
	if h.current == nil {
		return
	}
	if h.current.unsub != nil {
		h.current.unsub()
	}
	if h.current.data != nil {
		h.current.data.Dispose()
	}
	h.current = nil
}

func (h *Host) publish() {
	if h.holding || h.current == nil {
		return
	}
	cur := h.current

	state := resource.Snapshot{Status: resource.Success, Key: cur.params.Clone()}
	if cur.data != nil {
		state = cur.data.Snapshot()
	}

	h.seq++
	f := Frame{
		Seq:      h.seq,
		Location: h.location,
		View:     cur.def.ID,
		Title:    cur.def.Title,
		Params:   cur.params.Clone(),
		State:    state,
	}
	if cur.def.Derive != nil {
		f.Derived = cur.def.Derive(Context{
			Location: h.location,
			Params:   cur.params.Clone(),
			State:    state,
		})
	}
	h.frame.Store(&f)

	h.subMu.Lock()
	subs := h.subs
	h.subMu.Unlock()
	for _, fn := range subs {
		(*fn)(f)
	}
}

// Subscribe registers fn to receive every published frame. The returned
// function unsubscribes and is safe to call more than once.
func (h *Host) Subscribe(fn func(Frame)) (unsubscribe func()) {
	p := &fn
	h.subMu.Lock()
	h.subs = append(slices.Clip(h.subs), p)
	h.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.subMu.Lock()
			defer h.subMu.Unlock()
			h.subs = slices.DeleteFunc(slices.Clone(h.subs), func(x *func(Frame)) bool {
				return x == p
			})
		})
	}
}
