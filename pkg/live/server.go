package live

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-json-experiment/json"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/loop"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/metrics"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/navigation"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/view"
)

// DefaultShutdownTimeout bounds a graceful shutdown.
const DefaultShutdownTimeout = 5 * time.Second

// Loop runs callbacks on the goroutine owning the router.
type Loop interface {
	loop.Dispatcher
	Call(ctx context.Context, fn func()) error
}

// Server exposes a navigation controller and its view host over HTTP and
// websockets.
type Server struct {
	loop    Loop
	nav     *navigation.Controller
	host    *view.Host
	logger  *slog.Logger
	metrics *metrics.Collector
	gather  prometheus.Gatherer

	codec       Codec
	upgrader    websocket.Upgrader
	formDecoder *form.Decoder
	tracer      *tracer

	mu      sync.Mutex
	clients map[string]*client

	unsubHost  func()
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics records client gauges on m and serves g on /metrics.
func WithMetrics(m *metrics.Collector, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gather = g
	}
}

// WithCodec sets the codec used when a client does not ask for one.
func WithCodec(c Codec) Option {
	return func(s *Server) {
		s.codec = c
	}
}

// WithCheckOrigin sets the websocket origin check.
func WithCheckOrigin(fn func(*http.Request) bool) Option {
	return func(s *Server) {
		s.upgrader.CheckOrigin = fn
	}
}

// WithTracerName sets the OpenTelemetry tracer name.
func WithTracerName(name string) Option {
	return func(s *Server) {
		s.tracer = newTracer(name)
	}
}

// New creates a server and subscribes it to host frames.
func New(l Loop, nav *navigation.Controller, host *view.Host, opts ...Option) *Server {
	s := &Server{
		loop:        l,
		nav:         nav,
		host:        host,
		logger:      slog.Default(),
		codec:       JSON,
		formDecoder: form.NewDecoder(),
		tracer:      newTracer(defaultTracerName),
		clients:     make(map[string]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.unsubHost = host.Subscribe(s.broadcast)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.tracer.middleware)

	r.Get("/ws", s.handleWebSocket)
	r.Route("/api", func(r chi.Router) {
		r.Get("/frame", s.handleFrame)
		r.Get("/match", s.handleMatch)
		r.Post("/navigate", s.handleNavigate)
		r.Post("/retry", s.handleRetry)
	})
	if s.gather != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gather, promhttp.HandlerOpts{}))
	}
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("live server starting", "address", addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown disconnects every client and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.unsubHost != nil {
		s.unsubHost()
	}

	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()
	for _, c := range clients {
		c.close()
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("live server shutdown complete")
	return nil
}

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// broadcast runs on the loop goroutine for every published frame.
func (s *Server) broadcast(f view.Frame) {
	msg := Message{Type: TypeFrame, Frame: NewFrame(f)}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		c.enqueue(msg)
	}
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, NewFrame(s.host.Current()))
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var q struct {
		Path string `form:"path"`
	}
	if err := s.formDecoder.Decode(&q, r.URL.Query()); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if q.Path == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("missing path"))
		return
	}
	s.writeJSON(w, http.StatusOK, newMatch(q.Path, s.nav.Table().Match(q.Path)))
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	cmd, err := s.decodeCommand(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if cmd.Path == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("missing path"))
		return
	}

	var loc navigation.Location
	if err := s.loop.Call(r.Context(), func() { loc = s.nav.Navigate(cmd.Path) }); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newLocation(loc))
}

func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	var started bool
	if err := s.loop.Call(r.Context(), func() { started = s.host.Retry() }); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"started": started})
}

// decodeCommand reads a navigate command from a JSON body or a form.
func (s *Server) decodeCommand(r *http.Request) (Command, error) {
	var cmd Command
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.UnmarshalRead(r.Body, &cmd); err != nil {
			return cmd, fmt.Errorf("decoding body: %w", err)
		}
		return cmd, nil
	}
	if err := r.ParseForm(); err != nil {
		return cmd, err
	}
	if err := s.formDecoder.Decode(&cmd, r.Form); err != nil {
		return cmd, err
	}
	return cmd, nil
}

// apply runs a client command on the loop.
func (s *Server) apply(ctx context.Context, c *client, cmd Command) {
	switch cmd.Type {
	case TypeNavigate:
		if cmd.Path == "" {
			c.enqueue(Message{Type: TypeError, Error: "navigate: missing path"})
			return
		}
		s.loop.Dispatch(func() {
			_, span := s.tracer.start(ctx, "live.navigate", cmd.Path, c.id)
			defer span.End()
			s.nav.Navigate(cmd.Path)
		})
	case TypeRetry:
		s.loop.Dispatch(func() { s.host.Retry() })
	default:
		c.enqueue(Message{Type: TypeError, Error: fmt.Sprintf("unknown command %q", cmd.Type)})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.MarshalWrite(w, v); err != nil {
		s.logger.Debug("encode error", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
