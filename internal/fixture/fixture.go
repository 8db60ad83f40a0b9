// Package fixture serves a local copy of the example API the tutorial views
// read from (/users, /users/{id}, /users/{id}/todos).
package fixture

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-json-experiment/json"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/tutorial"
)

var (
	//go:embed data/users.json
	usersJSON []byte

	//go:embed data/todos.json
	todosJSON []byte
)

// Data is the data set served by the fixture API.
type Data struct {
	Users []tutorial.User
	Todos []tutorial.Todo
}

// Load parses the embedded data set.
func Load() (*Data, error) {
	d := &Data{}
	if err := json.UnmarshalRead(bytes.NewReader(usersJSON), &d.Users); err != nil {
		return nil, fmt.Errorf("fixture: parsing users: %w", err)
	}
	if err := json.UnmarshalRead(bytes.NewReader(todosJSON), &d.Todos); err != nil {
		return nil, fmt.Errorf("fixture: parsing todos: %w", err)
	}
	return d, nil
}

// User returns the user with the given id.
func (d *Data) User(id int) (tutorial.User, bool) {
	for _, u := range d.Users {
		if u.ID == id {
			return u, true
		}
	}
	return tutorial.User{}, false
}

// TodosFor returns the todos owned by user id.
func (d *Data) TodosFor(id int) []tutorial.Todo {
	todos := make([]tutorial.Todo, 0, 4)
	for _, t := range d.Todos {
		if t.UserID == id {
			todos = append(todos, t)
		}
	}
	return todos
}

// Option configures the fixture router.
type Option func(*options)

type options struct {
	logger *slog.Logger
	delay  time.Duration
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDelay delays every response. Useful to watch the pending state and to
// race navigations against in-flight requests.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		o.delay = d
	}
}

// Router returns the fixture API handler.
func Router(d *Data, opts ...Option) http.Handler {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if o.delay > 0 {
				select {
				case <-time.After(o.delay):
				case <-req.Context().Done():
					return
				}
			}
			o.logger.Debug("fixture request",
				"method", req.Method,
				"path", req.URL.Path)
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/users", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, d.Users)
	})

	r.Route("/users/{id}", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			id, ok := userID(w, req)
			if !ok {
				return
			}
			user, found := d.User(id)
			if !found {
				writeJSON(w, http.StatusNotFound, map[string]string{})
				return
			}
			writeJSON(w, http.StatusOK, user)
		})

		r.Get("/todos", func(w http.ResponseWriter, req *http.Request) {
			id, ok := userID(w, req)
			if !ok {
				return
			}
			if _, found := d.User(id); !found {
				writeJSON(w, http.StatusNotFound, map[string]string{})
				return
			}
			writeJSON(w, http.StatusOK, d.TodosFor(id))
		})
	})

	return r
}

func userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.MarshalWrite(w, v)
}

// NewServer returns an HTTP server for the fixture API on addr.
func NewServer(addr string, d *Data, opts ...Option) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           Router(d, opts...),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
