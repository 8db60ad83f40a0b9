// Package fetch provides the data sources views load their payloads from.
//
// The core only ever sees the Source interface: it issues a Request and gets
// back raw bytes or an error. Parsing is the caller's job.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

//go:generate mockgen -destination source_mock.go -package fetch . Source

// Source fetches raw payloads.
type Source interface {
	Fetch(ctx context.Context, req Request) ([]byte, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, req Request) ([]byte, error)

// Fetch calls f(ctx, req).
func (f SourceFunc) Fetch(ctx context.Context, req Request) ([]byte, error) {
	return f(ctx, req)
}

// Request is a single data request.
type Request struct {
	// Method is the HTTP method (default: GET).
	Method string

	// URL is either a path relative to the source's base or an absolute URL.
	URL string
}

// Get returns a GET request for url.
func Get(url string) Request {
	return Request{Method: http.MethodGet, URL: url}
}

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

// Source errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrBodyTooLarge = errors.New("response body too large")
	ErrNoSource     = errors.New("no source for url scheme")
)

// StatusError is returned when the source answers with a non-success status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is makes errors.Is(err, ErrNotFound) true for 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
