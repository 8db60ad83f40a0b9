package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/fixture"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/fetch"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/metrics"
)

func newFixtureSource(t *testing.T, opts ...fetch.HTTPOption) *fetch.HTTP {
	t.Helper()
	d, err := fixture.Load()
	require.NoError(t, err)
	srv := httptest.NewServer(fixture.Router(d))
	t.Cleanup(srv.Close)

	src, err := fetch.NewHTTP(srv.URL, opts...)
	require.NoError(t, err)
	return src
}

func TestHTTPFetch(t *testing.T) {
	m := metrics.New(metrics.WithRegistry(prometheus.NewRegistry()))
	src := newFixtureSource(t, fetch.WithMetrics(m))

	body, err := src.Fetch(context.Background(), fetch.Get("/users/7/todos"))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"userId":7`)
}

func TestHTTPFetchNotFound(t *testing.T) {
	src := newFixtureSource(t)

	_, err := src.Fetch(context.Background(), fetch.Get("/users/999"))
	require.Error(t, err)

	var statusErr *fetch.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "/users/999", statusErr.URL)
	assert.True(t, errors.Is(err, fetch.ErrNotFound))
	assert.Equal(t, "GET /users/999: 404 Not Found", err.Error())
}

func TestHTTPFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	src, err := fetch.NewHTTP(base)
	require.NoError(t, err)

	_, err = src.Fetch(context.Background(), fetch.Get("/users"))
	assert.Error(t, err)
}

func TestHTTPFetchBodyLimit(t *testing.T) {
	src := newFixtureSource(t, fetch.WithMaxBodySize(16))

	_, err := src.Fetch(context.Background(), fetch.Get("/users"))
	assert.ErrorIs(t, err, fetch.ErrBodyTooLarge)
}

func TestHTTPResolve(t *testing.T) {
	tests := []struct {
		base string
		ref  string
		want string
	}{
		{"https://api.example.com", "/users/7/todos", "https://api.example.com/users/7/todos"},
		{"https://api.example.com/v1/", "/users", "https://api.example.com/v1/users"},
		{"https://api.example.com", "/users?page=2", "https://api.example.com/users?page=2"},
		{"https://api.example.com", "/users/jane%20doe", "https://api.example.com/users/jane%20doe"},
		{"https://api.example.com", "http://other.example.com/x", "http://other.example.com/x"},
	}

	for _, tt := range tests {
		src, err := fetch.NewHTTP(tt.base)
		if err != nil {
			t.Fatalf("NewHTTP(%q) error: %v", tt.base, err)
		}
		u, err := src.Resolve(tt.ref)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", tt.ref, err)
		}
		if got := u.String(); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestNewHTTPRejectsBadBase(t *testing.T) {
	for _, base := range []string{"ftp://example.com", "example.com", "://"} {
		if _, err := fetch.NewHTTP(base); err == nil {
			t.Errorf("NewHTTP(%q) should fail", base)
		}
	}
}
