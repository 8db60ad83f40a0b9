package resource

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-json-experiment/json"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/router"
)

// ErrMissingParam is returned when a URL template references an unbound param.
var ErrMissingParam = errors.New("missing param")

// Fetch describes one request a view issues.
type Fetch struct {
	// URL is a template; ":name" segments are replaced with the path-escaped
	// value of params[name].
	URL string

	// Parse turns the raw payload into a value. nil keeps the raw bytes.
	Parse func([]byte) (any, error)
}

// Plan is the set of fetches a view issues on activation and the function
// joining their results.
type Plan[T any] struct {
	Fetches []Fetch

	// Combine receives one parsed result per fetch, in declaration order.
	// With no fetches it is called with nil.
	Combine func(results []any) (T, error)
}

// JSON returns a parser decoding a payload into T.
func JSON[T any]() func([]byte) (any, error) {
	return func(raw []byte) (any, error) {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// Single returns a plan with one JSON fetch decoded into T.
func Single[T any](tmpl string) Plan[T] {
	return Plan[T]{
		Fetches: []Fetch{{URL: tmpl, Parse: JSON[T]()}},
		Combine: func(results []any) (T, error) {
			return results[0].(T), nil
		},
	}
}

// Static returns a plan with no fetches that succeeds with value.
func Static[T any](value T) Plan[T] {
	return Plan[T]{
		Combine: func([]any) (T, error) {
			return value, nil
		},
	}
}

// Expand fills a URL template with params.
func Expand(tmpl string, params router.Params) (string, error) {
	path, query, hasQuery := strings.Cut(tmpl, "?")
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		name := seg[1:]
		value, ok := params[name]
		if !ok {
			return "", fmt.Errorf("%w %q in %q", ErrMissingParam, name, tmpl)
		}
		segments[i] = url.PathEscape(value)
	}
	out := strings.Join(segments, "/")
	if hasQuery {
		out += "?" + query
	}
	return out, nil
}

// FetchError is a transport, parse or combine failure.
type FetchError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}
