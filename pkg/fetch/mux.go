package fetch

import (
	"context"
	"fmt"
	"net/url"
)

// Mux routes requests to a source by URL scheme. Relative URLs go to the
// fallback source.
type Mux struct {
	fallback Source
	schemes  map[string]Source
}

// NewMux creates a mux with the given fallback source.
func NewMux(fallback Source) *Mux {
	return &Mux{
		fallback: fallback,
		schemes:  make(map[string]Source),
	}
}

// Handle registers src for URLs with the given scheme.
func (m *Mux) Handle(scheme string, src Source) *Mux {
	m.schemes[scheme] = src
	return m
}

// Fetch implements Source.
func (m *Mux) Fetch(ctx context.Context, req Request) ([]byte, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing request url: %w", err)
	}
	src := m.fallback
	if u.Scheme != "" {
		var ok bool
		if src, ok = m.schemes[u.Scheme]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrNoSource, u.Scheme)
		}
	}
	if src == nil {
		return nil, ErrNoSource
	}
	return src.Fetch(ctx, req)
}
