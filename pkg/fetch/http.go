package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/metrics"
)

const (
	defaultTracerName  = "tutorial/fetch"
	defaultMaxBodySize = 10 << 20 // 10MB
)

// HTTP fetches payloads from an HTTP API.
type HTTP struct {
	base        *url.URL
	client      *http.Client
	tracer      trace.Tracer
	tracerName  string
	metrics     *metrics.Collector
	logger      *slog.Logger
	maxBodySize int64
}

// HTTPOption configures an HTTP source.
type HTTPOption func(*HTTP)

// WithClient sets the HTTP client (default: a client with no timeout).
func WithClient(client *http.Client) HTTPOption {
	return func(h *HTTP) {
		h.client = client
	}
}

// WithTimeout sets a per-request timeout on the HTTP client.
func WithTimeout(d time.Duration) HTTPOption {
	return func(h *HTTP) {
		c := *h.client
		c.Timeout = d
		h.client = &c
	}
}

// WithTracerName sets the tracer name (default: "tutorial/fetch").
func WithTracerName(name string) HTTPOption {
	return func(h *HTTP) {
		h.tracerName = name
	}
}

// WithMetrics records fetch outcomes in m.
func WithMetrics(m *metrics.Collector) HTTPOption {
	return func(h *HTTP) {
		h.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) HTTPOption {
	return func(h *HTTP) {
		h.logger = logger
	}
}

// WithMaxBodySize limits how many bytes a response body may have.
func WithMaxBodySize(n int64) HTTPOption {
	return func(h *HTTP) {
		if n > 0 {
			h.maxBodySize = n
		}
	}
}

// NewHTTP creates a source that resolves relative request URLs against baseURL.
func NewHTTP(baseURL string, opts ...HTTPOption) (*HTTP, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if base.Path == "" {
		base.Path = "/"
	}

	h := &HTTP{
		base:        base,
		client:      &http.Client{},
		tracerName:  defaultTracerName,
		logger:      slog.Default(),
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.tracer = otel.Tracer(h.tracerName)
	return h, nil
}

// BaseURL returns the base URL requests are resolved against.
func (h *HTTP) BaseURL() string {
	return h.base.String()
}

// Resolve returns the absolute URL for a request URL.
func (h *HTTP) Resolve(raw string) (*url.URL, error) {
	ref, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing request url: %w", err)
	}
	if ref.IsAbs() {
		return ref, nil
	}
	u := h.base.JoinPath(ref.EscapedPath())
	u.RawQuery = ref.RawQuery
	return u, nil
}

// Fetch issues the request and returns the response body.
func (h *HTTP) Fetch(ctx context.Context, req Request) (body []byte, err error) {
	method := req.method()
	target, err := h.Resolve(req.URL)
	if err != nil {
		return nil, err
	}

	ctx, span := h.tracer.Start(ctx, fmt.Sprintf("fetch %s %s", method, target.Path),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", target.String()),
		),
	)
	start := time.Now()
	defer func() {
		h.metrics.RecordFetch("http", time.Since(start), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	h.logger.Debug("fetch",
		"method", method,
		"url", target.String(),
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Method: method, URL: req.URL, StatusCode: resp.StatusCode}
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, h.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if int64(len(body)) > h.maxBodySize {
		return nil, ErrBodyTooLarge
	}
	return body, nil
}
