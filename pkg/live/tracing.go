package live

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "tutorial/live"

type tracer struct {
	t trace.Tracer
}

// newTracer resolves a tracer from the global provider.
func newTracer(name string) *tracer {
	return &tracer{t: otel.Tracer(name)}
}

// middleware opens a server span per API request. Websocket upgrades are
// not traced; their commands get their own spans.
func (t *tracer) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ws" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		ctx, span := t.t.Start(r.Context(), r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.RequestURI()),
			))
		defer span.End()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.status_code", ww.Status()))
		if ww.Status() >= 500 {
			span.SetStatus(codes.Error, http.StatusText(ww.Status()))
		} else {
			span.SetStatus(codes.Ok, "")
		}
	})
}

// start opens an internal span for a client command.
func (t *tracer) start(ctx context.Context, name, path, clientID string) (context.Context, trace.Span) {
	return t.t.Start(ctx, name,
		trace.WithAttributes(
			attribute.String("live.path", path),
			attribute.String("live.client_id", clientID),
		))
}
