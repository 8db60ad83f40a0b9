package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config configures New.
type Config struct {
	// Level is debug, info, warn or error. Unknown values mean info.
	Level string

	// Format is "text" or "json".
	Format string

	// SentryDSN enables Sentry forwarding when set.
	SentryDSN string

	// Environment is reported to Sentry.
	Environment string
}

// New creates a logger writing to w. Extractors run on every record, after
// the built-in client id extractor.
func New(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var out slog.Handler
	if cfg.Format == "json" {
		out = slog.NewJSONHandler(w, opts)
	} else {
		out = slog.NewTextHandler(w, opts)
	}

	extractors = append([]ContextExtractor{clientIDExtractor}, extractors...)

	if cfg.SentryDSN == "" {
		return slog.New(NewDecorator(out, extractors...))
	}

	env := cfg.Environment
	if env == "" {
		env = "development"
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: env,
		EnableLogs:  true,
	}); err != nil {
		slog.New(out).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewDecorator(out, extractors...))
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return slog.New(NewDecorator(newMultiHandler(out, sentryHandler), extractors...))
}

// Flush waits for buffered Sentry events. It is a no-op when Sentry was never
// initialized.
func Flush(timeout time.Duration) bool {
	if sentry.CurrentHub().Client() == nil {
		return true
	}
	return sentry.Flush(timeout)
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Nope returns a logger that discards all output.
func Nope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
