// Package logging builds the process logger.
//
// Output is a text or JSON slog handler at the configured level. Every record
// passes through a decorator that copies request-scoped values (the live
// client id) from the context. When a Sentry DSN is configured, warnings and
// errors are also forwarded to Sentry; errors become issues.
//
//	log := logging.New(os.Stderr, logging.Config{Level: "debug"})
//	ctx := logging.WithClientID(ctx, id)
//	log.InfoContext(ctx, "client connected") // client_id=...
package logging
