// Package live serves the router over HTTP.
//
// Clients connect to /ws and receive a "hello" message followed by every
// frame the view host publishes. They steer the router by sending
// {"type":"navigate","path":"/example/3"} or {"type":"retry"}. Frames are full
// snapshots, so a slow client that misses a frame is still correct after the
// next one.
//
// Endpoints:
//
//	GET  /ws               frame stream (?codec=json|msgpack)
//	GET  /api/frame        current frame
//	GET  /api/match?path=  resolve a path without navigating
//	POST /api/navigate     navigate, body {"path": "..."} or path=... form
//	POST /api/retry        retry the current view's data
//	GET  /metrics          Prometheus metrics
//
// Every navigation is applied on the event loop; the HTTP handlers and
// websocket readers only post work to it.
package live
