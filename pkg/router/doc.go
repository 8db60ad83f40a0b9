// Package router implements the declarative route table of the tutorial app.
//
// The router provides:
//   - A table of {pattern, view} entries validated once at startup
//   - A segment tree for matching with literal-over-dynamic precedence
//   - A mandatory wildcard entry that absorbs every unmatched path
//   - Parameter extraction and typed decoding
//
// # Patterns
//
// A pattern is a "/"-delimited list of segments:
//
//	/                 → root
//	/welcome          → literal segments
//	/example/:id      → one dynamic segment bound to "id"
//	*                 → the wildcard, must be the last entry
//
// At most one dynamic segment is allowed per pattern.
//
// # Usage
//
//	table, err := router.NewTable(
//	    router.Entry{Pattern: "/", View: "home"},
//	    router.Entry{Pattern: "/users/:id", View: "user"},
//	    router.Entry{Pattern: "*", View: "not-found"},
//	)
//	if err != nil {
//	    // errors.Is(err, router.ErrConfig) is true; the table is unusable
//	}
//
//	m := table.Match("/users/42")
//	// m.View() == "user", m.Param("id") == "42"
package router
