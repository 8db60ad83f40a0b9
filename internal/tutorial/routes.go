// Package tutorial declares the React Router tutorial: its route table, tour
// pages and the example views backed by the users API.
package tutorial

import (
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/router"
)

// View ids.
const (
	ViewHome         router.ViewID = "home"
	ViewWelcome      router.ViewID = "welcome"
	ViewWhatIsRouter router.ViewID = "what-is-router"
	ViewHowToUse     router.ViewID = "how-to-use"
	ViewExample      router.ViewID = "example"
	ViewExampleItems router.ViewID = "example-items"
	ViewConclusion   router.ViewID = "conclusion"
	ViewOutro        router.ViewID = "outro"
	ViewNotFound     router.ViewID = "not-found"
)

// Routes returns the built-in route table entries in priority order.
func Routes() []router.Entry {
	return []router.Entry{
		{Pattern: "/", View: ViewHome},
		{Pattern: "/welcome", View: ViewWelcome},
		{Pattern: "/what-is-router", View: ViewWhatIsRouter},
		{Pattern: "/how-to-use", View: ViewHowToUse},
		{Pattern: "/example", View: ViewExample},
		{Pattern: "/example/:id", View: ViewExampleItems},
		{Pattern: "/conclusion", View: ViewConclusion},
		{Pattern: "/outro", View: ViewOutro},
		{Pattern: router.Wildcard, View: ViewNotFound},
	}
}

// Table returns the built-in route table.
func Table() *router.Table {
	return router.MustTable(Routes()...)
}
