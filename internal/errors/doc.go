// Package errors turns route, config and fetch failures into coded,
// actionable diagnostics for the command line.
//
// # Error Categories
//
//   - route: the route table is invalid (R001-R009)
//   - config: the config file or environment is invalid (C001-C003)
//   - fetch: a view's data could not be loaded (F001)
//
// # Usage
//
//	table, err := router.NewTable(entries...)
//	if err != nil {
//	    errors.PrintError(os.Stderr, err)
//	    os.Exit(1)
//	}
//
// Output:
//
//	ERROR R001: Route table has no wildcard
//
//	  router: R001: table has no wildcard ("*") entry
//
//	  Hint: Add {Pattern: "*", View: "not-found"} as the last entry
package errors
