package errors

import (
	"sort"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/router"
)

// Config and fetch codes. Route codes are defined by the router package.
const (
	CodeConfigRead   = "C001"
	CodeConfigValue  = "C002"
	CodeConfigRoutes = "C003"
	CodeFetchFailed  = "F001"
)

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
	Hint     string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Route table errors (R001-R009)
	// ============================================

	router.CodeMissingWildcard: {
		Category: CategoryRoute,
		Message:  "Route table has no wildcard",
		Detail:   "Every path must resolve to a view, so the table needs a catch-all entry.",
		Hint:     `Add {Pattern: "*", View: "not-found"} as the last entry`,
	},
	router.CodeDuplicateWildcard: {
		Category: CategoryRoute,
		Message:  "Route table has more than one wildcard",
		Hint:     "Keep a single \"*\" entry",
	},
	router.CodeWildcardNotLast: {
		Category: CategoryRoute,
		Message:  "Wildcard is not the last entry",
		Detail:   "Entries after the wildcard could never match.",
		Hint:     "Move the \"*\" entry to the end of the table",
	},
	router.CodeWildcardSegment: {
		Category: CategoryRoute,
		Message:  "Wildcard inside a pattern",
		Detail:   "\"*\" is only allowed as a whole pattern, not as a segment.",
		Hint:     "Use a dynamic segment such as \":id\" instead",
	},
	router.CodeMultipleDynamic: {
		Category: CategoryRoute,
		Message:  "Pattern has more than one dynamic segment",
		Hint:     "Split the route so each pattern has at most one \":name\" segment",
	},
	router.CodeEmptyParamName: {
		Category: CategoryRoute,
		Message:  "Dynamic segment has no name",
		Hint:     "Name the segment, e.g. \"/example/:id\"",
	},
	router.CodeRelativePattern: {
		Category: CategoryRoute,
		Message:  "Pattern is not absolute",
		Hint:     "Patterns must start with \"/\"",
	},
	router.CodeEmptyView: {
		Category: CategoryRoute,
		Message:  "Route entry has no view",
	},
	router.CodeUnregisteredView: {
		Category: CategoryRoute,
		Message:  "Route refers to an unknown view",
		Hint:     "Run `tutorial match --list` to see the registered views",
	},

	// ============================================
	// Config errors (C001-C003)
	// ============================================

	CodeConfigRead: {
		Category: CategoryConfig,
		Message:  "Config file could not be read",
		Detail:   "The file exists but is not valid YAML, JSON or TOML.",
	},
	CodeConfigValue: {
		Category: CategoryConfig,
		Message:  "Invalid config value",
	},
	CodeConfigRoutes: {
		Category: CategoryConfig,
		Message:  "Invalid route override",
		Detail:   "The routes list in the config file replaces the built-in table and is validated the same way.",
	},

	// ============================================
	// Fetch errors (F001)
	// ============================================

	CodeFetchFailed: {
		Category: CategoryFetch,
		Message:  "Data fetch failed",
		Detail:   "The view's data source returned an error or a payload that could not be parsed.",
		Hint:     "Check source.base_url, or start the local API with `tutorial fixtures`",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
