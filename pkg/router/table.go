package router

import (
	"slices"
	"strings"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/routepath"
)

// Table is a validated, immutable route table.
type Table struct {
	entries  []Entry
	root     *routeNode
	fallback *compiledRoute
	shadowed []Entry
}

// NewTable validates the entries and compiles them into a matcher.
//
// Entry order defines priority between patterns of the same shape. The wildcard
// entry is mandatory, must be unique and must be last. Violations are reported
// as *ConfigError.
func NewTable(entries ...Entry) (*Table, error) {
	t := &Table{
		entries: slices.Clone(entries),
		root:    newRouteNode(""),
	}

	for i, e := range t.entries {
		if e.View == "" {
			return nil, configErr(CodeEmptyView, i, e.Pattern, "entry has no view")
		}

		if e.IsWildcard() {
			if t.fallback != nil {
				return nil, configErr(CodeDuplicateWildcard, i, e.Pattern,
					"wildcard already registered at entry %d", t.fallback.index)
			}
			t.fallback = &compiledRoute{index: i, entry: e, paramPos: -1}
			continue
		}

		if t.fallback != nil {
			return nil, configErr(CodeWildcardNotLast, t.fallback.index, Wildcard,
				"wildcard must be the last entry, found %q after it", e.Pattern)
		}

		route, err := compile(i, e)
		if err != nil {
			return nil, err
		}
		if !t.root.insert(routepath.Segments(e.Pattern), route) {
			t.shadowed = append(t.shadowed, e)
		}
	}

	if t.fallback == nil {
		return nil, configErr(CodeMissingWildcard, -1, "", "table has no wildcard (%q) entry", Wildcard)
	}

	return t, nil
}

// MustTable is like NewTable but panics on a configuration error.
// It is intended for tables declared in code.
func MustTable(entries ...Entry) *Table {
	t, err := NewTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// compile validates a non-wildcard pattern.
func compile(index int, e Entry) (*compiledRoute, error) {
	if !strings.HasPrefix(e.Pattern, "/") {
		return nil, configErr(CodeRelativePattern, index, e.Pattern, "pattern must start with \"/\"")
	}

	route := &compiledRoute{index: index, entry: e, paramPos: -1}
	for pos, seg := range routepath.Segments(e.Pattern) {
		switch {
		case strings.HasPrefix(seg, "*"):
			return nil, configErr(CodeWildcardSegment, index, e.Pattern,
				"wildcard is only allowed as the whole pattern")
		case strings.HasPrefix(seg, ":"):
			if route.paramPos >= 0 {
				return nil, configErr(CodeMultipleDynamic, index, e.Pattern,
					"more than one dynamic segment (%q and %q)", ":"+route.paramName, seg)
			}
			if len(seg) == 1 {
				return nil, configErr(CodeEmptyParamName, index, e.Pattern, "dynamic segment has no name")
			}
			route.paramName = seg[1:]
			route.paramPos = pos
		}
	}
	return route, nil
}

// Match returns the route for path. It always returns a result: paths that
// match no entry resolve to the wildcard entry.
func (t *Table) Match(path string) MatchResult {
	segments := routepath.Segments(path)
	if route := t.root.match(segments); route != nil {
		params := Params{}
		if route.paramPos >= 0 {
			params[route.paramName] = paramValue(segments[route.paramPos])
		}
		return MatchResult{
			view:    route.entry.View,
			pattern: route.entry.Pattern,
			params:  params,
		}
	}
	return t.Fallback()
}

// paramValue is the percent-decoded segment, or the raw segment when it does
// not decode to a single segment.
func paramValue(segment string) string {
	if value, err := routepath.DecodeSegment(segment); err == nil {
		return value
	}
	return segment
}

// Fallback returns the wildcard result.
func (t *Table) Fallback() MatchResult {
	return MatchResult{
		view:     t.fallback.entry.View,
		pattern:  Wildcard,
		params:   Params{},
		fallback: true,
	}
}

// Entries returns a copy of the table in priority order.
func (t *Table) Entries() []Entry {
	return slices.Clone(t.entries)
}

// Views returns the distinct views referenced by the table, in table order.
func (t *Table) Views() []ViewID {
	seen := make(map[ViewID]bool, len(t.entries))
	views := make([]ViewID, 0, len(t.entries))
	for _, e := range t.entries {
		if !seen[e.View] {
			seen[e.View] = true
			views = append(views, e.View)
		}
	}
	return views
}

// Shadowed returns entries that can never match because an earlier entry has
// the same shape (e.g., "/users/:name" after "/users/:id").
func (t *Table) Shadowed() []Entry {
	return slices.Clone(t.shadowed)
}
