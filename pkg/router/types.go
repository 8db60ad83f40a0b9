package router

// ViewID identifies a view in the route table.
type ViewID string

// Wildcard is the pattern of the catch-all entry.
const Wildcard = "*"

// Entry is one row of the route table.
type Entry struct {
	// Pattern is the path pattern (e.g., "/example/:id" or "*")
	Pattern string `mapstructure:"pattern" json:"pattern"`

	// View is the view activated when the pattern matches
	View ViewID `mapstructure:"view" json:"view"`
}

// IsWildcard reports whether the entry is the catch-all entry.
func (e Entry) IsWildcard() bool {
	return e.Pattern == Wildcard
}

// MatchResult is the outcome of matching a path against a Table.
// It is immutable: accessors hand out copies.
type MatchResult struct {
	view     ViewID
	pattern  string
	params   Params
	fallback bool
}

// View returns the matched view.
func (m MatchResult) View() ViewID {
	return m.view
}

// Pattern returns the pattern of the matched entry.
func (m MatchResult) Pattern() string {
	return m.pattern
}

// Params returns a copy of the extracted parameters.
func (m MatchResult) Params() Params {
	return m.params.Clone()
}

// Param returns a single extracted parameter, or "" when absent.
func (m MatchResult) Param(name string) string {
	return m.params.Get(name)
}

// IsFallback reports whether the wildcard entry produced this result.
func (m MatchResult) IsFallback() bool {
	return m.fallback
}

// Equal reports whether two results select the same view with the same params.
func (m MatchResult) Equal(other MatchResult) bool {
	return m.view == other.view &&
		m.pattern == other.pattern &&
		m.fallback == other.fallback &&
		m.params.Equal(other.params)
}

// Resolve selects the view to activate for a match together with its params.
// Every MatchResult is resolvable because the table always carries a wildcard.
func Resolve(m MatchResult) (ViewID, Params) {
	return m.view, m.params.Clone()
}
