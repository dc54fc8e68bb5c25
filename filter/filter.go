package filter

import (
	"github.com/lestrrat-go/pdebug"
	"github.com/peco/dmenu/candidate"
)

// Strategy selects how a query is matched against candidates.
type Strategy int

const (
	// Token requires every space separated token to be a substring
	// and ranks exact, high priority prefix, prefix, then substring
	// matches.
	Token Strategy = iota
	// Fuzzy matches the query as a byte subsequence and ranks by
	// distance.
	Fuzzy
)

func (s Strategy) String() string {
	switch s {
	case Token:
		return "Token"
	case Fuzzy:
		return "Fuzzy"
	}
	return "Unknown"
}

// List is the match result: indices into the candidate store, in
// display order.
type List []int

// Matcher applies one strategy under one case folding mode.
type Matcher struct {
	strategy   Strategy
	ignoreCase bool
}

// New creates a Matcher.
func New(strategy Strategy, ignoreCase bool) *Matcher {
	return &Matcher{
		strategy:   strategy,
		ignoreCase: ignoreCase,
	}
}

func (m *Matcher) Strategy() Strategy {
	return m.strategy
}

func (m *Matcher) IgnoreCase() bool {
	return m.ignoreCase
}

func (m *Matcher) String() string {
	if m.ignoreCase {
		return m.strategy.String() + "/IgnoreCase"
	}
	return m.strategy.String()
}

// Match filters items against query and returns the survivors in
// the order the active strategy prescribes.
func (m *Matcher) Match(items []*candidate.Item, query string) List {
	if pdebug.Enabled {
		g := pdebug.Marker("Matcher.Match %s (query=%q, items=%d)", m, query, len(items))
		defer g.End()
	}

	switch m.strategy {
	case Fuzzy:
		return matchFuzzy(items, query, m.ignoreCase)
	default:
		return matchToken(items, query, m.ignoreCase)
	}
}

// Accepts reports whether a single item satisfies the active
// predicate for query, regardless of ranking.
func (m *Matcher) Accepts(it *candidate.Item, query string) bool {
	switch m.strategy {
	case Fuzzy:
		_, ok := fuzzyDistance([]byte(foldIf(query, m.ignoreCase)), it.Text(), m.ignoreCase)
		return ok || query == ""
	default:
		return tokensMatch(foldIf(it.Text(), m.ignoreCase), splitTokens(foldIf(query, m.ignoreCase)))
	}
}

// All returns every item in store order. Dynamic mode uses it: the
// external command already did the filtering.
func All(items []*candidate.Item) List {
	l := make(List, len(items))
	for i := range items {
		l[i] = i
	}
	return l
}
