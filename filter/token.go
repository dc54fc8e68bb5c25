package filter

import (
	"strings"

	"github.com/peco/dmenu/candidate"
	"github.com/peco/dmenu/internal/util"
)

func foldIf(s string, fold bool) string {
	if fold {
		return util.FoldASCII(s)
	}
	return s
}

// splitTokens splits on runs of spaces. Leading and trailing spaces
// produce no empty tokens.
func splitTokens(q string) []string {
	return strings.FieldsFunc(q, func(r rune) bool { return r == ' ' })
}

func tokensMatch(text string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(text, tok) {
			return false
		}
	}
	return true
}

// matchToken implements the Token strategy. The exact bucket
// compares against the whole query, spaces included.
func matchToken(items []*candidate.Item, query string, fold bool) List {
	query = foldIf(query, fold)
	tokens := splitTokens(query)
	if len(tokens) == 0 {
		return All(items)
	}
	first := tokens[0]

	var exact, hpPrefix, prefix, substr List
	for i, it := range items {
		text := foldIf(it.Text(), fold)
		if !tokensMatch(text, tokens) {
			continue
		}

		switch {
		case text == query:
			exact = append(exact, i)
		case it.HighPriority() && strings.HasPrefix(text, first):
			hpPrefix = append(hpPrefix, i)
		case strings.HasPrefix(text, first):
			prefix = append(prefix, i)
		default:
			substr = append(substr, i)
		}
	}

	out := make(List, 0, len(exact)+len(hpPrefix)+len(prefix)+len(substr))
	out = append(out, exact...)
	out = append(out, hpPrefix...)
	out = append(out, prefix...)
	return append(out, substr...)
}
