package filter

import (
	"cmp"
	"math"
	"slices"

	"github.com/peco/dmenu/candidate"
	"github.com/peco/dmenu/internal/util"
)

type scored struct {
	index    int
	distance float64
}

// fuzzyDistance finds the earliest left-to-right embedding of query
// in text and scores it: ln(first+2) penalises a late first hit and
// (last-first-len(query)) penalises gaps. query must already be
// folded when fold is set.
func fuzzyDistance(query []byte, text string, fold bool) (float64, bool) {
	if len(query) == 0 {
		return 0, false
	}

	pidx, sidx, eidx := 0, -1, -1
	for i := 0; i < len(text); i++ {
		c := text[i]
		if fold {
			c = util.FoldByte(c)
		}
		if c != query[pidx] {
			continue
		}
		if sidx == -1 {
			sidx = i
		}
		pidx++
		if pidx == len(query) {
			eidx = i
			break
		}
	}

	if eidx == -1 {
		return 0, false
	}
	return math.Log(float64(sidx+2)) + float64(eidx-sidx-len(query)), true
}

// matchFuzzy implements the Fuzzy strategy. Ties keep store order;
// the high priority flag plays no part.
func matchFuzzy(items []*candidate.Item, query string, fold bool) List {
	if query == "" {
		return All(items)
	}

	q := []byte(foldIf(query, fold))
	var hits []scored
	for i, it := range items {
		if d, ok := fuzzyDistance(q, it.Text(), fold); ok {
			hits = append(hits, scored{index: i, distance: d})
		}
	}

	slices.SortStableFunc(hits, func(a, b scored) int {
		return cmp.Compare(a.distance, b.distance)
	})

	out := make(List, len(hits))
	for i, h := range hits {
		out[i] = h.index
	}
	return out
}
