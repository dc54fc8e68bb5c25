package location

// CostFunc returns how much of the page budget the match at pos
// takes up: a cell width in horizontal mode, a row height in vertical
// mode.
type CostFunc func(pos int) int

// Location holds the page and selection cursors over a match list of
// Total() entries. Cursors are positions in the match list.
//
// Whenever the list is non-empty, Start() <= Selection() < End(),
// and [Start(), End()) is exactly the run of matches that fits the
// budget. When the list is empty every cursor is -1.
type Location struct {
	total  int
	start  int
	end    int
	prev   int
	sel    int
	budget int
	cost   CostFunc
}

// Null is the value of every cursor over an empty list.
const Null = -1

func unitCost(int) int { return 1 }

// New creates a Location over an empty list.
func New() *Location {
	l := &Location{cost: unitCost, budget: 1}
	l.Reset(0)
	return l
}

// SetBudget changes the page geometry and re-establishes the
// invariants, moving pages forward if the selection no longer fits.
func (l *Location) SetBudget(budget int, cost CostFunc) {
	if cost == nil {
		cost = unitCost
	}
	l.budget = budget
	l.cost = cost
	if l.total == 0 {
		return
	}

	l.recompute()
	for l.sel >= l.end && l.end < l.total {
		l.start = l.end
		l.recompute()
	}
	if l.sel < l.start {
		l.start = l.sel
		l.recompute()
	}
}

// Reset points the page and the selection at the first of total
// matches.
func (l *Location) Reset(total int) {
	l.total = total
	if total == 0 {
		l.start, l.end, l.prev, l.sel = Null, Null, Null, Null
		return
	}
	l.start, l.sel = 0, 0
	l.recompute()
}

// recompute walks right from start to find the page end, and left to
// find where the previous page starts. An item never costs more than
// the whole budget, so every page holds at least one item.
func (l *Location) recompute() {
	n := max(l.budget, 1)

	i := 0
	l.end = l.start
	for l.end < l.total {
		if i += min(l.cost(l.end), n); i > n {
			break
		}
		l.end++
	}

	i = 0
	l.prev = l.start
	for l.prev > 0 {
		if i += min(l.cost(l.prev-1), n); i > n {
			break
		}
		l.prev--
	}
}

func (l *Location) Total() int     { return l.total }
func (l *Location) Start() int     { return l.start }
func (l *Location) End() int       { return l.end }
func (l *Location) PrevStart() int { return l.prev }
func (l *Location) Selection() int { return l.sel }
func (l *Location) Empty() bool    { return l.total == 0 }

// HasNext reports whether a page follows the current one.
func (l *Location) HasNext() bool {
	return l.total > 0 && l.end < l.total
}

// HasPrev reports whether a page precedes the current one.
func (l *Location) HasPrev() bool {
	return l.total > 0 && l.start > 0
}

// Valid checks the cursor invariants.
func (l *Location) Valid() bool {
	if l.total == 0 {
		return l.start == Null && l.sel == Null && l.end == Null
	}
	return 0 <= l.start && l.start <= l.sel && l.sel < l.end && l.end <= l.total
}

// Next selects the following match, turning the page when the
// selection walks off its end.
func (l *Location) Next() bool {
	if l.total == 0 || l.sel+1 >= l.total {
		return false
	}
	l.sel++
	if l.sel == l.end {
		l.start = l.end
		l.recompute()
	}
	return true
}

// Prev selects the preceding match, turning the page back when the
// selection walks off its start.
func (l *Location) Prev() bool {
	if l.total == 0 || l.sel == 0 {
		return false
	}
	l.sel--
	if l.sel < l.start {
		l.start = l.prev
		l.recompute()
	}
	return true
}

// PageDown moves page and selection to the next page.
func (l *Location) PageDown() bool {
	if !l.HasNext() {
		return false
	}
	l.start, l.sel = l.end, l.end
	l.recompute()
	return true
}

// PageUp moves page and selection to the previous page start. On the
// first page this selects the first match.
func (l *Location) PageUp() bool {
	if l.total == 0 {
		return false
	}
	l.start, l.sel = l.prev, l.prev
	l.recompute()
	return true
}

// First selects the first match.
func (l *Location) First() bool {
	if l.total == 0 {
		return false
	}
	l.start, l.sel = 0, 0
	l.recompute()
	return true
}

// AtFirst reports whether the first match is selected. An empty list
// counts as being at the first match.
func (l *Location) AtFirst() bool {
	return l.sel == 0 || l.total == 0
}

// Last jumps to the final page, laid out so that it ends on the last
// match, and selects the last match.
func (l *Location) Last() bool {
	if l.total == 0 {
		return false
	}

	if l.HasNext() {
		l.start = l.total - 1
		l.recompute()
		l.start = l.prev
		l.recompute()
		for l.HasNext() {
			l.start++
			l.recompute()
		}
	}
	l.sel = l.total - 1
	return true
}

// Select puts the selection on pos when it is on the current page.
func (l *Location) Select(pos int) bool {
	if l.total == 0 || pos < l.start || pos >= l.end {
		return false
	}
	l.sel = pos
	l.recompute()
	return true
}
