package candidate

import (
	"strings"

	"github.com/google/btree"
	"github.com/peco/dmenu/internal/util"
)

type hpKey string

// Less implements the btree.Item interface
func (k hpKey) Less(than btree.Item) bool {
	return k < than.(hpKey)
}

// HighPrioritySet holds the strings given out-of-band as high
// priority. The set is sorted once when built; membership is an
// ordered lookup, optionally ignoring ASCII case.
type HighPrioritySet struct {
	tree     *btree.BTree
	foldCase bool
}

// ParseHighPriorityList splits a comma separated list. Empty fields
// are dropped.
func ParseHighPriorityList(s string) []string {
	var list []string
	for _, v := range strings.Split(s, ",") {
		if v == "" {
			continue
		}
		list = append(list, v)
	}
	return list
}

// NewHighPrioritySet builds the set from list.
func NewHighPrioritySet(list []string, foldCase bool) *HighPrioritySet {
	s := &HighPrioritySet{
		tree:     btree.New(32),
		foldCase: foldCase,
	}
	for _, v := range list {
		s.tree.ReplaceOrInsert(s.key(v))
	}
	return s
}

func (s *HighPrioritySet) key(v string) hpKey {
	if s.foldCase {
		return hpKey(util.FoldASCII(v))
	}
	return hpKey(v)
}

// Has reports whether text is a member of the set. A nil set has no
// members.
func (s *HighPrioritySet) Has(text string) bool {
	if s == nil || s.tree.Len() == 0 {
		return false
	}
	return s.tree.Has(s.key(text))
}

func (s *HighPrioritySet) Len() int {
	if s == nil {
		return 0
	}
	return s.tree.Len()
}
