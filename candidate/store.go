package candidate

import (
	"bufio"
	"io"

	"github.com/lestrrat-go/pdebug"
	"github.com/pkg/errors"
)

// Store is the ordered sequence of candidates. It is filled once at
// startup and replaced as a whole by dynamic refreshes.
type Store struct {
	items []*Item
	hp    *HighPrioritySet
}

// NewStore creates an empty store. hp may be nil.
func NewStore(hp *HighPrioritySet) *Store {
	return &Store{hp: hp}
}

// Load appends one candidate per line read from r until EOF. The
// trailing newline of each line is stripped; nothing else is
// interpreted.
func (s *Store) Load(r io.Reader) (err error) {
	if pdebug.Enabled {
		g := pdebug.Marker("Store.Load").BindError(&err)
		defer g.End()
	}

	rdr := bufio.NewReader(r)
	for {
		l, rerr := rdr.ReadString('\n')
		if len(l) > 0 {
			if l[len(l)-1] == '\n' {
				l = l[:len(l)-1]
			}
			s.items = append(s.items, NewItem(len(s.items), l, s.hp.Has(l)))
		}

		if rerr != nil {
			if rerr == io.EOF {
				break
			}
			return errors.Wrap(rerr, "failed to read candidates")
		}
	}

	if pdebug.Enabled {
		pdebug.Printf("Store.Load: %d candidates (%d high priority)", len(s.items), s.hp.Len())
	}
	return nil
}

// Replace discards every candidate and loads a fresh set from r.
func (s *Store) Replace(r io.Reader) error {
	s.Reset()
	return s.Load(r)
}

func (s *Store) Reset() {
	s.items = nil
}

func (s *Store) Len() int {
	return len(s.items)
}

// At returns the i-th candidate in input order.
func (s *Store) At(i int) *Item {
	return s.items[i]
}

// Items returns the candidates in input order. The slice must not be
// modified.
func (s *Store) Items() []*Item {
	return s.items
}
