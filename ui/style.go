package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/peco/dmenu/config"
)

// NewStyles resolves every scheme of cs. Any colour that cannot be
// parsed is an error.
func NewStyles(cs config.ColorSet) (*Styles, error) {
	var s Styles
	for k := config.SchemeNorm; k <= config.SchemeOut; k++ {
		st, err := cs.Get(k).Style()
		if err != nil {
			return nil, errors.Wrapf(err, "cannot allocate color for scheme %s", k)
		}
		s.schemes[k] = st
	}

	_, bg, _ := s.schemes[config.SchemeSel].Decompose()
	s.border = tcell.StyleDefault.Background(bg)
	return &s, nil
}

// Get returns the style for scheme k.
func (s *Styles) Get(k config.SchemeKind) tcell.Style {
	if k < config.SchemeNorm || k > config.SchemeOut {
		k = config.SchemeNorm
	}
	return s.schemes[k]
}

// Border is the style of the window border: the selected background.
func (s *Styles) Border() tcell.Style {
	return s.border
}
