package config

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// SchemeKind names the colour schemes used to draw the menu.
type SchemeKind int

const (
	SchemeNorm SchemeKind = iota
	SchemeSel
	SchemeHp
	SchemeOut
)

func (k SchemeKind) String() string {
	switch k {
	case SchemeNorm:
		return "Norm"
	case SchemeSel:
		return "Sel"
	case SchemeHp:
		return "Hp"
	case SchemeOut:
		return "Out"
	}
	return "Unknown"
}

// Scheme is a foreground and background pair. Colours are names
// ("red") or "#rrggbb".
type Scheme struct {
	Fg string `json:"Fg" yaml:"Fg" toml:"Fg"`
	Bg string `json:"Bg" yaml:"Bg" toml:"Bg"`
}

// ColorSet holds one Scheme per SchemeKind.
type ColorSet struct {
	Norm Scheme `json:"Norm" yaml:"Norm" toml:"Norm"`
	Sel  Scheme `json:"Sel" yaml:"Sel" toml:"Sel"`
	Hp   Scheme `json:"Hp" yaml:"Hp" toml:"Hp"`
	Out  Scheme `json:"Out" yaml:"Out" toml:"Out"`
}

// Init sets the default palette.
func (cs *ColorSet) Init() {
	cs.Norm = Scheme{Fg: "#bbbbbb", Bg: "#222222"}
	cs.Sel = Scheme{Fg: "#eeeeee", Bg: "#005577"}
	cs.Hp = Scheme{Fg: "#bbbbbb", Bg: "#333333"}
	cs.Out = Scheme{Fg: "#000000", Bg: "#00ffff"}
}

// Get returns the scheme for k.
func (cs ColorSet) Get(k SchemeKind) Scheme {
	switch k {
	case SchemeSel:
		return cs.Sel
	case SchemeHp:
		return cs.Hp
	case SchemeOut:
		return cs.Out
	}
	return cs.Norm
}

// Validate parses every colour once.
func (cs ColorSet) Validate() error {
	for k := SchemeNorm; k <= SchemeOut; k++ {
		if _, err := cs.Get(k).Style(); err != nil {
			return fmt.Errorf("scheme %s: %w", k, err)
		}
	}
	return nil
}

// ParseColor resolves a colour name or "#rrggbb" value.
func ParseColor(s string) (tcell.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "default") {
		return tcell.ColorDefault, nil
	}

	c := tcell.GetColor(s)
	if c == tcell.ColorDefault {
		return c, fmt.Errorf("cannot allocate color %q", s)
	}
	return c, nil
}

// Style converts the scheme into a tcell style.
func (s Scheme) Style() (tcell.Style, error) {
	fg, err := ParseColor(s.Fg)
	if err != nil {
		return tcell.StyleDefault, err
	}
	bg, err := ParseColor(s.Bg)
	if err != nil {
		return tcell.StyleDefault, err
	}
	return tcell.StyleDefault.Foreground(fg).Background(bg), nil
}
