package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/peco/dmenu/candidate"
	"github.com/peco/dmenu/config"
	"github.com/peco/dmenu/filter"
)

// CensorRune replaces every query rune in password mode.
const CensorRune = '.'

// Frame is everything the renderer looks at. It is a snapshot: Render
// never writes back to it.
type Frame struct {
	Geometry  Geometry
	Prompt    string
	Query     string
	Cursor    int // byte offset into Query
	Password  bool
	Items     []*candidate.Item
	Matches   filter.List
	Start     int
	End       int
	Selection int
	HasPrev   bool
	HasNext   bool
	Total     int
}

// CommandKind says what a draw Command does.
type CommandKind uint8

const (
	CmdFill CommandKind = iota
	CmdText
	CmdCursor
)

// Command is one draw call. Rects are relative to the menu area.
type Command struct {
	Kind   CommandKind
	Rect   Rect
	Pad    int
	Text   string
	Scheme config.SchemeKind
}

// HitKind says what lies under the pointer.
type HitKind uint8

const (
	HitNone HitKind = iota
	HitInput
	HitLeft
	HitRight
	HitItem
)

// Hit is a clickable region, relative to the menu area. Pos is the
// match list position of a HitItem.
type Hit struct {
	Kind HitKind
	Rect Rect
	Pos  int
}

// Drawing is the output of Render.
type Drawing struct {
	Commands []Command
	Hits     []Hit
}

// HitTest finds the region under (x, y), given in menu coordinates.
// Later regions win over earlier ones.
func (d *Drawing) HitTest(x, y int) Hit {
	for i := len(d.Hits) - 1; i >= 0; i-- {
		if d.Hits[i].Rect.Contains(x, y) {
			return d.Hits[i]
		}
	}
	return Hit{Kind: HitNone, Pos: -1}
}

// Cursor returns the caret position, if one is drawn.
func (d *Drawing) Cursor() (int, int, bool) {
	for _, c := range d.Commands {
		if c.Kind == CmdCursor {
			return c.Rect.X, c.Rect.Y, true
		}
	}
	return 0, 0, false
}

func (d *Drawing) fill(r Rect, k config.SchemeKind) {
	d.Commands = append(d.Commands, Command{Kind: CmdFill, Rect: r, Scheme: k})
}

func (d *Drawing) text(r Rect, s string, k config.SchemeKind) {
	if r.W <= 0 {
		return
	}
	d.Commands = append(d.Commands, Command{Kind: CmdText, Rect: r, Pad: LRPad / 2, Text: s, Scheme: k})
}

func (d *Drawing) hit(kind HitKind, r Rect, pos int) {
	d.Hits = append(d.Hits, Hit{Kind: kind, Rect: r, Pos: pos})
}

// Censor hides s behind one CensorRune per rune.
func Censor(s string) string {
	return strings.Repeat(string(CensorRune), utf8.RuneCountInString(s))
}

// ItemScheme picks the colour scheme of a listed match: selected,
// then high priority, then already emitted, then normal.
func ItemScheme(it *candidate.Item, selected bool) config.SchemeKind {
	switch {
	case selected:
		return config.SchemeSel
	case it.HighPriority():
		return config.SchemeHp
	case it.Emitted():
		return config.SchemeOut
	}
	return config.SchemeNorm
}

// Render turns a Frame into draw commands and pointer regions.
func Render(f Frame) Drawing {
	var d Drawing
	g := f.Geometry
	mw, bh := g.Menu.W, g.RowHeight

	d.fill(Rect{W: mw, H: g.Menu.H}, config.SchemeNorm)

	x := 0
	if f.Prompt != "" {
		d.text(Rect{X: x, W: min(g.PromptWidth, mw), H: bh}, f.Prompt, config.SchemeSel)
		x += g.PromptWidth
	}

	matched := len(f.Matches) > 0
	w := g.InputWidth
	if g.Vertical() || !matched {
		w = mw - x
	}
	w = max(w, 0)

	shown, head := f.Query, f.Query[:min(max(f.Cursor, 0), len(f.Query))]
	if f.Password {
		shown, head = Censor(shown), Censor(head)
	}
	d.text(Rect{X: x, W: w, H: bh}, shown, config.SchemeNorm)
	if col := runewidth.StringWidth(head) + LRPad/2; col < w {
		d.Commands = append(d.Commands, Command{Kind: CmdCursor, Rect: Rect{X: x + col, Y: (bh - 1) / 2, W: 1, H: 1}})
	}

	counter := Counter(len(f.Matches), f.Total)
	cw := TextWidth(counter)

	if g.Vertical() {
		d.hit(HitInput, Rect{W: mw, H: bh}, -1)
		y := 0
		for pos := f.Start; pos < f.End && pos < len(f.Matches); pos++ {
			y += bh
			it := f.Items[f.Matches[pos]]
			d.text(Rect{X: x, Y: y, W: mw - x, H: bh}, it.Text(), ItemScheme(it, pos == f.Selection))
			d.hit(HitItem, Rect{Y: y, W: mw, H: bh}, pos)
		}
	} else {
		lw := TextWidth("<")
		iw := x + w
		if !f.HasPrev {
			iw += lw
		}
		d.hit(HitInput, Rect{W: iw, H: bh}, -1)

		if matched {
			x += g.InputWidth
			if f.HasPrev {
				d.text(Rect{X: x, W: lw, H: bh}, "<", config.SchemeNorm)
				d.hit(HitLeft, Rect{X: x, W: lw, H: bh}, -1)
			}
			x += lw

			rw := TextWidth(">")
			limit := mw - rw - cw
			for pos := f.Start; pos < f.End && pos < len(f.Matches); pos++ {
				it := f.Items[f.Matches[pos]]
				iw := min(TextWidth(it.Text()), limit-x)
				if iw <= 0 {
					break
				}
				d.text(Rect{X: x, W: iw, H: bh}, it.Text(), ItemScheme(it, pos == f.Selection))
				d.hit(HitItem, Rect{X: x, W: iw, H: bh}, pos)
				x += iw
			}
			if f.HasNext {
				r := Rect{X: mw - rw - cw, W: rw, H: bh}
				d.text(r, ">", config.SchemeNorm)
				d.hit(HitRight, r, -1)
			}
		}
	}

	d.text(Rect{X: max(mw-cw, 0), W: min(cw, mw), H: bh}, counter, config.SchemeNorm)
	return d
}
