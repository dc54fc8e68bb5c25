package ui

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/peco/dmenu/candidate"
	"github.com/peco/dmenu/config"
	"github.com/peco/dmenu/filter"
	"github.com/peco/dmenu/internal/location"
)

// LRPad is the horizontal padding around every piece of text, one
// cell on each side.
const LRPad = 2

// TextWidth is the number of cells s occupies once padded.
func TextWidth(s string) int {
	return runewidth.StringWidth(s) + LRPad
}

// Counter formats the matched/total counter.
func Counter(matched, total int) string {
	return fmt.Sprintf("%d/%d", matched, total)
}

// LayoutOptions are the inputs to NewGeometry that come from the
// configuration and the candidates.
type LayoutOptions struct {
	Placement  config.Placement
	Prompt     string
	Lines      int
	LineHeight int
	MinWidth   int
	Border     int
	// Widest is the largest TextWidth over all candidates. Only a
	// centered window uses it.
	Widest int
}

// Geometry is where the menu window sits inside the terminal and how
// its content area is divided.
type Geometry struct {
	Window      Rect // outer rectangle, border included
	Menu        Rect // content area in terminal coordinates
	Border      int
	RowHeight   int
	Lines       int
	PromptWidth int
	InputWidth  int
}

// NewGeometry lays the window out on a termW x termH terminal. Every
// dimension is clamped to the terminal so that drawing never fails.
func NewGeometry(termW, termH int, o LayoutOptions) Geometry {
	g := Geometry{
		RowHeight: max(o.LineHeight, 1),
		Lines:     max(o.Lines, 0),
		Border:    max(o.Border, 0),
	}
	if o.Prompt != "" {
		g.PromptWidth = TextWidth(o.Prompt)
	}

	termW, termH = max(termW, 0), max(termH, 0)
	mw := termW - 2*g.Border
	if o.Placement == config.PlacementCenter {
		mw = min(max(o.Widest+g.PromptWidth, o.MinWidth), mw)
	}
	mw = max(mw, 0)
	mh := max(min((g.Lines+1)*g.RowHeight, termH-2*g.Border), 0)

	g.Window.W = min(mw+2*g.Border, termW)
	g.Window.H = min(mh+2*g.Border, termH)
	switch o.Placement {
	case config.PlacementBottom:
		g.Window.Y = termH - g.Window.H
	case config.PlacementCenter:
		g.Window.X = (termW - g.Window.W) / 2
		g.Window.Y = (termH - g.Window.H) / 2
	}
	g.Menu = Rect{X: g.Window.X + g.Border, Y: g.Window.Y + g.Border, W: mw, H: mh}
	g.InputWidth = mw / 3
	return g
}

// Vertical reports whether matches are listed one per row.
func (g Geometry) Vertical() bool {
	return g.Lines > 0
}

// Budget is the room available to a page of matches: the list rows
// that fit below the input row when vertical, otherwise the cells left
// once the prompt, the input field, both arrows and the counter are
// placed.
func (g Geometry) Budget(counter string) int {
	if g.Vertical() {
		return g.Rows() * g.RowHeight
	}
	return g.Menu.W - (g.PromptWidth + g.InputWidth + TextWidth("<") + TextWidth(">") + TextWidth(counter))
}

// Rows is the number of list rows the window actually shows: the
// requested lines, cut down to what the clamped menu height leaves
// under the input row, and never less than one.
func (g Geometry) Rows() int {
	return max(min(g.Lines, g.Menu.H/g.RowHeight-1), 1)
}

// Cost returns the page cost function for the given match list.
func (g Geometry) Cost(items []*candidate.Item, matches filter.List) location.CostFunc {
	if g.Vertical() {
		rh := g.RowHeight
		return func(int) int { return rh }
	}
	return func(pos int) int {
		return TextWidth(items[matches[pos]].Text())
	}
}

// Local converts terminal coordinates to menu coordinates.
func (g Geometry) Local(x, y int) (int, int) {
	return x - g.Menu.X, y - g.Menu.Y
}

// WidestItem returns the largest TextWidth over items.
func WidestItem(items []*candidate.Item) int {
	w := 0
	for _, it := range items {
		w = max(w, TextWidth(it.Text()))
	}
	return w
}
