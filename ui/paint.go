package ui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Paint executes a Drawing on c. The border is painted first, then
// every command in order, offset to the menu origin.
func Paint(c Canvas, g Geometry, d Drawing, styles *Styles) {
	for y := g.Window.Y; y < g.Window.Y+g.Window.H; y++ {
		for x := g.Window.X; x < g.Window.X+g.Window.W; x++ {
			c.SetCell(x, y, ' ', styles.Border())
		}
	}

	cursor := false
	for _, cmd := range d.Commands {
		r := cmd.Rect
		r.X += g.Menu.X
		r.Y += g.Menu.Y
		switch cmd.Kind {
		case CmdFill:
			fillRect(c, r, styles.Get(cmd.Scheme))
		case CmdText:
			st := styles.Get(cmd.Scheme)
			fillRect(c, r, st)
			printText(c, r.X+cmd.Pad, r.Y+(r.H-1)/2, r.W-cmd.Pad, cmd.Text, st)
		case CmdCursor:
			c.ShowCursor(r.X, r.Y)
			cursor = true
		}
	}
	if !cursor {
		c.HideCursor()
	}
}

func fillRect(c Canvas, r Rect, st tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c.SetCell(x, y, ' ', st)
		}
	}
}

// printText writes s from (x, y), never past width cells. Text that
// does not fit ends in an ellipsis.
func printText(c Canvas, x, y, width int, s string, st tcell.Style) int {
	if width <= 0 {
		return 0
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "...")
	}

	written := 0
	for _, ch := range s {
		if !unicode.IsPrint(ch) {
			ch = '?'
		}
		n := runewidth.RuneWidth(ch)
		if n == 0 {
			continue
		}
		if written+n > width {
			break
		}
		c.SetCell(x+written, y, ch, st)
		written += n
	}
	return written
}
