package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/peco/dmenu/ui"
)

// Screen is an in-memory ui.Screen. It keeps the painted cells so
// that tests can read rows back, and replays a fixed list of events
// from PollEvent, closing the channel after the last one.
type Screen struct {
	*Interceptor

	mutex   sync.Mutex
	width   int
	height  int
	cells   [][]rune
	styles  [][]tcell.Style
	cursorX int
	cursorY int
	cursor  bool
	closed  bool
	events  []ui.Event

	InitErr  error
	FocusErr error
}

func NewScreen(events ...ui.Event) *Screen {
	s := &Screen{
		Interceptor: NewInterceptor(),
		events:      events,
	}
	s.SetSize(80, 10)
	return s
}

// SetSize resizes and clears the screen.
func (d *Screen) SetSize(w, h int) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.width, d.height = w, h
	d.cells = make([][]rune, h)
	d.styles = make([][]tcell.Style, h)
	for y := range d.cells {
		d.cells[y] = []rune(strings.Repeat(" ", w))
		d.styles[y] = make([]tcell.Style, w)
	}
}

func (d *Screen) Init(context.Context) error {
	d.Record("Init")
	return d.InitErr
}

func (d *Screen) GrabFocus(context.Context) error {
	d.Record("GrabFocus")
	return d.FocusErr
}

func (d *Screen) RequestFocus() {
	d.Record("RequestFocus")
}

func (d *Screen) RequestPaste(clipboard bool) {
	d.Record("RequestPaste", clipboard)
}

func (d *Screen) PollEvent(ctx context.Context) <-chan ui.Event {
	ch := make(chan ui.Event, len(d.events))
	for _, ev := range d.events {
		ch <- ev
	}
	close(ch)
	return ch
}

func (d *Screen) SetCell(x, y int, ch rune, style tcell.Style) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if y < 0 || y >= d.height || x < 0 || x >= d.width {
		return
	}
	d.cells[y][x] = ch
	d.styles[y][x] = style
}

func (d *Screen) ShowCursor(x, y int) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.cursorX, d.cursorY, d.cursor = x, y, true
}

func (d *Screen) HideCursor() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.cursor = false
}

func (d *Screen) Size() (int, int) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.width, d.height
}

func (d *Screen) Flush() error {
	d.Record("Flush")
	return nil
}

func (d *Screen) Close() error {
	d.mutex.Lock()
	d.closed = true
	d.mutex.Unlock()

	d.Record("Close")
	return nil
}

// Row returns the text painted on row y without trailing blanks.
func (d *Screen) Row(y int) string {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if y < 0 || y >= d.height {
		return ""
	}
	return strings.TrimRight(string(d.cells[y]), " ")
}

// StyleAt returns the style of the cell at (x, y).
func (d *Screen) StyleAt(x, y int) tcell.Style {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if y < 0 || y >= d.height || x < 0 || x >= d.width {
		return tcell.StyleDefault
	}
	return d.styles[y][x]
}

// Cursor returns the cursor position and whether it is shown.
func (d *Screen) Cursor() (int, int, bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.cursorX, d.cursorY, d.cursor
}

func (d *Screen) Closed() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.closed
}
