package ui

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/peco/dmenu/config"
	"github.com/peco/dmenu/internal/keyseq"
)

// Rect is a rectangle of terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// EventType classifies the type of display event.
type EventType uint8

const (
	// EventKey is a keyboard event
	EventKey EventType = iota
	// EventMouse is a pointer press or motion
	EventMouse
	// EventResize is a terminal resize event
	EventResize
	// EventFocus reports focus gained or lost
	EventFocus
	// EventPaste carries clipboard or bracketed paste data
	EventPaste
	// EventClose means the display went away
	EventClose
	// EventError is an error event
	EventError
)

// MouseButton names the pointer button of an EventMouse. ButtonNone
// is plain motion.
type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	WheelUp
	WheelDown
)

// Event is the menu's own event type. It decouples everything outside
// the screen adapter from the terminal library.
type Event struct {
	Type    EventType
	Key     keyseq.KeyType
	Ch      rune
	Mod     keyseq.ModifierKey
	Button  MouseButton
	X, Y    int
	Data    []byte
	Focused bool
	Err     error
}

// Canvas is what Paint draws on.
type Canvas interface {
	SetCell(x, y int, ch rune, style tcell.Style)
	ShowCursor(x, y int)
	HideCursor()
	Size() (int, int)
}

// Screen is the display collaborator. It hides tcell from the
// consuming code so that it can be swapped out for testing.
type Screen interface {
	Canvas
	Init(context.Context) error
	GrabFocus(context.Context) error
	RequestFocus()
	RequestPaste(clipboard bool)
	PollEvent(context.Context) <-chan Event
	Flush() error
	Close() error
}

// Styles holds one resolved tcell style per colour scheme.
type Styles struct {
	schemes [config.SchemeOut + 1]tcell.Style
	border  tcell.Style
}

// TerminalScreen is the Screen backed by a tcell terminal.
type TerminalScreen struct {
	mutex     sync.Mutex
	screen    tcell.Screen
	newScreen func() (tcell.Screen, error)
	embedded  bool
	focused   atomic.Bool
	doneCh    chan struct{}
	closeOnce sync.Once

	grabTries     uint
	grabInterval  time.Duration
	focusTries    uint
	focusInterval time.Duration

	buttons tcell.ButtonMask
	pasting bool
	paste   []byte

	errWriter io.Writer // destination for error output (defaults to os.Stderr)
}
