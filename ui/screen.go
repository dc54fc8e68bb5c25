package ui

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gdamore/tcell/v2"
	"github.com/lestrrat-go/pdebug"
	"github.com/pkg/errors"
)

// Grab retry budgets. Initialising the terminal stands in for the
// keyboard grab, a focus-in report for the focus grab.
const (
	DefaultGrabTries     = 1000
	DefaultGrabInterval  = time.Millisecond
	DefaultFocusTries    = 100
	DefaultFocusInterval = 10 * time.Millisecond
)

// eventBufferSize lets resize and focus reports queue up while the
// caller is still grabbing focus and before the event loop runs.
const eventBufferSize = 32

// ErrNoFocus is returned by GrabFocus when the terminal never
// reported focus.
var ErrNoFocus = errors.New("cannot grab focus")

// NewTerminalScreen creates a screen on the controlling terminal, or
// on the tty device named by embed when it is not empty.
func NewTerminalScreen(embed string) *TerminalScreen {
	t := &TerminalScreen{
		newScreen:     tcell.NewScreen,
		doneCh:        make(chan struct{}),
		grabTries:     DefaultGrabTries,
		grabInterval:  DefaultGrabInterval,
		focusTries:    DefaultFocusTries,
		focusInterval: DefaultFocusInterval,
		errWriter:     os.Stderr,
	}
	if embed != "" {
		t.embedded = true
		t.newScreen = func() (tcell.Screen, error) {
			tty, err := tcell.NewDevTtyFromDev(embed)
			if err != nil {
				return nil, err
			}
			return tcell.NewTerminfoScreenFromTty(tty)
		}
	}
	return t
}

// Init opens the display and takes over the keyboard, retrying the
// takeover within the grab budget.
func (t *TerminalScreen) Init(ctx context.Context) (err error) {
	if pdebug.Enabled {
		g := pdebug.Marker("TerminalScreen.Init (embedded=%t)", t.embedded).BindError(&err)
		defer g.End()
	}

	screen, err := t.newScreen()
	if err != nil {
		return errors.Wrap(err, "cannot open display")
	}

	tries := t.grabTries
	if t.embedded {
		tries = 1
	}
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, screen.Init()
	}, backoff.WithBackOff(backoff.NewConstantBackOff(t.grabInterval)), backoff.WithMaxTries(max(tries, 1)))
	if err != nil {
		return errors.Wrap(err, "cannot grab keyboard")
	}

	screen.EnableMouse()
	screen.EnableFocus()
	screen.EnablePaste()
	screen.Clear()

	t.mutex.Lock()
	t.screen = screen
	t.mutex.Unlock()
	return nil
}

// GrabFocus waits for the terminal to report focus. Terminals are not
// required to report it, so callers treat ErrNoFocus as a warning.
func (t *TerminalScreen) GrabFocus(ctx context.Context) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		if t.focused.Load() {
			return struct{}{}, nil
		}
		return struct{}{}, ErrNoFocus
	}, backoff.WithBackOff(backoff.NewConstantBackOff(t.focusInterval)), backoff.WithMaxTries(max(t.focusTries, 1)))
	return err
}

// RequestFocus asks the terminal for focus reports again.
func (t *TerminalScreen) RequestFocus() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.screen == nil {
		return
	}
	t.screen.EnableFocus()
}

// RequestPaste asks for the clipboard contents. The reply arrives
// later as an EventPaste. Terminals expose one clipboard, so both
// selections read the same one.
func (t *TerminalScreen) RequestPaste(clipboard bool) {
	if pdebug.Enabled {
		pdebug.Printf("TerminalScreen.RequestPaste (clipboard=%t)", clipboard)
	}
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.screen == nil {
		return
	}
	t.screen.GetClipboard()
}

func (t *TerminalScreen) Close() error {
	t.closeOnce.Do(func() {
		if pdebug.Enabled {
			pdebug.Printf("TerminalScreen: Close")
		}
		close(t.doneCh)

		t.mutex.Lock()
		scr := t.screen
		t.screen = nil
		t.mutex.Unlock()

		if scr != nil {
			scr.Fini()
		}
	})
	return nil
}

func (t *TerminalScreen) SetCell(x, y int, ch rune, style tcell.Style) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.screen == nil {
		return
	}
	t.screen.SetContent(x, y, ch, nil, style)
}

func (t *TerminalScreen) ShowCursor(x, y int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.screen == nil {
		return
	}
	t.screen.ShowCursor(x, y)
}

func (t *TerminalScreen) HideCursor() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.screen == nil {
		return
	}
	t.screen.HideCursor()
}

func (t *TerminalScreen) Flush() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.screen == nil {
		return nil
	}
	t.screen.Show()
	return nil
}

// Size returns the dimensions of the terminal.
func (t *TerminalScreen) Size() (int, int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.screen == nil {
		return 0, 0
	}
	return t.screen.Size()
}

// PollEvent returns a channel of converted events. The polling itself
// runs in a separate goroutine so that the event loop can select on
// it together with cancellation. The channel is closed when the
// context is done, the screen is closed, or the display goes away
// (after an EventClose).
func (t *TerminalScreen) PollEvent(ctx context.Context) <-chan Event {
	evCh := make(chan Event, eventBufferSize)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(t.errWriter, "dmenu: panic in PollEvent goroutine: %v\n%s", r, debug.Stack())
			}
			close(evCh)
		}()

		for {
			t.mutex.Lock()
			scr := t.screen
			t.mutex.Unlock()
			if scr == nil {
				return
			}

			raw := scr.PollEvent()
			if raw == nil {
				select {
				case <-ctx.Done():
				case <-t.doneCh:
				case evCh <- Event{Type: EventClose}:
				}
				return
			}

			ev, ok := t.convert(raw)
			if !ok {
				continue
			}

			select {
			case <-ctx.Done():
				return
			case <-t.doneCh:
				return
			case evCh <- ev:
			}
		}
	}()
	return evCh
}
