package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/peco/dmenu/internal/keyseq"
)

func TestKeyEvent(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name string
		key  tcell.Key
		ch   rune
		mod  tcell.ModMask
		want string
	}{
		{"plain rune", tcell.KeyRune, 'a', tcell.ModNone, "a"},
		{"shifted rune keeps its case only", tcell.KeyRune, 'A', tcell.ModShift, "A"},
		{"alt rune", tcell.KeyRune, 'b', tcell.ModAlt, "M-b"},
		{"alt shifted rune", tcell.KeyRune, 'G', tcell.ModAlt | tcell.ModShift, "M-G"},
		{"ctrl letter reported as rune", tcell.KeyRune, 'a', tcell.ModCtrl, "C-a"},
		{"ctrl shift letter reported as rune", tcell.KeyRune, 'Y', tcell.ModCtrl | tcell.ModShift, "S-C-y"},
		{"control code", tcell.KeyCtrlA, 0, tcell.ModCtrl, "C-a"},
		{"control code with shift", tcell.KeyCtrlJ, 0, tcell.ModCtrl | tcell.ModShift, "S-C-j"},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, "Enter"},
		{"ctrl enter", tcell.KeyEnter, 0, tcell.ModCtrl, "C-Enter"},
		{"shift enter", tcell.KeyEnter, 0, tcell.ModShift, "S-Enter"},
		{"escape", tcell.KeyEscape, 0, tcell.ModNone, "Esc"},
		{"ctrl arrow", tcell.KeyLeft, 0, tcell.ModCtrl, "C-ArrowLeft"},
		{"backspace2", tcell.KeyBackspace2, 0, tcell.ModCtrl, "BS2"},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ev := keyEvent(tc.key, tc.ch, tc.mod)
			assert.Equal(t, EventKey, ev.Type)
			assert.Equal(t, tc.want, keyseq.Key{Modifier: ev.Mod, Key: ev.Key, Ch: ev.Ch}.String())
		})
	}
}

func TestConvertMouse(t *testing.T) {
	t.Parallel()

	ts := NewTerminalScreen("")
	convert := func(b tcell.ButtonMask, mod tcell.ModMask) (Event, bool) {
		return ts.convert(tcell.NewEventMouse(3, 4, b, mod))
	}

	ev, ok := convert(tcell.Button1, tcell.ModCtrl)
	assert.True(t, ok, "press is reported")
	assert.Equal(t, ButtonLeft, ev.Button)
	assert.Equal(t, keyseq.ModCtrl, ev.Mod)
	assert.Equal(t, 3, ev.X)
	assert.Equal(t, 4, ev.Y)

	_, ok = convert(tcell.Button1, tcell.ModNone)
	assert.False(t, ok, "drag is dropped")

	_, ok = convert(tcell.ButtonNone, tcell.ModNone)
	assert.False(t, ok, "release is dropped")

	ev, ok = convert(tcell.ButtonNone, tcell.ModNone)
	assert.True(t, ok, "motion is reported")
	assert.Equal(t, ButtonNone, ev.Button)

	ev, ok = convert(tcell.Button2, tcell.ModNone)
	assert.True(t, ok)
	assert.Equal(t, ButtonRight, ev.Button)
	_, _ = convert(tcell.ButtonNone, tcell.ModNone)

	ev, ok = convert(tcell.Button3, tcell.ModShift)
	assert.True(t, ok)
	assert.Equal(t, ButtonMiddle, ev.Button)
	assert.Equal(t, keyseq.ModShift, ev.Mod)
	_, _ = convert(tcell.ButtonNone, tcell.ModNone)

	ev, ok = convert(tcell.WheelDown, tcell.ModNone)
	assert.True(t, ok)
	assert.Equal(t, WheelDown, ev.Button)
	ev, ok = convert(tcell.WheelUp, tcell.ModNone)
	assert.True(t, ok)
	assert.Equal(t, WheelUp, ev.Button)
}

func TestConvertPaste(t *testing.T) {
	t.Parallel()

	ts := NewTerminalScreen("")
	feed := []tcell.Event{
		tcell.NewEventPaste(true),
		tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone),
	}
	for _, raw := range feed {
		_, ok := ts.convert(raw)
		assert.False(t, ok, "%T is collected", raw)
	}

	ev, ok := ts.convert(tcell.NewEventPaste(false))
	assert.True(t, ok)
	assert.Equal(t, EventPaste, ev.Type)
	assert.Equal(t, "hé\nx", string(ev.Data))

	ev, ok = ts.convert(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone))
	assert.True(t, ok, "keys after the paste are keys again")
	assert.Equal(t, EventKey, ev.Type)
	assert.Equal(t, 'z', ev.Ch)
}

func TestConvertFocus(t *testing.T) {
	t.Parallel()

	ts := NewTerminalScreen("")
	ev, ok := ts.convert(tcell.NewEventFocus(true))
	assert.True(t, ok)
	assert.Equal(t, EventFocus, ev.Type)
	assert.True(t, ev.Focused)
	assert.True(t, ts.focused.Load())

	ev, ok = ts.convert(tcell.NewEventFocus(false))
	assert.True(t, ok)
	assert.False(t, ev.Focused)
	assert.False(t, ts.focused.Load())

	ev, ok = ts.convert(tcell.NewEventResize(100, 30))
	assert.True(t, ok)
	assert.Equal(t, EventResize, ev.Type)
}
