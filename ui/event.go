package ui

import (
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/lestrrat-go/pdebug"

	"github.com/peco/dmenu/internal/keyseq"
)

func convertModifiers(m tcell.ModMask) keyseq.ModifierKey {
	var mod keyseq.ModifierKey
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mod |= keyseq.ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mod |= keyseq.ModCtrl
	}
	if m&tcell.ModShift != 0 {
		mod |= keyseq.ModShift
	}
	return mod
}

// keyEvent normalises a key so that a chord compares equal no matter
// how the terminal encoded it. Control codes carry Ctrl in the key
// itself; a letter typed with Ctrl becomes its control code; Shift is
// dropped from printable runes, whose case already says it.
func keyEvent(k tcell.Key, ch rune, m tcell.ModMask) Event {
	ev := Event{Type: EventKey, Key: keyseq.KeyType(k), Ch: ch, Mod: convertModifiers(m)}

	switch {
	case k == tcell.KeyRune:
		if ev.Mod&keyseq.ModCtrl != 0 {
			if l := unicode.ToLower(ch); l >= 'a' && l <= 'z' {
				ev.Key = keyseq.KeyCtrlA + keyseq.KeyType(l-'a')
				ev.Ch = 0
				ev.Mod &^= keyseq.ModCtrl
				if unicode.IsUpper(ch) {
					ev.Mod |= keyseq.ModShift
				}
				return ev
			}
		}
		ev.Mod &^= keyseq.ModShift
	case k == tcell.KeyBackspace, k == tcell.KeyTab, k == tcell.KeyEscape, k == tcell.KeyEnter:
		// these keep an explicit Ctrl: C-Enter differs from C-m
	case keyseq.IsControl(ev.Key):
		ev.Mod &^= keyseq.ModCtrl
		ev.Ch = 0
	}
	return ev
}

func mouseButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.WheelUp != 0:
		return WheelUp
	case b&tcell.WheelDown != 0:
		return WheelDown
	case b&tcell.Button1 != 0:
		return ButtonLeft
	case b&tcell.Button3 != 0:
		return ButtonMiddle
	case b&tcell.Button2 != 0:
		return ButtonRight
	}
	return ButtonNone
}

// convert maps a tcell event to an Event. Mouse reports are turned
// into presses and motion; releases and drags are dropped. Bracketed
// paste is collected into a single EventPaste.
func (t *TerminalScreen) convert(raw tcell.Event) (Event, bool) {
	switch ev := raw.(type) {
	case *tcell.EventKey:
		if t.pasting {
			t.collectPaste(ev)
			return Event{}, false
		}
		return keyEvent(ev.Key(), ev.Rune(), ev.Modifiers()), true
	case *tcell.EventPaste:
		if ev.Start() {
			t.pasting = true
			t.paste = t.paste[:0]
			return Event{}, false
		}
		t.pasting = false
		data := append([]byte(nil), t.paste...)
		return Event{Type: EventPaste, Data: data}, true
	case *tcell.EventClipboard:
		return Event{Type: EventPaste, Data: ev.Data()}, true
	case *tcell.EventMouse:
		buttons := ev.Buttons()
		prev := t.buttons
		t.buttons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)

		x, y := ev.Position()
		out := Event{Type: EventMouse, X: x, Y: y, Mod: convertModifiers(ev.Modifiers())}
		if wheel := buttons & (tcell.WheelUp | tcell.WheelDown); wheel != 0 {
			out.Button = mouseButton(wheel)
			return out, true
		}
		pressed := buttons &^ prev
		if pressed != 0 {
			out.Button = mouseButton(pressed)
			return out, out.Button != ButtonNone
		}
		if buttons == tcell.ButtonNone && prev == tcell.ButtonNone {
			out.Button = ButtonNone
			return out, true
		}
		return Event{}, false
	case *tcell.EventResize:
		return Event{Type: EventResize}, true
	case *tcell.EventFocus:
		t.focused.Store(ev.Focused)
		return Event{Type: EventFocus, Focused: ev.Focused}, true
	case *tcell.EventError:
		return Event{Type: EventError, Err: ev}, true
	}

	if pdebug.Enabled {
		pdebug.Printf("TerminalScreen: dropping event %T", raw)
	}
	return Event{}, false
}

func (t *TerminalScreen) collectPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		t.paste = utf8.AppendRune(t.paste, ev.Rune())
	case tcell.KeyEnter, tcell.KeyCtrlJ:
		t.paste = append(t.paste, '\n')
	case tcell.KeyTab:
		t.paste = append(t.paste, '\t')
	}
}
