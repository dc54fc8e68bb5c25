package dmenu

import (
	"context"

	"github.com/lestrrat-go/pdebug"

	"github.com/peco/dmenu/internal/keyseq"
	"github.com/peco/dmenu/ui"
)

// Keymap maps key events to actions. The table is closed: chords
// that are not bound do nothing.
type Keymap struct {
	bindings map[string]Action
}

// NewKeymap creates a Keymap holding the default bindings.
func NewKeymap() *Keymap {
	km := &Keymap{bindings: make(map[string]Action, len(defaultKeyBinding))}
	for k, a := range defaultKeyBinding {
		km.bindings[k] = a
	}
	return km
}

// LookupAction finds the action for ev. A Shift that no binding asks
// for is ignored on named keys, so S-ArrowUp still moves up. Plain
// printable runes insert themselves.
func (km *Keymap) LookupAction(ev ui.Event) (Action, bool) {
	k := keyseq.Key{Modifier: ev.Mod, Key: ev.Key, Ch: ev.Ch}
	if a, ok := km.bindings[k.String()]; ok {
		return a, true
	}

	if k.Modifier == keyseq.ModShift && k.Key != keyseq.KeyRune && !keyseq.IsControl(k.Key) {
		k.Modifier = keyseq.ModNone
		if a, ok := km.bindings[k.String()]; ok {
			return a, true
		}
	}

	if k.IsRune() && ev.Ch >= ' ' && ev.Ch != 0x7f {
		return ActionFunc(doInsertRune), true
	}
	return nil, false
}

// ExecuteAction runs the action bound to ev, if any.
func (km *Keymap) ExecuteAction(ctx context.Context, e *Engine, ev ui.Event) error {
	a, ok := km.LookupAction(ev)
	if !ok {
		if pdebug.Enabled {
			pdebug.Printf("Keymap.ExecuteAction: no action for %s", keyseq.Key{Modifier: ev.Mod, Key: ev.Key, Ch: ev.Ch})
		}
		return nil
	}
	return a.Execute(ctx, e, ev)
}
