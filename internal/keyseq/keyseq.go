package keyseq

import (
	"strings"
)

type ModifierKey int

const (
	ModNone  ModifierKey = 0
	ModAlt   ModifierKey = 1 << 0 // 0x01
	ModCtrl  ModifierKey = 1 << 1 // 0x02
	ModShift ModifierKey = 1 << 2 // 0x04
)

// Key is one key press: a named key or a rune, plus modifiers.
// Control characters carry their control-ness in Key itself (C-a is
// KeyCtrlA with no modifier), so the same key compares equal no
// matter how the terminal reported it.
type Key struct {
	Modifier ModifierKey // Alt, etc
	Key      KeyType
	Ch       rune
}

// KeyList is just the list of keys
type KeyList []Key

func (kl KeyList) String() string {
	list := make([]string, len(kl))
	for i := range kl {
		list[i] = kl[i].String()
	}
	return strings.Join(list, ",")
}

func (m ModifierKey) String() string {
	var parts []string
	if m&ModCtrl != 0 {
		parts = append(parts, "C")
	}
	if m&ModShift != 0 {
		parts = append(parts, "S")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "M")
	}
	return strings.Join(parts, "-")
}

func (k Key) String() string {
	var s string
	if m := k.Modifier.String(); m != "" {
		s += m + "-"
	}

	if k.Key == KeyRune {
		return s + string(k.Ch)
	}

	if n, ok := keyToString[k.Key]; ok {
		return s + n
	}
	return s + "?"
}

// IsRune reports whether k is a printable character without Ctrl or
// Alt held.
func (k Key) IsRune() bool {
	return k.Key == KeyRune && k.Modifier&(ModCtrl|ModAlt) == 0
}

// NewKeyFromKey creates an unmodified Key for a named key.
func NewKeyFromKey(k KeyType) Key {
	return Key{Key: k}
}

// NewKeyFromRune creates an unmodified Key for a character.
func NewKeyFromRune(r rune) Key {
	return Key{Key: KeyRune, Ch: r}
}
