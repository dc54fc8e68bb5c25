package keyseq

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// KeyType shares its numbering with tcell.Key so that the screen
// adapter converts by a plain cast.
type KeyType uint16

const (
	KeyRune       = KeyType(tcell.KeyRune)
	KeyArrowUp    = KeyType(tcell.KeyUp)
	KeyArrowDown  = KeyType(tcell.KeyDown)
	KeyArrowLeft  = KeyType(tcell.KeyLeft)
	KeyArrowRight = KeyType(tcell.KeyRight)
	KeyPgup       = KeyType(tcell.KeyPgUp)
	KeyPgdn       = KeyType(tcell.KeyPgDn)
	KeyHome       = KeyType(tcell.KeyHome)
	KeyEnd        = KeyType(tcell.KeyEnd)
	KeyInsert     = KeyType(tcell.KeyInsert)
	KeyDelete     = KeyType(tcell.KeyDelete)
	KeyEnter      = KeyType(tcell.KeyEnter)
	KeyTab        = KeyType(tcell.KeyTab)
	KeyEsc        = KeyType(tcell.KeyEscape)
	KeyBackspace  = KeyType(tcell.KeyBackspace)
	KeyBackspace2 = KeyType(tcell.KeyBackspace2)
	KeyF1         = KeyType(tcell.KeyF1)
	KeyF12        = KeyType(tcell.KeyF12)

	KeyCtrlA = KeyType(tcell.KeyCtrlA)
	KeyCtrlB = KeyType(tcell.KeyCtrlB)
	KeyCtrlC = KeyType(tcell.KeyCtrlC)
	KeyCtrlD = KeyType(tcell.KeyCtrlD)
	KeyCtrlE = KeyType(tcell.KeyCtrlE)
	KeyCtrlF = KeyType(tcell.KeyCtrlF)
	KeyCtrlG = KeyType(tcell.KeyCtrlG)
	KeyCtrlH = KeyType(tcell.KeyCtrlH)
	KeyCtrlI = KeyType(tcell.KeyCtrlI)
	KeyCtrlJ = KeyType(tcell.KeyCtrlJ)
	KeyCtrlK = KeyType(tcell.KeyCtrlK)
	KeyCtrlL = KeyType(tcell.KeyCtrlL)
	KeyCtrlM = KeyType(tcell.KeyCtrlM)
	KeyCtrlN = KeyType(tcell.KeyCtrlN)
	KeyCtrlO = KeyType(tcell.KeyCtrlO)
	KeyCtrlP = KeyType(tcell.KeyCtrlP)
	KeyCtrlQ = KeyType(tcell.KeyCtrlQ)
	KeyCtrlR = KeyType(tcell.KeyCtrlR)
	KeyCtrlS = KeyType(tcell.KeyCtrlS)
	KeyCtrlT = KeyType(tcell.KeyCtrlT)
	KeyCtrlU = KeyType(tcell.KeyCtrlU)
	KeyCtrlV = KeyType(tcell.KeyCtrlV)
	KeyCtrlW = KeyType(tcell.KeyCtrlW)
	KeyCtrlX = KeyType(tcell.KeyCtrlX)
	KeyCtrlY = KeyType(tcell.KeyCtrlY)
	KeyCtrlZ = KeyType(tcell.KeyCtrlZ)
)

var stringToKey = map[string]KeyType{}
var keyToString = map[KeyType]string{}

func mapkey(n string, k KeyType) {
	stringToKey[n] = k
	if _, ok := keyToString[k]; !ok {
		keyToString[k] = n
	}
}

func init() {
	for i := 0; i < 12; i++ {
		mapkey(fmt.Sprintf("F%d", i+1), KeyType(tcell.KeyF1)+KeyType(i))
	}

	// C-h, C-i and C-m share their codes with BS, Tab and Enter, so
	// the named keys are registered first and win the reverse lookup.
	mapkey("BS", KeyBackspace)
	mapkey("BS2", KeyBackspace2)
	mapkey("Tab", KeyTab)
	mapkey("Enter", KeyEnter)
	mapkey("Esc", KeyEsc)
	mapkey("Insert", KeyInsert)
	mapkey("Delete", KeyDelete)
	mapkey("Home", KeyHome)
	mapkey("End", KeyEnd)
	mapkey("Pgup", KeyPgup)
	mapkey("Pgdn", KeyPgdn)
	mapkey("ArrowUp", KeyArrowUp)
	mapkey("ArrowDown", KeyArrowDown)
	mapkey("ArrowLeft", KeyArrowLeft)
	mapkey("ArrowRight", KeyArrowRight)

	for c := 'a'; c <= 'z'; c++ {
		mapkey("C-"+string(c), KeyCtrlA+KeyType(c-'a'))
	}
	mapkey("C-[", KeyEsc)
}

// IsControl reports whether k is an ASCII control code, which
// already implies Ctrl.
func IsControl(k KeyType) bool {
	return (k > 0 && k < 0x20) || k == KeyBackspace2
}

// ToKey parses names such as "C-a", "M-b", "S-Enter", "C-S-y" or
// "ArrowUp". Modifier prefixes may come in any order.
func ToKey(name string) (Key, error) {
	var k Key
	s := name
	for {
		switch {
		case len(s) > 2 && strings.HasPrefix(s, "M-"):
			k.Modifier |= ModAlt
			s = s[2:]
			continue
		case len(s) > 2 && strings.HasPrefix(s, "S-"):
			k.Modifier |= ModShift
			s = s[2:]
			continue
		}

		if len(s) > 2 && strings.HasPrefix(s, "C-") {
			if kt, ok := stringToKey["C-"+strings.ToLower(s[2:])]; ok && IsControl(kt) {
				k.Key = kt
				return k, nil
			}
			k.Modifier |= ModCtrl
			s = s[2:]
			continue
		}
		break
	}

	if kt, ok := stringToKey[s]; ok {
		k.Key = kt
		return k, nil
	}

	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || n != len(s) {
		return Key{}, errors.Errorf("no such key %s", name)
	}
	k.Key = KeyRune
	k.Ch = r
	return k, nil
}

// MustToKey is ToKey for static tables.
func MustToKey(name string) Key {
	k, err := ToKey(name)
	if err != nil {
		panic(err)
	}
	return k
}

// ToKeyList parses a comma separated list of key names.
func ToKeyList(ksk string) (KeyList, error) {
	list := KeyList{}
	for _, term := range strings.Split(ksk, ",") {
		term = strings.TrimSpace(term)

		k, err := ToKey(term)
		if err != nil {
			return list, errors.Wrapf(err, "failed to convert '%s'", term)
		}
		list = append(list, k)
	}
	return list, nil
}
