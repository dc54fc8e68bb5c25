package dmenu

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peco/dmenu/candidate"
	"github.com/peco/dmenu/config"
	"github.com/peco/dmenu/internal/keyseq"
	"github.com/peco/dmenu/internal/mock"
	"github.com/peco/dmenu/internal/util"
	"github.com/peco/dmenu/ui"
)

func keyEvent(k keyseq.KeyType, mod keyseq.ModifierKey) ui.Event {
	return ui.Event{Type: ui.EventKey, Key: k, Mod: mod}
}

func runeEvent(ch rune) ui.Event {
	return ui.Event{Type: ui.EventKey, Key: keyseq.KeyRune, Ch: ch}
}

func typeString(s string) []ui.Event {
	var evs []ui.Event
	for _, ch := range s {
		evs = append(evs, runeEvent(ch))
	}
	return evs
}

type testEngine struct {
	*Engine
	out    *bytes.Buffer
	screen *mock.Screen
	keymap *Keymap
}

// newTestEngine builds an engine over the given candidates, attached
// to an 80x10 fake screen, with the first match pass already run.
func newTestEngine(t *testing.T, input string, setup func(*config.Config)) *testEngine {
	t.Helper()

	cfg := config.New()
	if setup != nil {
		setup(cfg)
	}
	require.NoError(t, cfg.Validate(), "cfg.Validate should succeed")

	store := candidate.NewStore(candidate.NewHighPrioritySet(cfg.HighPriority, cfg.IgnoreCase))
	var out bytes.Buffer
	e := NewEngine(cfg, store, &out)
	if !cfg.Password {
		require.NoError(t, store.Load(strings.NewReader(input)), "store.Load should succeed")
		e.ClampLines()
	}

	styles, err := ui.NewStyles(cfg.Colors)
	require.NoError(t, err, "ui.NewStyles should succeed")

	scr := mock.NewScreen()
	e.SetScreen(scr, styles)
	require.NoError(t, e.Setup(context.Background()), "e.Setup should succeed")
	require.NoError(t, e.Draw(), "e.Draw should succeed")

	return &testEngine{Engine: e, out: &out, screen: scr, keymap: NewKeymap()}
}

// send dispatches events the way the input loop does, redrawing after
// each one.
func (te *testEngine) send(t *testing.T, evs ...ui.Event) {
	t.Helper()

	in := NewInput(te.Engine, te.keymap, nil)
	for _, ev := range evs {
		require.NoError(t, in.handleInputEvent(context.Background(), ev), "handleInputEvent should succeed")
		if te.Done() {
			return
		}
		require.NoError(t, te.Draw(), "Draw should succeed")
	}
}

func (te *testEngine) matchTexts() []string {
	var list []string
	for _, idx := range te.Matches() {
		list = append(list, te.Store().At(idx).Text())
	}
	return list
}

func (te *testEngine) selectedText() string {
	if it := te.Selected(); it != nil {
		return it.Text()
	}
	return ""
}

func TestEngineSetup(t *testing.T) {
	t.Parallel()

	t.Run("first match pass selects the first match", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "apple\nbanana\ncherry\n", nil)
		assert.Equal(t, []string{"apple", "banana", "cherry"}, te.matchTexts())
		assert.Equal(t, "apple", te.selectedText())
		assert.True(t, te.Location().Valid())
		assert.Equal(t, 1, te.screen.Count("Flush"))
	})

	t.Run("lines are clamped to the number of candidates", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "a\nb\n", func(c *config.Config) { c.Lines = 10 })
		assert.Equal(t, 2, te.Lines())
		assert.True(t, te.Vertical())
	})

	t.Run("password mode lists nothing", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "", func(c *config.Config) {
			c.Password = true
			c.Lines = 5
		})
		assert.Equal(t, 0, te.Lines())
		assert.Empty(t, te.Matches())
		assert.Nil(t, te.Selected())

		te.send(t, typeString("secret")...)
		assert.Equal(t, "secret", te.Query().String())
		assert.Equal(t, " ......", te.screen.Row(0)[:7])
		assert.NotContains(t, te.screen.Row(0), "secret")
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "", nil)
		assert.Empty(t, te.Matches())
		assert.True(t, te.Location().Valid())
		assert.Contains(t, te.screen.Row(0), "0/0")
	})
}

func TestEngineCommit(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name   string
		input  string
		events []ui.Event
		output string
		done   bool
	}{
		{
			name:   "enter writes the selection",
			input:  "apple\nbanana\ncherry\n",
			events: append(typeString("ban"), keyEvent(keyseq.KeyEnter, 0)),
			output: "banana\n",
			done:   true,
		},
		{
			name:   "enter without a match writes the query",
			input:  "one\ntwo\n",
			events: append(typeString("zz"), keyEvent(keyseq.KeyEnter, 0)),
			output: "zz\n",
			done:   true,
		},
		{
			name:   "shift enter writes the raw query",
			input:  "apple\nbanana\n",
			events: append(typeString("ap"), keyEvent(keyseq.KeyEnter, keyseq.ModShift)),
			output: "ap\n",
			done:   true,
		},
		{
			name:   "ctrl j commits",
			input:  "apple\nbanana\n",
			events: []ui.Event{keyEvent(keyseq.KeyCtrlJ, 0)},
			output: "apple\n",
			done:   true,
		},
		{
			name:   "ctrl enter keeps the menu open",
			input:  "apple\nbanana\n",
			events: []ui.Event{keyEvent(keyseq.KeyEnter, keyseq.ModCtrl), keyEvent(keyseq.KeyArrowRight, 0), keyEvent(keyseq.KeyEnter, keyseq.ModCtrl)},
			output: "apple\nbanana\n",
			done:   false,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			te := newTestEngine(t, tc.input, nil)
			te.send(t, tc.events...)
			assert.Equal(t, tc.output, te.out.String())
			assert.Equal(t, tc.done, te.Done())
			if tc.done {
				assert.NoError(t, te.Err())
			}
		})
	}

	t.Run("commit keep marks the candidate emitted", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "apple\nbanana\n", nil)
		te.send(t, keyEvent(keyseq.KeyEnter, keyseq.ModCtrl))
		assert.True(t, te.Store().At(0).Emitted())
		assert.False(t, te.Store().At(1).Emitted())
	})
}

func TestEngineAbort(t *testing.T) {
	t.Parallel()

	for _, ev := range []ui.Event{
		keyEvent(keyseq.KeyEsc, 0),
		keyEvent(keyseq.KeyCtrlC, 0),
		keyEvent(keyseq.KeyCtrlG, 0),
		{Type: ui.EventClose},
	} {
		t.Run(keyseq.Key{Key: ev.Key}.String(), func(t *testing.T) {
			t.Parallel()
			te := newTestEngine(t, "alpha\nbeta\n", nil)
			te.send(t, ev)
			require.True(t, te.Done())
			require.Error(t, te.Err())
			st, ok := util.GetExitStatus(te.Err())
			assert.True(t, ok)
			assert.Equal(t, 1, st)
			assert.Empty(t, te.out.String())
		})
	}
}

func TestEngineEditing(t *testing.T) {
	t.Parallel()

	t.Run("backspace re-matches", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "apple\nbanana\n", func(c *config.Config) { c.Fuzzy = false })
		te.send(t, typeString("bx")...)
		assert.Empty(t, te.Matches())
		te.send(t, keyEvent(keyseq.KeyBackspace2, 0))
		assert.Equal(t, []string{"banana"}, te.matchTexts())
	})

	t.Run("delete forward removes the rune under the cursor", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "", nil)
		te.send(t, typeString("abc")...)
		te.send(t, keyEvent(keyseq.KeyHome, 0), keyEvent(keyseq.KeyCtrlD, 0))
		assert.Equal(t, "bc", te.Query().String())
		assert.Equal(t, 0, te.Query().Cursor())

		te.send(t, keyEvent(keyseq.KeyEnd, 0), keyEvent(keyseq.KeyDelete, 0))
		assert.Equal(t, "bc", te.Query().String())
	})

	t.Run("kill line", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "", nil)
		te.send(t, typeString("foo bar")...)
		te.send(t, keyEvent(keyseq.KeyCtrlB, 0), keyEvent(keyseq.KeyCtrlB, 0), keyEvent(keyseq.KeyCtrlK, 0))
		assert.Equal(t, "foo b", te.Query().String())
		te.send(t, keyEvent(keyseq.KeyCtrlU, 0))
		assert.Equal(t, "", te.Query().String())
	})

	t.Run("delete word", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "", nil)
		te.send(t, typeString("foo bar")...)
		te.send(t, keyEvent(keyseq.KeyCtrlW, 0))
		assert.Equal(t, "foo ", te.Query().String())
	})

	t.Run("tab completes the selection", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "apple\nbanana\n", nil)
		te.send(t, typeString("nan")...)
		te.send(t, keyEvent(keyseq.KeyTab, 0))
		assert.Equal(t, "banana", te.Query().String())
		assert.True(t, te.Query().AtEnd())
		assert.Equal(t, []string{"banana"}, te.matchTexts())
	})

	t.Run("tab without a selection does nothing", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "apple\n", nil)
		te.send(t, typeString("zz")...)
		te.send(t, keyEvent(keyseq.KeyTab, 0))
		assert.Equal(t, "zz", te.Query().String())
	})

	t.Run("unbound chords do nothing", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "apple\n", nil)
		te.send(t,
			keyEvent(keyseq.KeyCtrlZ, 0),
			ui.Event{Type: ui.EventKey, Key: keyseq.KeyRune, Ch: 'x', Mod: keyseq.ModAlt},
			keyEvent(keyseq.KeyF1, 0),
		)
		assert.Equal(t, "", te.Query().String())
		assert.False(t, te.Done())
	})

	t.Run("paste inserts up to the first newline", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "apple\nbanana\n", nil)
		te.send(t, ui.Event{Type: ui.EventPaste, Data: []byte("ban\nignored")})
		assert.Equal(t, "ban", te.Query().String())
		assert.Equal(t, []string{"banana"}, te.matchTexts())
	})

	t.Run("paste keys request the clipboard", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "", nil)
		te.send(t, keyEvent(keyseq.KeyCtrlY, 0), keyEvent(keyseq.KeyCtrlY, keyseq.ModShift))
		assert.Equal(t, [][]any{{false}, {true}}, te.screen.Calls("RequestPaste"))
	})
}

func TestEngineNavigation(t *testing.T) {
	t.Parallel()

	t.Run("home and end", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "a1\na2\na3\n", func(c *config.Config) { c.Lines = 3 })
		te.send(t, runeEvent('a'), keyEvent(keyseq.KeyArrowDown, 0))
		assert.Equal(t, "a2", te.selectedText())

		// not on the first match: select it
		te.send(t, keyEvent(keyseq.KeyHome, 0))
		assert.Equal(t, "a1", te.selectedText())
		assert.Equal(t, 1, te.Query().Cursor())

		// on the first match: move the cursor
		te.send(t, keyEvent(keyseq.KeyCtrlA, 0))
		assert.Equal(t, 0, te.Query().Cursor())

		// cursor not at the end: move it there
		te.send(t, keyEvent(keyseq.KeyEnd, 0))
		assert.Equal(t, 1, te.Query().Cursor())
		assert.Equal(t, "a1", te.selectedText())

		// cursor at the end: select the last match
		te.send(t, keyEvent(keyseq.KeyCtrlE, 0))
		assert.Equal(t, "a3", te.selectedText())
	})

	t.Run("left and right in horizontal mode", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "apple\nbanana\ncherry\n", nil)

		// empty query: right moves the selection
		te.send(t, keyEvent(keyseq.KeyArrowRight, 0))
		assert.Equal(t, "banana", te.selectedText())
		te.send(t, keyEvent(keyseq.KeyArrowLeft, 0))
		assert.Equal(t, "apple", te.selectedText())

		te.send(t, runeEvent('a'))
		te.send(t, keyEvent(keyseq.KeyArrowRight, 0))
		assert.Equal(t, "banana", te.selectedText())
		assert.Equal(t, 1, te.Query().Cursor())

		// cursor inside the query but not on the first match
		te.send(t, keyEvent(keyseq.KeyArrowLeft, 0))
		assert.Equal(t, "apple", te.selectedText())
		assert.Equal(t, 1, te.Query().Cursor())

		// on the first match: the cursor moves
		te.send(t, keyEvent(keyseq.KeyArrowLeft, 0))
		assert.Equal(t, 0, te.Query().Cursor())
		assert.Equal(t, "apple", te.selectedText())
	})

	t.Run("left and right in vertical mode only move the cursor", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "apple\nbanana\n", func(c *config.Config) { c.Lines = 2 })
		te.send(t, keyEvent(keyseq.KeyArrowRight, 0), keyEvent(keyseq.KeyArrowLeft, 0))
		assert.Equal(t, "apple", te.selectedText())

		te.send(t, keyEvent(keyseq.KeyArrowDown, 0), runeEvent('a'), keyEvent(keyseq.KeyArrowLeft, 0))
		assert.Equal(t, 0, te.Query().Cursor())
	})

	t.Run("up and down aliases", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "a\nb\nc\n", func(c *config.Config) { c.Lines = 3 })
		te.send(t, keyEvent(keyseq.KeyCtrlN, 0))
		assert.Equal(t, "b", te.selectedText())
		te.send(t, ui.Event{Type: ui.EventKey, Key: keyseq.KeyRune, Ch: 'l', Mod: keyseq.ModAlt})
		assert.Equal(t, "c", te.selectedText())
		te.send(t, keyEvent(keyseq.KeyArrowDown, 0))
		assert.Equal(t, "c", te.selectedText())
		te.send(t, keyEvent(keyseq.KeyCtrlP, 0))
		assert.Equal(t, "b", te.selectedText())
		te.send(t, ui.Event{Type: ui.EventKey, Key: keyseq.KeyRune, Ch: 'h', Mod: keyseq.ModAlt})
		assert.Equal(t, "a", te.selectedText())
		te.send(t, keyEvent(keyseq.KeyArrowUp, 0))
		assert.Equal(t, "a", te.selectedText())
	})

	t.Run("paging", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "1\n2\n3\n4\n5\n", func(c *config.Config) { c.Lines = 2 })
		assert.Equal(t, 2, te.Location().End())

		te.send(t, keyEvent(keyseq.KeyPgdn, 0))
		assert.Equal(t, "3", te.selectedText())
		assert.Equal(t, 2, te.Location().Start())

		te.send(t, ui.Event{Type: ui.EventKey, Key: keyseq.KeyRune, Ch: 'j', Mod: keyseq.ModAlt})
		assert.Equal(t, "5", te.selectedText())

		te.send(t, keyEvent(keyseq.KeyPgup, 0))
		assert.Equal(t, "3", te.selectedText())
		te.send(t, ui.Event{Type: ui.EventKey, Key: keyseq.KeyRune, Ch: 'k', Mod: keyseq.ModAlt})
		assert.Equal(t, "1", te.selectedText())
		assert.True(t, te.Location().Valid())
	})

	t.Run("resize keeps the selection on the page", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, strings.Repeat("candidate\n", 20), nil)
		for range 10 {
			te.send(t, keyEvent(keyseq.KeyArrowRight, 0))
		}
		te.screen.SetSize(40, 10)
		te.send(t, ui.Event{Type: ui.EventResize})
		assert.True(t, te.Location().Valid())
		assert.Equal(t, 10, te.Location().Selection())
	})

	t.Run("a list taller than the window pages within it", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, strings.Repeat("candidate\n", 30), func(c *config.Config) { c.Lines = 20 })
		require.Equal(t, 20, te.Lines())
		menuH := te.Geometry().Menu.H
		require.Equal(t, 10, menuH)
		assert.Equal(t, 9, te.Location().End(), "the page holds the rows below the input")

		for i := 1; i <= 12; i++ {
			te.send(t, down())
			loc := te.Location()
			require.Equal(t, i, loc.Selection())
			require.True(t, loc.Valid())

			var drawn bool
			for _, h := range te.Drawing().Hits {
				if h.Kind == ui.HitItem && h.Pos == loc.Selection() {
					drawn = true
					assert.Less(t, h.Rect.Y+h.Rect.H, menuH+1, "selection %d is drawn inside the window", i)
				}
			}
			assert.True(t, drawn, "selection %d is drawn", i)
		}
		assert.Equal(t, 9, te.Location().Start(), "the page turned once")
	})

	t.Run("focus lost asks for focus again", func(t *testing.T) {
		t.Parallel()
		te := newTestEngine(t, "a\n", nil)
		te.send(t, ui.Event{Type: ui.EventFocus, Focused: false}, ui.Event{Type: ui.EventFocus, Focused: true})
		assert.Equal(t, 1, te.screen.Count("RequestFocus"))
		assert.False(t, te.Done())
	})
}
