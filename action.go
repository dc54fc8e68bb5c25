package dmenu

import (
	"context"

	"github.com/lestrrat-go/pdebug"

	"github.com/peco/dmenu/internal/keyseq"
	"github.com/peco/dmenu/query"
	"github.com/peco/dmenu/ui"
)

// Action describes an action that can be executed upon receiving user input.
type Action interface {
	Execute(context.Context, *Engine, ui.Event) error
}

// ActionFunc is a type of Action that is basically just a callback.
type ActionFunc func(context.Context, *Engine, ui.Event) error

// This is the global map of canonical action name to actions
var nameToActions map[string]Action

// This is the default keybinding used by NewKeymap()
var defaultKeyBinding map[string]Action

// Execute fulfills the Action interface for AfterFunc
func (a ActionFunc) Execute(ctx context.Context, e *Engine, ev ui.Event) error {
	return a(ctx, e, ev)
}

// Register registers `a` into the global action registry by the name
// `name`, and maps it to the named default keys. Called during package
// init() to set up built-in actions.
func (a ActionFunc) Register(name string, defaultKeys ...string) {
	nameToActions["dmenu."+name] = a
	for _, k := range defaultKeys {
		defaultKeyBinding[keyseq.MustToKey(k).String()] = a
	}
}

// LookupAction returns the action registered under name, with or
// without the "dmenu." prefix.
func LookupAction(name string) (Action, bool) {
	if a, ok := nameToActions[name]; ok {
		return a, true
	}
	a, ok := nameToActions["dmenu."+name]
	return a, ok
}

func init() {
	// Build the global maps
	nameToActions = map[string]Action{}
	defaultKeyBinding = map[string]Action{}

	ActionFunc(doHome).Register("Home", "Home", "C-a", "M-g")
	ActionFunc(doEnd).Register("End", "End", "C-e", "M-G")
	ActionFunc(doBackwardChar).Register("BackwardChar", "ArrowLeft", "C-b")
	ActionFunc(doForwardChar).Register("ForwardChar", "ArrowRight", "C-f")
	ActionFunc(doBackwardWord).Register("BackwardWord", "C-ArrowLeft", "M-b")
	ActionFunc(doForwardWord).Register("ForwardWord", "C-ArrowRight", "M-f")
	ActionFunc(doSelectUp).Register("SelectUp", "ArrowUp", "C-p", "M-h")
	ActionFunc(doSelectDown).Register("SelectDown", "ArrowDown", "C-n", "M-l")
	ActionFunc(doScrollPageUp).Register("ScrollPageUp", "Pgup", "M-k")
	ActionFunc(doScrollPageDown).Register("ScrollPageDown", "Pgdn", "M-j")

	// C-h is BS
	ActionFunc(doDeleteBackwardChar).Register("DeleteBackwardChar", "BS", "BS2")
	ActionFunc(doDeleteForwardChar).Register("DeleteForwardChar", "Delete", "C-d")
	ActionFunc(doDeleteBackwardWord).Register("DeleteBackwardWord", "C-w")
	ActionFunc(doKillEndOfLine).Register("KillEndOfLine", "C-k")
	ActionFunc(doKillBeginningOfLine).Register("KillBeginningOfLine", "C-u")

	// C-i is Tab, C-m is Enter
	ActionFunc(doComplete).Register("Complete", "Tab")
	ActionFunc(doFinish).Register("Finish", "Enter", "C-j")
	ActionFunc(doFinishRaw).Register("FinishRaw", "S-Enter", "S-C-j")
	ActionFunc(doFinishKeep).Register("FinishKeep", "C-Enter")
	ActionFunc(doPastePrimary).Register("PastePrimary", "C-y")
	ActionFunc(doPasteClipboard).Register("PasteClipboard", "S-C-y")

	// C-[ is Esc
	ActionFunc(doCancel).Register("Cancel", "Esc", "C-c", "C-g")
}

// editQuery re-matches after an edit that changed the query text.
func editQuery(ctx context.Context, e *Engine, changed bool) error {
	if !changed {
		return nil
	}
	return e.ExecQuery(ctx)
}

func doInsertRune(ctx context.Context, e *Engine, ev ui.Event) error {
	return editQuery(ctx, e, e.Query().InsertString(string(ev.Ch)))
}

// doHome moves the query cursor to the start when the first match is
// already selected, and selects the first match otherwise.
func doHome(_ context.Context, e *Engine, _ ui.Event) error {
	if e.Location().AtFirst() {
		e.Query().MoveToStart()
		return nil
	}
	e.Location().First()
	return nil
}

// doEnd moves the query cursor to the end, or when it is already
// there, jumps to the last page and selects the last match.
func doEnd(_ context.Context, e *Engine, _ ui.Event) error {
	if !e.Query().AtEnd() {
		e.Query().MoveToEnd()
		return nil
	}
	e.Location().Last()
	return nil
}

func doBackwardChar(ctx context.Context, e *Engine, ev ui.Event) error {
	q := e.Query()
	if !q.AtStart() && (e.Selected() == nil || e.Location().AtFirst() || e.Vertical()) {
		q.MoveRune(query.Backward)
		return nil
	}
	if e.Vertical() {
		return nil
	}
	return doSelectUp(ctx, e, ev)
}

func doForwardChar(ctx context.Context, e *Engine, ev ui.Event) error {
	q := e.Query()
	if !q.AtEnd() {
		q.MoveRune(query.Forward)
		return nil
	}
	if e.Vertical() {
		return nil
	}
	return doSelectDown(ctx, e, ev)
}

func doBackwardWord(_ context.Context, e *Engine, _ ui.Event) error {
	e.Query().MoveWord(query.Backward)
	return nil
}

func doForwardWord(_ context.Context, e *Engine, _ ui.Event) error {
	e.Query().MoveWord(query.Forward)
	return nil
}

func doSelectUp(_ context.Context, e *Engine, _ ui.Event) error {
	e.Location().Prev()
	return nil
}

func doSelectDown(_ context.Context, e *Engine, _ ui.Event) error {
	e.Location().Next()
	return nil
}

func doScrollPageUp(_ context.Context, e *Engine, _ ui.Event) error {
	e.Location().PageUp()
	return nil
}

func doScrollPageDown(_ context.Context, e *Engine, _ ui.Event) error {
	e.Location().PageDown()
	return nil
}

func doDeleteBackwardChar(ctx context.Context, e *Engine, _ ui.Event) error {
	return editQuery(ctx, e, e.Query().DeleteRune(query.Backward))
}

// doDeleteForwardChar steps over the rune under the cursor and
// deletes it backwards. It does nothing at the end of the query.
func doDeleteForwardChar(ctx context.Context, e *Engine, _ ui.Event) error {
	q := e.Query()
	if q.AtEnd() {
		return nil
	}
	q.MoveRune(query.Forward)
	return editQuery(ctx, e, q.DeleteRune(query.Backward))
}

func doDeleteBackwardWord(ctx context.Context, e *Engine, _ ui.Event) error {
	return editQuery(ctx, e, e.Query().DeleteWord(query.Backward))
}

func doKillEndOfLine(ctx context.Context, e *Engine, _ ui.Event) error {
	return editQuery(ctx, e, e.Query().DeleteToEnd())
}

func doKillBeginningOfLine(ctx context.Context, e *Engine, _ ui.Event) error {
	return editQuery(ctx, e, e.Query().DeleteToStart())
}

// doComplete copies the selected candidate into the query.
func doComplete(ctx context.Context, e *Engine, _ ui.Event) error {
	sel := e.Selected()
	if sel == nil {
		return nil
	}
	e.Query().Set(sel.Text())
	return e.ExecQuery(ctx)
}

func doFinish(_ context.Context, e *Engine, _ ui.Event) error {
	if pdebug.Enabled {
		g := pdebug.Marker("doFinish")
		defer g.End()
	}
	return e.Commit(false, false)
}

func doFinishRaw(_ context.Context, e *Engine, _ ui.Event) error {
	return e.Commit(true, false)
}

// doFinishKeep writes the selection but leaves the menu open.
func doFinishKeep(_ context.Context, e *Engine, _ ui.Event) error {
	return e.Commit(false, true)
}

func doPastePrimary(_ context.Context, e *Engine, _ ui.Event) error {
	if s := e.Screen(); s != nil {
		s.RequestPaste(false)
	}
	return nil
}

func doPasteClipboard(_ context.Context, e *Engine, _ ui.Event) error {
	if s := e.Screen(); s != nil {
		s.RequestPaste(true)
	}
	return nil
}

func doCancel(_ context.Context, e *Engine, _ ui.Event) error {
	if pdebug.Enabled {
		g := pdebug.Marker("doCancel")
		defer g.End()
	}
	e.Exit(makeAbort("user canceled"))
	return nil
}
