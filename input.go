package dmenu

import (
	"bytes"
	"context"

	"github.com/lestrrat-go/pdebug"

	"github.com/peco/dmenu/internal/keyseq"
	"github.com/peco/dmenu/ui"
)

// Input is the dispatcher: it takes display events one at a time and
// turns each into at most one engine transition, then redraws.
type Input struct {
	engine *Engine
	keymap *Keymap
	evsrc  <-chan ui.Event
}

func NewInput(e *Engine, km *Keymap, src <-chan ui.Event) *Input {
	return &Input{
		engine: e,
		keymap: km,
		evsrc:  src,
	}
}

// Loop processes events until the engine is done, the source closes
// or ctx is cancelled. It returns the engine's exit error, or an abort
// if the events ran out first.
func (i *Input) Loop(ctx context.Context, cancel func()) error {
	defer cancel()

	e := i.engine
	for !e.Done() {
		select {
		case <-ctx.Done():
			return makeAbort("interrupted")
		case ev, ok := <-i.evsrc:
			if !ok {
				return makeAbort("display closed")
			}
			if err := i.handleInputEvent(ctx, ev); err != nil {
				return err
			}
			if e.Done() {
				return e.Err()
			}
			if err := e.Draw(); err != nil {
				return err
			}
		}
	}
	return e.Err()
}

func (i *Input) handleInputEvent(ctx context.Context, ev ui.Event) error {
	if pdebug.Enabled {
		g := pdebug.Marker("event received from user: %#v", ev)
		defer g.End()
	}

	e := i.engine
	switch ev.Type {
	case ui.EventKey:
		return i.keymap.ExecuteAction(ctx, e, ev)
	case ui.EventMouse:
		return i.handleMouseEvent(ctx, ev)
	case ui.EventPaste:
		return i.handlePaste(ctx, ev.Data)
	case ui.EventResize:
		e.Relayout()
	case ui.EventFocus:
		if !ev.Focused && e.Screen() != nil {
			e.Screen().RequestFocus()
		}
	case ui.EventClose:
		e.Exit(makeAbort("display closed"))
	case ui.EventError:
		if pdebug.Enabled {
			pdebug.Printf("display error: %s", ev.Err)
		}
	}
	return nil
}

// handlePaste inserts pasted data up to its first newline.
func (i *Input) handlePaste(ctx context.Context, data []byte) error {
	if n := bytes.IndexByte(data, '\n'); n >= 0 {
		data = data[:n]
	}
	if len(data) == 0 {
		return nil
	}
	return editQuery(ctx, i.engine, i.engine.Query().Insert(data))
}

func (i *Input) handleMouseEvent(ctx context.Context, ev ui.Event) error {
	e := i.engine
	if ev.Button == ui.ButtonRight {
		e.Exit(makeAbort("right click"))
		return nil
	}

	x, y := e.Geometry().Local(ev.X, ev.Y)
	hit := e.Drawing().HitTest(x, y)
	if ev.Button == ui.ButtonLeft && hit.Kind == ui.HitInput {
		return editQuery(ctx, e, e.Query().Clear())
	}

	switch ev.Button {
	case ui.ButtonMiddle:
		if s := e.Screen(); s != nil {
			s.RequestPaste(ev.Mod&keyseq.ModShift != 0)
		}
		return nil
	case ui.WheelUp:
		e.Location().PageUp()
		return nil
	case ui.WheelDown:
		e.Location().PageDown()
		return nil
	}

	// hovering selects whatever modifiers are held
	if ev.Button == ui.ButtonNone {
		if hit.Kind == ui.HitItem {
			e.Location().Select(hit.Pos)
		}
		return nil
	}

	// only Ctrl may be held for clicks
	if ev.Mod&^keyseq.ModCtrl != 0 {
		return nil
	}

	switch hit.Kind {
	case ui.HitLeft:
		e.Location().PageUp()
	case ui.HitRight:
		e.Location().PageDown()
	case ui.HitItem:
		if !e.Location().Select(hit.Pos) {
			return nil
		}
		return e.Commit(false, ev.Mod&keyseq.ModCtrl != 0)
	}
	return nil
}
