package dmenu

import (
	"context"
	"fmt"
	"io"

	"github.com/lestrrat-go/pdebug"
	"github.com/pkg/errors"

	"github.com/peco/dmenu/candidate"
	"github.com/peco/dmenu/config"
	"github.com/peco/dmenu/filter"
	"github.com/peco/dmenu/internal/location"
	"github.com/peco/dmenu/query"
	"github.com/peco/dmenu/ui"
)

// Engine owns all non-display state of a running menu: the candidates,
// the query, the current match list and the pager cursors. It is
// driven by one event at a time and is not safe for concurrent use.
type Engine struct {
	config   *config.Config
	store    *candidate.Store
	query    *query.Buffer
	matcher  *filter.Matcher
	dynamic  *filter.Dynamic
	location *location.Location
	matches  filter.List
	lines    int
	widest   int

	screen   ui.Screen
	styles   *ui.Styles
	geometry ui.Geometry
	drawing  ui.Drawing

	out     io.Writer
	done    bool
	exitErr error
}

// NewEngine creates an Engine over store. Committed lines are written
// to out.
func NewEngine(cfg *config.Config, store *candidate.Store, out io.Writer) *Engine {
	strategy := filter.Token
	if cfg.Fuzzy {
		strategy = filter.Fuzzy
	}

	q := query.New(query.DefaultMaxLen)
	q.SetDelimiters(cfg.WordDelimiters)

	e := &Engine{
		config:   cfg,
		store:    store,
		query:    q,
		matcher:  filter.New(strategy, cfg.IgnoreCase),
		location: location.New(),
		lines:    cfg.Lines,
		out:      out,
	}
	if cfg.DynamicCommand != "" {
		e.dynamic = filter.NewDynamic(cfg.DynamicCommand)
	}
	if cfg.Password {
		e.lines = 0
	}
	return e
}

func (e *Engine) Config() *config.Config       { return e.config }
func (e *Engine) Store() *candidate.Store      { return e.store }
func (e *Engine) Query() *query.Buffer         { return e.query }
func (e *Engine) Location() *location.Location { return e.location }
func (e *Engine) Matches() filter.List         { return e.matches }
func (e *Engine) Matcher() *filter.Matcher     { return e.matcher }
func (e *Engine) Dynamic() *filter.Dynamic     { return e.dynamic }
func (e *Engine) Geometry() ui.Geometry        { return e.geometry }
func (e *Engine) Drawing() *ui.Drawing         { return &e.drawing }
func (e *Engine) Screen() ui.Screen            { return e.screen }
func (e *Engine) Lines() int                   { return e.lines }
func (e *Engine) Vertical() bool               { return e.lines > 0 }
func (e *Engine) Done() bool                   { return e.done }
func (e *Engine) Err() error                   { return e.exitErr }

// SetScreen attaches the display the engine draws on.
func (e *Engine) SetScreen(s ui.Screen, styles *ui.Styles) {
	e.screen = s
	e.styles = styles
}

// ClampLines limits the vertical list to the number of candidates.
// It runs once, after the startup load.
func (e *Engine) ClampLines() {
	e.lines = min(e.lines, e.store.Len())
}

// Exit ends the event loop. A nil error is a successful commit.
func (e *Engine) Exit(err error) {
	if pdebug.Enabled {
		pdebug.Printf("Engine.Exit (err=%v)", err)
	}
	e.done = true
	e.exitErr = err
}

// Selected returns the selected candidate, or nil when nothing
// matches.
func (e *Engine) Selected() *candidate.Item {
	sel := e.location.Selection()
	if sel == location.Null || sel >= len(e.matches) {
		return nil
	}
	return e.store.At(e.matches[sel])
}

// Setup measures the candidates and runs the first match pass.
func (e *Engine) Setup(ctx context.Context) error {
	if e.config.Placement() == config.PlacementCenter {
		e.widest = ui.WidestItem(e.store.Items())
	}
	return e.ExecQuery(ctx)
}

// ExecQuery rebuilds the match list for the current query and puts
// page and selection on its first element. With a dynamic command
// the store is refreshed first and every candidate it produced
// passes.
func (e *Engine) ExecQuery(ctx context.Context) (err error) {
	if pdebug.Enabled {
		g := pdebug.Marker("Engine.ExecQuery %q", e.query.String()).BindError(&err)
		defer g.End()
	}

	if e.dynamic != nil {
		if err := e.dynamic.Refresh(ctx, e.store, e.query.String()); err != nil {
			return errors.Wrap(err, "dynamic refresh failed")
		}
		// lines keeps its configured value here; only the startup
		// load clamps it (ClampLines)
		e.matches = filter.All(e.store.Items())
	} else {
		e.matches = e.matcher.Match(e.store.Items(), e.query.String())
	}

	e.location.Reset(0)
	e.Relayout()
	e.location.Reset(len(e.matches))
	return nil
}

// Relayout recomputes the window geometry from the display size and
// hands the resulting page budget to the pager.
func (e *Engine) Relayout() {
	w, h := 80, 24
	if e.screen != nil {
		w, h = e.screen.Size()
	}

	e.geometry = ui.NewGeometry(w, h, ui.LayoutOptions{
		Placement:  e.config.Placement(),
		Prompt:     e.config.Prompt,
		Lines:      e.lines,
		LineHeight: e.config.LineHeight,
		MinWidth:   e.config.MinWidth,
		Border:     e.config.BorderWidth,
		Widest:     e.widest,
	})
	counter := ui.Counter(len(e.matches), e.store.Len())
	e.location.SetBudget(e.geometry.Budget(counter), e.geometry.Cost(e.store.Items(), e.matches))
}

// Frame snapshots the state the renderer needs.
func (e *Engine) Frame() ui.Frame {
	loc := e.location
	return ui.Frame{
		Geometry:  e.geometry,
		Prompt:    e.config.Prompt,
		Query:     e.query.String(),
		Cursor:    e.query.Cursor(),
		Password:  e.config.Password,
		Items:     e.store.Items(),
		Matches:   e.matches,
		Start:     loc.Start(),
		End:       loc.End(),
		Selection: loc.Selection(),
		HasPrev:   loc.HasPrev(),
		HasNext:   loc.HasNext(),
		Total:     e.store.Len(),
	}
}

// Draw renders the current state and paints it on the screen. The
// drawing is kept for pointer hit tests.
func (e *Engine) Draw() error {
	e.drawing = ui.Render(e.Frame())
	if e.screen == nil {
		return nil
	}
	ui.Paint(e.screen, e.geometry, e.drawing, e.styles)
	return errors.Wrap(e.screen.Flush(), "failed to flush screen")
}

// Commit writes the selected candidate, or the query when raw is set
// or nothing is selected. Unless keep is set the menu then exits;
// otherwise the candidate is marked as emitted.
func (e *Engine) Commit(raw, keep bool) error {
	if pdebug.Enabled {
		g := pdebug.Marker("Engine.Commit (raw=%t, keep=%t)", raw, keep)
		defer g.End()
	}

	sel := e.Selected()
	text := e.query.String()
	if sel != nil && !raw {
		text = sel.Text()
	}
	if _, err := fmt.Fprintln(e.out, text); err != nil {
		return errors.Wrap(err, "failed to write output")
	}

	if !keep {
		e.Exit(nil)
		return nil
	}
	if sel != nil {
		sel.MarkEmitted()
	}
	return nil
}
