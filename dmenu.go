package dmenu

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/pdebug"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/peco/dmenu/candidate"
	"github.com/peco/dmenu/config"
	"github.com/peco/dmenu/internal/util"
	"github.com/peco/dmenu/sig"
	"github.com/peco/dmenu/ui"
)

const version = "5.3"

// Dmenu is one run of the menu program: it reads the candidates,
// opens the display, runs the event loop and writes the committed
// line.
type Dmenu struct {
	Argv   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger

	screen          ui.Screen
	locateResources func() (string, error)
	localeSupported func() bool
	isTty           func(any) bool
}

// New creates a Dmenu wired to the process' arguments and standard
// streams.
func New() *Dmenu {
	return &Dmenu{
		Argv:   os.Args[1:],
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: NewLogger(os.Stderr),

		locateResources: func() (string, error) {
			return config.LocateResources(config.DefaultResourceLocator)
		},
		localeSupported: util.LocaleSupported,
		isTty:           util.IsTty,
	}
}

// NewLogger creates the logger used for user visible diagnostics.
func NewLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{Prefix: "dmenu"})
}

// Run executes the menu until a commit or an abort. A nil error is a
// successful commit; every other outcome carries its exit status.
func (d *Dmenu) Run(ctx context.Context) (err error) {
	if pdebug.Enabled {
		g := pdebug.Marker("Dmenu.Run").BindError(&err)
		defer g.End()
	}

	var opts CLIOptions
	if err := opts.parse(d.Argv, d.Stderr); err != nil {
		return err
	}
	if opts.OptHelp {
		_, err := d.Stdout.Write(opts.help())
		return err
	}
	if opts.OptVersion {
		_, err := fmt.Fprintf(d.Stdout, "dmenu-%s\n", version)
		return err
	}

	if d.localeSupported != nil && !d.localeSupported() {
		d.Logger.Warn("no locale support")
	}

	cfg, err := d.loadConfig(opts)
	if err != nil {
		return err
	}

	styles, err := ui.NewStyles(cfg.Colors)
	if err != nil {
		return err
	}

	// a terminal on stdout is the one the menu draws on: hold the
	// committed lines until the screen is torn down
	out := d.Stdout
	var pending *bytes.Buffer
	if d.tty(d.Stdout) {
		pending = &bytes.Buffer{}
		out = pending
	}

	store := candidate.NewStore(candidate.NewHighPrioritySet(cfg.HighPriority, cfg.IgnoreCase))
	e := NewEngine(cfg, store, out)

	screen := d.screen
	if screen == nil {
		screen = ui.NewTerminalScreen(cfg.EmbedWindow)
	}
	defer func() {
		_ = screen.Close()
		if pending == nil || pending.Len() == 0 {
			return
		}
		if _, werr := d.Stdout.Write(pending.Bytes()); werr != nil && err == nil {
			err = errors.Wrap(werr, "failed to write output")
		}
	}()

	// fast start grabs the keyboard first, unless the user is typing
	// the candidates on a terminal
	if cfg.FastStart && !d.tty(d.Stdin) {
		if err := screen.Init(ctx); err != nil {
			return err
		}
		if err := d.readStdin(e); err != nil {
			return err
		}
	} else {
		if err := d.readStdin(e); err != nil {
			return err
		}
		if err := screen.Init(ctx); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	evCh := screen.PollEvent(ctx)
	if cfg.EmbedWindow != "" {
		if err := screen.GrabFocus(ctx); err != nil {
			if pdebug.Enabled {
				pdebug.Printf("Dmenu.Run: %s", err)
			}
		}
	}

	e.SetScreen(screen, styles)
	if err := e.Setup(ctx); err != nil {
		return err
	}
	if err := e.Draw(); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h := sig.ReceivedHandlerFunc(func(s os.Signal) {
			d.Logger.Debug("received signal", "signal", s)
		})
		return sig.New(h).Loop(ctx, cancel)
	})
	g.Go(func() error {
		return NewInput(e, NewKeymap(), evCh).Loop(ctx, cancel)
	})
	return g.Wait()
}

// loadConfig layers the configuration: defaults, then the resource
// file if there is one, then the command line.
func (d *Dmenu) loadConfig(opts CLIOptions) (*config.Config, error) {
	cfg := config.New()

	if d.locateResources != nil {
		file, err := d.locateResources()
		switch {
		case err == nil:
			r, err := config.ReadResources(file)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to read resources from %s", file)
			}
			cfg.ApplyResources(r)
		case !errors.Is(err, config.ErrResourcesNotFound):
			return nil, errors.Wrap(err, "failed to locate resources")
		}
	}

	opts.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func (d *Dmenu) tty(v any) bool {
	if d.isTty == nil {
		return util.IsTty(v)
	}
	return d.isTty(v)
}

// readStdin loads the candidate stream. Password mode and dynamic
// mode never read it.
func (d *Dmenu) readStdin(e *Engine) error {
	cfg := e.Config()
	if cfg.Password || cfg.DynamicCommand != "" {
		return nil
	}
	if err := e.Store().Load(d.Stdin); err != nil {
		return errors.Wrap(err, "failed to read standard input")
	}
	e.ClampLines()
	return nil
}
