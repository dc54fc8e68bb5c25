package filter

import (
	"context"
	"os/exec"
	"strings"

	"github.com/lestrrat-go/pdebug"
	"github.com/peco/dmenu/candidate"
	"github.com/peco/dmenu/internal/util"
	"github.com/pkg/errors"
)

// Dynamic runs an external command for every query and replaces the
// candidate store with its output. The command is the filter: after
// a refresh every candidate is shown.
type Dynamic struct {
	command string
	shell   func(context.Context, string) *exec.Cmd
}

// NewDynamic creates a source that runs command through the shell.
func NewDynamic(command string) *Dynamic {
	return &Dynamic{
		command: command,
		shell:   util.Shell,
	}
}

func (d *Dynamic) String() string {
	return d.command
}

// QuoteQuery wraps q in single quotes for the shell. Each single
// quote inside q becomes '\''.
func QuoteQuery(q string) string {
	return "'" + strings.ReplaceAll(q, "'", `'\''`) + "'"
}

// CommandLine returns the shell command line used for query.
func (d *Dynamic) CommandLine(query string) string {
	return d.command + " " + QuoteQuery(query)
}

// Refresh runs the command for query and reloads store from its
// standard output. Failing to start the command or to wait for it
// is an error; a command that exits non-zero is not, whatever it
// printed becomes the candidate set.
func (d *Dynamic) Refresh(ctx context.Context, store *candidate.Store, query string) (err error) {
	cmdline := d.CommandLine(query)
	if pdebug.Enabled {
		g := pdebug.Marker("Dynamic.Refresh %s", cmdline).BindError(&err)
		defer g.End()
	}

	cmd := d.shell(ctx, cmdline)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrapf(err, "could not popen dynamic command (%s)", cmdline)
	}

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "could not popen dynamic command (%s)", cmdline)
	}

	loadErr := store.Replace(stdout)

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return errors.Wrap(err, "could not pclose dynamic command")
		}
		if pdebug.Enabled {
			pdebug.Printf("dynamic command exited with status %d", exitErr.ExitCode())
		}
	}

	if loadErr != nil {
		return errors.Wrap(loadErr, "failed to read dynamic command output")
	}
	return nil
}
