package util

import (
	"context"
	"os/exec"
)

const shellpath = `/bin/sh`

// Shell prepares `sh -c cmdline`. The caller owns starting and
// waiting on the returned command.
func Shell(ctx context.Context, cmdline string) *exec.Cmd {
	return exec.CommandContext(ctx, shellpath, "-c", cmdline)
}
