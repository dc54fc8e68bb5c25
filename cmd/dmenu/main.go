package main

import (
	"context"
	"os"

	"github.com/peco/dmenu"
	"github.com/peco/dmenu/internal/util"
)

func main() {
	cli := dmenu.New()
	err := cli.Run(context.Background())
	if err != nil && !util.IsExitStatusError(err) {
		cli.Logger.Error(err.Error())
	}

	st, _ := util.GetExitStatus(err)
	os.Exit(st)
}
