package main

import (
	"os"

	"github.com/roach88/timeset/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	cli.ReportError(os.Stderr, err)
	os.Exit(cli.GetExitCode(err))
}
