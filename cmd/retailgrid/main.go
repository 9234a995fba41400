package main

import (
	"fmt"
	"os"

	"github.com/roach88/retailgrid/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	cmd, err := root.ExecuteC()
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Diagnostic(cmd.Name(), err))
		os.Exit(cli.GetExitCode(err))
	}
}
