package main

import (
	"os"

	"github.com/blade-tech/schemalint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
