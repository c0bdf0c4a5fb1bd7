// Command irattrs inspects and exports the IR attribute catalog.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/irattrs/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		var exitErr *cli.ExitError
		// Commands have already reported ExitErrors through their formatter.
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
