// Package main is the entry point for the composer CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/studiokit/composer/internal/cmd"
	"github.com/studiokit/composer/internal/cmdutil"
	oerrors "github.com/studiokit/composer/internal/errors"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		var exitErr *oerrors.ExitError
		if errors.As(err, &exitErr) && exitErr.Printed {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cmdutil.ExitCode(err))
	}
}
