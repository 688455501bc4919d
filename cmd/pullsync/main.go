package main

import (
	"os"

	"github.com/randalmurphal/pullsync/cmd/pullsync/cmd"
	clierrors "github.com/randalmurphal/pullsync/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(clierrors.ExitCode(err))
	}
}
