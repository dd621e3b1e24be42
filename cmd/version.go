package main

import (
	"os"

	"github.com/spvproof/spvproof"
	"github.com/urfave/cli/v2"
)

func versionCmd(*cli.Context) error {
	spvproof.PrintVersion(os.Stdout)
	return nil
}
