package main

import (
	"os"

	"github.com/spvproof/spvproof"
	"github.com/spvproof/spvproof/common"
	"github.com/spvproof/spvproof/config"
	"github.com/spvproof/spvproof/log"
	"github.com/urfave/cli/v2"
)

const appName = "spvproof"

var (
	configFileFlag = cli.StringSliceFlag{
		Name:     config.FlagCfg,
		Aliases:  []string{"c"},
		Usage:    "Configuration file(s), the defaults are used for missing fields",
		Required: false,
	}
	componentsFlag = cli.StringSliceFlag{
		Name:     config.FlagComponents,
		Aliases:  []string{"co"},
		Usage:    "List of components to run",
		Required: false,
		Value:    cli.NewStringSlice(common.VERIFIER),
	}
	saveConfigFlag = cli.StringFlag{
		Name:     config.FlagSaveConfigPath,
		Aliases:  []string{"s"},
		Usage:    "Save final configuration into to the indicated path (name: spvproof_config.toml)",
		Required: false,
	}
	heightFlag = cli.Uint64Flag{
		Name:     config.FlagHeight,
		Usage:    "Height of the block the transaction was mined in",
		Required: true,
	}
	txIDFlag = cli.StringFlag{
		Name:     config.FlagTxID,
		Usage:    "Transaction id, hex as shown by block explorers",
		Required: true,
	}
	rpcURLFlag = cli.StringFlag{
		Name:     config.FlagRPCURL,
		Usage:    "Verify through a remote spvproof node instead of the configured source",
		Required: false,
	}
	traceFlag = cli.BoolFlag{
		Name:     config.FlagTrace,
		Usage:    "Print the hash computed at every level of the tree",
		Required: false,
	}
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatal(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = appName
	app.Usage = "Verifies that transactions are included in Bitcoin blocks using merkle proofs"
	app.Version = spvproof.Version
	app.Commands = []*cli.Command{
		{
			Name:    "version",
			Aliases: []string{},
			Usage:   "Application version and build",
			Action:  versionCmd,
		},
		{
			Name:    "run",
			Aliases: []string{},
			Usage:   "Verify the configured transactions and/or serve the spv RPC",
			Action:  start,
			Flags:   []cli.Flag{&configFileFlag, &componentsFlag, &saveConfigFlag},
		},
		{
			Name:    "check",
			Aliases: []string{},
			Usage:   "Verify a single transaction",
			Action:  check,
			Flags:   []cli.Flag{&configFileFlag, &heightFlag, &txIDFlag, &rpcURLFlag, &traceFlag},
		},
		{
			Name:    "config",
			Aliases: []string{},
			Usage:   "Print the default configuration",
			Action:  configCmd,
		},
		{
			Name:    "config-schema",
			Aliases: []string{},
			Usage:   "Print the JSON schema of the configuration",
			Action:  configSchemaCmd,
		},
	}
	return app
}
