package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	jRPC "github.com/0xPolygon/cdk-rpc/rpc"
	"github.com/spvproof/spvproof"
	"github.com/spvproof/spvproof/blocksource"
	"github.com/spvproof/spvproof/common"
	"github.com/spvproof/spvproof/config"
	"github.com/spvproof/spvproof/electrum"
	"github.com/spvproof/spvproof/esplora"
	"github.com/spvproof/spvproof/log"
	"github.com/spvproof/spvproof/rpc"
	"github.com/spvproof/spvproof/runner"
	"github.com/urfave/cli/v2"
)

var errUncheckedTargets = errors.New("merkle paths could not be checked")

func start(cliCtx *cli.Context) error {
	c, err := config.Load(cliCtx)
	if err != nil {
		return err
	}

	log.Init(c.Log)

	if c.Log.Environment == log.EnvironmentDevelopment {
		spvproof.PrintVersion(os.Stdout)
		log.Info("Starting application")
	} else if c.Log.Environment == log.EnvironmentProduction {
		logVersion()
	}
	if dump, err := config.Dump(*c); err == nil {
		log.Debugf("configuration:\n%s", dump)
	}

	components := cliCtx.StringSlice(config.FlagComponents)
	for _, component := range components {
		if component != common.VERIFIER && component != common.RPC {
			return fmt.Errorf("unknown component %s", component)
		}
	}

	src, err := createBlockDataSource(c.Source)
	if err != nil {
		return err
	}
	defer src.Close()
	verifier := runner.New(c.Runner, src, log.WithFields("module", common.VERIFIER))

	ctx, cancel := context.WithCancel(cliCtx.Context)
	defer cancel()

	serving := false
	for _, component := range components {
		if component == common.RPC {
			server := createRPC(c.RPC, verifier, c.Source.Type)
			go func() {
				if err := server.Start(); err != nil {
					log.Fatal(err)
				}
			}()
			serving = true
		}
	}
	for _, component := range components {
		if component == common.VERIFIER {
			if err := runVerifier(ctx, verifier, os.Stdout); err != nil {
				return err
			}
		}
	}

	if serving {
		waitSignal([]context.CancelFunc{cancel})
	}
	return nil
}

// runVerifier checks every target and writes the report to w. It fails when
// any target could not be checked, so the process exits non-zero.
func runVerifier(ctx context.Context, verifier *runner.Runner, w io.Writer) error {
	results, err := verifier.Run(ctx)
	if reportErr := runner.Report(w, results); reportErr != nil {
		return reportErr
	}
	if err != nil {
		return err
	}
	failed := 0
	var firstErr error
	for _, res := range results {
		if res.Err != nil {
			if firstErr == nil {
				firstErr = res.Err
			}
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d targets, first error: %w", errUncheckedTargets, failed, len(results), firstErr)
	}
	return nil
}

func createBlockDataSource(cfg blocksource.Config) (blocksource.BlockDataSource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := log.WithFields("module", common.SOURCE, "type", cfg.Type)

	var (
		src blocksource.BlockDataSource
		err error
	)
	switch cfg.Type {
	case blocksource.TypeElectrum:
		src, err = electrum.New(cfg, logger)
	case blocksource.TypeEsplora:
		src, err = esplora.New(cfg, logger)
	}
	if err != nil {
		return nil, fmt.Errorf("error creating %s block data source: %w", cfg.Type, err)
	}
	if cfg.CacheSize <= 0 {
		return src, nil
	}
	cached, err := blocksource.NewCachedSource(src, cfg.CacheSize, logger)
	if err != nil {
		return nil, err
	}
	return cached, nil
}

func createRPC(cfg jRPC.Config, checker rpc.Checker, source string) *jRPC.Server {
	logger := log.WithFields("module", common.RPC)
	services := []jRPC.Service{
		{
			Name: rpc.SPV,
			Service: rpc.NewSPVEndpoints(
				logger,
				cfg.ReadTimeout.Duration,
				checker,
				source,
			),
		},
	}

	return jRPC.NewServer(cfg, services, jRPC.WithLogger(logger.GetSugaredLogger()))
}

func logVersion() {
	log.Infow("Starting application",
		// version is already logged by default
		"gitRevision", spvproof.GitRev,
		"gitBranch", spvproof.GitBranch,
		"goVersion", runtime.Version(),
		"built", spvproof.BuildDate,
		"os/arch", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	)
}

func waitSignal(cancelFuncs []context.CancelFunc) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	for sig := range signals {
		switch sig {
		case os.Interrupt, syscall.SIGTERM:
			log.Info("terminating application gracefully...")

			exitStatus := 0
			for _, cancel := range cancelFuncs {
				cancel()
			}
			os.Exit(exitStatus)
		}
	}
}
