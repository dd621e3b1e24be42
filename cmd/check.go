package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spvproof/spvproof/common"
	"github.com/spvproof/spvproof/config"
	"github.com/spvproof/spvproof/log"
	"github.com/spvproof/spvproof/rpc/client"
	"github.com/spvproof/spvproof/rpc/types"
	"github.com/spvproof/spvproof/runner"
	"github.com/urfave/cli/v2"
)

var errNotIncluded = errors.New("merkle path is not correct")

// remoteNode is the part of the spv rpc client used by check
type remoteNode interface {
	Status() (*types.Status, error)
	VerifyInclusion(height uint64, txid string, trace bool) (*types.InclusionResult, error)
}

func check(cliCtx *cli.Context) error {
	height := cliCtx.Uint64(config.FlagHeight)
	txid := cliCtx.String(config.FlagTxID)
	trace := cliCtx.Bool(config.FlagTrace)

	var res runner.Result
	if url := cliCtx.String(config.FlagRPCURL); url != "" {
		var err error
		res, err = checkRemote(client.NewClient(url), os.Stdout, height, txid, trace)
		if err != nil {
			return err
		}
	} else {
		c, err := config.Load(cliCtx)
		if err != nil {
			return err
		}
		log.Init(c.Log)

		src, err := createBlockDataSource(c.Source)
		if err != nil {
			return err
		}
		defer src.Close()
		cfg := runner.Config{Trace: c.Runner.Trace}
		res = runner.New(cfg, src, log.WithFields("module", common.VERIFIER)).Check(cliCtx.Context, height, txid, trace)
	}

	if err := runner.Report(os.Stdout, []runner.Result{res}); err != nil {
		return err
	}
	if res.Err != nil {
		return res.Err
	}
	if !res.Included {
		return errNotIncluded
	}
	return nil
}

// checkRemote writes which node answers to w and asks it to verify txid
func checkRemote(node remoteNode, w io.Writer, height uint64, txid string, trace bool) (runner.Result, error) {
	status, err := node.Status()
	if err != nil {
		return runner.Result{}, err
	}
	if _, err := fmt.Fprintf(w, "Checked by spvproof %s (%s) reading from %s\n",
		status.Version.Version, status.Version.GitRev, status.Source); err != nil {
		return runner.Result{}, err
	}

	remote, err := node.VerifyInclusion(height, txid, trace)
	if err != nil {
		return runner.Result{}, err
	}
	return runner.Result{
		Target:   runner.Target{Height: height, TxID: txid},
		TxID:     remote.TxID,
		Root:     remote.Root,
		Included: remote.Included,
		Trace:    remote.Trace,
	}, nil
}
