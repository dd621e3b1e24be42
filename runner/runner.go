package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/spvproof/spvproof/blocksource"
	"github.com/spvproof/spvproof/log"
	"github.com/spvproof/spvproof/merkle"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

const (
	meterName = "github.com/spvproof/spvproof/runner"

	resultIncluded = "included"
	resultRejected = "rejected"
	resultError    = "error"
)

var ErrInvalidTxID = errors.New("invalid txid")

// Result is the outcome of checking one target
type Result struct {
	Target Target
	TxID   merkle.Hash
	Root   merkle.Hash
	Proof  merkle.Proof
	// Included is only meaningful when Err is nil
	Included bool
	// Trace holds the hash computed at every level when tracing is enabled
	Trace []merkle.Hash
	Err   error
}

// Runner fetches block roots and inclusion proofs and verifies them
type Runner struct {
	cfg     Config
	src     blocksource.BlockDataSource
	logger  *log.Logger
	counter metric.Int64Counter
}

// New returns a Runner reading from src
func New(cfg Config, src blocksource.BlockDataSource, logger *log.Logger) *Runner {
	c, err := otel.Meter(meterName).Int64Counter(
		"spvproof_verifications_total",
		metric.WithDescription("number of inclusion proofs checked, by result"),
	)
	if err != nil {
		logger.Warnf("failed to create spvproof_verifications_total counter: %s", err)
	}
	return &Runner{
		cfg:     cfg,
		src:     src,
		logger:  logger,
		counter: c,
	}
}

// Run checks every configured target. Results are returned in target order.
// Targets that can't be checked carry their error in Result.Err, unless
// FailFast is set, in which case the first error stops the run and is returned
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, len(r.cfg.Targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.GetConcurrency())
	for i, target := range r.cfg.Targets {
		i, target := i, target
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Target: target, Err: err}
				return nil
			}
			results[i] = r.check(gctx, target, r.cfg.Trace)
			if results[i].Err != nil && r.cfg.FailFast {
				return fmt.Errorf("height %d txid %s: %w", target.Height, target.TxID, results[i].Err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Check verifies a single transaction. The trace is recorded when trace is
// set or the runner is configured to trace every target
func (r *Runner) Check(ctx context.Context, height uint64, txid string, trace bool) Result {
	return r.check(ctx, Target{Height: height, TxID: txid}, trace || r.cfg.Trace)
}

func (r *Runner) check(ctx context.Context, target Target, trace bool) Result {
	res := r.verify(ctx, target, trace)
	switch {
	case res.Err != nil:
		r.logger.Warnf("failed to check tx %s at height %d: %s", target.TxID, target.Height, res.Err)
		r.count(ctx, resultError)
	case res.Included:
		r.logger.Infof("tx %s included in block %d, root %s", res.TxID, target.Height, res.Root)
		r.count(ctx, resultIncluded)
	default:
		r.logger.Warnf("tx %s NOT included in block %d, root %s", res.TxID, target.Height, res.Root)
		r.count(ctx, resultRejected)
	}
	return res
}

func (r *Runner) verify(ctx context.Context, target Target, trace bool) Result {
	res := Result{Target: target}
	txid, err := merkle.ParseHash(target.TxID)
	if err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrInvalidTxID, err)
		return res
	}
	res.TxID = txid

	res.Root, err = r.src.FetchBlockRoot(ctx, target.Height)
	if err != nil {
		res.Err = err
		return res
	}
	res.Proof, err = r.src.FetchInclusionProof(ctx, txid, target.Height)
	if err != nil {
		res.Err = err
		return res
	}

	if !trace {
		res.Included = res.Proof.Verify(txid, res.Root)
		return res
	}
	res.Included, res.Trace = merkle.VerifyWithTrace(txid, res.Proof.Index, res.Proof.Siblings, res.Root)
	for level, h := range res.Trace {
		r.logger.Debugf("tx %s level %d: %s", txid, level, h)
	}
	return res
}

func (r *Runner) count(ctx context.Context, result string) {
	if r.counter == nil {
		return
	}
	r.counter.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
