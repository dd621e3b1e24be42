package rpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/0xPolygon/cdk-rpc/rpc"
	"github.com/spvproof/spvproof"
	"github.com/spvproof/spvproof/blocksource"
	"github.com/spvproof/spvproof/log"
	"github.com/spvproof/spvproof/rpc/types"
	"github.com/spvproof/spvproof/runner"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	// SPV is the namespace of the spv service
	SPV       = "spv"
	meterName = "github.com/spvproof/spvproof/rpc"

	invalidParamsErrorCode = -32602
)

// Checker verifies that a transaction is included in a block
type Checker interface {
	Check(ctx context.Context, height uint64, txid string, trace bool) runner.Result
}

// SPVEndpoints contains implementations for the "spv" RPC endpoints
type SPVEndpoints struct {
	logger      *log.Logger
	meter       metric.Meter
	readTimeout time.Duration
	checker     Checker
	source      string
}

// NewSPVEndpoints returns SPVEndpoints
func NewSPVEndpoints(
	logger *log.Logger,
	readTimeout time.Duration,
	checker Checker,
	source string,
) *SPVEndpoints {
	return &SPVEndpoints{
		logger:      logger,
		meter:       otel.Meter(meterName),
		readTimeout: readTimeout,
		checker:     checker,
		source:      source,
	}
}

// VerifyInclusion fetches the merkle root of the block at height and the
// merkle branch of txid, and checks the branch leads to the root.
// A proof that doesn't match is not an error: included is false.
// curl -X POST http://localhost:5576/ -H "Content-Type: application/json" \
// -d '{"method":"spv_verifyInclusion", "params":[100000, "e9a6...0c1d", true], "id":1}'
func (s *SPVEndpoints) VerifyInclusion(height uint64, txid string, trace *bool) (interface{}, rpc.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.readTimeout)
	defer cancel()

	c, merr := s.meter.Int64Counter("verify_inclusion")
	if merr != nil {
		s.logger.Warnf("failed to create verify_inclusion counter: %s", merr)
	}
	c.Add(ctx, 1)

	withTrace := trace != nil && *trace
	res := s.checker.Check(ctx, height, txid, withTrace)
	if res.Err != nil {
		switch {
		case errors.Is(res.Err, runner.ErrInvalidTxID):
			return nil, rpc.NewRPCError(invalidParamsErrorCode, res.Err.Error())
		case blocksource.IsNotFound(res.Err):
			return nil, rpc.NewRPCError(rpc.NotFoundErrorCode, res.Err.Error())
		default:
			return nil, rpc.NewRPCError(rpc.DefaultErrorCode, fmt.Sprintf(
				"failed to verify tx %s at height %d, error: %s", txid, height, res.Err),
			)
		}
	}

	result := &types.InclusionResult{
		Height:   height,
		TxID:     res.TxID,
		Root:     res.Root,
		Index:    res.Proof.Index,
		Merkle:   make([]string, 0, len(res.Proof.Siblings)),
		Included: res.Included,
	}
	for _, sibling := range res.Proof.Siblings {
		// siblings keep the byte order of the source
		result.Merkle = append(result.Merkle, sibling.Hex())
	}
	if withTrace {
		result.Trace = res.Trace
	}
	return result, nil
}

// Status returns the version of the service and the block data source in use
// curl -X POST http://localhost:5576/ -H "Content-Type: application/json" \
// -d '{"method":"spv_status", "params":[], "id":1}'
func (s *SPVEndpoints) Status() (interface{}, rpc.Error) {
	return &types.Status{
		Version: spvproof.GetVersion(),
		Source:  s.source,
	}, nil
}
