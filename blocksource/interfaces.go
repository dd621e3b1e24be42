package blocksource

import (
	"context"

	"github.com/spvproof/spvproof/merkle"
)

// BlockDataSource supplies the data needed to check the inclusion of a
// transaction in a block: the merkle root of the block header and the merkle
// proof of the transaction. Implementations talk to remote servers, so any
// call may be slow or fail.
type BlockDataSource interface {
	// FetchBlockRoot returns the merkle root, in internal byte order, of the
	// block at the given height
	FetchBlockRoot(ctx context.Context, height uint64) (merkle.Hash, error)
	// FetchInclusionProof returns the position of txid in the block at height
	// and its merkle branch, siblings in display byte order
	FetchInclusionProof(ctx context.Context, txid merkle.Hash, height uint64) (merkle.Proof, error)
	// Close releases the connections held by the source
	Close() error
}
