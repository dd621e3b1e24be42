package types

import (
	"github.com/spvproof/spvproof"
	"github.com/spvproof/spvproof/merkle"
)

// InclusionResult is the answer of spv_verifyInclusion
type InclusionResult struct {
	Height uint64      `json:"height"`
	TxID   merkle.Hash `json:"txid"`
	// Root is the merkle root read from the block header
	Root  merkle.Hash `json:"root"`
	Index uint64      `json:"index"`
	// Merkle holds the proof siblings as returned by the block data source
	Merkle   []string      `json:"merkle"`
	Included bool          `json:"included"`
	Trace    []merkle.Hash `json:"trace,omitempty"`
}

// Status is the answer of spv_status
type Status struct {
	Version spvproof.FullVersion `json:"version"`
	// Source is the type of the block data source (electrum, esplora)
	Source string `json:"source"`
}
