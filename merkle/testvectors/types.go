package testvectors

// InclusionVectorRaw represents a merkle inclusion proof as served by an
// Electrum server: every hash is hex encoded in display (reversed) order.
type InclusionVectorRaw struct {
	Description string   `json:"description"`
	Height      uint64   `json:"height"`
	TxID        string   `json:"txid"`
	Pos         uint64   `json:"pos"`
	LeafCount   uint64   `json:"leafCount"`
	Merkle      []string `json:"merkle"`
	MerkleRoot  string   `json:"merkleRoot"`
}
