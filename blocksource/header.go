package blocksource

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spvproof/spvproof/merkle"
)

const (
	// HeaderSize is the size of a serialized block header
	HeaderSize = 80

	// version (4) | prev block (32) | merkle root (32) | time (4) | bits (4) | nonce (4)
	merkleRootOffset = 36
)

// ParseHeaderMerkleRoot returns the merkle root of a serialized block header,
// in internal byte order
func ParseHeaderMerkleRoot(raw []byte) (merkle.Hash, error) {
	if len(raw) != HeaderSize {
		return merkle.Hash{}, fmt.Errorf("%w: header size expected %d, actual %d",
			ErrInvalidResponse, HeaderSize, len(raw))
	}
	return merkle.HashFromBytes(raw[merkleRootOffset : merkleRootOffset+merkle.HashSize])
}

// HeaderHash returns the block hash of a serialized block header
func HeaderHash(raw []byte) merkle.Hash {
	return merkle.DoubleSHA256(raw)
}

// DecodeHeaderHex decodes a hex encoded serialized block header
func DecodeHeaderHex(s string) ([]byte, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: header is not hex: %s", ErrInvalidResponse, err.Error())
	}
	if len(raw) != HeaderSize {
		return nil, fmt.Errorf("%w: header size expected %d, actual %d", ErrInvalidResponse, HeaderSize, len(raw))
	}
	return raw, nil
}

// ProofFromDisplayHex builds a merkle.Proof from the hex siblings returned by
// Electrum and Esplora servers. The siblings keep their display byte order.
func ProofFromDisplayHex(pos uint64, siblings []string) (merkle.Proof, error) {
	proof := merkle.Proof{
		Index:    pos,
		Siblings: make([]merkle.Hash, 0, len(siblings)),
	}
	for i, s := range siblings {
		raw, err := hex.DecodeString(s)
		if err != nil {
			return merkle.Proof{}, fmt.Errorf("%w: sibling %d is not hex: %s", ErrInvalidResponse, i, err.Error())
		}
		h, err := merkle.HashFromBytes(raw)
		if err != nil {
			return merkle.Proof{}, fmt.Errorf("%w: sibling %d: %s", ErrInvalidResponse, i, err.Error())
		}
		proof.Siblings = append(proof.Siblings, h)
	}
	return proof, nil
}
