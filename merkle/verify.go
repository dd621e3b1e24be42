package merkle

import (
	"errors"
	"fmt"
	"math/bits"
)

var (
	// ErrProofLength is returned in strict mode when the number of siblings
	// doesn't match the height of the tree
	ErrProofLength = errors.New("proof length doesn't match tree height")
	// ErrIndexOutOfRange is returned in strict mode when the leaf index is not
	// lower than the number of leaves
	ErrIndexOutOfRange = errors.New("leaf index out of range")
)

// hashNode returns the parent of left and right, both in internal order
func hashNode(left, right *Hash) Hash {
	var buf [2 * HashSize]byte
	copy(buf[:HashSize], left[:])
	copy(buf[HashSize:], right[:])
	return DoubleSHA256(buf[:])
}

// nextLevel climbs one level of the tree. sibling is in display order.
func nextLevel(current Hash, index uint64, sibling Hash) Hash {
	s := sibling.Reverse()
	/*
	*        Root                (level 2)
	*      /     \
	*    N0       N1             (level 1)
	*   /  \     /  \
	*  L0  L1   L2  L3  Leafs    (level 0)
	* Choose index = 2 => 10 binary
	* level 0: index 2 is even, L2 is a left child => N1 = H(L2 || L3)
	* level 1: index 1 is odd, N1 is a right child => Root = H(N0 || N1)
	 */
	if index%2 == 0 {
		return hashNode(&current, &s)
	}
	return hashNode(&s, &current)
}

// ComputeRoot recomputes the merkle root reached from leaf (internal order)
// at position index, hashing it with every sibling (display order) level by level
func ComputeRoot(leaf Hash, index uint64, siblings []Hash) Hash {
	current := leaf
	for _, sibling := range siblings {
		current = nextLevel(current, index, sibling)
		index /= 2
	}
	return current
}

// Verify returns true if the root recomputed from leaf, index and siblings
// is equal to root. leaf and root are in internal order, siblings in display
// order. A malformed proof is not reported, it just doesn't match.
func Verify(leaf Hash, index uint64, siblings []Hash, root Hash) bool {
	return ComputeRoot(leaf, index, siblings) == root
}

// VerifyWithTrace works as Verify but also returns the hash computed at
// each level, in internal order. trace[len(trace)-1] is the recomputed root.
func VerifyWithTrace(leaf Hash, index uint64, siblings []Hash, root Hash) (bool, []Hash) {
	trace := make([]Hash, 0, len(siblings))
	current := leaf
	for _, sibling := range siblings {
		current = nextLevel(current, index, sibling)
		trace = append(trace, current)
		index /= 2
	}
	return current == root, trace
}

// TreeHeight returns the number of levels between the leaves and the root of
// a tree with leafCount leaves. Odd levels are completed duplicating the last
// node, so the height is ceil(log2(leafCount)).
func TreeHeight(leafCount uint64) int {
	if leafCount <= 1 {
		return 0
	}
	return bits.Len64(leafCount - 1)
}

// VerifyStrict works as Verify but, knowing the number of transactions of the
// block, rejects proofs whose shape can't belong to that tree
func VerifyStrict(leaf Hash, index uint64, siblings []Hash, root Hash, leafCount uint64) (bool, error) {
	if index >= leafCount {
		return false, fmt.Errorf("%w: index %d, leaf count %d", ErrIndexOutOfRange, index, leafCount)
	}
	if expected := TreeHeight(leafCount); len(siblings) != expected {
		return false, fmt.Errorf("%w: expected %d siblings, got %d", ErrProofLength, expected, len(siblings))
	}
	return Verify(leaf, index, siblings, root), nil
}
