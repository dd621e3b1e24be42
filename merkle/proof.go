package merkle

// Proof is the authentication path of a leaf as delivered by a block data
// source. Siblings are in display byte order, level 0 first and the
// root-adjacent one last.
type Proof struct {
	// Index is the position of the leaf among the transactions of the block
	Index uint64
	// Siblings one per tree level, in display byte order
	Siblings []Hash
}

// Levels returns the number of tree levels covered by the proof
func (p Proof) Levels() int {
	return len(p.Siblings)
}

// Verify checks that leaf is included under root following this proof
func (p Proof) Verify(leaf, root Hash) bool {
	return Verify(leaf, p.Index, p.Siblings, root)
}

// Root recomputes the root reached from leaf following this proof
func (p Proof) Root(leaf Hash) Hash {
	return ComputeRoot(leaf, p.Index, p.Siblings)
}
