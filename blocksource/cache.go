package blocksource

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spvproof/spvproof/log"
	"github.com/spvproof/spvproof/merkle"
)

// CachedSource keeps the merkle roots already fetched, so checking several
// transactions of the same block fetches its header once. Proofs are
// always requested to the underlying source.
type CachedSource struct {
	BlockDataSource
	roots  *lru.Cache[uint64, merkle.Hash]
	logger *log.Logger
}

// NewCachedSource wraps source with a cache of size block roots
func NewCachedSource(source BlockDataSource, size int, logger *log.Logger) (*CachedSource, error) {
	roots, err := lru.New[uint64, merkle.Hash](size)
	if err != nil {
		return nil, err
	}
	return &CachedSource{
		BlockDataSource: source,
		roots:           roots,
		logger:          logger,
	}, nil
}

// FetchBlockRoot returns the cached root of height, fetching it on a miss
func (c *CachedSource) FetchBlockRoot(ctx context.Context, height uint64) (merkle.Hash, error) {
	if root, ok := c.roots.Get(height); ok {
		c.logger.Debugf("block root of height %d found in cache", height)
		return root, nil
	}
	root, err := c.BlockDataSource.FetchBlockRoot(ctx, height)
	if err != nil {
		return merkle.Hash{}, err
	}
	c.roots.Add(height, root)
	return root, nil
}

// Len returns the number of cached roots
func (c *CachedSource) Len() int {
	return c.roots.Len()
}
