package esplora

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spvproof/spvproof/blocksource"
	"github.com/spvproof/spvproof/log"
	"github.com/spvproof/spvproof/merkle"
)

const maxBodySize = 1 << 20

var errNotFound = errors.New("resource not found")

// merkleProofResponse is the answer of GET /tx/:txid/merkle-proof
type merkleProofResponse struct {
	BlockHeight uint64   `json:"block_height"`
	Merkle      []string `json:"merkle"`
	Pos         uint64   `json:"pos"`
}

// Client is a BlockDataSource backed by an Esplora REST API
type Client struct {
	baseURL string
	http    *retryablehttp.Client
	logger  *log.Logger
}

// New returns a client for the Esplora API at cfg.URL (i.e. https://blockstream.info/api)
func New(cfg blocksource.Config, logger *log.Logger) (*Client, error) {
	if !strings.HasPrefix(cfg.URL, "http://") && !strings.HasPrefix(cfg.URL, "https://") {
		return nil, fmt.Errorf("esplora url must be http(s): %s", cfg.URL)
	}
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = cfg.MaxRetries
	httpClient.RetryWaitMin = cfg.GetRetryInterval()
	httpClient.RetryWaitMax = cfg.GetRetryInterval() * 8 //nolint:mnd
	httpClient.HTTPClient.Timeout = cfg.GetTimeout()
	httpClient.Logger = &leveledLogger{logger: logger}
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		http:    httpClient,
		logger:  logger,
	}, nil
}

// FetchBlockRoot resolves the block hash at height, downloads its header and
// returns its merkle root
func (c *Client) FetchBlockRoot(ctx context.Context, height uint64) (merkle.Hash, error) {
	body, err := c.get(ctx, fmt.Sprintf("/block-height/%d", height))
	if err != nil {
		if errors.Is(err, errNotFound) {
			return merkle.Hash{}, blocksource.NewBlockNotFoundError(height, err.Error())
		}
		return merkle.Hash{}, err
	}
	blockHash, err := merkle.ParseHash(strings.TrimSpace(string(body)))
	if err != nil {
		return merkle.Hash{}, blocksource.NewTransportError("block-height", err)
	}

	body, err = c.get(ctx, fmt.Sprintf("/block/%s/header", blockHash))
	if err != nil {
		if errors.Is(err, errNotFound) {
			return merkle.Hash{}, blocksource.NewBlockNotFoundError(height, err.Error())
		}
		return merkle.Hash{}, err
	}
	raw, err := blocksource.DecodeHeaderHex(string(body))
	if err != nil {
		return merkle.Hash{}, blocksource.NewTransportError("block header", err)
	}
	if headerHash := blocksource.HeaderHash(raw); headerHash != blockHash {
		return merkle.Hash{}, blocksource.NewTransportError("block header",
			fmt.Errorf("%w: requested %s, received %s", blocksource.ErrHeaderHashMismatch, blockHash, headerHash))
	}
	root, err := blocksource.ParseHeaderMerkleRoot(raw)
	if err != nil {
		return merkle.Hash{}, blocksource.NewTransportError("block header", err)
	}
	c.logger.Debugf("block %d: header %s, merkle root %s", height, blockHash, root)
	return root, nil
}

// FetchInclusionProof returns the merkle branch of txid, checking it was mined at height
func (c *Client) FetchInclusionProof(ctx context.Context, txid merkle.Hash, height uint64) (merkle.Proof, error) {
	body, err := c.get(ctx, fmt.Sprintf("/tx/%s/merkle-proof", txid))
	if err != nil {
		if errors.Is(err, errNotFound) {
			return merkle.Proof{}, blocksource.NewProofNotFoundError(txid, height, err.Error())
		}
		return merkle.Proof{}, err
	}
	var resp merkleProofResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return merkle.Proof{}, blocksource.NewTransportError("merkle-proof",
			fmt.Errorf("%w: %s", blocksource.ErrInvalidResponse, err.Error()))
	}
	if resp.BlockHeight != height {
		return merkle.Proof{}, blocksource.NewProofNotFoundError(txid, height,
			fmt.Sprintf("transaction mined at height %d", resp.BlockHeight))
	}
	proof, err := blocksource.ProofFromDisplayHex(resp.Pos, resp.Merkle)
	if err != nil {
		return merkle.Proof{}, blocksource.NewTransportError("merkle-proof", err)
	}
	return proof, nil
}

// Close releases idle connections
func (c *Client) Close() error {
	c.http.HTTPClient.CloseIdleConnections()
	return nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, blocksource.NewTransportError("GET "+path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, blocksource.NewTransportError("GET "+path, err)
	}
	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound,
		// esplora answers 400 for malformed or unconfirmed txids
		resp.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", errNotFound, strings.TrimSpace(string(body)))
	default:
		return nil, blocksource.NewTransportError("GET "+path,
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}
}

// leveledLogger adapts log.Logger to retryablehttp.LeveledLogger
type leveledLogger struct {
	logger *log.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, keysAndValues...)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Infow(msg, keysAndValues...)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warnw(msg, keysAndValues...)
}
