package electrum

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/spvproof/spvproof/blocksource"
	"github.com/spvproof/spvproof/log"
	"github.com/spvproof/spvproof/merkle"
)

const (
	methodServerVersion = "server.version"
	methodBlockHeader   = "blockchain.block.header"
	methodGetMerkle     = "blockchain.transaction.get_merkle"

	clientName      = "spvproof"
	protocolVersion = "1.4"
)

var (
	ErrUnsupportedScheme = errors.New("unsupported electrum url scheme")
)

// Protocol level errors. Anything else answered by the server is checked
// against notFoundMessages.
var protocolErrorCodes = map[int]struct{}{
	-32700: {}, // parse error
	-32600: {}, // invalid request
	-32601: {}, // method not found
	-32602: {}, // invalid params
	-32603: {}, // internal error
}

// Messages ElectrumX, Fulcrum and electrs answer with when a block or a
// transaction is unknown. Daemon errors relay bitcoind's own wording.
var notFoundMessages = []string{
	"out of range",
	"not in block",
	"not found",
	"no such mempool or blockchain transaction",
	"unknown block",
}

// isNotFound tells whether an error answered by the server means the block or
// transaction does not exist, as opposed to a failure of the server itself
func isNotFound(rpcErr rpc.Error) bool {
	if _, ok := protocolErrorCodes[rpcErr.ErrorCode()]; ok {
		return false
	}
	msg := strings.ToLower(rpcErr.Error())
	for _, m := range notFoundMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// merkleResponse is the answer of blockchain.transaction.get_merkle
type merkleResponse struct {
	BlockHeight uint64   `json:"block_height"`
	Merkle      []string `json:"merkle"`
	Pos         uint64   `json:"pos"`
}

// Client is a BlockDataSource backed by an Electrum server. It keeps a single
// connection open, dialing it lazily and again after a transport error.
type Client struct {
	cfg     blocksource.Config
	address string
	host    string
	useTLS  bool
	logger  *log.Logger

	mu     sync.Mutex
	conn   net.Conn
	client *rpc.Client
}

// New returns a client for the server at cfg.URL (tcp://host:port or ssl://host:port)
func New(cfg blocksource.Config, logger *log.Logger) (*Client, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid electrum url %s: %w", cfg.URL, err)
	}
	c := &Client{
		cfg:     cfg,
		address: u.Host,
		host:    u.Hostname(),
		logger:  logger,
	}
	switch u.Scheme {
	case "tcp":
	case "ssl", "tls":
		c.useTLS = true
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
	if u.Port() == "" {
		return nil, fmt.Errorf("electrum url %s has no port", cfg.URL)
	}
	return c, nil
}

// FetchBlockRoot returns the merkle root of the header at height
func (c *Client) FetchBlockRoot(ctx context.Context, height uint64) (merkle.Hash, error) {
	var headerHex string
	if err := c.call(ctx, &headerHex, methodBlockHeader, height); err != nil {
		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) {
			if isNotFound(rpcErr) {
				return merkle.Hash{}, blocksource.NewBlockNotFoundError(height, rpcErr.Error())
			}
			return merkle.Hash{}, blocksource.NewTransportError(methodBlockHeader, err)
		}
		return merkle.Hash{}, err
	}
	raw, err := blocksource.DecodeHeaderHex(headerHex)
	if err != nil {
		return merkle.Hash{}, blocksource.NewTransportError(methodBlockHeader, err)
	}
	root, err := blocksource.ParseHeaderMerkleRoot(raw)
	if err != nil {
		return merkle.Hash{}, blocksource.NewTransportError(methodBlockHeader, err)
	}
	c.logger.Debugf("block %d: header %s, merkle root %s", height, blocksource.HeaderHash(raw), root)
	return root, nil
}

// FetchInclusionProof returns the merkle branch of txid in the block at height
func (c *Client) FetchInclusionProof(ctx context.Context, txid merkle.Hash, height uint64) (merkle.Proof, error) {
	var resp merkleResponse
	if err := c.call(ctx, &resp, methodGetMerkle, txid.String(), height); err != nil {
		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) {
			if isNotFound(rpcErr) {
				return merkle.Proof{}, blocksource.NewProofNotFoundError(txid, height, rpcErr.Error())
			}
			return merkle.Proof{}, blocksource.NewTransportError(methodGetMerkle, err)
		}
		return merkle.Proof{}, err
	}
	if resp.BlockHeight != height {
		return merkle.Proof{}, blocksource.NewProofNotFoundError(txid, height,
			fmt.Sprintf("server returned a proof for height %d", resp.BlockHeight))
	}
	proof, err := blocksource.ProofFromDisplayHex(resp.Pos, resp.Merkle)
	if err != nil {
		return merkle.Proof{}, blocksource.NewTransportError(methodGetMerkle, err)
	}
	c.logger.Debugf("tx %s at height %d: pos %d, %d siblings", txid, height, proof.Index, proof.Levels())
	return proof, nil
}

// Close closes the connection to the server, if any
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resetLocked()
}

// call sends a request retrying on transport errors. Errors answered by the
// server are returned as rpc.Error without retrying.
func (c *Client) call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	attempts := 0
	operation := func() error {
		attempts++
		client, err := c.getClient(ctx)
		if err != nil {
			return blocksource.NewTransportError("dial "+c.address, err)
		}
		callCtx, cancel := context.WithTimeout(ctx, c.cfg.GetTimeout())
		defer cancel()
		err = client.CallContext(callCtx, result, method, args...)
		if err == nil {
			return nil
		}
		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) {
			return backoff.Permanent(err)
		}
		c.dropClient(client)
		return blocksource.NewTransportError(method, err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.GetRetryInterval()
	b.MaxElapsedTime = 0
	err := backoff.RetryNotify(operation,
		backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.cfg.MaxRetries)), ctx),
		func(err error, wait time.Duration) {
			c.logger.Warnf("%s failed (attempt %d), retrying in %s: %v", method, attempts, wait, err)
		},
	)
	if err == nil {
		return nil
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return err
	}
	return blocksource.NewTransportError(method, err)
}

func (c *Client) getClient(ctx context.Context) (*rpc.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return c.client, nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, c.cfg.GetTimeout())
	defer cancel()
	conn, err := c.dial(dialCtx)
	if err != nil {
		return nil, err
	}
	client, err := rpc.DialIO(dialCtx, conn, conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	var version []string
	if err := client.CallContext(dialCtx, &version, methodServerVersion, clientName, protocolVersion); err != nil {
		conn.Close()
		client.Close()
		return nil, fmt.Errorf("electrum handshake: %w", err)
	}
	c.logger.Infof("connected to electrum server %s (%v)", c.address, version)

	c.conn = conn
	c.client = client
	return client, nil
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: c.cfg.GetTimeout()}
	if !c.useTLS {
		return dialer.DialContext(ctx, "tcp", c.address)
	}
	tlsDialer := &tls.Dialer{
		NetDialer: dialer,
		Config: &tls.Config{
			ServerName:         c.host,
			InsecureSkipVerify: c.cfg.TLSSkipVerify, //nolint:gosec
			MinVersion:         tls.VersionTLS12,
		},
	}
	return tlsDialer.DialContext(ctx, "tcp", c.address)
}

// dropClient forgets client if it is still the current one, so the next call dials again
func (c *Client) dropClient(client *rpc.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != client {
		return
	}
	if err := c.resetLocked(); err != nil {
		c.logger.Debugf("error closing connection to %s: %v", c.address, err)
	}
}

// resetLocked closes the connection before the rpc client: closing a client
// built with DialIO does not close the conn, and Close waits for the reader
func (c *Client) resetLocked() error {
	if c.client == nil {
		return nil
	}
	err := c.conn.Close()
	c.client.Close()
	c.client = nil
	c.conn = nil
	return err
}
