package blocksource

import (
	"errors"
	"fmt"

	"github.com/spvproof/spvproof/merkle"
)

var (
	// ErrNotFound is the sentinel wrapped by NotFoundError
	ErrNotFound = errors.New("not found")
	// ErrTransport is the sentinel matched by TransportError
	ErrTransport = errors.New("transport error")
	// ErrHeaderHashMismatch is returned when a header doesn't hash to the requested block hash
	ErrHeaderHashMismatch = errors.New("header hash mismatch")
	// ErrInvalidResponse is returned when the server answer can't be decoded
	ErrInvalidResponse = errors.New("invalid response")
)

// NotFoundError means the backing source doesn't know the requested block or
// doesn't record the transaction at that height
type NotFoundError struct {
	// What was being fetched: "block header" or "merkle proof"
	What   string
	Height uint64
	// TxID is zero when fetching a block header
	TxID merkle.Hash
	// Reason as reported by the server
	Reason string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s not found at height %d", e.What, e.Height)
	if !e.TxID.IsZero() {
		msg = fmt.Sprintf("%s for tx %s not found at height %d", e.What, e.TxID, e.Height)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Unwrap allows errors.Is(err, ErrNotFound)
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewBlockNotFoundError builds the error returned when a height is unknown
func NewBlockNotFoundError(height uint64, reason string) *NotFoundError {
	return &NotFoundError{What: "block header", Height: height, Reason: reason}
}

// NewProofNotFoundError builds the error returned when txid is not recorded at height
func NewProofNotFoundError(txid merkle.Hash, height uint64, reason string) *NotFoundError {
	return &NotFoundError{What: "merkle proof", Height: height, TxID: txid, Reason: reason}
}

// TransportError wraps connectivity failures: dial errors, timeouts, broken
// connections, unexpected status codes or undecodable answers
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTransport.Error(), e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is makes every TransportError match ErrTransport
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// NewTransportError wraps err as a TransportError unless it already is one
func NewTransportError(op string, err error) error {
	var te *TransportError
	if errors.As(err, &te) {
		return err
	}
	return &TransportError{Op: op, Err: err}
}

// IsNotFound reports whether err is, or wraps, a NotFoundError
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTransport reports whether err is, or wraps, a TransportError
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
