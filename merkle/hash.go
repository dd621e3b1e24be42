package merkle

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	sha256 "github.com/minio/sha256-simd"
)

// HashSize is the size in bytes of a double SHA-256 digest
const HashSize = 32

var (
	// ErrInvalidHash is returned when a hex string can't be decoded into a Hash
	ErrInvalidHash = errors.New("invalid hash")
	// ErrInvalidHashLength is returned when a byte slice is not exactly HashSize long
	ErrInvalidHashLength = errors.New("invalid hash length")
)

// Hash is a double SHA-256 digest kept in internal byte order, the order
// produced by the hash function. Block explorers, Electrum servers and RPC
// nodes print hashes in display order, which is the same bytes reversed.
type Hash [HashSize]byte

// Reverse swaps between internal and display byte order
func (h Hash) Reverse() Hash {
	var r Hash
	for i := 0; i < HashSize; i++ {
		r[i] = h[HashSize-1-i]
	}
	return r
}

// Bytes returns the hash in internal byte order
func (h Hash) Bytes() []byte {
	return h[:]
}

// Hex returns the internal byte order encoded as hex
func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

// String returns the hash in display byte order encoded as hex
func (h Hash) String() string {
	r := h.Reverse()
	return hex.EncodeToString(r[:])
}

// IsZero reports whether all bytes are zero
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// MarshalText encodes the hash in display order
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText decodes a display order hex hash
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseHash decodes a display order hex string (txid, block hash, merkle
// sibling) into a Hash in internal order. The 0x prefix is optional.
func ParseHash(s string) (Hash, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 2*HashSize {
		return Hash{}, fmt.Errorf("%w: expected %d hex chars, got %d", ErrInvalidHash, 2*HashSize, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("%w: %s", ErrInvalidHash, err.Error())
	}
	h, err := HashFromBytes(b)
	if err != nil {
		return Hash{}, err
	}
	return h.Reverse(), nil
}

// MustParseHash is like ParseHash but panics on error. Meant for constants and tests.
func MustParseHash(s string) Hash {
	h, err := ParseHash(s)
	if err != nil {
		panic(err)
	}
	return h
}

// HashFromBytes copies a slice that is already in internal order
func HashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashSize {
		return h, fmt.Errorf("%w: expected %d, actual %d", ErrInvalidHashLength, HashSize, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// HashFromDisplayBytes copies a slice that is in display order, reversing it
func HashFromDisplayBytes(b []byte) (Hash, error) {
	h, err := HashFromBytes(b)
	if err != nil {
		return h, err
	}
	return h.Reverse(), nil
}

// DoubleSHA256 returns sha256(sha256(data)) over the concatenation of data
func DoubleSHA256(data ...[]byte) Hash {
	hasher := sha256.New()
	for _, d := range data {
		hasher.Write(d)
	}
	first := hasher.Sum(nil)
	return Hash(sha256.Sum256(first))
}
