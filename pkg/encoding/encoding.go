// Package encoding is the deterministic byte encoding used to persist and
// commit to committee descriptions. Values are encoded with RLP, which has a
// single canonical encoding per value, and digests are BLAKE2b-256 over that
// encoding.
package encoding

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"golang.org/x/crypto/blake2b"
)

// DigestLen is the length in bytes of a Digest.
const DigestLen = blake2b.Size256

// Digest is a content hash over a canonical encoding.
type Digest [DigestLen]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Marshal returns the canonical encoding of v.
func Marshal(v any) ([]byte, error) {
	b, err := rlp.EncodeToBytes(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", v, err)
	}
	return b, nil
}

// Unmarshal decodes b into v, which must be a pointer. Trailing bytes are
// rejected.
func Unmarshal(b []byte, v any) error {
	if err := rlp.DecodeBytes(b, v); err != nil {
		return fmt.Errorf("failed to decode %T: %w", v, err)
	}
	return nil
}

// Sum returns the digest of b.
func Sum(b []byte) Digest {
	return blake2b.Sum256(b)
}

// Hash returns the digest of the canonical encoding of v.
func Hash(v any) (Digest, error) {
	b, err := Marshal(v)
	if err != nil {
		return Digest{}, err
	}
	return Sum(b), nil
}
