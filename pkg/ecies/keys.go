package ecies

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	circl "github.com/cloudflare/circl/group"

	"github.com/cmwaters/tbls/pkg/group"
)

var (
	ErrInvalidPublicKey  = errors.New("invalid public key")
	ErrInvalidPrivateKey = errors.New("invalid private key")
)

// PrivateKey is a secret scalar of the suite's group. Committee members use it
// to decrypt the shares dealt to them.
type PrivateKey[G group.Suite] struct {
	scalar circl.Scalar
	public *PublicKey[G]
}

// PublicKey is the group element sk·G. It is immutable: the compressed
// encoding is computed once and used for equality, hashing and serialization.
type PublicKey[G group.Suite] struct {
	element circl.Element
	bytes   []byte
}

// GeneratePrivateKey samples a fresh non-zero private key from rand.
func GeneratePrivateKey[G group.Suite](rand io.Reader) (*PrivateKey[G], error) {
	var suite G
	s := suite.Group().RandomNonZeroScalar(rand)
	return newPrivateKey[G](s)
}

// PrivateKeyFromBytes decodes a private key and derives its public key.
func PrivateKeyFromBytes[G group.Suite](b []byte) (*PrivateKey[G], error) {
	var suite G
	s := suite.Group().NewScalar()
	if err := s.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	if s.IsZero() {
		return nil, fmt.Errorf("%w: zero scalar", ErrInvalidPrivateKey)
	}
	return newPrivateKey[G](s)
}

// PublicKeyFromPrivateKey derives the public key of sk.
func PublicKeyFromPrivateKey[G group.Suite](sk *PrivateKey[G]) *PublicKey[G] {
	return sk.public
}

// PublicKey returns the public key matching the private key.
func (sk *PrivateKey[G]) PublicKey() *PublicKey[G] {
	return sk.public
}

// MarshalBinary encodes the private scalar. Handle the output with care.
func (sk *PrivateKey[G]) MarshalBinary() ([]byte, error) {
	return sk.scalar.MarshalBinary()
}

// PublicKeyFromBytes decodes a public key. The identity element is rejected.
func PublicKeyFromBytes[G group.Suite](b []byte) (*PublicKey[G], error) {
	var suite G
	e := suite.Group().NewElement()
	if err := e.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return newPublicKey[G](e)
}

// PublicKeyFromHex decodes a hex encoded public key.
func PublicKeyFromHex[G group.Suite](s string) (*PublicKey[G], error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return PublicKeyFromBytes[G](b)
}

// Bytes returns the compressed encoding of the key. The returned slice must
// not be modified.
func (pk *PublicKey[G]) Bytes() []byte {
	return pk.bytes
}

func (pk *PublicKey[G]) MarshalBinary() ([]byte, error) {
	out := make([]byte, len(pk.bytes))
	copy(out, pk.bytes)
	return out, nil
}

// Equal reports whether both keys encode the same group element.
func (pk *PublicKey[G]) Equal(other *PublicKey[G]) bool {
	if pk == nil || other == nil {
		return pk == other
	}
	return pk.element.IsEqual(other.element)
}

func (pk *PublicKey[G]) String() string {
	return hex.EncodeToString(pk.bytes)
}

// ------------------ PRIVATE FUNCTIONS ---------------------

func newPrivateKey[G group.Suite](s circl.Scalar) (*PrivateKey[G], error) {
	var suite G
	pk, err := newPublicKey[G](suite.Group().NewElement().MulGen(s))
	if err != nil {
		return nil, err
	}
	return &PrivateKey[G]{scalar: s, public: pk}, nil
}

func newPublicKey[G group.Suite](e circl.Element) (*PublicKey[G], error) {
	if e.IsIdentity() {
		return nil, fmt.Errorf("%w: identity element", ErrInvalidPublicKey)
	}
	b, err := e.MarshalBinaryCompress()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return &PublicKey[G]{element: e, bytes: b}, nil
}
