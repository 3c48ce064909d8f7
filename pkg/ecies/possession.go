package ecies

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	circl "github.com/cloudflare/circl/group"
)

var ErrInvalidProof = errors.New("invalid proof of possession")

const possessionDST = "tbls-pop-v1:"

// PossessionProof is a Schnorr proof that the holder of a public key knows the
// matching private key. It is made non-interactive with the suite's
// Fiat-Shamir challenge and bound to a caller chosen context (for example a
// session or epoch identifier) so it cannot be replayed elsewhere.
type PossessionProof struct {
	commitment circl.Element
	response   circl.Scalar
}

// ProvePossession produces a proof of knowledge of sk bound to context.
func (sk *PrivateKey[G]) ProvePossession(rand io.Reader, context []byte) (*PossessionProof, error) {
	var suite G
	g := suite.Group()
	k := g.RandomNonZeroScalar(rand)
	a := g.NewElement().MulGen(k)

	c, err := suite.Challenge(possessionTag(suite.Name(), context), sk.public.element, a)
	if err != nil {
		return nil, err
	}
	z := g.NewScalar().Mul(c, sk.scalar)
	z.Add(z, k)
	return &PossessionProof{commitment: a, response: z}, nil
}

// VerifyPossession checks z·G == A + c·pk.
func (pk *PublicKey[G]) VerifyPossession(context []byte, proof *PossessionProof) error {
	if proof == nil || proof.commitment == nil || proof.response == nil {
		return fmt.Errorf("%w: empty proof", ErrInvalidProof)
	}
	var suite G
	g := suite.Group()
	c, err := suite.Challenge(possessionTag(suite.Name(), context), pk.element, proof.commitment)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProof, err)
	}
	lhs := g.NewElement().MulGen(proof.response)
	rhs := g.NewElement().Mul(pk.element, c)
	rhs.Add(rhs, proof.commitment)
	if !lhs.IsEqual(rhs) {
		return ErrInvalidProof
	}
	return nil
}

// possessionTag keeps the tag short regardless of the context length, as
// hash-to-field tags are limited to 255 bytes.
func possessionTag(suiteName string, context []byte) []byte {
	digest := sha256.Sum256(context)
	tag := make([]byte, 0, len(possessionDST)+len(suiteName)+1+len(digest))
	tag = append(tag, possessionDST...)
	tag = append(tag, suiteName...)
	tag = append(tag, ':')
	return append(tag, digest[:]...)
}
