package group

import (
	"encoding/binary"
	"errors"
	"fmt"

	circl "github.com/cloudflare/circl/group"
)

// Suite is the capability a committee's key material is parameterized over. It
// exposes a prime order group (element and scalar arithmetic) together with a
// Fiat-Shamir challenge derivation bound to that group.
//
// Suites are zero-size types so that keys over different groups are distinct
// types, e.g. a PublicKey[P256] can never be placed into a committee of
// PublicKey[Ristretto255].
type Suite interface {
	// Name is the stable identifier of the suite used in configuration
	// and in domain separation tags.
	Name() string

	// Group returns the underlying prime order group.
	Group() circl.Group

	// Challenge deterministically derives a scalar from the ordered elements
	// using the domain separation tag dst.
	Challenge(dst []byte, elements ...circl.Element) (circl.Scalar, error)
}

var (
	_ Suite = Ristretto255{}
	_ Suite = P256{}
	_ Suite = P384{}
)

// ErrUnknownSuite is returned by ByName for names that don't match any suite.
var ErrUnknownSuite = errors.New("unknown group suite")

// Ristretto255 is the prime order group built on Curve25519.
type Ristretto255 struct{}

func (Ristretto255) Name() string { return "ristretto255" }

func (Ristretto255) Group() circl.Group { return circl.Ristretto255 }

func (s Ristretto255) Challenge(dst []byte, elements ...circl.Element) (circl.Scalar, error) {
	return challenge(s.Group(), dst, elements)
}

// P256 is the NIST P-256 curve group.
type P256 struct{}

func (P256) Name() string { return "p256" }

func (P256) Group() circl.Group { return circl.P256 }

func (s P256) Challenge(dst []byte, elements ...circl.Element) (circl.Scalar, error) {
	return challenge(s.Group(), dst, elements)
}

// P384 is the NIST P-384 curve group.
type P384 struct{}

func (P384) Name() string { return "p384" }

func (P384) Group() circl.Group { return circl.P384 }

func (s P384) Challenge(dst []byte, elements ...circl.Element) (circl.Scalar, error) {
	return challenge(s.Group(), dst, elements)
}

// Names lists the identifiers of every supported suite.
func Names() []string {
	return []string{Ristretto255{}.Name(), P256{}.Name(), P384{}.Name()}
}

// ByName returns the suite with the given name.
func ByName(name string) (Suite, error) {
	switch name {
	case Ristretto255{}.Name():
		return Ristretto255{}, nil
	case P256{}.Name():
		return P256{}, nil
	case P384{}.Name():
		return P384{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %v)", ErrUnknownSuite, name, Names())
	}
}

// ------------------ PRIVATE FUNCTIONS ---------------------

// challenge hashes the length prefixed compressed encodings of the elements
// to a scalar. Length prefixes keep the transcript unambiguous across groups
// with different encoding sizes.
func challenge(g circl.Group, dst []byte, elements []circl.Element) (circl.Scalar, error) {
	transcript := make([]byte, 0, 64*len(elements))
	var prefix [2]byte
	for i, e := range elements {
		if e == nil {
			return nil, fmt.Errorf("challenge element %d is nil", i)
		}
		b, err := e.MarshalBinaryCompress()
		if err != nil {
			return nil, fmt.Errorf("failed to encode challenge element %d: %w", i, err)
		}
		binary.BigEndian.PutUint16(prefix[:], uint16(len(b)))
		transcript = append(transcript, prefix[:]...)
		transcript = append(transcript, b...)
	}
	return g.HashToScalar(transcript, dst), nil
}
