package ecies

import (
	"crypto/cipher"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	circl "github.com/cloudflare/circl/group"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/cmwaters/tbls/pkg/group"
)

var ErrDecryption = errors.New("failed to decrypt ciphertext")

const kdfInfoPrefix = "tbls-ecies-v1:"

// Encrypt encrypts msg to pk. The ciphertext layout is
//
//	len(R) (2 bytes, big endian) || R || AEAD(k, msg)
//
// where R = r·G is a fresh ephemeral element and k is derived from r·pk.
// Every encryption derives a fresh key, so the AEAD nonce is fixed.
func Encrypt[G group.Suite](rand io.Reader, pk *PublicKey[G], msg []byte) ([]byte, error) {
	var suite G
	g := suite.Group()
	r := g.RandomNonZeroScalar(rand)
	ephemeral := g.NewElement().MulGen(r)
	shared := g.NewElement().Mul(pk.element, r)

	ephemeralBytes, err := ephemeral.MarshalBinaryCompress()
	if err != nil {
		return nil, fmt.Errorf("failed to encode ephemeral key: %w", err)
	}
	aead, err := deriveAEAD(suite.Name(), shared, ephemeralBytes)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 2, 2+len(ephemeralBytes)+len(msg)+aead.Overhead())
	binary.BigEndian.PutUint16(out, uint16(len(ephemeralBytes)))
	out = append(out, ephemeralBytes...)
	nonce := make([]byte, aead.NonceSize())
	return aead.Seal(out, nonce, msg, nil), nil
}

// Decrypt reverses Encrypt.
func (sk *PrivateKey[G]) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < 2 {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryption)
	}
	n := int(binary.BigEndian.Uint16(ciphertext))
	if len(ciphertext) < 2+n {
		return nil, fmt.Errorf("%w: truncated ephemeral key", ErrDecryption)
	}
	ephemeralBytes, sealed := ciphertext[2:2+n], ciphertext[2+n:]

	var suite G
	g := suite.Group()
	ephemeral := g.NewElement()
	if err := ephemeral.UnmarshalBinary(ephemeralBytes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	if ephemeral.IsIdentity() {
		return nil, fmt.Errorf("%w: identity ephemeral key", ErrDecryption)
	}
	shared := g.NewElement().Mul(ephemeral, sk.scalar)
	aead, err := deriveAEAD(suite.Name(), shared, ephemeralBytes)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	msg, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	return msg, nil
}

// deriveAEAD binds the symmetric key to both the shared secret and the
// ephemeral element.
func deriveAEAD(suiteName string, shared circl.Element, ephemeral []byte) (cipher.AEAD, error) {
	secret, err := shared.MarshalBinaryCompress()
	if err != nil {
		return nil, fmt.Errorf("failed to encode shared secret: %w", err)
	}
	kdf := hkdf.New(sha256.New, secret, ephemeral, []byte(kdfInfoPrefix+suiteName))
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return chacha20poly1305.New(key)
}
