package ecies_test

import (
	"crypto/rand"
	"testing"

	"github.com/cmwaters/tbls/pkg/ecies"
	"github.com/cmwaters/tbls/pkg/group"
	"github.com/stretchr/testify/require"
)

func TestKeyDerivation(t *testing.T) {
	sk, err := ecies.GeneratePrivateKey[group.Ristretto255](rand.Reader)
	require.NoError(t, err)
	pk := ecies.PublicKeyFromPrivateKey(sk)
	require.True(t, pk.Equal(sk.PublicKey()))

	// round trip the private key and derive the same public key again
	b, err := sk.MarshalBinary()
	require.NoError(t, err)
	sk2, err := ecies.PrivateKeyFromBytes[group.Ristretto255](b)
	require.NoError(t, err)
	require.True(t, pk.Equal(sk2.PublicKey()))

	other := ecies.NewTestKey[group.Ristretto255]()
	require.False(t, pk.Equal(other.PublicKey()))
}

func TestPublicKeyEncoding(t *testing.T) {
	testPublicKeyEncoding[group.Ristretto255](t)
	testPublicKeyEncoding[group.P256](t)
	testPublicKeyEncoding[group.P384](t)
}

func testPublicKeyEncoding[G group.Suite](t *testing.T) {
	pk := ecies.NewTestKey[G]().PublicKey()

	decoded, err := ecies.PublicKeyFromBytes[G](pk.Bytes())
	require.NoError(t, err)
	require.True(t, pk.Equal(decoded))
	require.Equal(t, pk.Bytes(), decoded.Bytes())

	fromHex, err := ecies.PublicKeyFromHex[G](pk.String())
	require.NoError(t, err)
	require.True(t, pk.Equal(fromHex))

	_, err = ecies.PublicKeyFromHex[G]("zz")
	require.ErrorIs(t, err, ecies.ErrInvalidPublicKey)
	_, err = ecies.PublicKeyFromBytes[G]([]byte{1, 2, 3})
	require.ErrorIs(t, err, ecies.ErrInvalidPublicKey)
}

func TestNilKeysEquality(t *testing.T) {
	var a, b *ecies.PublicKey[group.P256]
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(ecies.NewTestKey[group.P256]().PublicKey()))
}

func TestEncryptDecrypt(t *testing.T) {
	key := ecies.NewTestKey[group.P256]()
	msg := []byte("share #17")

	ct, err := ecies.Encrypt(rand.Reader, key.PublicKey(), msg)
	require.NoError(t, err)

	pt, err := key.PrivateKey().Decrypt(ct)
	require.NoError(t, err)
	require.Equal(t, msg, pt)

	// a different recipient cannot decrypt
	other := ecies.NewTestKey[group.P256]()
	_, err = other.PrivateKey().Decrypt(ct)
	require.ErrorIs(t, err, ecies.ErrDecryption)

	// tampering is detected
	ct[len(ct)-1] ^= 0x01
	_, err = key.PrivateKey().Decrypt(ct)
	require.ErrorIs(t, err, ecies.ErrDecryption)

	_, err = key.PrivateKey().Decrypt([]byte{0x00})
	require.ErrorIs(t, err, ecies.ErrDecryption)
	_, err = key.PrivateKey().Decrypt([]byte{0x00, 0x40, 0x01})
	require.ErrorIs(t, err, ecies.ErrDecryption)
}

func TestProofOfPossession(t *testing.T) {
	key := ecies.NewTestKey[group.Ristretto255]()
	ctx := []byte("epoch-7")

	proof, err := key.PrivateKey().ProvePossession(rand.Reader, ctx)
	require.NoError(t, err)
	require.NoError(t, key.PublicKey().VerifyPossession(ctx, proof))

	// bound to the context
	require.ErrorIs(t, key.PublicKey().VerifyPossession([]byte("epoch-8"), proof), ecies.ErrInvalidProof)

	// bound to the key
	other := ecies.NewTestKey[group.Ristretto255]()
	require.ErrorIs(t, other.PublicKey().VerifyPossession(ctx, proof), ecies.ErrInvalidProof)

	require.ErrorIs(t, key.PublicKey().VerifyPossession(ctx, nil), ecies.ErrInvalidProof)
}
