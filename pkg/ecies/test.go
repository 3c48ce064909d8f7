package ecies

import (
	"crypto/rand"

	"github.com/cmwaters/tbls/pkg/group"
)

// TestKey bundles a key pair for use in tests and fixtures.
type TestKey[G group.Suite] struct {
	privateKey *PrivateKey[G]
}

func NewTestKey[G group.Suite]() *TestKey[G] {
	sk, err := GeneratePrivateKey[G](rand.Reader)
	if err != nil {
		panic(err)
	}
	return &TestKey[G]{privateKey: sk}
}

func (k *TestKey[G]) PrivateKey() *PrivateKey[G] {
	return k.privateKey
}

func (k *TestKey[G]) PublicKey() *PublicKey[G] {
	return k.privateKey.PublicKey()
}
