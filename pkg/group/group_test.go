package group_test

import (
	"crypto/rand"
	"testing"

	"github.com/cmwaters/tbls/pkg/group"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range group.Names() {
		suite, err := group.ByName(name)
		require.NoError(t, err)
		require.Equal(t, name, suite.Name())
	}

	_, err := group.ByName("bn254")
	require.ErrorIs(t, err, group.ErrUnknownSuite)
}

func TestChallengeDeterministic(t *testing.T) {
	suites := []group.Suite{group.Ristretto255{}, group.P256{}, group.P384{}}
	for _, suite := range suites {
		t.Run(suite.Name(), func(t *testing.T) {
			g := suite.Group()
			a := g.RandomElement(rand.Reader)
			b := g.RandomElement(rand.Reader)
			dst := []byte("test-challenge")

			c1, err := suite.Challenge(dst, a, b)
			require.NoError(t, err)
			c2, err := suite.Challenge(dst, a, b)
			require.NoError(t, err)
			require.True(t, c1.IsEqual(c2))

			// order of the transcript matters
			c3, err := suite.Challenge(dst, b, a)
			require.NoError(t, err)
			require.False(t, c1.IsEqual(c3))

			// and so does the domain separation tag
			c4, err := suite.Challenge([]byte("other"), a, b)
			require.NoError(t, err)
			require.False(t, c1.IsEqual(c4))
		})
	}
}

func TestChallengeNilElement(t *testing.T) {
	_, err := group.P256{}.Challenge([]byte("dst"), nil)
	require.Error(t, err)
}
