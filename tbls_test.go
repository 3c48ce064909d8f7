package tbls_test

import (
	"testing"

	"github.com/cmwaters/tbls"
	"github.com/cmwaters/tbls/config"
	"github.com/cmwaters/tbls/nodes"
	"github.com/cmwaters/tbls/pkg/ecies"
	"github.com/cmwaters/tbls/pkg/group"
	"github.com/stretchr/testify/require"
)

func newConfig(weights ...uint16) config.Config {
	members := make([]config.MemberConfig, len(weights))
	// listed in reverse to show that order does not matter
	for i, w := range weights {
		members[len(weights)-1-i] = config.MemberConfig{
			ID:        uint16(i),
			Weight:    w,
			PublicKey: ecies.NewTestKey[group.P256]().PublicKey().String(),
		}
	}
	return config.Config{Group: "p256", Threshold: 67, Members: members}
}

func TestFromConfig(t *testing.T) {
	cfg := newConfig(10, 20, 30, 40)
	committee, threshold, err := tbls.FromConfig[group.P256](cfg)
	require.NoError(t, err)
	require.EqualValues(t, 100, committee.TotalWeight())
	require.EqualValues(t, 67, threshold)

	node, err := committee.NodeIDToNode(3)
	require.NoError(t, err)
	require.EqualValues(t, 40, node.Weight)
	require.Equal(t, cfg.Members[0].PublicKey, node.PK.String())
}

func TestFromConfigWithReduction(t *testing.T) {
	cfg := newConfig(10, 20, 30, 40)
	cfg.Reduction = &config.ReductionConfig{MaxLossBudget: 0, MinTotalWeight: 10}
	committee, threshold, err := tbls.FromConfig[group.P256](cfg)
	require.NoError(t, err)
	require.EqualValues(t, 10, committee.TotalWeight())
	require.EqualValues(t, 7, threshold)

	cfg.Reduction.MinTotalWeight = 101
	_, _, err = tbls.FromConfig[group.P256](cfg)
	require.ErrorIs(t, err, nodes.ErrUnsatisfiableReduction)
}

func TestFromConfigErrors(t *testing.T) {
	cfg := newConfig(1, 2, 3)
	_, _, err := tbls.FromConfig[group.Ristretto255](cfg)
	require.Error(t, err)

	cfg.Members[1].PublicKey = "00"
	_, _, err = tbls.FromConfig[group.P256](cfg)
	require.ErrorIs(t, err, ecies.ErrInvalidPublicKey)

	cfg = newConfig(1, 2, 3)
	cfg.Members[0].ID = 7
	_, _, err = tbls.FromConfig[group.P256](cfg)
	require.ErrorIs(t, err, nodes.ErrNonContiguousIDs)
}
