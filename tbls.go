package tbls

import (
	"fmt"

	"github.com/cmwaters/tbls/config"
	"github.com/cmwaters/tbls/nodes"
	"github.com/cmwaters/tbls/pkg/ecies"
	"github.com/cmwaters/tbls/pkg/group"
)

// FromConfig builds the committee described by cfg and returns it with its
// threshold. If cfg has a reduction block, the weights and threshold are
// reduced first. The group named by cfg must be G.
func FromConfig[G group.Suite](cfg config.Config, opts ...nodes.Option) (*nodes.Nodes[G], uint16, error) {
	var suite G
	if cfg.Group != suite.Name() {
		return nil, 0, fmt.Errorf("config uses group %q, expected %q", cfg.Group, suite.Name())
	}

	members := make([]nodes.Node[G], len(cfg.Members))
	for i, m := range cfg.Members {
		pk, err := ecies.PublicKeyFromHex[G](m.PublicKey)
		if err != nil {
			return nil, 0, fmt.Errorf("member %d: %w", m.ID, err)
		}
		members[i] = nodes.Node[G]{ID: m.ID, PK: pk, Weight: m.Weight}
	}

	if cfg.Reduction == nil {
		committee, err := nodes.New(members)
		if err != nil {
			return nil, 0, err
		}
		return committee, cfg.Threshold, nil
	}
	return nodes.NewReduced(
		members,
		cfg.Threshold,
		cfg.Reduction.MaxLossBudget,
		cfg.Reduction.MinTotalWeight,
		opts...,
	)
}
