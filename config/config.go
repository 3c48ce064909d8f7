package config

import (
	"errors"
	"fmt"

	"github.com/cmwaters/tbls/pkg/group"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/rs/zerolog"
)

// Config describes a committee: the group its keys live in, its members and
// the parameters used to reduce their weights.
type Config struct {
	LogLevel  string           `mapstructure:"log-level" json:"log-level,omitempty"`
	Group     string           `mapstructure:"group" json:"group,omitempty"`
	Threshold uint16           `mapstructure:"threshold" json:"threshold"`
	Members   []MemberConfig   `mapstructure:"members" json:"members"`
	Reduction *ReductionConfig `mapstructure:"reduction" json:"reduction,omitempty"`
}

// MemberConfig is a single committee member. PublicKey is the hex encoded
// compressed group element. PeerID optionally names the member's libp2p
// identity.
type MemberConfig struct {
	ID        uint16 `mapstructure:"id" json:"id"`
	Weight    uint16 `mapstructure:"weight" json:"weight"`
	PublicKey string `mapstructure:"public-key" json:"public-key"`
	PeerID    string `mapstructure:"peer-id" json:"peer-id,omitempty"`
}

type ReductionConfig struct {
	MaxLossBudget  uint16 `mapstructure:"max-loss-budget" json:"max-loss-budget"`
	MinTotalWeight uint16 `mapstructure:"min-total-weight" json:"min-total-weight"`
}

// Validate checks the fields that can be checked without decoding keys. The
// structure of the committee itself is validated when it is built.
func (c *Config) Validate() error {
	var errs []error
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err))
	}
	if _, err := group.ByName(c.Group); err != nil {
		errs = append(errs, err)
	}
	if c.Threshold == 0 {
		errs = append(errs, errors.New("threshold must be positive"))
	}
	if len(c.Members) == 0 {
		errs = append(errs, errors.New("no members configured"))
	}
	for _, m := range c.Members {
		if m.PublicKey == "" {
			errs = append(errs, fmt.Errorf("member %d: missing public key", m.ID))
		}
		if m.PeerID != "" {
			if _, err := peer.Decode(m.PeerID); err != nil {
				errs = append(errs, fmt.Errorf("member %d: invalid peer id: %w", m.ID, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return level
}

// PeerDirectory maps each member that has a peer id to its decoded identity.
func (c *Config) PeerDirectory() (map[uint16]peer.ID, error) {
	directory := make(map[uint16]peer.ID)
	for _, m := range c.Members {
		if m.PeerID == "" {
			continue
		}
		id, err := peer.Decode(m.PeerID)
		if err != nil {
			return nil, fmt.Errorf("member %d: invalid peer id: %w", m.ID, err)
		}
		if _, ok := directory[m.ID]; ok {
			return nil, fmt.Errorf("member %d: listed twice", m.ID)
		}
		directory[m.ID] = id
	}
	return directory, nil
}
