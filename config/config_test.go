package config_test

import (
	"crypto/rand"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmwaters/tbls/config"
	"github.com/cmwaters/tbls/pkg/ecies"
	"github.com/cmwaters/tbls/pkg/group"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newPeerID(t *testing.T) peer.ID {
	_, pub, err := crypto.GenerateEd25519Key(rand.Reader)
	require.NoError(t, err)
	id, err := peer.IDFromPublicKey(pub)
	require.NoError(t, err)
	return id
}

func newTestConfig(t *testing.T) config.Config {
	members := make([]config.MemberConfig, 4)
	for i := range members {
		members[i] = config.MemberConfig{
			ID:        uint16(i),
			Weight:    uint16(10 * (i + 1)),
			PublicKey: ecies.NewTestKey[group.Ristretto255]().PublicKey().String(),
		}
	}
	members[1].PeerID = newPeerID(t).String()
	return config.Config{
		Group:     "ristretto255",
		Threshold: 67,
		Members:   members,
		Reduction: &config.ReductionConfig{MaxLossBudget: 0, MinTotalWeight: 10},
	}
}

func writeConfig(t *testing.T, cfg config.Config) string {
	b, err := json.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "committee.json")
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func loadConfig(t *testing.T, args ...string) (config.Config, error) {
	fs := config.BuildFlagSet()
	require.NoError(t, fs.Parse(args))
	v, err := config.BuildViper(fs)
	require.NoError(t, err)
	return config.NewConfig(v)
}

func TestLoadConfig(t *testing.T) {
	expected := newTestConfig(t)
	path := writeConfig(t, expected)

	cfg, err := loadConfig(t, "--config-file", path)
	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, zerolog.InfoLevel, cfg.Level())
	require.Equal(t, expected.Group, cfg.Group)
	require.Equal(t, expected.Threshold, cfg.Threshold)
	require.Equal(t, expected.Members, cfg.Members)
	require.Equal(t, expected.Reduction, cfg.Reduction)

	directory, err := cfg.PeerDirectory()
	require.NoError(t, err)
	require.Len(t, directory, 1)
	require.Equal(t, expected.Members[1].PeerID, directory[1].String())
}

func TestFlagOverridesFile(t *testing.T) {
	expected := newTestConfig(t)
	expected.LogLevel = "warn"
	path := writeConfig(t, expected)

	cfg, err := loadConfig(t, "--config-file", path, "--log-level", "debug")
	require.NoError(t, err)
	require.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestDefaults(t *testing.T) {
	expected := newTestConfig(t)
	expected.Group = ""
	expected.Reduction = nil
	path := writeConfig(t, expected)

	cfg, err := loadConfig(t, "--config-file", path)
	require.NoError(t, err)
	require.Equal(t, "ristretto255", cfg.Group)
	require.Nil(t, cfg.Reduction)
}

func TestMissingConfigFile(t *testing.T) {
	fs := config.BuildFlagSet()
	require.NoError(t, fs.Parse(nil))
	_, err := config.BuildViper(fs)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.LogLevel = "info"
	require.NoError(t, cfg.Validate())

	cfg.LogLevel = "loud"
	cfg.Group = "secp256k1"
	cfg.Threshold = 0
	cfg.Members[2].PublicKey = ""
	cfg.Members[3].PeerID = "not-a-peer"
	err := cfg.Validate()
	require.Error(t, err)
	require.ErrorIs(t, err, group.ErrUnknownSuite)
	for _, msg := range []string{"log level", "threshold", "member 2", "member 3"} {
		require.Contains(t, err.Error(), msg)
	}

	_, err = cfg.PeerDirectory()
	require.Error(t, err)

	empty := config.Config{LogLevel: "info", Group: "p256", Threshold: 1}
	require.ErrorContains(t, empty.Validate(), "no members")
}
