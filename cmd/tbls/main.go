package main

import (
	"fmt"
	"os"

	"github.com/cmwaters/tbls/config"
	"github.com/cmwaters/tbls/pkg/group"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tbls",
	Short: "Tools for weighted threshold committees",
	Long: `tbls builds weighted committees from a config file, shows how share ids
are assigned to members and reduces member weights for threshold schemes.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	config.AddFlags(rootCmd.PersistentFlags())
	keygenCmd.Flags().String(config.GroupKey, group.Ristretto255{}.Name(), fmt.Sprintf("Group of the key %v", group.Names()))

	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(reduceCmd)
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an encryption key pair",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := cmd.Flags().GetString(config.GroupKey)
		if err != nil {
			return err
		}
		suite, err := group.ByName(name)
		if err != nil {
			return err
		}
		switch suite.(type) {
		case group.Ristretto255:
			return keygen[group.Ristretto255](cmd.OutOrStdout())
		case group.P256:
			return keygen[group.P256](cmd.OutOrStdout())
		case group.P384:
			return keygen[group.P384](cmd.OutOrStdout())
		}
		return fmt.Errorf("%w: %q", group.ErrUnknownSuite, name)
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print a committee and the share ids of each member",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		// inspect shows the committee as configured
		cfg.Reduction = nil
		return dispatch(cmd, cfg, logger, inspect[group.Ristretto255], inspect[group.P256], inspect[group.P384])
	},
}

var reduceCmd = &cobra.Command{
	Use:   "reduce",
	Short: "Reduce the weights of a committee and print the result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Reduction == nil {
			return fmt.Errorf("config has no %q section", config.ReductionKey)
		}
		return dispatch(cmd, cfg, logger, reduce[group.Ristretto255], reduce[group.P256], reduce[group.P384])
	},
}

type runFunc func(cmd *cobra.Command, cfg config.Config, logger zerolog.Logger) error

func dispatch(cmd *cobra.Command, cfg config.Config, logger zerolog.Logger, ristretto255, p256, p384 runFunc) error {
	suite, err := group.ByName(cfg.Group)
	if err != nil {
		return err
	}
	switch suite.(type) {
	case group.Ristretto255:
		return ristretto255(cmd, cfg, logger)
	case group.P256:
		return p256(cmd, cfg, logger)
	case group.P384:
		return p384(cmd, cfg, logger)
	}
	return fmt.Errorf("%w: %q", group.ErrUnknownSuite, cfg.Group)
}

func loadConfig(cmd *cobra.Command) (config.Config, zerolog.Logger, error) {
	v, err := config.BuildViper(cmd.Flags())
	if err != nil {
		return config.Config{}, zerolog.Nop(), fmt.Errorf("couldn't configure flags: %w", err)
	}
	cfg, err := config.NewConfig(v)
	if err != nil {
		return config.Config{}, zerolog.Nop(), fmt.Errorf("couldn't build config: %w", err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(cfg.Level()).
		With().
		Timestamp().
		Str("group", cfg.Group).
		Logger()
	return cfg, logger, nil
}
