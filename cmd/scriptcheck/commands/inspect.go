package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bartekus/scriptcheck/internal/diffrange"
	"github.com/bartekus/scriptcheck/internal/logger"
)

func newRangeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "range",
		Short: "Print the git revision range a check would diff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			rng := diffrange.Resolve(cfg.CI, cfg.Range)
			logger.L().Debug("resolved diff range", zap.String("policy", string(rng.Policy)))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rng)
			return err
		},
	}
}

func newExtensionsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "extensions",
		Short: "Print the file extensions a check scans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			for _, ext := range cfg.Extensions {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), ext); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
