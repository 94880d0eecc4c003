// Package main provides the CLI entrypoint for domainimpact.
// It wires subcommands (detect, domains, changes), loads configuration, and initializes logging.
package main

import (
	"context"
	"domainimpact/internal/config"
	"domainimpact/pkg/logger"
	"domainimpact/pkg/serrors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds what PersistentPreRunE prepared for the subcommands.
type app struct {
	configPath string
	cfg        *config.Config
	log        *zap.Logger
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := applyOverrides(cmd, cfg); err != nil {
		return err
	}

	l, err := logger.New(cfg.Environment, cfg.Log.Level)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = l
	cmd.SetContext(logger.WithLogger(cmd.Context(), l))

	return nil
}

// newRootCommand builds the command tree around a.
func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "domainimpact",
		Short:             "Detects which release domains a change set impacts",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "domainimpact.yml", "Config File Path")

	rootCmd.AddCommand(
		detectCommand(a),
		domainsCommand(a),
		changesCommand(a),
	)

	return rootCmd
}

// main executes the CLI. Errors are logged once here; the exit code is 1 for
// any failed run.
func main() {
	a := &app{}

	err := newRootCommand(a).ExecuteContext(context.Background())

	if a.log == nil {
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}

		return
	}

	if err != nil {
		a.log.Error("run failed", zap.String("kind", serrors.KindOf(err).Error()), zap.Error(err))
	}
	_ = a.log.Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
