package main

import (
	"domainimpact/internal/detector"
	"domainimpact/pkg/logger"
	"domainimpact/pkg/manifest"
	"domainimpact/pkg/releaseconfig"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// domainsCommand constructs the 'domains' subcommand that prints every valid
// release domain with its resolved packages, one JSON object per line.
func domainsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "Lists release domains and the packages they resolve to",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			det := detector.New(detector.Deps{
				Manifest:       manifest.NewLoader(a.cfg.Repository.Root),
				ReleaseConfigs: releaseconfig.NewLoader(a.cfg.Repository.Root),
			}, detector.NewOptions(a.cfg))

			domains, warnings, err := det.Domains(ctx)
			if err != nil {
				return fmt.Errorf("domains: %w", err)
			}
			for _, w := range warnings {
				logger.Warn(ctx, "skipped release config", zap.String("file", w.Source), zap.String("reason", w.Message))
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, d := range domains {
				if err := enc.Encode(d); err != nil {
					return fmt.Errorf("could not encode domain: %w", err)
				}
			}

			return nil
		},
	}
	addInputFlags(cmd)

	return cmd
}
