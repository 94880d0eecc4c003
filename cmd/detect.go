package main

import (
	"context"
	"domainimpact/internal/detector"
	"domainimpact/pkg/domain"
	"domainimpact/pkg/ghoutput"
	"domainimpact/pkg/logger"
	"domainimpact/pkg/manifest"
	"domainimpact/pkg/metrics"
	"domainimpact/pkg/releaseconfig"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// detectCommand constructs the 'detect' subcommand that computes the impacted
// release domains and writes the has-changes, domains and matrix outputs.
func detectCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detects impacted release domains and writes step outputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logger.WithFields(cmd.Context(), zap.String("run_id", uuid.NewString()))

			return runDetect(ctx, a)
		},
	}
	addInputFlags(cmd)
	addChangeFlags(cmd)

	return cmd
}

func runDetect(ctx context.Context, a *app) error {
	cfg := a.cfg

	rec, err := metrics.New()
	if err != nil {
		return err
	}
	defer func() {
		if err := rec.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn(ctx, "could not stop metrics", zap.Error(err))
		}
	}()

	src, err := newChangeSource(cfg)
	if err != nil {
		return err
	}

	det := detector.New(detector.Deps{
		Manifest:       manifest.NewLoader(cfg.Repository.Root),
		ReleaseConfigs: releaseconfig.NewLoader(cfg.Repository.Root),
		Changes:        src,
		Metrics:        rec,
	}, detector.NewOptions(cfg))

	runCtx, cancel := context.WithTimeout(ctx, cfg.Changes.Timeout)
	defer cancel()

	logger.Info(ctx, "detecting impacted release domains",
		zap.String("source", cfg.Changes.Source),
		zap.String("base", cfg.Changes.Base),
		zap.String("head", cfg.Changes.Head))

	res, err := det.Detect(runCtx)
	if err != nil {
		return fmt.Errorf("detect: %w", err)
	}

	reportResult(ctx, res)

	w, closeOutput, err := ghoutput.Open(cfg.Output.GitHubOutput)
	if err != nil {
		return err
	}
	if err := w.WriteOutputs(res.Outputs); err != nil {
		_ = closeOutput()

		return err
	}
	if err := closeOutput(); err != nil {
		return fmt.Errorf("could not close step output file: %w", err)
	}

	if cfg.Metrics.Textfile != "" {
		if err := rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Warn(ctx, "could not write metrics", zap.Error(err))
		}
	}

	return nil
}

// reportResult logs the warnings absorbed during the run and a summary.
func reportResult(ctx context.Context, res *domain.Result) {
	for _, w := range res.Warnings {
		logger.Warn(ctx, "skipped release config", zap.String("file", w.Source), zap.String("reason", w.Message))
	}

	for _, d := range res.Impacted {
		logger.Debug(ctx, "domain impacted",
			zap.String("domain", d.ReleaseName),
			zap.String("release_config", d.ConfigPath),
			zap.Strings("packages", d.ChangedPackages))
	}

	logger.Info(ctx, "detection finished",
		zap.Bool("has_changes", res.Outputs.HasChanges),
		zap.Strings("domains", domain.ImpactedNames(res.Impacted)),
		zap.Int("config_files", res.Stats.ConfigFiles),
		zap.Int("changed_files", res.Stats.ChangedFiles))
}
