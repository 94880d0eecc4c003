// Package detector gathers the inputs of a detection run (manifest, release
// configs, changed files) and feeds the immutable snapshot to the impact
// package.
package detector

import (
	"context"
	"domainimpact/internal/config"
	"domainimpact/internal/impact"
	"domainimpact/pkg/changes"
	"domainimpact/pkg/domain"
	"domainimpact/pkg/logger"
	"time"

	"go.uber.org/zap"
)

// Options select the inputs of a run.
type Options struct {
	// ManifestPath is the project manifest path relative to the repository root.
	ManifestPath string
	// ReleaseConfigPattern is the glob selecting release config files.
	ReleaseConfigPattern string
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		ManifestPath:         cfg.Manifest.Path,
		ReleaseConfigPattern: cfg.ReleaseConfigs.Pattern,
	}
}

// Deps are the collaborators a detector reads its inputs from.
type Deps struct {
	Manifest       ManifestLoader
	ReleaseConfigs ReleaseConfigLoader
	Changes        changes.Source
	// Metrics is optional.
	Metrics MetricsRecorder
}

type detector struct {
	options Options
	deps    Deps
	now     func() time.Time
}

// New creates a Detector.
func New(deps Deps, options Options) Detector {
	return &detector{options: options, deps: deps, now: time.Now}
}

// Detect loads the manifest and the release configs, collects the changed
// files and matches them. A missing or invalid manifest and a failing change
// source abort the run; invalid release configs are reported as warnings.
// Changed files are not collected at all when no valid domain exists.
func (d *detector) Detect(ctx context.Context) (*domain.Result, error) {
	start := d.now()

	pkgs, err := d.deps.Manifest.Load(ctx, d.options.ManifestPath)
	if err != nil {
		return nil, err
	}

	raw, warnings, err := d.deps.ReleaseConfigs.Load(ctx, d.options.ReleaseConfigPattern)
	if err != nil {
		return nil, err
	}

	res := &domain.Result{
		Warnings: warnings,
		Stats: domain.Stats{
			ConfigFiles:      len(raw) + len(warnings),
			DomainsEvaluated: len(raw),
		},
	}

	if len(raw) == 0 {
		logger.Info(ctx, "no valid release configs found",
			zap.String("pattern", d.options.ReleaseConfigPattern),
			zap.Int("skipped", len(warnings)))

		return d.finish(ctx, res, nil, start), nil
	}

	files, err := d.deps.Changes.ChangedFiles(ctx)
	if err != nil {
		return nil, err
	}
	res.Stats.ChangedFiles = len(files)

	if len(files) == 0 {
		logger.Info(ctx, "no changed files found")

		return d.finish(ctx, res, nil, start), nil
	}

	domains := impact.ResolveDomains(raw, domain.PackageNames(pkgs))
	impacted := impact.DetectImpactedDomains(domains, files, impact.NewPackagePaths(pkgs))

	return d.finish(ctx, res, impacted, start), nil
}

func (d *detector) finish(ctx context.Context, res *domain.Result, impacted []domain.ImpactedDomain, start time.Time) *domain.Result {
	if impacted == nil {
		impacted = []domain.ImpactedDomain{}
	}
	res.Impacted = impacted
	res.Outputs = impact.Shape(impacted)

	if d.deps.Metrics != nil {
		d.deps.Metrics.RecordRun(ctx, res, d.now().Sub(start))
	}

	return res
}

// Domains resolves every valid release domain against the manifest.
func (d *detector) Domains(ctx context.Context) ([]domain.Domain, []domain.Warning, error) {
	pkgs, err := d.deps.Manifest.Load(ctx, d.options.ManifestPath)
	if err != nil {
		return nil, nil, err
	}

	raw, warnings, err := d.deps.ReleaseConfigs.Load(ctx, d.options.ReleaseConfigPattern)
	if err != nil {
		return nil, nil, err
	}

	return impact.ResolveDomains(raw, domain.PackageNames(pkgs)), warnings, nil
}
