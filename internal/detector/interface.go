package detector

import (
	"context"
	"domainimpact/pkg/domain"
	"time"
)

//go:generate mockgen -package mockdetector -source=interface.go -destination=mock/mockdetector.go *

// Detector runs the detection pipeline.
type Detector interface {
	// Detect computes which release domains the current change set impacts.
	Detect(ctx context.Context) (*domain.Result, error)
	// Domains returns every valid release domain with its resolved packages.
	Domains(ctx context.Context) ([]domain.Domain, []domain.Warning, error)
}

// ManifestLoader reads the package universe.
type ManifestLoader interface {
	Load(ctx context.Context, path string) ([]domain.Package, error)
}

// ReleaseConfigLoader discovers release domains.
type ReleaseConfigLoader interface {
	Load(ctx context.Context, pattern string) ([]domain.Domain, []domain.Warning, error)
}

// MetricsRecorder observes finished runs.
type MetricsRecorder interface {
	RecordRun(ctx context.Context, res *domain.Result, elapsed time.Duration)
}
