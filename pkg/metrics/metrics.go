// Package metrics records detection runs as OpenTelemetry instruments exported
// through a private Prometheus registry. CI jobs have no scrape endpoint, so
// the registry is dumped to a node_exporter textfile instead.
package metrics

import (
	"context"
	"domainimpact/pkg/domain"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

const meterName = "domainimpact"

// Recorder holds the instruments of a run.
type Recorder struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider

	configFiles      metric.Int64Counter
	configWarnings   metric.Int64Counter
	domainsEvaluated metric.Int64Counter
	domainsImpacted  metric.Int64Counter
	changedFiles     metric.Int64Counter
	duration         metric.Float64Histogram
}

// New creates a Recorder backed by a fresh registry.
func New() (*Recorder, error) {
	registry := prometheus.NewRegistry()

	exp, err := otelprom.New(otelprom.WithRegisterer(registry), otelprom.WithoutScopeInfo())
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))
	meter := provider.Meter(meterName)

	r := &Recorder{registry: registry, provider: provider}

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&r.configFiles, "domainimpact.config.files", "Release config files discovered."},
		{&r.configWarnings, "domainimpact.config.warnings", "Release config files skipped with a warning."},
		{&r.domainsEvaluated, "domainimpact.domains.evaluated", "Release domains evaluated against the change set."},
		{&r.domainsImpacted, "domainimpact.domains.impacted", "Release domains impacted by the change set."},
		{&r.changedFiles, "domainimpact.changed.files", "Changed files in the change set."},
	}
	for _, c := range counters {
		*c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("could not create counter %s: %w", c.name, err)
		}
	}

	r.duration, err = meter.Float64Histogram("domainimpact.detect.duration",
		metric.WithDescription("Duration of a detection run."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create histogram: %w", err)
	}

	return r, nil
}

// RecordRun adds the counters of a finished run.
func (r *Recorder) RecordRun(ctx context.Context, res *domain.Result, elapsed time.Duration) {
	r.configFiles.Add(ctx, int64(res.Stats.ConfigFiles))
	r.configWarnings.Add(ctx, int64(len(res.Warnings)))
	r.domainsEvaluated.Add(ctx, int64(res.Stats.DomainsEvaluated))
	r.domainsImpacted.Add(ctx, int64(len(res.Impacted)))
	r.changedFiles.Add(ctx, int64(res.Stats.ChangedFiles))
	r.duration.Record(ctx, elapsed.Seconds())
}

// Gatherer exposes the underlying registry.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.registry }

// WriteTextfile writes all metrics in the Prometheus text format to path.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("could not write metrics textfile: %w", err)
	}

	return nil
}

// Shutdown flushes and stops the meter provider.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if err := r.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("could not shutdown meter provider: %w", err)
	}

	return nil
}
