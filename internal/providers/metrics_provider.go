package providers

import (
	"cibgen/internal/structures"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

type MetricsProviderInterface interface {
	IncIntegrationsProcessed()
	IncIntegrationsSkipped()
	IncFailures(kind string)
	IncArtifactsWritten(kind string)
	ObserveRunDuration(duration time.Duration)
	SetSnapshotsTotal(count int)
	Dump() error
}

// MetricsProvider collects pipeline counters on a private registry.
// The generator is a batch job, so instead of serving /metrics the
// registry is dumped at the end of a run into a node_exporter
// textfile-collector file.
type MetricsProvider struct {
	registry         *prometheus.Registry
	textfilePath     string
	processed        prometheus.Counter
	skipped          prometheus.Counter
	failures         *prometheus.CounterVec
	artifactsWritten *prometheus.CounterVec
	runDuration      prometheus.Histogram
	snapshotsTotal   prometheus.Gauge
}

func (m *MetricsProvider) IncIntegrationsProcessed() {
	m.processed.Inc()
}

func (m *MetricsProvider) IncIntegrationsSkipped() {
	m.skipped.Inc()
}

func (m *MetricsProvider) IncFailures(kind string) {
	m.failures.WithLabelValues(kind).Inc()
}

func (m *MetricsProvider) IncArtifactsWritten(kind string) {
	m.artifactsWritten.WithLabelValues(kind).Inc()
}

func (m *MetricsProvider) ObserveRunDuration(duration time.Duration) {
	m.runDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetSnapshotsTotal(count int) {
	m.snapshotsTotal.Set(float64(count))
}

// Dump renders the registry in text exposition format and atomically
// replaces the textfile so a collector never reads a partial file.
func (m *MetricsProvider) Dump() error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}

	tmpFile := m.textfilePath + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(file, mf); err != nil {
			file.Close()
			os.Remove(tmpFile)
			return err
		}
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, m.textfilePath)
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled || conf.Metrics.TextfilePath == "" {
		return &noopMetrics{}
	}

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &MetricsProvider{
		registry:     registry,
		textfilePath: conf.Metrics.TextfilePath,

		processed: factory.NewCounter(prometheus.CounterOpts{
			Name: "cibgen_integrations_processed_total",
			Help: "Integrations whose artifacts were updated this run",
		}),

		skipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "cibgen_integrations_skipped_total",
			Help: "Integrations absent from the snapshot and left untouched",
		}),

		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cibgen_failures_total",
			Help: "Per-integration failures by kind",
		}, []string{"kind"}),

		artifactsWritten: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cibgen_artifacts_written_total",
			Help: "Artifact files written by kind",
		}, []string{"kind"}),

		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cibgen_run_duration_seconds",
			Help:    "Duration of one pipeline run in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		snapshotsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cibgen_snapshots_total",
			Help: "Raw daily snapshots present in the store",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncIntegrationsProcessed()          {}
func (n *noopMetrics) IncIntegrationsSkipped()            {}
func (n *noopMetrics) IncFailures(_ string)               {}
func (n *noopMetrics) IncArtifactsWritten(_ string)       {}
func (n *noopMetrics) ObserveRunDuration(_ time.Duration) {}
func (n *noopMetrics) SetSnapshotsTotal(_ int)            {}
func (n *noopMetrics) Dump() error                        { return nil }
