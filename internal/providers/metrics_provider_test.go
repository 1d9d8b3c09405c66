package providers

import (
	"cibgen/internal/structures"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncIntegrationsProcessed()
	m.IncIntegrationsSkipped()
	m.IncFailures("write")
	m.IncArtifactsWritten("badge")
	m.ObserveRunDuration(time.Millisecond)
	m.SetSnapshotsTotal(10)
	assert.NoError(t, m.Dump())
}

func TestNoopMetrics_WhenNoTextfilePath(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok)
}

func metricsConfig(path string) *structures.Config {
	return &structures.Config{
		Metrics: structures.MetricsConfig{
			Enabled:      true,
			TextfilePath: path,
		},
	}
}

func TestMetricsProvider_DumpWritesTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cibgen.prom")
	m := NewMetricsProvider(metricsConfig(path))

	m.IncIntegrationsProcessed()
	m.IncIntegrationsProcessed()
	m.IncIntegrationsSkipped()
	m.IncFailures("write")
	m.IncArtifactsWritten("badge")
	m.IncArtifactsWritten("history")
	m.ObserveRunDuration(120 * time.Millisecond)
	m.SetSnapshotsTotal(30)

	require.NoError(t, m.Dump())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "cibgen_integrations_processed_total 2")
	assert.Contains(t, content, "cibgen_integrations_skipped_total 1")
	assert.Contains(t, content, `cibgen_failures_total{kind="write"} 1`)
	assert.Contains(t, content, `cibgen_artifacts_written_total{kind="badge"} 1`)
	assert.Contains(t, content, "cibgen_snapshots_total 30")
	assert.Contains(t, content, "cibgen_run_duration_seconds")

	// No temp file left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestMetricsProvider_DumpOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cibgen.prom")
	m := NewMetricsProvider(metricsConfig(path))

	m.IncIntegrationsProcessed()
	require.NoError(t, m.Dump())
	m.IncIntegrationsProcessed()
	require.NoError(t, m.Dump())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cibgen_integrations_processed_total 2")
}

func TestMetricsProvider_DumpFailsOnBadPath(t *testing.T) {
	m := NewMetricsProvider(metricsConfig("/proc/not/writable/m.prom"))
	assert.Error(t, m.Dump())
}
