package testutil

import (
	"cibgen/internal/models"
	"cibgen/internal/providers"
	"sort"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns the number of recorded entries at a given level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockSnapshotStore implements pipeline.SnapshotStoreInterface from an
// in-memory map of snapshots.
type MockSnapshotStore struct {
	mu        sync.Mutex
	Snapshots map[string]*models.Snapshot
	AppendErr error
	LoadErrs  map[string]error
	Appended  []*models.Snapshot
}

func NewMockSnapshotStore() *MockSnapshotStore {
	return &MockSnapshotStore{
		Snapshots: make(map[string]*models.Snapshot),
		LoadErrs:  make(map[string]error),
	}
}

func (m *MockSnapshotStore) Append(snap *models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Snapshots[snap.Date] = snap
	m.Appended = append(m.Appended, snap)
	return nil
}

func (m *MockSnapshotStore) Dates() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dates := make([]string, 0, len(m.Snapshots))
	for d := range m.Snapshots {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates, nil
}

func (m *MockSnapshotStore) Load(date string) (*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.LoadErrs[date]; ok {
		return nil, err
	}
	return m.Snapshots[date], nil
}

func (m *MockSnapshotStore) Latest() (*models.Snapshot, error) {
	dates, _ := m.Dates()
	if len(dates) == 0 {
		return nil, nil
	}
	return m.Load(dates[len(dates)-1])
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu        sync.Mutex
	Processed int
	Skipped   int
	Failures  map[string]int
	Artifacts map[string]int
	Durations []time.Duration
	Snapshots int
	Dumped    int
	DumpErr   error
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Failures:  make(map[string]int),
		Artifacts: make(map[string]int),
	}
}

func (m *MockMetrics) IncIntegrationsProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Processed++
}

func (m *MockMetrics) IncIntegrationsSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Skipped++
}

func (m *MockMetrics) IncFailures(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failures[kind]++
}

func (m *MockMetrics) IncArtifactsWritten(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Artifacts[kind]++
}

func (m *MockMetrics) ObserveRunDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Durations = append(m.Durations, d)
}

func (m *MockMetrics) SetSnapshotsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Snapshots = count
}

func (m *MockMetrics) Dump() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Dumped++
	return m.DumpErr
}
