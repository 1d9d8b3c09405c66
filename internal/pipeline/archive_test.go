package pipeline

import (
	"cibgen/internal/structures"
	"cibgen/internal/testutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArchiver(t *testing.T, maxAge time.Duration) (*Archiver, string) {
	t.Helper()
	dir := t.TempDir()
	conf := &structures.Config{
		Snapshots: structures.SnapshotsConfig{Dir: dir, ArchiveAfter: maxAge},
	}
	return NewArchiver(conf, &testutil.MockCompressor{}, &testutil.MockLogger{}), dir
}

func TestArchiver_CompressesOldFiles(t *testing.T) {
	arch, dir := newTestArchiver(t, 48*time.Hour)

	oldDate := time.Now().UTC().AddDate(0, 0, -10).Format("2006-01-02")
	recentDate := time.Now().UTC().Format("2006-01-02")
	require.NoError(t, os.WriteFile(filepath.Join(dir, oldDate+".json"), []byte(`{"a":{"total":1}}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, recentDate+".json"), []byte(`{"a":{"total":2}}`), 0644))

	require.NoError(t, arch.Archive())

	_, err := os.Stat(filepath.Join(dir, oldDate+".json"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, oldDate+".json.zst"))
	assert.NoError(t, err)

	// Recent day untouched.
	_, err = os.Stat(filepath.Join(dir, recentDate+".json"))
	assert.NoError(t, err)
}

func TestArchiver_DisabledWhenNoMaxAge(t *testing.T) {
	arch, dir := newTestArchiver(t, 0)

	oldDate := time.Now().UTC().AddDate(0, 0, -365).Format("2006-01-02")
	require.NoError(t, os.WriteFile(filepath.Join(dir, oldDate+".json"), []byte(`{}`), 0644))

	require.NoError(t, arch.Archive())

	_, err := os.Stat(filepath.Join(dir, oldDate+".json"))
	assert.NoError(t, err)
}

func TestArchiver_SkipsInvalidNames(t *testing.T) {
	arch, dir := newTestArchiver(t, time.Hour)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "latest.json"), []byte(`{}`), 0644))
	require.NoError(t, arch.Archive())

	_, err := os.Stat(filepath.Join(dir, "latest.json"))
	assert.NoError(t, err)
}

func TestArchiver_ArchivedDayStillLoads(t *testing.T) {
	arch, dir := newTestArchiver(t, 24*time.Hour)

	oldDate := time.Now().UTC().AddDate(0, 0, -5).Format("2006-01-02")
	require.NoError(t, os.WriteFile(filepath.Join(dir, oldDate+".json"), []byte(`{"hacs":{"total":9000,"versions":{}}}`), 0644))
	require.NoError(t, arch.Archive())

	conf := &structures.Config{Snapshots: structures.SnapshotsConfig{Dir: dir}}
	store := NewSnapshotStore(conf, &testutil.MockCompressor{}, testutil.NewMockCache(), &testutil.MockLogger{})

	snap, err := store.Load(oldDate)
	require.NoError(t, err)
	assert.Equal(t, 9000, snap.Integrations["hacs"].Total)
}
