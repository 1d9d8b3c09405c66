package pipeline

import (
	"cibgen/internal/models"
	"cibgen/internal/pipeline/interfaces"
	"cibgen/internal/providers"
	"cibgen/internal/structures"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

const (
	rawSuffix      = ".json"
	archivedSuffix = ".json.zst"
)

type SnapshotStoreInterface interface {
	Append(snap *models.Snapshot) error
	Dates() ([]string, error)
	Load(date string) (*models.Snapshot, error)
	Latest() (*models.Snapshot, error)
}

// SnapshotStore is the append-only log of raw daily snapshots, one
// file per calendar day named <YYYY-MM-DD>.json. Days past the
// archival age live as <YYYY-MM-DD>.json.zst instead; Load reads both
// forms transparently.
type SnapshotStore struct {
	dir        string
	compressor interfaces.CompressorInterface
	cache      providers.CacheProviderInterface
	logger     providers.Logger
}

func NewSnapshotStore(conf *structures.Config, compressor interfaces.CompressorInterface, cache providers.CacheProviderInterface, logger providers.Logger) SnapshotStoreInterface {
	return &SnapshotStore{
		dir:        conf.Snapshots.Dir,
		compressor: compressor,
		cache:      cache,
		logger:     logger,
	}
}

// Append persists one day's snapshot. Re-appending the same date
// replaces the file with identical content, so re-running an
// invocation is safe.
func (ss *SnapshotStore) Append(snap *models.Snapshot) error {
	if !models.ValidDate(snap.Date) {
		return fmt.Errorf("invalid snapshot date %q", snap.Date)
	}

	if err := os.MkdirAll(ss.dir, 0755); err != nil {
		return err
	}

	data, err := json.Marshal(snap.Integrations)
	if err != nil {
		return err
	}

	path := filepath.Join(ss.dir, snap.Date+rawSuffix)
	if err = writeFileAtomic(path, data); err != nil {
		return err
	}

	ss.cache.Set("raw:"+snap.Date, data)
	return nil
}

// Dates lists every stored snapshot date in ascending order. Files
// whose name is not a valid date are skipped with a warning.
func (ss *SnapshotStore) Dates() ([]string, error) {
	entries, err := os.ReadDir(ss.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		var date string
		switch {
		case strings.HasSuffix(name, archivedSuffix):
			date = strings.TrimSuffix(name, archivedSuffix)
		case strings.HasSuffix(name, rawSuffix):
			date = strings.TrimSuffix(name, rawSuffix)
		default:
			continue
		}
		if !models.ValidDate(date) {
			ss.logger.Warnf(providers.TypeStore, "Skipping snapshot file with invalid name: %s", name)
			continue
		}
		seen[date] = struct{}{}
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates, nil
}

// Load reads one day's snapshot, preferring the plain file over the
// archived one when both exist.
func (ss *SnapshotStore) Load(date string) (*models.Snapshot, error) {
	data, ok := ss.cache.Get("raw:" + date)
	if !ok {
		var err error
		data, err = ss.readRaw(date)
		if err != nil {
			return nil, err
		}
		ss.cache.Set("raw:"+date, data)
	}

	var integrations map[string]*models.IntegrationRecord
	if err := json.Unmarshal(data, &integrations); err != nil {
		return nil, fmt.Errorf("malformed snapshot %s: %w", date, err)
	}

	return &models.Snapshot{Date: date, Integrations: integrations}, nil
}

// Latest returns the newest stored snapshot, or nil when the store is
// empty.
func (ss *SnapshotStore) Latest() (*models.Snapshot, error) {
	dates, err := ss.Dates()
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, nil
	}
	return ss.Load(dates[len(dates)-1])
}

func (ss *SnapshotStore) readRaw(date string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(ss.dir, date+rawSuffix))
	if err == nil {
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	compressed, zerr := os.ReadFile(filepath.Join(ss.dir, date+archivedSuffix))
	if zerr != nil {
		return nil, err
	}
	return ss.compressor.Decompress(compressed)
}
