package pipeline

import (
	"cibgen/internal/models"
	"cibgen/internal/pipeline/interfaces"
	"cibgen/internal/providers"
	"cibgen/internal/structures"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Archiver recompresses raw snapshot files past a configured age to
// .json.zst, keeping the append-only store cheap without losing any
// day. The store reads archived days transparently.
type Archiver struct {
	dir        string
	maxAge     time.Duration
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewArchiver(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *Archiver {
	return &Archiver{
		dir:        conf.Snapshots.Dir,
		maxAge:     conf.Snapshots.ArchiveAfter,
		compressor: compressor,
		logger:     logger,
	}
}

// Archive compresses every plain raw file older than the configured
// age. Housekeeping is best-effort: a file that fails is logged and
// left in place for the next run.
func (a *Archiver) Archive() error {
	if a.maxAge <= 0 {
		return nil
	}

	cutoff := time.Now().UTC().Add(-a.maxAge).Format(models.DateLayout)

	files, err := filepath.Glob(filepath.Join(a.dir, "*"+rawSuffix))
	if err != nil {
		return err
	}

	for _, file := range files {
		date := strings.TrimSuffix(filepath.Base(file), rawSuffix)
		if !models.ValidDate(date) || date >= cutoff {
			continue
		}
		if err := a.archiveFile(file, date); err != nil {
			a.logger.Errorf(providers.TypeStore, "Failed to archive snapshot %s: %s", date, err)
			continue
		}
		a.logger.Infof(providers.TypeStore, "Archived snapshot %s", date)
	}
	return nil
}

func (a *Archiver) archiveFile(file, date string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	compressed, err := a.compressor.Compress(data)
	if err != nil {
		return err
	}

	if err = writeFileAtomic(filepath.Join(a.dir, date+archivedSuffix), compressed); err != nil {
		return err
	}

	return os.Remove(file)
}
