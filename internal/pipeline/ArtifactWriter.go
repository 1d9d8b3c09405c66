package pipeline

import (
	"cibgen/internal/models"
	"cibgen/internal/providers"
	"cibgen/internal/structures"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
)

const (
	TotalScope         = "total"
	versionScopePrefix = "version-"
)

// ScopeForVersion maps a version string to its artifact scope,
// sanitizing characters that cannot appear in a file name.
func ScopeForVersion(version string) string {
	return versionScopePrefix + sanitizeVersion(version)
}

func sanitizeVersion(version string) string {
	version = strings.ReplaceAll(version, "/", "_")
	return strings.ReplaceAll(version, "\\", "_")
}

// ArtifactWriter persists badges and history series as individual
// JSON files under stable paths, one directory per integration.
// Every write is a whole-file replacement through a temp file and
// rename, so a reader of the served site never observes a partial
// file.
type ArtifactWriter struct {
	badgesDir  string
	historyDir string
	logger     providers.Logger
}

func NewArtifactWriter(conf *structures.Config, logger providers.Logger) *ArtifactWriter {
	return &ArtifactWriter{
		badgesDir:  conf.Artifacts.BadgesDir,
		historyDir: conf.Artifacts.HistoryDir,
		logger:     logger,
	}
}

func (w *ArtifactWriter) badgePath(integration, scope string) string {
	return filepath.Join(w.badgesDir, integration, scope+".json")
}

func (w *ArtifactWriter) historyPath(integration, scope string) string {
	return filepath.Join(w.historyDir, integration, scope+".json")
}

func (w *ArtifactWriter) WriteBadge(integration, scope string, desc *models.BadgeDescriptor) error {
	data, err := json.Marshal(desc)
	if err != nil {
		return err
	}
	path := w.badgePath(integration, scope)
	if err = writeFileAtomic(path, data); err != nil {
		return &models.WriteFailureError{Path: path, Err: err}
	}
	return nil
}

func (w *ArtifactWriter) WriteHistory(integration, scope string, series *models.HistorySeries) error {
	data, err := series.MarshalJSON()
	if err != nil {
		return err
	}
	data = append(data, '\n')
	path := w.historyPath(integration, scope)
	if err = writeFileAtomic(path, data); err != nil {
		return &models.WriteFailureError{Path: path, Err: err}
	}
	return nil
}

// LoadHistory reads an integration's series for one scope. A missing
// file is an empty series, not an error.
func (w *ArtifactWriter) LoadHistory(integration, scope string) (*models.HistorySeries, error) {
	data, err := os.ReadFile(w.historyPath(integration, scope))
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewHistorySeries(), nil
		}
		return nil, err
	}
	series := models.NewHistorySeries()
	if err = series.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return series, nil
}

// Integrations lists every integration that has history on disk.
func (w *ArtifactWriter) Integrations() ([]string, error) {
	entries, err := os.ReadDir(w.historyDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// CleanupVersions removes version artifacts whose version no longer
// appears in the integration's latest record. Both the sanitized and
// the original version string are checked, undoing the filename
// sanitization. Removal errors are logged, not fatal.
func (w *ArtifactWriter) CleanupVersions(integration string, current map[string]struct{}) {
	for _, dir := range []string{w.badgesDir, w.historyDir} {
		pattern := filepath.Join(dir, integration, versionScopePrefix+"*.json")
		files, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		for _, file := range files {
			version := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), versionScopePrefix), ".json")
			original := strings.ReplaceAll(version, "_", "/")
			if _, ok := current[version]; ok {
				continue
			}
			if _, ok := current[original]; ok {
				continue
			}
			if err := os.Remove(file); err != nil {
				w.logger.Errorf(providers.TypePipeline, "Failed to remove stale version file %s: %s", file, err)
				continue
			}
			w.logger.Infof(providers.TypePipeline, "Removed stale version file %s", file)
		}
	}
}

// CleanupIntegrations removes badge and history directories of
// integrations absent from the latest snapshot.
func (w *ArtifactWriter) CleanupIntegrations(current map[string]struct{}) {
	for _, dir := range []string{w.badgesDir, w.historyDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if _, ok := current[entry.Name()]; ok {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if err := os.RemoveAll(path); err != nil {
				w.logger.Errorf(providers.TypePipeline, "Failed to remove obsolete integration dir %s: %s", path, err)
				continue
			}
			w.logger.Infof(providers.TypePipeline, "Removed obsolete integration dir %s", path)
		}
	}
}

// writeFileAtomic writes data to a sibling temp file, syncs it and
// renames it into place.
func writeFileAtomic(fileName string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(fileName), 0755); err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}
