package services

import (
	"cibgen/internal/models"
	"cibgen/internal/pipeline"
	"cibgen/internal/providers"
	"cibgen/internal/structures"
	"errors"
	"fmt"
	"sort"
)

type PipelineServiceInterface interface {
	Run(snap *models.Snapshot) (*models.RunReport, error)
	Rebuild() (*models.RunReport, error)
}

// PipelineService drives one batch invocation: append the new
// snapshot to the raw store, extend each integration's history,
// reproject its badges and persist everything. Integrations are
// processed sequentially and failures stay confined to the
// integration they hit.
type PipelineService struct {
	config     *structures.Config
	store      pipeline.SnapshotStoreInterface
	aggregator *pipeline.Aggregator
	projector  *pipeline.Projector
	writer     *pipeline.ArtifactWriter
	metrics    providers.MetricsProviderInterface
	logger     providers.Logger
}

func NewPipelineService(
	config *structures.Config,
	store pipeline.SnapshotStoreInterface,
	aggregator *pipeline.Aggregator,
	projector *pipeline.Projector,
	writer *pipeline.ArtifactWriter,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
) PipelineServiceInterface {
	return &PipelineService{
		config:     config,
		store:      store,
		aggregator: aggregator,
		projector:  projector,
		writer:     writer,
		metrics:    metrics,
		logger:     logger,
	}
}

// Run ingests one day's snapshot. An empty or malformed snapshot
// aborts before anything is written; after that point every
// integration is attempted regardless of its neighbors' failures.
func (ps *PipelineService) Run(snap *models.Snapshot) (*models.RunReport, error) {
	if snap.Empty() {
		return nil, errors.New("snapshot contains no integrations, aborting before any writes")
	}
	if !models.ValidDate(snap.Date) {
		return nil, fmt.Errorf("invalid snapshot date %q, aborting before any writes", snap.Date)
	}

	report := models.NewRunReport(snap.Date)

	// The raw file is the source of every future rebuild; if it cannot
	// be recorded the run stops with no artifacts touched.
	if err := ps.store.Append(snap); err != nil {
		return report, fmt.Errorf("failed to append snapshot %s to store: %w", snap.Date, err)
	}

	for _, name := range sortedNames(snap.Integrations) {
		rec := snap.Integrations[name]
		if err := ps.updateIntegration(name, snap.Date, rec); err != nil {
			ps.logger.Errorf(providers.TypePipeline, "Integration %s failed: %s", name, err)
			ps.metrics.IncFailures(failureKind(err))
			report.AddFailure(name, err)
			continue
		}
		ps.metrics.IncIntegrationsProcessed()
		report.AddUpdated(name)
	}

	ps.reportMissing(snap, report)
	ps.finishRun(snap, report)

	return report, report.Err()
}

// Rebuild regenerates every history file from the full raw store and
// reprojects badges from the newest snapshot.
func (ps *PipelineService) Rebuild() (*models.RunReport, error) {
	latest, err := ps.store.Latest()
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, errors.New("snapshot store is empty, nothing to rebuild")
	}

	histories, err := ps.aggregator.Fold(ps.store)
	if err != nil {
		return nil, err
	}

	report := models.NewRunReport(latest.Date)

	names := make([]string, 0, len(histories))
	for name := range histories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ps.rebuildIntegration(name, histories[name], latest); err != nil {
			ps.logger.Errorf(providers.TypePipeline, "Integration %s failed: %s", name, err)
			ps.metrics.IncFailures(failureKind(err))
			report.AddFailure(name, err)
			continue
		}
		if _, ok := latest.Integrations[name]; ok {
			ps.metrics.IncIntegrationsProcessed()
			report.AddUpdated(name)
		} else {
			ps.metrics.IncIntegrationsSkipped()
			report.AddSkipped(name)
		}
	}

	ps.finishRun(latest, report)

	return report, report.Err()
}

// updateIntegration extends one integration's history by one day and
// rewrites its badges. History ordering is checked before any file is
// touched, so an out-of-order snapshot leaves the integration's
// artifacts exactly as they were.
func (ps *PipelineService) updateIntegration(name, date string, rec *models.IntegrationRecord) error {
	totalSeries, err := ps.writer.LoadHistory(name, pipeline.TotalScope)
	if err != nil {
		return err
	}
	if err = ps.aggregator.Apply(totalSeries, date, rec.Total); err != nil {
		return err
	}
	if err = ps.writer.WriteHistory(name, pipeline.TotalScope, totalSeries); err != nil {
		return err
	}
	ps.metrics.IncArtifactsWritten("history")

	for version, count := range rec.Versions {
		scope := pipeline.ScopeForVersion(version)
		series, err := ps.writer.LoadHistory(name, scope)
		if err != nil {
			return err
		}
		if err = ps.aggregator.Apply(series, date, count); err != nil {
			return err
		}
		if err = ps.writer.WriteHistory(name, scope, series); err != nil {
			return err
		}
		ps.metrics.IncArtifactsWritten("history")
	}

	if err = ps.writeBadges(name, rec); err != nil {
		return err
	}

	ps.writer.CleanupVersions(name, versionSet(rec))
	return nil
}

// rebuildIntegration rewrites every series of one integration from a
// full fold. Badges come from the newest snapshot only; an
// integration absent from it keeps its history but gets no badges,
// and its stale version files go away.
func (ps *PipelineService) rebuildIntegration(name string, hist *models.IntegrationHistory, latest *models.Snapshot) error {
	if err := ps.writer.WriteHistory(name, pipeline.TotalScope, hist.Total); err != nil {
		return err
	}
	ps.metrics.IncArtifactsWritten("history")

	for version, series := range hist.Versions {
		if err := ps.writer.WriteHistory(name, pipeline.ScopeForVersion(version), series); err != nil {
			return err
		}
		ps.metrics.IncArtifactsWritten("history")
	}

	current := make(map[string]struct{})
	if rec, ok := latest.Integrations[name]; ok {
		current = versionSet(rec)
		if err := ps.writeBadges(name, rec); err != nil {
			return err
		}
	}

	ps.writer.CleanupVersions(name, current)
	return nil
}

func (ps *PipelineService) writeBadges(name string, rec *models.IntegrationRecord) error {
	badges := ps.projector.Project(rec)

	if err := ps.writer.WriteBadge(name, pipeline.TotalScope, badges.Total); err != nil {
		return err
	}
	ps.metrics.IncArtifactsWritten("badge")

	for version, desc := range badges.Versions {
		if err := ps.writer.WriteBadge(name, pipeline.ScopeForVersion(version), desc); err != nil {
			return err
		}
		ps.metrics.IncArtifactsWritten("badge")
	}
	return nil
}

// reportMissing accounts for integrations that have history on disk
// but disappeared from the day's snapshot. Benign: their artifacts
// are left alone and their series simply gets a gap for the day.
func (ps *PipelineService) reportMissing(snap *models.Snapshot, report *models.RunReport) {
	existing, err := ps.writer.Integrations()
	if err != nil {
		ps.logger.Warnf(providers.TypePipeline, "Could not list existing integrations: %s", err)
		return
	}
	for _, name := range existing {
		if _, ok := snap.Integrations[name]; ok {
			continue
		}
		ps.logger.Debugf(providers.TypePipeline, "Integration %s: %s", name, models.ErrMissingSnapshotData)
		ps.metrics.IncIntegrationsSkipped()
		report.AddSkipped(name)
	}
}

func (ps *PipelineService) finishRun(latest *models.Snapshot, report *models.RunReport) {
	if ps.config.Artifacts.PruneObsolete {
		current := make(map[string]struct{}, len(latest.Integrations))
		for name := range latest.Integrations {
			current[name] = struct{}{}
		}
		ps.writer.CleanupIntegrations(current)
	}

	if dates, err := ps.store.Dates(); err == nil {
		ps.metrics.SetSnapshotsTotal(len(dates))
	}

	ps.logger.Infof(providers.TypePipeline, "Run %s: %d updated, %d skipped, %d failed",
		report.Date, len(report.Updated), len(report.Skipped), len(report.Failures))
}

func sortedNames(integrations map[string]*models.IntegrationRecord) []string {
	names := make([]string, 0, len(integrations))
	for name := range integrations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func versionSet(rec *models.IntegrationRecord) map[string]struct{} {
	set := make(map[string]struct{}, len(rec.Versions))
	for version := range rec.Versions {
		set[version] = struct{}{}
	}
	return set
}

func failureKind(err error) string {
	var outOfOrder *models.OutOfOrderSnapshotError
	var writeFailure *models.WriteFailureError
	switch {
	case errors.As(err, &outOfOrder):
		return "out_of_order"
	case errors.As(err, &writeFailure):
		return "write"
	default:
		return "other"
	}
}
