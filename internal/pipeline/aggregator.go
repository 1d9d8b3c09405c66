package pipeline

import (
	"cibgen/internal/models"
	"cibgen/internal/providers"
)

// Aggregator folds dated snapshots into per-integration history
// series. It is pure: persistence belongs to the ArtifactWriter.
type Aggregator struct {
	logger providers.Logger
}

func NewAggregator(logger providers.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Apply appends one dated count to a series. Appending the last
// recorded date again is a no-op, so a re-run with the same snapshot
// leaves the series identical. A date before the last recorded one is
// rejected with an OutOfOrderSnapshotError and the series stays
// untouched.
func (a *Aggregator) Apply(series *models.HistorySeries, date string, count int) error {
	last, ok := series.Last()
	if ok {
		if date == last.Date {
			return nil
		}
		if date < last.Date {
			return &models.OutOfOrderSnapshotError{Date: date, Last: last.Date}
		}
	}
	series.Push(date, count)
	return nil
}

// ApplyRecord extends an integration's total series and every version
// series named by the record. The ordering check runs against the
// total series before anything is pushed, so a rejected snapshot
// leaves the whole history untouched.
func (a *Aggregator) ApplyRecord(hist *models.IntegrationHistory, date string, rec *models.IntegrationRecord) error {
	if last, ok := hist.Total.Last(); ok && date < last.Date {
		return &models.OutOfOrderSnapshotError{Date: date, Last: last.Date}
	}

	if err := a.Apply(hist.Total, date, rec.Total); err != nil {
		return err
	}
	for version, count := range rec.Versions {
		if err := a.Apply(hist.Version(version), date, count); err != nil {
			return err
		}
	}
	return nil
}

// Fold rebuilds every integration's full history by scanning the
// store in date order. An integration absent on some day simply gets
// no entry for that day. Malformed snapshot files are skipped with a
// warning, matching how partial raw data has always been treated.
func (a *Aggregator) Fold(store SnapshotStoreInterface) (map[string]*models.IntegrationHistory, error) {
	dates, err := store.Dates()
	if err != nil {
		return nil, err
	}

	histories := make(map[string]*models.IntegrationHistory)
	for _, date := range dates {
		snap, err := store.Load(date)
		if err != nil {
			a.logger.Warnf(providers.TypePipeline, "Skipping snapshot %s: %s", date, err)
			continue
		}
		for name, rec := range snap.Integrations {
			hist, ok := histories[name]
			if !ok {
				hist = models.NewIntegrationHistory()
				histories[name] = hist
			}
			if err := a.ApplyRecord(hist, date, rec); err != nil {
				a.logger.Warnf(providers.TypePipeline, "Skipping %s for %s: %s", date, name, err)
			}
		}
	}
	return histories, nil
}
