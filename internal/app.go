package internal

import (
	"cibgen/internal/models"
	"cibgen/internal/pipeline"
	"cibgen/internal/pipeline/interfaces"
	"cibgen/internal/providers"
	"cibgen/internal/services"
	"cibgen/internal/structures"
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
)

type App struct {
	Report *models.RunReport
}

// NewApp executes one full pipeline invocation and returns once all
// artifacts are written. The generator is a batch job triggered by an
// external scheduler; overlap between invocations is that scheduler's
// problem, nothing here takes a lock.
func NewApp(
	flags *structures.CliFlags,
	conf *structures.Config,
	logger providers.Logger,
	service services.PipelineServiceInterface,
	archiver *pipeline.Archiver,
	compressor interfaces.CompressorInterface,
	metrics providers.MetricsProviderInterface,
) (*App, error) {
	defer logger.Close()
	defer compressor.Close()

	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)
	start := time.Now()

	var report *models.RunReport
	var err error
	if flags.Rebuild {
		logger.Infof(providers.TypeApp, "Rebuilding all history from raw store")
		report, err = service.Rebuild()
	} else {
		var snap *models.Snapshot
		snap, err = readSnapshot(flags)
		if err == nil {
			logger.Infof(providers.TypeApp, "Ingesting snapshot for %s", snap.Date)
			report, err = service.Run(snap)
		}
	}

	if archiveErr := archiver.Archive(); archiveErr != nil {
		logger.Errorf(providers.TypeApp, "Archival pass failed: %s", archiveErr)
	}

	metrics.ObserveRunDuration(time.Since(start))
	if dumpErr := metrics.Dump(); dumpErr != nil {
		logger.Errorf(providers.TypeApp, "Failed to dump metrics: %s", dumpErr)
	}

	if err != nil {
		logger.Errorf(providers.TypeApp, "Run failed: %s", err)
		return nil, err
	}

	logger.Infof(providers.TypeApp, "Run completed for %s", report.Date)
	return &App{Report: report}, nil
}

// readSnapshot parses the raw snapshot file dropped by the external
// analytics fetcher. The run date defaults to today (UTC) when not
// given on the command line.
func readSnapshot(flags *structures.CliFlags) (*models.Snapshot, error) {
	if flags.SnapshotPath == "" {
		return nil, fmt.Errorf("no snapshot file given, use -snapshot")
	}

	date := flags.Date
	if date == "" {
		date = models.Today()
	}
	if !models.ValidDate(date) {
		return nil, fmt.Errorf("invalid run date %q, expected YYYY-MM-DD", flags.Date)
	}

	data, err := os.ReadFile(flags.SnapshotPath)
	if err != nil {
		return nil, err
	}

	var integrations map[string]*models.IntegrationRecord
	if err = json.Unmarshal(data, &integrations); err != nil {
		return nil, fmt.Errorf("malformed snapshot file %s: %w", flags.SnapshotPath, err)
	}

	return &models.Snapshot{Date: date, Integrations: integrations}, nil
}
