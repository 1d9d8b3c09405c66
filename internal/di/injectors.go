//go:build wireinject
// +build wireinject

package di

import (
	"cibgen/internal"
	"cibgen/internal/pipeline"
	"cibgen/internal/providers"
	"cibgen/internal/services"
	"cibgen/internal/structures"

	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewCacheProvider,
		providers.NewMetricsProvider,

		pipeline.NewZstdCompressor,
		pipeline.NewSnapshotStore,
		pipeline.NewAggregator,
		pipeline.NewProjector,
		pipeline.NewArtifactWriter,
		pipeline.NewArchiver,
		services.NewPipelineService,
		internal.NewApp,
	)

	return nil, nil
}
