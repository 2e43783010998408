//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"bbcd/internal"
	"bbcd/internal/collector"
	"bbcd/internal/controllers"
	"bbcd/internal/providers"
	"bbcd/internal/services"
	"bbcd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,

		services.NewRoundService,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		collector.NewZstdCompressor,
		collector.NewSourceClient,
		collector.NewPoller,
		collector.NewAuthenticator,
		collector.NewDriveMirror,
		collector.NewArchiver,
		collector.NewScheduler,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
