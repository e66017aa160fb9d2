//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"storemon/internal"
	"storemon/internal/controllers"
	"storemon/internal/providers"
	"storemon/internal/report"
	"storemon/internal/repository"
	"storemon/internal/services"
	"storemon/internal/structures"
	"storemon/internal/uptime"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewDatabaseProvider,
		providers.NewCacheProvider,
		providers.NewMetricsProvider,

		repository.NewSet,
		report.NewStore,
		wire.Bind(new(providers.ReportCounts), new(report.StoreInterface)),
		report.NewZstdCompressor,
		report.NewFileManager,
		report.NewScheduler,
		report.NewCSVWriter,
		uptime.NewAnchorResolver,
		uptime.NewMetricsEngine,
		services.NewReportService,
		controllers.NewReportController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
