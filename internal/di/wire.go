//go:build wireinject
// +build wireinject

package di

import (
	"TrendScan/pkg/config"
	"TrendScan/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,
		ProvideScanParams,
		ProvideLocation,

		// Infrastructure clients
		ProvideMarketData,
		ProvideCache,
		ProvideKafkaProducer,
		ProvideClickHouseClient,
		ProvideNotifier,

		// Repositories
		ProvideLatestStore,
		ProvideHistoryStore,
		ProvideReportWriter,
		ProvideCycleSinks,

		// Use cases
		ProvideIndicatorEngine,
		ProvideEvaluator,
		ProvideEnricher,
		ProvideEmitter,
		ProvideScanner,
		ProvideScheduler,

		// Application server
		ProvideHTTPServer,
		ProvideApp,
	)
	return &server.App{}, nil
}
