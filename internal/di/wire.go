//go:build wireinject
// +build wireinject

package di

import (
	"TrueArk/pkg/config"
	"TrueArk/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideCache,

		// Providers and repositories
		ProvideEphemeris,
		ProvideChartStore,
		ProvideChartPublisher,

		// Use cases
		ProvideChartEngine,
		ProvideChartService,

		// Transport
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
