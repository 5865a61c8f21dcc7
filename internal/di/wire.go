//go:build wireinject
// +build wireinject

package di

import (
	"github.com/gman-top/Tradepilotx/pkg/config"
	"github.com/gman-top/Tradepilotx/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideFeedCache,

		// Repositories
		ProvideScoreStore,
		ProvideScorePublisher,

		// Feed clients
		ProvidePriceFeed,
		ProvidePositioningFeed,
		ProvideRetailSentimentFeed,
		ProvideMacroFeed,
		ProvideSeasonalityFeed,

		// Use cases
		ProvideObservationBuilder,
		ProvideEngine,
		ProvideConvictionService,

		// HTTP
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
