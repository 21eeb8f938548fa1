//go:build wireinject
// +build wireinject

package di

import (
	"FinSight/pkg/config"
	"FinSight/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Cache
		ProvideCacheStore,
		ProvideCache,

		// Collaborator clients
		ProvideLimiter,
		ProvideMarketData,
		ProvideNews,
		ProvideAssistant,
		ProvideChatManager,

		// Optional infrastructure
		ProvideKafkaProducer,
		ProvideEventPublisher,
		ProvideClickHouseClient,
		ProvideBarArchive,
		ProvideQueue,

		// Engine and transport
		ProvideEngine,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
