package core

import (
	"context"
	"fmt"

	"github.com/status-im/market-dashboard/api"
	"github.com/status-im/market-dashboard/cache"
	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/coingecko_coins"
	"github.com/status-im/market-dashboard/coingecko_market_chart"
	"github.com/status-im/market-dashboard/coingecko_markets"
	"github.com/status-im/market-dashboard/coingecko_search"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/dashboard"
	"github.com/status-im/market-dashboard/interfaces"
)

// Setup creates and registers all services
func Setup(ctx context.Context, cfg *config.Config) (*Registry, error) {
	registry := NewRegistry()

	// Create Cache service on top of the configured persistent backend
	backend, err := cache.OpenBackend(ctx, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache backend: %w", err)
	}
	cacheService := cache.NewService(cfg.Cache, backend)
	registry.Register(cacheService)

	// One limiter per host shared by every operation
	limiterManager := cg.NewRateLimiterManager(cfg.Coingecko.RateLimit)

	client := NewMarketDataClient(cfg, cacheService, limiterManager)

	// Create the dashboard with the listing refresher and history tracker
	dashboardService := dashboard.NewService(cfg.Dashboard, client)
	registry.Register(dashboardService)

	// Create HTTP server and register it as a core
	server := api.New(cfg.Server.Port, dashboardService)
	registry.Register(server)

	return registry, nil
}

// NewMarketDataClient composes the four market data operations over one store
func NewMarketDataClient(cfg *config.Config, store cache.Store, limiterManager cg.IRateLimiterManager) interfaces.MarketDataClient {
	return interfaces.MarketDataClient{
		IMarketsService:     coingecko_markets.NewService(cfg, store, limiterManager),
		IMarketChartService: coingecko_market_chart.NewService(cfg, store, limiterManager),
		ICoinsService:       coingecko_coins.NewService(cfg, store, limiterManager),
		ISearchService:      coingecko_search.NewService(cfg, store, limiterManager),
	}
}
