package coingecko_markets

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/status-im/market-dashboard/cache"
	cg "github.com/status-im/market-dashboard/coingecko_common"
	cfg "github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/interfaces"
	"github.com/status-im/market-dashboard/logging"
	"github.com/status-im/market-dashboard/metrics"
)

// Service lists top assets through the cached retrying transport
type Service struct {
	config        *cfg.Config
	httpClient    *cg.HTTPClientWithRetries
	metricsWriter *metrics.MetricsWriter
	log           *logrus.Entry
}

// NewService creates a markets service sharing store and limiterManager with the other operations
func NewService(config *cfg.Config, store cache.Store, limiterManager cg.IRateLimiterManager) *Service {
	metricsWriter := metrics.NewMetricsWriter(metrics.ServiceMarkets)
	retryOpts := cg.RetryOptionsFromConfig(config.Coingecko, config.Coingecko.Markets, "markets")

	return &Service{
		config:        config,
		httpClient:    cg.NewHTTPClientWithRetries(retryOpts, store, metricsWriter, limiterManager),
		metricsWriter: metricsWriter,
		log:           logging.WithComponent("markets"),
	}
}

// TopAssets returns one page of assets ordered as requested, with the pinned
// asset moved to the front. Cached pages are re-pinned on every call.
func (s *Service) TopAssets(ctx context.Context, params interfaces.ListParams) ([]interfaces.AssetSummary, error) {
	params = ApplyDefaults(params, s.config.Dashboard)

	requestBuilder := NewMarketRequestBuilder(s.config.Coingecko.BaseURL).
		WithParams(params)
	requestBuilder.WithUserAgent(s.config.Coingecko.UserAgent)

	start := time.Now()
	assets, err := cg.Fetch[[]interfaces.AssetSummary](ctx, s.httpClient, requestBuilder.CoingeckoRequestBuilder, cg.FetchOptions{
		Retries:  s.config.Coingecko.Markets.Retries,
		Delay:    s.config.Coingecko.Markets.Delay,
		CacheKey: getCacheKey(params),
	})
	s.metricsWriter.RecordFetch(time.Since(start), err)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"currency": params.Currency,
			"page":     params.Page,
		}).Error("Failed to list top assets")
		return nil, err
	}

	s.log.WithField("count", len(assets)).Debug("Listed top assets")
	return PinAsset(assets, s.config.Dashboard.PinnedAsset), nil
}

var _ interfaces.IMarketsService = (*Service)(nil)
