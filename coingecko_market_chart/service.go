package coingecko_market_chart

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/status-im/market-dashboard/cache"
	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/interfaces"
	"github.com/status-im/market-dashboard/logging"
	"github.com/status-im/market-dashboard/metrics"
)

// Service provides asset price history through the cached retrying transport
type Service struct {
	config        *config.Config
	httpClient    *cg.HTTPClientWithRetries
	metricsWriter *metrics.MetricsWriter
	log           *logrus.Entry
}

// NewService creates a new market chart service with the given cache and config
func NewService(cfg *config.Config, store cache.Store, limiterManager cg.IRateLimiterManager) *Service {
	metricsWriter := metrics.NewMetricsWriter(metrics.ServiceMarketChart)
	retryOpts := cg.RetryOptionsFromConfig(cfg.Coingecko, cfg.Coingecko.MarketChart, "market-chart")

	return &Service{
		config:        cfg,
		httpClient:    cg.NewHTTPClientWithRetries(retryOpts, store, metricsWriter, limiterManager),
		metricsWriter: metricsWriter,
		log:           logging.WithComponent("market-chart"),
	}
}

// History fetches the USD price history of id over the last days days.
// Ranges of one day use hourly samples, longer ranges daily samples.
func (s *Service) History(ctx context.Context, id string, days int) (interfaces.HistorySeries, error) {
	if err := validateParams(id, days); err != nil {
		return interfaces.HistorySeries{}, err
	}
	id = cg.NormalizeParam(id)

	requestBuilder := NewMarketChartRequestBuilder(s.config.Coingecko.BaseURL, id).
		WithDays(days).
		WithUserAgent(s.config.Coingecko.UserAgent)

	start := time.Now()
	data, err := cg.Fetch[MarketChartResponseData](ctx, s.httpClient, requestBuilder.Builder(), cg.FetchOptions{
		Retries:  s.config.Coingecko.MarketChart.Retries,
		Delay:    s.config.Coingecko.MarketChart.Delay,
		CacheKey: getCacheKey(id, days),
	})
	s.metricsWriter.RecordFetch(time.Since(start), err)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"id": id, "days": days}).Error("Failed to fetch history")
		return interfaces.HistorySeries{}, err
	}

	return interfaces.HistorySeries{
		AssetID:      id,
		Days:         days,
		Granularity:  GranularityForDays(days),
		Prices:       data.Prices,
		MarketCaps:   data.MarketCaps,
		TotalVolumes: data.TotalVolumes,
	}, nil
}

var _ interfaces.IMarketChartService = (*Service)(nil)
