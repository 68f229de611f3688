package coingecko_coins

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/status-im/market-dashboard/cache"
	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/interfaces"
	"github.com/status-im/market-dashboard/logging"
	"github.com/status-im/market-dashboard/metrics"
)

// Service fetches single asset details with caching
type Service struct {
	cfg           *config.Config
	httpClient    *cg.HTTPClientWithRetries
	metricsWriter *metrics.MetricsWriter
	log           *logrus.Entry
}

// NewService creates a new coins service
func NewService(cfg *config.Config, store cache.Store, limiterManager cg.IRateLimiterManager) *Service {
	metricsWriter := metrics.NewMetricsWriter(metrics.ServiceCoins)
	retryOpts := cg.RetryOptionsFromConfig(cfg.Coingecko, cfg.Coingecko.Coins, "coins")

	return &Service{
		cfg:           cfg,
		httpClient:    cg.NewHTTPClientWithRetries(retryOpts, store, metricsWriter, limiterManager),
		metricsWriter: metricsWriter,
		log:           logging.WithComponent("coins"),
	}
}

// Detail returns the flattened USD market data of coinID
func (s *Service) Detail(ctx context.Context, coinID string) (interfaces.AssetSummary, error) {
	if strings.TrimSpace(coinID) == "" {
		return interfaces.AssetSummary{}, fmt.Errorf("%w: coin ID is required", cg.ErrInvalidParams)
	}
	coinID = cg.NormalizeParam(coinID)

	requestBuilder := NewCoinRequestBuilder(s.cfg.Coingecko.BaseURL, coinID)
	requestBuilder.WithUserAgent(s.cfg.Coingecko.UserAgent)

	start := time.Now()
	data, err := cg.Fetch[CoinResponseData](ctx, s.httpClient, requestBuilder.CoingeckoRequestBuilder, cg.FetchOptions{
		Retries:  s.cfg.Coingecko.Coins.Retries,
		Delay:    s.cfg.Coingecko.Coins.Delay,
		CacheKey: cg.Fingerprint("details", coinID),
	})
	s.metricsWriter.RecordFetch(time.Since(start), err)
	if err != nil {
		s.log.WithError(err).WithField("id", coinID).Error("Failed to fetch coin details")
		return interfaces.AssetSummary{}, err
	}

	return data.ToAssetSummary(), nil
}

var _ interfaces.ICoinsService = (*Service)(nil)
