package coingecko_search

import (
	"context"
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

// MAX_RESULTS bounds the number of matches returned by Search
const MAX_RESULTS = 10

// SearchResponseData is the part of the /search payload the dashboard reads
type SearchResponseData struct {
	Coins []interfaces.SearchMatch `json:"coins"`
}

// Service searches assets by free text
type Service struct {
	cfg           *config.Config
	httpClient    *cg.HTTPClientWithRetries
	metricsWriter *metrics.MetricsWriter
	log           *logrus.Entry
}

func NewService(cfg *config.Config, store cache.Store, limiterManager cg.IRateLimiterManager) *Service {
	metricsWriter := metrics.NewMetricsWriter(metrics.ServiceSearch)
	retryOpts := cg.RetryOptionsFromConfig(cfg.Coingecko, cfg.Coingecko.Search, "search")

	return &Service{
		cfg:           cfg,
		httpClient:    cg.NewHTTPClientWithRetries(retryOpts, store, metricsWriter, limiterManager),
		metricsWriter: metricsWriter,
		log:           logging.WithComponent("search"),
	}
}

// Search returns up to MAX_RESULTS coin matches in upstream order.
// A blank query yields no matches without calling the API.
func (s *Service) Search(ctx context.Context, query string) ([]interfaces.SearchMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []interfaces.SearchMatch{}, nil
	}

	requestBuilder := NewSearchRequestBuilder(s.cfg.Coingecko.BaseURL, query).
		WithUserAgent(s.cfg.Coingecko.UserAgent)

	start := time.Now()
	data, err := cg.Fetch[SearchResponseData](ctx, s.httpClient, requestBuilder, cg.FetchOptions{
		Retries:  s.cfg.Coingecko.Search.Retries,
		Delay:    s.cfg.Coingecko.Search.Delay,
		CacheKey: cg.Fingerprint("search", query),
	})
	s.metricsWriter.RecordFetch(time.Since(start), err)
	if err != nil {
		s.log.WithError(err).WithField("query", query).Error("Search failed")
		return nil, err
	}

	matches := data.Coins
	if matches == nil {
		matches = []interfaces.SearchMatch{}
	}
	if len(matches) > MAX_RESULTS {
		matches = matches[:MAX_RESULTS]
	}
	return matches, nil
}

var _ interfaces.ISearchService = (*Service)(nil)
