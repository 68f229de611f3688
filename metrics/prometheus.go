package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/status-im/market-dashboard/logging"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "market_dashboard_"

// Service constants
const (
	ServiceMarkets     = "markets"
	ServiceMarketChart = "market-chart"
	ServiceCoins       = "coins"
	ServiceSearch      = "search"
)

var log = logging.WithComponent("metrics")

var (
	// Global Coingecko request counter (all services)
	// Cardinality: ~3 (success, error, rate_limited)
	CoingeckoRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "coingecko_requests_total",
			Help: "Total number of HTTP requests to Coingecko API across all services",
		},
		[]string{"status"},
	)

	// Service-specific Coingecko request counter
	// Cardinality: ~12 (4 services × 3 statuses)
	ServiceCoingeckoRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_coingecko_requests_total",
			Help: "Total number of HTTP requests to Coingecko API per service",
		},
		[]string{"service", "status"},
	)

	// Retry attempts counter
	ServiceRetryCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_retry_attempts_total",
			Help: "Total number of retry attempts per service",
		},
		[]string{"service"},
	)

	// Response cache lookups by result (hit, miss)
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_lookups_total",
			Help: "Response cache lookups per service and result",
		},
		[]string{"service", "result"},
	)

	// Swallowed persistent cache failures
	CacheBackendErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_backend_errors_total",
			Help: "Persistent cache operations that failed and were ignored",
		},
		[]string{"backend", "operation"},
	)

	// Items in the in-memory cache layer
	CacheItemsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "cache_items",
			Help: "Number of entries in the in-memory response cache",
		},
	)

	// Duration of one logical fetch including retries and backoff
	FetchDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricsPrefix + "fetch_duration_seconds",
			Help:    "Time taken by one logical fetch including retries",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"service", "result"},
	)

	// Data fetch cycle duration per refresher
	DataFetchCycleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "data_fetch_cycle_duration_seconds",
			Help: "Time taken to complete a dashboard refresh cycle",
		},
		[]string{"service"},
	)

	// Connected dashboard stream clients
	StreamClientsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "stream_clients",
			Help: "Number of connected websocket dashboard clients",
		},
	)
)

// MetricsWriter provides a unified interface for recording service metrics
type MetricsWriter struct {
	serviceName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified service
func NewMetricsWriter(serviceName string) *MetricsWriter {
	return &MetricsWriter{
		serviceName: serviceName,
	}
}

// GetServiceName returns the service name
func (mw *MetricsWriter) GetServiceName() string {
	return mw.serviceName
}

// RecordServiceCoingeckoRequest records a service-specific Coingecko API request
func (mw *MetricsWriter) RecordServiceCoingeckoRequest(status string) {
	CoingeckoRequestsTotal.WithLabelValues(status).Inc()
	ServiceCoingeckoRequestsTotal.WithLabelValues(mw.serviceName, status).Inc()
	log.Debugf("%s Coingecko request recorded with status %s", mw.serviceName, status)
}

// RecordRetryAttempt records a retry attempt
func (mw *MetricsWriter) RecordRetryAttempt() {
	ServiceRetryCounter.WithLabelValues(mw.serviceName).Inc()
}

// RecordCacheLookup records a response cache hit or miss
func (mw *MetricsWriter) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(mw.serviceName, result).Inc()
}

// RecordFetch records the duration of one logical fetch
func (mw *MetricsWriter) RecordFetch(duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	FetchDurationHistogram.WithLabelValues(mw.serviceName, result).Observe(duration.Seconds())
}

// RecordDataFetchCycle records the duration of a data fetch cycle
func (mw *MetricsWriter) RecordDataFetchCycle(duration time.Duration) {
	DataFetchCycleDuration.WithLabelValues(mw.serviceName).Observe(duration.Seconds())
	log.Debugf("%s data fetch cycle took %.2fs", mw.serviceName, duration.Seconds())
}

// TrackDataFetchCycle returns a function that records the cycle duration when called
func (mw *MetricsWriter) TrackDataFetchCycle() func() {
	start := time.Now()
	return func() {
		mw.RecordDataFetchCycle(time.Since(start))
	}
}

// Implement IHttpStatusHandler interface for MetricsWriter
// OnRequest records an HTTP request with its status
func (mw *MetricsWriter) OnRequest(status string) {
	mw.RecordServiceCoingeckoRequest(status)
}

// OnRetry records an HTTP retry attempt
func (mw *MetricsWriter) OnRetry() {
	mw.RecordRetryAttempt()
}

// OnCacheLookup records whether a fingerprint was served from cache
func (mw *MetricsWriter) OnCacheLookup(hit bool) {
	mw.RecordCacheLookup(hit)
}

// RecordCacheBackendError counts a swallowed persistent cache failure
func RecordCacheBackendError(backend, operation string) {
	CacheBackendErrorsTotal.WithLabelValues(backend, operation).Inc()
}

// RecordCacheItems records the number of entries in the in-memory cache layer
func RecordCacheItems(count int) {
	CacheItemsGauge.Set(float64(count))
}

// RecordStreamClients records the number of connected dashboard stream clients
func RecordStreamClients(count int) {
	StreamClientsGauge.Set(float64(count))
}
