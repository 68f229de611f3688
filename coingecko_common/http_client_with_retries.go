package coingecko_common

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/status-im/market-dashboard/cache"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/logging"
)

// RetryOptions configures retry behavior for HTTP requests
type RetryOptions struct {
	MaxRetries        int
	BaseBackoff       time.Duration
	LogPrefix         string
	ConnectionTimeout time.Duration // Timeout for establishing connection
	RequestTimeout    time.Duration // Total request timeout including reading response, zero means none
}

// DefaultRetryOptions returns default retry options
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxRetries:        DEFAULT_RETRIES,
		BaseBackoff:       1000 * time.Millisecond,
		LogPrefix:         "CoinGecko",
		ConnectionTimeout: 10 * time.Second,
	}
}

// RetryOptionsFromConfig builds retry options for one operation
func RetryOptionsFromConfig(cfg config.CoingeckoFetcher, policy config.RetryPolicy, logPrefix string) RetryOptions {
	opts := DefaultRetryOptions()
	opts.LogPrefix = logPrefix
	opts.ConnectionTimeout = cfg.ConnectionTimeout
	opts.RequestTimeout = cfg.RequestTimeout
	if policy.Retries > 0 {
		opts.MaxRetries = policy.Retries
	}
	if policy.Delay > 0 {
		opts.BaseBackoff = policy.Delay
	}
	return opts
}

// FetchOptions configures one logical fetch. Zero values fall back to the client's RetryOptions.
type FetchOptions struct {
	Retries  int
	Delay    time.Duration
	CacheKey string
}

// HTTPClientWithRetries wraps an HTTP Client with retry capabilities and a
// cache-first response store
type HTTPClientWithRetries struct {
	Client         *http.Client
	Opts           RetryOptions
	Cache          cache.Store
	StatusHandler  IHttpStatusHandler
	LimiterManager IRateLimiterManager

	// sleep waits between attempts; replaced in tests
	sleep func(ctx context.Context, d time.Duration) error
	log   *logrus.Entry
}

// NewHTTPClientWithRetries creates a new HTTP Client with retry capabilities
func NewHTTPClientWithRetries(opts RetryOptions, store cache.Store, handler IHttpStatusHandler, limiterManager IRateLimiterManager) *HTTPClientWithRetries {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.ConnectionTimeout > 0 {
		transport.DialContext = (&net.Dialer{
			Timeout:   opts.ConnectionTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext
	}

	client := &http.Client{
		Timeout:   opts.RequestTimeout,
		Transport: transport,
	}

	return &HTTPClientWithRetries{
		Client:         client,
		Opts:           opts,
		Cache:          store,
		StatusHandler:  handler,
		LimiterManager: limiterManager,
		sleep:          sleepContext,
		log:            logging.WithComponent("transport").WithField("service", opts.LogPrefix),
	}
}

// SetStatusHandler sets the status handler for this Client
func (c *HTTPClientWithRetries) SetStatusHandler(handler IHttpStatusHandler) {
	c.StatusHandler = handler
}

// Fetch performs one logical GET for the request described by rb and decodes
// the JSON body into T.
//
// When opts.CacheKey has a cached entry it is decoded and returned without any
// network call. Otherwise up to opts.Retries attempts are made, waiting
// Delay*(attempt+1) after each failed one. Connection errors, non-2xx statuses
// and undecodable bodies all count as failed attempts. The raw body of the
// first successful attempt is cached under opts.CacheKey.
func Fetch[T any](ctx context.Context, c *HTTPClientWithRetries, rb *CoingeckoRequestBuilder, opts FetchOptions) (T, error) {
	var zero T

	log := c.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"endpoint":   rb.Path(),
	})

	if opts.CacheKey != "" && c.Cache != nil {
		if cached, ok := c.Cache.Get(opts.CacheKey); ok {
			var value T
			if err := json.Unmarshal(cached, &value); err == nil {
				c.onCacheLookup(true)
				log.WithField("cache_key", opts.CacheKey).Debug("Serving response from cache")
				return value, nil
			} else {
				log.WithError(err).WithField("cache_key", opts.CacheKey).Warn("Cached entry cannot be decoded, fetching from API")
			}
		}
		c.onCacheLookup(false)
	}

	retries, delay := c.resolve(opts)
	var lastErr error

	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 && c.StatusHandler != nil {
			c.StatusHandler.OnRetry()
		}

		body, err := c.executeAttempt(ctx, rb)
		if err == nil {
			var value T
			if decodeErr := json.Unmarshal(body, &value); decodeErr == nil {
				c.onRequest(StatusSuccess)
				if opts.CacheKey != "" && c.Cache != nil {
					c.Cache.Put(opts.CacheKey, body)
				}
				return value, nil
			} else {
				c.onRequest(StatusDecodeError)
				err = fmt.Errorf("failed to decode response: %w", decodeErr)
			}
		}

		lastErr = err
		log.WithError(err).Warnf("Fetch failed (attempt %d/%d)", attempt+1, retries)

		if limiterErr, ok := err.(*limiterWaitError); ok {
			return zero, limiterErr.err
		}

		if attempt < retries-1 {
			backoff := delay * time.Duration(attempt+1)
			log.Debugf("Waiting %.2fs before retry", backoff.Seconds())
			if err := c.sleep(ctx, backoff); err != nil {
				return zero, fmt.Errorf("fetch cancelled during backoff: %w", err)
			}
		}
	}

	log.WithError(lastErr).Errorf("All %d attempts failed", retries)
	return zero, &RetriesExhaustedError{Attempts: retries, LastErr: lastErr}
}

// limiterWaitError ends a fetch without further attempts
type limiterWaitError struct {
	err error
}

func (e *limiterWaitError) Error() string { return e.err.Error() }

// executeAttempt runs a single request and returns the body of a 2xx response
func (c *HTTPClientWithRetries) executeAttempt(ctx context.Context, rb *CoingeckoRequestBuilder) ([]byte, error) {
	req, err := rb.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	// Rate limit per host before executing the request
	if c.LimiterManager != nil {
		if limiter := c.LimiterManager.GetLimiterForURL(req.URL); limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				c.onRequest(StatusError)
				return nil, &limiterWaitError{err: fmt.Errorf("rate limiter wait failed: %w", err)}
			}
		}
	}

	requestStart := time.Now()
	resp, err := c.Client.Do(req)
	requestDuration := time.Since(requestStart)
	if err != nil {
		c.onRequest(StatusError)
		return nil, fmt.Errorf("request failed after %.2fs: %w", requestDuration.Seconds(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.onRequest(StatusError)
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusTooManyRequests {
			c.onRequest(StatusRateLimited)
			return nil, fmt.Errorf("rate limit exceeded (status %d), retry after %s",
				resp.StatusCode, resp.Header.Get("Retry-After"))
		}
		c.onRequest(StatusError)
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return body, nil
}

func (c *HTTPClientWithRetries) resolve(opts FetchOptions) (int, time.Duration) {
	retries := opts.Retries
	if retries <= 0 {
		retries = c.Opts.MaxRetries
	}
	if retries <= 0 {
		retries = 1
	}
	delay := opts.Delay
	if delay <= 0 {
		delay = c.Opts.BaseBackoff
	}
	return retries, delay
}

func (c *HTTPClientWithRetries) onRequest(status string) {
	if c.StatusHandler != nil {
		c.StatusHandler.OnRequest(status)
	}
}

func (c *HTTPClientWithRetries) onCacheLookup(hit bool) {
	if c.StatusHandler != nil {
		c.StatusHandler.OnCacheLookup(hit)
	}
}

// sleepContext waits for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
