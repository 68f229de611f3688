package coingecko_common

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	mock_coingecko_common "github.com/status-im/market-dashboard/coingecko_common/mocks"
	"github.com/status-im/market-dashboard/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/time/rate"
)

type memoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	gets    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string][]byte)}
}

func (s *memoryStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	payload, ok := s.entries[key]
	return payload, ok
}

func (s *memoryStore) Put(key string, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = payload
}

type recordingHandler struct {
	mu       sync.Mutex
	statuses []string
	retries  int
	hits     int
	misses   int
}

func (h *recordingHandler) OnRequest(status string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func (h *recordingHandler) OnRetry() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.retries++
}

func (h *recordingHandler) OnCacheLookup(hit bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if hit {
		h.hits++
	} else {
		h.misses++
	}
}

type payload struct {
	Status string `json:"status"`
}

// newTestClient returns a client whose waits are recorded instead of slept
func newTestClient(store *memoryStore, handler IHttpStatusHandler) (*HTTPClientWithRetries, *[]time.Duration) {
	client := NewHTTPClientWithRetries(DefaultRetryOptions(), store, handler, nil)
	waits := &[]time.Duration{}
	client.sleep = func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return ctx.Err()
	}
	return client, waits
}

func countingServer(t *testing.T, handler func(attempt int32, w http.ResponseWriter)) (*httptest.Server, *int32) {
	t.Helper()
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler(atomic.AddInt32(&attempts, 1), w)
	}))
	t.Cleanup(server.Close)
	return server, &attempts
}

func TestFetch_CacheHitSkipsNetwork(t *testing.T) {
	server, attempts := countingServer(t, func(_ int32, w http.ResponseWriter) {
		w.Write([]byte(`{"status":"network"}`))
	})

	store := newMemoryStore()
	store.Put("search_btc", []byte(`{"status":"cached"}`))
	handler := &recordingHandler{}
	client, _ := newTestClient(store, handler)

	rb := NewCoingeckoRequestBuilder(server.URL, "/search").With("query", "btc")
	result, err := Fetch[payload](context.Background(), client, rb, FetchOptions{CacheKey: "search_btc"})

	require.NoError(t, err)
	assert.Equal(t, "cached", result.Status)
	assert.Equal(t, int32(0), atomic.LoadInt32(attempts))
	assert.Equal(t, 1, handler.hits)
	assert.Empty(t, handler.statuses)
}

func TestFetch_SuccessStoresRawBody(t *testing.T) {
	body := `{"status":"ok","extra":[1,2,3]}`
	server, attempts := countingServer(t, func(_ int32, w http.ResponseWriter) {
		w.Write([]byte(body))
	})

	store := newMemoryStore()
	handler := &recordingHandler{}
	client, waits := newTestClient(store, handler)

	rb := NewCoingeckoRequestBuilder(server.URL, "/ping")
	result, err := Fetch[payload](context.Background(), client, rb, FetchOptions{CacheKey: "ping"})

	require.NoError(t, err)
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, int32(1), atomic.LoadInt32(attempts))
	assert.Empty(t, *waits)
	assert.Equal(t, []byte(body), store.entries["ping"])
	assert.Equal(t, []string{StatusSuccess}, handler.statuses)
	assert.Equal(t, 1, handler.misses)

	// Second call is served from cache
	_, err = Fetch[payload](context.Background(), client, rb, FetchOptions{CacheKey: "ping"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(attempts))
}

func TestFetch_NoCacheKeyAlwaysHitsNetwork(t *testing.T) {
	server, attempts := countingServer(t, func(_ int32, w http.ResponseWriter) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	store := newMemoryStore()
	client, _ := newTestClient(store, nil)
	rb := NewCoingeckoRequestBuilder(server.URL, "/ping")

	for i := 0; i < 2; i++ {
		_, err := Fetch[payload](context.Background(), client, rb, FetchOptions{})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(attempts))
	assert.Zero(t, store.gets)
	assert.Empty(t, store.entries)
}

func TestFetch_RetriesWithLinearBackoff(t *testing.T) {
	server, attempts := countingServer(t, func(attempt int32, w http.ResponseWriter) {
		if attempt <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	})

	handler := &recordingHandler{}
	client, waits := newTestClient(newMemoryStore(), handler)
	rb := NewCoingeckoRequestBuilder(server.URL, "/ping")

	result, err := Fetch[payload](context.Background(), client, rb, FetchOptions{Retries: 3, Delay: 1000 * time.Millisecond})

	require.NoError(t, err)
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, int32(3), atomic.LoadInt32(attempts))
	assert.Equal(t, []time.Duration{1000 * time.Millisecond, 2000 * time.Millisecond}, *waits)
	assert.Equal(t, 2, handler.retries)
	assert.Equal(t, []string{StatusError, StatusError, StatusSuccess}, handler.statuses)
}

func TestFetch_RetriesExhausted(t *testing.T) {
	server, attempts := countingServer(t, func(_ int32, w http.ResponseWriter) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	store := newMemoryStore()
	client, waits := newTestClient(store, nil)
	rb := NewCoingeckoRequestBuilder(server.URL, "/coins/markets")

	_, err := Fetch[[]payload](context.Background(), client, rb, FetchOptions{CacheKey: "coins_usd_1"})

	require.Error(t, err)
	assert.Equal(t, "failed to fetch data after retries", err.Error())
	assert.True(t, errors.Is(err, ErrRetriesExhausted))

	var exhausted *RetriesExhaustedError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, 3, exhausted.Attempts)
	assert.Contains(t, exhausted.LastErr.Error(), "HTTP 500")

	assert.Equal(t, int32(3), atomic.LoadInt32(attempts))
	assert.Equal(t, []time.Duration{1000 * time.Millisecond, 2000 * time.Millisecond}, *waits)
	assert.Empty(t, store.entries)
}

func TestFetch_DecodeFailureIsRetried(t *testing.T) {
	server, attempts := countingServer(t, func(attempt int32, w http.ResponseWriter) {
		if attempt == 1 {
			w.Write([]byte(`<html>maintenance</html>`))
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	})

	store := newMemoryStore()
	handler := &recordingHandler{}
	client, waits := newTestClient(store, handler)
	rb := NewCoingeckoRequestBuilder(server.URL, "/ping")

	result, err := Fetch[payload](context.Background(), client, rb, FetchOptions{Delay: 10 * time.Millisecond, CacheKey: "ping"})

	require.NoError(t, err)
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, int32(2), atomic.LoadInt32(attempts))
	assert.Equal(t, []time.Duration{10 * time.Millisecond}, *waits)
	assert.Equal(t, []string{StatusDecodeError, StatusSuccess}, handler.statuses)
	assert.Equal(t, []byte(`{"status":"ok"}`), store.entries["ping"])
}

func TestFetch_CorruptCacheEntryFallsThrough(t *testing.T) {
	server, attempts := countingServer(t, func(_ int32, w http.ResponseWriter) {
		w.Write([]byte(`{"status":"fresh"}`))
	})

	store := newMemoryStore()
	store.Put("ping", []byte(`not json`))
	client, _ := newTestClient(store, nil)
	rb := NewCoingeckoRequestBuilder(server.URL, "/ping")

	result, err := Fetch[payload](context.Background(), client, rb, FetchOptions{CacheKey: "ping"})

	require.NoError(t, err)
	assert.Equal(t, "fresh", result.Status)
	assert.Equal(t, int32(1), atomic.LoadInt32(attempts))
	assert.Equal(t, []byte(`{"status":"fresh"}`), store.entries["ping"])
}

func TestFetch_RateLimitedStatus(t *testing.T) {
	server, _ := countingServer(t, func(_ int32, w http.ResponseWriter) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	handler := &recordingHandler{}
	client, _ := newTestClient(newMemoryStore(), handler)
	rb := NewCoingeckoRequestBuilder(server.URL, "/ping")

	_, err := Fetch[payload](context.Background(), client, rb, FetchOptions{Retries: 2})

	require.Error(t, err)
	var exhausted *RetriesExhaustedError
	require.True(t, errors.As(err, &exhausted))
	assert.Contains(t, exhausted.LastErr.Error(), "rate limit exceeded")
	assert.Equal(t, []string{StatusRateLimited, StatusRateLimited}, handler.statuses)
}

func TestFetch_ZeroRetriesMakesOneAttempt(t *testing.T) {
	server, attempts := countingServer(t, func(_ int32, w http.ResponseWriter) {
		w.WriteHeader(http.StatusBadGateway)
	})

	client, waits := newTestClient(newMemoryStore(), nil)
	client.Opts.MaxRetries = 0
	rb := NewCoingeckoRequestBuilder(server.URL, "/ping")

	_, err := Fetch[payload](context.Background(), client, rb, FetchOptions{})

	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, int32(1), atomic.LoadInt32(attempts))
	assert.Empty(t, *waits)
}

func TestFetch_ConnectionFailure(t *testing.T) {
	client, waits := newTestClient(newMemoryStore(), nil)
	rb := NewCoingeckoRequestBuilder("http://127.0.0.1:1", "/ping")

	_, err := Fetch[payload](context.Background(), client, rb, FetchOptions{Retries: 2, Delay: time.Millisecond})

	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, []time.Duration{time.Millisecond}, *waits)
}

func TestFetch_CancelledDuringBackoff(t *testing.T) {
	server, attempts := countingServer(t, func(_ int32, w http.ResponseWriter) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	client := NewHTTPClientWithRetries(DefaultRetryOptions(), newMemoryStore(), nil, nil)
	rb := NewCoingeckoRequestBuilder(server.URL, "/ping")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Fetch[payload](ctx, client, rb, FetchOptions{Retries: 3, Delay: 10 * time.Second})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, errors.Is(err, ErrRetriesExhausted))
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, int32(1), atomic.LoadInt32(attempts))
}

func TestFetch_WaitsOnHostLimiter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server, attempts := countingServer(t, func(_ int32, w http.ResponseWriter) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	limiter := rate.NewLimiter(rate.Inf, 1)
	manager := mock_coingecko_common.NewMockIRateLimiterManager(ctrl)
	manager.EXPECT().
		GetLimiterForURL(gomock.Any()).
		DoAndReturn(func(u *url.URL) *rate.Limiter {
			assert.Equal(t, "/ping", u.Path)
			return limiter
		}).
		Times(1)

	client := NewHTTPClientWithRetries(DefaultRetryOptions(), newMemoryStore(), nil, manager)
	rb := NewCoingeckoRequestBuilder(server.URL, "/ping")

	_, err := Fetch[payload](context.Background(), client, rb, FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(attempts))
}

func TestFetch_LimiterWaitFailureEndsCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server, attempts := countingServer(t, func(_ int32, w http.ResponseWriter) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Burst of zero can never be satisfied, so Wait fails immediately
	limiter := rate.NewLimiter(rate.Limit(1), 0)
	manager := mock_coingecko_common.NewMockIRateLimiterManager(ctrl)
	manager.EXPECT().GetLimiterForURL(gomock.Any()).Return(limiter).Times(1)

	client, waits := newTestClient(newMemoryStore(), nil)
	client.LimiterManager = manager
	rb := NewCoingeckoRequestBuilder(server.URL, "/ping")

	_, err := Fetch[payload](context.Background(), client, rb, FetchOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter wait failed")
	assert.Equal(t, int32(0), atomic.LoadInt32(attempts))
	assert.Empty(t, *waits)
}

func TestRetryOptionsFromConfig(t *testing.T) {
	opts := DefaultRetryOptions()
	assert.Equal(t, 3, opts.MaxRetries)
	assert.Equal(t, time.Second, opts.BaseBackoff)

	cfg := config.GetDefaultCoingeckoConfig()
	opts = RetryOptionsFromConfig(cfg, config.RetryPolicy{Retries: 5, Delay: 1200 * time.Millisecond}, "history")
	assert.Equal(t, 5, opts.MaxRetries)
	assert.Equal(t, 1200*time.Millisecond, opts.BaseBackoff)
	assert.Equal(t, "history", opts.LogPrefix)
	assert.Equal(t, cfg.ConnectionTimeout, opts.ConnectionTimeout)

	opts = RetryOptionsFromConfig(cfg, config.RetryPolicy{}, "search")
	assert.Equal(t, DEFAULT_RETRIES, opts.MaxRetries)
	assert.Equal(t, time.Second, opts.BaseBackoff)
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
	assert.ErrorIs(t, sleepContext(ctx, 0), context.Canceled)
}
