package coingecko_common

import (
	"math"
	"net/url"
	"sync"

	"github.com/status-im/market-dashboard/config"
	"golang.org/x/time/rate"
)

// IRateLimiterManager provides a way to get a rate limiter for a request URL
//
//go:generate mockgen -destination=mocks/rate_limiter_manager.go . IRateLimiterManager
type IRateLimiterManager interface {
	GetLimiterForURL(u *url.URL) *rate.Limiter
}

// RateLimiterManager hands out one limiter per upstream host
type RateLimiterManager struct {
	mu            sync.Mutex
	hostToLimiter map[string]*rate.Limiter
	config        config.RateLimit
}

// NewRateLimiterManager creates a manager; a zero RateLimitPerMinute disables limiting
func NewRateLimiterManager(cfg config.RateLimit) *RateLimiterManager {
	return &RateLimiterManager{
		hostToLimiter: make(map[string]*rate.Limiter),
		config:        cfg,
	}
}

// GetLimiterForURL returns the limiter shared by all requests to the URL's host
func (m *RateLimiterManager) GetLimiterForURL(u *url.URL) *rate.Limiter {
	if m == nil || u == nil || m.config.RateLimitPerMinute <= 0 {
		return nil
	}

	host := u.Hostname()

	m.mu.Lock()
	defer m.mu.Unlock()

	if lim, ok := m.hostToLimiter[host]; ok {
		return lim
	}

	limit := rate.Limit(float64(m.config.RateLimitPerMinute) / 60.0)
	burst := m.config.Burst
	if burst <= 0 {
		burst = defaultBurstForLimit(limit)
	}
	limiter := rate.NewLimiter(limit, burst)
	m.hostToLimiter[host] = limiter
	return limiter
}

func defaultBurstForLimit(limit rate.Limit) int {
	if limit <= 1.0 {
		return 1
	}
	return int(math.Ceil(float64(limit)))
}
