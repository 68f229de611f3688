package config

import (
	"fmt"
	"time"
)

const DefaultCoingeckoBaseURL = "https://api.coingecko.com/api/v3"

// RetryPolicy is the number of attempts and the base backoff delay of one operation
type RetryPolicy struct {
	Retries int           `yaml:"retries"`
	Delay   time.Duration `yaml:"delay"`
}

// RateLimit represents a simple rpm + burst pair. Zero rpm disables limiting.
type RateLimit struct {
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
	Burst              int `yaml:"burst"`
}

// CoingeckoFetcher configures access to the CoinGecko API
type CoingeckoFetcher struct {
	BaseURL           string        `yaml:"base_url"`
	UserAgent         string        `yaml:"user_agent"`
	ConnectionTimeout time.Duration `yaml:"connection_timeout"`
	// RequestTimeout bounds one attempt; zero leaves it to the transport
	RequestTimeout time.Duration `yaml:"request_timeout"`
	RateLimit      RateLimit     `yaml:"rate_limit"`

	Markets     RetryPolicy `yaml:"markets"`
	MarketChart RetryPolicy `yaml:"market_chart"`
	Coins       RetryPolicy `yaml:"coins"`
	Search      RetryPolicy `yaml:"search"`
}

// GetDefaultCoingeckoConfig returns the per-operation retry policies used by the dashboard
func GetDefaultCoingeckoConfig() CoingeckoFetcher {
	return CoingeckoFetcher{
		BaseURL:           DefaultCoingeckoBaseURL,
		UserAgent:         "Mozilla/5.0 Market-Dashboard",
		ConnectionTimeout: 10 * time.Second,
		Markets:           RetryPolicy{Retries: 3, Delay: 1500 * time.Millisecond},
		MarketChart:       RetryPolicy{Retries: 3, Delay: 1200 * time.Millisecond},
		Coins:             RetryPolicy{Retries: 3, Delay: 1500 * time.Millisecond},
		Search:            RetryPolicy{Retries: 3, Delay: 1000 * time.Millisecond},
	}
}

// Validate validates the CoingeckoFetcher configuration
func (c *CoingeckoFetcher) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url cannot be empty")
	}
	policies := map[string]RetryPolicy{
		"markets":      c.Markets,
		"market_chart": c.MarketChart,
		"coins":        c.Coins,
		"search":       c.Search,
	}
	for name, policy := range policies {
		if policy.Retries < 1 {
			return fmt.Errorf("%s.retries must be at least 1, got %d", name, policy.Retries)
		}
		if policy.Delay < 0 {
			return fmt.Errorf("%s.delay cannot be negative", name)
		}
	}
	if c.RateLimit.RateLimitPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit values cannot be negative")
	}
	return nil
}
