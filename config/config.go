package config

import (
	"fmt"
	"os"

	"github.com/status-im/market-dashboard/cache"
	"github.com/status-im/market-dashboard/logging"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Coingecko CoingeckoFetcher `yaml:"coingecko"`
	Cache     cache.Config     `yaml:"cache"`
	Dashboard Dashboard        `yaml:"dashboard"`
	Logging   logging.Config   `yaml:"logging"`
	Server    Server           `yaml:"server"`
}

type Server struct {
	Port string `yaml:"port"`
}

// Default returns a configuration that works without a config file
func Default() *Config {
	return &Config{
		Coingecko: GetDefaultCoingeckoConfig(),
		Cache:     cache.DefaultCacheConfig(),
		Dashboard: GetDefaultDashboardConfig(),
		Logging:   logging.DefaultConfig(),
		Server:    Server{Port: "8080"},
	}
}

// LoadConfig reads the YAML file at path on top of the defaults.
// A missing file yields the defaults. PORT, LOG_LEVEL and
// COINGECKO_BASE_URL environment variables override the file.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if baseURL := os.Getenv("COINGECKO_BASE_URL"); baseURL != "" {
		cfg.Coingecko.BaseURL = baseURL
	}
}

// Validate validates every section
func (c *Config) Validate() error {
	if err := c.Coingecko.Validate(); err != nil {
		return fmt.Errorf("coingecko: %w", err)
	}
	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Dashboard.Validate(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server: port is required")
	}
	return nil
}
