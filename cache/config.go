package cache

import (
	"fmt"
	"time"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config represents cache configuration
type Config struct {
	// Backend selects the persistent layer: memory, sqlite or redis.
	// The in-memory go-cache layer is always present.
	Backend string `yaml:"backend"`

	SQLite SQLiteConfig `yaml:"sqlite"`
	Redis  RedisConfig  `yaml:"redis"`

	// OperationTimeout bounds a single read or write against the persistent layer
	OperationTimeout time.Duration `yaml:"operation_timeout"`
}

// SQLiteConfig configuration for the SQLite file backend
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// RedisConfig configuration for the Redis backend
type RedisConfig struct {
	Addr        string        `yaml:"addr"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db"`
	KeyPrefix   string        `yaml:"key_prefix"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() Config {
	return Config{
		Backend: BackendSQLite,
		SQLite: SQLiteConfig{
			Path: "data/cache.db",
		},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			KeyPrefix:   "market-dashboard:",
			DialTimeout: 2 * time.Second,
		},
		OperationTimeout: 2 * time.Second,
	}
}

// Validate checks that the selected backend has what it needs
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory, "":
		return nil
	case BackendSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("cache.sqlite.path is required for the sqlite backend")
		}
		return nil
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("cache.redis.addr is required for the redis backend")
		}
		return nil
	default:
		return fmt.Errorf("unknown cache backend '%s'", c.Backend)
	}
}
