package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisBackend_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	backend, err := NewRedisBackend(ctx, RedisConfig{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	require.Error(t, err)
	assert.Nil(t, backend)
	assert.Contains(t, err.Error(), "redis ping")
}

func TestRedisBackend_KeyPrefix(t *testing.T) {
	backend := &RedisBackend{prefix: "dash:"}
	assert.Equal(t, "dash:coins_usd_1", backend.key("coins_usd_1"))
	assert.Equal(t, BackendRedis, backend.Name())
}
