package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingBackend fails every operation
type failingBackend struct {
	saves int
}

func (f *failingBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errors.New("disk unavailable")
}

func (f *failingBackend) Save(ctx context.Context, key string, payload []byte) error {
	f.saves++
	return errors.New("quota exceeded")
}

func (f *failingBackend) Delete(ctx context.Context, keys []string) error {
	return errors.New("disk unavailable")
}

func (f *failingBackend) Clear(ctx context.Context) error { return errors.New("disk unavailable") }

func (f *failingBackend) Count(ctx context.Context) (int, error) {
	return 0, errors.New("disk unavailable")
}

func (f *failingBackend) Name() string { return "failing" }

func (f *failingBackend) Close() error { return nil }

func TestService_MemoryOnly(t *testing.T) {
	service := NewService(DefaultCacheConfig(), nil)
	require.NoError(t, service.Start(context.Background()))

	_, found := service.Get("coins_usd_1")
	assert.False(t, found)

	service.Put("coins_usd_1", []byte(`[1]`))

	payload, found := service.Get("coins_usd_1")
	assert.True(t, found)
	assert.Equal(t, []byte(`[1]`), payload)

	stats := service.Stats()
	assert.Equal(t, 1, stats.GoCacheItems)
	assert.Equal(t, BackendMemory, stats.Backend)
}

func TestService_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	config := DefaultCacheConfig()
	config.SQLite.Path = path

	backend, err := OpenBackend(context.Background(), config)
	require.NoError(t, err)
	first := NewService(config, backend)
	first.Put("search_bitcoin", []byte(`{"coins":[]}`))
	first.Stop()

	backend, err = OpenBackend(context.Background(), config)
	require.NoError(t, err)
	second := NewService(config, backend)
	defer second.Stop()

	assert.Equal(t, 0, second.Stats().GoCacheItems)

	payload, found := second.Get("search_bitcoin")
	assert.True(t, found)
	assert.Equal(t, []byte(`{"coins":[]}`), payload)

	// the hit is promoted into memory
	stats := second.Stats()
	assert.Equal(t, 1, stats.GoCacheItems)
	assert.Equal(t, 1, stats.PersistentItems)
	assert.Equal(t, BackendSQLite, stats.Backend)
}

func TestService_BackendFailuresAreSwallowed(t *testing.T) {
	backend := &failingBackend{}
	service := NewService(DefaultCacheConfig(), backend)

	assert.NotPanics(t, func() {
		service.Put("details_bitcoin", []byte(`{}`))
	})
	assert.Equal(t, 1, backend.saves)

	// the memory layer still serves the entry
	payload, found := service.Get("details_bitcoin")
	assert.True(t, found)
	assert.Equal(t, []byte(`{}`), payload)

	// a backend read failure is a miss, not an error
	_, found = service.Get("details_ethereum")
	assert.False(t, found)

	assert.NotPanics(t, func() {
		service.Delete([]string{"details_bitcoin"})
		service.Clear()
	})
	assert.Equal(t, 0, service.Stats().PersistentItems)
}

func TestService_ClearAndDelete(t *testing.T) {
	config := DefaultCacheConfig()
	config.SQLite.Path = filepath.Join(t.TempDir(), "cache.db")
	backend, err := OpenBackend(context.Background(), config)
	require.NoError(t, err)
	service := NewService(config, backend)
	defer service.Stop()

	service.Put("key1", []byte("value1"))
	service.Put("key2", []byte("value2"))
	service.Put("key3", []byte("value3"))

	service.Delete([]string{"key1", "key3"})
	stats := service.Stats()
	assert.Equal(t, 1, stats.GoCacheItems)
	assert.Equal(t, 1, stats.PersistentItems)

	service.Clear()
	stats = service.Stats()
	assert.Equal(t, 0, stats.GoCacheItems)
	assert.Equal(t, 0, stats.PersistentItems)

	_, found := service.Get("key2")
	assert.False(t, found)
}

func TestOpenBackend(t *testing.T) {
	backend, err := OpenBackend(context.Background(), Config{Backend: BackendMemory})
	assert.NoError(t, err)
	assert.Nil(t, backend)

	_, err = OpenBackend(context.Background(), Config{Backend: "etcd"})
	assert.Error(t, err)
}
