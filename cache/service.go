package cache

import (
	"context"
	"fmt"

	"github.com/status-im/market-dashboard/logging"
	"github.com/status-im/market-dashboard/metrics"
)

var log = logging.WithComponent("cache")

// Service implements Store with a go-cache layer in front of an optional
// persistent Backend
type Service struct {
	goCache *GoCache
	backend Backend
	config  Config
}

// NewService creates a cache service. A nil backend keeps entries in memory only.
func NewService(config Config, backend Backend) *Service {
	return &Service{
		goCache: NewGoCache(),
		backend: backend,
		config:  config,
	}
}

// OpenBackend creates the persistent backend selected by config.
// The memory backend returns a nil Backend.
func OpenBackend(ctx context.Context, config Config) (Backend, error) {
	switch config.Backend {
	case BackendMemory, "":
		return nil, nil
	case BackendSQLite:
		backend, err := NewSQLiteBackend(config.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return backend, nil
	case BackendRedis:
		backend, err := NewRedisBackend(ctx, config.Redis)
		if err != nil {
			return nil, err
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("unknown cache backend '%s'", config.Backend)
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.goCache == nil {
		return fmt.Errorf("cache service not properly initialized")
	}
	backendName := BackendMemory
	if s.backend != nil {
		backendName = s.backend.Name()
	}
	log.WithField("backend", backendName).Info("Response cache ready")
	return nil
}

// Stop implements core.Interface. Persisted entries are kept.
func (s *Service) Stop() {
	if s.backend != nil {
		if err := s.backend.Close(); err != nil {
			log.WithError(err).Warn("Failed to close cache backend")
		}
	}
}

// Get returns the payload for key from memory, falling back to the persistent backend
func (s *Service) Get(key string) ([]byte, bool) {
	if payload, ok := s.goCache.Get(key); ok {
		return payload, true
	}
	if s.backend == nil {
		return nil, false
	}

	ctx, cancel := s.operationContext()
	defer cancel()

	payload, found, err := s.backend.Load(ctx, key)
	if err != nil {
		metrics.RecordCacheBackendError(s.backend.Name(), "load")
		log.WithError(err).WithField("key", key).Warn("Persistent cache read failed, treating as miss")
		return nil, false
	}
	if !found {
		return nil, false
	}

	s.goCache.Set(key, payload)
	metrics.RecordCacheItems(s.goCache.ItemCount())
	return payload, true
}

// Put stores payload under key in memory and in the persistent backend.
// A backend failure is logged and otherwise ignored.
func (s *Service) Put(key string, payload []byte) {
	s.goCache.Set(key, payload)
	metrics.RecordCacheItems(s.goCache.ItemCount())

	if s.backend == nil {
		return
	}

	ctx, cancel := s.operationContext()
	defer cancel()

	if err := s.backend.Save(ctx, key, payload); err != nil {
		metrics.RecordCacheBackendError(s.backend.Name(), "save")
		log.WithError(err).WithField("key", key).Warn("Persistent cache write failed, ignoring")
	}
}

// Delete removes items from cache by keys
func (s *Service) Delete(keys []string) {
	s.goCache.Delete(keys)
	metrics.RecordCacheItems(s.goCache.ItemCount())

	if s.backend == nil {
		return
	}

	ctx, cancel := s.operationContext()
	defer cancel()

	if err := s.backend.Delete(ctx, keys); err != nil {
		metrics.RecordCacheBackendError(s.backend.Name(), "delete")
		log.WithError(err).Warn("Persistent cache delete failed")
	}
}

// Clear removes all items from both layers
func (s *Service) Clear() {
	s.goCache.Clear()
	metrics.RecordCacheItems(0)

	if s.backend == nil {
		return
	}

	ctx, cancel := s.operationContext()
	defer cancel()

	if err := s.backend.Clear(ctx); err != nil {
		metrics.RecordCacheBackendError(s.backend.Name(), "clear")
		log.WithError(err).Warn("Persistent cache clear failed")
	}
}

// Stats returns statistics about the cache service
func (s *Service) Stats() ServiceStats {
	stats := ServiceStats{
		GoCacheItems: s.goCache.ItemCount(),
		Backend:      BackendMemory,
	}
	if s.backend == nil {
		return stats
	}

	stats.Backend = s.backend.Name()

	ctx, cancel := s.operationContext()
	defer cancel()

	if count, err := s.backend.Count(ctx); err == nil {
		stats.PersistentItems = count
	} else {
		log.WithError(err).Warn("Failed to count persistent cache entries")
	}
	return stats
}

// ServiceStats represents cache service statistics
type ServiceStats struct {
	GoCacheItems    int    `json:"memory_items"`     // Number of items in go-cache
	PersistentItems int    `json:"persistent_items"` // Number of items in the persistent backend
	Backend         string `json:"backend"`
}

func (s *Service) operationContext() (context.Context, context.CancelFunc) {
	if s.config.OperationTimeout > 0 {
		return context.WithTimeout(context.Background(), s.config.OperationTimeout)
	}
	return context.WithCancel(context.Background())
}
