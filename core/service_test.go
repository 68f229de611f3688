package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// StopRecorder records the order of core stops
type StopRecorder struct {
	mu        sync.Mutex
	stopOrder []string
}

func (r *StopRecorder) RecordStop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopOrder = append(r.stopOrder, id)
}

func (r *StopRecorder) GetStopOrder() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.stopOrder...)
}

// recordingService records its lifecycle calls
type recordingService struct {
	id         string
	recorder   *StopRecorder
	startError error

	mu      sync.Mutex
	started bool
}

func newRecordingService(id string, recorder *StopRecorder) *recordingService {
	return &recordingService{id: id, recorder: recorder}
}

func (s *recordingService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true
	return s.startError
}

func (s *recordingService) Stop() {
	s.recorder.RecordStop(s.id)
}

func (s *recordingService) WasStarted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()
	require.NotNil(t, registry)
	assert.Empty(t, registry.services)
}

func TestRegister(t *testing.T) {
	registry := NewRegistry()
	recorder := &StopRecorder{}

	registry.Register(newRecordingService("cache", recorder))
	assert.Len(t, registry.services, 1)

	registry.Register(newRecordingService("dashboard", recorder))
	assert.Len(t, registry.services, 2)
}

func TestStartAll(t *testing.T) {
	registry := NewRegistry()
	recorder := &StopRecorder{}

	cacheService := newRecordingService("cache", recorder)
	dashboardService := newRecordingService("dashboard", recorder)
	registry.Register(cacheService)
	registry.Register(dashboardService)

	require.NoError(t, registry.StartAll(context.Background()))
	assert.True(t, cacheService.WasStarted())
	assert.True(t, dashboardService.WasStarted())
	assert.Empty(t, recorder.GetStopOrder())
}

func TestStartAllError(t *testing.T) {
	registry := NewRegistry()
	recorder := &StopRecorder{}

	cacheService := newRecordingService("cache", recorder)
	dashboardService := newRecordingService("dashboard", recorder)
	apiService := newRecordingService("api", recorder)
	apiService.startError = errors.New("start error")
	lateService := newRecordingService("late", recorder)

	registry.Register(cacheService)
	registry.Register(dashboardService)
	registry.Register(apiService)
	registry.Register(lateService)

	err := registry.StartAll(context.Background())
	assert.Equal(t, apiService.startError, err)
	assert.False(t, lateService.WasStarted())

	// Only the services started before the failure are stopped, newest first
	assert.Equal(t, []string{"dashboard", "cache"}, recorder.GetStopOrder())
}

func TestStopAllInReverseOrder(t *testing.T) {
	registry := NewRegistry()
	recorder := &StopRecorder{}

	registry.Register(newRecordingService("service1", recorder))
	registry.Register(newRecordingService("service2", recorder))
	registry.Register(newRecordingService("service3", recorder))

	registry.StopAll()

	assert.Equal(t, []string{"service3", "service2", "service1"}, recorder.GetStopOrder())
}
