package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/status-im/market-dashboard/logging"
)

// Scheduler runs a task on a fixed interval and on demand. All runs happen
// on one goroutine, so a task never overlaps with itself.
type Scheduler struct {
	name     string
	interval time.Duration
	task     func(context.Context)
	trigger  chan struct{}
	log      *logrus.Entry

	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// New creates a new Scheduler instance
func New(name string, interval time.Duration, task func(context.Context)) *Scheduler {
	return &Scheduler{
		name:     name,
		interval: interval,
		task:     task,
		trigger:  make(chan struct{}, 1),
		log:      logging.WithComponent("scheduler").WithField("task", name),
	}
}

// Start begins executing the task at the specified interval
func (s *Scheduler) Start(ctx context.Context, firstRunImmediately bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	// Drop triggers left over from a previous run
	select {
	case <-s.trigger:
	default:
	}

	s.log.WithField("interval", s.interval).Debug("Scheduler started")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if firstRunImmediately {
			s.run(ctx)
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.run(ctx)
			case <-s.trigger:
				s.run(ctx)
			}
		}
	}()
}

// Trigger requests an extra run outside the interval. Requests made while a
// run is pending are coalesced. Returns false when the scheduler is stopped.
func (s *Scheduler) Trigger() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return false
	}

	select {
	case s.trigger <- struct{}{}:
	default:
	}
	return true
}

// Stop cancels the running task and waits for the loop to exit. No run
// starts after Stop returns.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.running = false
	s.mu.Unlock()

	s.wg.Wait()
	s.log.Debug("Scheduler stopped")
}

// IsRunning returns true if the task is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	s.task(ctx)
}
