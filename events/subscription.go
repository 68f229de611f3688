package events

import (
	"context"
	"sync"
)

// ISubscription is one subscriber's view of a stream of values
type ISubscription[T any] interface {
	// Chan delivers the most recent value not yet received. Older undelivered
	// values are replaced, so a slow reader only ever sees the latest one.
	Chan() <-chan T
	// Cancel unsubscribes and closes the channel. Safe for repeated calls
	Cancel()
	// Watch starts a goroutine that calls cb with each value.
	// When parentCtx finishes, the subscription is automatically cancelled
	Watch(parentCtx context.Context, cb func(T)) ISubscription[T]
}

// ISubscriptionManager fans values out to subscribers
type ISubscriptionManager[T any] interface {
	Subscribe() ISubscription[T]
	Emit(ctx context.Context, value T)
	Count() int
}

type Subscription[T any] struct {
	ch     chan T
	mgr    *SubscriptionManager[T]
	cancel context.CancelFunc
	once   sync.Once
}

// Chan returns a read-only channel for self-handling events.
func (s *Subscription[T]) Chan() <-chan T { return s.ch }

// Cancel unsubscribes and closes the channel. Safe for repeated calls.
func (s *Subscription[T]) Cancel() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		s.mgr.unsubscribe(s.ch)
	})
}

// Watch starts a goroutine that calls cb on each value.
func (s *Subscription[T]) Watch(parentCtx context.Context, cb func(T)) ISubscription[T] {
	ctx, cancel := context.WithCancel(parentCtx)
	s.cancel = cancel

	go func(ctx context.Context) {
		defer s.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case value, ok := <-s.ch:
				if !ok {
					return
				}
				cb(value)
			}
		}
	}(ctx)

	return s
}

// SubscriptionManager delivers emitted values to every subscriber without blocking the emitter
type SubscriptionManager[T any] struct {
	mu          sync.Mutex
	subscribers map[chan T]struct{}
	onCount     func(int)
}

func NewSubscriptionManager[T any]() *SubscriptionManager[T] {
	return &SubscriptionManager[T]{
		subscribers: make(map[chan T]struct{}),
	}
}

// OnCountChange registers a callback invoked with the subscriber count after every change
func (m *SubscriptionManager[T]) OnCountChange(cb func(int)) {
	m.mu.Lock()
	m.onCount = cb
	m.mu.Unlock()
}

func (m *SubscriptionManager[T]) Subscribe() ISubscription[T] {
	ch := make(chan T, 1)

	m.mu.Lock()
	m.subscribers[ch] = struct{}{}
	m.notifyCountLocked()
	m.mu.Unlock()

	return &Subscription[T]{ch: ch, mgr: m}
}

func (m *SubscriptionManager[T]) unsubscribe(ch chan T) {
	m.mu.Lock()
	if _, ok := m.subscribers[ch]; ok {
		delete(m.subscribers, ch)
		close(ch)
		m.notifyCountLocked()
	}
	m.mu.Unlock()
}

// Count returns the number of active subscribers
func (m *SubscriptionManager[T]) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subscribers)
}

// Emit hands value to all subscribers. A subscriber that has not consumed
// the previous value gets it replaced by this one.
func (m *SubscriptionManager[T]) Emit(ctx context.Context, value T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for sub := range m.subscribers {
		if ctx.Err() != nil {
			return
		}
		select {
		case sub <- value:
			continue
		default:
		}
		// Replace the stale pending value
		select {
		case <-sub:
		default:
		}
		select {
		case sub <- value:
		default:
		}
	}
}

func (m *SubscriptionManager[T]) notifyCountLocked() {
	if m.onCount != nil {
		m.onCount(len(m.subscribers))
	}
}
