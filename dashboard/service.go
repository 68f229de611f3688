package dashboard

import (
	"context"
	"sync"

	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/events"
	"github.com/status-im/market-dashboard/interfaces"
	"github.com/status-im/market-dashboard/metrics"
)

// Update is one message of the dashboard stream. It carries the latest
// state of both the listing and the history, so a newer update never hides
// an unread change of the other.
type Update struct {
	Listing ListingState `json:"listing"`
	History HistoryState `json:"history"`
}

// Service runs the listing refresher and the history tracker and fans their
// state changes out to stream subscribers
type Service struct {
	Listing *ListingRefresher
	History *HistoryTracker

	config  config.Dashboard
	client  interfaces.IMarketDataClient
	updates *events.SubscriptionManager[Update]

	listingUpdates *events.SubscriptionManager[ListingState]
	historyUpdates *events.SubscriptionManager[HistoryState]
	cancel         context.CancelFunc

	mu     sync.Mutex
	latest Update
}

func NewService(cfg config.Dashboard, client interfaces.IMarketDataClient) *Service {
	listingUpdates := events.NewSubscriptionManager[ListingState]()
	historyUpdates := events.NewSubscriptionManager[HistoryState]()

	updates := events.NewSubscriptionManager[Update]()
	updates.OnCountChange(metrics.RecordStreamClients)

	return &Service{
		Listing:        NewListingRefresher(client, cfg, listingUpdates),
		History:        NewHistoryTracker(client, historyUpdates),
		config:         cfg,
		client:         client,
		updates:        updates,
		listingUpdates: listingUpdates,
		historyUpdates: historyUpdates,
		latest: Update{
			Listing: pending[[]interfaces.AssetSummary](nil),
			History: HistoryState{State: pending[interfaces.HistorySeries](nil)},
		},
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	s.listingUpdates.Subscribe().Watch(ctx, func(state ListingState) {
		s.publish(ctx, func(u *Update) { u.Listing = state })
	})
	s.historyUpdates.Subscribe().Watch(ctx, func(state HistoryState) {
		s.publish(ctx, func(u *Update) { u.History = state })
	})

	if err := s.History.Start(ctx); err != nil {
		return err
	}
	return s.Listing.Start(ctx)
}

// Stop implements core.Interface
func (s *Service) Stop() {
	s.Listing.Stop()
	s.History.Stop()
	if s.cancel != nil {
		s.cancel()
	}
}

// publish applies change to the latest snapshot and emits it. Holding the
// lock across the emit keeps snapshots in the order they were built.
func (s *Service) publish(ctx context.Context, change func(*Update)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	change(&s.latest)
	s.updates.Emit(ctx, s.latest)
}

// Snapshot returns the latest state of both the listing and the history
func (s *Service) Snapshot() Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Subscribe returns a stream of listing and history snapshots, one per change
func (s *Service) Subscribe() events.ISubscription[Update] {
	return s.updates.Subscribe()
}

// Client exposes the market data operations for on-demand calls
func (s *Service) Client() interfaces.IMarketDataClient {
	return s.client
}

// DefaultHistoryDays is used when a history request names no range
func (s *Service) DefaultHistoryDays() int {
	return s.config.HistoryDays
}

// StreamClients returns the number of open stream subscriptions
func (s *Service) StreamClients() int {
	return s.updates.Count()
}
