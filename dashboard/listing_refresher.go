package dashboard

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/events"
	"github.com/status-im/market-dashboard/interfaces"
	"github.com/status-im/market-dashboard/logging"
	"github.com/status-im/market-dashboard/metrics"
	"github.com/status-im/market-dashboard/scheduler"
)

// ListingRefresher keeps the top assets listing current. It lists once on
// Start, then on every interval tick and on Refetch, until Stop.
type ListingRefresher struct {
	markets       interfaces.IMarketsService
	params        interfaces.ListParams
	scheduler     *scheduler.Scheduler
	updates       *events.SubscriptionManager[ListingState]
	metricsWriter *metrics.MetricsWriter
	log           *logrus.Entry

	mu    sync.RWMutex
	state ListingState
}

// NewListingRefresher creates a refresher listing with the configured defaults
func NewListingRefresher(markets interfaces.IMarketsService, cfg config.Dashboard, updates *events.SubscriptionManager[ListingState]) *ListingRefresher {
	r := &ListingRefresher{
		markets: markets,
		params: interfaces.ListParams{
			Currency: cfg.Currency,
			Order:    cfg.Order,
			PerPage:  cfg.PerPage,
			Page:     cfg.Page,
		},
		updates:       updates,
		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceMarkets),
		log:           logging.WithComponent("listing-refresher"),
		state:         pending[[]interfaces.AssetSummary](nil),
	}
	r.scheduler = scheduler.New("listing", cfg.RefreshInterval, r.refresh)
	return r
}

// Start implements core.Interface
func (r *ListingRefresher) Start(ctx context.Context) error {
	r.scheduler.Start(ctx, true)
	return nil
}

// Stop implements core.Interface. It cancels the in-flight refresh, if any,
// and returns once no further listing request can be made.
func (r *ListingRefresher) Stop() {
	r.scheduler.Stop()
}

// Refetch requests an immediate refresh. Returns false when not running.
func (r *ListingRefresher) Refetch() bool {
	return r.scheduler.Trigger()
}

// State returns the current listing state
func (r *ListingRefresher) State() ListingState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

func (r *ListingRefresher) refresh(ctx context.Context) {
	defer r.metricsWriter.TrackDataFetchCycle()()

	r.mu.RLock()
	previous := r.state.Data
	r.mu.RUnlock()
	r.publish(ctx, pending(previous))

	assets, err := r.markets.TopAssets(ctx, r.params)
	if ctx.Err() != nil {
		// Stopped mid-refresh; leave the state as it was
		return
	}
	if err != nil {
		r.log.WithError(err).Warn("Listing refresh failed")
		r.publish(ctx, failed[[]interfaces.AssetSummary](err))
		return
	}

	r.log.WithField("count", len(assets)).Info("Listing refreshed")
	r.publish(ctx, succeeded(assets))
}

func (r *ListingRefresher) publish(ctx context.Context, state ListingState) {
	r.mu.Lock()
	r.state = state
	r.mu.Unlock()

	if r.updates != nil {
		r.updates.Emit(ctx, state)
	}
}
