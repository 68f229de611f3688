package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/events"
	"github.com/status-im/market-dashboard/interfaces"
	"github.com/status-im/market-dashboard/logging"
	"github.com/status-im/market-dashboard/metrics"
)

var (
	// ErrNotRunning is returned by Select before Start or after Stop
	ErrNotRunning = errors.New("history tracker is not running")

	// ErrSuperseded is returned by Await when another pair was selected meanwhile
	ErrSuperseded = errors.New("history selection superseded")
)

// Selection identifies one Select call on a HistoryTracker
type Selection struct {
	AssetID    string
	Days       int
	generation uint64
	done       chan struct{}
}

// Done is closed once the fetch for this selection has settled or been superseded
func (s *Selection) Done() <-chan struct{} {
	return s.done
}

// HistoryTracker fetches the history of the (asset, days) pair of interest.
// Every change of pair starts exactly one fetch. A fetch result is applied
// only while its pair is still the selected one, whatever the completion order.
type HistoryTracker struct {
	chart         interfaces.IMarketChartService
	updates       *events.SubscriptionManager[HistoryState]
	metricsWriter *metrics.MetricsWriter
	log           *logrus.Entry

	// emitMu is held across a state change and its emit, so subscribers
	// receive states in the order they were applied. Taken before mu.
	emitMu sync.Mutex

	mu         sync.RWMutex
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	generation uint64
	current    *Selection
	state      HistoryState
}

func NewHistoryTracker(chart interfaces.IMarketChartService, updates *events.SubscriptionManager[HistoryState]) *HistoryTracker {
	return &HistoryTracker{
		chart:         chart,
		updates:       updates,
		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceMarketChart),
		log:           logging.WithComponent("history-tracker"),
		state:         HistoryState{State: pending[interfaces.HistorySeries](nil)},
	}
}

// Start implements core.Interface
func (h *HistoryTracker) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancel != nil {
		return nil
	}
	h.ctx, h.cancel = context.WithCancel(ctx)
	return nil
}

// Stop implements core.Interface. In-flight fetches are cancelled and
// awaited; their results are discarded.
func (h *HistoryTracker) Stop() {
	h.mu.Lock()
	cancel := h.cancel
	h.cancel = nil
	h.generation++
	h.current = nil
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	h.wg.Wait()
}

// Select makes (assetID, days) the pair of interest. Selecting the current
// pair again is a no-op and returns the existing selection.
func (h *HistoryTracker) Select(assetID string, days int) (*Selection, error) {
	assetID = cg.NormalizeParam(assetID)
	if strings.TrimSpace(assetID) == "" {
		return nil, fmt.Errorf("%w: coin ID is required", cg.ErrInvalidParams)
	}
	if days < 1 {
		return nil, fmt.Errorf("%w: days must be at least 1, got %d", cg.ErrInvalidParams, days)
	}

	h.emitMu.Lock()
	defer h.emitMu.Unlock()

	h.mu.Lock()
	if h.cancel == nil {
		h.mu.Unlock()
		return nil, ErrNotRunning
	}
	if h.current != nil && h.current.AssetID == assetID && h.current.Days == days {
		sel := h.current
		h.mu.Unlock()
		return sel, nil
	}

	h.generation++
	sel := &Selection{
		AssetID:    assetID,
		Days:       days,
		generation: h.generation,
		done:       make(chan struct{}),
	}
	h.current = sel
	state := HistoryState{AssetID: assetID, Days: days, State: pending[interfaces.HistorySeries](nil)}
	h.state = state
	ctx := h.ctx
	h.wg.Add(1)
	h.mu.Unlock()

	h.log.WithFields(logrus.Fields{"id": assetID, "days": days}).Debug("History pair selected")
	h.emit(ctx, state)

	go h.fetch(ctx, sel)
	return sel, nil
}

// Await waits for sel to settle and returns its state
func (h *HistoryTracker) Await(ctx context.Context, sel *Selection) (HistoryState, error) {
	select {
	case <-ctx.Done():
		return HistoryState{}, ctx.Err()
	case <-sel.done:
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current != sel {
		return HistoryState{}, ErrSuperseded
	}
	return h.state, nil
}

// State returns the state of the current pair
func (h *HistoryTracker) State() HistoryState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

func (h *HistoryTracker) fetch(ctx context.Context, sel *Selection) {
	defer h.wg.Done()
	defer close(sel.done)
	defer h.metricsWriter.TrackDataFetchCycle()()

	series, err := h.chart.History(ctx, sel.AssetID, sel.Days)

	var state HistoryState
	if err != nil {
		state = HistoryState{AssetID: sel.AssetID, Days: sel.Days, State: failed[interfaces.HistorySeries](err)}
	} else {
		state = HistoryState{AssetID: sel.AssetID, Days: sel.Days, State: succeeded(series)}
	}

	h.emitMu.Lock()
	defer h.emitMu.Unlock()

	h.mu.Lock()
	if sel.generation != h.generation {
		h.mu.Unlock()
		h.log.WithFields(logrus.Fields{"id": sel.AssetID, "days": sel.Days}).Debug("Discarding superseded history result")
		return
	}
	h.state = state
	h.mu.Unlock()

	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{"id": sel.AssetID, "days": sel.Days}).Warn("History fetch failed")
	}
	h.emit(ctx, state)
}

func (h *HistoryTracker) emit(ctx context.Context, state HistoryState) {
	if h.updates != nil {
		h.updates.Emit(ctx, state)
	}
}
