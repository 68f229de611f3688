package dashboard

import (
	"time"

	"github.com/status-im/market-dashboard/interfaces"
)

// Status is the outcome of the latest fetch behind a State
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// State is what the UI renders for one data source. Data is nil until a
// fetch succeeds and is cleared again when a later fetch fails.
type State[T any] struct {
	Status    Status    `json:"status"`
	Data      *T        `json:"data"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func pending[T any](previous *T) State[T] {
	return State[T]{Status: StatusPending, Data: previous, UpdatedAt: time.Now()}
}

func succeeded[T any](data T) State[T] {
	return State[T]{Status: StatusSucceeded, Data: &data, UpdatedAt: time.Now()}
}

func failed[T any](err error) State[T] {
	return State[T]{Status: StatusFailed, Error: err.Error(), UpdatedAt: time.Now()}
}

// ListingState is the state of the top assets listing
type ListingState = State[[]interfaces.AssetSummary]

// HistoryState is the state of the selected asset history
type HistoryState struct {
	AssetID string `json:"id"`
	Days    int    `json:"days"`
	State[interfaces.HistorySeries]
}
