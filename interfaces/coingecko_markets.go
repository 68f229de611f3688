package interfaces

import "context"

//go:generate mockgen -destination=mocks/coingecko_markets.go . IMarketsService

// IMarketsService lists top assets by market data
type IMarketsService interface {
	// TopAssets returns one page of assets with the pinned asset moved to the front
	TopAssets(ctx context.Context, params ListParams) ([]AssetSummary, error)
}

// ListParams represents parameters for listing requests
type ListParams struct {
	// Currency to compare against (e.g., "usd", "eur", "btc")
	Currency string `json:"vs_currency"`

	// Order specifies sorting order (e.g., "market_cap_desc", "volume_desc")
	Order string `json:"order"`

	// PerPage specifies number of results per page (1-250)
	PerPage int `json:"per_page,omitempty"`

	// Page number for pagination (1-based)
	Page int `json:"page,omitempty"`
}
