package coingecko_markets

import (
	"strconv"

	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/interfaces"
)

const (
	// Path of the markets endpoint relative to the API base URL
	MARKETS_API_PATH = "/coins/markets"
)

// MarketsRequestBuilder implements the Builder pattern for CoinGecko markets API requests
type MarketsRequestBuilder struct {
	*cg.CoingeckoRequestBuilder
}

// NewMarketRequestBuilder creates a new request builder for markets endpoint
func NewMarketRequestBuilder(baseURL string) *MarketsRequestBuilder {
	rb := &MarketsRequestBuilder{
		CoingeckoRequestBuilder: cg.NewCoingeckoRequestBuilder(baseURL, MARKETS_API_PATH),
	}

	// Add default market parameters
	rb.WithCurrency(DEFAULT_CURRENCY)
	rb.WithOrder(DEFAULT_ORDER)
	rb.WithSparkline(false)
	rb.WithPriceChangePercentage("24h")

	return rb
}

// WithPage adds page parameter for pagination
func (rb *MarketsRequestBuilder) WithPage(page int) *MarketsRequestBuilder {
	if page > 0 {
		rb.With("page", strconv.Itoa(page))
	}
	return rb
}

// WithPerPage adds per_page parameter
func (rb *MarketsRequestBuilder) WithPerPage(perPage int) *MarketsRequestBuilder {
	if perPage > 0 {
		rb.With("per_page", strconv.Itoa(perPage))
	}
	return rb
}

// WithOrder adds ordering parameter
func (rb *MarketsRequestBuilder) WithOrder(order string) *MarketsRequestBuilder {
	if order != "" {
		rb.With("order", order)
	}
	return rb
}

// WithSparkline sets the sparkline parameter
func (rb *MarketsRequestBuilder) WithSparkline(enabled bool) *MarketsRequestBuilder {
	rb.With("sparkline", strconv.FormatBool(enabled))
	return rb
}

// WithPriceChangePercentage adds price_change_percentage parameter
func (rb *MarketsRequestBuilder) WithPriceChangePercentage(window string) *MarketsRequestBuilder {
	if window != "" {
		rb.With("price_change_percentage", window)
	}
	return rb
}

// WithParams applies listing parameters on top of the defaults
func (rb *MarketsRequestBuilder) WithParams(params interfaces.ListParams) *MarketsRequestBuilder {
	rb.WithCurrency(params.Currency)
	rb.WithOrder(params.Order)
	rb.WithPerPage(params.PerPage)
	rb.WithPage(params.Page)
	return rb
}
