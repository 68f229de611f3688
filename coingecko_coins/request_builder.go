package coingecko_coins

import (
	"fmt"
	"net/url"

	cg "github.com/status-im/market-dashboard/coingecko_common"
)

const (
	COINS_API_PATH_TEMPLATE = "/coins/%s"
)

// CoinRequestBuilder builds /coins/{id} requests without the heavy optional sections
type CoinRequestBuilder struct {
	*cg.CoingeckoRequestBuilder
}

func NewCoinRequestBuilder(baseURL, coinID string) *CoinRequestBuilder {
	rb := &CoinRequestBuilder{
		CoingeckoRequestBuilder: cg.NewCoingeckoRequestBuilder(baseURL, fmt.Sprintf(COINS_API_PATH_TEMPLATE, url.PathEscape(coinID))),
	}

	rb.With("localization", "false")
	rb.With("tickers", "false")
	rb.With("community_data", "false")
	rb.With("developer_data", "false")
	rb.With("sparkline", "false")

	return rb
}
