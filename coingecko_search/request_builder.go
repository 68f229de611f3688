package coingecko_search

import (
	cg "github.com/status-im/market-dashboard/coingecko_common"
)

const SEARCH_API_PATH = "/search"

// NewSearchRequestBuilder creates a /search request for query
func NewSearchRequestBuilder(baseURL, query string) *cg.CoingeckoRequestBuilder {
	return cg.NewCoingeckoRequestBuilder(baseURL, SEARCH_API_PATH).With("query", query)
}
