package coingecko_markets

import (
	"net/url"
	"strings"
	"testing"

	"github.com/status-im/market-dashboard/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketsRequestBuilder_Defaults(t *testing.T) {
	baseURL := "https://api.coingecko.com/api/v3"
	urlStr := NewMarketRequestBuilder(baseURL).BuildURL()

	assert.True(t, strings.HasPrefix(urlStr, baseURL+"/coins/markets?"), urlStr)

	parsedURL, err := url.Parse(urlStr)
	require.NoError(t, err)

	query := parsedURL.Query()
	assert.Equal(t, "usd", query.Get("vs_currency"))
	assert.Equal(t, "market_cap_desc", query.Get("order"))
	assert.Equal(t, "false", query.Get("sparkline"))
	assert.Equal(t, "24h", query.Get("price_change_percentage"))
	assert.False(t, query.Has("page"))
	assert.False(t, query.Has("per_page"))
}

func TestMarketsRequestBuilder_WithParams(t *testing.T) {
	rb := NewMarketRequestBuilder("http://localhost").WithParams(interfaces.ListParams{
		Currency: "eur",
		Order:    "volume_desc",
		PerPage:  50,
		Page:     2,
	})

	parsedURL, err := url.Parse(rb.BuildURL())
	require.NoError(t, err)

	query := parsedURL.Query()
	assert.Equal(t, "eur", query.Get("vs_currency"))
	assert.Equal(t, "volume_desc", query.Get("order"))
	assert.Equal(t, "50", query.Get("per_page"))
	assert.Equal(t, "2", query.Get("page"))
}

func TestMarketsRequestBuilder_IgnoresZeroPagination(t *testing.T) {
	rb := NewMarketRequestBuilder("http://localhost").WithPage(0).WithPerPage(-1).WithOrder("")

	parsedURL, err := url.Parse(rb.BuildURL())
	require.NoError(t, err)

	query := parsedURL.Query()
	assert.False(t, query.Has("page"))
	assert.False(t, query.Has("per_page"))
	assert.Equal(t, "market_cap_desc", query.Get("order"))
}
