package coingecko_market_chart

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketChartRequestBuilder(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		interval string
	}{
		{"one day is hourly", 1, "hourly"},
		{"week is daily", 7, "daily"},
		{"month is daily", 30, "daily"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := NewMarketChartRequestBuilder("https://api.coingecko.com/api/v3", "bitcoin").WithDays(tt.days)

			parsed, err := url.Parse(rb.Builder().BuildURL())
			require.NoError(t, err)

			assert.Equal(t, "/api/v3/coins/bitcoin/market_chart", parsed.Path)
			query := parsed.Query()
			assert.Equal(t, "usd", query.Get("vs_currency"))
			assert.Equal(t, tt.interval, query.Get("interval"))
			assert.Equal(t, url.Values{"vs_currency": {"usd"}, "days": {query.Get("days")}, "interval": {tt.interval}}, query)
		})
	}
}

func TestMarketChartRequestBuilder_EscapesID(t *testing.T) {
	rb := NewMarketChartRequestBuilder("http://localhost", "a/b")
	assert.Equal(t, "/coins/a%2Fb/market_chart", rb.Builder().Path())
}
