package coingecko_market_chart

import (
	"fmt"
	"net/url"
	"strconv"

	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/interfaces"
)

const (
	MARKET_CHART_API_PATH_TEMPLATE = "/coins/%s/market_chart"
)

type MarketChartRequestBuilder struct {
	builder *cg.CoingeckoRequestBuilder
	coinID  string
}

func NewMarketChartRequestBuilder(baseURL, coinID string) *MarketChartRequestBuilder {
	apiPath := fmt.Sprintf(MARKET_CHART_API_PATH_TEMPLATE, url.PathEscape(coinID))

	rb := &MarketChartRequestBuilder{
		builder: cg.NewCoingeckoRequestBuilder(baseURL, apiPath),
		coinID:  coinID,
	}

	rb.builder.WithCurrency("usd")
	rb.WithDays(DEFAULT_DAYS)

	return rb
}

// WithDays sets the day range and the matching interval
func (rb *MarketChartRequestBuilder) WithDays(days int) *MarketChartRequestBuilder {
	rb.builder.With("days", strconv.Itoa(days))
	rb.WithInterval(GranularityForDays(days))
	return rb
}

func (rb *MarketChartRequestBuilder) WithInterval(interval interfaces.Granularity) *MarketChartRequestBuilder {
	if interval != "" {
		rb.builder.With("interval", string(interval))
	}
	return rb
}

func (rb *MarketChartRequestBuilder) WithUserAgent(userAgent string) *MarketChartRequestBuilder {
	rb.builder.WithUserAgent(userAgent)
	return rb
}

func (rb *MarketChartRequestBuilder) Builder() *cg.CoingeckoRequestBuilder {
	return rb.builder
}
