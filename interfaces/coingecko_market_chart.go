package interfaces

import "context"

//go:generate mockgen -destination=mocks/coingecko_market_chart.go . IMarketChartService

// IMarketChartService fetches asset price history
type IMarketChartService interface {
	// History returns the series of id over the last days days
	History(ctx context.Context, id string, days int) (HistorySeries, error)
}
