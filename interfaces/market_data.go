package interfaces

// IMarketDataClient groups the four market data operations
type IMarketDataClient interface {
	IMarketsService
	IMarketChartService
	ICoinsService
	ISearchService
}

// MarketDataClient composes independent operation services into one client
type MarketDataClient struct {
	IMarketsService
	IMarketChartService
	ICoinsService
	ISearchService
}
