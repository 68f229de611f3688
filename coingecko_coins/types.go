package coingecko_coins

import (
	"github.com/shopspring/decimal"
	"github.com/status-im/market-dashboard/interfaces"
)

// perCurrency holds the usd entry of a currency-keyed object
type perCurrency struct {
	USD decimal.NullDecimal `json:"usd"`
}

type perCurrencyDate struct {
	USD *string `json:"usd"`
}

type coinImage struct {
	Thumb string `json:"thumb"`
	Small string `json:"small"`
	Large string `json:"large"`
}

type coinMarketData struct {
	CurrentPrice          *perCurrency `json:"current_price"`
	MarketCap             *perCurrency `json:"market_cap"`
	FullyDilutedValuation *perCurrency `json:"fully_diluted_valuation"`
	TotalVolume           *perCurrency `json:"total_volume"`
	High24h               *perCurrency `json:"high_24h"`
	Low24h                *perCurrency `json:"low_24h"`

	PriceChange24h               decimal.NullDecimal `json:"price_change_24h"`
	PriceChangePercentage24h     decimal.NullDecimal `json:"price_change_percentage_24h"`
	MarketCapChange24h           decimal.NullDecimal `json:"market_cap_change_24h"`
	MarketCapChangePercentage24h decimal.NullDecimal `json:"market_cap_change_percentage_24h"`

	CirculatingSupply decimal.NullDecimal `json:"circulating_supply"`
	TotalSupply       decimal.NullDecimal `json:"total_supply"`
	MaxSupply         decimal.NullDecimal `json:"max_supply"`

	Ath                 *perCurrency     `json:"ath"`
	AthChangePercentage *perCurrency     `json:"ath_change_percentage"`
	AthDate             *perCurrencyDate `json:"ath_date"`
	Atl                 *perCurrency     `json:"atl"`
	AtlChangePercentage *perCurrency     `json:"atl_change_percentage"`
	AtlDate             *perCurrencyDate `json:"atl_date"`
}

// CoinResponseData is the subset of /coins/{id} the dashboard reads
type CoinResponseData struct {
	ID            string          `json:"id"`
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Image         *coinImage      `json:"image"`
	MarketCapRank *int            `json:"market_cap_rank"`
	MarketData    *coinMarketData `json:"market_data"`
	LastUpdated   *string         `json:"last_updated"`
}

func usd(value *perCurrency) decimal.NullDecimal {
	if value == nil {
		return decimal.NullDecimal{}
	}
	return value.USD
}

func usdDate(value *perCurrencyDate) *string {
	if value == nil {
		return nil
	}
	return value.USD
}

// nonZero treats a zero valuation as unknown
func nonZero(value decimal.NullDecimal) decimal.NullDecimal {
	if value.Valid && value.Decimal.IsZero() {
		return decimal.NullDecimal{}
	}
	return value
}

// ToAssetSummary flattens the nested usd values into an AssetSummary.
// Every value missing upstream stays null.
func (c CoinResponseData) ToAssetSummary() interfaces.AssetSummary {
	summary := interfaces.AssetSummary{
		ID:            c.ID,
		Symbol:        c.Symbol,
		Name:          c.Name,
		MarketCapRank: c.MarketCapRank,
		LastUpdated:   c.LastUpdated,
	}
	if c.Image != nil {
		summary.Image = c.Image.Large
	}

	md := c.MarketData
	if md == nil {
		return summary
	}

	summary.CurrentPrice = usd(md.CurrentPrice)
	summary.MarketCap = usd(md.MarketCap)
	summary.FullyDilutedValuation = nonZero(usd(md.FullyDilutedValuation))
	summary.TotalVolume = usd(md.TotalVolume)
	summary.High24h = usd(md.High24h)
	summary.Low24h = usd(md.Low24h)

	summary.PriceChange24h = md.PriceChange24h
	summary.PriceChangePercentage24h = md.PriceChangePercentage24h
	summary.MarketCapChange24h = md.MarketCapChange24h
	summary.MarketCapChangePercentage24h = md.MarketCapChangePercentage24h

	summary.CirculatingSupply = md.CirculatingSupply
	summary.TotalSupply = md.TotalSupply
	summary.MaxSupply = md.MaxSupply

	summary.Ath = usd(md.Ath)
	summary.AthChangePercentage = usd(md.AthChangePercentage)
	summary.AthDate = usdDate(md.AthDate)
	summary.Atl = usd(md.Atl)
	summary.AtlChangePercentage = usd(md.AtlChangePercentage)
	summary.AtlDate = usdDate(md.AtlDate)

	return summary
}
