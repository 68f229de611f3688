package interfaces

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// AssetSummary is one asset as shown on the dashboard. Absent upstream
// numbers stay invalid NullDecimals and marshal to null, never to zero.
type AssetSummary struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Image  string `json:"image"`

	CurrentPrice          decimal.NullDecimal `json:"current_price"`
	MarketCap             decimal.NullDecimal `json:"market_cap"`
	MarketCapRank         *int                `json:"market_cap_rank"`
	FullyDilutedValuation decimal.NullDecimal `json:"fully_diluted_valuation"`
	TotalVolume           decimal.NullDecimal `json:"total_volume"`
	High24h               decimal.NullDecimal `json:"high_24h"`
	Low24h                decimal.NullDecimal `json:"low_24h"`

	PriceChange24h               decimal.NullDecimal `json:"price_change_24h"`
	PriceChangePercentage24h     decimal.NullDecimal `json:"price_change_percentage_24h"`
	MarketCapChange24h           decimal.NullDecimal `json:"market_cap_change_24h"`
	MarketCapChangePercentage24h decimal.NullDecimal `json:"market_cap_change_percentage_24h"`

	CirculatingSupply decimal.NullDecimal `json:"circulating_supply"`
	TotalSupply       decimal.NullDecimal `json:"total_supply"`
	MaxSupply         decimal.NullDecimal `json:"max_supply"`

	Ath                 decimal.NullDecimal `json:"ath"`
	AthChangePercentage decimal.NullDecimal `json:"ath_change_percentage"`
	AthDate             *string             `json:"ath_date"`
	Atl                 decimal.NullDecimal `json:"atl"`
	AtlChangePercentage decimal.NullDecimal `json:"atl_change_percentage"`
	AtlDate             *string             `json:"atl_date"`

	LastUpdated *string `json:"last_updated"`
}

// Sample is one point of a history series
type Sample struct {
	Timestamp int64           `json:"timestamp"` // unix milliseconds
	Price     decimal.Decimal `json:"price"`
}

// UnmarshalJSON accepts the upstream [timestamp, value] pair as well as the
// object form produced by MarshalJSON
func (s *Sample) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		type plain Sample
		var obj plain
		if objErr := json.Unmarshal(data, &obj); objErr != nil {
			return fmt.Errorf("sample must be a [timestamp, value] pair or an object: %w", err)
		}
		*s = Sample(obj)
		return nil
	}
	if len(pair) != 2 {
		return fmt.Errorf("sample must have 2 elements, got %d", len(pair))
	}

	var ts decimal.Decimal
	if err := ts.UnmarshalJSON(pair[0]); err != nil {
		return fmt.Errorf("invalid sample timestamp: %w", err)
	}
	var price decimal.Decimal
	if err := price.UnmarshalJSON(pair[1]); err != nil {
		return fmt.Errorf("invalid sample value: %w", err)
	}

	s.Timestamp = ts.IntPart()
	s.Price = price
	return nil
}

// Granularity of a history series
type Granularity string

const (
	GranularityHourly Granularity = "hourly"
	GranularityDaily  Granularity = "daily"
)

// HistorySeries is the price history of one asset over a day range
type HistorySeries struct {
	AssetID      string      `json:"id"`
	Days         int         `json:"days"`
	Granularity  Granularity `json:"granularity"`
	Prices       []Sample    `json:"prices"`
	MarketCaps   []Sample    `json:"market_caps"`
	TotalVolumes []Sample    `json:"total_volumes"`
}

// SearchMatch is a lightweight search result entry
type SearchMatch struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	APISymbol     string `json:"api_symbol"`
	Symbol        string `json:"symbol"`
	MarketCapRank *int   `json:"market_cap_rank"`
	Thumb         string `json:"thumb"`
	Large         string `json:"large"`
}
