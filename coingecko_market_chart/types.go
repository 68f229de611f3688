package coingecko_market_chart

import (
	"fmt"
	"strings"

	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/interfaces"
)

const DEFAULT_DAYS = 7

// MarketChartResponseData mirrors the /coins/{id}/market_chart payload
type MarketChartResponseData struct {
	Prices       []interfaces.Sample `json:"prices"`
	MarketCaps   []interfaces.Sample `json:"market_caps"`
	TotalVolumes []interfaces.Sample `json:"total_volumes"`
}

// GranularityForDays selects hourly samples for ranges up to one day and daily samples otherwise
func GranularityForDays(days int) interfaces.Granularity {
	if days <= 1 {
		return interfaces.GranularityHourly
	}
	return interfaces.GranularityDaily
}

// validateParams rejects requests that must not reach the network
func validateParams(id string, days int) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: coin ID is required", cg.ErrInvalidParams)
	}
	if days < 1 {
		return fmt.Errorf("%w: days must be at least 1, got %d", cg.ErrInvalidParams, days)
	}
	return nil
}

func getCacheKey(id string, days int) string {
	return cg.Fingerprint("history", id, cg.Itoa(days))
}
