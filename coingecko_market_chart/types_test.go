package coingecko_market_chart

import (
	"errors"
	"testing"

	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/interfaces"
	"github.com/stretchr/testify/assert"
)

func TestGranularityForDays(t *testing.T) {
	tests := []struct {
		days     int
		expected interfaces.Granularity
	}{
		{0, interfaces.GranularityHourly},
		{1, interfaces.GranularityHourly},
		{2, interfaces.GranularityDaily},
		{7, interfaces.GranularityDaily},
		{365, interfaces.GranularityDaily},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, GranularityForDays(tt.days), "days=%d", tt.days)
	}
}

func TestValidateParams(t *testing.T) {
	assert.NoError(t, validateParams("bitcoin", 1))
	assert.True(t, errors.Is(validateParams("", 7), cg.ErrInvalidParams))
	assert.True(t, errors.Is(validateParams("  ", 7), cg.ErrInvalidParams))
	assert.True(t, errors.Is(validateParams("bitcoin", 0), cg.ErrInvalidParams))
	assert.True(t, errors.Is(validateParams("bitcoin", -3), cg.ErrInvalidParams))
}

func TestGetCacheKey(t *testing.T) {
	assert.Equal(t, "history_bitcoin_7", getCacheKey("bitcoin", 7))
	assert.Equal(t, "history_vanar-chain_1", getCacheKey("Vanar-Chain", 1))
}
