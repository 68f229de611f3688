package coingecko_markets

import (
	"strings"

	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/interfaces"
)

// matchesPinned reports whether asset is the configured pinned asset
func matchesPinned(asset interfaces.AssetSummary, pinned config.PinnedAsset) bool {
	if pinned.Symbol != "" && strings.EqualFold(asset.Symbol, pinned.Symbol) {
		return true
	}
	return pinned.ID != "" && asset.ID == pinned.ID
}

// PinAsset moves the first entry matching pinned to the front of assets.
// Other entries keep their relative order; nothing is added or removed.
// The input slice is not modified.
func PinAsset(assets []interfaces.AssetSummary, pinned config.PinnedAsset) []interfaces.AssetSummary {
	index := -1
	for i, asset := range assets {
		if matchesPinned(asset, pinned) {
			index = i
			break
		}
	}

	if index <= 0 {
		return assets
	}

	result := make([]interfaces.AssetSummary, 0, len(assets))
	result = append(result, assets[index])
	result = append(result, assets[:index]...)
	result = append(result, assets[index+1:]...)
	return result
}
