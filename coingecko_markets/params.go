package coingecko_markets

import (
	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/interfaces"
)

const (
	DEFAULT_CURRENCY = "usd"
	DEFAULT_ORDER    = "market_cap_desc"
	DEFAULT_PER_PAGE = 100
	DEFAULT_PAGE     = 1

	MAX_PER_PAGE = 250 // CoinGecko's API max per_page value
)

// ApplyDefaults fills unset listing parameters from the dashboard configuration
// and normalizes them so equivalent requests share a cache entry
func ApplyDefaults(params interfaces.ListParams, cfg config.Dashboard) interfaces.ListParams {
	normalized := params

	normalized.Currency = cg.NormalizeParam(normalized.Currency)
	if normalized.Currency == "" {
		normalized.Currency = firstNonEmpty(cg.NormalizeParam(cfg.Currency), DEFAULT_CURRENCY)
	}

	normalized.Order = cg.NormalizeParam(normalized.Order)
	if normalized.Order == "" {
		normalized.Order = firstNonEmpty(cg.NormalizeParam(cfg.Order), DEFAULT_ORDER)
	}

	if normalized.PerPage <= 0 {
		normalized.PerPage = cfg.PerPage
	}
	if normalized.PerPage <= 0 {
		normalized.PerPage = DEFAULT_PER_PAGE
	}
	if normalized.PerPage > MAX_PER_PAGE {
		normalized.PerPage = MAX_PER_PAGE
	}

	if normalized.Page <= 0 {
		normalized.Page = cfg.Page
	}
	if normalized.Page <= 0 {
		normalized.Page = DEFAULT_PAGE
	}

	return normalized
}

// getCacheKey returns the fingerprint of a normalized listing request.
// Default order and page size keep the plain coins_<currency>_<page> form.
func getCacheKey(params interfaces.ListParams) string {
	parts := []string{params.Currency, cg.Itoa(params.Page)}
	if params.Order != DEFAULT_ORDER {
		parts = append(parts, params.Order)
	}
	if params.PerPage != DEFAULT_PER_PAGE {
		parts = append(parts, cg.Itoa(params.PerPage))
	}
	return cg.Fingerprint("coins", parts...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
