package config

import (
	"fmt"
	"time"
)

// PinnedAsset identifies the asset that always leads a listing
type PinnedAsset struct {
	Symbol string `yaml:"symbol"`
	ID     string `yaml:"id"`
}

// Dashboard configures the refresh scheduler and listing defaults
type Dashboard struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	PinnedAsset     PinnedAsset   `yaml:"pinned_asset"`

	Currency    string `yaml:"currency"`
	Order       string `yaml:"order"`
	PerPage     int    `yaml:"per_page"`
	Page        int    `yaml:"page"`
	HistoryDays int    `yaml:"history_days"`
}

// GetDefaultDashboardConfig returns default configuration for the dashboard
func GetDefaultDashboardConfig() Dashboard {
	return Dashboard{
		RefreshInterval: 60 * time.Second,
		PinnedAsset: PinnedAsset{
			Symbol: "vanry",
			ID:     "vanar-chain",
		},
		Currency:    "usd",
		Order:       "market_cap_desc",
		PerPage:     100,
		Page:        1,
		HistoryDays: 7,
	}
}

// Validate validates the Dashboard configuration
func (d *Dashboard) Validate() error {
	if d.RefreshInterval <= 0 {
		return fmt.Errorf("refresh_interval must be greater than 0")
	}
	if d.PerPage < 1 || d.PerPage > 250 {
		return fmt.Errorf("per_page must be between 1 and 250, got %d", d.PerPage)
	}
	if d.Page < 1 {
		return fmt.Errorf("page must be greater than 0, got %d", d.Page)
	}
	if d.HistoryDays < 1 {
		return fmt.Errorf("history_days must be greater than 0, got %d", d.HistoryDays)
	}
	return nil
}
