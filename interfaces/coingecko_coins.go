package interfaces

import "context"

//go:generate mockgen -destination=mocks/coingecko_coins.go . ICoinsService

// ICoinsService fetches the detail of a single asset
type ICoinsService interface {
	Detail(ctx context.Context, id string) (AssetSummary, error)
}
