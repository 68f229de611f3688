package interfaces

import "context"

//go:generate mockgen -destination=mocks/coingecko_search.go . ISearchService

// ISearchService looks assets up by free text
type ISearchService interface {
	Search(ctx context.Context, query string) ([]SearchMatch, error)
}
