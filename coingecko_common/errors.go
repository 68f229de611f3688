package coingecko_common

import "errors"

var (
	// ErrRetriesExhausted is matched by every failure surfaced after the last attempt
	ErrRetriesExhausted = errors.New("failed to fetch data after retries")

	// ErrInvalidParams is returned for requests rejected before any network call
	ErrInvalidParams = errors.New("invalid parameters")
)

// RetriesExhaustedError reports that all attempts of one fetch failed.
// Its message is always the generic ErrRetriesExhausted text; the last
// underlying failure stays reachable through errors.Unwrap.
type RetriesExhaustedError struct {
	Attempts int
	LastErr  error
}

func (e *RetriesExhaustedError) Error() string {
	return ErrRetriesExhausted.Error()
}

func (e *RetriesExhaustedError) Unwrap() []error {
	if e.LastErr == nil {
		return []error{ErrRetriesExhausted}
	}
	return []error{ErrRetriesExhausted, e.LastErr}
}
