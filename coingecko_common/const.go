package coingecko_common

const (
	// Default user agent sent with every request
	DEFAULT_USER_AGENT = "Mozilla/5.0 Market-Dashboard"

	// Default number of attempts per logical fetch
	DEFAULT_RETRIES = 3
)
