package coingecko_common

import (
	"strconv"
	"strings"
)

// Fingerprint builds the cache key of an operation from its parameters,
// e.g. Fingerprint("history", "bitcoin", "7") == "history_bitcoin_7".
// Parts are trimmed and lower-cased so equivalent requests share a key.
func Fingerprint(operation string, parts ...string) string {
	var sb strings.Builder
	sb.WriteString(operation)
	for _, part := range parts {
		sb.WriteByte('_')
		sb.WriteString(NormalizeParam(part))
	}
	return sb.String()
}

// NormalizeParam trims and lower-cases a request parameter
func NormalizeParam(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Itoa is a shorthand used when building fingerprints from numeric parameters
func Itoa(value int) string {
	return strconv.Itoa(value)
}
