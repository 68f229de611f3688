package e2etest

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/status-im/market-dashboard/dashboard"
	"github.com/stretchr/testify/require"
)

// getJSON performs a GET and decodes the response body into out
func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err, "Should be able to make a request to %s", url)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Should be able to read response body")
	if out != nil {
		require.NoError(t, json.Unmarshal(body, out), "Response should be valid JSON: %s", body)
	}
	return resp.StatusCode
}

// waitForListing polls the listing endpoint until the refresher has settled
func waitForListing(t *testing.T, env *TestEnv) dashboard.ListingState {
	t.Helper()

	var state dashboard.ListingState
	require.Eventually(t, func() bool {
		state = dashboard.ListingState{}
		getJSON(t, env.ServerBaseURL+"/api/v1/coins", &state)
		return state.Status != dashboard.StatusPending
	}, 10*time.Second, 50*time.Millisecond, "Listing never settled")
	return state
}
