package e2etest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/status-im/market-dashboard/logging"
)

const apiPrefix = "/api/v3"

// MockServer stands in for the CoinGecko v3 API. It counts requests per
// path and can fail a path a number of times before serving it.
type MockServer struct {
	server *httptest.Server

	mu       sync.Mutex
	requests map[string]int
	failures map[string]failure
}

type failure struct {
	remaining int
	status    int
}

// NewMockServer creates and starts a new mock server
func NewMockServer() *MockServer {
	ms := &MockServer{
		requests: make(map[string]int),
		failures: make(map[string]failure),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", ms.handleRequest)
	ms.server = httptest.NewServer(mux)

	return ms
}

// GetURL returns the base URL to configure as the CoinGecko API
func (ms *MockServer) GetURL() string {
	return ms.server.URL + apiPrefix
}

func (ms *MockServer) Close() {
	ms.server.Close()
}

// FailNext makes the next count requests to path answer with status.
// A negative count fails every request.
func (ms *MockServer) FailNext(path string, count, status int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.failures[path] = failure{remaining: count, status: status}
}

// Requests returns how many requests reached path
func (ms *MockServer) Requests(path string) int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.requests[path]
}

func (ms *MockServer) record(path string) (int, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.requests[path]++
	f, ok := ms.failures[path]
	if !ok || f.remaining == 0 {
		return 0, false
	}
	if f.remaining > 0 {
		f.remaining--
		ms.failures[path] = f
	}
	return f.status, true
}

// handleRequest processes incoming requests and returns mock data
func (ms *MockServer) handleRequest(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, apiPrefix)
	logging.WithComponent("mock-coingecko").WithField("path", path).Debug("Received request")

	if status, fail := ms.record(path); fail {
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	switch {
	case path == "/coins/markets":
		fmt.Fprint(w, marketsData)
	case path == "/search":
		fmt.Fprint(w, searchData(r.URL.Query().Get("query")))
	case strings.HasSuffix(path, "/market_chart"):
		fmt.Fprint(w, marketChartData(r.URL.Query().Get("interval")))
	case strings.HasPrefix(path, "/coins/"):
		id := strings.TrimPrefix(path, "/coins/")
		if id != "bitcoin" {
			http.Error(w, `{"error":"coin not found"}`, http.StatusNotFound)
			return
		}
		fmt.Fprint(w, bitcoinDetailData)
	default:
		http.NotFound(w, r)
	}
}

// The pinned asset sits at index 3 of the upstream ranking
const marketsData = `[
	{"id": "bitcoin", "symbol": "btc", "name": "Bitcoin", "current_price": 65000.5, "market_cap": 1280000000000, "market_cap_rank": 1, "total_volume": 30000000000, "price_change_percentage_24h": 1.5},
	{"id": "ethereum", "symbol": "eth", "name": "Ethereum", "current_price": 3200.25, "market_cap": 385000000000, "market_cap_rank": 2, "total_volume": 15000000000, "price_change_percentage_24h": -0.8},
	{"id": "tether", "symbol": "usdt", "name": "Tether", "current_price": 1.0, "market_cap": 110000000000, "market_cap_rank": 3, "total_volume": 50000000000, "price_change_percentage_24h": 0.01},
	{"id": "vanar-chain", "symbol": "vanry", "name": "Vanar Chain", "current_price": 0.12, "market_cap": 240000000, "market_cap_rank": 250, "total_volume": 12000000, "price_change_percentage_24h": 4.2},
	{"id": "solana", "symbol": "sol", "name": "Solana", "current_price": 150.75, "market_cap": 70000000000, "market_cap_rank": 5, "total_volume": 2500000000, "price_change_percentage_24h": null}
]`

const bitcoinDetailData = `{
	"id": "bitcoin",
	"symbol": "btc",
	"name": "Bitcoin",
	"image": {"thumb": "https://example.com/btc_thumb.png", "small": "https://example.com/btc_small.png", "large": "https://example.com/btc_large.png"},
	"market_cap_rank": 1,
	"market_data": {
		"current_price": {"usd": 65000.5, "eur": 60000.1},
		"market_cap": {"usd": 1280000000000},
		"fully_diluted_valuation": {"usd": 0},
		"total_volume": {"usd": 30000000000},
		"high_24h": {"usd": 66000},
		"low_24h": {"usd": 64000},
		"price_change_percentage_24h": 1.5,
		"circulating_supply": 19700000,
		"max_supply": 21000000,
		"ath": {"usd": 73000},
		"ath_date": {"usd": "2024-03-14T07:10:36.635Z"}
	},
	"last_updated": "2024-06-01T12:00:00.000Z"
}`

func marketChartData(interval string) string {
	step := int64(86400000)
	if interval == "hourly" {
		step = 3600000
	}
	start := int64(1717200000000)
	return fmt.Sprintf(`{
	"prices": [[%d, 64000.1], [%d, 64500.2], [%d, 65000.5]],
	"market_caps": [[%d, 1260000000000], [%d, 1270000000000], [%d, 1280000000000]],
	"total_volumes": [[%d, 29000000000], [%d, 29500000000], [%d, 30000000000]]
}`, start, start+step, start+2*step, start, start+step, start+2*step, start, start+step, start+2*step)
}

// searchData answers with twelve matches so truncation is observable
func searchData(query string) string {
	coins := make([]string, 0, 12)
	for i := 1; i <= 12; i++ {
		coins = append(coins, fmt.Sprintf(
			`{"id": "%s-%d", "name": "%s %d", "api_symbol": "%s-%d", "symbol": "%s%d", "market_cap_rank": %d, "thumb": "", "large": ""}`,
			query, i, query, i, query, i, strings.ToUpper(query), i, i))
	}
	return `{"coins": [` + strings.Join(coins, ",") + `], "exchanges": [], "categories": []}`
}
