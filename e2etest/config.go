package e2etest

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/status-im/market-dashboard/config"
)

// createTestConfig writes a configuration pointing at mockURL with a SQLite
// cache in dataDir, and returns the path to the file
func createTestConfig(mockURL, dataDir, port string) (string, error) {
	configContent := fmt.Sprintf(`
server:
  port: "%s"

coingecko:
  base_url: "%s"
  connection_timeout: 2s
  request_timeout: 5s
  rate_limit:
    rate_limit_per_minute: 0   # no limiter against the mock
  markets:
    retries: 3
    delay: 10ms                # short delays for tests
  market_chart:
    retries: 3
    delay: 10ms
  coins:
    retries: 3
    delay: 10ms
  search:
    retries: 2
    delay: 10ms

cache:
  backend: sqlite
  sqlite:
    path: "%s"

dashboard:
  refresh_interval: 1h         # tests refresh on demand
  pinned_asset:
    symbol: "vanry"
    id: "vanar-chain"
  history_days: 7

logging:
  level: warn
`, port, mockURL, filepath.Join(dataDir, "cache.db"))

	configPath := filepath.Join(dataDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		return "", err
	}
	return configPath, nil
}

// loadTestConfig creates and loads test configuration
func loadTestConfig(mockURL, dataDir string) (*config.Config, error) {
	port, err := freePort()
	if err != nil {
		return nil, err
	}

	configPath, err := createTestConfig(mockURL, dataDir, port)
	if err != nil {
		return nil, err
	}

	return config.LoadConfig(configPath)
}

// freePort asks the kernel for an unused TCP port
func freePort() (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer listener.Close()
	return strconv.Itoa(listener.Addr().(*net.TCPAddr).Port), nil
}
