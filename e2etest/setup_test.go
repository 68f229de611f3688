package e2etest

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/core"
	"github.com/stretchr/testify/require"
)

// TestEnv represents a test environment
type TestEnv struct {
	Registry      *core.Registry
	MockServer    *MockServer
	Config        *config.Config
	Context       context.Context
	CancelFunc    context.CancelFunc
	ServerBaseURL string
}

// SetupTest starts every service against a fresh mock server and cache
func SetupTest(t *testing.T) *TestEnv {
	t.Helper()

	// The environment must not override the generated configuration
	t.Setenv("PORT", "")
	t.Setenv("COINGECKO_BASE_URL", "")

	mockServer := NewMockServer()
	t.Cleanup(mockServer.Close)

	cfg, err := loadTestConfig(mockServer.GetURL(), t.TempDir())
	require.NoError(t, err, "Failed to load test config")

	env := &TestEnv{MockServer: mockServer, Config: cfg}
	env.Start(t)
	return env
}

// Start sets up and starts the services; Restart reuses the same cache file
func (env *TestEnv) Start(t *testing.T) {
	t.Helper()

	env.Context, env.CancelFunc = context.WithCancel(context.Background())

	registry, err := core.Setup(env.Context, env.Config)
	require.NoError(t, err, "Failed to setup services")

	if err := registry.StartAll(env.Context); err != nil {
		env.CancelFunc()
		t.Fatalf("Failed to start services: %v", err)
	}
	env.Registry = registry
	env.ServerBaseURL = fmt.Sprintf("http://127.0.0.1:%s", env.Config.Server.Port)

	// Wait for the server to accept connections
	require.Eventually(t, func() bool {
		resp, err := http.Get(env.ServerBaseURL + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond, "Server not responding")
}

// Restart stops every service and starts a new set on the same configuration
func (env *TestEnv) Restart(t *testing.T) {
	t.Helper()
	env.stop()
	env.Start(t)
}

// TearDown releases test environment resources
func (env *TestEnv) TearDown() {
	env.stop()
}

func (env *TestEnv) stop() {
	if env.Registry != nil {
		env.Registry.StopAll()
		env.Registry = nil
	}
	if env.CancelFunc != nil {
		env.CancelFunc()
	}
}
