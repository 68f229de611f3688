package api

import (
	"net/http"

	"github.com/status-im/market-dashboard/dashboard"
)

// handleHealth responds with 200 OK to indicate the service is running
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
		"services": map[string]string{
			"listing": serviceStatus(s.dashboard.Listing.State().Status),
			"history": serviceStatus(s.dashboard.History.State().Status),
		},
		"stream_clients": s.dashboard.StreamClients(),
	}

	s.sendJSONResponse(w, status)
}

func serviceStatus(status dashboard.Status) string {
	switch status {
	case dashboard.StatusSucceeded:
		return "up"
	case dashboard.StatusFailed:
		return "down"
	default:
		return "unknown"
	}
}
