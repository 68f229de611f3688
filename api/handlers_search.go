package api

import (
	"net/http"
)

// handleSearch responds with at most ten matches for the query parameter
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	matches, err := s.dashboard.Client().Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		s.sendServiceError(w, err)
		return
	}
	s.sendJSONResponse(w, matches)
}
