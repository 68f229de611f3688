package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/status-im/market-dashboard/dashboard"
	"github.com/status-im/market-dashboard/interfaces"
)

// handleListing responds with the current state of the refreshed listing
func (s *Server) handleListing(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, s.dashboard.Listing.State())
}

// handleListingRefresh asks the listing refresher for an immediate cycle
func (s *Server) handleListingRefresh(w http.ResponseWriter, r *http.Request) {
	if !s.dashboard.Listing.Refetch() {
		s.sendError(w, http.StatusServiceUnavailable, "listing refresher is not running")
		return
	}
	s.sendJSONStatus(w, http.StatusAccepted, s.dashboard.Listing.State())
}

// handleCoinsMarkets lists one page of top assets directly, bypassing the refresher
func (s *Server) handleCoinsMarkets(w http.ResponseWriter, r *http.Request) {
	params := interfaces.ListParams{
		Currency: getParamLowercase(r, "vs_currency"),
		Order:    getParamLowercase(r, "order"),
	}

	var err error
	if params.PerPage, err = getPositiveIntParam(r, "per_page"); err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	if params.Page, err = getPositiveIntParam(r, "page"); err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	assets, err := s.dashboard.Client().TopAssets(r.Context(), params)
	if err != nil {
		s.sendServiceError(w, err)
		return
	}
	s.sendJSONResponse(w, assets)
}

// handleCoinDetail responds with the flattened detail record of one asset
func (s *Server) handleCoinDetail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])

	detail, err := s.dashboard.Client().Detail(r.Context(), id)
	if err != nil {
		s.sendServiceError(w, err)
		return
	}
	s.sendJSONResponse(w, detail)
}

// handleCoinHistory makes (id, days) the tracked pair and responds once its
// fetch settles. A request overtaken by a newer pair gets 409.
func (s *Server) handleCoinHistory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	days, err := getPositiveIntParam(r, "days")
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	if days == 0 {
		days = s.dashboard.DefaultHistoryDays()
	}

	sel, err := s.dashboard.History.Select(id, days)
	if err != nil {
		if errors.Is(err, dashboard.ErrNotRunning) {
			s.sendError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		s.sendServiceError(w, err)
		return
	}

	state, err := s.dashboard.History.Await(r.Context(), sel)
	switch {
	case errors.Is(err, dashboard.ErrSuperseded):
		s.sendError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.log.WithField("id", sel.AssetID).Debug("Client went away before history settled")
		return
	case err != nil:
		s.sendServiceError(w, err)
		return
	}

	if state.Status == dashboard.StatusFailed {
		s.sendError(w, http.StatusBadGateway, state.Error)
		return
	}
	s.sendJSONResponse(w, state)
}

// handleHistoryState responds with the state of the currently tracked pair
func (s *Server) handleHistoryState(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, s.dashboard.History.State())
}
