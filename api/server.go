package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/status-im/market-dashboard/dashboard"
	"github.com/status-im/market-dashboard/logging"
)

type Server struct {
	port      string
	dashboard *dashboard.Service
	server    *http.Server
	log       *logrus.Entry

	// Hijacked stream connections are not closed by Shutdown; they end
	// when streamCtx is cancelled
	streamCtx   context.Context
	stopStreams context.CancelFunc
	streams     sync.WaitGroup
}

func New(port string, dashboardService *dashboard.Service) *Server {
	streamCtx, stopStreams := context.WithCancel(context.Background())
	return &Server{
		port:        port,
		dashboard:   dashboardService,
		log:         logging.WithComponent("api"),
		streamCtx:   streamCtx,
		stopStreams: stopStreams,
	}
}

// Handler returns the router serving every endpoint
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/coins", s.handleListing).Methods(http.MethodGet)
	v1.HandleFunc("/coins/refresh", s.handleListingRefresh).Methods(http.MethodPost)
	v1.HandleFunc("/coins/markets", s.handleCoinsMarkets).Methods(http.MethodGet)
	v1.HandleFunc("/coins/{id}", s.handleCoinDetail).Methods(http.MethodGet)
	v1.HandleFunc("/coins/{id}/history", s.handleCoinHistory).Methods(http.MethodGet)
	v1.HandleFunc("/history", s.handleHistoryState).Methods(http.MethodGet)
	v1.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	v1.HandleFunc("/ws", s.handleStream)

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Infof("Server starting at http://localhost:%s", s.port)
	s.log.Info("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.WithError(err).Error("Server error")
		}
	}()

	return nil
}

// Stop gracefully shuts down the server and closes open streams
func (s *Server) Stop() {
	if s.stopStreams != nil {
		s.stopStreams()
	}
	defer s.streams.Wait()

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			s.log.WithError(err).Error("Error shutting down server")
		}
	}
}
