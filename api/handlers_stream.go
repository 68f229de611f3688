package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/status-im/market-dashboard/dashboard"
)

const (
	streamWriteTimeout = 10 * time.Second
	streamPongTimeout  = 60 * time.Second
	streamPingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleStream upgrades to a websocket and pushes a snapshot of the listing
// and history state, then a new snapshot on every change of either
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	s.streams.Add(1)
	defer s.streams.Done()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	log := s.log.WithField("client_id", uuid.NewString())
	log.Info("Stream client connected")
	defer log.Info("Stream client disconnected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	if s.streamCtx != nil {
		stop := context.AfterFunc(s.streamCtx, cancel)
		defer stop()
	}

	sub := s.dashboard.Subscribe()
	defer sub.Cancel()

	// The read loop only serves control frames and detects a closed peer
	conn.SetReadDeadline(time.Now().Add(streamPongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongTimeout))
	})
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := writeUpdate(conn, s.dashboard.Snapshot()); err != nil {
		log.WithError(err).Debug("Failed to send snapshot")
		return
	}

	ticker := time.NewTicker(streamPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-sub.Chan():
			if !ok {
				return
			}
			if err := writeUpdate(conn, update); err != nil {
				log.WithError(err).Debug("Failed to send update")
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(streamWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				log.WithError(err).Debug("Ping failed")
				return
			}
		}
	}
}

func writeUpdate(conn *websocket.Conn, update dashboard.Update) error {
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(update)
}
