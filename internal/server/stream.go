package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/storage"
)

const streamWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleOrderStream pushes the staff order list on every poll interval, so the
// dashboard sees the same snapshots a polling client would.
func (s *Server) handleOrderStream(w http.ResponseWriter, r *http.Request) {
	query, err := parseOrderQuery(r)
	if err != nil {
		s.respondDomainError(w, r, "order_stream", err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	metrics.StreamSubscribers.Inc()
	defer metrics.StreamSubscribers.Dec()

	ctx := r.Context()
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.feed.PollInterval())
	defer ticker.Stop()

	for {
		if err := s.pushSnapshot(conn, r, query); err != nil {
			s.logger.Debug("Order stream closed", zap.Error(err))
			return
		}

		select {
		case <-ticker.C:
		case <-closed:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) pushSnapshot(conn *websocket.Conn, r *http.Request, query storage.OrderQuery) error {
	orders, err := s.feed.ListOrders(r.Context(), query)
	if err != nil {
		s.logger.Error("Failed to build order snapshot", zap.Error(err))
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "internal error"),
			time.Now().Add(streamWriteWait),
		)
		return err
	}

	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(map[string]any{
		"event":  "orders",
		"orders": orders,
	})
}
