package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/devanshm/stockdash/metrics"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard page is served from the same origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type quotePush struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	PercentChange float64 `json:"percent_change"`
	Time          string  `json:"time"`
}

// handleQuoteStream pushes the session's latest quote on a fixed interval,
// replacing the page's refresh loop with a server-driven stream.
func (s *Server) handleQuoteStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	metrics.WebsocketClients.Inc()
	defer metrics.WebsocketClients.Dec()

	// Drain and discard client frames so close messages are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.refresh)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		view, err := s.sess.RefreshQuote(ctx)
		if err != nil {
			metrics.QuoteFetches.WithLabelValues("error").Inc()
			msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error())
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			return
		}
		metrics.QuoteFetches.WithLabelValues("ok").Inc()

		push := quotePush{
			Symbol:        view.Symbol,
			Price:         view.Current,
			PercentChange: view.PercentChange,
			Time:          view.FetchedAt.Format(time.RFC3339),
		}
		if err := conn.WriteJSON(push); err != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
