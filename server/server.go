// Package server exposes the dashboard over an HTTP JSON API, mirroring the
// actions available on the interactive page: symbol search, charts, news
// with sentiment, paper trading and decision evaluation, plus a websocket
// stream that replaces the page's fixed-interval refresh.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/devanshm/stockdash/ledger"
	"github.com/devanshm/stockdash/market"
	"github.com/devanshm/stockdash/metrics"
	"github.com/devanshm/stockdash/sentiment"
	"github.com/devanshm/stockdash/session"
)

// Server serves one dashboard session.
type Server struct {
	sess     *session.Session
	quotes   session.QuoteSource
	news     session.NewsSource
	analyzer *sentiment.Analyzer
	log      *zap.Logger
	refresh  time.Duration
}

// Params configures a Server.
type Params struct {
	Session *session.Session
	Quotes  session.QuoteSource
	News    session.NewsSource
	Logger  *zap.Logger
	// Refresh is the websocket quote push interval.
	Refresh time.Duration
}

// New creates a dashboard server.
func New(p Params) *Server {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.Refresh <= 0 {
		p.Refresh = 5 * time.Second
	}
	return &Server{
		sess:     p.Session,
		quotes:   p.Quotes,
		news:     p.News,
		analyzer: sentiment.New(),
		log:      p.Logger,
		refresh:  p.Refresh,
	}
}

// Handler returns the API route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/stock/search", s.handleSearch)
	mux.HandleFunc("GET /api/stock/{symbol}/chart", s.handleChart)
	mux.HandleFunc("GET /api/news/{symbol}", s.handleNews)

	mux.HandleFunc("POST /api/session/ticker", s.handleSubmitTicker)
	mux.HandleFunc("POST /api/session/range", s.handleSelectRange)
	mux.HandleFunc("GET /api/session/chart", s.handleSessionChart)
	mux.HandleFunc("GET /api/session/news", s.handleSessionNews)
	mux.HandleFunc("POST /api/trade/buy", s.handleBuy)
	mux.HandleFunc("POST /api/trade/sell", s.handleSell)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/evaluate", s.handleEvaluate)
	mux.HandleFunc("GET /api/compare", s.handleCompare)
	mux.HandleFunc("GET /api/wallet", s.handleWallet)

	mux.HandleFunc("GET /ws/quotes", s.handleQuoteStream)

	mux.Handle("GET /metrics", metrics.Handler())

	return mux
}

// Serve runs the HTTP server until it fails.
func (s *Server) Serve(addr string) error {
	s.log.Info("dashboard server listening", zap.String("addr", addr))
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy to HTTP statuses. Every error is
// user-recoverable: prior session state is always intact.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		metrics.TradesRejected.WithLabelValues("funds").Inc()
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error(), Code: "insufficient_funds"})
	case errors.Is(err, ledger.ErrInsufficientShares):
		metrics.TradesRejected.WithLabelValues("shares").Inc()
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error(), Code: "insufficient_shares"})
	case errors.Is(err, session.ErrNoTicker):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error(), Code: "no_ticker"})
	case errors.Is(err, session.ErrQuoteUnavailable):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error(), Code: "quote_unavailable"})
	default:
		s.log.Warn("request failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorBody{Error: err.Error()})
	}
}

func seriesPoints(series market.Series) []map[string]any {
	points := make([]map[string]any, 0, len(series))
	for _, q := range series {
		points = append(points, map[string]any{
			"time":  q.Time.Format(time.RFC3339),
			"price": q.Price,
		})
	}
	return points
}
