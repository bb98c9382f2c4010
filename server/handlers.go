package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/devanshm/stockdash/market"
	"github.com/devanshm/stockdash/metrics"
	"github.com/devanshm/stockdash/sentiment"
)

// handleSearch normalizes a query and reports how it resolves, including
// the NSE/BSE probe for bare Indian symbols.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "query parameter 'q' is required"})
		return
	}

	cleaned := market.Normalize(q)
	resolved := market.ResolveRegional(r.Context(), s.quotes, cleaned)

	writeJSON(w, http.StatusOK, map[string]any{
		"query":    q,
		"symbol":   resolved,
		"resolved": resolved != cleaned,
		"indian":   market.IsIndian(resolved),
	})
}

// handleChart serves a stateless chart fetch for any symbol and range.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	symbol := market.Normalize(r.PathValue("symbol"))

	rng := market.Range1D
	if raw := r.URL.Query().Get("range"); raw != "" {
		parsed, err := market.ParseRange(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
		rng = parsed
	}

	series, err := s.quotes.GetChart(r.Context(), symbol, rng)
	if err != nil {
		metrics.QuoteFetches.WithLabelValues("error").Inc()
		s.writeError(w, err)
		return
	}
	if series.Empty() {
		metrics.QuoteFetches.WithLabelValues("empty").Inc()
		writeJSON(w, http.StatusNotFound, errorBody{
			Error: fmt.Sprintf("no data available for %s over %s", symbol, rng),
			Code:  "quote_unavailable",
		})
		return
	}
	metrics.QuoteFetches.WithLabelValues("ok").Inc()

	latest, _ := series.Latest()
	writeJSON(w, http.StatusOK, map[string]any{
		"symbol":         symbol,
		"range":          rng,
		"current":        latest.Price,
		"percent_change": series.PercentChange(),
		"indian":         market.IsIndian(symbol),
		"points":         seriesPoints(series),
	})
}

// handleNews serves headlines and sentiment for any symbol, independent of
// the session's cached news.
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	symbol := market.Normalize(r.PathValue("symbol"))

	headlines, err := s.news.GetHeadlines(r.Context(), symbol)
	if err != nil {
		metrics.NewsFetches.WithLabelValues("error").Inc()
		s.writeError(w, err)
		return
	}
	metrics.NewsFetches.WithLabelValues("ok").Inc()

	results := s.analyzer.Analyze(headlines)
	avg := sentiment.Score(results)

	items := make([]map[string]any, 0, len(results))
	for _, res := range results {
		items = append(items, map[string]any{
			"headline": res.Headline,
			"label":    res.Label,
			"score":    res.Score,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"symbol":    symbol,
		"headlines": items,
		"average":   avg,
		"band":      sentiment.Interpret(avg),
	})
}

// handleSessionNews serves the session's cached headlines, fetching them on
// first call after a ticker change.
func (s *Server) handleSessionNews(w http.ResponseWriter, r *http.Request) {
	view, err := s.sess.News(r.Context())
	if err != nil {
		metrics.NewsFetches.WithLabelValues("error").Inc()
		s.writeError(w, err)
		return
	}
	metrics.NewsFetches.WithLabelValues("ok").Inc()

	items := make([]map[string]any, 0, len(view.Results))
	for _, res := range view.Results {
		items = append(items, map[string]any{
			"headline": res.Headline,
			"label":    res.Label,
			"score":    res.Score,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"symbol":    view.Symbol,
		"headlines": items,
		"average":   view.Average,
		"band":      view.Band,
	})
}

type tickerRequest struct {
	Ticker string `json:"ticker"`
}

func (s *Server) handleSubmitTicker(w http.ResponseWriter, r *http.Request) {
	var req tickerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	view, err := s.sess.SubmitTicker(r.Context(), req.Ticker)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"symbol":   view.Symbol,
		"resolved": view.Resolved,
		"indian":   view.Indian,
	})
}

type rangeRequest struct {
	Range string `json:"range"`
}

func (s *Server) handleSelectRange(w http.ResponseWriter, r *http.Request) {
	var req rangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	rng, err := market.ParseRange(req.Range)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	if err := s.sess.SelectRange(rng); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"range": rng})
}

func (s *Server) handleSessionChart(w http.ResponseWriter, r *http.Request) {
	view, err := s.sess.RefreshQuote(r.Context())
	if err != nil {
		metrics.QuoteFetches.WithLabelValues("error").Inc()
		s.writeError(w, err)
		return
	}
	metrics.QuoteFetches.WithLabelValues("ok").Inc()

	writeJSON(w, http.StatusOK, map[string]any{
		"symbol":         view.Symbol,
		"range":          view.Range,
		"current":        view.Current,
		"percent_change": view.PercentChange,
		"indian":         view.Indian,
		"points":         seriesPoints(view.Series),
	})
}

type tradeRequest struct {
	Quantity int64 `json:"quantity"`
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	s.handleTrade(w, r, "buy")
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	s.handleTrade(w, r, "sell")
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request, side string) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	exec := s.sess.Buy
	if side == "sell" {
		exec = s.sess.Sell
	}

	view, err := exec(r.Context(), req.Quantity)
	if err != nil {
		s.writeError(w, err)
		return
	}
	metrics.TradesExecuted.WithLabelValues(side).Inc()

	writeJSON(w, http.StatusOK, map[string]any{
		"trade_id": view.Trade.ID,
		"side":     view.Trade.Side,
		"quantity": view.Trade.Quantity,
		"price":    view.Price,
		"balance":  view.Balance,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	quote, ok := s.sess.LastQuote()
	if !ok {
		view, err := s.sess.RefreshQuote(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		quote.Price = view.Current
	}

	entries := s.sess.History(quote.Price)
	items := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		items = append(items, map[string]any{
			"trade_id":  e.Trade.ID,
			"side":      e.Trade.Side,
			"quantity":  e.Trade.Quantity,
			"price":     e.Trade.Price,
			"time":      e.Trade.Time,
			"pl":        e.PL,
			"verdict":   e.Verdict,
			"direction": e.Direction,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"current": quote.Price,
		"trades":  items,
	})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	quote, ok := s.sess.LastQuote()
	if !ok {
		view, err := s.sess.RefreshQuote(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		quote.Price = view.Current
	}

	ev := s.sess.Evaluate(quote.Price)
	writeJSON(w, http.StatusOK, map[string]any{
		"net_pl":     ev.NetPL,
		"verdict":    ev.Verdict,
		"cash":       ev.Cash,
		"net_shares": ev.NetShares,
	})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("symbols")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "query parameter 'symbols' is required"})
		return
	}

	var symbols []string
	for _, sym := range strings.Split(raw, ",") {
		if sym = market.Normalize(sym); sym != "" {
			symbols = append(symbols, sym)
		}
	}

	withSentiment := r.URL.Query().Get("sentiment") == "1"
	entries := s.sess.Compare(r.Context(), symbols, withSentiment)

	items := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		item := map[string]any{"symbol": e.Symbol}
		if e.Err != "" {
			item["error"] = e.Err
		} else {
			item["points"] = seriesPoints(e.Series)
		}
		if withSentiment {
			if e.HasSentiment {
				item["sentiment_score"] = e.SentimentScore
			} else {
				item["no_news"] = true
			}
		}
		items = append(items, item)
	}

	writeJSON(w, http.StatusOK, map[string]any{"symbols": items})
}

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	snap := s.sess.Ledger().Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"cash":       snap.Cash,
		"net_shares": snap.NetShares,
		"trades":     len(snap.Trades),
	})
}
