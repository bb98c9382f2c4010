package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devanshm/stockdash/market"
	"github.com/devanshm/stockdash/session"
)

type fakeQuotes struct {
	prices map[string][]float64
}

func (f *fakeQuotes) series(symbol string) market.Series {
	prices, ok := f.prices[symbol]
	if !ok {
		return nil
	}
	base := time.Date(2024, 3, 1, 9, 15, 0, 0, time.UTC)
	out := make(market.Series, 0, len(prices))
	for i, p := range prices {
		out = append(out, market.Quote{Time: base.Add(time.Duration(i) * time.Minute), Price: p})
	}
	return out
}

func (f *fakeQuotes) GetChart(_ context.Context, symbol string, _ market.Range) (market.Series, error) {
	return f.series(symbol), nil
}

func (f *fakeQuotes) GetWindow(_ context.Context, symbol, _, _ string) (market.Series, error) {
	if symbol == "BROKEN" {
		return nil, fmt.Errorf("upstream unavailable")
	}
	return f.series(symbol), nil
}

func (f *fakeQuotes) HasData(_ context.Context, symbol string) (bool, error) {
	_, ok := f.prices[symbol]
	return ok, nil
}

type fakeNews struct {
	headlines map[string][]string
}

func (f *fakeNews) GetHeadlines(_ context.Context, symbol string) ([]string, error) {
	return f.headlines[symbol], nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	quotes := &fakeQuotes{prices: map[string][]float64{
		"AAPL":        {100, 102, 105},
		"TSLA":        {200, 190},
		"RELIANCE.NS": {2500, 2510, 2490},
	}}
	news := &fakeNews{headlines: map[string][]string{
		"AAPL": {"Apple shares surge on record profit", "Analysts see strong growth"},
	}}

	mgr := session.NewManager(session.Params{
		Quotes:          quotes,
		News:            news,
		StartingBalance: 100000,
	})
	sess, err := mgr.Open("", "")
	require.NoError(t, err)

	srv := New(Params{Session: sess, Quotes: quotes, News: news})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, wantStatus int) map[string]any {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, wantStatus, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func postJSON(t *testing.T, url string, payload any, wantStatus int) map[string]any {
	t.Helper()
	buf, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, wantStatus, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestSearchResolvesAliasAndRegion(t *testing.T) {
	ts := newTestServer(t)

	body := getJSON(t, ts.URL+"/api/stock/search?q=apple", http.StatusOK)
	assert.Equal(t, "AAPL", body["symbol"])
	assert.Equal(t, false, body["indian"])

	body = getJSON(t, ts.URL+"/api/stock/search?q=reliance", http.StatusOK)
	assert.Equal(t, "RELIANCE.NS", body["symbol"])
	assert.Equal(t, true, body["resolved"])
	assert.Equal(t, true, body["indian"])

	resp, err := http.Get(ts.URL + "/api/stock/search")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatelessChart(t *testing.T) {
	ts := newTestServer(t)

	body := getJSON(t, ts.URL+"/api/stock/AAPL/chart?range=1M", http.StatusOK)
	assert.Equal(t, "AAPL", body["symbol"])
	assert.Equal(t, 105.0, body["current"])
	assert.InDelta(t, 5.0, body["percent_change"].(float64), 1e-9)
	assert.Len(t, body["points"], 3)

	body = getJSON(t, ts.URL+"/api/stock/UNKNOWN/chart", http.StatusNotFound)
	assert.Equal(t, "quote_unavailable", body["code"])

	resp, err := http.Get(ts.URL + "/api/stock/AAPL/chart?range=bogus")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatelessNews(t *testing.T) {
	ts := newTestServer(t)

	body := getJSON(t, ts.URL+"/api/news/AAPL", http.StatusOK)
	assert.Len(t, body["headlines"], 2)
	assert.Greater(t, body["average"].(float64), 0.0)
	assert.Contains(t, body["band"].(string), "Positive")
}

func TestTradingFlow(t *testing.T) {
	ts := newTestServer(t)

	body := postJSON(t, ts.URL+"/api/session/ticker", map[string]string{"ticker": "apple"}, http.StatusOK)
	assert.Equal(t, "AAPL", body["symbol"])

	body = getJSON(t, ts.URL+"/api/session/chart", http.StatusOK)
	assert.Equal(t, 105.0, body["current"])

	body = postJSON(t, ts.URL+"/api/trade/buy", map[string]int64{"quantity": 10}, http.StatusOK)
	assert.Equal(t, "buy", strings.ToLower(body["side"].(string)))
	assert.Equal(t, 100000-10*105.0, body["balance"])

	body = postJSON(t, ts.URL+"/api/trade/sell", map[string]int64{"quantity": 4}, http.StatusOK)
	assert.Equal(t, 100000-10*105.0+4*105.0, body["balance"])

	body = getJSON(t, ts.URL+"/api/history", http.StatusOK)
	trades := body["trades"].([]any)
	require.Len(t, trades, 2)
	// Newest first.
	assert.Equal(t, "sell", strings.ToLower(trades[0].(map[string]any)["side"].(string)))

	body = getJSON(t, ts.URL+"/api/evaluate", http.StatusOK)
	assert.Equal(t, 0.0, body["net_pl"])
	assert.Equal(t, 6.0, body["net_shares"])

	body = getJSON(t, ts.URL+"/api/wallet", http.StatusOK)
	assert.Equal(t, 6.0, body["net_shares"])
	assert.Equal(t, 2.0, body["trades"])
}

func TestTradeRejections(t *testing.T) {
	ts := newTestServer(t)

	// No ticker selected yet.
	body := postJSON(t, ts.URL+"/api/trade/buy", map[string]int64{"quantity": 1}, http.StatusBadRequest)
	assert.Equal(t, "no_ticker", body["code"])

	postJSON(t, ts.URL+"/api/session/ticker", map[string]string{"ticker": "AAPL"}, http.StatusOK)

	body = postJSON(t, ts.URL+"/api/trade/buy", map[string]int64{"quantity": 10000}, http.StatusUnprocessableEntity)
	assert.Equal(t, "insufficient_funds", body["code"])

	body = postJSON(t, ts.URL+"/api/trade/sell", map[string]int64{"quantity": 1}, http.StatusUnprocessableEntity)
	assert.Equal(t, "insufficient_shares", body["code"])
}

func TestCompareIsolation(t *testing.T) {
	ts := newTestServer(t)

	body := getJSON(t, ts.URL+"/api/compare?symbols=AAPL,BROKEN,TSLA&sentiment=1", http.StatusOK)
	entries := body["symbols"].([]any)
	require.Len(t, entries, 3)

	first := entries[0].(map[string]any)
	assert.Equal(t, "AAPL", first["symbol"])
	assert.NotNil(t, first["points"])
	assert.NotNil(t, first["sentiment_score"])

	second := entries[1].(map[string]any)
	assert.NotEmpty(t, second["error"])

	third := entries[2].(map[string]any)
	assert.NotNil(t, third["points"])
	assert.Equal(t, true, third["no_news"])
}

func TestRangeSelection(t *testing.T) {
	ts := newTestServer(t)

	body := postJSON(t, ts.URL+"/api/session/range", map[string]string{"range": "5y"}, http.StatusOK)
	assert.Equal(t, "5Y", body["range"])

	resp, err := http.Post(ts.URL+"/api/session/range", "application/json",
		strings.NewReader(`{"range":"2W"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
