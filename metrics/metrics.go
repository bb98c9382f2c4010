// Package metrics exposes Prometheus metrics for the dashboard server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	QuoteFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stockdash",
		Name:      "quote_fetches_total",
		Help:      "Quote source fetches, by outcome.",
	}, []string{"outcome"}) // ok, empty, error

	NewsFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stockdash",
		Name:      "news_fetches_total",
		Help:      "Headline fetches, by outcome.",
	}, []string{"outcome"})

	TradesExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stockdash",
		Name:      "trades_executed_total",
		Help:      "Paper trades executed, by side.",
	}, []string{"side"})

	TradesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stockdash",
		Name:      "trades_rejected_total",
		Help:      "Paper trades rejected by ledger invariants, by reason.",
	}, []string{"reason"}) // funds, shares

	WebsocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "stockdash",
		Name:      "websocket_clients",
		Help:      "Connected quote-stream clients.",
	})
)

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
