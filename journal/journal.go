// Package journal records executed paper trades and balance snapshots for
// post-session review. The journal is write-only telemetry: sessions never
// read their own journal back, so losing it costs nothing but history.
package journal

import "time"

// TradeRecord is one executed buy or sell.
type TradeRecord struct {
	TradeID  string
	Symbol   string
	Side     string
	Quantity int64
	Price    float64
	Time     time.Time
}

// BalanceSnapshot captures the ledger state at an evaluation point.
type BalanceSnapshot struct {
	Time      time.Time
	Cash      float64
	NetShares int64
	NetPL     float64
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordBalance(BalanceSnapshot) error
	Close() error
}

// Nop discards every record. Used when journaling is disabled.
type Nop struct{}

func (Nop) RecordTrade(TradeRecord) error       { return nil }
func (Nop) RecordBalance(BalanceSnapshot) error { return nil }
func (Nop) Close() error                        { return nil }
