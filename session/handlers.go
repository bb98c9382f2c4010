package session

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/devanshm/stockdash/eval"
	"github.com/devanshm/stockdash/journal"
	"github.com/devanshm/stockdash/ledger"
	"github.com/devanshm/stockdash/market"
	"github.com/devanshm/stockdash/sentiment"
)

// TickerView is the result of submitting a ticker.
type TickerView struct {
	Input    string
	Symbol   string
	Resolved bool // true when regional resolution changed the symbol
	Indian   bool
}

// SubmitTicker normalizes and resolves raw ticker input, selects it, and
// clears the cached headlines/sentiment for the previous symbol.
func (s *Session) SubmitTicker(ctx context.Context, raw string) (TickerView, error) {
	cleaned := market.Normalize(raw)
	if cleaned == "" {
		return TickerView{}, ErrNoTicker
	}

	resolved := market.ResolveRegional(ctx, s.mgr.quotes, cleaned)

	s.mu.Lock()
	s.symbol = resolved
	s.headlines = nil
	s.results = nil
	s.haveQuote = false
	s.mu.Unlock()

	s.mgr.log.Info("ticker selected",
		zap.String("input", raw),
		zap.String("symbol", resolved),
	)

	return TickerView{
		Input:    raw,
		Symbol:   resolved,
		Resolved: resolved != cleaned,
		Indian:   market.IsIndian(resolved),
	}, nil
}

// SelectRange switches the chart window for subsequent quote fetches.
func (s *Session) SelectRange(rng market.Range) error {
	if !rng.Valid() {
		return fmt.Errorf("invalid range %q", rng)
	}
	s.mu.Lock()
	s.rng = rng
	s.mu.Unlock()
	return nil
}

// ChartView is the price chart plus its headline numbers.
type ChartView struct {
	Symbol        string
	Range         market.Range
	Series        market.Series
	Current       float64
	PercentChange float64
	Indian        bool
	FetchedAt     time.Time
}

// RefreshQuote fetches the price series for the selected symbol and range
// and caches the latest quote for the trading handlers. An empty series
// yields ErrQuoteUnavailable and leaves the previous state intact.
func (s *Session) RefreshQuote(ctx context.Context) (ChartView, error) {
	s.mu.Lock()
	symbol, rng := s.symbol, s.rng
	s.mu.Unlock()

	if symbol == "" {
		return ChartView{}, ErrNoTicker
	}

	series, err := s.mgr.quotes.GetChart(ctx, symbol, rng)
	if err != nil {
		s.mgr.log.Warn("quote fetch failed",
			zap.String("symbol", symbol),
			zap.Error(err),
		)
		return ChartView{}, fmt.Errorf("fetch chart for %s: %w", symbol, err)
	}

	latest, ok := series.Latest()
	if !ok {
		return ChartView{}, fmt.Errorf("%s %s: %w", symbol, rng, ErrQuoteUnavailable)
	}

	s.mu.Lock()
	s.lastQuote = latest
	s.haveQuote = true
	s.mu.Unlock()

	return ChartView{
		Symbol:        symbol,
		Range:         rng,
		Series:        series,
		Current:       latest.Price,
		PercentChange: series.PercentChange(),
		Indian:        market.IsIndian(symbol),
		FetchedAt:     time.Now(),
	}, nil
}

// NewsView is the headlines list with per-headline and aggregate sentiment.
type NewsView struct {
	Symbol    string
	Headlines []string
	Results   []sentiment.Result
	Average   float64
	Band      sentiment.Band
}

// News returns cached headlines and sentiment for the selected symbol,
// fetching and scoring them on first call after a ticker change.
func (s *Session) News(ctx context.Context) (NewsView, error) {
	s.mu.Lock()
	symbol := s.symbol
	cachedHeadlines, cachedResults := s.headlines, s.results
	s.mu.Unlock()

	if symbol == "" {
		return NewsView{}, ErrNoTicker
	}

	if cachedHeadlines == nil {
		headlines, err := s.mgr.news.GetHeadlines(ctx, symbol)
		if err != nil {
			return NewsView{}, fmt.Errorf("fetch headlines for %s: %w", symbol, err)
		}

		cachedHeadlines = headlines
		cachedResults = s.mgr.analyzer.Analyze(headlines)

		s.mu.Lock()
		// A later SubmitTicker invalidates this fetch; don't cache stale news.
		if s.symbol == symbol {
			s.headlines = cachedHeadlines
			s.results = cachedResults
		}
		s.mu.Unlock()
	}

	avg := sentiment.Score(cachedResults)
	return NewsView{
		Symbol:    symbol,
		Headlines: cachedHeadlines,
		Results:   cachedResults,
		Average:   avg,
		Band:      sentiment.Interpret(avg),
	}, nil
}

// TradeView is the outcome of a buy or sell action.
type TradeView struct {
	Trade   ledger.Trade
	Price   float64
	Balance float64
}

// Buy purchases qty shares at the latest cached quote price. Ledger
// rejections (insufficient funds) pass through unchanged.
func (s *Session) Buy(ctx context.Context, qty int64) (TradeView, error) {
	return s.trade(ctx, qty, s.ledger.Buy)
}

// Sell sells qty shares at the latest cached quote price. Ledger rejections
// (insufficient shares) pass through unchanged.
func (s *Session) Sell(ctx context.Context, qty int64) (TradeView, error) {
	return s.trade(ctx, qty, s.ledger.Sell)
}

func (s *Session) trade(ctx context.Context, qty int64, exec func(int64, float64, time.Time) (ledger.Trade, error)) (TradeView, error) {
	quote, symbol, err := s.currentQuote(ctx)
	if err != nil {
		return TradeView{}, err
	}

	t, err := exec(qty, quote.Price, time.Now())
	if err != nil {
		return TradeView{}, err
	}

	s.mgr.log.Info("trade executed",
		zap.String("symbol", symbol),
		zap.String("side", string(t.Side)),
		zap.Int64("quantity", t.Quantity),
		zap.Float64("price", t.Price),
		zap.Float64("balance", s.ledger.Cash()),
	)

	if err := s.mgr.journal.RecordTrade(journal.TradeRecord{
		TradeID:  t.ID,
		Symbol:   symbol,
		Side:     string(t.Side),
		Quantity: t.Quantity,
		Price:    t.Price,
		Time:     t.Time,
	}); err != nil {
		// Journaling is telemetry; a failed write must not undo the trade.
		s.mgr.log.Warn("journal write failed", zap.Error(err))
	}

	return TradeView{Trade: t, Price: quote.Price, Balance: s.ledger.Cash()}, nil
}

// currentQuote returns the cached latest quote, fetching one first if the
// session has none yet.
func (s *Session) currentQuote(ctx context.Context) (market.Quote, string, error) {
	s.mu.Lock()
	symbol, quote, ok := s.symbol, s.lastQuote, s.haveQuote
	s.mu.Unlock()

	if symbol == "" {
		return market.Quote{}, "", ErrNoTicker
	}
	if ok {
		return quote, symbol, nil
	}

	if _, err := s.RefreshQuote(ctx); err != nil {
		return market.Quote{}, "", err
	}

	s.mu.Lock()
	quote = s.lastQuote
	s.mu.Unlock()
	return quote, symbol, nil
}

// HistoryEntry is one past trade annotated against the current price.
type HistoryEntry struct {
	Trade     ledger.Trade
	PL        float64
	Verdict   eval.Verdict
	Direction string
}

// History lists trades newest first, each with its per-trade P/L and
// verdict against the supplied current price.
func (s *Session) History(currentPrice float64) []HistoryEntry {
	trades := s.ledger.Trades()

	entries := make([]HistoryEntry, 0, len(trades))
	for i := len(trades) - 1; i >= 0; i-- {
		t := trades[i]
		pl := ledger.TradePL(t, currentPrice)
		entries = append(entries, HistoryEntry{
			Trade:     t,
			PL:        pl,
			Verdict:   eval.ClassifyTrade(pl),
			Direction: eval.Direction(pl),
		})
	}
	return entries
}

// EvalView is the aggregate decision evaluation.
type EvalView struct {
	NetPL     float64
	Verdict   eval.Verdict
	Cash      float64
	NetShares int64
}

// Evaluate replays the full trade history against the supplied current
// price and classifies the aggregate result with the strict sign test.
func (s *Session) Evaluate(currentPrice float64) EvalView {
	snap := s.ledger.Snapshot()
	pl := ledger.NetPL(snap.Trades, currentPrice)

	view := EvalView{
		NetPL:     pl,
		Verdict:   eval.ClassifyNet(pl),
		Cash:      snap.Cash,
		NetShares: snap.NetShares,
	}

	if err := s.mgr.journal.RecordBalance(journal.BalanceSnapshot{
		Time:      time.Now(),
		Cash:      snap.Cash,
		NetShares: snap.NetShares,
		NetPL:     pl,
	}); err != nil {
		s.mgr.log.Warn("journal write failed", zap.Error(err))
	}

	return view
}

// CompareEntry is one symbol's slice of the comparison view. Err is set,
// and the other fields empty, when that symbol's fetch failed; one bad
// symbol never aborts the rest.
type CompareEntry struct {
	Symbol         string
	Series         market.Series
	SentimentScore float64
	HasSentiment   bool
	NoNews         bool
	Err            string
}

// Compare fetches a fixed five-day hourly series for each requested symbol,
// optionally with an aggregate sentiment score per symbol.
func (s *Session) Compare(ctx context.Context, symbols []string, withSentiment bool) []CompareEntry {
	entries := make([]CompareEntry, 0, len(symbols))

	for _, sym := range symbols {
		entry := CompareEntry{Symbol: sym}

		series, err := s.mgr.quotes.GetWindow(ctx, sym, comparePeriod, compareInterval)
		if err != nil {
			s.mgr.log.Warn("comparison fetch failed",
				zap.String("symbol", sym),
				zap.Error(err),
			)
			entry.Err = err.Error()
			entries = append(entries, entry)
			continue
		}
		entry.Series = series

		if withSentiment {
			headlines, err := s.mgr.news.GetHeadlines(ctx, sym)
			switch {
			case err != nil:
				s.mgr.log.Warn("comparison news fetch failed",
					zap.String("symbol", sym),
					zap.Error(err),
				)
				entry.NoNews = true
			case len(headlines) == 0:
				entry.NoNews = true
			default:
				entry.SentimentScore = sentiment.Score(s.mgr.analyzer.Analyze(headlines))
				entry.HasSentiment = true
			}
		}

		entries = append(entries, entry)
	}

	return entries
}
