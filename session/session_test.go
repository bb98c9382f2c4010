package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devanshm/stockdash/auth"
	"github.com/devanshm/stockdash/eval"
	"github.com/devanshm/stockdash/journal"
	"github.com/devanshm/stockdash/ledger"
	"github.com/devanshm/stockdash/market"
	"github.com/devanshm/stockdash/sentiment"
)

type fakeQuotes struct {
	series     map[string]market.Series
	errs       map[string]error
	chartCalls int
}

func (f *fakeQuotes) GetChart(ctx context.Context, symbol string, _ market.Range) (market.Series, error) {
	f.chartCalls++
	return f.GetWindow(ctx, symbol, "", "")
}

func (f *fakeQuotes) GetWindow(_ context.Context, symbol, _, _ string) (market.Series, error) {
	if err := f.errs[symbol]; err != nil {
		return nil, err
	}
	return f.series[symbol], nil
}

func (f *fakeQuotes) HasData(_ context.Context, symbol string) (bool, error) {
	if err := f.errs[symbol]; err != nil {
		return false, err
	}
	return !f.series[symbol].Empty(), nil
}

type fakeNews struct {
	headlines map[string][]string
	errs      map[string]error
	calls     int
}

func (f *fakeNews) GetHeadlines(_ context.Context, symbol string) ([]string, error) {
	f.calls++
	if err := f.errs[symbol]; err != nil {
		return nil, err
	}
	return f.headlines[symbol], nil
}

type memJournal struct {
	trades   []journal.TradeRecord
	balances []journal.BalanceSnapshot
}

func (j *memJournal) RecordTrade(t journal.TradeRecord) error       { j.trades = append(j.trades, t); return nil }
func (j *memJournal) RecordBalance(b journal.BalanceSnapshot) error { j.balances = append(j.balances, b); return nil }
func (j *memJournal) Close() error                                  { return nil }

func seriesAt(prices ...float64) market.Series {
	t0 := time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)
	s := make(market.Series, len(prices))
	for i, p := range prices {
		s[i] = market.Quote{Time: t0.Add(time.Duration(i) * 5 * time.Minute), Price: p}
	}
	return s
}

func newTestSession(t *testing.T, quotes *fakeQuotes, news *fakeNews, j journal.Journal) *Session {
	t.Helper()
	m := NewManager(Params{
		Quotes:          quotes,
		News:            news,
		Journal:         j,
		StartingBalance: 100000,
	})
	s, err := m.Open("anyone", "")
	require.NoError(t, err)
	return s
}

func TestOpenRequiresValidCredentials(t *testing.T) {
	t.Parallel()

	m := NewManager(Params{
		Quotes:          &fakeQuotes{},
		News:            &fakeNews{},
		Auth:            auth.NewStatic(map[string]string{"devansh": "1234"}),
		StartingBalance: 100000,
	})

	_, err := m.Open("devansh", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	s, err := m.Open("devansh", "1234")
	require.NoError(t, err)
	assert.Equal(t, 100000.0, s.Ledger().Cash())
	assert.Equal(t, market.Range1D, s.Range())
}

func TestSubmitTickerResolvesAndClearsCache(t *testing.T) {
	t.Parallel()

	quotes := &fakeQuotes{series: map[string]market.Series{
		"TCS.NS": seriesAt(4100),
		"AAPL":   seriesAt(190),
	}}
	news := &fakeNews{headlines: map[string][]string{
		"AAPL":   {"Apple shares surge"},
		"TCS.NS": {"TCS wins record deal"},
	}}
	s := newTestSession(t, quotes, news, nil)

	view, err := s.SubmitTicker(context.Background(), " apple ")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", view.Symbol)
	assert.False(t, view.Indian)

	_, err = s.News(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, news.calls)

	// Cached on second call.
	_, err = s.News(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, news.calls)

	// Ticker change invalidates the cache and triggers regional resolution.
	view, err = s.SubmitTicker(context.Background(), "tcs")
	require.NoError(t, err)
	assert.Equal(t, "TCS.NS", view.Symbol)
	assert.True(t, view.Resolved)
	assert.True(t, view.Indian)

	nv, err := s.News(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, news.calls)
	assert.Equal(t, []string{"TCS wins record deal"}, nv.Headlines)
}

func TestSubmitTickerEmpty(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, &fakeQuotes{}, &fakeNews{}, nil)
	_, err := s.SubmitTicker(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrNoTicker)
}

func TestRefreshQuote(t *testing.T) {
	t.Parallel()

	quotes := &fakeQuotes{series: map[string]market.Series{"AAPL": seriesAt(100, 101, 102)}}
	s := newTestSession(t, quotes, &fakeNews{}, nil)

	_, err := s.RefreshQuote(context.Background())
	assert.ErrorIs(t, err, ErrNoTicker)

	_, err = s.SubmitTicker(context.Background(), "AAPL")
	require.NoError(t, err)

	view, err := s.RefreshQuote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 102.0, view.Current)
	assert.InDelta(t, 2.0, view.PercentChange, 1e-9)
	assert.Len(t, view.Series, 3)
}

func TestRefreshQuoteNoData(t *testing.T) {
	t.Parallel()

	quotes := &fakeQuotes{series: map[string]market.Series{"GHOST": {}}}
	s := newTestSession(t, quotes, &fakeNews{}, nil)

	_, err := s.SubmitTicker(context.Background(), "GHOST")
	require.NoError(t, err)

	_, err = s.RefreshQuote(context.Background())
	assert.ErrorIs(t, err, ErrQuoteUnavailable)
}

// Dashboard walkthrough: starting balance 100000, buy 10@100, sell 5@120,
// evaluate at 120 → net P/L +200 → Good.
func TestTradingScenario(t *testing.T) {
	t.Parallel()

	quotes := &fakeQuotes{series: map[string]market.Series{"AAPL": seriesAt(100)}}
	j := &memJournal{}
	s := newTestSession(t, quotes, &fakeNews{}, j)

	_, err := s.SubmitTicker(context.Background(), "AAPL")
	require.NoError(t, err)

	buy, err := s.Buy(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 99000.0, buy.Balance)
	assert.Equal(t, ledger.Buy, buy.Trade.Side)

	// Price moves to 120.
	quotes.series["AAPL"] = seriesAt(120)
	_, err = s.RefreshQuote(context.Background())
	require.NoError(t, err)

	sell, err := s.Sell(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 99600.0, sell.Balance)
	assert.Equal(t, int64(5), s.Ledger().NetShares())

	ev := s.Evaluate(120)
	assert.InDelta(t, 200, ev.NetPL, 1e-9)
	assert.Equal(t, eval.Good, ev.Verdict)

	require.Len(t, j.trades, 2)
	assert.Equal(t, "Buy", j.trades[0].Side)
	assert.Equal(t, "Sell", j.trades[1].Side)
	require.Len(t, j.balances, 1)
	assert.InDelta(t, 200, j.balances[0].NetPL, 1e-9)
}

func TestBuyWithoutQuoteFetchesOne(t *testing.T) {
	t.Parallel()

	quotes := &fakeQuotes{series: map[string]market.Series{"AAPL": seriesAt(50)}}
	s := newTestSession(t, quotes, &fakeNews{}, nil)

	_, err := s.SubmitTicker(context.Background(), "AAPL")
	require.NoError(t, err)

	// No explicit RefreshQuote; Buy fetches the quote itself.
	view, err := s.Buy(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 50.0, view.Price)
	assert.Equal(t, 100000.0-100, view.Balance)
}

func TestLedgerRejectionsSurface(t *testing.T) {
	t.Parallel()

	quotes := &fakeQuotes{series: map[string]market.Series{"AAPL": seriesAt(100)}}
	s := newTestSession(t, quotes, &fakeNews{}, nil)

	_, err := s.SubmitTicker(context.Background(), "AAPL")
	require.NoError(t, err)

	_, err = s.Sell(context.Background(), 1)
	assert.ErrorIs(t, err, ledger.ErrInsufficientShares)

	_, err = s.Buy(context.Background(), 100000)
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	assert.Equal(t, 100000.0, s.Ledger().Cash(), "rejections leave the wallet intact")
}

func TestHistoryNewestFirstWithVerdicts(t *testing.T) {
	t.Parallel()

	quotes := &fakeQuotes{series: map[string]market.Series{"AAPL": seriesAt(100)}}
	s := newTestSession(t, quotes, &fakeNews{}, nil)

	_, err := s.SubmitTicker(context.Background(), "AAPL")
	require.NoError(t, err)

	_, err = s.Buy(context.Background(), 10)
	require.NoError(t, err)

	quotes.series["AAPL"] = seriesAt(100.3)
	_, err = s.RefreshQuote(context.Background())
	require.NoError(t, err)
	_, err = s.Buy(context.Background(), 5)
	require.NoError(t, err)

	entries := s.History(102)

	require.Len(t, entries, 2)
	// Newest first: the 5@100.3 buy.
	assert.Equal(t, int64(5), entries[0].Trade.Quantity)
	assert.InDelta(t, 1.7, entries[0].PL, 1e-9)
	assert.Equal(t, eval.Good, entries[0].Verdict)
	assert.Equal(t, "↑", entries[0].Direction)

	assert.Equal(t, int64(10), entries[1].Trade.Quantity)
	assert.InDelta(t, 2.0, entries[1].PL, 1e-9)
}

func TestCompareIsolatesFailures(t *testing.T) {
	t.Parallel()

	quotes := &fakeQuotes{
		series: map[string]market.Series{
			"RELIANCE.NS": seriesAt(2900, 2910),
			"TCS.NS":      seriesAt(4100, 4090),
		},
		errs: map[string]error{"INFY.NS": errors.New("upstream timeout")},
	}
	s := newTestSession(t, quotes, &fakeNews{}, nil)

	entries := s.Compare(context.Background(), []string{"RELIANCE.NS", "INFY.NS", "TCS.NS"}, false)

	require.Len(t, entries, 3)
	assert.Empty(t, entries[0].Err)
	assert.Len(t, entries[0].Series, 2)

	assert.Contains(t, entries[1].Err, "upstream timeout")
	assert.Empty(t, entries[1].Series)

	// The failure did not abort the remaining symbols.
	assert.Empty(t, entries[2].Err)
	assert.Len(t, entries[2].Series, 2)
}

func TestCompareWithSentiment(t *testing.T) {
	t.Parallel()

	quotes := &fakeQuotes{series: map[string]market.Series{
		"AAPL": seriesAt(190),
		"TSLA": seriesAt(180),
	}}
	news := &fakeNews{headlines: map[string][]string{
		"AAPL": {"Apple shares surge on record profit"},
		// TSLA has no headlines.
	}}
	s := newTestSession(t, quotes, news, nil)

	entries := s.Compare(context.Background(), []string{"AAPL", "TSLA"}, true)

	require.Len(t, entries, 2)
	assert.True(t, entries[0].HasSentiment)
	assert.Greater(t, entries[0].SentimentScore, 0.0)

	assert.False(t, entries[1].HasSentiment)
	assert.True(t, entries[1].NoNews)
}

func TestNewsAggregation(t *testing.T) {
	t.Parallel()

	quotes := &fakeQuotes{series: map[string]market.Series{"AAPL": seriesAt(190)}}
	news := &fakeNews{headlines: map[string][]string{
		"AAPL": {
			"Apple profit beats, shares surge",
			"Apple supplier slumps on weak demand",
		},
	}}
	s := newTestSession(t, quotes, news, nil)

	_, err := s.SubmitTicker(context.Background(), "AAPL")
	require.NoError(t, err)

	view, err := s.News(context.Background())
	require.NoError(t, err)
	require.Len(t, view.Results, 2)
	assert.Equal(t, sentiment.Positive, view.Results[0].Label)
	assert.Equal(t, sentiment.Negative, view.Results[1].Label)
	assert.Equal(t, sentiment.Interpret(view.Average), view.Band)
}
