package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devanshm/stockdash/journal"
	"github.com/devanshm/stockdash/market"
	"github.com/devanshm/stockdash/session"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted paper-trading walkthrough",
	Long: `Run a scripted trading session against canned prices and headlines.

Shows the full workflow without network access or API keys:
  1. Submitting a ticker
  2. Reading the chart and news sentiment
  3. Buying and selling shares from the virtual wallet
  4. Reviewing per-trade verdicts and the aggregate evaluation

Trades are recorded to ./demo-trades.csv and ./demo-balances.csv.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

// scriptedQuotes replays a fixed price path so the demo is reproducible.
type scriptedQuotes struct {
	prices []float64
	calls  int
}

func (s *scriptedQuotes) series() market.Series {
	upto := s.calls
	if upto > len(s.prices) {
		upto = len(s.prices)
	}
	base := time.Now().Add(-time.Duration(len(s.prices)) * time.Minute)
	out := make(market.Series, 0, upto)
	for i := 0; i < upto; i++ {
		out = append(out, market.Quote{Time: base.Add(time.Duration(i) * time.Minute), Price: s.prices[i]})
	}
	return out
}

func (s *scriptedQuotes) GetChart(context.Context, string, market.Range) (market.Series, error) {
	s.calls += 3
	return s.series(), nil
}

func (s *scriptedQuotes) GetWindow(context.Context, string, string, string) (market.Series, error) {
	return s.series(), nil
}

func (s *scriptedQuotes) HasData(context.Context, string) (bool, error) { return true, nil }

type scriptedNews struct{}

func (scriptedNews) GetHeadlines(context.Context, string) ([]string, error) {
	return []string{
		"Reliance shares surge on record quarterly profit",
		"Analysts upgrade outlook citing strong retail growth",
		"Margins slip as energy demand weakens",
	}, nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	fmt.Println("=== Paper Trading Demo ===")
	fmt.Println()

	j, err := journal.NewCSV("./demo-trades.csv", "./demo-balances.csv")
	if err != nil {
		return err
	}
	defer j.Close()

	quotes := &scriptedQuotes{prices: []float64{2500, 2512, 2495, 2530, 2548, 2561, 2540, 2575, 2590}}

	mgr := session.NewManager(session.Params{
		Quotes:          quotes,
		News:            scriptedNews{},
		Journal:         j,
		StartingBalance: 100_000,
	})

	sess, err := mgr.Open("demo", "")
	if err != nil {
		return err
	}

	ticker, err := sess.SubmitTicker(ctx, "RELIANCE.NS")
	if err != nil {
		return err
	}
	fmt.Printf("Selected %s\n", ticker.Symbol)

	chart, err := sess.RefreshQuote(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Current price: %.2f (%+.2f%%)\n\n", chart.Current, chart.PercentChange)

	nv, err := sess.News(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Headlines:")
	for _, res := range nv.Results {
		fmt.Printf("  [%-8s %+.2f]  %s\n", res.Label, res.Score, res.Headline)
	}
	fmt.Printf("Average sentiment: %+.2f (%s)\n\n", nv.Average, nv.Band)

	buy, err := sess.Buy(ctx, 10)
	if err != nil {
		return err
	}
	fmt.Printf("Bought 10 @ %.2f, balance %.2f\n", buy.Price, buy.Balance)

	// Let the scripted market move, then take some profit.
	if _, err := sess.RefreshQuote(ctx); err != nil {
		return err
	}

	sell, err := sess.Sell(ctx, 4)
	if err != nil {
		return err
	}
	fmt.Printf("Sold 4 @ %.2f, balance %.2f\n\n", sell.Price, sell.Balance)

	chart, err = sess.RefreshQuote(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Trade history (newest first):")
	for _, e := range sess.History(chart.Current) {
		fmt.Printf("  %-4s %3d @ %.2f  P/L %+8.2f  %s %s\n",
			e.Trade.Side, e.Trade.Quantity, e.Trade.Price, e.PL, e.Direction, e.Verdict)
	}

	ev := sess.Evaluate(chart.Current)
	fmt.Printf("\nNet P/L at %.2f: %+.2f (%s)\n", chart.Current, ev.NetPL, ev.Verdict)
	fmt.Printf("Wallet: %.2f cash, %d shares held\n", ev.Cash, ev.NetShares)
	return nil
}
