package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devanshm/stockdash/market"
	"github.com/devanshm/stockdash/yahoo"
)

var quoteCmd = &cobra.Command{
	Use:   "quote <ticker>",
	Short: "Fetch a price chart for a ticker",
	Long: `Fetch and print the close-price series for a ticker.

Aliases like APPLE or TESLA resolve to their symbols, and bare Indian
symbols are probed on the NSE and BSE.

Examples:
  stockdash quote AAPL
  stockdash quote reliance --range 6M`,
	Args: cobra.ExactArgs(1),
	RunE: runQuote,
}

var quoteRange string

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringVarP(&quoteRange, "range", "r", "1D", "chart range (1D, 5D, 1M, 6M, 1Y, 5Y, ALL)")
}

func runQuote(cmd *cobra.Command, args []string) error {
	rng, err := market.ParseRange(quoteRange)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client := yahoo.NewClient()

	symbol := market.ResolveRegional(ctx, client, market.Normalize(args[0]))

	series, err := client.GetChart(ctx, symbol, rng)
	if err != nil {
		return fmt.Errorf("fetch chart: %w", err)
	}
	if series.Empty() {
		return fmt.Errorf("no data available for %s over %s", symbol, rng)
	}

	latest, _ := series.Latest()
	fmt.Printf("%s (%s): %.2f (%+.2f%%)\n", symbol, rng, latest.Price, series.PercentChange())
	fmt.Printf("%d points from %s to %s\n",
		len(series),
		series[0].Time.Format("2006-01-02 15:04"),
		latest.Time.Format("2006-01-02 15:04"),
	)

	for _, q := range series {
		fmt.Printf("  %s  %10.2f\n", q.Time.Format("2006-01-02 15:04"), q.Price)
	}
	return nil
}
