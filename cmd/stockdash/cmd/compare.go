package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devanshm/stockdash/market"
	"github.com/devanshm/stockdash/news"
	"github.com/devanshm/stockdash/session"
	"github.com/devanshm/stockdash/yahoo"
)

var compareCmd = &cobra.Command{
	Use:   "compare <ticker>...",
	Short: "Compare price moves across symbols",
	Long: `Fetch a five-day hourly series for each symbol and print the percent
move side by side. With --sentiment, also print each symbol's average
headline sentiment (requires NEWS_API_KEY).

Example:
  stockdash compare RELIANCE.NS TCS.NS INFY.NS`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCompare,
}

var compareSentiment bool

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().BoolVar(&compareSentiment, "sentiment", false, "include average news sentiment per symbol")
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	quotes := yahoo.NewClient()

	var headlines session.NewsSource
	if compareSentiment {
		key := os.Getenv("NEWS_API_KEY")
		if key == "" {
			return fmt.Errorf("--sentiment requires a news API key (export NEWS_API_KEY)")
		}
		headlines = news.NewClient(key)
	}

	mgr := session.NewManager(session.Params{Quotes: quotes, News: headlines})
	sess, err := mgr.Open("", "")
	if err != nil {
		return err
	}

	symbols := make([]string, 0, len(args))
	for _, arg := range args {
		symbols = append(symbols, market.Normalize(arg))
	}

	for _, entry := range sess.Compare(ctx, symbols, compareSentiment) {
		if entry.Err != "" {
			fmt.Printf("  %-14s  unavailable: %s\n", entry.Symbol, entry.Err)
			continue
		}
		latest, _ := entry.Series.Latest()
		line := fmt.Sprintf("  %-14s  %10.2f  %+6.2f%%", entry.Symbol, latest.Price, entry.Series.PercentChange())
		if compareSentiment {
			if entry.HasSentiment {
				line += fmt.Sprintf("  sentiment %+.2f", entry.SentimentScore)
			} else {
				line += "  no recent news"
			}
		}
		fmt.Println(line)
	}
	return nil
}
