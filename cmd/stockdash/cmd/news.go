package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devanshm/stockdash/market"
	"github.com/devanshm/stockdash/news"
	"github.com/devanshm/stockdash/sentiment"
)

var newsCmd = &cobra.Command{
	Use:   "news <ticker>",
	Short: "Fetch recent headlines with sentiment",
	Long: `Fetch recent news headlines for a ticker and score each for sentiment.

Requires a news API key in the NEWS_API_KEY environment variable
(a .env file in the working directory is read automatically).

Example:
  stockdash news TSLA`,
	Args: cobra.ExactArgs(1),
	RunE: runNews,
}

func init() {
	rootCmd.AddCommand(newsCmd)
}

func runNews(cmd *cobra.Command, args []string) error {
	key := os.Getenv("NEWS_API_KEY")
	if key == "" {
		return fmt.Errorf("news API key not set (export NEWS_API_KEY)")
	}

	symbol := market.Normalize(args[0])

	client := news.NewClient(key)
	headlines, err := client.GetHeadlines(context.Background(), symbol)
	if err != nil {
		return fmt.Errorf("fetch headlines: %w", err)
	}
	if len(headlines) == 0 {
		fmt.Printf("No recent news found for %s\n", symbol)
		return nil
	}

	analyzer := sentiment.New()
	results := analyzer.Analyze(headlines)
	avg := sentiment.Score(results)

	fmt.Printf("News for %s:\n\n", symbol)
	for _, res := range results {
		fmt.Printf("  [%-8s %+.2f]  %s\n", res.Label, res.Score, res.Headline)
	}
	fmt.Printf("\nAverage sentiment: %+.2f (%s)\n", avg, sentiment.Interpret(avg))
	return nil
}
