package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stockdash",
	Short: "A stock dashboard with paper trading and news sentiment",
	Long: `Stockdash is a stock market dashboard written in Go.

It provides tools for:
  - Looking up historical price charts for US and Indian (NSE/BSE) stocks
  - Scoring recent news headlines for sentiment
  - Paper trading against live quotes with a virtual wallet
  - Evaluating trading decisions with per-trade and aggregate P/L
  - Comparing multiple symbols side by side`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
