package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/devanshm/stockdash/cmd/stockdash/cmd"
)

func main() {
	// Optional .env for NEWS_API_KEY and friends; absence is fine.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
