package sentiment

// Word lists derived from financial news vocabulary
// (Loughran-McDonald style, trimmed to headline-sized language).

func loadPositiveWords() map[string]bool {
	words := []string{
		"beat", "beats", "bullish", "climb", "climbs", "gain", "gains",
		"growth", "grew", "jump", "jumps", "outperform", "profit", "profits",
		"rally", "rallies", "record", "rise", "rises", "soar", "soars",
		"strong", "surge", "surges", "up", "upbeat", "upgrade", "upgrades",
		"win", "wins",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

func loadNegativeWords() map[string]bool {
	words := []string{
		"bearish", "crash", "crashes", "cut", "cuts", "decline", "declines",
		"down", "downgrade", "downgrades", "drop", "drops", "fall", "falls",
		"fell", "loss", "losses", "miss", "misses", "plunge", "plunges",
		"probe", "slump", "slumps", "sink", "sinks", "slide", "slides",
		"tumble", "tumbles", "weak", "worst",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
