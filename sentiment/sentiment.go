// Package sentiment scores news headlines with a fixed financial lexicon.
package sentiment

import (
	"strings"
	"unicode"
)

// Label classifies a single headline.
type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

// Result is the sentiment of one headline. Score is in [-1, 1].
type Result struct {
	Headline string
	Label    Label
	Score    float64
}

// labelBand is the dead band around zero inside which a headline is neutral.
const labelBand = 0.1

// Analyzer scores headlines against positive/negative word lists.
type Analyzer struct {
	positive map[string]bool
	negative map[string]bool
}

// New creates an analyzer with the built-in financial lexicon.
func New() *Analyzer {
	return &Analyzer{
		positive: loadPositiveWords(),
		negative: loadNegativeWords(),
	}
}

// Analyze scores each headline independently. The result slice is aligned
// 1:1 with the input. A headline with no lexicon hits scores 0 (neutral).
func (a *Analyzer) Analyze(headlines []string) []Result {
	results := make([]Result, len(headlines))
	for i, hl := range headlines {
		results[i] = a.scoreHeadline(hl)
	}
	return results
}

func (a *Analyzer) scoreHeadline(hl string) Result {
	var pos, neg int
	for _, w := range tokenize(strings.ToLower(hl)) {
		if a.positive[w] {
			pos++
		}
		if a.negative[w] {
			neg++
		}
	}

	res := Result{Headline: hl, Label: Neutral}
	if total := pos + neg; total > 0 {
		res.Score = float64(pos-neg) / float64(total)
	}

	switch {
	case res.Score > labelBand:
		res.Label = Positive
	case res.Score < -labelBand:
		res.Label = Negative
	}
	return res
}

// Score aggregates per-headline results into the average sentiment score.
// Returns 0 for an empty result set.
func Score(results []Result) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.Score
	}
	return sum / float64(len(results))
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
