package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeAlignedWithInput(t *testing.T) {
	t.Parallel()

	a := New()
	headlines := []string{
		"Shares surge after record profit beat",
		"Stock plunges as earnings miss sends shares down",
		"Company announces quarterly dividend",
	}

	results := a.Analyze(headlines)
	assert.Len(t, results, 3)

	assert.Equal(t, Positive, results[0].Label)
	assert.Greater(t, results[0].Score, 0.0)

	assert.Equal(t, Negative, results[1].Label)
	assert.Less(t, results[1].Score, 0.0)

	// No lexicon hits at all: neutral with zero score.
	assert.Equal(t, Neutral, results[2].Label)
	assert.Zero(t, results[2].Score)

	for i, r := range results {
		assert.Equal(t, headlines[i], r.Headline)
	}
}

func TestAnalyzeMixedHeadline(t *testing.T) {
	t.Parallel()

	a := New()
	// One positive and one negative hit cancel out.
	res := a.Analyze([]string{"Stock gains despite weak outlook"})
	assert.Equal(t, Neutral, res[0].Label)
	assert.Zero(t, res[0].Score)
}

func TestAnalyzeEmpty(t *testing.T) {
	t.Parallel()

	a := New()
	assert.Empty(t, a.Analyze(nil))
	assert.Zero(t, Score(nil))
}

func TestScoreAverages(t *testing.T) {
	t.Parallel()

	results := []Result{{Score: 0.6}, {Score: -0.2}}
	avg := Score(results)
	assert.InDelta(t, 0.2, avg, 1e-9)
	assert.Equal(t, MildPositive, Interpret(avg))
}

func TestInterpretBands(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score float64
		want  Band
	}{
		{0.9, StrongPositive},
		{0.5, StrongPositive}, // inclusive boundary
		{0.49, MildPositive},
		{0.11, MildPositive},
		{0.1, NeutralBand},
		{0, NeutralBand},
		{-0.09, NeutralBand},
		{-0.1, MildNegative},
		{-0.49, MildNegative},
		{-0.5, StrongNegative},
		{-1, StrongNegative},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Interpret(tc.score), "score=%g", tc.score)
	}
}
