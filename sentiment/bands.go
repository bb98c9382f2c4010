package sentiment

// Band is the dashboard's interpretation of an aggregate sentiment score.
type Band string

const (
	StrongPositive Band = "Strong Positive"
	MildPositive   Band = "Mild Positive"
	NeutralBand    Band = "Neutral"
	MildNegative   Band = "Mild Negative"
	StrongNegative Band = "Strong Negative"
)

// Interpret maps an aggregate score to its display band. Boundaries follow
// the dashboard's original cutoffs: only the strong-positive one is
// inclusive.
func Interpret(score float64) Band {
	switch {
	case score >= 0.5:
		return StrongPositive
	case score > 0.1:
		return MildPositive
	case score > -0.1:
		return NeutralBand
	case score > -0.5:
		return MildNegative
	default:
		return StrongNegative
	}
}
