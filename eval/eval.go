// Package eval maps P/L values to qualitative good/neutral/bad verdicts.
package eval

// Verdict is the three-way decision label shown on the dashboard.
type Verdict string

const (
	Good    Verdict = "Good Decision"
	Neutral Verdict = "Neutral"
	Bad     Verdict = "Bad Decision"
)

// tradeBand is the per-trade neutral band, in currency units (not percent).
// Known quirk: it is not normalized by price scale, so a 0.60 move means
// different things for a 10-rupee stock and a 3000-rupee one.
const tradeBand = 0.5

// ClassifyTrade labels a single trade's P/L. The band is inclusive: a P/L of
// exactly +0.5 or -0.5 is Neutral.
func ClassifyTrade(pnl float64) Verdict {
	switch {
	case pnl > tradeBand:
		return Good
	case pnl >= -tradeBand:
		return Neutral
	default:
		return Bad
	}
}

// ClassifyNet labels the aggregate replayed P/L with a strict sign test.
// Unlike ClassifyTrade there is no neutral band; only exactly zero is
// Neutral. The asymmetry is intentional and matches the dashboard's
// historical behavior.
func ClassifyNet(pnl float64) Verdict {
	switch {
	case pnl > 0:
		return Good
	case pnl < 0:
		return Bad
	default:
		return Neutral
	}
}

// Direction returns the arrow shown next to a P/L figure. Zero counts as up.
func Direction(pnl float64) string {
	if pnl >= 0 {
		return "↑"
	}
	return "↓"
}
