package ledger

// TradePL is the per-trade "what if I reversed this trade now" metric:
// for a Buy, current minus the fill price; for a Sell, the fill price minus
// current. It deliberately ignores realized cash flow; it asks whether the
// individual decision looks right against the latest quote.
func TradePL(t Trade, currentPrice float64) float64 {
	if t.Side == Buy {
		return currentPrice - t.Price
	}
	return t.Price - currentPrice
}

// NetPL simulates closing the whole position at currentPrice, starting from
// flat: every Buy is a cash outflow, every Sell an inflow, and whatever is
// still owned at the end is marked at currentPrice. The trade sequence is
// replayed on every call; the history is small and mutates far less often
// than it is read.
func NetPL(trades []Trade, currentPrice float64) float64 {
	var profit float64
	var owned int64

	for _, t := range trades {
		switch t.Side {
		case Buy:
			profit -= float64(t.Quantity) * t.Price
			owned += t.Quantity
		case Sell:
			profit += float64(t.Quantity) * t.Price
			owned -= t.Quantity
		}
	}

	return profit + float64(owned)*currentPrice
}
