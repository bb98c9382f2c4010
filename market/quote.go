package market

import "time"

// Quote is a single close-price observation at a timestamp.
type Quote struct {
	Time  time.Time
	Price float64
}

// Series is a time-ordered sequence of quotes for one symbol.
// An empty series means "no data", not an error.
type Series []Quote

func (s Series) Empty() bool { return len(s) == 0 }

// First returns the oldest quote in the series.
func (s Series) First() (Quote, bool) {
	if len(s) == 0 {
		return Quote{}, false
	}
	return s[0], true
}

// Latest returns the most recent quote in the series.
func (s Series) Latest() (Quote, bool) {
	if len(s) == 0 {
		return Quote{}, false
	}
	return s[len(s)-1], true
}

// PercentChange reports the move from the first close to the latest close,
// in percent. Returns 0 for series with fewer than two points or a zero
// first close.
func (s Series) PercentChange() float64 {
	if len(s) < 2 {
		return 0
	}
	first := s[0].Price
	if first == 0 {
		return 0
	}
	return (s[len(s)-1].Price - first) / first * 100
}
