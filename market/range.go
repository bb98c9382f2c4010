package market

import (
	"fmt"
	"strings"
)

// Range is a chart time window selectable on the dashboard.
type Range string

const (
	Range1D  Range = "1D"
	Range5D  Range = "5D"
	Range1M  Range = "1M"
	Range6M  Range = "6M"
	Range1Y  Range = "1Y"
	Range5Y  Range = "5Y"
	RangeAll Range = "ALL"
)

// Ranges lists all valid ranges in display order.
var Ranges = []Range{Range1D, Range5D, Range1M, Range6M, Range1Y, Range5Y, RangeAll}

// periodMap and intervalMap translate a Range into the upstream chart API's
// period and candle interval. The interval is implied by the period: short
// windows get intraday candles, long windows get weekly/monthly ones.
var periodMap = map[Range]string{
	Range1D:  "1d",
	Range5D:  "5d",
	Range1M:  "1mo",
	Range6M:  "6mo",
	Range1Y:  "1y",
	Range5Y:  "5y",
	RangeAll: "max",
}

var intervalMap = map[Range]string{
	Range1D:  "5m",
	Range5D:  "15m",
	Range1M:  "1d",
	Range6M:  "1d",
	Range1Y:  "1d",
	Range5Y:  "1wk",
	RangeAll: "1mo",
}

// Period returns the upstream period string for the range.
func (r Range) Period() string { return periodMap[r] }

// Interval returns the upstream candle interval for the range.
func (r Range) Interval() string { return intervalMap[r] }

// Valid reports whether r is one of the seven supported ranges.
func (r Range) Valid() bool {
	_, ok := periodMap[r]
	return ok
}

// ParseRange parses a user-supplied range string, case-insensitively.
func ParseRange(s string) (Range, error) {
	r := Range(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("invalid range %q (want one of %v)", s, Ranges)
	}
	return r, nil
}
