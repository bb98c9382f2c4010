package market

import (
	"context"
	"strings"
	"unicode"
)

// aliases maps common company names to their ticker symbols.
var aliases = map[string]string{
	"APPLE":    "AAPL",
	"GOOGLE":   "GOOG",
	"TESLA":    "TSLA",
	"NVIDIA":   "NVDA",
	"RELIANCE": "RELIANCE",
	"RAYMOND":  "RAYMOND",
}

// regionalSuffixes are probed, in order, when resolving a bare symbol to an
// Indian exchange listing. NSE is preferred over BSE.
var regionalSuffixes = []string{".NS", ".BO"}

// Normalize cleans raw ticker input: whitespace and "$" stripped, uppercased,
// and known company-name aliases mapped to their symbols.
func Normalize(raw string) string {
	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), "$", ""))
	if alias, ok := aliases[s]; ok {
		return alias
	}
	return s
}

// BaseSymbol strips a regional exchange suffix, leaving the symbol used for
// news queries.
func BaseSymbol(sym string) string {
	for _, suffix := range regionalSuffixes {
		sym = strings.TrimSuffix(sym, suffix)
	}
	return sym
}

// IsIndian reports whether the symbol is listed on NSE or BSE.
func IsIndian(sym string) bool {
	return strings.HasSuffix(sym, ".NS") || strings.HasSuffix(sym, ".BO")
}

func isAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Prober answers whether a symbol has any recent price history.
type Prober interface {
	HasData(ctx context.Context, symbol string) (bool, error)
}

// ResolveRegional attempts to resolve a bare alphabetic symbol to an Indian
// exchange listing by probing NSE (.NS) and then BSE (.BO). Probe errors are
// treated as "not listed there", so a flaky upstream degrades to the plain
// symbol instead of failing resolution. Symbols that already carry a suffix
// or contain non-letters are returned unchanged.
func ResolveRegional(ctx context.Context, p Prober, sym string) string {
	if !isAlphabetic(sym) {
		return sym
	}
	for _, suffix := range regionalSuffixes {
		candidate := sym + suffix
		ok, err := p.HasData(ctx, candidate)
		if err != nil {
			continue
		}
		if ok {
			return candidate
		}
	}
	return sym
}
