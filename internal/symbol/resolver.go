package symbol

import "strings"

// nseDefaults are well-known NSE tickers that users commonly type without an
// exchange suffix.
var nseDefaults = map[string]bool{
	"RELIANCE":   true,
	"TCS":        true,
	"HDFCBANK":   true,
	"INFY":       true,
	"SBIN":       true,
	"TATAMOTORS": true,
	"WIPRO":      true,
}

// Resolve normalizes a trimmed, upper-cased token into the canonical symbol
// used for all downstream lookups. Tokens that already carry a recognized
// exchange suffix pass through unchanged; well-known Indian tickers without
// one get ".NS" appended; anything else passes through as-is.
//
// The second result reports whether the token carried no recognized suffix,
// i.e. the exchange had to be guessed. Lookup failures use it to suggest the
// Indian exchange suffixes.
func Resolve(token string) (string, bool) {
	if strings.HasSuffix(token, ".NS") || strings.HasSuffix(token, ".BO") {
		return token, false
	}
	if nseDefaults[token] {
		return token + ".NS", true
	}
	return token, true
}
