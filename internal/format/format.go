package format

import (
	"fmt"
	"strconv"
	"strings"

	"StockScope/internal/model"
)

// MaxCaptionLen is the bound for Telegram photo captions, measured in runes.
const MaxCaptionLen = 1000

// MarketCap renders a market capitalization with unit suffixes at fixed
// thresholds. Nil means the provider reported nothing.
func MarketCap(v *float64) string {
	if v == nil {
		return "N/A"
	}
	switch {
	case *v >= 1e12:
		return fmt.Sprintf("$%.2fT", *v/1e12)
	case *v >= 1e9:
		return fmt.Sprintf("$%.2fB", *v/1e9)
	case *v >= 1e6:
		return fmt.Sprintf("$%.2fM", *v/1e6)
	default:
		// Below the smallest suffix threshold the raw value is shown as-is.
		return strconv.FormatFloat(*v, 'f', -1, 64)
	}
}

func price(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", *v)
}

func ratio(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}

// stripMarkup removes decorative markdown markers from the analysis text so
// Telegram's markup parser does not trip on stray characters.
func stripMarkup(s string) string {
	return strings.NewReplacer(
		"**", "",
		"*", "",
		"`", "",
		"_", "",
		"#", "",
	).Replace(s)
}

// StockMessage assembles the caption for one analyzed symbol, bounded to
// MaxCaptionLen runes.
func StockMessage(symbol string, quote model.QuoteSnapshot, analysis string) string {
	msg := fmt.Sprintf(
		"📊 *%s Stock Analysis*\n\n"+
			"💰 Current Price: %s\n"+
			"📈 Previous Close: %s\n"+
			"💹 Market Cap: %s\n"+
			"📊 P/E Ratio: %s\n\n"+
			"📝 *Analysis*:\n"+
			"%s\n\n",
		strings.ToUpper(symbol),
		price(quote.CurrentPrice),
		price(quote.PreviousClose),
		MarketCap(quote.MarketCap),
		ratio(quote.TrailingPE),
		stripMarkup(analysis),
	)
	return Truncate(msg, MaxCaptionLen)
}

// Truncate bounds s to max runes, replacing the tail with "..." when cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
