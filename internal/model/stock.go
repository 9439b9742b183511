package model

import "time"

// QuoteSnapshot holds the quote metadata fetched for one request.
// A nil field means the provider did not report a value.
type QuoteSnapshot struct {
	CurrentPrice  *float64
	PreviousClose *float64
	MarketCap     *float64
	TrailingPE    *float64
	High52w       *float64
	Low52w        *float64
	Volume        *float64
}

// PricePoint is a single daily closing price.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// StockData bundles everything fetched for a single symbol. All of it is
// scoped to one request and discarded afterwards.
type StockData struct {
	Symbol    string
	Quote     QuoteSnapshot
	History   []PricePoint // chronological, 30-day trailing window
	FetchedAt time.Time
}

// Float returns a pointer to v, for building snapshots in place.
func Float(v float64) *float64 { return &v }
