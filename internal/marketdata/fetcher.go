package marketdata

import (
	"time"

	"StockScope/internal/model"
)

// Fetcher retrieves quote metadata and a 30-day trailing price history for a
// resolved symbol. hintSuffix tells the fetcher the exchange suffix was
// guessed, so a no-data failure can suggest the Indian suffixes.
type Fetcher interface {
	FetchStock(symbol string, hintSuffix bool) (*model.StockData, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Data *model.StockData
	Err  error

	LastSymbol string
	LastHint   bool
	Calls      int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchStock(symbol string, hintSuffix bool) (*model.StockData, error) {
	m.LastSymbol = symbol
	m.LastHint = hintSuffix
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Data != nil {
		return m.Data, nil
	}
	return generateMockData(symbol), nil
}

func generateMockData(symbol string) *model.StockData {
	history := make([]model.PricePoint, 30)
	base := 100.0
	for i := range history {
		history[i] = model.PricePoint{
			Date:  time.Now().AddDate(0, 0, -(30 - i)),
			Close: base * (1 + float64(i-15)*0.001),
		}
	}
	return &model.StockData{
		Symbol: symbol,
		Quote: model.QuoteSnapshot{
			CurrentPrice:  model.Float(101.5),
			PreviousClose: model.Float(100.9),
			MarketCap:     model.Float(2.5e12),
			TrailingPE:    model.Float(24.3),
			High52w:       model.Float(120),
			Low52w:        model.Float(80),
			Volume:        model.Float(1000000),
		},
		History:   history,
		FetchedAt: time.Now(),
	}
}
