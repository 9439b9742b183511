package marketdata

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"StockScope/internal/model"
)

const historyWindowDays = 30

// YahooFetcher implements Fetcher using the Yahoo Finance public API.
type YahooFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy
// support. baseURL is the API host, normally https://query1.finance.yahoo.com.
func NewYahooFetcher(baseURL, proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooQuote is the response structure from the Yahoo quote API, trimmed to
// the fields the pipeline uses. Pointers keep absent fields distinguishable
// from zeroes.
type yahooQuote struct {
	QuoteResponse struct {
		Result []struct {
			RegularMarketPrice         *float64 `json:"regularMarketPrice"`
			RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
			MarketCap                  *float64 `json:"marketCap"`
			TrailingPE                 *float64 `json:"trailingPE"`
			FiftyTwoWeekHigh           *float64 `json:"fiftyTwoWeekHigh"`
			FiftyTwoWeekLow            *float64 `json:"fiftyTwoWeekLow"`
			RegularMarketVolume        *float64 `json:"regularMarketVolume"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

// yahooChart is the response structure from the Yahoo chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func (f *YahooFetcher) get(u string, out interface{}) error {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}

// FetchStock looks up quote metadata then a 30-day trailing closing-price
// series. Every failure comes back as a *DataError; nothing else escapes.
func (f *YahooFetcher) FetchStock(symbol string, hintSuffix bool) (*model.StockData, error) {
	quote, err := f.fetchQuote(symbol, hintSuffix)
	if err != nil {
		return nil, err
	}

	history, err := f.fetchHistory(symbol)
	if err != nil {
		return nil, err
	}

	return &model.StockData{
		Symbol:    symbol,
		Quote:     quote,
		History:   history,
		FetchedAt: time.Now(),
	}, nil
}

func (f *YahooFetcher) fetchQuote(symbol string, hintSuffix bool) (model.QuoteSnapshot, error) {
	u := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", f.BaseURL, url.QueryEscape(symbol))

	var out yahooQuote
	if err := f.get(u, &out); err != nil {
		return model.QuoteSnapshot{}, transportError("quote lookup", err)
	}
	if out.QuoteResponse.Error != nil {
		return model.QuoteSnapshot{}, &DataError{
			Kind: Transport,
			Msg:  fmt.Sprintf("yahoo api error: %s", out.QuoteResponse.Error.Description),
		}
	}
	// A quote without a live price is unusable for the rest of the pipeline.
	if len(out.QuoteResponse.Result) == 0 || out.QuoteResponse.Result[0].RegularMarketPrice == nil {
		return model.QuoteSnapshot{}, noDataError(symbol, hintSuffix)
	}

	r := out.QuoteResponse.Result[0]
	return model.QuoteSnapshot{
		CurrentPrice:  r.RegularMarketPrice,
		PreviousClose: r.RegularMarketPreviousClose,
		MarketCap:     r.MarketCap,
		TrailingPE:    r.TrailingPE,
		High52w:       r.FiftyTwoWeekHigh,
		Low52w:        r.FiftyTwoWeekLow,
		Volume:        r.RegularMarketVolume,
	}, nil
}

func (f *YahooFetcher) fetchHistory(symbol string) ([]model.PricePoint, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -historyWindowDays)
	u := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		f.BaseURL, url.PathEscape(symbol), start.Unix(), end.Unix())

	var out yahooChart
	if err := f.get(u, &out); err != nil {
		return nil, transportError("history lookup", err)
	}
	if out.Chart.Error != nil {
		return nil, &DataError{
			Kind: Transport,
			Msg:  fmt.Sprintf("yahoo api error: %s", out.Chart.Error.Description),
		}
	}
	if len(out.Chart.Result) == 0 || len(out.Chart.Result[0].Timestamp) == 0 ||
		len(out.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, noHistoryError()
	}

	result := out.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close
	points := make([]model.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) {
			break
		}
		c, ok := toFloat(closes[i])
		if !ok {
			continue // null bars (holidays etc.)
		}
		points = append(points, model.PricePoint{Date: time.Unix(ts, 0), Close: c})
	}
	if len(points) == 0 {
		return nil, noHistoryError()
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}
