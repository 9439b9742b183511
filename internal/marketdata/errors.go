package marketdata

import "fmt"

// ErrorKind classifies fetch failures.
type ErrorKind int

const (
	// NoData means the provider returned no usable quote metadata.
	NoData ErrorKind = iota
	// NoHistory means the trailing price series came back empty.
	NoHistory
	// Transport covers network and decoding failures talking to the provider.
	Transport
)

// DataError is returned for every fetch failure. The message is written to be
// shown to the user verbatim.
type DataError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *DataError) Error() string { return e.Msg }

func (e *DataError) Unwrap() error { return e.Err }

func transportError(op string, err error) *DataError {
	return &DataError{
		Kind: Transport,
		Msg:  fmt.Sprintf("%s: %v", op, err),
		Err:  err,
	}
}

func noDataError(symbol string, hintSuffix bool) *DataError {
	if hintSuffix {
		return &DataError{
			Kind: NoData,
			Msg: fmt.Sprintf("no data available for %s. If this is an Indian stock, "+
				"try adding .NS (for NSE) or .BO (for BSE) to the symbol", symbol),
		}
	}
	return &DataError{
		Kind: NoData,
		Msg:  "no data available for this symbol. Please check if the symbol is correct",
	}
}

func noHistoryError() *DataError {
	return &DataError{Kind: NoHistory, Msg: "no historical data available"}
}
