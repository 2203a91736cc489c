package types

import (
	"fmt"
	"time"
)

// OHLCV is a single price bar. Volume carries the tick count for FX feeds.
type OHLCV struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Timestamp time.Time
}

// Ticker holds the latest traded price for a symbol.
type Ticker struct {
	Symbol    string
	Price     float64
	Volume    float64
	Timestamp time.Time
}

// ValidateWindow checks that a bar window is ordered most-recent-last with
// strictly increasing timestamps. A malformed window has no recovery policy,
// so callers must treat this as a hard error.
func ValidateWindow(data []OHLCV) error {
	for i := 1; i < len(data); i++ {
		if !data[i].Timestamp.After(data[i-1].Timestamp) {
			return fmt.Errorf("non-monotonic bar timestamps at index %d: %s then %s",
				i, data[i-1].Timestamp.Format(time.RFC3339), data[i].Timestamp.Format(time.RFC3339))
		}
	}
	return nil
}

// Closes extracts the close price series from a bar window.
func Closes(data []OHLCV) []float64 {
	closes := make([]float64, len(data))
	for i, bar := range data {
		closes[i] = bar.Close
	}
	return closes
}
