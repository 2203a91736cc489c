package strategy

import (
	"github.com/ducminhle1904/fx-scalper-bot/internal/indicators"
	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

// Divergence labels a disagreement between price extremes and RSI.
type Divergence int

const (
	DivergenceNone Divergence = iota
	DivergenceBullish
	DivergenceBearish
)

func (d Divergence) String() string {
	switch d {
	case DivergenceBullish:
		return "BULLISH"
	case DivergenceBearish:
		return "BEARISH"
	default:
		return "NONE"
	}
}

const divergenceLag = 20

// detectDivergence compares the latest high/low and RSI against their
// values 20 bars prior. Bearish: price makes a higher high while RSI makes
// a lower high. Bullish: lower low with higher RSI low. Divergence only
// ever adjusts confidence, it never vetoes a signal on its own.
func detectDivergence(data []types.OHLCV, rsiSeries []float64) Divergence {
	if len(data) < 50 || len(rsiSeries) != len(data) {
		return DivergenceNone
	}

	cur := len(data) - 1
	prior := cur - divergenceLag
	if indicators.Undefined(rsiSeries[cur]) || indicators.Undefined(rsiSeries[prior]) {
		return DivergenceNone
	}

	if data[cur].High > data[prior].High && rsiSeries[cur] < rsiSeries[prior] {
		return DivergenceBearish
	}
	if data[cur].Low < data[prior].Low && rsiSeries[cur] > rsiSeries[prior] {
		return DivergenceBullish
	}
	return DivergenceNone
}
