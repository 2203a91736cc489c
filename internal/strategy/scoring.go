package strategy

import (
	"math"

	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

// WeightTable maps named scoring conditions to their point weights.
// Weights are tuning data, not load-bearing constants; constructors install
// researched defaults and callers may override per instrument.
type WeightTable map[string]float64

const defaultScoreThreshold = 60.0

// scorecard accumulates weighted boolean conditions for both directions
// and resolves them against a minimum-score threshold.
type scorecard struct {
	threshold float64
	buy       float64
	sell      float64
}

func newScorecard(threshold float64) *scorecard {
	return &scorecard{threshold: threshold}
}

func (sc *scorecard) buyIf(met bool, weight float64) {
	if met {
		sc.buy += weight
	}
}

func (sc *scorecard) sellIf(met bool, weight float64) {
	if met {
		sc.sell += weight
	}
}

// bothIf credits a direction-neutral condition to both sides.
func (sc *scorecard) bothIf(met bool, weight float64) {
	sc.buyIf(met, weight)
	sc.sellIf(met, weight)
}

// resolve picks the higher side if it clears the threshold. Exact ties
// resolve to none: a signal that cannot pick a direction is no signal.
func (sc *scorecard) resolve() (Action, float64) {
	switch {
	case sc.buy >= sc.threshold && sc.buy > sc.sell:
		return ActionBuy, math.Min(sc.buy, 100)
	case sc.sell >= sc.threshold && sc.sell > sc.buy:
		return ActionSell, math.Min(sc.sell, 100)
	default:
		return ActionNone, 0
	}
}

// lastValue returns the final point of an aligned series and whether it is
// defined.
func lastValue(series []float64) (float64, bool) {
	if len(series) == 0 {
		return 0, false
	}
	v := series[len(series)-1]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func priorValue(series []float64) (float64, bool) {
	if len(series) < 2 {
		return 0, false
	}
	v := series[len(series)-2]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// momentum returns the close-price change over n bars, NaN when the window
// is too short.
func momentum(closes []float64, n int) float64 {
	if len(closes) <= n {
		return math.NaN()
	}
	return closes[len(closes)-1] - closes[len(closes)-1-n]
}

// rateOfChange returns the n-bar percent change of the close.
func rateOfChange(closes []float64, n int) float64 {
	if len(closes) <= n {
		return math.NaN()
	}
	base := closes[len(closes)-1-n]
	if base == 0 {
		return math.NaN()
	}
	return (closes[len(closes)-1] - base) / base * 100
}

// bodyRatio returns candle body / full range, zero for a zero-range bar.
func bodyRatio(bar types.OHLCV) float64 {
	span := bar.High - bar.Low
	if span <= 0 {
		return 0
	}
	return math.Abs(bar.Close-bar.Open) / span
}

// averageVolume returns the mean tick volume over the trailing n bars.
func averageVolume(data []types.OHLCV, n int) float64 {
	if len(data) == 0 {
		return 0
	}
	lo := len(data) - n
	if lo < 0 {
		lo = 0
	}
	sum := 0.0
	for _, bar := range data[lo:] {
		sum += bar.Volume
	}
	return sum / float64(len(data)-lo)
}

func recentHigh(data []types.OHLCV, n int) float64 {
	lo := len(data) - n
	if lo < 0 {
		lo = 0
	}
	max := math.Inf(-1)
	for _, bar := range data[lo:] {
		if bar.High > max {
			max = bar.High
		}
	}
	return max
}

func recentLow(data []types.OHLCV, n int) float64 {
	lo := len(data) - n
	if lo < 0 {
		lo = 0
	}
	min := math.Inf(1)
	for _, bar := range data[lo:] {
		if bar.Low < min {
			min = bar.Low
		}
	}
	return min
}
