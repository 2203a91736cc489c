package indicators

import (
	"math"

	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

// ATR calculates the Average True Range, a rolling mean of the true range:
// max(high-low, |high-prevClose|, |low-prevClose|).
type ATR struct {
	period int
}

// NewATR creates a new ATR instance with the given period.
func NewATR(period int) *ATR {
	return &ATR{period: period}
}

// TrueRanges returns the per-bar true range series. The first point is
// undefined because it has no previous close.
func (a *ATR) TrueRanges(data []types.OHLCV) []float64 {
	tr := nanSeries(len(data))
	for i := 1; i < len(data); i++ {
		highLow := data[i].High - data[i].Low
		highClose := math.Abs(data[i].High - data[i-1].Close)
		lowClose := math.Abs(data[i].Low - data[i-1].Close)
		tr[i] = math.Max(highLow, math.Max(highClose, lowClose))
	}
	return tr
}

// Series returns the ATR series aligned with the input bars.
func (a *ATR) Series(data []types.OHLCV) []float64 {
	out := nanSeries(len(data))
	if len(data) < a.period+1 {
		return out
	}
	tr := a.TrueRanges(data)
	smoothed := rollingMean(tr[1:], a.period)
	copy(out[1:], smoothed)
	return out
}

// Calculate computes the latest ATR value.
func (a *ATR) Calculate(data []types.OHLCV) (float64, error) {
	return last(a.Series(data))
}

// GetName returns the indicator name.
func (a *ATR) GetName() string {
	return "ATR"
}

// GetRequiredPeriods returns minimum periods needed for calculation.
func (a *ATR) GetRequiredPeriods() int {
	return a.period + 1
}
