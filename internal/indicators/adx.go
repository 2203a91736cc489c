package indicators

import (
	"math"

	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

// ADX calculates the Average Directional Index, a trend-strength measure in
// [0, 100]. +DI/-DI are smoothed with the same rolling window as the ATR.
// Values above 25 indicate a trending market.
type ADX struct {
	period int
}

// NewADX creates a new ADX instance with the given period.
func NewADX(period int) *ADX {
	return &ADX{period: period}
}

// Series returns the ADX series aligned with the input bars. Points where
// +DI + -DI is zero (flat price) are undefined.
func (a *ADX) Series(data []types.OHLCV) []float64 {
	out := nanSeries(len(data))
	if len(data) < a.GetRequiredPeriods() {
		return out
	}

	plusDM := make([]float64, len(data))
	minusDM := make([]float64, len(data))
	for i := 1; i < len(data); i++ {
		highDiff := data[i].High - data[i-1].High
		lowDiff := data[i-1].Low - data[i].Low
		if highDiff > lowDiff && highDiff > 0 {
			plusDM[i] = highDiff
		}
		if lowDiff > highDiff && lowDiff > 0 {
			minusDM[i] = lowDiff
		}
	}

	atr := NewATR(a.period).Series(data)
	avgPlus := rollingMean(plusDM[1:], a.period)
	avgMinus := rollingMean(minusDM[1:], a.period)

	dx := nanSeries(len(data))
	for i := a.period; i < len(data); i++ {
		tr := atr[i]
		if Undefined(tr) || tr == 0 {
			continue
		}
		plusDI := 100 * avgPlus[i-1] / tr
		minusDI := 100 * avgMinus[i-1] / tr
		sum := plusDI + minusDI
		if sum == 0 {
			continue
		}
		dx[i] = 100 * math.Abs(plusDI-minusDI) / sum
	}

	// ADX is a rolling mean of DX; NaN DX points keep their window undefined.
	for i := 2*a.period - 1; i < len(data); i++ {
		sum := 0.0
		ok := true
		for j := i - a.period + 1; j <= i; j++ {
			if Undefined(dx[j]) {
				ok = false
				break
			}
			sum += dx[j]
		}
		if ok {
			out[i] = sum / float64(a.period)
		}
	}
	return out
}

// Calculate computes the latest ADX value.
func (a *ADX) Calculate(data []types.OHLCV) (float64, error) {
	return last(a.Series(data))
}

// GetName returns the indicator name.
func (a *ADX) GetName() string {
	return "ADX"
}

// GetRequiredPeriods returns minimum periods needed for calculation.
func (a *ADX) GetRequiredPeriods() int {
	return 2 * a.period
}
