package indicators

import (
	"math"

	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

// CCI calculates the Commodity Channel Index:
// (typicalPrice - rollingMean) / (0.015 x rolling mean absolute deviation).
type CCI struct {
	period int
}

// NewCCI creates a new CCI instance with the given period.
func NewCCI(period int) *CCI {
	return &CCI{period: period}
}

// Series returns the CCI series aligned with the input bars. Points with a
// zero mean absolute deviation (flat price) are undefined.
func (c *CCI) Series(data []types.OHLCV) []float64 {
	out := nanSeries(len(data))
	if len(data) < c.period {
		return out
	}

	tp := make([]float64, len(data))
	for i, bar := range data {
		tp[i] = (bar.High + bar.Low + bar.Close) / 3
	}
	tpMean := rollingMean(tp, c.period)

	for i := c.period - 1; i < len(data); i++ {
		mean := tpMean[i]
		mad := 0.0
		for j := i - c.period + 1; j <= i; j++ {
			mad += math.Abs(tp[j] - mean)
		}
		mad /= float64(c.period)
		if mad == 0 {
			continue
		}
		out[i] = (tp[i] - mean) / (0.015 * mad)
	}
	return out
}

// Calculate computes the latest CCI value.
func (c *CCI) Calculate(data []types.OHLCV) (float64, error) {
	return last(c.Series(data))
}

// GetName returns the indicator name.
func (c *CCI) GetName() string {
	return "CCI"
}

// GetRequiredPeriods returns minimum periods needed for calculation.
func (c *CCI) GetRequiredPeriods() int {
	return c.period
}
