package indicators

import (
	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

// Stochastic calculates the stochastic oscillator:
// %K = 100 x (close - rollingMinLow) / (rollingMaxHigh - rollingMinLow),
// %D = rolling mean of %K.
type Stochastic struct {
	kPeriod int
	dPeriod int
}

// NewStochastic creates a new Stochastic instance with the given periods.
func NewStochastic(kPeriod, dPeriod int) *Stochastic {
	return &Stochastic{kPeriod: kPeriod, dPeriod: dPeriod}
}

// Series returns the %K and %D series aligned with the input bars. A flat
// window (max high equals min low) leaves that point undefined.
func (s *Stochastic) Series(data []types.OHLCV) (k, d []float64) {
	highs := make([]float64, len(data))
	lows := make([]float64, len(data))
	for i, bar := range data {
		highs[i] = bar.High
		lows[i] = bar.Low
	}

	maxHigh := rollingMax(highs, s.kPeriod)
	minLow := rollingMin(lows, s.kPeriod)

	k = nanSeries(len(data))
	for i := s.kPeriod - 1; i < len(data); i++ {
		span := maxHigh[i] - minLow[i]
		if span == 0 {
			continue
		}
		k[i] = 100 * (data[i].Close - minLow[i]) / span
	}

	// %D windows containing undefined %K points stay undefined.
	d = nanSeries(len(data))
	for i := s.kPeriod + s.dPeriod - 2; i < len(data); i++ {
		sum := 0.0
		ok := true
		for j := i - s.dPeriod + 1; j <= i; j++ {
			if Undefined(k[j]) {
				ok = false
				break
			}
			sum += k[j]
		}
		if ok {
			d[i] = sum / float64(s.dPeriod)
		}
	}
	return k, d
}

// Calculate computes the latest %K and %D values.
func (s *Stochastic) Calculate(data []types.OHLCV) (k, d float64, err error) {
	kSeries, dSeries := s.Series(data)
	kv, kerr := last(kSeries)
	dv, derr := last(dSeries)
	if kerr != nil || derr != nil {
		return 0, 0, ErrInsufficientData
	}
	return kv, dv, nil
}

// GetName returns the indicator name.
func (s *Stochastic) GetName() string {
	return "Stochastic"
}

// GetRequiredPeriods returns minimum periods needed for calculation.
func (s *Stochastic) GetRequiredPeriods() int {
	return s.kPeriod + s.dPeriod - 1
}
