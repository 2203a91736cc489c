package indicators

import (
	"errors"
	"math"
)

// ErrInsufficientData is returned by latest-value accessors when the bar
// window is shorter than the indicator's minimum lookback. Consumers treat
// it as "no signal", never as a failure.
var ErrInsufficientData = errors.New("insufficient data for indicator calculation")

// Undefined reports whether a series point carries no value (short lookback
// or a division singularity such as a flat price window).
func Undefined(v float64) bool {
	return math.IsNaN(v)
}

func undefined() float64 {
	return math.NaN()
}

// nanSeries allocates a series of the given length with every point undefined.
func nanSeries(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

// rollingMean computes a trailing simple moving average. The first period-1
// points are undefined.
func rollingMean(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// rollingStd computes a trailing population standard deviation.
func rollingStd(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]
		mean := 0.0
		for _, v := range window {
			mean += v
		}
		mean /= float64(period)
		variance := 0.0
		for _, v := range window {
			d := v - mean
			variance += d * d
		}
		out[i] = math.Sqrt(variance / float64(period))
	}
	return out
}

// rollingMax computes a trailing maximum over the period.
func rollingMax(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	for i := period - 1; i < len(values); i++ {
		max := values[i-period+1]
		for _, v := range values[i-period+2 : i+1] {
			if v > max {
				max = v
			}
		}
		out[i] = max
	}
	return out
}

// rollingMin computes a trailing minimum over the period.
func rollingMin(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	for i := period - 1; i < len(values); i++ {
		min := values[i-period+1]
		for _, v := range values[i-period+2 : i+1] {
			if v < min {
				min = v
			}
		}
		out[i] = min
	}
	return out
}

// emaSeries computes an exponential moving average seeded from the first
// value, matching the pandas ewm(adjust=False) behavior the strategies were
// tuned against.
func emaSeries(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period <= 0 || len(values) == 0 {
		return out
	}
	alpha := 2.0 / (float64(period) + 1.0)
	ema := values[0]
	out[0] = ema
	for i := 1; i < len(values); i++ {
		ema = alpha*values[i] + (1-alpha)*ema
		out[i] = ema
	}
	return out
}

// last returns the final point of a series, mapping undefined points and
// empty series to ErrInsufficientData.
func last(series []float64) (float64, error) {
	if len(series) == 0 {
		return 0, ErrInsufficientData
	}
	v := series[len(series)-1]
	if Undefined(v) {
		return 0, ErrInsufficientData
	}
	return v, nil
}
