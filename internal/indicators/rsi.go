package indicators

// RSI calculates the Relative Strength Index from simple rolling means of
// positive and negative price deltas.
type RSI struct {
	period int
}

// NewRSI creates a new RSI instance with the given period.
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

// Series returns the RSI series aligned with the input prices. The first
// `period` points are undefined. A window with zero average loss saturates
// at 100 rather than dividing by zero.
func (r *RSI) Series(prices []float64) []float64 {
	out := nanSeries(len(prices))
	if len(prices) < r.period+1 {
		return out
	}

	gains := make([]float64, len(prices))
	losses := make([]float64, len(prices))
	for i := 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	avgGain := rollingMean(gains[1:], r.period)
	avgLoss := rollingMean(losses[1:], r.period)

	for i := r.period; i < len(prices); i++ {
		g := avgGain[i-1]
		l := avgLoss[i-1]
		if Undefined(g) || Undefined(l) {
			continue
		}
		if l == 0 {
			out[i] = 100
			continue
		}
		rs := g / l
		out[i] = 100 - (100 / (1 + rs))
	}
	return out
}

// Calculate computes the latest RSI value.
func (r *RSI) Calculate(prices []float64) (float64, error) {
	return last(r.Series(prices))
}

// GetName returns the indicator name.
func (r *RSI) GetName() string {
	return "RSI"
}

// GetRequiredPeriods returns minimum periods needed for calculation.
func (r *RSI) GetRequiredPeriods() int {
	return r.period + 1
}
