package indicators

// ZScore calculates how many rolling standard deviations the current price
// sits from its rolling mean. Used by the statistical mean-reversion flavor.
type ZScore struct {
	period int
}

// NewZScore creates a new ZScore instance with the given period.
func NewZScore(period int) *ZScore {
	return &ZScore{period: period}
}

// Series returns the z-score series aligned with the input prices. Points
// with a zero standard deviation (flat price) are undefined.
func (z *ZScore) Series(prices []float64) []float64 {
	out := nanSeries(len(prices))
	mean := rollingMean(prices, z.period)
	std := rollingStd(prices, z.period)
	for i := range prices {
		if Undefined(mean[i]) || Undefined(std[i]) || std[i] == 0 {
			continue
		}
		out[i] = (prices[i] - mean[i]) / std[i]
	}
	return out
}

// Calculate computes the latest z-score value.
func (z *ZScore) Calculate(prices []float64) (float64, error) {
	return last(z.Series(prices))
}

// GetName returns the indicator name.
func (z *ZScore) GetName() string {
	return "Z-Score"
}

// GetRequiredPeriods returns minimum periods needed for calculation.
func (z *ZScore) GetRequiredPeriods() int {
	return z.period
}
