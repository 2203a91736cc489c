package indicators

// EMA calculates the Exponential Moving Average over close prices.
type EMA struct {
	period int
}

// NewEMA creates a new EMA instance with the given period.
func NewEMA(period int) *EMA {
	return &EMA{period: period}
}

// Series returns the EMA series aligned with the input prices, seeded from
// the first price.
func (e *EMA) Series(prices []float64) []float64 {
	return emaSeries(prices, e.period)
}

// Calculate computes the latest EMA value.
func (e *EMA) Calculate(prices []float64) (float64, error) {
	if len(prices) < e.period {
		return 0, ErrInsufficientData
	}
	return last(e.Series(prices))
}

// GetName returns the indicator name.
func (e *EMA) GetName() string {
	return "EMA"
}

// GetRequiredPeriods returns minimum periods needed for calculation.
func (e *EMA) GetRequiredPeriods() int {
	return e.period
}
