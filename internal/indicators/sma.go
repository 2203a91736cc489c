package indicators

// SMA calculates the Simple Moving Average over close prices.
type SMA struct {
	period int
}

// NewSMA creates a new SMA instance with the given period.
func NewSMA(period int) *SMA {
	return &SMA{period: period}
}

// Series returns the SMA series aligned with the input prices.
func (s *SMA) Series(prices []float64) []float64 {
	return rollingMean(prices, s.period)
}

// Calculate computes the latest SMA value.
func (s *SMA) Calculate(prices []float64) (float64, error) {
	return last(s.Series(prices))
}

// GetName returns the indicator name.
func (s *SMA) GetName() string {
	return "SMA"
}

// GetRequiredPeriods returns minimum periods needed for calculation.
func (s *SMA) GetRequiredPeriods() int {
	return s.period
}
