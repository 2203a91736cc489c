package indicators

// MACD calculates the Moving Average Convergence Divergence: the difference
// of a fast and a slow EMA, an EMA of that difference (signal line), and
// their difference (histogram).
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD instance with the given periods.
func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{
		fastPeriod:   fast,
		slowPeriod:   slow,
		signalPeriod: signal,
	}
}

// Series returns the MACD line, signal line, and histogram series, each
// aligned with the input prices.
func (m *MACD) Series(prices []float64) (macdLine, signalLine, histogram []float64) {
	fast := emaSeries(prices, m.fastPeriod)
	slow := emaSeries(prices, m.slowPeriod)

	macdLine = make([]float64, len(prices))
	for i := range prices {
		macdLine[i] = fast[i] - slow[i]
	}
	signalLine = emaSeries(macdLine, m.signalPeriod)

	histogram = make([]float64, len(prices))
	for i := range prices {
		histogram[i] = macdLine[i] - signalLine[i]
	}
	return macdLine, signalLine, histogram
}

// Calculate computes the latest MACD line and signal line values.
func (m *MACD) Calculate(prices []float64) (macd, signal float64, err error) {
	if len(prices) < m.slowPeriod+m.signalPeriod {
		return 0, 0, ErrInsufficientData
	}
	macdLine, signalLine, _ := m.Series(prices)
	return macdLine[len(macdLine)-1], signalLine[len(signalLine)-1], nil
}

// GetName returns the indicator name.
func (m *MACD) GetName() string {
	return "MACD"
}

// GetRequiredPeriods returns minimum periods needed for calculation.
func (m *MACD) GetRequiredPeriods() int {
	return m.slowPeriod + m.signalPeriod
}
