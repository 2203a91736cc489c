package indicators

// BollingerBands calculates SMA +/- width x rolling standard deviation.
type BollingerBands struct {
	period         int
	stdDevMultiple float64
}

// NewBollingerBands creates a new BollingerBands instance with the given
// period and standard deviation multiplier.
func NewBollingerBands(period int, stdDev float64) *BollingerBands {
	return &BollingerBands{
		period:         period,
		stdDevMultiple: stdDev,
	}
}

// Series returns the upper, middle, and lower band series aligned with the
// input prices.
func (bb *BollingerBands) Series(prices []float64) (upper, middle, lower []float64) {
	middle = rollingMean(prices, bb.period)
	std := rollingStd(prices, bb.period)

	upper = nanSeries(len(prices))
	lower = nanSeries(len(prices))
	for i := range prices {
		if Undefined(middle[i]) || Undefined(std[i]) {
			continue
		}
		upper[i] = middle[i] + bb.stdDevMultiple*std[i]
		lower[i] = middle[i] - bb.stdDevMultiple*std[i]
	}
	return upper, middle, lower
}

// WidthSeries returns the normalized band width (upper - lower) / middle,
// used for regime classification. Points with a zero middle are undefined.
func (bb *BollingerBands) WidthSeries(prices []float64) []float64 {
	upper, middle, lower := bb.Series(prices)
	width := nanSeries(len(prices))
	for i := range prices {
		if Undefined(middle[i]) || middle[i] == 0 {
			continue
		}
		width[i] = (upper[i] - lower[i]) / middle[i]
	}
	return width
}

// Calculate computes the latest upper, middle, and lower band values.
func (bb *BollingerBands) Calculate(prices []float64) (upper, middle, lower float64, err error) {
	upperS, middleS, lowerS := bb.Series(prices)
	mid, merr := last(middleS)
	if merr != nil {
		return 0, 0, 0, ErrInsufficientData
	}
	return upperS[len(upperS)-1], mid, lowerS[len(lowerS)-1], nil
}

// GetName returns the indicator name.
func (bb *BollingerBands) GetName() string {
	return "Bollinger Bands"
}

// GetRequiredPeriods returns minimum periods needed for calculation.
func (bb *BollingerBands) GetRequiredPeriods() int {
	return bb.period
}
