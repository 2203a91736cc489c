package indicators

import (
	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

// DonchianChannels tracks the highest high and lowest low over a period,
// used by the breakout strategy flavor.
type DonchianChannels struct {
	period int
}

// NewDonchianChannels creates a new Donchian Channels instance with the
// given period.
func NewDonchianChannels(period int) *DonchianChannels {
	return &DonchianChannels{period: period}
}

// Series returns the upper and lower channel series aligned with the input
// bars.
func (dc *DonchianChannels) Series(data []types.OHLCV) (upper, lower []float64) {
	highs := make([]float64, len(data))
	lows := make([]float64, len(data))
	for i, bar := range data {
		highs[i] = bar.High
		lows[i] = bar.Low
	}
	return rollingMax(highs, dc.period), rollingMin(lows, dc.period)
}

// Calculate computes the latest upper and lower channel values.
func (dc *DonchianChannels) Calculate(data []types.OHLCV) (upper, lower float64, err error) {
	upperS, lowerS := dc.Series(data)
	u, uerr := last(upperS)
	l, lerr := last(lowerS)
	if uerr != nil || lerr != nil {
		return 0, 0, ErrInsufficientData
	}
	return u, l, nil
}

// GetName returns the indicator name.
func (dc *DonchianChannels) GetName() string {
	return "Donchian Channels"
}

// GetRequiredPeriods returns minimum periods needed for calculation.
func (dc *DonchianChannels) GetRequiredPeriods() int {
	return dc.period
}
