package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

func barsWith(closes []float64, spread float64) []types.OHLCV {
	out := make([]types.OHLCV, len(closes))
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		out[i] = types.OHLCV{
			Open:      c,
			High:      c + spread,
			Low:       c - spread,
			Close:     c,
			Volume:    1000,
			Timestamp: base.Add(time.Duration(i) * 5 * time.Minute),
		}
	}
	return out
}

func rampCloses(n int, start, step float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + float64(i)*step
	}
	return closes
}

func flatSeries(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func TestSMACalculate(t *testing.T) {
	sma := NewSMA(3)

	v, err := sma.Calculate([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	series := sma.Series([]float64{1, 2, 3, 4, 5})
	assert.True(t, Undefined(series[0]))
	assert.True(t, Undefined(series[1]))
	assert.Equal(t, 2.0, series[2])
}

func TestSMAInsufficientData(t *testing.T) {
	_, err := NewSMA(10).Calculate([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestEMAFlatSeriesStaysFlat(t *testing.T) {
	v, err := NewEMA(5).Calculate(flatSeries(30, 1.1))
	require.NoError(t, err)
	assert.InDelta(t, 1.1, v, 1e-12)
}

func TestEMASeededFromFirstValue(t *testing.T) {
	series := NewEMA(5).Series([]float64{2.0, 2.0, 2.0})
	assert.Equal(t, 2.0, series[0])
}

func TestEMATracksRisingPrices(t *testing.T) {
	prices := rampCloses(60, 1.0, 0.01)
	fast, err := NewEMA(5).Calculate(prices)
	require.NoError(t, err)
	slow, err := NewEMA(20).Calculate(prices)
	require.NoError(t, err)
	assert.Greater(t, fast, slow)
	assert.Less(t, fast, prices[len(prices)-1])
}

func TestEMAInsufficientData(t *testing.T) {
	_, err := NewEMA(20).Calculate(flatSeries(10, 1.0))
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestRSISaturatesOnOneWayMoves(t *testing.T) {
	rsi := NewRSI(14)

	up, err := rsi.Calculate(rampCloses(40, 1.0, 0.001))
	require.NoError(t, err)
	assert.Equal(t, 100.0, up)

	down, err := rsi.Calculate(rampCloses(40, 2.0, -0.001))
	require.NoError(t, err)
	assert.Equal(t, 0.0, down)
}

func TestRSIMidpointOnAlternatingMoves(t *testing.T) {
	// equal gains and losses put RSI at 50
	closes := make([]float64, 41)
	closes[0] = 1.0
	for i := 1; i < len(closes); i++ {
		if i%2 == 1 {
			closes[i] = closes[i-1] + 0.001
		} else {
			closes[i] = closes[i-1] - 0.001
		}
	}
	v, err := NewRSI(14).Calculate(closes)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, v, 0.01)
}

func TestRSIInsufficientData(t *testing.T) {
	_, err := NewRSI(14).Calculate(rampCloses(10, 1.0, 0.001))
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestATRConstantRange(t *testing.T) {
	// flat closes with a fixed spread give TR = 2 x spread everywhere
	data := barsWith(flatSeries(40, 1.1), 0.001)
	v, err := NewATR(14).Calculate(data)
	require.NoError(t, err)
	assert.InDelta(t, 0.002, v, 1e-12)
}

func TestATRInsufficientData(t *testing.T) {
	data := barsWith(flatSeries(10, 1.1), 0.001)
	_, err := NewATR(14).Calculate(data)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestADXSaturatesOnSteadyTrend(t *testing.T) {
	// one-directional movement leaves -DM empty, so DX pins at 100
	data := barsWith(rampCloses(80, 1.0, 0.001), 0.0005)
	v, err := NewADX(14).Calculate(data)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, v, 1e-9)
}

func TestADXUndefinedOnFlatPrice(t *testing.T) {
	// zero directional movement leaves +DI + -DI at zero
	data := barsWith(flatSeries(80, 1.1), 0.0)
	_, err := NewADX(14).Calculate(data)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestMACDFlatSeriesIsZero(t *testing.T) {
	macd, signal, err := NewMACD(12, 26, 9).Calculate(flatSeries(60, 1.1))
	require.NoError(t, err)
	assert.InDelta(t, 0.0, macd, 1e-12)
	assert.InDelta(t, 0.0, signal, 1e-12)
}

func TestMACDPositiveOnUptrend(t *testing.T) {
	macd, signal, err := NewMACD(12, 26, 9).Calculate(rampCloses(100, 1.0, 0.001))
	require.NoError(t, err)
	assert.Greater(t, macd, 0.0)
	assert.Greater(t, macd, signal)
}

func TestMACDInsufficientData(t *testing.T) {
	_, _, err := NewMACD(12, 26, 9).Calculate(flatSeries(20, 1.1))
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestStochasticExtremes(t *testing.T) {
	stoch := NewStochastic(14, 3)

	// close pinned to the window high
	up := barsWith(rampCloses(40, 1.0, 0.001), 0.0)
	k, d, err := stoch.Calculate(up)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, k, 1e-9)
	assert.InDelta(t, 100.0, d, 1e-9)

	// close pinned to the window low
	down := barsWith(rampCloses(40, 2.0, -0.001), 0.0)
	k, _, err = stoch.Calculate(down)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, k, 1e-9)
}

func TestStochasticUndefinedOnFlatWindow(t *testing.T) {
	data := barsWith(flatSeries(40, 1.1), 0.0)
	_, _, err := NewStochastic(14, 3).Calculate(data)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestCCILinearTrend(t *testing.T) {
	// for a linear ramp the deviation/MAD ratio is constant:
	// 9.5d / (0.015 x 5d) = 126.67 regardless of slope
	data := barsWith(rampCloses(60, 1.0, 0.001), 0.0)
	v, err := NewCCI(20).Calculate(data)
	require.NoError(t, err)
	assert.InDelta(t, 126.67, v, 0.01)
}

func TestCCIUndefinedOnFlatPrice(t *testing.T) {
	data := barsWith(flatSeries(60, 1.1), 0.0)
	_, err := NewCCI(20).Calculate(data)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestBollingerBandsCollapseOnFlatPrice(t *testing.T) {
	upper, middle, lower, err := NewBollingerBands(20, 2.0).Calculate(flatSeries(40, 1.1))
	require.NoError(t, err)
	assert.InDelta(t, 1.1, upper, 1e-12)
	assert.InDelta(t, 1.1, middle, 1e-12)
	assert.InDelta(t, 1.1, lower, 1e-12)
}

func TestBollingerBandsSymmetry(t *testing.T) {
	prices := rampCloses(60, 1.0, 0.001)
	upper, middle, lower, err := NewBollingerBands(20, 2.0).Calculate(prices)
	require.NoError(t, err)
	assert.Greater(t, upper, middle)
	assert.Less(t, lower, middle)
	assert.InDelta(t, upper-middle, middle-lower, 1e-12)
}

func TestBollingerWidthSeries(t *testing.T) {
	width := NewBollingerBands(20, 2.0).WidthSeries(flatSeries(40, 1.1))
	assert.True(t, Undefined(width[10]))
	assert.InDelta(t, 0.0, width[39], 1e-12)
}

func TestZScoreLinearTrend(t *testing.T) {
	// linear ramp: z = 24.5d / (sqrt((n^2-1)/12) d) with n=50
	expected := 24.5 / math.Sqrt(2499.0/12.0)
	v, err := NewZScore(50).Calculate(rampCloses(80, 1.0, 0.001))
	require.NoError(t, err)
	assert.InDelta(t, expected, v, 1e-9)
}

func TestZScoreUndefinedOnFlatPrice(t *testing.T) {
	_, err := NewZScore(50).Calculate(flatSeries(80, 1.1))
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestDonchianChannels(t *testing.T) {
	closes := flatSeries(30, 1.1)
	closes[25] = 1.15
	closes[22] = 1.05
	data := barsWith(closes, 0.001)

	upper, lower, err := NewDonchianChannels(20).Calculate(data)
	require.NoError(t, err)
	assert.InDelta(t, 1.151, upper, 1e-12)
	assert.InDelta(t, 1.049, lower, 1e-12)
}

func TestDonchianInsufficientData(t *testing.T) {
	data := barsWith(flatSeries(10, 1.1), 0.001)
	_, _, err := NewDonchianChannels(20).Calculate(data)
	assert.ErrorIs(t, err, ErrInsufficientData)
}
