package levels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

func flatBars(n int, price float64) []types.OHLCV {
	bars := make([]types.OHLCV, n)
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = types.OHLCV{
			Open:      price,
			High:      price + 0.0001,
			Low:       price - 0.0001,
			Close:     price,
			Volume:    1000,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return bars
}

func withHigh(bars []types.OHLCV, i int, high float64) []types.OHLCV {
	bars[i].High = high
	return bars
}

func withLow(bars []types.OHLCV, i int, low float64) []types.OHLCV {
	bars[i].Low = low
	return bars
}

func TestDetectFindsIsolatedPivots(t *testing.T) {
	bars := flatBars(60, 1.1000)
	bars = withHigh(bars, 20, 1.1100)
	bars = withLow(bars, 40, 1.0900)

	support, resistance := NewDetector().Detect(bars)

	require.Len(t, resistance, 1)
	assert.InDelta(t, 1.1100, resistance[0].Price, 1e-9)
	assert.Equal(t, Resistance, resistance[0].Kind)
	assert.Equal(t, 20, resistance[0].LastSeen)

	require.Len(t, support, 1)
	assert.InDelta(t, 1.0900, support[0].Price, 1e-9)
	assert.Equal(t, Support, support[0].Kind)
}

func TestDetectIgnoresEdgeBars(t *testing.T) {
	// spike on bar 2 has no full left flank, bar n-3 no full right flank
	bars := flatBars(30, 1.1000)
	bars = withHigh(bars, 2, 1.1200)
	bars = withHigh(bars, 27, 1.1200)

	_, resistance := NewDetector().Detect(bars)
	assert.Empty(t, resistance)
}

func TestDetectRequiresStrictPivot(t *testing.T) {
	// equal neighboring highs disqualify both bars
	bars := flatBars(40, 1.1000)
	bars = withHigh(bars, 20, 1.1100)
	bars = withHigh(bars, 21, 1.1100)

	_, resistance := NewDetector().Detect(bars)
	assert.Empty(t, resistance)
}

func TestDetectClustersNearbyPivots(t *testing.T) {
	// two pivots 0.02% apart collapse into one level at their average
	bars := flatBars(60, 1.1000)
	bars = withHigh(bars, 15, 1.12000)
	bars = withHigh(bars, 40, 1.12020)

	_, resistance := NewDetector().Detect(bars)

	require.Len(t, resistance, 1)
	assert.Equal(t, 2, resistance[0].Touches)
	assert.InDelta(t, 1.12010, resistance[0].Price, 1e-9)
	assert.Equal(t, 40, resistance[0].LastSeen)
}

func TestDetectKeepsDistantPivotsSeparate(t *testing.T) {
	bars := flatBars(60, 1.1000)
	bars = withHigh(bars, 15, 1.1200)
	bars = withHigh(bars, 40, 1.1300)

	_, resistance := NewDetector().Detect(bars)
	require.Len(t, resistance, 2)
}

func TestDetectKeepsThreeMostRecentLevels(t *testing.T) {
	bars := flatBars(120, 1.1000)
	prices := []float64{1.1200, 1.1300, 1.1400, 1.1500}
	for i, p := range prices {
		bars = withHigh(bars, 15+i*20, p)
	}

	_, resistance := NewDetector().Detect(bars)

	require.Len(t, resistance, 3)
	// newest first, oldest pivot (1.1200 at index 15) dropped
	assert.InDelta(t, 1.1500, resistance[0].Price, 1e-9)
	assert.InDelta(t, 1.1400, resistance[1].Price, 1e-9)
	assert.InDelta(t, 1.1300, resistance[2].Price, 1e-9)
}

func TestDetectDropsPivotsOlderThanLookback(t *testing.T) {
	// 200-bar window, default lookback 100: the pivot at bar 20 is stale
	bars := flatBars(200, 1.1000)
	bars = withHigh(bars, 20, 1.1300)
	bars = withHigh(bars, 150, 1.1200)

	_, resistance := NewDetector().Detect(bars)

	require.Len(t, resistance, 1)
	assert.InDelta(t, 1.1200, resistance[0].Price, 1e-9)
	// LastSeen indexes into the full window, not the trailing slice
	assert.Equal(t, 150, resistance[0].LastSeen)
}

func TestDetectUnboundedLookbackScansWholeWindow(t *testing.T) {
	bars := flatBars(200, 1.1000)
	bars = withHigh(bars, 20, 1.1300)
	bars = withHigh(bars, 150, 1.1200)

	_, resistance := NewDetectorWithLookback(0).Detect(bars)
	require.Len(t, resistance, 2)
}

func TestIsNearLevel(t *testing.T) {
	lvs := []Level{{Price: 1.1000, Kind: Support}}

	hit, ok := IsNearLevel(1.1005, lvs)
	assert.True(t, ok)
	assert.InDelta(t, 1.1000, hit.Price, 1e-9)

	_, ok = IsNearLevel(1.1050, lvs)
	assert.False(t, ok)

	_, ok = IsNearLevel(1.1000, nil)
	assert.False(t, ok)
}
