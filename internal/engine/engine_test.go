package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/fx-scalper-bot/internal/instrument"
	"github.com/ducminhle1904/fx-scalper-bot/internal/regime"
	"github.com/ducminhle1904/fx-scalper-bot/internal/risk"
	"github.com/ducminhle1904/fx-scalper-bot/internal/strategy"
	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

type fakeData struct {
	bars map[string][]types.OHLCV
	err  error
}

func (f *fakeData) GetKlines(ctx context.Context, symbol, timeframe string, limit int) ([]types.OHLCV, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bars[symbol], nil
}

type fakeMeta struct {
	profile instrument.Profile
	err     error
}

func (f *fakeMeta) Profile(ctx context.Context, symbol string) (instrument.Profile, error) {
	return f.profile, f.err
}

type fakeAccount struct {
	budget risk.Budget
	err    error
}

func (f *fakeAccount) Budget(ctx context.Context) (risk.Budget, error) {
	return f.budget, f.err
}

func bars(closes []float64, spread float64) []types.OHLCV {
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

func declineCloses(n int, start, step float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start - float64(i)*step
	}
	return closes
}

func flatCloses(n int, price float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}
	return closes
}

func defaultConfig() Config {
	return Config{
		PrimaryTimeframe:      "5",
		ConfirmationTimeframe: "60",
		WindowSize:            200,
		Quorum:                2,
		MinConfidence:         70,
		SizingMode:            risk.ModeFixedFractional,
	}
}

func newTestEngine(data MarketDataSource, cfg Config) *Engine {
	meta := &fakeMeta{profile: instrument.Profile{
		Symbol:     "EURCHF",
		PipSize:    0.0001,
		VolumeMin:  0.01,
		VolumeMax:  100,
		VolumeStep: 0.01,
		TickValue:  1.0,
	}}
	account := &fakeAccount{budget: risk.Budget{Balance: 10000, RiskFraction: 0.01}}
	return New(data, meta, account, regime.NewClassifier(), cfg)
}

func TestScanInstrumentInsufficientData(t *testing.T) {
	data := &fakeData{bars: map[string][]types.OHLCV{
		"EURCHF": bars(declineCloses(20, 1.2, 0.001), 0.0005),
	}}
	e := newTestEngine(data, defaultConfig())

	d, err := e.ScanInstrument(context.Background(), "EURCHF")
	require.NoError(t, err)
	assert.False(t, d.Actionable())
	assert.Equal(t, "insufficient data", d.Reason)
}

func TestScanInstrumentDataUnavailable(t *testing.T) {
	data := &fakeData{err: errors.New("connection refused")}
	e := newTestEngine(data, defaultConfig())

	d, err := e.ScanInstrument(context.Background(), "EURCHF")
	require.NoError(t, err)
	assert.False(t, d.Actionable())
	assert.Contains(t, d.Reason, "market data unavailable")
}

func TestScanInstrumentRejectsNonMonotonicWindow(t *testing.T) {
	window := bars(declineCloses(120, 1.2, 0.001), 0.0005)
	window[60].Timestamp = window[10].Timestamp

	data := &fakeData{bars: map[string][]types.OHLCV{"EURCHF": window}}
	e := newTestEngine(data, defaultConfig())

	_, err := e.ScanInstrument(context.Background(), "EURCHF")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed bar window")
}

func TestScanInstrumentVolatileRegimeVeto(t *testing.T) {
	closes := flatCloses(120, 1.1000)
	for i := len(closes) - 6; i < len(closes); i++ {
		if i%2 == 0 {
			closes[i] = 1.1300
		} else {
			closes[i] = 1.0700
		}
	}
	data := &fakeData{bars: map[string][]types.OHLCV{"EURCHF": bars(closes, 0.0002)}}
	e := newTestEngine(data, defaultConfig())

	d, err := e.ScanInstrument(context.Background(), "EURCHF")
	require.NoError(t, err)
	assert.False(t, d.Actionable())
	assert.Equal(t, "too volatile", d.Reason)
	assert.Equal(t, regime.RegimeVolatile, d.Regime)
}

func TestScanInstrumentVolatilityGateVeto(t *testing.T) {
	// loud history, dead-quiet tail: ATR collapses below half its mean
	window := bars(flatCloses(120, 1.1000), 0.005)
	for i := 105; i < 120; i++ {
		window[i].High = window[i].Close + 0.0001
		window[i].Low = window[i].Close - 0.0001
	}
	data := &fakeData{bars: map[string][]types.OHLCV{"EURCHF": window}}
	e := newTestEngine(data, defaultConfig())

	d, err := e.ScanInstrument(context.Background(), "EURCHF")
	require.NoError(t, err)
	assert.False(t, d.Actionable())
	assert.Equal(t, "volatility outside tradable band", d.Reason)
}

func TestScanInstrumentConsensusBuy(t *testing.T) {
	// a steady decline lights up all three cross-pair mean-reversion flavors
	window := bars(declineCloses(120, 1.2, 0.001), 0.0005)
	data := &fakeData{bars: map[string][]types.OHLCV{"EURCHF": window}}
	e := newTestEngine(data, defaultConfig())

	d, err := e.ScanInstrument(context.Background(), "EURCHF")
	require.NoError(t, err)
	require.True(t, d.Actionable())
	assert.Equal(t, strategy.ActionBuy, d.Action)
	assert.GreaterOrEqual(t, d.Confidence, 70.0)
	assert.LessOrEqual(t, d.Confidence, 100.0)

	// EURCHF class targets: TP 20, SL 10
	assert.Equal(t, 20.0, d.TPPips)
	assert.Equal(t, 10.0, d.SLPips)
	assert.Equal(t, 2.0, d.RiskReward)

	// $100 risked against 10 pips at $10/pip
	assert.Equal(t, 1.0, d.Volume)
}

func TestScanInstrumentConfidenceGate(t *testing.T) {
	cfg := defaultConfig()
	cfg.MinConfidence = 99.5

	window := bars(declineCloses(120, 1.2, 0.001), 0.0005)
	data := &fakeData{bars: map[string][]types.OHLCV{"EURCHF": window}}
	e := newTestEngine(data, cfg)

	d, err := e.ScanInstrument(context.Background(), "EURCHF")
	require.NoError(t, err)
	assert.False(t, d.Actionable())
	assert.Contains(t, d.Reason, "below threshold")
}

func hasVote(votes []*strategy.Vote, strategyID string) bool {
	for _, v := range votes {
		if v.StrategyID == strategyID {
			return true
		}
	}
	return false
}

func TestScanInstrumentCrossoverEvaluatorToggle(t *testing.T) {
	window := bars(declineCloses(120, 1.2, 0.001), 0.0005)
	data := &fakeData{bars: map[string][]types.OHLCV{"EURCHF": window}}

	cfg := defaultConfig()
	cfg.UseCrossover = true
	d, err := newTestEngine(data, cfg).ScanInstrument(context.Background(), "EURCHF")
	require.NoError(t, err)
	assert.True(t, hasVote(d.Votes, "ema_crossover"))

	d, err = newTestEngine(data, defaultConfig()).ScanInstrument(context.Background(), "EURCHF")
	require.NoError(t, err)
	assert.False(t, hasVote(d.Votes, "ema_crossover"))
}

func TestScanInstrumentMissingMetadataFallsBackToMinVolume(t *testing.T) {
	window := bars(declineCloses(120, 1.2, 0.001), 0.0005)
	data := &fakeData{bars: map[string][]types.OHLCV{"EURCHF": window}}

	meta := &fakeMeta{err: errors.New("symbol info unavailable")}
	account := &fakeAccount{budget: risk.Budget{Balance: 10000, RiskFraction: 0.01}}
	e := New(data, meta, account, regime.NewClassifier(), defaultConfig())

	d, err := e.ScanInstrument(context.Background(), "EURCHF")
	require.NoError(t, err)
	require.True(t, d.Actionable())
	assert.Equal(t, 0.01, d.Volume)
}

func TestScanHonorsCancellation(t *testing.T) {
	window := bars(declineCloses(120, 1.2, 0.001), 0.0005)
	data := &fakeData{bars: map[string][]types.OHLCV{"EURCHF": window}}
	e := newTestEngine(data, defaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	decisions, err := e.Scan(ctx, []string{"EURCHF", "EURCHF"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, decisions)
}

func TestScanMultipleInstruments(t *testing.T) {
	window := bars(declineCloses(120, 1.2, 0.001), 0.0005)
	short := bars(declineCloses(20, 1.2, 0.001), 0.0005)
	data := &fakeData{bars: map[string][]types.OHLCV{
		"EURCHF": window,
		"GBPAUD": short,
	}}
	e := newTestEngine(data, defaultConfig())

	decisions, err := e.Scan(context.Background(), []string{"EURCHF", "GBPAUD"})
	require.NoError(t, err)
	require.Len(t, decisions, 2)
	assert.True(t, decisions[0].Actionable())
	assert.False(t, decisions[1].Actionable())
}

func TestNoneDecisionHasZeroConfidence(t *testing.T) {
	d := noDecision("EURUSD", regime.RegimeRanging, "test")
	assert.Equal(t, 0.0, d.Confidence)
	assert.False(t, d.Actionable())
	assert.Equal(t, strings.ToUpper("none"), strings.ToUpper(d.Action.String()))
}
