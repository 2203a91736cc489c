package strategy

import (
	"github.com/ducminhle1904/fx-scalper-bot/internal/indicators"
	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

// Metal evaluators: gold and silver carry long directional legs, so these
// favor higher-timeframe trend alignment and breakouts.

// EMAMACDATR votes on the EMA50/200 long-term trend confirmed by MACD, with
// price position and a volatility sanity check.
type EMAMACDATR struct {
	weights   WeightTable
	threshold float64
	ema50     *indicators.EMA
	ema200    *indicators.EMA
	macd      *indicators.MACD
	atr       *indicators.ATR
}

func NewEMAMACDATR() *EMAMACDATR {
	return &EMAMACDATR{
		weights: WeightTable{
			"trend":      35,
			"macd":       35,
			"position":   20,
			"volatility": 10,
		},
		threshold: defaultScoreThreshold,
		ema50:     indicators.NewEMA(50),
		ema200:    indicators.NewEMA(200),
		macd:      indicators.NewMACD(12, 26, 9),
		atr:       indicators.NewATR(14),
	}
}

func (s *EMAMACDATR) GetName() string   { return "ema_macd_atr" }
func (s *EMAMACDATR) RequiredBars() int { return 100 }

func (s *EMAMACDATR) Evaluate(primary, confirmation []types.OHLCV) (*Vote, error) {
	if len(primary) < s.RequiredBars() {
		return NoVote(s.GetName(), "insufficient data"), nil
	}

	closes := types.Closes(primary)
	price := closes[len(closes)-1]

	ema50, ok50 := lastValue(s.ema50.Series(closes))
	ema200, ok200 := lastValue(s.ema200.Series(closes))
	macd, signal, macdErr := s.macd.Calculate(closes)
	atr, atrAvg, atrOK := atrWithAverage(s.atr, primary, 20)
	if !ok50 || !ok200 || macdErr != nil || !atrOK {
		return NoVote(s.GetName(), "indicators unavailable"), nil
	}

	sc := newScorecard(s.threshold)

	sc.buyIf(ema50 > ema200, s.weights["trend"])
	sc.buyIf(macd > signal, s.weights["macd"])
	sc.buyIf(price > ema50, s.weights["position"])

	sc.sellIf(ema50 < ema200, s.weights["trend"])
	sc.sellIf(macd < signal, s.weights["macd"])
	sc.sellIf(price < ema50, s.weights["position"])

	sc.bothIf(atr < atrAvg*1.5, s.weights["volatility"])

	action, confidence := sc.resolve()
	trend := "DOWN"
	if ema50 > ema200 {
		trend = "UP"
	}
	macdSignal := "BEAR"
	if macd > signal {
		macdSignal = "BULL"
	}
	return &Vote{
		StrategyID: s.GetName(),
		Action:     action,
		Confidence: confidence,
		Diagnostics: map[string]any{
			"ema_trend":   trend,
			"macd_signal": macdSignal,
		},
	}, nil
}

// TrendMomentum votes when ADX confirms a strong trend and 10-bar momentum
// picks the direction, with RSI kept inside a neutral band.
type TrendMomentum struct {
	weights   WeightTable
	threshold float64
	adx       *indicators.ADX
	rsi       *indicators.RSI
}

func NewTrendMomentum() *TrendMomentum {
	return &TrendMomentum{
		weights: WeightTable{
			"adx":      35,
			"momentum": 35,
			"rsi_band": 30,
		},
		threshold: defaultScoreThreshold,
		adx:       indicators.NewADX(14),
		rsi:       indicators.NewRSI(14),
	}
}

func (s *TrendMomentum) GetName() string   { return "trend_momentum" }
func (s *TrendMomentum) RequiredBars() int { return 100 }

func (s *TrendMomentum) Evaluate(primary, confirmation []types.OHLCV) (*Vote, error) {
	if len(primary) < s.RequiredBars() {
		return NoVote(s.GetName(), "insufficient data"), nil
	}

	closes := types.Closes(primary)
	adx, adxErr := s.adx.Calculate(primary)
	rsi, rsiErr := s.rsi.Calculate(closes)
	mom := momentum(closes, 10)
	if adxErr != nil || rsiErr != nil || indicators.Undefined(mom) {
		return NoVote(s.GetName(), "indicators unavailable"), nil
	}

	sc := newScorecard(s.threshold)

	sc.bothIf(adx > 25, s.weights["adx"])
	sc.buyIf(mom > 0, s.weights["momentum"])
	sc.sellIf(mom < 0, s.weights["momentum"])
	sc.bothIf(rsi > 40 && rsi < 60, s.weights["rsi_band"])

	action, confidence := sc.resolve()
	direction := "NEGATIVE"
	if mom > 0 {
		direction = "POSITIVE"
	}
	return &Vote{
		StrategyID: s.GetName(),
		Action:     action,
		Confidence: confidence,
		Diagnostics: map[string]any{
			"adx":      adx,
			"momentum": direction,
		},
	}, nil
}

// BreakoutSystem votes on fresh Donchian channel breaks backed by volume
// expansion.
type BreakoutSystem struct {
	weights   WeightTable
	threshold float64
	donchian  *indicators.DonchianChannels
}

func NewBreakoutSystem() *BreakoutSystem {
	return &BreakoutSystem{
		weights: WeightTable{
			"breakout":  50,
			"volume":    30,
			"proximity": 20,
		},
		threshold: defaultScoreThreshold,
		donchian:  indicators.NewDonchianChannels(20),
	}
}

func (s *BreakoutSystem) GetName() string   { return "breakout_system" }
func (s *BreakoutSystem) RequiredBars() int { return 50 }

func (s *BreakoutSystem) Evaluate(primary, confirmation []types.OHLCV) (*Vote, error) {
	if len(primary) < s.RequiredBars() {
		return NoVote(s.GetName(), "insufficient data"), nil
	}

	// channel from bars before the latest so a fresh break is visible
	upper, lower, err := s.donchian.Calculate(primary[:len(primary)-1])
	if err != nil {
		return NoVote(s.GetName(), "indicators unavailable"), nil
	}

	latest := primary[len(primary)-1]
	prev := primary[len(primary)-2]
	avgVol := averageVolume(primary, 20)

	sc := newScorecard(s.threshold)

	sc.buyIf(latest.Close > upper && prev.High <= upper, s.weights["breakout"])
	sc.buyIf(latest.Close > upper*0.999, s.weights["proximity"])
	sc.sellIf(latest.Close < lower && prev.Low >= lower, s.weights["breakout"])
	sc.sellIf(latest.Close < lower*1.001, s.weights["proximity"])
	sc.bothIf(avgVol > 0 && latest.Volume > avgVol*1.3, s.weights["volume"])

	action, confidence := sc.resolve()
	broke := "NO"
	if confidence >= 50 {
		broke = "YES"
	}
	volumeRatio := 0.0
	if avgVol > 0 {
		volumeRatio = latest.Volume / avgVol
	}
	return &Vote{
		StrategyID: s.GetName(),
		Action:     action,
		Confidence: confidence,
		Diagnostics: map[string]any{
			"breakout":     broke,
			"volume_ratio": volumeRatio,
		},
	}, nil
}
