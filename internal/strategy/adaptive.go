package strategy

import (
	"github.com/ducminhle1904/fx-scalper-bot/internal/indicators"
	"github.com/ducminhle1904/fx-scalper-bot/internal/levels"
	"github.com/ducminhle1904/fx-scalper-bot/internal/regime"
	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

// Diagnostic keys read back by the engine when an evaluator carries its own
// dynamic pip targets.
const (
	DiagTPPips     = "tp_pips"
	DiagSLPips     = "sl_pips"
	DiagRiskReward = "risk_reward"
)

// Volatility gate bounds: current ATR must sit inside this band of its
// 20-period mean or the signal is skipped.
const (
	volGateLow    = 0.5
	volGateHigh   = 2.0
	volGatePeriod = 20
)

// WithinVolatilityBand reports whether the current ATR(14) sits inside the
// tradable band around its rolling mean. Quiet and spiking tapes both fail.
func WithinVolatilityBand(data []types.OHLCV) bool {
	atr, atrAvg, ok := atrWithAverage(indicators.NewATR(14), data, volGatePeriod)
	if !ok || atrAvg <= 0 {
		return false
	}
	return atr > atrAvg*volGateLow && atr < atrAvg*volGateHigh
}

// Adaptive switches tactics with the detected regime: an EMA9/21 crossover
// trend-follower when trending, Bollinger mean reversion when ranging.
// TP/SL come from ATR scaled per regime and ride along in the vote
// diagnostics. Created per instrument because pip conversion needs the
// instrument's pip size.
type Adaptive struct {
	pipSize    float64
	classifier *regime.Classifier
	detector   *levels.Detector

	ema9  *indicators.EMA
	ema21 *indicators.EMA
	ema50 *indicators.EMA
	e200  *indicators.EMA
	rsi   *indicators.RSI
	atr   *indicators.ATR
	bb    *indicators.BollingerBands
}

func NewAdaptive(pipSize float64, classifier *regime.Classifier) *Adaptive {
	return &Adaptive{
		pipSize:    pipSize,
		classifier: classifier,
		detector:   levels.NewDetector(),
		ema9:       indicators.NewEMA(9),
		ema21:      indicators.NewEMA(21),
		ema50:      indicators.NewEMA(50),
		e200:       indicators.NewEMA(200),
		rsi:        indicators.NewRSI(14),
		atr:        indicators.NewATR(14),
		bb:         indicators.NewBollingerBands(20, 2.0),
	}
}

func (s *Adaptive) GetName() string   { return "adaptive_regime" }
func (s *Adaptive) RequiredBars() int { return 100 }

func (s *Adaptive) Evaluate(primary, confirmation []types.OHLCV) (*Vote, error) {
	if len(primary) < s.RequiredBars() || len(confirmation) < 50 {
		return NoVote(s.GetName(), "insufficient data"), nil
	}

	if !WithinVolatilityBand(primary) {
		return NoVote(s.GetName(), "volatility outside tradable band"), nil
	}

	switch s.classifier.Classify(primary) {
	case regime.RegimeVolatile:
		return NoVote(s.GetName(), "too volatile"), nil
	case regime.RegimeTrending:
		return s.trendingVote(primary, confirmation), nil
	default:
		return s.rangingVote(primary), nil
	}
}

func (s *Adaptive) trendingVote(primary, confirmation []types.OHLCV) *Vote {
	closes := types.Closes(primary)
	price := closes[len(closes)-1]

	ema9S := s.ema9.Series(closes)
	ema21S := s.ema21.Series(closes)
	ema9, ok9 := lastValue(ema9S)
	ema21, ok21 := lastValue(ema21S)
	prev9, okP9 := priorValue(ema9S)
	prev21, okP21 := priorValue(ema21S)
	rsiS := s.rsi.Series(closes)
	rsi, okRSI := lastValue(rsiS)
	atr, okATR := lastValue(s.atr.Series(primary))
	if !ok9 || !ok21 || !okP9 || !okP21 || !okRSI || !okATR {
		return NoVote(s.GetName(), "indicators unavailable")
	}

	h1Closes := types.Closes(confirmation)
	h1EMA50, okH50 := lastValue(s.ema50.Series(h1Closes))
	h1EMA200, okH200 := lastValue(s.e200.Series(h1Closes))
	if !okH50 || !okH200 {
		return NoVote(s.GetName(), "confirmation window unavailable")
	}
	h1Bullish := h1EMA50 > h1EMA200

	support, resistance := s.detector.Detect(primary)
	divergence := detectDivergence(primary, rsiS)

	latest := primary[len(primary)-1]
	avgVol := averageVolume(primary, 20)
	volumeConfirmed := avgVol > 0 && latest.Volume > avgVol*1.2

	var action Action
	confidence := 0.0

	crossedUp := prev9 <= prev21 && ema9 > ema21
	crossedDown := prev9 >= prev21 && ema9 < ema21

	if crossedUp && rsi > 50 && h1Bullish {
		action = ActionBuy
		confidence = 70
		if _, near := levels.IsNearLevel(price, support); near {
			confidence += 10
		}
		if volumeConfirmed {
			confidence += 10
		}
		if divergence != DivergenceBearish {
			confidence += 5
		}
		if rsi > 50 && rsi < 60 {
			confidence += 5
		}
	} else if crossedDown && rsi < 50 && !h1Bullish {
		action = ActionSell
		confidence = 70
		if _, near := levels.IsNearLevel(price, resistance); near {
			confidence += 10
		}
		if volumeConfirmed {
			confidence += 10
		}
		if divergence != DivergenceBullish {
			confidence += 5
		}
		if rsi > 40 && rsi < 50 {
			confidence += 5
		}
	}

	if action == ActionNone {
		return NoVote(s.GetName(), "no crossover signal")
	}

	// trending markets get wider targets
	slPips, tpPips := s.pipTargets(atr, 1.2, 2.0, 8, 25, 12, 40)
	return &Vote{
		StrategyID: s.GetName(),
		Action:     action,
		Confidence: confidence,
		Diagnostics: map[string]any{
			"strategy":     "TRENDING_EMA_CROSS",
			"rsi":          rsi,
			"h1_trend":     trendLabel(h1Bullish),
			"divergence":   divergence.String(),
			DiagSLPips:     slPips,
			DiagTPPips:     tpPips,
			DiagRiskReward: tpPips / slPips,
		},
	}
}

func (s *Adaptive) rangingVote(primary []types.OHLCV) *Vote {
	closes := types.Closes(primary)
	price := closes[len(closes)-1]

	upper, _, lower, bbErr := s.bb.Calculate(closes)
	rsi, rsiErr := s.rsi.Calculate(closes)
	atr, okATR := lastValue(s.atr.Series(primary))
	if bbErr != nil || rsiErr != nil || !okATR {
		return NoVote(s.GetName(), "indicators unavailable")
	}

	support, resistance := s.detector.Detect(primary)

	var action Action
	confidence := 0.0

	if price <= lower && rsi < 35 {
		action = ActionBuy
		confidence = 65
		if _, near := levels.IsNearLevel(price, support); near {
			confidence += 15
		}
		if rsi < 25 {
			confidence += 10
		}
	} else if price >= upper && rsi > 65 {
		action = ActionSell
		confidence = 65
		if _, near := levels.IsNearLevel(price, resistance); near {
			confidence += 15
		}
		if rsi > 75 {
			confidence += 10
		}
	}

	if action == ActionNone {
		return NoVote(s.GetName(), "no band touch")
	}

	// ranging markets get tighter targets
	slPips, tpPips := s.pipTargets(atr, 0.8, 1.2, 5, 15, 8, 25)
	return &Vote{
		StrategyID: s.GetName(),
		Action:     action,
		Confidence: confidence,
		Diagnostics: map[string]any{
			"strategy":     "RANGING_BB_REVERSION",
			"rsi":          rsi,
			DiagSLPips:     slPips,
			DiagTPPips:     tpPips,
			DiagRiskReward: tpPips / slPips,
		},
	}
}

// pipTargets converts ATR into pip-denominated SL/TP with per-regime
// multipliers and bounds.
func (s *Adaptive) pipTargets(atr, slMult, tpMult, slMin, slMax, tpMin, tpMax float64) (slPips, tpPips float64) {
	atrPips := atr / s.pipSize
	slPips = clamp(atrPips*slMult, slMin, slMax)
	tpPips = clamp(atrPips*tpMult, tpMin, tpMax)
	return slPips, tpPips
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func trendLabel(bullish bool) string {
	if bullish {
		return "bullish"
	}
	return "bearish"
}
