package strategy

import (
	"github.com/ducminhle1904/fx-scalper-bot/internal/indicators"
	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

// EMACrossover is the conservative single-tactic scalper: a fresh EMA9/21
// crossover confirmed by RSI, with moderate ATR targets. Unlike Adaptive it
// does not switch tactics with the regime.
type EMACrossover struct {
	pipSize float64
	ema9    *indicators.EMA
	ema21   *indicators.EMA
	rsi     *indicators.RSI
	atr     *indicators.ATR
}

func NewEMACrossover(pipSize float64) *EMACrossover {
	return &EMACrossover{
		pipSize: pipSize,
		ema9:    indicators.NewEMA(9),
		ema21:   indicators.NewEMA(21),
		rsi:     indicators.NewRSI(14),
		atr:     indicators.NewATR(14),
	}
}

func (s *EMACrossover) GetName() string   { return "ema_crossover" }
func (s *EMACrossover) RequiredBars() int { return 100 }

func (s *EMACrossover) Evaluate(primary, confirmation []types.OHLCV) (*Vote, error) {
	if len(primary) < s.RequiredBars() {
		return NoVote(s.GetName(), "insufficient data"), nil
	}

	if !WithinVolatilityBand(primary) {
		return NoVote(s.GetName(), "volatility outside tradable band"), nil
	}

	closes := types.Closes(primary)
	ema9S := s.ema9.Series(closes)
	ema21S := s.ema21.Series(closes)
	ema9, ok9 := lastValue(ema9S)
	ema21, ok21 := lastValue(ema21S)
	prev9, okP9 := priorValue(ema9S)
	prev21, okP21 := priorValue(ema21S)
	rsi, rsiErr := s.rsi.Calculate(closes)
	atr, okATR := lastValue(s.atr.Series(primary))
	if !ok9 || !ok21 || !okP9 || !okP21 || rsiErr != nil || !okATR || ema21 == 0 {
		return NoVote(s.GetName(), "indicators unavailable"), nil
	}

	var action Action
	confidence := 0.0

	if prev9 <= prev21 && ema9 > ema21 && rsi > 50 {
		action = ActionBuy
		confidence = 70
		if rsi > 50 && rsi < 60 {
			confidence += 10
		}
		if (ema9-ema21)/ema21*100 > 0.05 {
			confidence += 10
		}
	} else if prev9 >= prev21 && ema9 < ema21 && rsi < 50 {
		action = ActionSell
		confidence = 70
		if rsi > 40 && rsi < 50 {
			confidence += 10
		}
		if (ema21-ema9)/ema21*100 > 0.05 {
			confidence += 10
		}
	}

	if action == ActionNone {
		return NoVote(s.GetName(), "no crossover signal"), nil
	}

	atrPips := atr / s.pipSize
	slPips := clamp(atrPips*1.0, 5, 20)
	tpPips := clamp(atrPips*1.5, 8, 30)

	return &Vote{
		StrategyID: s.GetName(),
		Action:     action,
		Confidence: confidence,
		Diagnostics: map[string]any{
			"rsi":          rsi,
			"ema_9":        ema9,
			"ema_21":       ema21,
			DiagSLPips:     slPips,
			DiagTPPips:     tpPips,
			DiagRiskReward: tpPips / slPips,
		},
	}, nil
}
