package strategy

import (
	"math"

	"github.com/ducminhle1904/fx-scalper-bot/internal/indicators"
	"github.com/ducminhle1904/fx-scalper-bot/internal/levels"
	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

// Energy evaluators: oil and gas are news-driven, so these weight raw price
// action, volatility expansion, and key levels over slow trend filters.

// PriceActionRSI votes on RSI extremes confirmed by candle direction and
// strength.
type PriceActionRSI struct {
	weights   WeightTable
	threshold float64
	rsi       *indicators.RSI
	sma       *indicators.SMA
}

func NewPriceActionRSI() *PriceActionRSI {
	return &PriceActionRSI{
		weights: WeightTable{
			"rsi":      40,
			"candle":   30,
			"body":     20,
			"position": 10,
		},
		threshold: defaultScoreThreshold,
		rsi:       indicators.NewRSI(14),
		sma:       indicators.NewSMA(20),
	}
}

func (s *PriceActionRSI) GetName() string   { return "price_action_rsi" }
func (s *PriceActionRSI) RequiredBars() int { return 100 }

func (s *PriceActionRSI) Evaluate(primary, confirmation []types.OHLCV) (*Vote, error) {
	if len(primary) < s.RequiredBars() {
		return NoVote(s.GetName(), "insufficient data"), nil
	}

	closes := types.Closes(primary)
	rsi, rsiErr := s.rsi.Calculate(closes)
	sma, smaErr := s.sma.Calculate(closes)
	if rsiErr != nil || smaErr != nil {
		return NoVote(s.GetName(), "indicators unavailable"), nil
	}

	latest := primary[len(primary)-1]
	prevClose := primary[len(primary)-2].Close
	body := bodyRatio(latest)

	sc := newScorecard(s.threshold)

	sc.buyIf(rsi < 40, s.weights["rsi"])
	sc.buyIf(latest.Close > prevClose, s.weights["candle"])
	sc.buyIf(latest.Close > sma, s.weights["position"])

	sc.sellIf(rsi > 60, s.weights["rsi"])
	sc.sellIf(latest.Close < prevClose, s.weights["candle"])
	sc.sellIf(latest.Close < sma, s.weights["position"])

	sc.bothIf(body > 0.6, s.weights["body"])

	action, confidence := sc.resolve()
	return &Vote{
		StrategyID: s.GetName(),
		Action:     action,
		Confidence: confidence,
		Diagnostics: map[string]any{
			"rsi":             rsi,
			"candle_strength": body,
		},
	}, nil
}

// MomentumVolatility votes on 10-bar momentum and rate of change during
// expanding volatility, riding news-driven moves.
type MomentumVolatility struct {
	weights   WeightTable
	threshold float64
	atr       *indicators.ATR
}

func NewMomentumVolatility() *MomentumVolatility {
	return &MomentumVolatility{
		weights: WeightTable{
			"momentum":   40,
			"roc":        30,
			"volatility": 30,
		},
		threshold: defaultScoreThreshold,
		atr:       indicators.NewATR(14),
	}
}

func (s *MomentumVolatility) GetName() string   { return "momentum_volatility" }
func (s *MomentumVolatility) RequiredBars() int { return 100 }

func (s *MomentumVolatility) Evaluate(primary, confirmation []types.OHLCV) (*Vote, error) {
	if len(primary) < s.RequiredBars() {
		return NoVote(s.GetName(), "insufficient data"), nil
	}

	closes := types.Closes(primary)
	mom := momentum(closes, 10)
	roc := rateOfChange(closes, 10)
	atr, atrAvg, atrOK := atrWithAverage(s.atr, primary, 20)
	if indicators.Undefined(mom) || indicators.Undefined(roc) || !atrOK {
		return NoVote(s.GetName(), "indicators unavailable"), nil
	}

	sc := newScorecard(s.threshold)

	sc.buyIf(mom > 0, s.weights["momentum"])
	sc.buyIf(roc > 0.5, s.weights["roc"])
	sc.sellIf(mom < 0, s.weights["momentum"])
	sc.sellIf(roc < -0.5, s.weights["roc"])
	sc.bothIf(atr > atrAvg, s.weights["volatility"])

	action, confidence := sc.resolve()
	direction := "NEGATIVE"
	if mom > 0 {
		direction = "POSITIVE"
	}
	volatility := "NORMAL"
	if atr > atrAvg {
		volatility = "HIGH"
	}
	return &Vote{
		StrategyID: s.GetName(),
		Action:     action,
		Confidence: confidence,
		Diagnostics: map[string]any{
			"momentum":   direction,
			"volatility": volatility,
		},
	}, nil
}

// SupportResistance votes on proximity to clustered pivot levels with
// volume confirmation.
type SupportResistance struct {
	weights   WeightTable
	threshold float64
	detector  *levels.Detector
}

func NewSupportResistance() *SupportResistance {
	return &SupportResistance{
		weights: WeightTable{
			"at_level": 50,
			"volume":   30,
			"closer":   20,
		},
		threshold: defaultScoreThreshold,
		detector:  levels.NewDetector(),
	}
}

func (s *SupportResistance) GetName() string   { return "support_resistance" }
func (s *SupportResistance) RequiredBars() int { return 100 }

func (s *SupportResistance) Evaluate(primary, confirmation []types.OHLCV) (*Vote, error) {
	if len(primary) < s.RequiredBars() {
		return NoVote(s.GetName(), "insufficient data"), nil
	}

	support, resistance := s.detector.Detect(primary)
	if len(support) == 0 && len(resistance) == 0 {
		return NoVote(s.GetName(), "no levels detected"), nil
	}

	latest := primary[len(primary)-1]
	price := latest.Close
	avgVol := averageVolume(primary, 20)

	distToSupport := nearestDistance(price, support)
	distToResistance := nearestDistance(price, resistance)

	sc := newScorecard(s.threshold)

	_, nearSupport := levels.IsNearLevel(price, support)
	_, nearResistance := levels.IsNearLevel(price, resistance)

	sc.buyIf(nearSupport, s.weights["at_level"])
	sc.buyIf(distToSupport < distToResistance, s.weights["closer"])
	sc.sellIf(nearResistance, s.weights["at_level"])
	sc.sellIf(distToResistance < distToSupport, s.weights["closer"])
	sc.bothIf(avgVol > 0 && latest.Volume > avgVol*1.2, s.weights["volume"])

	action, confidence := sc.resolve()
	nearest := "RESISTANCE"
	if distToSupport < distToResistance {
		nearest = "SUPPORT"
	}
	return &Vote{
		StrategyID: s.GetName(),
		Action:     action,
		Confidence: confidence,
		Diagnostics: map[string]any{
			"near_level": nearest,
			"distance":   math.Min(distToSupport, distToResistance),
		},
	}, nil
}

// nearestDistance returns the smallest relative distance from price to any
// level, +Inf when the side has no levels.
func nearestDistance(price float64, side []levels.Level) float64 {
	best := math.Inf(1)
	for _, lv := range side {
		if lv.Price <= 0 {
			continue
		}
		d := math.Abs(price-lv.Price) / lv.Price
		if d < best {
			best = d
		}
	}
	return best
}
