package strategy

import (
	"github.com/ducminhle1904/fx-scalper-bot/internal/indicators"
	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

// Cross-pair evaluators: crosses range more than they trend, so these lean
// on mean reversion and oscillator extremes.

// BollingerStochastic votes on band-touch bounces confirmed by stochastic
// extremes.
type BollingerStochastic struct {
	weights   WeightTable
	threshold float64
	bb        *indicators.BollingerBands
	stoch     *indicators.Stochastic
}

func NewBollingerStochastic() *BollingerStochastic {
	return &BollingerStochastic{
		weights: WeightTable{
			"band":         40,
			"extreme":      40,
			"deep_extreme": 20,
		},
		threshold: defaultScoreThreshold,
		bb:        indicators.NewBollingerBands(20, 2.0),
		stoch:     indicators.NewStochastic(14, 3),
	}
}

func (s *BollingerStochastic) GetName() string   { return "bollinger_stochastic" }
func (s *BollingerStochastic) RequiredBars() int { return 100 }

func (s *BollingerStochastic) Evaluate(primary, confirmation []types.OHLCV) (*Vote, error) {
	if len(primary) < s.RequiredBars() {
		return NoVote(s.GetName(), "insufficient data"), nil
	}

	closes := types.Closes(primary)
	price := closes[len(closes)-1]

	upper, _, lower, bbErr := s.bb.Calculate(closes)
	k, _, stochErr := s.stoch.Calculate(primary)
	if bbErr != nil || stochErr != nil || lower <= 0 || price <= 0 {
		return NoVote(s.GetName(), "indicators unavailable"), nil
	}

	distToLower := (price - lower) / lower * 100
	distToUpper := (upper - price) / price * 100

	sc := newScorecard(s.threshold)

	sc.buyIf(distToLower < 0.2, s.weights["band"])
	sc.buyIf(k < 25, s.weights["extreme"])
	sc.buyIf(k < 20, s.weights["deep_extreme"])

	sc.sellIf(distToUpper < 0.2, s.weights["band"])
	sc.sellIf(k > 75, s.weights["extreme"])
	sc.sellIf(k > 80, s.weights["deep_extreme"])

	action, confidence := sc.resolve()
	position := "UPPER"
	if distToLower < distToUpper {
		position = "LOWER"
	}
	return &Vote{
		StrategyID: s.GetName(),
		Action:     action,
		Confidence: confidence,
		Diagnostics: map[string]any{
			"bb_position": position,
			"stoch":       k,
		},
	}, nil
}

// RSICCIATR votes on agreeing RSI and CCI extremes, gated by normal
// volatility so it stays out of news spikes.
type RSICCIATR struct {
	weights   WeightTable
	threshold float64
	rsi       *indicators.RSI
	cci       *indicators.CCI
	atr       *indicators.ATR
}

func NewRSICCIATR() *RSICCIATR {
	return &RSICCIATR{
		weights: WeightTable{
			"rsi":        35,
			"cci":        35,
			"volatility": 30,
		},
		threshold: defaultScoreThreshold,
		rsi:       indicators.NewRSI(14),
		cci:       indicators.NewCCI(14),
		atr:       indicators.NewATR(14),
	}
}

func (s *RSICCIATR) GetName() string   { return "rsi_cci_atr" }
func (s *RSICCIATR) RequiredBars() int { return 100 }

func (s *RSICCIATR) Evaluate(primary, confirmation []types.OHLCV) (*Vote, error) {
	if len(primary) < s.RequiredBars() {
		return NoVote(s.GetName(), "insufficient data"), nil
	}

	closes := types.Closes(primary)
	rsi, rsiErr := s.rsi.Calculate(closes)
	cci, cciErr := s.cci.Calculate(primary)
	atr, atrAvg, atrOK := atrWithAverage(s.atr, primary, 20)
	if rsiErr != nil || cciErr != nil || !atrOK {
		return NoVote(s.GetName(), "indicators unavailable"), nil
	}

	sc := newScorecard(s.threshold)

	sc.buyIf(rsi < 35, s.weights["rsi"])
	sc.buyIf(cci < -100, s.weights["cci"])
	sc.sellIf(rsi > 65, s.weights["rsi"])
	sc.sellIf(cci > 100, s.weights["cci"])
	sc.bothIf(atr < atrAvg*1.3, s.weights["volatility"])

	action, confidence := sc.resolve()
	atrRatio := 0.0
	if atrAvg > 0 {
		atrRatio = atr / atrAvg
	}
	return &Vote{
		StrategyID: s.GetName(),
		Action:     action,
		Confidence: confidence,
		Diagnostics: map[string]any{
			"rsi":       rsi,
			"cci":       cci,
			"atr_ratio": atrRatio,
		},
	}, nil
}

// MeanReversion votes on the z-score of price against its 50-bar mean,
// scaled by how stretched the deviation is.
type MeanReversion struct {
	weights   WeightTable
	threshold float64
	zscore    *indicators.ZScore
	sma       *indicators.SMA
}

func NewMeanReversion() *MeanReversion {
	return &MeanReversion{
		weights: WeightTable{
			"stretched": 50,
			"extended":  35,
			"side":      30,
		},
		threshold: defaultScoreThreshold,
		zscore:    indicators.NewZScore(50),
		sma:       indicators.NewSMA(50),
	}
}

func (s *MeanReversion) GetName() string   { return "mean_reversion" }
func (s *MeanReversion) RequiredBars() int { return 100 }

func (s *MeanReversion) Evaluate(primary, confirmation []types.OHLCV) (*Vote, error) {
	if len(primary) < s.RequiredBars() {
		return NoVote(s.GetName(), "insufficient data"), nil
	}

	closes := types.Closes(primary)
	price := closes[len(closes)-1]

	z, zErr := s.zscore.Calculate(closes)
	mean, smaErr := s.sma.Calculate(closes)
	if zErr != nil || smaErr != nil {
		return NoVote(s.GetName(), "indicators unavailable"), nil
	}

	sc := newScorecard(s.threshold)

	// stretched and extended are exclusive tiers of the same deviation
	sc.buyIf(z < -1.5, s.weights["stretched"])
	sc.buyIf(z >= -1.5 && z < -1.0, s.weights["extended"])
	sc.buyIf(price < mean, s.weights["side"])

	sc.sellIf(z > 1.5, s.weights["stretched"])
	sc.sellIf(z <= 1.5 && z > 1.0, s.weights["extended"])
	sc.sellIf(price > mean, s.weights["side"])

	action, confidence := sc.resolve()
	side := "BELOW"
	if price > mean {
		side = "ABOVE"
	}
	return &Vote{
		StrategyID: s.GetName(),
		Action:     action,
		Confidence: confidence,
		Diagnostics: map[string]any{
			"z_score":       z,
			"price_vs_mean": side,
		},
	}, nil
}

// atrWithAverage returns the current ATR and its avgPeriod rolling mean.
func atrWithAverage(atr *indicators.ATR, data []types.OHLCV, avgPeriod int) (current, average float64, ok bool) {
	series := atr.Series(data)
	current, curOK := lastValue(series)
	if !curOK {
		return 0, 0, false
	}
	sum := 0.0
	n := 0
	lo := len(series) - avgPeriod
	if lo < 0 {
		lo = 0
	}
	for _, v := range series[lo:] {
		if indicators.Undefined(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, 0, false
	}
	return current, sum / float64(n), true
}
