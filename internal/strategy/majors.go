package strategy

import (
	"github.com/ducminhle1904/fx-scalper-bot/internal/indicators"
	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

// Major-pair evaluators: liquid instruments with clean trends reward
// trend-following and momentum confirmation.

// EMARSIADX votes on EMA20/50 trend direction with RSI pullback zones and
// ADX strength confirmation.
type EMARSIADX struct {
	weights   WeightTable
	threshold float64
	ema20     *indicators.EMA
	ema50     *indicators.EMA
	rsi       *indicators.RSI
	adx       *indicators.ADX
}

func NewEMARSIADX() *EMARSIADX {
	return &EMARSIADX{
		weights: WeightTable{
			"trend":    35,
			"rsi_zone": 30,
			"adx":      25,
			"pullback": 10,
		},
		threshold: defaultScoreThreshold,
		ema20:     indicators.NewEMA(20),
		ema50:     indicators.NewEMA(50),
		rsi:       indicators.NewRSI(14),
		adx:       indicators.NewADX(14),
	}
}

func (s *EMARSIADX) GetName() string   { return "ema_rsi_adx" }
func (s *EMARSIADX) RequiredBars() int { return 100 }

func (s *EMARSIADX) Evaluate(primary, confirmation []types.OHLCV) (*Vote, error) {
	if len(primary) < s.RequiredBars() {
		return NoVote(s.GetName(), "insufficient data"), nil
	}

	closes := types.Closes(primary)
	price := closes[len(closes)-1]

	ema20, ok20 := lastValue(s.ema20.Series(closes))
	ema50, ok50 := lastValue(s.ema50.Series(closes))
	rsi, rsiErr := s.rsi.Calculate(closes)
	adx, adxErr := s.adx.Calculate(primary)
	if !ok20 || !ok50 || rsiErr != nil || adxErr != nil {
		return NoVote(s.GetName(), "indicators unavailable"), nil
	}

	sc := newScorecard(s.threshold)

	uptrend := ema20 > ema50
	sc.buyIf(uptrend, s.weights["trend"])
	if uptrend {
		sc.buyIf(rsi > 30 && rsi < 50, s.weights["rsi_zone"])
		sc.buyIf(adx > 20, s.weights["adx"])
		sc.buyIf(price < ema20, s.weights["pullback"])
	}

	downtrend := ema20 < ema50
	sc.sellIf(downtrend, s.weights["trend"])
	if downtrend {
		sc.sellIf(rsi > 50 && rsi < 70, s.weights["rsi_zone"])
		sc.sellIf(adx > 20, s.weights["adx"])
		sc.sellIf(price > ema20, s.weights["pullback"])
	}

	action, confidence := sc.resolve()
	trend := "DOWN"
	if uptrend {
		trend = "UP"
	}
	return &Vote{
		StrategyID: s.GetName(),
		Action:     action,
		Confidence: confidence,
		Diagnostics: map[string]any{
			"rsi":       rsi,
			"adx":       adx,
			"ema_trend": trend,
		},
	}, nil
}

// MACDStochastic votes when MACD direction agrees with a stochastic
// oscillator turning out of an extreme.
type MACDStochastic struct {
	weights   WeightTable
	threshold float64
	macd      *indicators.MACD
	stoch     *indicators.Stochastic
}

func NewMACDStochastic() *MACDStochastic {
	return &MACDStochastic{
		weights: WeightTable{
			"macd":    40,
			"turning": 40,
			"extreme": 20,
		},
		threshold: defaultScoreThreshold,
		macd:      indicators.NewMACD(12, 26, 9),
		stoch:     indicators.NewStochastic(14, 3),
	}
}

func (s *MACDStochastic) GetName() string   { return "macd_stochastic" }
func (s *MACDStochastic) RequiredBars() int { return 100 }

func (s *MACDStochastic) Evaluate(primary, confirmation []types.OHLCV) (*Vote, error) {
	if len(primary) < s.RequiredBars() {
		return NoVote(s.GetName(), "insufficient data"), nil
	}

	closes := types.Closes(primary)
	macd, signal, macdErr := s.macd.Calculate(closes)
	k, d, stochErr := s.stoch.Calculate(primary)
	if macdErr != nil || stochErr != nil {
		return NoVote(s.GetName(), "indicators unavailable"), nil
	}

	sc := newScorecard(s.threshold)

	sc.buyIf(macd > signal, s.weights["macd"])
	sc.buyIf(k < 30 && k > d, s.weights["turning"])
	sc.buyIf(k < 20, s.weights["extreme"])

	sc.sellIf(macd < signal, s.weights["macd"])
	sc.sellIf(k > 70 && k < d, s.weights["turning"])
	sc.sellIf(k > 80, s.weights["extreme"])

	action, confidence := sc.resolve()
	return &Vote{
		StrategyID: s.GetName(),
		Action:     action,
		Confidence: confidence,
		Diagnostics: map[string]any{
			"macd":   macd,
			"signal": signal,
			"stoch":  k,
		},
	}, nil
}

// PriceActionVolume votes on raw candle direction near 20-bar extremes with
// volume expansion and a decisive candle body.
type PriceActionVolume struct {
	weights   WeightTable
	threshold float64
}

func NewPriceActionVolume() *PriceActionVolume {
	return &PriceActionVolume{
		weights: WeightTable{
			"direction": 25,
			"extreme":   25,
			"volume":    25,
			"body":      25,
		},
		threshold: defaultScoreThreshold,
	}
}

func (s *PriceActionVolume) GetName() string   { return "price_action_volume" }
func (s *PriceActionVolume) RequiredBars() int { return 50 }

func (s *PriceActionVolume) Evaluate(primary, confirmation []types.OHLCV) (*Vote, error) {
	if len(primary) < s.RequiredBars() {
		return NoVote(s.GetName(), "insufficient data"), nil
	}

	latest := primary[len(primary)-1]
	prevClose := primary[len(primary)-2].Close
	high20 := recentHigh(primary, 20)
	low20 := recentLow(primary, 20)
	avgVol := averageVolume(primary, 20)
	body := bodyRatio(latest)

	sc := newScorecard(s.threshold)

	sc.buyIf(latest.Close > prevClose, s.weights["direction"])
	sc.buyIf(latest.Close > high20*0.995, s.weights["extreme"])
	sc.sellIf(latest.Close < prevClose, s.weights["direction"])
	sc.sellIf(latest.Close < low20*1.005, s.weights["extreme"])

	sc.bothIf(avgVol > 0 && latest.Volume > avgVol*1.2, s.weights["volume"])
	sc.bothIf(body > 0.6, s.weights["body"])

	action, confidence := sc.resolve()
	volumeRatio := 0.0
	if avgVol > 0 {
		volumeRatio = latest.Volume / avgVol
	}
	return &Vote{
		StrategyID: s.GetName(),
		Action:     action,
		Confidence: confidence,
		Diagnostics: map[string]any{
			"volume_ratio": volumeRatio,
			"body_ratio":   body,
		},
	}, nil
}
