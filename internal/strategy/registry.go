package strategy

import (
	"fmt"

	"github.com/ducminhle1904/fx-scalper-bot/internal/instrument"
)

// constructors maps registry names to evaluator factories.
var constructors = map[string]func() Evaluator{
	"ema_rsi_adx":          func() Evaluator { return NewEMARSIADX() },
	"macd_stochastic":      func() Evaluator { return NewMACDStochastic() },
	"price_action_volume":  func() Evaluator { return NewPriceActionVolume() },
	"bollinger_stochastic": func() Evaluator { return NewBollingerStochastic() },
	"rsi_cci_atr":          func() Evaluator { return NewRSICCIATR() },
	"mean_reversion":       func() Evaluator { return NewMeanReversion() },
	"ema_macd_atr":         func() Evaluator { return NewEMAMACDATR() },
	"trend_momentum":       func() Evaluator { return NewTrendMomentum() },
	"breakout_system":      func() Evaluator { return NewBreakoutSystem() },
	"price_action_rsi":     func() Evaluator { return NewPriceActionRSI() },
	"momentum_volatility":  func() Evaluator { return NewMomentumVolatility() },
	"support_resistance":   func() Evaluator { return NewSupportResistance() },
}

// classFlavors assigns each instrument class its researched evaluator trio.
var classFlavors = map[instrument.Class][]string{
	instrument.ClassMajor:  {"ema_rsi_adx", "macd_stochastic", "price_action_volume"},
	instrument.ClassCross:  {"bollinger_stochastic", "rsi_cci_atr", "mean_reversion"},
	instrument.ClassMetal:  {"ema_macd_atr", "trend_momentum", "breakout_system"},
	instrument.ClassEnergy: {"price_action_rsi", "momentum_volatility", "support_resistance"},
}

// defaultFlavors is the fallback set for symbols with no class mapping.
var defaultFlavors = []string{"ema_rsi_adx", "macd_stochastic"}

// Names returns every registered evaluator name.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	return names
}

// New builds an evaluator by registry name.
func New(name string) (Evaluator, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
	return ctor(), nil
}

// ForNames builds evaluators for an explicit flavor list.
func ForNames(names []string) ([]Evaluator, error) {
	evaluators := make([]Evaluator, 0, len(names))
	for _, name := range names {
		ev, err := New(name)
		if err != nil {
			return nil, err
		}
		evaluators = append(evaluators, ev)
	}
	return evaluators, nil
}

// ForClass builds the evaluator set tuned for an instrument class.
func ForClass(class instrument.Class) []Evaluator {
	names, ok := classFlavors[class]
	if !ok {
		names = defaultFlavors
	}
	evaluators := make([]Evaluator, 0, len(names))
	for _, name := range names {
		evaluators = append(evaluators, constructors[name]())
	}
	return evaluators
}

// ForSymbol builds the evaluator set for a symbol, using its class mapping
// with the conservative default pair for anything unrecognized.
func ForSymbol(symbol string) []Evaluator {
	return ForClass(instrument.ClassOf(symbol))
}
