package regime

import (
	"math"

	"github.com/ducminhle1904/fx-scalper-bot/internal/indicators"
	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

const minBars = 50

// Classifier labels a bar window as trending, ranging, or volatile using
// ADX and Bollinger-band-width heuristics. Classification is a fixed
// decision tree: identical windows always yield identical labels.
type Classifier struct {
	model Model
}

// NewClassifier creates a classifier with the default threshold model.
func NewClassifier() *Classifier {
	return &Classifier{model: DefaultModel()}
}

// NewClassifierWithModel creates a classifier backed by a tuned threshold
// model, typically loaded from disk via LoadModel.
func NewClassifierWithModel(model Model) *Classifier {
	return &Classifier{model: model}
}

// Classify returns the regime for a bar window. Windows shorter than 50
// bars default to ranging: too little history to call anything else.
func (c *Classifier) Classify(data []types.OHLCV) Regime {
	if len(data) < minBars {
		return RegimeRanging
	}

	closes := types.Closes(data)

	adx, err := indicators.NewADX(c.model.ADXPeriod).Calculate(data)
	if err == nil && adx > c.model.ADXTrendThreshold {
		return RegimeTrending
	}

	bb := indicators.NewBollingerBands(c.model.BBPeriod, 2.0)
	width := bb.WidthSeries(closes)
	avgWidth := lastDefined(rollingMeanDefined(width, c.model.BBWidthAvgPeriod))
	currentWidth := width[len(width)-1]

	if !indicators.Undefined(currentWidth) && !indicators.Undefined(avgWidth) &&
		currentWidth > avgWidth*c.model.VolatileWidthRatio {
		return RegimeVolatile
	}

	return RegimeRanging
}

// rollingMeanDefined averages only the defined points of each trailing
// window, so a handful of undefined width points near the window head does
// not poison the whole average.
func rollingMeanDefined(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		lo := i - period + 1
		if lo < 0 {
			lo = 0
		}
		sum := 0.0
		n := 0
		for j := lo; j <= i; j++ {
			if indicators.Undefined(values[j]) {
				continue
			}
			sum += values[j]
			n++
		}
		if n == 0 {
			out[i] = math.NaN()
		} else {
			out[i] = sum / float64(n)
		}
	}
	return out
}

func lastDefined(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return values[len(values)-1]
}
