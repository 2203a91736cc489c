package regime

import (
	"encoding/json"
	"fmt"
	"os"
)

// Model holds the tuned thresholds driving classification. Values are
// typically fitted offline and shipped as a JSON file next to the configs.
type Model struct {
	ADXPeriod          int     `json:"adx_period"`
	ADXTrendThreshold  float64 `json:"adx_trend_threshold"`
	BBPeriod           int     `json:"bb_period"`
	BBWidthAvgPeriod   int     `json:"bb_width_avg_period"`
	VolatileWidthRatio float64 `json:"volatile_width_ratio"`
}

// DefaultModel returns the stock thresholds used when no tuned model file
// is available.
func DefaultModel() Model {
	return Model{
		ADXPeriod:          14,
		ADXTrendThreshold:  25.0,
		BBPeriod:           20,
		BBWidthAvgPeriod:   50,
		VolatileWidthRatio: 1.5,
	}
}

// Validate checks that the model thresholds are usable.
func (m Model) Validate() error {
	if m.ADXPeriod <= 0 {
		return fmt.Errorf("adx_period must be positive, got %d", m.ADXPeriod)
	}
	if m.BBPeriod <= 0 {
		return fmt.Errorf("bb_period must be positive, got %d", m.BBPeriod)
	}
	if m.BBWidthAvgPeriod <= 0 {
		return fmt.Errorf("bb_width_avg_period must be positive, got %d", m.BBWidthAvgPeriod)
	}
	if m.ADXTrendThreshold <= 0 {
		return fmt.Errorf("adx_trend_threshold must be positive, got %.2f", m.ADXTrendThreshold)
	}
	if m.VolatileWidthRatio <= 1.0 {
		return fmt.Errorf("volatile_width_ratio must exceed 1.0, got %.2f", m.VolatileWidthRatio)
	}
	return nil
}

// LoadModel reads a tuned threshold model from a JSON file. On any failure
// (missing file, bad JSON, invalid values) it returns the default model and
// the error, so callers can log the fallback and keep scanning.
func LoadModel(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultModel(), fmt.Errorf("failed to read regime model %s: %w", path, err)
	}

	model := DefaultModel()
	if err := json.Unmarshal(data, &model); err != nil {
		return DefaultModel(), fmt.Errorf("failed to parse regime model %s: %w", path, err)
	}

	if err := model.Validate(); err != nil {
		return DefaultModel(), fmt.Errorf("invalid regime model %s: %w", path, err)
	}

	return model, nil
}
