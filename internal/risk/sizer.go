package risk

import (
	"math"

	"github.com/ducminhle1904/fx-scalper-bot/internal/instrument"
)

// Budget is the account risk envelope supplied per scan by the external
// account collaborator. Read-only to the engine.
type Budget struct {
	Balance      float64
	RiskFraction float64
	MaxVolume    float64
}

// globalVolumeCap bounds any single position regardless of balance.
const globalVolumeCap = 100.0

// Mode selects the sizing formula.
type Mode int

const (
	// ModeFixedFractional risks a fixed fraction of balance per trade,
	// bounded by the stop distance.
	ModeFixedFractional Mode = iota
	// ModeBalanceScaled scales volume with balance alone (balance/5000)
	// and ignores the stop distance. Monetary risk per trade is NOT
	// bounded in this mode; it trades simplicity for that guarantee.
	ModeBalanceScaled
)

const balanceScaleDivisor = 5000.0

// Sizer converts a stop distance and risk budget into a position volume
// within instrument bounds.
type Sizer struct {
	mode Mode
}

func NewSizer(mode Mode) *Sizer {
	return &Sizer{mode: mode}
}

// Volume computes the position size in lots. Missing or unusable
// instrument metadata degrades to the minimum tradeable volume so the
// decision is still emitted.
func (s *Sizer) Volume(budget Budget, profile instrument.Profile, slPips float64) float64 {
	if s.mode == ModeBalanceScaled {
		return s.clampAndRound(budget.Balance/balanceScaleDivisor, budget, profile)
	}

	pipValue := profile.PipValue()
	if pipValue <= 0 || slPips <= 0 || budget.Balance <= 0 || budget.RiskFraction <= 0 {
		return minVolume(profile)
	}

	riskAmount := budget.Balance * budget.RiskFraction
	volume := riskAmount / (slPips * pipValue)
	return s.clampAndRound(volume, budget, profile)
}

func (s *Sizer) clampAndRound(volume float64, budget Budget, profile instrument.Profile) float64 {
	step := profile.VolumeStep
	if step <= 0 {
		step = 0.01
	}
	volume = math.Round(volume/step) * step

	min := minVolume(profile)
	max := profile.VolumeMax
	if max <= 0 {
		max = globalVolumeCap
	}

	volume = math.Max(volume, min)
	volume = math.Min(volume, max)
	volume = math.Min(volume, globalVolumeCap)
	if budget.MaxVolume > 0 {
		volume = math.Min(volume, budget.MaxVolume)
	}
	return volume
}

func minVolume(profile instrument.Profile) float64 {
	if profile.VolumeMin > 0 {
		return profile.VolumeMin
	}
	return 0.01
}
