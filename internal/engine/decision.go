package engine

import (
	"time"

	"github.com/ducminhle1904/fx-scalper-bot/internal/regime"
	"github.com/ducminhle1904/fx-scalper-bot/internal/strategy"
)

// Decision is the engine's sole output artifact per instrument per scan.
type Decision struct {
	Instrument string           `json:"instrument"`
	Action     strategy.Action  `json:"action"`
	Confidence float64          `json:"confidence"`
	TPPips     float64          `json:"tp_pips"`
	SLPips     float64          `json:"sl_pips"`
	RiskReward float64          `json:"risk_reward"`
	Volume     float64          `json:"volume"`
	Regime     regime.Regime    `json:"regime"`
	Reason     string           `json:"reason"`
	Votes      []*strategy.Vote `json:"-"`
	Timestamp  time.Time        `json:"timestamp"`
}

// Actionable reports whether the decision carries a tradeable direction.
func (d Decision) Actionable() bool {
	return d.Action != strategy.ActionNone
}

func noDecision(symbol string, rgm regime.Regime, reason string) Decision {
	return Decision{
		Instrument: symbol,
		Action:     strategy.ActionNone,
		Regime:     rgm,
		Reason:     reason,
		Timestamp:  time.Now().UTC(),
	}
}
