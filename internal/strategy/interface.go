package strategy

import (
	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

// Evaluator analyzes a primary bar window (plus a higher-timeframe
// confirmation window) and casts an independent vote. Evaluators never see
// each other's output; combining votes is the consensus aggregator's job.
type Evaluator interface {
	// Evaluate returns a vote for the given windows. Short windows produce
	// a none vote, not an error; errors are reserved for genuine faults.
	Evaluate(primary, confirmation []types.OHLCV) (*Vote, error)

	// GetName returns the evaluator's registry name.
	GetName() string

	// RequiredBars returns the minimum primary-window length needed to
	// produce a meaningful vote.
	RequiredBars() int
}

// Vote is one evaluator's independent opinion on an instrument.
type Vote struct {
	StrategyID  string
	Action      Action
	Confidence  float64
	Diagnostics map[string]any
}

// NoVote returns a none vote for the given strategy with a reason tag.
func NoVote(strategyID, reason string) *Vote {
	return &Vote{
		StrategyID:  strategyID,
		Action:      ActionNone,
		Confidence:  0,
		Diagnostics: map[string]any{"reason": reason},
	}
}

// Action represents the direction of a vote or decision.
type Action int

const (
	ActionNone Action = iota
	ActionBuy
	ActionSell
)

func (a Action) String() string {
	switch a {
	case ActionBuy:
		return "BUY"
	case ActionSell:
		return "SELL"
	case ActionNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}
