package consensus

import (
	"github.com/ducminhle1904/fx-scalper-bot/internal/strategy"
)

// Result is the combined verdict over a set of independent votes.
type Result struct {
	Action     strategy.Action
	Confidence float64
	BuyVotes   int
	SellVotes  int
	Agreeing   []*strategy.Vote
}

// Aggregator combines evaluator votes under a quorum rule.
type Aggregator struct {
	quorum int
}

// NewAggregator creates an aggregator requiring at least quorum agreeing
// votes. Quorums below one are raised to one.
func NewAggregator(quorum int) *Aggregator {
	if quorum < 1 {
		quorum = 1
	}
	return &Aggregator{quorum: quorum}
}

// Aggregate resolves a vote set. The winning direction must meet the quorum
// AND strictly outnumber the opposing side; the result confidence is the
// mean of the agreeing votes. Ties and sub-quorum counts resolve to none
// with confidence zero.
func (a *Aggregator) Aggregate(votes []*strategy.Vote) Result {
	var buys, sells []*strategy.Vote
	for _, v := range votes {
		if v == nil {
			continue
		}
		switch v.Action {
		case strategy.ActionBuy:
			buys = append(buys, v)
		case strategy.ActionSell:
			sells = append(sells, v)
		}
	}

	result := Result{
		Action:    strategy.ActionNone,
		BuyVotes:  len(buys),
		SellVotes: len(sells),
	}

	switch {
	case len(buys) >= a.quorum && len(buys) > len(sells):
		result.Action = strategy.ActionBuy
		result.Agreeing = buys
	case len(sells) >= a.quorum && len(sells) > len(buys):
		result.Action = strategy.ActionSell
		result.Agreeing = sells
	default:
		return result
	}

	result.Confidence = meanConfidence(result.Agreeing)
	return result
}

func meanConfidence(votes []*strategy.Vote) float64 {
	if len(votes) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range votes {
		sum += v.Confidence
	}
	return sum / float64(len(votes))
}
