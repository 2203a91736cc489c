package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/ducminhle1904/fx-scalper-bot/internal/consensus"
	"github.com/ducminhle1904/fx-scalper-bot/internal/instrument"
	"github.com/ducminhle1904/fx-scalper-bot/internal/regime"
	"github.com/ducminhle1904/fx-scalper-bot/internal/risk"
	"github.com/ducminhle1904/fx-scalper-bot/internal/strategy"
	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

// MarketDataSource supplies bar windows. Implementations: exchange kline
// client, CSV replay provider.
type MarketDataSource interface {
	GetKlines(ctx context.Context, symbol, timeframe string, limit int) ([]types.OHLCV, error)
}

// MetadataSource supplies instrument profiles (pip size, volume bounds,
// tick value).
type MetadataSource interface {
	Profile(ctx context.Context, symbol string) (instrument.Profile, error)
}

// AccountSource supplies the per-scan risk budget.
type AccountSource interface {
	Budget(ctx context.Context) (risk.Budget, error)
}

// Config holds the engine's tunables.
type Config struct {
	PrimaryTimeframe      string
	ConfirmationTimeframe string
	WindowSize            int
	Quorum                int
	MinConfidence         float64
	SizingMode            risk.Mode
	UseAdaptive           bool
	UseCrossover          bool
}

// Engine runs the per-instrument analysis pipeline: regime, evaluators,
// consensus, confidence gate, sizing. It holds no position state and emits
// Decision values only.
type Engine struct {
	data       MarketDataSource
	meta       MetadataSource
	account    AccountSource
	classifier *regime.Classifier
	aggregator *consensus.Aggregator
	sizer      *risk.Sizer
	cfg        Config
}

func New(data MarketDataSource, meta MetadataSource, account AccountSource, classifier *regime.Classifier, cfg Config) *Engine {
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = 200
	}
	if cfg.Quorum <= 0 {
		cfg.Quorum = 2
	}
	return &Engine{
		data:       data,
		meta:       meta,
		account:    account,
		classifier: classifier,
		aggregator: consensus.NewAggregator(cfg.Quorum),
		sizer:      risk.NewSizer(cfg.SizingMode),
		cfg:        cfg,
	}
}

// Scan analyzes each instrument in order. Cancellation is honored at
// instrument boundaries: a started instrument finishes, the rest are
// dropped. Per-instrument failures degrade to none decisions; only context
// cancellation aborts the scan.
func (e *Engine) Scan(ctx context.Context, symbols []string) ([]Decision, error) {
	decisions := make([]Decision, 0, len(symbols))
	for _, symbol := range symbols {
		select {
		case <-ctx.Done():
			return decisions, ctx.Err()
		default:
		}

		decision, err := e.ScanInstrument(ctx, symbol)
		if err != nil {
			// malformed windows have no recovery policy, surface them
			return decisions, err
		}
		decisions = append(decisions, decision)
	}
	return decisions, nil
}

// ScanInstrument runs the full pipeline for one symbol. Data-shape problems
// degrade to a none decision; a malformed window (non-monotonic timestamps)
// is the one hard error, since no recovery policy exists for it.
func (e *Engine) ScanInstrument(ctx context.Context, symbol string) (Decision, error) {
	primary, err := e.data.GetKlines(ctx, symbol, e.cfg.PrimaryTimeframe, e.cfg.WindowSize)
	if err != nil {
		return noDecision(symbol, regime.RegimeRanging, fmt.Sprintf("market data unavailable: %v", err)), nil
	}
	if err := types.ValidateWindow(primary); err != nil {
		return Decision{}, fmt.Errorf("malformed bar window for %s: %w", symbol, err)
	}
	if len(primary) < 50 {
		return noDecision(symbol, regime.RegimeRanging, "insufficient data"), nil
	}

	rgm := e.classifier.Classify(primary)
	if rgm == regime.RegimeVolatile {
		return noDecision(symbol, rgm, "too volatile"), nil
	}

	if !strategy.WithinVolatilityBand(primary) {
		return noDecision(symbol, rgm, "volatility outside tradable band"), nil
	}

	confirmation, err := e.data.GetKlines(ctx, symbol, e.cfg.ConfirmationTimeframe, e.cfg.WindowSize)
	if err != nil {
		// adaptive evaluation degrades without it, flavor votes still run
		confirmation = nil
	} else if err := types.ValidateWindow(confirmation); err != nil {
		return Decision{}, fmt.Errorf("malformed confirmation window for %s: %w", symbol, err)
	}

	profile := e.profileFor(ctx, symbol)

	evaluators := strategy.ForSymbol(symbol)
	if e.cfg.UseAdaptive {
		evaluators = append(evaluators, strategy.NewAdaptive(profile.PipSize, e.classifier))
	}
	if e.cfg.UseCrossover {
		evaluators = append(evaluators, strategy.NewEMACrossover(profile.PipSize))
	}

	votes := make([]*strategy.Vote, 0, len(evaluators))
	for _, ev := range evaluators {
		vote, err := ev.Evaluate(primary, confirmation)
		if err != nil {
			continue
		}
		votes = append(votes, vote)
	}

	result := e.aggregator.Aggregate(votes)
	if result.Action == strategy.ActionNone {
		reason := fmt.Sprintf("no consensus (buy %d, sell %d, quorum %d)",
			result.BuyVotes, result.SellVotes, e.cfg.Quorum)
		d := noDecision(symbol, rgm, reason)
		d.Votes = votes
		return d, nil
	}

	if result.Confidence < e.cfg.MinConfidence {
		reason := fmt.Sprintf("confidence %.1f below threshold %.1f", result.Confidence, e.cfg.MinConfidence)
		d := noDecision(symbol, rgm, reason)
		d.Votes = votes
		return d, nil
	}

	tpPips, slPips := e.pipTargets(symbol, result.Agreeing)
	volume := e.volume(ctx, profile, slPips)

	return Decision{
		Instrument: symbol,
		Action:     result.Action,
		Confidence: result.Confidence,
		TPPips:     tpPips,
		SLPips:     slPips,
		RiskReward: tpPips / slPips,
		Volume:     volume,
		Regime:     rgm,
		Reason:     fmt.Sprintf("consensus %s (buy %d, sell %d)", result.Action, result.BuyVotes, result.SellVotes),
		Votes:      votes,
		Timestamp:  time.Now().UTC(),
	}, nil
}

// pipTargets prefers dynamic ATR targets carried by an agreeing vote,
// falling back to the instrument class table. Both paths clamp to the
// class bounds.
func (e *Engine) pipTargets(symbol string, agreeing []*strategy.Vote) (tpPips, slPips float64) {
	targets := instrument.TargetsFor(symbol)
	tpPips = targets.TPPips
	slPips = targets.SLPips

	for _, v := range agreeing {
		tp, tpOK := diagFloat(v, strategy.DiagTPPips)
		sl, slOK := diagFloat(v, strategy.DiagSLPips)
		if tpOK && slOK && tp > 0 && sl > 0 {
			tpPips = tp
			slPips = sl
			break
		}
	}

	return targets.ClampTP(tpPips), targets.ClampSL(slPips)
}

func (e *Engine) profileFor(ctx context.Context, symbol string) instrument.Profile {
	if e.meta == nil {
		return instrument.DefaultProfile(symbol)
	}
	profile, err := e.meta.Profile(ctx, symbol)
	if err != nil {
		return instrument.DefaultProfile(symbol)
	}
	return profile
}

// volume sizes the position. A missing budget degrades to minimum volume,
// never to a withheld decision.
func (e *Engine) volume(ctx context.Context, profile instrument.Profile, slPips float64) float64 {
	if e.account == nil {
		return e.sizer.Volume(risk.Budget{}, profile, slPips)
	}
	budget, err := e.account.Budget(ctx)
	if err != nil {
		return e.sizer.Volume(risk.Budget{}, profile, slPips)
	}
	return e.sizer.Volume(budget, profile, slPips)
}

func diagFloat(v *strategy.Vote, key string) (float64, bool) {
	if v == nil || v.Diagnostics == nil {
		return 0, false
	}
	f, ok := v.Diagnostics[key].(float64)
	return f, ok
}
