package portfolio

import (
	"context"
	"fmt"

	"github.com/wonny/yieldpilot/internal/contracts"
	"github.com/wonny/yieldpilot/internal/selection"
	"github.com/wonny/yieldpilot/internal/signals"
	"github.com/wonny/yieldpilot/pkg/logger"
)

// ReasonBlackListed is the exclusion reason for blacklisted tickers
const ReasonBlackListed = "blacklisted"

var _ contracts.PortfolioBuilder = (*Builder)(nil)

// Builder runs the full build pipeline S0 → S4
// ⭐ SSOT: 포트폴리오 구성 로직은 여기서만
type Builder struct {
	constraints Constraints
	scorer      *signals.Builder
	selector    *selection.Selector
	logger      *logger.Logger
}

// NewBuilder creates a new portfolio builder
func NewBuilder(constraints Constraints, blend selection.BlendWeights, log *logger.Logger) *Builder {
	return &Builder{
		constraints: constraints,
		scorer:      signals.NewBuilder(log),
		selector:    selection.NewSelector(blend, log),
		logger:      log.Component("portfolio"),
	}
}

// Build scores the universe, selects the top-K and allocates capital.
// Configuration mistakes return a *contracts.ConfigError. An empty candidate
// set returns StatusNoValidCandidates with no entries and no error.
// The caller's universe is not modified.
func (b *Builder) Build(ctx context.Context, universe *contracts.Universe, cache contracts.GrowthCache, cfg contracts.WeightingConfig) (*contracts.PortfolioResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 1. Universe copy + blacklist
	working := b.workingCopy(universe)
	for _, inst := range universe.Instruments {
		if b.constraints.IsBlackListed(inst.Ticker) {
			working.Exclude(inst.Ticker, ReasonBlackListed)
			continue
		}
		working.Instruments = append(working.Instruments, inst)
	}

	// 2. Raw scores (S0 + S1)
	scored, err := b.scorer.Build(ctx, working, cache, cfg)
	if err != nil {
		return nil, fmt.Errorf("score universe: %w", err)
	}

	result := &contracts.PortfolioResult{
		Status:   contracts.StatusOK,
		Config:   cfg,
		Entries:  []contracts.PortfolioEntry{},
		Excluded: working.Excluded,
		Cash:     cfg.Capital,
	}

	// 3. Normalize + select (S2)
	selected, err := b.selector.Select(ctx, scored, cfg)
	if err != nil {
		return nil, fmt.Errorf("select candidates: %w", err)
	}
	result.Scored = scored

	if len(selected) == 0 {
		result.Status = contracts.StatusNoValidCandidates
		b.logger.WithFields(map[string]interface{}{
			"source":   cfg.ScoreSource,
			"scored":   len(scored),
			"excluded": len(working.Excluded),
		}).Warn("No stocks selected for portfolio")
		return result, nil
	}

	// 4. Weights (S3)
	raw, err := RawWeights(cfg.Weighting, selected)
	if err != nil {
		return nil, err
	}
	weights, converged := capAndNormalize(raw, cfg.MaxWeight)
	if !converged {
		b.logger.WithFields(map[string]interface{}{
			"stage":      contracts.StageWeights.ShortName(),
			"max_weight": *cfg.MaxWeight,
			"positions":  len(weights),
			"rounds":     MaxCapRounds,
		}).Debug("Weight cap not satisfied within round limit")
	}

	// 5. Dollars and shares (S4)
	assembly := Assemble(selected, weights, cfg.Capital, cfg.RoundShares)
	result.Entries = assembly.Entries
	result.Invested = assembly.Invested
	result.Cash = assembly.Cash

	b.logger.WithFields(map[string]interface{}{
		"stage":        contracts.StageAssembly.ShortName(),
		"positions":    len(result.Entries),
		"total_weight": result.TotalWeight(),
		"weighting":    cfg.Weighting,
		"invested":     result.Invested,
		"cash":         result.Cash,
	}).Info("Portfolio constructed")

	return result, nil
}

// Rank scores the universe and returns the full ranking by the configured
// score source, for feeding the advisor a frozen snapshot.
func (b *Builder) Rank(ctx context.Context, universe *contracts.Universe, cache contracts.GrowthCache, cfg contracts.WeightingConfig) ([]contracts.RankedTicker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	working := b.workingCopy(universe)
	for _, inst := range universe.Instruments {
		if !b.constraints.IsBlackListed(inst.Ticker) {
			working.Instruments = append(working.Instruments, inst)
		}
	}

	scored, err := b.scorer.Build(ctx, working, cache, cfg)
	if err != nil {
		return nil, fmt.Errorf("score universe: %w", err)
	}
	return b.selector.Rank(scored, cfg.ScoreSource), nil
}

// workingCopy returns an empty universe carrying the caller's prior
// exclusions, so scoring never writes into the caller's maps.
func (b *Builder) workingCopy(universe *contracts.Universe) *contracts.Universe {
	working := contracts.NewUniverse(nil)
	for ticker, reason := range universe.Excluded {
		working.Exclude(ticker, reason)
	}
	return working
}
