package signals

import (
	"context"

	"github.com/wonny/yieldpilot/internal/contracts"
	"github.com/wonny/yieldpilot/pkg/logger"
)

// Builder runs window extraction and raw scoring over a universe (S0 + S1)
// ⭐ SSOT: 원시 점수 계산은 여기서만
type Builder struct {
	logger *logger.Logger
}

// NewBuilder creates a new score builder
func NewBuilder(log *logger.Logger) *Builder {
	return &Builder{logger: log.Component("signals")}
}

// Build returns one ScoreRecord per usable instrument, in universe order.
// Data gaps never fail the call: the instrument is recorded in
// universe.Excluded and skipped. Normalized fields are left for the selector.
func (b *Builder) Build(ctx context.Context, universe *contracts.Universe, cache contracts.GrowthCache, cfg contracts.WeightingConfig) ([]contracts.ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]contracts.ScoreRecord, 0, universe.Count())
	seen := make(map[string]bool, universe.Count())
	fromCache, fromMeta := 0, 0

	for i := range universe.Instruments {
		inst := &universe.Instruments[i]

		if seen[inst.Ticker] {
			universe.Exclude(inst.Ticker, ReasonDuplicateTicker)
			continue
		}
		seen[inst.Ticker] = true

		if reason := CheckEligibility(inst, cfg.MinTradingDays); reason != "" {
			universe.Exclude(inst.Ticker, reason)
			continue
		}

		window, source := ExtractWindow(inst, cache)
		switch source {
		case SourceGrowthCache:
			fromCache++
		case SourceMetadata:
			fromMeta++
		}
		if !window.Complete() {
			universe.Exclude(inst.Ticker, ReasonIncompleteWindow)
			continue
		}

		rec := contracts.ScoreRecord{
			Ticker:     inst.Ticker,
			Name:       inst.Name,
			Strategy:   inst.Strategy,
			Price:      *inst.Price,
			Window:     window,
			Volatility: inst.Volatility,
		}
		if inst.Return1Y != nil && isFinite(*inst.Return1Y) {
			rec.Ret1Y = contracts.Float(*inst.Return1Y)
		}

		if raw, detail, badge, ok := TrendFromWindow(window, cfg.TrendEpsilon); ok {
			rec.TrendRaw = contracts.Float(raw)
			rec.Ladder = &detail
			rec.Badge = &badge
		}
		if raw, rungs, ok := PastPerfFromWindow(window, cfg.PastPerfMode); ok {
			rec.PastPerfRaw = contracts.Float(raw)
			rec.Rungs = &rungs
		}

		records = append(records, rec)
	}

	b.logger.WithFields(map[string]interface{}{
		"stage":         contracts.StageScoring.ShortName(),
		"universe":      universe.Count(),
		"scored":        len(records),
		"excluded":      len(universe.Excluded),
		"from_cache":    fromCache,
		"from_metadata": fromMeta,
	}).Info("Scoring completed")

	return records, nil
}
