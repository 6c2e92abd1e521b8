package advisor

import (
	"context"
	"math"

	"github.com/shopspring/decimal"

	"github.com/wonny/yieldpilot/internal/contracts"
	"github.com/wonny/yieldpilot/pkg/logger"
)

var _ contracts.PortfolioAdvisor = (*Advisor)(nil)

// Config holds the advisor knobs that are not part of the decision table
type Config struct {
	NewCandidateAllocation float64 `json:"new_candidate_allocation" yaml:"new_candidate_allocation"` // 기본: 0.05
	TargetPositionCount    int     `json:"target_position_count" yaml:"target_position_count"`       // 기본: 10
	MaxNewCandidates       int     `json:"max_new_candidates" yaml:"max_new_candidates"`             // 기본: 3
}

// DefaultConfig returns default advisor configuration
func DefaultConfig() Config {
	return Config{
		NewCandidateAllocation: 0.05,
		TargetPositionCount:    10,
		MaxNewCandidates:       3,
	}
}

// Advisor produces rebalancing advice for existing holdings (A0)
// ⭐ SSOT: 보유 종목 리밸런싱 조언은 여기서만
type Advisor struct {
	cfg    Config
	logger *logger.Logger
}

// New creates a new advisor
func New(cfg Config, log *logger.Logger) *Advisor {
	return &Advisor{
		cfg:    cfg,
		logger: log.Component("advisor"),
	}
}

// Advise evaluates every position against the decision table, suggests new
// candidates from the frozen ranking and analyzes the whole portfolio.
// universe may be nil. ranking is read only; the same snapshot serves every
// recommendation of the call.
func (a *Advisor) Advise(ctx context.Context, positions []contracts.Position, prices map[string]float64, ranking contracts.RankingSnapshot, universe *contracts.Universe) (*contracts.AIPortfolioAdvice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pr := priceResolver{prices: prices, universe: universe}

	totalValue := 0.0
	for _, p := range positions {
		totalValue += p.CurrentValue
	}

	held := make(map[string]bool, len(positions))
	holdings := make([]holding, 0, len(positions))
	targets := make([]contracts.TargetRecommendation, 0, len(positions))

	for _, p := range positions {
		h := a.enrich(p, pr, totalValue, ranking)
		held[p.Ticker] = true
		holdings = append(holdings, h)

		d := Decide(h.Signal, h.Rank, h.allocation)
		targetValue := roundCents(d.TargetAllocation * totalValue)

		rec := contracts.TargetRecommendation{
			Ticker:            p.Ticker,
			CurrentValue:      p.CurrentValue,
			CurrentAllocation: h.allocation,
			TargetValue:       targetValue,
			TargetAllocation:  d.TargetAllocation,
			Action:            d.Action,
			Reason:            d.Reason,
			Confidence:        d.Confidence,
		}
		if price, ok := pr.positionPrice(p); ok {
			rec.TargetShares = floorShares(targetValue, price)
		}
		targets = append(targets, rec)
	}

	count := NewCandidateCount(len(positions), a.cfg.TargetPositionCount, a.cfg.MaxNewCandidates)
	candidates := a.selectNewCandidates(held, ranking, pr, totalValue, count)

	advice := &contracts.AIPortfolioAdvice{
		TargetRecommendations: targets,
		NewETFRecommendations: candidates,
		PortfolioAnalysis:     Analyze(holdings, totalValue),
	}

	a.logger.WithFields(map[string]interface{}{
		"stage":          contracts.StageAdvice.ShortName(),
		"positions":      len(positions),
		"total_value":    advice.PortfolioAnalysis.TotalValue,
		"increase":       advice.Count(contracts.ActionIncrease),
		"decrease":       advice.Count(contracts.ActionDecrease),
		"sell":           advice.Count(contracts.ActionSell),
		"new_candidates": len(candidates),
		"ranked":         ranking.Len(),
	}).Info("Portfolio advice generated")

	return advice, nil
}

// enrich resolves rank, allocation and missing metadata of a position.
// The position's own rank wins over the snapshot.
func (a *Advisor) enrich(p contracts.Position, pr priceResolver, totalValue float64, ranking contracts.RankingSnapshot) holding {
	h := holding{Position: p}
	if totalValue > 0 {
		h.allocation = p.CurrentValue / totalValue
	}
	if h.Rank == nil {
		if rank, ok := ranking.Rank(p.Ticker); ok {
			h.Rank = &rank
		}
	}
	if inst, ok := pr.instrument(p.Ticker); ok {
		if h.Strategy == "" {
			h.Strategy = inst.Strategy
		}
		if h.Yield == nil {
			h.Yield = inst.Yield
		}
		if h.RiskScore == nil {
			h.RiskScore = inst.RiskScore
		}
	}
	return h
}

// priceResolver looks prices up in the price map, then the universe
type priceResolver struct {
	prices   map[string]float64
	universe *contracts.Universe
}

func (r priceResolver) instrument(ticker string) (*contracts.Instrument, bool) {
	if r.universe == nil {
		return nil, false
	}
	return r.universe.Get(ticker)
}

func (r priceResolver) lookup(ticker string) (float64, bool) {
	if p, ok := r.prices[ticker]; ok && p > 0 {
		return p, true
	}
	if inst, ok := r.instrument(ticker); ok && inst.HasPrice() {
		return *inst.Price, true
	}
	return 0, false
}

// positionPrice falls back to the implied price currentValue / shares
func (r priceResolver) positionPrice(p contracts.Position) (float64, bool) {
	if price, ok := r.lookup(p.Ticker); ok {
		return price, true
	}
	if p.Shares > 0 && p.CurrentValue > 0 {
		return p.CurrentValue / p.Shares, true
	}
	return 0, false
}

func roundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func floorShares(value, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return math.Floor(decimal.NewFromFloat(value).Div(decimal.NewFromFloat(price)).InexactFloat64())
}
