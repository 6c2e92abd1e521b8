package contracts

import "context"

// ScoreBuilder scores every usable instrument of the universe (S0 + S1)
// ⭐ SSOT: 스코어링 인터페이스
type ScoreBuilder interface {
	Build(ctx context.Context, universe *Universe, cache GrowthCache, cfg WeightingConfig) ([]ScoreRecord, error)
}

// CandidateSelector normalizes, blends and picks the top-K records (S2)
type CandidateSelector interface {
	Select(ctx context.Context, records []ScoreRecord, cfg WeightingConfig) ([]ScoreRecord, error)
}

// PortfolioBuilder runs the full build pipeline (S0 → S4)
type PortfolioBuilder interface {
	Build(ctx context.Context, universe *Universe, cache GrowthCache, cfg WeightingConfig) (*PortfolioResult, error)
}

// PortfolioAdvisor produces rebalancing advice for existing holdings (A0)
type PortfolioAdvisor interface {
	Advise(ctx context.Context, positions []Position, prices map[string]float64, ranking RankingSnapshot, universe *Universe) (*AIPortfolioAdvice, error)
}
