package strategyconfig

import (
	"time"

	"github.com/wonny/yieldpilot/internal/advisor"
	"github.com/wonny/yieldpilot/internal/contracts"
	"github.com/wonny/yieldpilot/internal/portfolio"
	"github.com/wonny/yieldpilot/internal/selection"
)

// Config는 종목 선정 + 리밸런싱 전략의 전체 설정
type Config struct {
	Meta      Meta      `yaml:"meta" json:"meta"`
	Universe  Universe  `yaml:"universe" json:"universe"`
	Signals   Signals   `yaml:"signals" json:"signals"`
	Portfolio Portfolio `yaml:"portfolio" json:"portfolio"`
	Advisor   Advisor   `yaml:"advisor" json:"advisor"`
}

// Meta 메타 정보
type Meta struct {
	StrategyID  string `yaml:"strategy_id" json:"strategy_id"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Universe S0: 투자 가능 풀
type Universe struct {
	BlackList      []string `yaml:"blacklist" json:"blacklist"`
	MinTradingDays int      `yaml:"min_trading_days" json:"min_trading_days"` // 0 = off
}

// Signals S1/S2: 점수화
type Signals struct {
	TrendEpsilon float64 `yaml:"trend_epsilon" json:"trend_epsilon"`
	PastPerfMode string  `yaml:"pastperf_mode" json:"pastperf_mode"` // equal | time
	Blend        Blend   `yaml:"blend" json:"blend"`
}

// Blend 점수 혼합 비율 (합 = 1.0)
type Blend struct {
	Trend float64 `yaml:"trend" json:"trend"`
	Ret1Y float64 `yaml:"ret1y" json:"ret1y"`
}

// Portfolio S2~S4: 선택 + 비중 + 배분
type Portfolio struct {
	TopK        int      `yaml:"top_k" json:"top_k"`
	ScoreSource string   `yaml:"score_source" json:"score_source"` // trend | ret1y | pastperf | blend
	Weighting   string   `yaml:"weighting" json:"weighting"`       // equal | return | risk_parity
	MaxWeight   *float64 `yaml:"max_weight,omitempty" json:"max_weight,omitempty"`
	Capital     float64  `yaml:"capital" json:"capital"`
	RoundShares bool     `yaml:"round_shares" json:"round_shares"`
}

// Advisor A0: 리밸런싱 조언
type Advisor struct {
	NewCandidateAllocation float64 `yaml:"new_candidate_allocation" json:"new_candidate_allocation"`
	TargetPositionCount    int     `yaml:"target_position_count" json:"target_position_count"`
	MaxNewCandidates       int     `yaml:"max_new_candidates" json:"max_new_candidates"`
}

// Default returns the built-in strategy used when no file is given
func Default() *Config {
	wc := contracts.DefaultWeightingConfig()
	blend := selection.DefaultBlendWeights()
	adv := advisor.DefaultConfig()

	return &Config{
		Meta: Meta{StrategyID: "default", Version: "1"},
		Universe: Universe{
			BlackList: []string{},
		},
		Signals: Signals{
			PastPerfMode: string(wc.PastPerfMode),
			Blend:        Blend{Trend: blend.Trend, Ret1Y: blend.Ret1Y},
		},
		Portfolio: Portfolio{
			TopK:        wc.TopK,
			ScoreSource: string(wc.ScoreSource),
			Weighting:   string(wc.Weighting),
			MaxWeight:   wc.MaxWeight,
			Capital:     wc.Capital,
			RoundShares: wc.RoundShares,
		},
		Advisor: Advisor{
			NewCandidateAllocation: adv.NewCandidateAllocation,
			TargetPositionCount:    adv.TargetPositionCount,
			MaxNewCandidates:       adv.MaxNewCandidates,
		},
	}
}

// WeightingConfig converts the strategy into the engine build configuration
func (c *Config) WeightingConfig() contracts.WeightingConfig {
	var maxWeight *float64
	if c.Portfolio.MaxWeight != nil {
		maxWeight = contracts.Float(*c.Portfolio.MaxWeight)
	}
	return contracts.WeightingConfig{
		TopK:           c.Portfolio.TopK,
		ScoreSource:    contracts.ScoreSource(c.Portfolio.ScoreSource),
		Weighting:      contracts.WeightingMethod(c.Portfolio.Weighting),
		MaxWeight:      maxWeight,
		Capital:        c.Portfolio.Capital,
		RoundShares:    c.Portfolio.RoundShares,
		PastPerfMode:   contracts.PastPerfMode(c.Signals.PastPerfMode),
		MinTradingDays: c.Universe.MinTradingDays,
		TrendEpsilon:   c.Signals.TrendEpsilon,
	}
}

// BlendWeights returns the selector blend mix
func (c *Config) BlendWeights() selection.BlendWeights {
	return selection.BlendWeights{Trend: c.Signals.Blend.Trend, Ret1Y: c.Signals.Blend.Ret1Y}
}

// Constraints returns the portfolio constraints
func (c *Config) Constraints() portfolio.Constraints {
	bl := make([]string, len(c.Universe.BlackList))
	copy(bl, c.Universe.BlackList)
	return portfolio.Constraints{BlackList: bl}
}

// AdvisorConfig returns the advisor knobs
func (c *Config) AdvisorConfig() advisor.Config {
	return advisor.Config{
		NewCandidateAllocation: c.Advisor.NewCandidateAllocation,
		TargetPositionCount:    c.Advisor.TargetPositionCount,
		MaxNewCandidates:       c.Advisor.MaxNewCandidates,
	}
}

// DecisionSnapshot 의사결정 스냅샷 (재현성용)
type DecisionSnapshot struct {
	ConfigHash     string    `json:"config_hash"`
	ConfigYAML     string    `json:"config_yaml"`
	StrategyID     string    `json:"strategy_id"`
	GitCommit      string    `json:"git_commit"`
	DataSnapshotID string    `json:"data_snapshot_id"`
	CreatedAt      time.Time `json:"created_at"`
}
