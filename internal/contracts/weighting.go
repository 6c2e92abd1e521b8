package contracts

import "fmt"

// WeightingMethod selects how raw weights are built
type WeightingMethod string

const (
	WeightEqual      WeightingMethod = "equal"
	WeightReturn     WeightingMethod = "return"
	WeightRiskParity WeightingMethod = "risk_parity"
)

// PastPerfMode selects how rung rates are averaged
type PastPerfMode string

const (
	PastPerfEqual PastPerfMode = "equal"
	PastPerfTime  PastPerfMode = "time"
)

// WeightingConfig is the full build configuration of one portfolio run
// ⭐ SSOT: 포트폴리오 구성 파라미터
type WeightingConfig struct {
	TopK         int             `json:"top_k" yaml:"top_k"`
	ScoreSource  ScoreSource     `json:"score_source" yaml:"score_source"`
	Weighting    WeightingMethod `json:"weighting" yaml:"weighting"`
	MaxWeight    *float64        `json:"max_weight,omitempty" yaml:"max_weight,omitempty"` // nil 또는 1 = 제한 없음
	Capital      float64         `json:"capital" yaml:"capital"`
	RoundShares  bool            `json:"round_shares" yaml:"round_shares"`
	PastPerfMode PastPerfMode    `json:"pastperf_mode" yaml:"pastperf_mode"`

	// MinTradingDays excludes instruments with a known, shorter history. 0 = off.
	MinTradingDays int `json:"min_trading_days" yaml:"min_trading_days"`
	// TrendEpsilon is the noise threshold of the ladder-delta bonus/penalty terms
	TrendEpsilon float64 `json:"trend_epsilon" yaml:"trend_epsilon"`
}

// DefaultWeightingConfig returns default configuration
func DefaultWeightingConfig() WeightingConfig {
	return WeightingConfig{
		TopK:         10,
		ScoreSource:  SourceBlend,
		Weighting:    WeightEqual,
		MaxWeight:    Float(0.25),
		Capital:      100_000,
		RoundShares:  true,
		PastPerfMode: PastPerfEqual,
	}
}

// Validate checks the configuration. Every failure is a *ConfigError.
func (c *WeightingConfig) Validate() error {
	if c.TopK < 1 {
		// topK는 1 이상으로 clamp (에러 아님)
		c.TopK = 1
	}
	if !c.ScoreSource.IsValid() {
		return &ConfigError{Field: "score_source", Message: fmt.Sprintf("%q is not one of trend, ret1y, pastperf, blend", c.ScoreSource), Err: ErrUnknownScoreSource}
	}
	switch c.Weighting {
	case WeightEqual, WeightReturn, WeightRiskParity:
	default:
		return &ConfigError{Field: "weighting", Message: fmt.Sprintf("%q is not one of equal, return, risk_parity", c.Weighting), Err: ErrUnknownWeighting}
	}
	if c.MaxWeight != nil && (*c.MaxWeight <= 0 || *c.MaxWeight > 1) {
		return &ConfigError{Field: "max_weight", Message: "must be in (0, 1]"}
	}
	if !(c.Capital > 0) {
		return &ConfigError{Field: "capital", Message: "must be > 0"}
	}
	switch c.PastPerfMode {
	case PastPerfEqual, PastPerfTime:
	case "":
		c.PastPerfMode = PastPerfEqual
	default:
		return &ConfigError{Field: "pastperf_mode", Message: fmt.Sprintf("%q is not one of equal, time", c.PastPerfMode)}
	}
	if c.MinTradingDays < 0 {
		return &ConfigError{Field: "min_trading_days", Message: "must be >= 0"}
	}
	if c.TrendEpsilon < 0 {
		return &ConfigError{Field: "trend_epsilon", Message: "must be >= 0"}
	}
	return nil
}
