package strategyconfig

import (
	"errors"
	"fmt"
	"math"

	"github.com/wonny/yieldpilot/internal/contracts"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

// Validate checks all required constraints
// 실패 시 error 반환 (프로그램 중단)
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.StrategyID == "" {
		return ValidationError{"meta.strategy_id", "required"}
	}

	// === Universe ===
	for i, ticker := range cfg.Universe.BlackList {
		if ticker == "" {
			return ValidationError{fmt.Sprintf("universe.blacklist[%d]", i), "must not be empty"}
		}
	}
	if cfg.Universe.MinTradingDays < 0 {
		return ValidationError{"universe.min_trading_days", "must be >= 0"}
	}

	// === Signals ===
	if cfg.Signals.TrendEpsilon < 0 {
		return ValidationError{"signals.trend_epsilon", "must be >= 0"}
	}
	switch contracts.PastPerfMode(cfg.Signals.PastPerfMode) {
	case contracts.PastPerfEqual, contracts.PastPerfTime:
	default:
		return ValidationError{"signals.pastperf_mode", "must be equal or time"}
	}
	if cfg.Signals.Blend.Trend < 0 || cfg.Signals.Blend.Ret1Y < 0 {
		return ValidationError{"signals.blend", "weights must be >= 0"}
	}
	if err := validateWeightsSum([]float64{cfg.Signals.Blend.Trend, cfg.Signals.Blend.Ret1Y}, 1.0, 1e-6); err != nil {
		return ValidationError{"signals.blend", err.Error()}
	}

	// === Portfolio ===
	p := cfg.Portfolio
	if p.TopK < 1 {
		return ValidationError{"portfolio.top_k", "must be >= 1"}
	}
	if !contracts.ScoreSource(p.ScoreSource).IsValid() {
		return ValidationError{"portfolio.score_source", "must be one of trend, ret1y, pastperf, blend"}
	}
	switch contracts.WeightingMethod(p.Weighting) {
	case contracts.WeightEqual, contracts.WeightReturn, contracts.WeightRiskParity:
	default:
		return ValidationError{"portfolio.weighting", "must be one of equal, return, risk_parity"}
	}
	if p.MaxWeight != nil && (*p.MaxWeight <= 0 || *p.MaxWeight > 1) {
		return ValidationError{"portfolio.max_weight", "must be in (0, 1]"}
	}
	if p.Capital <= 0 {
		return ValidationError{"portfolio.capital", "must be > 0"}
	}

	// === Advisor ===
	a := cfg.Advisor
	if a.NewCandidateAllocation <= 0 || a.NewCandidateAllocation > 1 {
		return ValidationError{"advisor.new_candidate_allocation", "must be in (0, 1]"}
	}
	if a.TargetPositionCount < 1 {
		return ValidationError{"advisor.target_position_count", "must be >= 1"}
	}
	if a.MaxNewCandidates < 1 {
		return ValidationError{"advisor.max_new_candidates", "must be >= 1"}
	}

	return nil
}

// Warn checks recommended constraints (non-fatal)
func Warn(cfg *Config) []Warning {
	var warnings []Warning
	p := cfg.Portfolio

	// max_weight < 1/top_k → 상한 충족 불가
	if p.MaxWeight != nil && *p.MaxWeight*float64(p.TopK) < 1 {
		warnings = append(warnings, Warning{
			Code:    "INFEASIBLE_CAP",
			Message: fmt.Sprintf("max_weight %.2f x top_k %d < 1: cap cannot hold, weights stay equal", *p.MaxWeight, p.TopK),
		})
	}

	// 신규 후보 비중이 종목 상한보다 큼
	if p.MaxWeight != nil && cfg.Advisor.NewCandidateAllocation > *p.MaxWeight {
		warnings = append(warnings, Warning{
			Code:    "LARGE_NEW_POSITION",
			Message: "advisor.new_candidate_allocation exceeds portfolio.max_weight",
		})
	}

	// 과도한 분산
	if p.TopK > 30 {
		warnings = append(warnings, Warning{
			Code:    "HIGH_TOP_K",
			Message: "top_k > 30: allocations get too small to matter",
		})
	}

	return warnings
}

// === Helper Functions ===

func validateWeightsSum(weights []float64, target float64, epsilon float64) error {
	if len(weights) == 0 {
		return errors.New("must not be empty")
	}
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum-target) > epsilon {
		return fmt.Errorf("must sum to %.2f, got %.4f", target, sum)
	}
	return nil
}
