package advisor

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/wonny/yieldpilot/internal/contracts"
)

// Analysis thresholds
const (
	defaultRiskScore     = 50.0
	highRiskScore        = 70.0
	highRiskValueShare   = 0.5
	highRiskPenalty      = 20.0
	balanceAllocLimit    = 0.40
	minHealthyPositions  = 5
	lowScoreThreshold    = 60.0
	highRiskThreshold    = 70.0
	weakTrendThreshold   = 0.5
	strategyDiversityMax = 5
)

// Recommendation texts of the portfolio analysis
const (
	RecDiversify    = "Spread holdings across more strategies and trim the largest position"
	RecReduceRisk   = "Reduce exposure to high-risk positions"
	RecYieldBalance = "Rebalance toward instruments yielding 6-15%"
	RecWeakTrend    = "Many holdings carry weak or sell signals; review them for exit"
	RecMorePosition = "Hold at least 5 positions to limit single-instrument risk"
)

// holding is a position enriched with universe metadata
type holding struct {
	contracts.Position
	allocation float64
}

// Analyze computes the aggregate diagnostics of a portfolio
func Analyze(holdings []holding, totalValue float64) contracts.PortfolioAnalysis {
	a := contracts.PortfolioAnalysis{
		TotalValue:      roundCents(totalValue),
		PositionCount:   len(holdings),
		Recommendations: []string{},
	}
	if len(holdings) == 0 {
		a.YieldBalance = yieldBalance(nil)
		a.Recommendations = append(a.Recommendations, RecMorePosition)
		return a
	}

	a.DiversificationScore = diversificationScore(holdings)
	a.RiskScore = riskScore(holdings, totalValue)
	a.YieldBalance = yieldBalance(holdings)
	a.TrendAlignment = trendAlignment(holdings)

	if a.DiversificationScore < lowScoreThreshold {
		a.Recommendations = append(a.Recommendations, RecDiversify)
	}
	if a.RiskScore > highRiskThreshold {
		a.Recommendations = append(a.Recommendations, RecReduceRisk)
	}
	if a.YieldBalance < lowScoreThreshold {
		a.Recommendations = append(a.Recommendations, RecYieldBalance)
	}
	if a.TrendAlignment < weakTrendThreshold {
		a.Recommendations = append(a.Recommendations, RecWeakTrend)
	}
	if a.PositionCount < minHealthyPositions {
		a.Recommendations = append(a.Recommendations, RecMorePosition)
	}
	return a
}

// diversificationScore = strategy diversity (≤40) + balance (≤30) + count shaping (≤30)
func diversificationScore(holdings []holding) float64 {
	strategies := make(map[string]bool)
	maxAlloc := 0.0
	for _, h := range holdings {
		if h.Strategy != "" {
			strategies[h.Strategy] = true
		}
		maxAlloc = math.Max(maxAlloc, h.allocation)
	}

	diversity := math.Min(float64(len(strategies))/strategyDiversityMax, 1) * 40

	balance := 30.0
	if maxAlloc > balanceAllocLimit {
		balance = math.Max(0, 30-(maxAlloc-balanceAllocLimit)*100)
	}

	return diversity + balance + countScore(len(holdings))
}

func countScore(n int) float64 {
	switch {
	case n >= 8 && n <= 15:
		return 30
	case (n >= 5 && n <= 7) || (n >= 16 && n <= 25):
		return 20
	case (n >= 3 && n <= 4) || n > 25:
		return 10
	case n >= 1:
		return 5
	default:
		return 0
	}
}

// riskScore = mean risk (unknown = 50), +20 when over half of the value is high risk
func riskScore(holdings []holding, totalValue float64) float64 {
	scores := make([]float64, len(holdings))
	highRiskValue := 0.0
	for i, h := range holdings {
		scores[i] = defaultRiskScore
		if h.RiskScore != nil {
			scores[i] = *h.RiskScore
		}
		if scores[i] > highRiskScore {
			highRiskValue += h.CurrentValue
		}
	}

	score := stat.Mean(scores, nil)
	if totalValue > 0 && highRiskValue/totalValue > highRiskValueShare {
		score += highRiskPenalty
	}
	return math.Min(score, 100)
}

// yieldBalance scores the average known yield; it peaks at 85 for 6~15%
func yieldBalance(holdings []holding) float64 {
	yields := make([]float64, 0, len(holdings))
	for _, h := range holdings {
		if h.Yield != nil {
			yields = append(yields, *h.Yield)
		}
	}
	if len(yields) == 0 {
		return 50
	}

	avg := stat.Mean(yields, nil)
	switch {
	case avg >= 0.06 && avg <= 0.15:
		return 85
	case (avg >= 0.04 && avg < 0.06) || (avg > 0.15 && avg <= 0.20):
		return 70
	case (avg >= 0.02 && avg < 0.04) || (avg > 0.20 && avg <= 0.30):
		return 55
	default:
		return 40
	}
}

// trendAlignment = 0.6·buyRatio + 0.4·(1 − sellRatio), in [0, 1]
func trendAlignment(holdings []holding) float64 {
	buys, sells := 0, 0
	for _, h := range holdings {
		switch s := h.Signal.Clamp(); {
		case s.IsBuy():
			buys++
		case s.IsSell():
			sells++
		}
	}
	n := float64(len(holdings))
	return 0.6*float64(buys)/n + 0.4*(1-float64(sells)/n)
}
