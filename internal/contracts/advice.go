package contracts

// Signal is the composite buy/sell recommendation strength of a holding
type Signal int

const (
	SignalStrongSell Signal = -2
	SignalSell       Signal = -1
	SignalHold       Signal = 0
	SignalBuy        Signal = 1
	SignalStrongBuy  Signal = 2
)

// Clamp bounds a signal to [-2, 2]
func (s Signal) Clamp() Signal {
	if s > SignalStrongBuy {
		return SignalStrongBuy
	}
	if s < SignalStrongSell {
		return SignalStrongSell
	}
	return s
}

// IsBuy reports signal >= 1
func (s Signal) IsBuy() bool { return s >= SignalBuy }

// IsSell reports signal <= -1
func (s Signal) IsSell() bool { return s <= SignalSell }

// String returns a display name
func (s Signal) String() string {
	switch s.Clamp() {
	case SignalStrongBuy:
		return "strong buy"
	case SignalBuy:
		return "buy"
	case SignalSell:
		return "sell"
	case SignalStrongSell:
		return "strong sell"
	default:
		return "hold"
	}
}

// Position is an existing holding
type Position struct {
	Ticker       string   `json:"ticker" yaml:"ticker"`
	Shares       float64  `json:"shares" yaml:"shares"`
	CurrentValue float64  `json:"current_value" yaml:"current_value"`
	Signal       Signal   `json:"signal" yaml:"signal"`
	Rank         *int     `json:"rank,omitempty" yaml:"rank,omitempty"`
	Yield        *float64 `json:"yield,omitempty" yaml:"yield,omitempty"` // fraction
	Strategy     string   `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	RiskScore    *float64 `json:"risk_score,omitempty" yaml:"risk_score,omitempty"` // 0 ~ 100
}

// Action represents the rebalancing action for a holding
type Action string

const (
	ActionHold     Action = "HOLD"
	ActionIncrease Action = "INCREASE"
	ActionDecrease Action = "DECREASE"
	ActionSell     Action = "SELL"
)

// TargetRecommendation is the advisor's verdict on one existing holding
type TargetRecommendation struct {
	Ticker            string  `json:"ticker"`
	CurrentValue      float64 `json:"current_value"`
	CurrentAllocation float64 `json:"current_allocation"` // 0.0 ~ 1.0
	TargetValue       float64 `json:"target_value"`
	TargetAllocation  float64 `json:"target_allocation"`
	TargetShares      float64 `json:"target_shares"`
	Action            Action  `json:"action"`
	Reason            string  `json:"reason"`
	Confidence        int     `json:"confidence"` // 0 ~ 100
}

// NewCandidateRecommendation is a ranked instrument not yet held
type NewCandidateRecommendation struct {
	Ticker       string  `json:"ticker"`
	Name         string  `json:"name,omitempty"`
	TargetValue  float64 `json:"target_value"`
	TargetShares float64 `json:"target_shares"`
	Rank         int     `json:"rank"`
	Confidence   int     `json:"confidence"`
	Reason       string  `json:"reason"`
}

// PortfolioAnalysis aggregates portfolio-level diagnostics (all scores 0 ~ 100)
type PortfolioAnalysis struct {
	TotalValue           float64  `json:"total_value"`
	PositionCount        int      `json:"position_count"`
	DiversificationScore float64  `json:"diversification_score"`
	RiskScore            float64  `json:"risk_score"`
	YieldBalance         float64  `json:"yield_balance"`
	TrendAlignment       float64  `json:"trend_alignment"` // 0.0 ~ 1.0
	Recommendations      []string `json:"recommendations"`
}

// AIPortfolioAdvice is the full advisory output
type AIPortfolioAdvice struct {
	TargetRecommendations []TargetRecommendation       `json:"target_recommendations"`
	NewETFRecommendations []NewCandidateRecommendation `json:"new_etf_recommendations"`
	PortfolioAnalysis     PortfolioAnalysis            `json:"portfolio_analysis"`
}

// Count returns how many holdings get each action
func (a *AIPortfolioAdvice) Count(action Action) int {
	n := 0
	for _, r := range a.TargetRecommendations {
		if r.Action == action {
			n++
		}
	}
	return n
}
