package contracts

// PortfolioEntry is one selected instrument with its final allocation
// ⭐ 계약: Weight는 전체 합 1.0, Shares/RoundedDollars는 가격 기준 환산
type PortfolioEntry struct {
	Ticker         string      `json:"ticker"`
	Name           string      `json:"name,omitempty"`
	Weight         float64     `json:"weight"`          // 0.0 ~ 1.0
	Shares         float64     `json:"shares"`          // 정수 또는 소수 (RoundShares)
	Price          float64     `json:"price"`
	Dollars        float64     `json:"dollars"`         // weight * capital
	RoundedDollars float64     `json:"rounded_dollars"` // shares * price
	Scores         ScoreRecord `json:"scores"`
}

// BuildStatus is the outcome of a portfolio build
type BuildStatus string

const (
	StatusOK                BuildStatus = "OK"
	StatusNoValidCandidates BuildStatus = "NO_VALID_CANDIDATES"
)

// PortfolioResult is the output of one portfolio build
type PortfolioResult struct {
	Status   BuildStatus       `json:"status"`
	Config   WeightingConfig   `json:"config"`
	Entries  []PortfolioEntry  `json:"entries"`
	Scored   []ScoreRecord     `json:"scored"`             // every instrument that produced a score
	Excluded map[string]string `json:"excluded,omitempty"` // ticker: data-gap reason
	Invested float64           `json:"invested"`           // Σ rounded dollars
	Cash     float64           `json:"cash"`               // capital - invested
}

// TotalWeight returns the sum of all entry weights
func (r *PortfolioResult) TotalWeight() float64 {
	total := 0.0
	for _, e := range r.Entries {
		total += e.Weight
	}
	return total
}

// Count returns the number of entries
func (r *PortfolioResult) Count() int {
	return len(r.Entries)
}

// GetEntry finds an entry by ticker
func (r *PortfolioResult) GetEntry(ticker string) (*PortfolioEntry, bool) {
	for i := range r.Entries {
		if r.Entries[i].Ticker == ticker {
			return &r.Entries[i], true
		}
	}
	return nil, false
}
