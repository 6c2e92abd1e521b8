package advisor

import (
	"fmt"

	"github.com/wonny/yieldpilot/internal/contracts"
)

// NewCandidateCount returns how many unheld instruments to suggest:
// min(maxCount, max(1, targetCount - held)).
func NewCandidateCount(held, targetCount, maxCount int) int {
	n := targetCount - held
	if n < 1 {
		n = 1
	}
	if n > maxCount {
		n = maxCount
	}
	return n
}

// candidateConfidence maps a rank to the 85/75/65 confidence tiers
func candidateConfidence(rank int) int {
	switch {
	case rank <= 10:
		return 85
	case rank <= 25:
		return 75
	default:
		return 65
	}
}

// selectNewCandidates walks the frozen ranking in rank order and keeps
// unheld, priced tickers until count is reached.
func (a *Advisor) selectNewCandidates(held map[string]bool, ranking contracts.RankingSnapshot, pr priceResolver, totalValue float64, count int) []contracts.NewCandidateRecommendation {
	out := make([]contracts.NewCandidateRecommendation, 0, count)
	targetValue := roundCents(totalValue * a.cfg.NewCandidateAllocation)

	for _, row := range ranking.Sorted() {
		if len(out) >= count {
			break
		}
		if held[row.Ticker] {
			continue
		}
		if pr.universe != nil && !pr.universe.Contains(row.Ticker) {
			continue
		}
		price, ok := pr.lookup(row.Ticker)
		if !ok {
			continue
		}

		rec := contracts.NewCandidateRecommendation{
			Ticker:       row.Ticker,
			TargetValue:  targetValue,
			TargetShares: floorShares(targetValue, price),
			Rank:         row.Rank,
			Confidence:   candidateConfidence(row.Rank),
			Reason:       fmt.Sprintf("ranked #%d and not held: open a %.0f%% position", row.Rank, a.cfg.NewCandidateAllocation*100),
		}
		if inst, ok := pr.instrument(row.Ticker); ok {
			rec.Name = inst.Name
		}
		out = append(out, rec)
	}
	return out
}
