package portfolio

import "slices"

// Constraints defines portfolio construction constraints beyond WeightingConfig
// ⭐ SSOT: 포트폴리오 제약조건은 여기서만
type Constraints struct {
	BlackList []string // 제외 종목 리스트 (점수 계산 전에 제외)
}

// IsBlackListed checks if a ticker is in the blacklist
func (c *Constraints) IsBlackListed(ticker string) bool {
	return slices.Contains(c.BlackList, ticker)
}

// DefaultConstraints returns default constraint configuration
func DefaultConstraints() Constraints {
	return Constraints{
		BlackList: []string{},
	}
}
