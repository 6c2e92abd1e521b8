package advisor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/yieldpilot/internal/contracts"
	"github.com/wonny/yieldpilot/pkg/logger"
)

func newAdvisor() *Advisor {
	return New(DefaultConfig(), logger.Nop())
}

func testRanking() contracts.RankingSnapshot {
	return contracts.NewRankingSnapshot(map[string]int{
		"JEPI": 40, "SCHD": 3, "AAA": 1, "BBB": 2, "CCC": 4, "DDD": 6, "EEE": 7,
	})
}

func testPositions() []contracts.Position {
	return []contracts.Position{
		{Ticker: "JEPI", Shares: 200, CurrentValue: 10_000, Signal: contracts.SignalStrongBuy, Rank: rank(5)},
		{Ticker: "SCHD", Shares: 1000, CurrentValue: 30_000, Signal: contracts.SignalHold},
		{Ticker: "QYLD", Shares: 3000, CurrentValue: 60_000, Signal: contracts.SignalStrongSell},
	}
}

func testUniverse() *contracts.Universe {
	f := contracts.Float
	return contracts.NewUniverse([]contracts.Instrument{
		{Ticker: "AAA", Name: "Alpha Income", Price: f(50)},
		{Ticker: "BBB", Price: f(25)},
		{Ticker: "CCC"},
		{Ticker: "DDD", Price: f(10)},
		{Ticker: "JEPI", Price: f(45), Strategy: "covered call"},
		{Ticker: "SCHD", Price: f(30), Strategy: "dividend growth", Yield: contracts.Float(0.035)},
	})
}

func TestAdvisor_Advise(t *testing.T) {
	prices := map[string]float64{"JEPI": 40, "EEE": 12}

	advice, err := newAdvisor().Advise(context.Background(), testPositions(), prices, testRanking(), testUniverse())
	require.NoError(t, err)
	require.Len(t, advice.TargetRecommendations, 3)

	// 자체 rank(5)가 스냅샷(40)보다 우선
	jepi := advice.TargetRecommendations[0]
	assert.Equal(t, contracts.ActionIncrease, jepi.Action)
	assert.Equal(t, 95, jepi.Confidence)
	assert.InDelta(t, 0.10, jepi.CurrentAllocation, 1e-12)
	assert.Equal(t, 16_000.0, jepi.TargetValue)
	assert.Equal(t, 400.0, jepi.TargetShares, "price map wins over the universe price")

	// rank는 스냅샷에서 → top-15 HOLD
	schd := advice.TargetRecommendations[1]
	assert.Equal(t, contracts.ActionHold, schd.Action)
	assert.Equal(t, 70, schd.Confidence)
	assert.Equal(t, 18_000.0, schd.TargetValue)
	assert.Equal(t, 600.0, schd.TargetShares)

	// 가격 없음 → currentValue / shares = 20
	qyld := advice.TargetRecommendations[2]
	assert.Equal(t, contracts.ActionDecrease, qyld.Action)
	assert.Equal(t, 90, qyld.Confidence)
	assert.Equal(t, 18_000.0, qyld.TargetValue)
	assert.Equal(t, 900.0, qyld.TargetShares)

	// 보유 3 → 후보 3; CCC(가격 없음), EEE(유니버스 밖) 제외
	require.Len(t, advice.NewETFRecommendations, 3)
	tickers := []string{}
	for _, c := range advice.NewETFRecommendations {
		tickers = append(tickers, c.Ticker)
		assert.Equal(t, 5_000.0, c.TargetValue)
		assert.Equal(t, 85, c.Confidence)
	}
	assert.Equal(t, []string{"AAA", "BBB", "DDD"}, tickers)
	assert.Equal(t, "Alpha Income", advice.NewETFRecommendations[0].Name)
	assert.Equal(t, 100.0, advice.NewETFRecommendations[0].TargetShares)
	assert.Equal(t, 500.0, advice.NewETFRecommendations[2].TargetShares)

	a := advice.PortfolioAnalysis
	assert.Equal(t, 100_000.0, a.TotalValue)
	assert.Equal(t, 3, a.PositionCount)
	assert.Equal(t, 55.0, a.YieldBalance, "yield comes from the universe")
	assert.Contains(t, a.Recommendations, RecMorePosition)
}

func TestAdvisor_Advise_NewCandidatesNeverHeld(t *testing.T) {
	prices := map[string]float64{"JEPI": 40, "SCHD": 30, "AAA": 50, "BBB": 25, "DDD": 10, "EEE": 12}

	advice, err := newAdvisor().Advise(context.Background(), testPositions(), prices, testRanking(), nil)
	require.NoError(t, err)

	held := map[string]bool{"JEPI": true, "SCHD": true, "QYLD": true}
	for _, c := range advice.NewETFRecommendations {
		assert.False(t, held[c.Ticker], c.Ticker)
	}
	require.Len(t, advice.NewETFRecommendations, 3)
	assert.Equal(t, "AAA", advice.NewETFRecommendations[0].Ticker)
	assert.Equal(t, "DDD", advice.NewETFRecommendations[2].Ticker, "CCC has no price")
}

func TestAdvisor_Advise_SnapshotUnchanged(t *testing.T) {
	ranking := testRanking()
	before := ranking.Map()

	_, err := newAdvisor().Advise(context.Background(), testPositions(), nil, ranking, testUniverse())
	require.NoError(t, err)
	assert.Equal(t, before, ranking.Map())
}

func TestAdvisor_Advise_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newAdvisor().Advise(ctx, testPositions(), nil, testRanking(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewCandidateCount(t *testing.T) {
	assert.Equal(t, 3, NewCandidateCount(0, 10, 3))
	assert.Equal(t, 3, NewCandidateCount(7, 10, 3))
	assert.Equal(t, 2, NewCandidateCount(8, 10, 3))
	assert.Equal(t, 1, NewCandidateCount(9, 10, 3))
	assert.Equal(t, 1, NewCandidateCount(15, 10, 3))
}

func TestCandidateConfidence(t *testing.T) {
	assert.Equal(t, 85, candidateConfidence(1))
	assert.Equal(t, 85, candidateConfidence(10))
	assert.Equal(t, 75, candidateConfidence(11))
	assert.Equal(t, 75, candidateConfidence(25))
	assert.Equal(t, 65, candidateConfidence(26))
}
