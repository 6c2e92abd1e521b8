package portfolio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/yieldpilot/internal/contracts"
	"github.com/wonny/yieldpilot/internal/selection"
	"github.com/wonny/yieldpilot/pkg/logger"
)

// scaled returns k × the reference uptrend ladder; with eps = 0 the trend
// score scales linearly, so k fixes the ranking.
func scaled(k float64) contracts.ReturnWindow {
	return contracts.NewReturnWindow(0.08*k, 0.10*k, 0.15*k, 0.20*k)
}

func testUniverse() *contracts.Universe {
	f := contracts.Float
	return contracts.NewUniverse([]contracts.Instrument{
		{Ticker: "AAA", Price: f(50), Return1Y: f(0.20), Volatility: f(0.10), Windows: scaled(1.0)},
		{Ticker: "BBB", Price: f(30), Return1Y: f(0.15), Volatility: f(0.20), Windows: scaled(0.8)},
		{Ticker: "CCC", Price: f(20), Return1Y: f(0.10), Volatility: f(0.15), Windows: scaled(0.6)},
		{Ticker: "DDD", Price: f(10), Return1Y: f(0.05), Volatility: f(0.30), Windows: scaled(0.4)},
		{Ticker: "EEE", Price: f(40), Return1Y: f(-0.05), Volatility: f(0.25), Windows: scaled(-1.0)},
		{Ticker: "NOPX", Return1Y: f(0.50), Windows: scaled(2.0)},
	})
}

func newBuilder(blackList ...string) *Builder {
	return NewBuilder(Constraints{BlackList: blackList}, selection.DefaultBlendWeights(), logger.Nop())
}

func TestBuilder_Build_TopTwoBlend(t *testing.T) {
	cfg := contracts.DefaultWeightingConfig()
	cfg.TopK = 2
	cfg.MaxWeight = nil

	universe := testUniverse()
	result, err := newBuilder().Build(context.Background(), universe, nil, cfg)
	require.NoError(t, err)

	assert.Equal(t, contracts.StatusOK, result.Status)
	require.Equal(t, 2, result.Count())
	assert.Equal(t, "AAA", result.Entries[0].Ticker)
	assert.Equal(t, "BBB", result.Entries[1].Ticker)
	assert.InDelta(t, 1.0, result.TotalWeight(), 1e-9)

	aaa, ok := result.GetEntry("AAA")
	require.True(t, ok)
	assert.InDelta(t, 0.5, aaa.Weight, 1e-9)
	assert.Equal(t, 1000.0, aaa.Shares)
	assert.Equal(t, 50_000.0, aaa.RoundedDollars)
	require.NotNil(t, aaa.Scores.BlendScore)
	assert.InDelta(t, 100, *aaa.Scores.BlendScore, 1e-9)

	bbb, _ := result.GetEntry("BBB")
	assert.Equal(t, 1666.0, bbb.Shares)
	assert.Equal(t, 49_980.0, bbb.RoundedDollars)

	assert.Equal(t, 99_980.0, result.Invested)
	assert.Equal(t, 20.0, result.Cash)

	assert.Len(t, result.Scored, 5)
	assert.Equal(t, "no price", result.Excluded["NOPX"])
	assert.Empty(t, universe.Excluded, "caller universe must stay untouched")
}

func TestBuilder_Build_InfeasibleCap(t *testing.T) {
	cfg := contracts.DefaultWeightingConfig()
	cfg.TopK = 2 // 기본 max_weight 0.25 < 1/2

	result, err := newBuilder().Build(context.Background(), testUniverse(), nil, cfg)
	require.NoError(t, err)
	require.Equal(t, 2, result.Count())
	for _, e := range result.Entries {
		assert.InDelta(t, 0.5, e.Weight, 1e-9)
	}
}

func TestBuilder_Build_RiskParityCapped(t *testing.T) {
	cfg := contracts.DefaultWeightingConfig()
	cfg.TopK = 4
	cfg.Weighting = contracts.WeightRiskParity
	cfg.MaxWeight = contracts.Float(0.4)

	result, err := newBuilder().Build(context.Background(), testUniverse(), nil, cfg)
	require.NoError(t, err)
	require.Equal(t, 4, result.Count())

	for _, e := range result.Entries {
		assert.LessOrEqual(t, e.Weight, 0.4+1e-9, e.Ticker)
	}
	assert.InDelta(t, 1.0, result.TotalWeight(), 1e-9)

	aaa, _ := result.GetEntry("AAA")
	ddd, _ := result.GetEntry("DDD")
	assert.Greater(t, aaa.Weight, ddd.Weight, "lower volatility gets more weight")
}

func TestBuilder_Build_BlackList(t *testing.T) {
	cfg := contracts.DefaultWeightingConfig()
	cfg.TopK = 2
	cfg.MaxWeight = nil

	result, err := newBuilder("AAA").Build(context.Background(), testUniverse(), nil, cfg)
	require.NoError(t, err)
	require.Equal(t, 2, result.Count())
	assert.Equal(t, "BBB", result.Entries[0].Ticker)
	assert.Equal(t, "CCC", result.Entries[1].Ticker)
	assert.Equal(t, ReasonBlackListed, result.Excluded["AAA"])
}

func TestBuilder_Build_NoValidCandidates(t *testing.T) {
	f := contracts.Float
	universe := contracts.NewUniverse([]contracts.Instrument{
		// 전손 구간 → 이후 rung 미정의, pastperf 없음
		{Ticker: "AAA", Price: f(10), Return1Y: f(0.1), Windows: contracts.NewReturnWindow(-1, -0.5, -0.4, -0.3)},
		{Ticker: "BBB", Price: f(20), Return1Y: f(0.2), Windows: contracts.NewReturnWindow(0.01, -1, 0.1, 0.2)},
	})
	cfg := contracts.DefaultWeightingConfig()
	cfg.ScoreSource = contracts.SourcePastPerf

	result, err := newBuilder().Build(context.Background(), universe, nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, contracts.StatusNoValidCandidates, result.Status)
	assert.Empty(t, result.Entries)
	assert.Equal(t, cfg.Capital, result.Cash)
	assert.Len(t, result.Scored, 2)
}

func TestBuilder_Build_IncompleteWindowNeverSelected(t *testing.T) {
	f := contracts.Float
	universe := contracts.NewUniverse([]contracts.Instrument{
		{Ticker: "AAA", Price: f(50), Return1Y: f(0.20), Windows: scaled(1.0)},
		{Ticker: "BBB", Price: f(30), Return1Y: f(0.10), Windows: scaled(0.8)},
		{Ticker: "NOWIN", Price: f(20), Return1Y: f(0.90)},
	})
	cfg := contracts.DefaultWeightingConfig()
	cfg.TopK = 1
	cfg.ScoreSource = contracts.SourceRet1Y

	result, err := newBuilder().Build(context.Background(), universe, nil, cfg)
	require.NoError(t, err)
	require.Equal(t, 1, result.Count())
	assert.Equal(t, "AAA", result.Entries[0].Ticker)
	assert.Equal(t, "incomplete return windows", result.Excluded["NOWIN"])

	require.Len(t, result.Scored, 2)
	for _, rec := range result.Scored {
		assert.NotEqual(t, "NOWIN", rec.Ticker)
	}
	// ret1y 범위는 완전한 종목만으로 정규화
	aaa, _ := result.GetEntry("AAA")
	require.NotNil(t, aaa.Scores.Ret1YScore)
	assert.InDelta(t, 100, *aaa.Scores.Ret1YScore, 1e-9)
}

func TestBuilder_Build_GrowthCacheOverridesMetadata(t *testing.T) {
	cfg := contracts.DefaultWeightingConfig()
	cfg.TopK = 1
	cfg.ScoreSource = contracts.SourceTrend

	cache := contracts.GrowthCache{"DDD": scaled(3.0)}
	result, err := newBuilder().Build(context.Background(), testUniverse(), cache, cfg)
	require.NoError(t, err)
	require.Equal(t, 1, result.Count())
	assert.Equal(t, "DDD", result.Entries[0].Ticker)
}

func TestBuilder_Build_InvalidConfig(t *testing.T) {
	cfg := contracts.DefaultWeightingConfig()
	cfg.Weighting = "momentum"

	_, err := newBuilder().Build(context.Background(), testUniverse(), nil, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, contracts.ErrUnknownWeighting)
	assert.ErrorIs(t, err, contracts.ErrInvalidConfig)
}

func TestBuilder_Rank(t *testing.T) {
	cfg := contracts.DefaultWeightingConfig()

	ranked, err := newBuilder().Rank(context.Background(), testUniverse(), nil, cfg)
	require.NoError(t, err)
	require.Len(t, ranked, 5)
	assert.Equal(t, contracts.RankedTicker{Ticker: "AAA", Rank: 1}, ranked[0])
	assert.Equal(t, contracts.RankedTicker{Ticker: "EEE", Rank: 5}, ranked[4])
}
