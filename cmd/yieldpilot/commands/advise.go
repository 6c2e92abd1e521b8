package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wonny/yieldpilot/internal/advisor"
	"github.com/wonny/yieldpilot/internal/contracts"
	"github.com/wonny/yieldpilot/internal/selection"
)

// adviseCmd represents the advise command
var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "보유 종목 리밸런싱 조언",
	Long: `스냅샷의 보유 종목(positions)에 대해 리밸런싱 조언을 생성합니다.

출력:
- 종목별 목표 (HOLD | INCREASE | DECREASE | SELL) + 신뢰도
- 미보유 상위 랭크 신규 후보 (최대 3)
- 포트폴리오 진단 (분산 · 리스크 · 배당 균형 · 추세 정렬)

랭킹은 스냅샷의 ranking을 사용하고, 없으면 전략 점수로 한 번 계산해 고정합니다.

Example:
  go run ./cmd/yieldpilot advise --snapshot snap.yaml
  go run ./cmd/yieldpilot advise --snapshot snap.yaml --redis --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdvise(cmd.Context(), cmd.OutOrStdout(), adviseOpts)
	},
}

type adviseOptions struct {
	snapshot string
	json     bool
	redis    bool
}

var adviseOpts adviseOptions

func init() {
	rootCmd.AddCommand(adviseCmd)

	adviseCmd.Flags().StringVar(&adviseOpts.snapshot, "snapshot", "", "snapshot file (YAML/JSON)")
	adviseCmd.Flags().BoolVar(&adviseOpts.json, "json", false, "JSON 출력")
	adviseCmd.Flags().BoolVar(&adviseOpts.redis, "redis", false, "Redis 캐시로 빈 가격/랭킹 채우기")
}

func runAdvise(ctx context.Context, out io.Writer, opts adviseOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := newRuntime(strategyFile)
	if err != nil {
		return err
	}

	snap, err := rt.loadSnapshot(ctx, opts.snapshot, opts.redis)
	if err != nil {
		return err
	}
	universe := snap.Universe()

	// 랭킹 스냅샷: 호출 전체에서 한 번만 고정
	ranking := snap.RankingSnapshot()
	if ranking.Len() == 0 {
		ranked, err := computeRanking(ctx, rt, universe, snap.GrowthCache())
		if err != nil {
			return err
		}
		ranking = selection.Snapshot(ranked)
	}

	adv := advisor.New(rt.strategy.AdvisorConfig(), rt.log)
	advice, err := adv.Advise(ctx, snap.Positions, snap.PriceMap(), ranking, universe)
	if err != nil {
		return fmt.Errorf("advise: %w", err)
	}

	if opts.json {
		return printJSON(out, advice)
	}
	printAdvice(out, advice)
	return nil
}

// printAdvice renders advice as tables
func printAdvice(out io.Writer, advice *contracts.AIPortfolioAdvice) {
	a := advice.PortfolioAnalysis

	PrintDoubleSeparator(out)
	fmt.Fprintln(out, "  Portfolio Advice")
	PrintSeparator(out)
	PrintKeyValue(out, "Total value", money(a.TotalValue), 16)
	PrintKeyValue(out, "Positions", fmt.Sprintf("%d", a.PositionCount), 16)
	PrintKeyValue(out, "Diversification", fmt.Sprintf("%.0f", a.DiversificationScore), 16)
	PrintKeyValue(out, "Risk", fmt.Sprintf("%.0f", a.RiskScore), 16)
	PrintKeyValue(out, "Yield balance", fmt.Sprintf("%.0f", a.YieldBalance), 16)
	PrintKeyValue(out, "Trend alignment", fmt.Sprintf("%.2f", a.TrendAlignment), 16)
	fmt.Fprintln(out)

	widths := []int{8, 9, 12, 8, 12, 8, 10, 4}
	PrintTableHeader(out, []string{"TICKER", "ACTION", "CURRENT", "ALLOC", "TARGET", "ALLOC", "SHARES", "CONF"}, widths)
	for _, r := range advice.TargetRecommendations {
		PrintTableRow(out, []string{
			r.Ticker,
			string(r.Action),
			money(r.CurrentValue),
			pct(r.CurrentAllocation),
			money(r.TargetValue),
			pct(r.TargetAllocation),
			shares(r.TargetShares),
			fmt.Sprintf("%d", r.Confidence),
		}, widths)
	}
	fmt.Fprintln(out)

	if len(advice.NewETFRecommendations) > 0 {
		fmt.Fprintln(out, "  New candidates")
		widths = []int{8, 6, 12, 10, 4}
		PrintTableHeader(out, []string{"TICKER", "RANK", "TARGET", "SHARES", "CONF"}, widths)
		for _, c := range advice.NewETFRecommendations {
			PrintTableRow(out, []string{c.Ticker, fmt.Sprintf("#%d", c.Rank), money(c.TargetValue), shares(c.TargetShares), fmt.Sprintf("%d", c.Confidence)}, widths)
		}
		fmt.Fprintln(out)
	}

	if len(a.Recommendations) > 0 {
		fmt.Fprintln(out, "  Recommendations")
		PrintList(out, a.Recommendations)
	}
	PrintDoubleSeparator(out)
}
