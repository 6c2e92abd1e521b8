package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wonny/yieldpilot/internal/contracts"
	"github.com/wonny/yieldpilot/internal/portfolio"
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "유니버스 전체 랭킹",
	Long: `전략의 점수 소스로 유니버스 전체 랭킹을 출력합니다.
출력은 advise의 랭킹 스냅샷 입력(ranking)으로 그대로 쓸 수 있습니다.

Example:
  go run ./cmd/yieldpilot rank --snapshot snap.yaml
  go run ./cmd/yieldpilot rank --snapshot snap.yaml --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRank(cmd.Context(), cmd.OutOrStdout(), rankOpts)
	},
}

type rankOptions struct {
	snapshot string
	json     bool
	redis    bool
}

var rankOpts rankOptions

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVar(&rankOpts.snapshot, "snapshot", "", "snapshot file (YAML/JSON)")
	rankCmd.Flags().BoolVar(&rankOpts.json, "json", false, "JSON 출력 (ticker: rank)")
	rankCmd.Flags().BoolVar(&rankOpts.redis, "redis", false, "Redis 캐시로 빈 성장 윈도우 채우기")
}

func runRank(ctx context.Context, out io.Writer, opts rankOptions) error {
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

	ranked, err := computeRanking(ctx, rt, snap.Universe(), snap.GrowthCache())
	if err != nil {
		return err
	}

	if opts.json {
		m := make(map[string]int, len(ranked))
		for _, r := range ranked {
			m[r.Ticker] = r.Rank
		}
		return printJSON(out, m)
	}

	wc := rt.strategy.WeightingConfig()
	fmt.Fprintf(out, "  Ranking by %s (%s)\n", wc.ScoreSource, rt.strategy.Meta.StrategyID)
	widths := []int{6, 10}
	PrintTableHeader(out, []string{"RANK", "TICKER"}, widths)
	for _, r := range ranked {
		PrintTableRow(out, []string{fmt.Sprintf("#%d", r.Rank), r.Ticker}, widths)
	}
	return nil
}

func computeRanking(ctx context.Context, rt *runtime, universe *contracts.Universe, cache contracts.GrowthCache) ([]contracts.RankedTicker, error) {
	builder := portfolio.NewBuilder(rt.strategy.Constraints(), rt.strategy.BlendWeights(), rt.log)
	ranked, err := builder.Rank(ctx, universe, cache, rt.strategy.WeightingConfig())
	if err != nil {
		return nil, fmt.Errorf("rank universe: %w", err)
	}
	return ranked, nil
}
