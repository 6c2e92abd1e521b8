package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wonny/yieldpilot/internal/marketdata"
	"github.com/wonny/yieldpilot/internal/selection"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Redis 캐시 관리",
	Long: `성장 윈도우 · 가격 · 랭킹 스냅샷을 Redis에 게시합니다.
build/advise의 --redis 플래그가 이 값을 읽습니다.

Example:
  go run ./cmd/yieldpilot cache push --snapshot snap.yaml`,
}

var cachePushCmd = &cobra.Command{
	Use:   "push",
	Short: "스냅샷을 Redis에 게시",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		rt, err := newRuntime(strategyFile)
		if err != nil {
			return err
		}
		snap, err := rt.loadSnapshot(ctx, cacheSnapshot, false)
		if err != nil {
			return err
		}
		src, closeFn, err := rt.openCache(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		if err := pushSnapshot(ctx, cmd.OutOrStdout(), rt, src, snap); err != nil {
			rt.log.WithError(err).Error("Cache push failed")
			return err
		}
		return nil
	},
}

var cacheSnapshot string

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cachePushCmd)

	cachePushCmd.Flags().StringVar(&cacheSnapshot, "snapshot", "", "snapshot file (YAML/JSON)")
}

// pushSnapshot publishes growth windows, prices and the ranking. Without a
// ranking in the snapshot, the strategy ranking is computed and pushed.
func pushSnapshot(ctx context.Context, out io.Writer, rt *runtime, src *marketdata.RedisSource, snap *marketdata.Snapshot) error {
	growth, err := src.PushGrowth(ctx, snap.GrowthCache())
	if err != nil {
		return err
	}

	prices := snap.PriceMap()
	for _, inst := range snap.Instruments {
		if _, ok := prices[inst.Ticker]; !ok && inst.HasPrice() {
			prices[inst.Ticker] = *inst.Price
		}
	}
	priced, err := src.PushPrices(ctx, prices)
	if err != nil {
		return err
	}

	ranking := snap.RankingSnapshot()
	if ranking.Len() == 0 {
		ranked, err := computeRanking(ctx, rt, snap.Universe(), snap.GrowthCache())
		if err != nil {
			return err
		}
		ranking = selection.Snapshot(ranked)
	}
	if err := src.PushRanking(ctx, rt.strategy.Meta.StrategyID, ranking); err != nil {
		return err
	}

	PrintSuccess(out, fmt.Sprintf("pushed %d growth windows, %d prices, %d ranks (%s)", growth, priced, ranking.Len(), rt.strategy.Meta.StrategyID))
	return nil
}
