package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	strategyFile string
	env          string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yieldpilot",
	Short: "YieldPilot - 인컴 ETF 랭킹 · 포트폴리오 구성 · 리밸런싱 조언",
	Long: `YieldPilot Unified CLI

스냅샷(유니버스 + 성장 윈도우 + 가격 + 보유 종목)을 입력으로
Ladder-Delta 추세 점수 → Top-K 선택 → 비중 상한 배분 → 리밸런싱 조언.

Usage:
  go run ./cmd/yieldpilot [command]

Examples:
  go run ./cmd/yieldpilot build --snapshot snap.yaml
  go run ./cmd/yieldpilot advise --snapshot snap.yaml --json
  go run ./cmd/yieldpilot rank --snapshot snap.yaml
  go run ./cmd/yieldpilot strategy validate config/strategy/income_v1.yaml`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&strategyFile, "strategy", "", "strategy YAML (default: STRATEGY_PATH or built-in)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment override (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
