package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wonny/yieldpilot/internal/strategyconfig"
)

// strategyCmd represents the strategy command
var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "전략 YAML 검증 · 해시",
	Long: `전략 파일을 검증하거나 재현성 해시를 계산합니다.

Example:
  go run ./cmd/yieldpilot strategy validate config/strategy/income_v1.yaml
  go run ./cmd/yieldpilot strategy hash config/strategy/income_v1.yaml`,
}

var strategyValidateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "전략 파일 검증 (필수 제약 + 권장 경고)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStrategyValidate(cmd.OutOrStdout(), args[0])
	},
}

var strategyHashCmd = &cobra.Command{
	Use:   "hash FILE",
	Short: "전략 설정 SHA-256 해시",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStrategyHash(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(strategyCmd)
	strategyCmd.AddCommand(strategyValidateCmd)
	strategyCmd.AddCommand(strategyHashCmd)
}

func runStrategyValidate(out io.Writer, path string) error {
	cfg, _, err := strategyconfig.Load(path)
	if err != nil {
		PrintError(out, err.Error())
		return err
	}

	PrintSuccess(out, fmt.Sprintf("%s (%s) is valid", cfg.Meta.StrategyID, path))
	warnings := strategyconfig.Warn(cfg)
	for _, w := range warnings {
		PrintWarning(out, fmt.Sprintf("[%s] %s", w.Code, w.Message))
	}
	return nil
}

func runStrategyHash(out io.Writer, path string) error {
	cfg, _, err := strategyconfig.Load(path)
	if err != nil {
		return err
	}
	hash, err := strategyconfig.Hash(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, hash)
	return nil
}
