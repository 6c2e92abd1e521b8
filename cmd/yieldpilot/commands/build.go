package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wonny/yieldpilot/internal/contracts"
	"github.com/wonny/yieldpilot/internal/marketdata"
	"github.com/wonny/yieldpilot/internal/portfolio"
	"github.com/wonny/yieldpilot/internal/strategyconfig"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Top-K 포트폴리오 구성",
	Long: `스냅샷의 유니버스를 점수화하고 Top-K 종목에 자본을 배분합니다.

파이프라인:
- S0 윈도우 추출 (성장 캐시 우선, 없으면 메타데이터)
- S1 Ladder-Delta 추세 / 과거 성과 / 1년 수익률
- S2 정규화 + blend + Top-K
- S3 비중 (equal | return | risk_parity) + 상한
- S4 금액 · 주식 수

전략 파일 값은 플래그로 덮어쓸 수 있습니다.

Example:
  go run ./cmd/yieldpilot build --snapshot snap.yaml
  go run ./cmd/yieldpilot build --snapshot snap.yaml --top-k 5 --weighting risk_parity --max-weight 0.3
  go run ./cmd/yieldpilot build --snapshot snap.yaml --redis --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyBuildOverrides(cmd, &buildOpts)
		return runBuild(cmd.Context(), cmd.OutOrStdout(), buildOpts)
	},
}

// buildOptions holds build flags. Pointer fields are set only when the flag was given.
type buildOptions struct {
	snapshot string
	json     bool
	redis    bool

	topK         *int
	source       *string
	weighting    *string
	maxWeight    *float64
	capital      *float64
	roundShares  *bool
	pastPerfMode *string

	// flag storage
	flagTopK         int
	flagSource       string
	flagWeighting    string
	flagMaxWeight    float64
	flagCapital      float64
	flagRoundShares  bool
	flagPastPerfMode string
}

var buildOpts buildOptions

func init() {
	rootCmd.AddCommand(buildCmd)

	f := buildCmd.Flags()
	f.StringVar(&buildOpts.snapshot, "snapshot", "", "snapshot file (YAML/JSON)")
	f.BoolVar(&buildOpts.json, "json", false, "JSON 출력")
	f.BoolVar(&buildOpts.redis, "redis", false, "Redis 캐시로 빈 성장 윈도우/가격 채우기")
	f.IntVar(&buildOpts.flagTopK, "top-k", 10, "선택 종목 수")
	f.StringVar(&buildOpts.flagSource, "source", "blend", "점수 소스 (trend|ret1y|pastperf|blend)")
	f.StringVar(&buildOpts.flagWeighting, "weighting", "equal", "비중 방식 (equal|return|risk_parity)")
	f.Float64Var(&buildOpts.flagMaxWeight, "max-weight", 0.25, "종목당 최대 비중 (1 = 제한 없음)")
	f.Float64Var(&buildOpts.flagCapital, "capital", 100_000, "투자 자본")
	f.BoolVar(&buildOpts.flagRoundShares, "round-shares", true, "정수 주식 수로 내림")
	f.StringVar(&buildOpts.flagPastPerfMode, "pastperf-mode", "equal", "과거 성과 평균 (equal|time)")
}

// applyBuildOverrides marks the flags the user actually set
func applyBuildOverrides(cmd *cobra.Command, o *buildOptions) {
	f := cmd.Flags()
	if f.Changed("top-k") {
		o.topK = &o.flagTopK
	}
	if f.Changed("source") {
		o.source = &o.flagSource
	}
	if f.Changed("weighting") {
		o.weighting = &o.flagWeighting
	}
	if f.Changed("max-weight") {
		o.maxWeight = &o.flagMaxWeight
	}
	if f.Changed("capital") {
		o.capital = &o.flagCapital
	}
	if f.Changed("round-shares") {
		o.roundShares = &o.flagRoundShares
	}
	if f.Changed("pastperf-mode") {
		o.pastPerfMode = &o.flagPastPerfMode
	}
}

// weightingConfig merges strategy values with flag overrides
func (o buildOptions) weightingConfig(strategy *strategyconfig.Config) contracts.WeightingConfig {
	wc := strategy.WeightingConfig()
	if o.topK != nil {
		wc.TopK = *o.topK
	}
	if o.source != nil {
		wc.ScoreSource = contracts.ScoreSource(*o.source)
	}
	if o.weighting != nil {
		wc.Weighting = contracts.WeightingMethod(*o.weighting)
	}
	if o.maxWeight != nil {
		wc.MaxWeight = contracts.Float(*o.maxWeight)
	}
	if o.capital != nil {
		wc.Capital = *o.capital
	}
	if o.roundShares != nil {
		wc.RoundShares = *o.roundShares
	}
	if o.pastPerfMode != nil {
		wc.PastPerfMode = contracts.PastPerfMode(*o.pastPerfMode)
	}
	return wc
}

// buildOutput is the JSON document of the build command
type buildOutput struct {
	Decision *strategyconfig.DecisionSnapshot `json:"decision"`
	Result   *contracts.PortfolioResult       `json:"result"`
}

func runBuild(ctx context.Context, out io.Writer, opts buildOptions) error {
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

	wc := opts.weightingConfig(rt.strategy)
	builder := portfolio.NewBuilder(rt.strategy.Constraints(), rt.strategy.BlendWeights(), rt.log)

	result, err := builder.Build(ctx, snap.Universe(), snap.GrowthCache(), wc)
	if err != nil {
		return fmt.Errorf("build portfolio: %w", err)
	}

	decision, err := strategyconfig.NewDecisionSnapshot(rt.strategy, rt.strategyYAML, gitCommit(), snapshotID(snap))
	if err != nil {
		return err
	}

	if opts.json {
		return printJSON(out, buildOutput{Decision: decision, Result: result})
	}
	printPortfolio(out, rt.strategy.Meta.StrategyID, decision, result)
	return nil
}

// snapshotID identifies the input data of a run; ad-hoc snapshots get a fresh id
func snapshotID(snap *marketdata.Snapshot) string {
	if snap.ID != "" {
		return snap.ID
	}
	return "adhoc-" + uuid.New().String()[:8]
}
