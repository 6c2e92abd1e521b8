package selection

import (
	"context"
	"sort"

	"github.com/wonny/yieldpilot/internal/contracts"
	"github.com/wonny/yieldpilot/internal/signals"
	"github.com/wonny/yieldpilot/pkg/logger"
)

// Selector implements S2: normalization, blending and top-K selection
// ⭐ SSOT: 후보 선택 로직은 여기서만
type Selector struct {
	blend  BlendWeights
	logger *logger.Logger
}

// BlendWeights defines how the blend score mixes the normalized scores
type BlendWeights struct {
	Trend float64 // 기본: 0.70
	Ret1Y float64 // 기본: 0.30
}

// DefaultBlendWeights returns the default 70/30 trend/1y mix
func DefaultBlendWeights() BlendWeights {
	return BlendWeights{Trend: 0.70, Ret1Y: 0.30}
}

// ValidateWeights checks if weights sum to 1.0
func (w BlendWeights) ValidateWeights() bool {
	sum := w.Trend + w.Ret1Y
	return w.Trend >= 0 && w.Ret1Y >= 0 && sum >= 0.99 && sum <= 1.01
}

// NewSelector creates a new selector
func NewSelector(blend BlendWeights, log *logger.Logger) *Selector {
	return &Selector{
		blend:  blend,
		logger: log.Component("selector"),
	}
}

// Normalize fills the 0~100 score fields of records in place.
// trend/ret1y/pastperf scores exist only where the raw value exists. The
// blend exists wherever the trend exists; a missing 1y return takes part
// with the conservative min-fill of ScaleSafe.
func (s *Selector) Normalize(records []contracts.ScoreRecord) {
	n := len(records)
	trendRaw := make([]*float64, n)
	ret1yRaw := make([]*float64, n)
	pastRaw := make([]*float64, n)
	for i := range records {
		trendRaw[i] = records[i].TrendRaw
		ret1yRaw[i] = records[i].Ret1Y
		pastRaw[i] = records[i].PastPerfRaw
	}

	trend, _ := signals.ScaleOptional(trendRaw)
	ret1y, ret1yFilled := signals.ScaleOptional(ret1yRaw)
	past, _ := signals.ScaleOptional(pastRaw)

	for i := range records {
		r := &records[i]
		r.TrendScore = trend[i]
		r.Ret1YScore = ret1y[i]
		r.PastPerfScore = past[i]
		r.BlendScore = nil
		if trend[i] != nil {
			blend := s.blend.Trend*(*trend[i]) + s.blend.Ret1Y*ret1yFilled[i]
			r.BlendScore = &blend
		}
	}
}

// Select normalizes records and returns the top-K by the configured score
// source. An empty result (no record has that score) is not an error.
func (s *Selector) Select(ctx context.Context, records []contracts.ScoreRecord, cfg contracts.WeightingConfig) ([]contracts.ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !cfg.ScoreSource.IsValid() {
		return nil, &contracts.ConfigError{Field: "score_source", Message: string(cfg.ScoreSource), Err: contracts.ErrUnknownScoreSource}
	}

	s.Normalize(records)

	candidates := SortBySource(records, cfg.ScoreSource)
	if len(candidates) == 0 {
		s.logger.WithFields(map[string]interface{}{
			"stage":  contracts.StageSelection.ShortName(),
			"source": cfg.ScoreSource,
			"input":  len(records),
		}).Warn("No valid candidates for score source")
		return []contracts.ScoreRecord{}, nil
	}

	topK := cfg.TopK
	if topK < 1 {
		topK = 1
	}
	if topK > len(candidates) {
		topK = len(candidates)
	}
	selected := candidates[:topK]

	s.logger.WithFields(map[string]interface{}{
		"stage":     contracts.StageSelection.ShortName(),
		"source":    cfg.ScoreSource,
		"valid":     len(candidates),
		"selected":  len(selected),
		"top":       selected[0].Ticker,
		"top_score": *selected[0].Score(cfg.ScoreSource),
	}).Info("Selection completed")

	return selected, nil
}

// SortBySource returns a copy of the records that have the source score,
// sorted descending by it (ties broken by ticker).
func SortBySource(records []contracts.ScoreRecord, source contracts.ScoreSource) []contracts.ScoreRecord {
	out := make([]contracts.ScoreRecord, 0, len(records))
	for _, r := range records {
		if r.Score(source) != nil {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		si, sj := *out[i].Score(source), *out[j].Score(source)
		if si != sj {
			return si > sj
		}
		return out[i].Ticker < out[j].Ticker
	})
	return out
}

// Rank normalizes records and assigns 1-based ranks by the score source.
// Records without that score are not ranked.
func (s *Selector) Rank(records []contracts.ScoreRecord, source contracts.ScoreSource) []contracts.RankedTicker {
	s.Normalize(records)
	sorted := SortBySource(records, source)

	ranked := make([]contracts.RankedTicker, len(sorted))
	for i, r := range sorted {
		ranked[i] = contracts.RankedTicker{Ticker: r.Ticker, Rank: i + 1}
	}
	return ranked
}

// Snapshot freezes a ranking into a RankingSnapshot
func Snapshot(ranked []contracts.RankedTicker) contracts.RankingSnapshot {
	m := make(map[string]int, len(ranked))
	for _, r := range ranked {
		m[r.Ticker] = r.Rank
	}
	return contracts.NewRankingSnapshot(m)
}
