package contracts

// ScoreSource selects which score ranks candidates
type ScoreSource string

const (
	SourceTrend    ScoreSource = "trend"
	SourceRet1Y    ScoreSource = "ret1y"
	SourcePastPerf ScoreSource = "pastperf"
	SourceBlend    ScoreSource = "blend"
)

// IsValid checks the score source against the known set
func (s ScoreSource) IsValid() bool {
	switch s {
	case SourceTrend, SourceRet1Y, SourcePastPerf, SourceBlend:
		return true
	}
	return false
}

// BadgeColor is the display color of a momentum badge
type BadgeColor string

const (
	ColorGreen  BadgeColor = "green"
	ColorRed    BadgeColor = "red"
	ColorYellow BadgeColor = "yellow"
)

// Badge is the directional classification of the three momentum deltas
type Badge struct {
	Arrows string     `json:"arrows"` // e.g. "↑↑↔"
	Label  string     `json:"label"`
	Color  BadgeColor `json:"color"`
}

// LadderDetail holds the per-period rates and momentum deltas behind a trend score
type LadderDetail struct {
	P4  float64 `json:"p4"`
	P13 float64 `json:"p13"`
	P26 float64 `json:"p26"`
	P52 float64 `json:"p52"`
	D1  float64 `json:"d1"` // p4 - p13
	D2  float64 `json:"d2"` // p13 - p26
	D3  float64 `json:"d3"` // p26 - p52
}

// RungRates holds the implied weekly compounding rate of each non-overlapping rung
type RungRates struct {
	W0to4   float64 `json:"w_0_4"`
	W5to13  float64 `json:"w_5_13"`
	W14to26 float64 `json:"w_14_26"`
	W27to52 float64 `json:"w_27_52"`
}

// ScoreRecord carries every score computed for one instrument
// ⭐ SSOT: 스코어링 → 선택 → 배분 단계 간 점수 전달
type ScoreRecord struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name,omitempty"`
	Strategy string `json:"strategy,omitempty"`

	Price      float64      `json:"price"`
	Window     ReturnWindow `json:"window"`
	Volatility *float64     `json:"volatility,omitempty"`

	// Raw scores
	TrendRaw    *float64 `json:"trend_raw,omitempty"`
	PastPerfRaw *float64 `json:"pastperf_raw,omitempty"`
	Ret1Y       *float64 `json:"ret1y,omitempty"`

	// 0 ~ 100 normalized
	TrendScore    *float64 `json:"trend_score,omitempty"`
	Ret1YScore    *float64 `json:"ret1y_score,omitempty"`
	PastPerfScore *float64 `json:"pastperf_score,omitempty"`
	BlendScore    *float64 `json:"blend_score,omitempty"` // 0.70*trend + 0.30*ret1y

	Ladder *LadderDetail `json:"ladder,omitempty"`
	Rungs  *RungRates    `json:"rungs,omitempty"`
	Badge  *Badge        `json:"badge,omitempty"`
}

// Score returns the normalized score for a source, or nil if undefined
func (r *ScoreRecord) Score(source ScoreSource) *float64 {
	switch source {
	case SourceTrend:
		return r.TrendScore
	case SourceRet1Y:
		return r.Ret1YScore
	case SourcePastPerf:
		return r.PastPerfScore
	case SourceBlend:
		return r.BlendScore
	default:
		return nil
	}
}
