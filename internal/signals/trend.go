package signals

import (
	"math"
	"strings"

	"github.com/wonny/yieldpilot/internal/contracts"
)

// BadgeEpsilon is the dead band of the badge arrows
const BadgeEpsilon = 0.0005

// Ladder-Delta weights
const (
	wP4  = 0.60
	wP13 = 0.25
	wP26 = 0.10
	wP52 = 0.05

	wAccel1 = 1.00 // pos(d1)
	wAccel2 = 0.70 // pos(d2)
	wAccel3 = 0.50 // pos(d3)
	wDecel  = 0.50 // neg(d1)+neg(d2)+neg(d3)
)

const (
	arrowUp   = "↑"
	arrowDown = "↓"
	arrowFlat = "↔"
)

// LadderTrendRaw computes the Ladder-Delta trend score from cumulative
// returns over 4/13/26/52 weeks. Each return is turned into a weekly rate;
// the score is a weighted sum of those rates plus a bonus for accelerating
// (and a penalty for decelerating) momentum between adjacent horizons.
// eps is the noise threshold applied to the deltas before bonus/penalty.
func LadderTrendRaw(r4, r13, r26, r52, eps float64) (float64, contracts.LadderDetail) {
	d := contracts.LadderDetail{
		P4:  r4 / 4,
		P13: r13 / 13,
		P26: r26 / 26,
		P52: r52 / 52,
	}
	d.D1 = d.P4 - d.P13
	d.D2 = d.P13 - d.P26
	d.D3 = d.P26 - d.P52

	pos := func(x float64) float64 { return math.Max(0, x-eps) }
	neg := func(x float64) float64 { return math.Max(0, -x-eps) }

	raw := wP4*d.P4 + wP13*d.P13 + wP26*d.P26 + wP52*d.P52 +
		wAccel1*pos(d.D1) + wAccel2*pos(d.D2) + wAccel3*pos(d.D3) -
		wDecel*(neg(d.D1)+neg(d.D2)+neg(d.D3))

	return raw, d
}

// LadderBadge classifies the three deltas into arrows and a label/color
func LadderBadge(d contracts.LadderDetail) contracts.Badge {
	var b strings.Builder
	ups, downs := 0, 0
	for _, delta := range []float64{d.D1, d.D2, d.D3} {
		switch {
		case delta > BadgeEpsilon:
			b.WriteString(arrowUp)
			ups++
		case delta < -BadgeEpsilon:
			b.WriteString(arrowDown)
			downs++
		default:
			b.WriteString(arrowFlat)
		}
	}

	badge := contracts.Badge{Arrows: b.String()}
	switch {
	case ups == 3:
		badge.Label, badge.Color = "Strong uptrend", contracts.ColorGreen
	case ups == 2 && downs == 0:
		badge.Label, badge.Color = "Uptrend (moderate)", contracts.ColorGreen
	case downs == 3:
		badge.Label, badge.Color = "Strong downtrend", contracts.ColorRed
	case downs == 2 && ups == 0:
		badge.Label, badge.Color = "Downtrend (moderate)", contracts.ColorRed
	default:
		badge.Label, badge.Color = "Mixed / choppy", contracts.ColorYellow
	}
	return badge
}

// TrendFromWindow scores a complete window; ok is false when any horizon is missing
func TrendFromWindow(w contracts.ReturnWindow, eps float64) (raw float64, detail contracts.LadderDetail, badge contracts.Badge, ok bool) {
	if !w.Complete() {
		return 0, contracts.LadderDetail{}, contracts.Badge{}, false
	}
	r4, r13, r26, r52 := w.Values()
	raw, detail = LadderTrendRaw(r4, r13, r26, r52, eps)
	if !isFinite(raw) {
		return 0, contracts.LadderDetail{}, contracts.Badge{}, false
	}
	return raw, detail, LadderBadge(detail), true
}
