package signals

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/wonny/yieldpilot/internal/contracts"
)

// rungWeeks is the length of each non-overlapping rung: weeks 0-4, 5-13, 14-26, 27-52
var rungWeeks = []float64{4, 9, 13, 26}

// WeeklyCAGR converts a net return over weeks into an implied weekly
// compounding rate. Returns at or below -100% floor at -1.
func WeeklyCAGR(r, weeks float64) float64 {
	if r <= -1 {
		return -1.0
	}
	return math.Pow(1+r, 1/weeks) - 1
}

// PastPerfFlatFromRungs averages the weekly rates of four rung net returns.
// mode equal takes the simple mean, mode time weights each rung by its weeks.
func PastPerfFlatFromRungs(r0to4, r5to13, r14to26, r27to52 float64, mode contracts.PastPerfMode) (float64, contracts.RungRates) {
	rates := []float64{
		WeeklyCAGR(r0to4, rungWeeks[0]),
		WeeklyCAGR(r5to13, rungWeeks[1]),
		WeeklyCAGR(r14to26, rungWeeks[2]),
		WeeklyCAGR(r27to52, rungWeeks[3]),
	}
	rungs := contracts.RungRates{
		W0to4:   rates[0],
		W5to13:  rates[1],
		W14to26: rates[2],
		W27to52: rates[3],
	}

	var weights []float64
	if mode == contracts.PastPerfTime {
		weights = rungWeeks
	}
	return stat.Mean(rates, weights), rungs
}

// PastPerfFromWindow splits the overlapping cumulative windows into rungs by
// dividing out the earlier window's growth, then scores them.
// ok is false when a horizon is missing or an earlier growth factor is not
// positive (a total loss leaves the later rungs undefined).
func PastPerfFromWindow(w contracts.ReturnWindow, mode contracts.PastPerfMode) (float64, contracts.RungRates, bool) {
	if !w.Complete() {
		return 0, contracts.RungRates{}, false
	}
	r4, r13, r26, r52 := w.Values()
	g4, g13, g26, g52 := 1+r4, 1+r13, 1+r26, 1+r52
	if g4 <= 0 || g13 <= 0 || g26 <= 0 {
		return 0, contracts.RungRates{}, false
	}

	raw, rungs := PastPerfFlatFromRungs(g4-1, g13/g4-1, g26/g13-1, g52/g26-1, mode)
	if !isFinite(raw) {
		return 0, contracts.RungRates{}, false
	}
	return raw, rungs, true
}
