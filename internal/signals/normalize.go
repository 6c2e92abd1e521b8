package signals

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// neutralScore is used when a series carries no ranking information
const neutralScore = 50.0

// Scale0to100 linearly maps values onto [0, 100] using their own min/max.
// If every value is equal, each maps to 50. Inputs must be finite.
func Scale0to100(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	lo, hi := floats.Min(values), floats.Max(values)
	if hi == lo {
		for i := range out {
			out[i] = neutralScore
		}
		return out
	}

	span := hi - lo
	for i, v := range values {
		s := (v - lo) / span * 100
		// 부동소수 오차로 범위를 벗어나지 않도록 clamp
		out[i] = math.Min(100, math.Max(0, s))
	}
	return out
}

// ScaleSafe is Scale0to100 for series with gaps. Non-finite entries are
// filled with the smallest finite value present, so a gap never ranks above
// real data. A series with no finite value maps to 50 everywhere.
func ScaleSafe(values []float64) []float64 {
	if len(values) == 0 {
		return []float64{}
	}

	minFinite := math.Inf(1)
	found := false
	for _, v := range values {
		if isFinite(v) {
			found = true
			minFinite = math.Min(minFinite, v)
		}
	}

	if !found {
		out := make([]float64, len(values))
		for i := range out {
			out[i] = neutralScore
		}
		return out
	}

	filled := make([]float64, len(values))
	for i, v := range values {
		if isFinite(v) {
			filled[i] = v
		} else {
			filled[i] = minFinite
		}
	}
	return Scale0to100(filled)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ptrSeries converts optional values to a series with NaN gaps
func ptrSeries(values []*float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *v
		}
	}
	return out
}

// ScaleOptional normalizes optional values with ScaleSafe. The returned
// slice keeps nil where the input was nil or non-finite; filled is the scaled
// series including the conservative fill for those gaps.
func ScaleOptional(values []*float64) (scaled []*float64, filled []float64) {
	filled = ScaleSafe(ptrSeries(values))
	scaled = make([]*float64, len(values))
	for i, v := range values {
		if v != nil && isFinite(*v) {
			s := filled[i]
			scaled[i] = &s
		}
	}
	return scaled, filled
}
