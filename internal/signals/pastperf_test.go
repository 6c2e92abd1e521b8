package signals

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/yieldpilot/internal/contracts"
)

func TestWeeklyCAGR(t *testing.T) {
	for _, weeks := range []float64{1, 4, 9, 13, 26, 52} {
		assert.Equal(t, -1.0, WeeklyCAGR(-1, weeks))
		assert.Equal(t, -1.0, WeeklyCAGR(-1.5, weeks))
	}

	assert.Equal(t, 0.0, WeeklyCAGR(0, 13))
	assert.InDelta(t, math.Pow(1.05, 0.25)-1, WeeklyCAGR(0.05, 4), 1e-15)
}

func TestPastPerfFlatFromRungs_Zero(t *testing.T) {
	for _, mode := range []contracts.PastPerfMode{contracts.PastPerfEqual, contracts.PastPerfTime} {
		raw, rungs := PastPerfFlatFromRungs(0, 0, 0, 0, mode)
		assert.Equal(t, 0.0, raw)
		assert.Equal(t, contracts.RungRates{}, rungs)
	}
}

func TestPastPerfFromWindow(t *testing.T) {
	w := contracts.NewReturnWindow(0.02, 0.05, 0.10, 0.20)

	equal, rungs, ok := PastPerfFromWindow(w, contracts.PastPerfEqual)
	require.True(t, ok)
	assert.InDelta(t, math.Pow(1.02, 1.0/4)-1, rungs.W0to4, 1e-12)
	assert.InDelta(t, math.Pow(1.05/1.02, 1.0/9)-1, rungs.W5to13, 1e-12)
	assert.InDelta(t, math.Pow(1.10/1.05, 1.0/13)-1, rungs.W14to26, 1e-12)
	assert.InDelta(t, math.Pow(1.20/1.10, 1.0/26)-1, rungs.W27to52, 1e-12)
	assert.InDelta(t, 0.0037815, equal, 1e-6)

	timeWeighted, _, ok := PastPerfFromWindow(w, contracts.PastPerfTime)
	require.True(t, ok)
	assert.InDelta(t, 0.0035124, timeWeighted, 1e-6)
}

func TestPastPerfFromWindow_Undefined(t *testing.T) {
	_, _, ok := PastPerfFromWindow(contracts.ReturnWindow{R4: contracts.Float(0.01)}, contracts.PastPerfEqual)
	assert.False(t, ok, "incomplete window")

	_, _, ok = PastPerfFromWindow(contracts.NewReturnWindow(-1, -0.5, -0.5, -0.5), contracts.PastPerfEqual)
	assert.False(t, ok, "total loss in the 4w window leaves later rungs undefined")
}

func TestPastPerfFromWindow_TotalLossFloor(t *testing.T) {
	// 52주 누적 -100% → 마지막 rung은 -1로 floor
	_, rungs, ok := PastPerfFromWindow(contracts.NewReturnWindow(0, 0, 0, -1), contracts.PastPerfEqual)
	require.True(t, ok)
	assert.Equal(t, -1.0, rungs.W27to52)
}
