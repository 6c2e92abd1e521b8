package signals

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/yieldpilot/internal/contracts"
)

func TestScale0to100(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []float64
	}{
		{"empty", []float64{}, []float64{}},
		{"single", []float64{0.3}, []float64{50}},
		{"all equal", []float64{2, 2, 2}, []float64{50, 50, 50}},
		{"linear", []float64{0, 5, 10}, []float64{0, 50, 100}},
		{"negative", []float64{-0.2, -0.1, 0.2}, []float64{0, 25, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scale0to100(tt.values)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.InDelta(t, tt.want[i], got[i], 1e-9)
			}
		})
	}
}

func TestScale0to100_Range(t *testing.T) {
	values := []float64{0.013, -0.2, 1e-9, 0.5, 0.49999, -0.19999, 7.25}
	for _, s := range Scale0to100(values) {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 100.0)
	}
}

func TestScaleSafe(t *testing.T) {
	t.Run("fills gaps with the minimum finite value", func(t *testing.T) {
		got := ScaleSafe([]float64{math.NaN(), 1, 3, math.Inf(1)})
		assert.Equal(t, []float64{0, 0, 100, 0}, got)
	})

	t.Run("no finite values maps to 50", func(t *testing.T) {
		got := ScaleSafe([]float64{math.NaN(), math.Inf(-1)})
		assert.Equal(t, []float64{50, 50}, got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, ScaleSafe(nil))
	})
}

func TestScaleOptional(t *testing.T) {
	values := []*float64{contracts.Float(0.1), nil, contracts.Float(0.3), contracts.Float(math.NaN())}

	scaled, filled := ScaleOptional(values)

	require.Len(t, scaled, 4)
	assert.InDelta(t, 0, *scaled[0], 1e-9)
	assert.Nil(t, scaled[1])
	assert.InDelta(t, 100, *scaled[2], 1e-9)
	assert.Nil(t, scaled[3])
	assert.InDelta(t, 0, filled[1], 1e-9, "gap is filled with the minimum")
}
