package portfolio

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/wonny/yieldpilot/internal/contracts"
)

// MaxCapRounds bounds the cap-and-redistribute loop. With maxWeight < 1/n the
// cap cannot be met and the loop stops early; the final renormalization then
// lifts weights back above the cap. This bound is part of the contract.
const MaxCapRounds = 10

// capTolerance absorbs float noise when comparing against the cap
const capTolerance = 1e-12

// RawWeights builds unnormalized weights for the selected records
func RawWeights(method contracts.WeightingMethod, selected []contracts.ScoreRecord) ([]float64, error) {
	w := make([]float64, len(selected))

	switch method {
	case contracts.WeightEqual:
		for i := range w {
			w[i] = 1
		}
		return w, nil

	case contracts.WeightReturn:
		for i, r := range selected {
			if r.Ret1Y != nil && *r.Ret1Y > 0 {
				w[i] = *r.Ret1Y
			}
		}

	case contracts.WeightRiskParity:
		for i, r := range selected {
			if r.Volatility != nil && *r.Volatility > 0 {
				w[i] = 1 / *r.Volatility
			}
		}

	default:
		return nil, &contracts.ConfigError{
			Field:   "weighting",
			Message: fmt.Sprintf("%q is not one of equal, return, risk_parity", method),
			Err:     contracts.ErrUnknownWeighting,
		}
	}

	// 전부 0이면 동일 비중으로 fallback
	if len(w) > 0 && floats.Sum(w) == 0 {
		for i := range w {
			w[i] = 1
		}
	}
	return w, nil
}

// CapAndNormalize turns raw weights into non-negative weights summing to 1,
// optionally capped at maxWeight (see capAndNormalize).
func CapAndNormalize(weights []float64, maxWeight *float64) []float64 {
	w, _ := capAndNormalize(weights, maxWeight)
	return w
}

// capAndNormalize clamps negatives, normalizes, then for at most MaxCapRounds
// pins entries above the cap to exactly the cap and hands the excess to the
// uncapped entries in proportion to their current weight. A pinned entry stays
// pinned in later rounds. It reports whether the cap still holds after the
// final renormalization.
func capAndNormalize(weights []float64, maxWeight *float64) ([]float64, bool) {
	return capRounds(weights, maxWeight, MaxCapRounds)
}

func capRounds(weights []float64, maxWeight *float64, rounds int) ([]float64, bool) {
	n := len(weights)
	w := make([]float64, n)
	if n == 0 {
		return w, true
	}

	for i, v := range weights {
		if v > 0 {
			w[i] = v
		}
	}

	total := floats.Sum(w)
	if total == 0 {
		for i := range w {
			w[i] = 1 / float64(n)
		}
	} else {
		floats.Scale(1/total, w)
	}

	var mw float64
	capping := maxWeight != nil && *maxWeight > 0 && *maxWeight < 1
	if capping {
		mw = *maxWeight
		capped := make([]bool, n)

		for round := 0; round < rounds; round++ {
			excess := 0.0
			for i := range w {
				if w[i] > mw+capTolerance {
					excess += w[i] - mw
					w[i] = mw
					capped[i] = true
				}
			}
			if excess == 0 {
				break
			}

			free := 0.0
			for i := range w {
				if !capped[i] {
					free += w[i]
				}
			}
			if free <= 0 {
				break
			}
			for i := range w {
				if !capped[i] {
					w[i] += excess * w[i] / free
				}
			}
		}
	}

	if sum := floats.Sum(w); sum > 0 {
		floats.Scale(1/sum, w)
	}
	if capping {
		return w, floats.Max(w) <= mw+1e-9
	}
	return w, true
}
