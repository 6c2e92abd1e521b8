package advisor

import (
	"fmt"
	"math"

	"github.com/wonny/yieldpilot/internal/contracts"
)

// Decision is the table outcome for one holding, before it is turned into
// dollars and shares.
type Decision struct {
	Action           contracts.Action
	TargetAllocation float64 // 0.0 ~ 1.0
	Confidence       int
	Reason           string
}

// rule is one row of a rank tier: multiplier and confidence for strong
// (|signal| = 2) and normal (|signal| = 1) signals.
type rule struct {
	strongMult, normalMult float64
	strongConf, normalConf int
	bound                  float64 // cap (buy) 또는 floor (sell)
}

var (
	buyTop10   = rule{strongMult: 1.6, normalMult: 1.5, strongConf: 95, normalConf: 90, bound: 0.25}
	buyTop25   = rule{strongMult: 1.35, normalMult: 1.25, strongConf: 80, normalConf: 75, bound: 0.20}
	buyOther   = rule{strongMult: 1.1, normalMult: 1.1, strongConf: 65, normalConf: 65, bound: 0.15}
	sellHeavy  = rule{strongMult: 0.3, normalMult: 0.4, strongConf: 90, normalConf: 85, bound: 0.02}
	sellMedium = rule{strongMult: 0.6, normalMult: 0.6, strongConf: 75, normalConf: 75, bound: 0.01}
)

// Allocation thresholds of the decision table
const (
	smallPositionAlloc = 0.05 // buy: 이 미만일 때만 INCREASE (rank > 25)
	heavySellAlloc     = 0.15
	mediumSellAlloc    = 0.05
	heavyHoldAlloc     = 0.12
	holdRankTier       = 15
	holdTopCap         = 0.18
)

func (r rule) pick(strong bool) (float64, int) {
	if strong {
		return r.strongMult, r.strongConf
	}
	return r.normalMult, r.normalConf
}

// Decide applies the rebalancing table keyed by (signal, rank tier,
// current allocation). A nil rank falls into the lowest tier.
// ⭐ SSOT: 리밸런싱 결정 테이블은 여기서만
func Decide(signal contracts.Signal, rank *int, current float64) Decision {
	signal = signal.Clamp()
	strong := signal == contracts.SignalStrongBuy || signal == contracts.SignalStrongSell

	switch {
	case signal.IsBuy():
		return decideBuy(signal, rank, current, strong)
	case signal.IsSell():
		return decideSell(signal, current, strong)
	default:
		return decideHold(rank, current)
	}
}

func decideBuy(signal contracts.Signal, rank *int, current float64, strong bool) Decision {
	tier, r, lowTier := "unranked", buyOther, true
	switch {
	case rank != nil && *rank <= 10:
		tier, r, lowTier = fmt.Sprintf("top-10 rank #%d", *rank), buyTop10, false
	case rank != nil && *rank <= 25:
		tier, r, lowTier = fmt.Sprintf("top-25 rank #%d", *rank), buyTop25, false
	case rank != nil:
		tier = fmt.Sprintf("rank #%d", *rank)
	}
	mult, conf := r.pick(strong)
	target := math.Min(current*mult, r.bound)

	if lowTier && current >= smallPositionAlloc {
		return Decision{
			Action:           contracts.ActionHold,
			TargetAllocation: target,
			Confidence:       conf,
			Reason:           fmt.Sprintf("%s signal but %s and already %.1f%% of the portfolio: hold (cap %.0f%%)", signal, tier, current*100, r.bound*100),
		}
	}
	return Decision{
		Action:           contracts.ActionIncrease,
		TargetAllocation: target,
		Confidence:       conf,
		Reason:           fmt.Sprintf("%s signal, %s: target %.1f%% (cap %.0f%%)", signal, tier, target*100, r.bound*100),
	}
}

func decideSell(signal contracts.Signal, current float64, strong bool) Decision {
	var r rule
	switch {
	case current > heavySellAlloc:
		r = sellHeavy
	case current > mediumSellAlloc:
		r = sellMedium
	default:
		return Decision{
			Action:           contracts.ActionSell,
			TargetAllocation: 0,
			Confidence:       80,
			Reason:           fmt.Sprintf("%s signal on a small %.1f%% position: exit", signal, current*100),
		}
	}

	mult, conf := r.pick(strong)
	target := math.Max(current*mult, r.bound)
	return Decision{
		Action:           contracts.ActionDecrease,
		TargetAllocation: target,
		Confidence:       conf,
		Reason:           fmt.Sprintf("%s signal: cut from %.1f%% to %.1f%%", signal, current*100, target*100),
	}
}

func decideHold(rank *int, current float64) Decision {
	switch {
	case rank != nil && *rank <= holdRankTier:
		return Decision{
			Action:           contracts.ActionHold,
			TargetAllocation: math.Min(current*1.1, holdTopCap),
			Confidence:       70,
			Reason:           fmt.Sprintf("neutral signal, strong rank #%d: hold, room to %.0f%%", *rank, holdTopCap*100),
		}
	case current > heavyHoldAlloc:
		return Decision{
			Action:           contracts.ActionDecrease,
			TargetAllocation: current * 0.9,
			Confidence:       65,
			Reason:           fmt.Sprintf("neutral signal on an overweight %.1f%% position: trim", current*100),
		}
	default:
		return Decision{
			Action:           contracts.ActionHold,
			TargetAllocation: current,
			Confidence:       60,
			Reason:           "neutral signal: hold",
		}
	}
}
