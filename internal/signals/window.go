package signals

import (
	"fmt"

	"github.com/wonny/yieldpilot/internal/contracts"
)

// WindowSource tells where a return window came from
type WindowSource string

const (
	SourceGrowthCache WindowSource = "growth_cache"
	SourceMetadata    WindowSource = "metadata"
	SourceNone        WindowSource = "none"
)

// Exclusion reasons (Universe.Excluded values)
const (
	ReasonNoPrice          = "no price"
	ReasonShortHistory     = "insufficient trading days"
	ReasonIncompleteWindow = "incomplete return windows"
	ReasonDuplicateTicker  = "duplicate ticker"
)

// ExtractWindow returns the r4/r13/r26/r52 window of an instrument.
// The growth cache wins when it has an entry for the ticker; otherwise the
// instrument's raw metadata is used. Missing horizons stay nil.
func ExtractWindow(inst *contracts.Instrument, cache contracts.GrowthCache) (contracts.ReturnWindow, WindowSource) {
	if w, ok := cache[inst.Ticker]; ok {
		return w, SourceGrowthCache
	}
	if !inst.Windows.IsEmpty() {
		return inst.Windows, SourceMetadata
	}
	return contracts.ReturnWindow{}, SourceNone
}

// CheckEligibility returns a non-empty exclusion reason when the instrument
// cannot take part in scoring at all.
func CheckEligibility(inst *contracts.Instrument, minTradingDays int) string {
	if !inst.HasPrice() {
		return ReasonNoPrice
	}
	// 이력 미상(nil)은 제외하지 않음
	if minTradingDays > 0 && inst.TradingDays != nil && *inst.TradingDays < minTradingDays {
		return fmt.Sprintf("%s (%d < %d)", ReasonShortHistory, *inst.TradingDays, minTradingDays)
	}
	return ""
}
