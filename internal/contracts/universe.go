package contracts

import "sort"

// Instrument is one entry of the investable universe, as delivered by the
// upstream data collaborators. Every metric is optional: nil means "unknown",
// never zero.
// ⭐ SSOT: 유니버스 종목 메타데이터
type Instrument struct {
	Ticker   string `json:"ticker" yaml:"ticker"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Strategy string `json:"strategy,omitempty" yaml:"strategy,omitempty"` // covered call, dividend growth, ...

	Price       *float64 `json:"price,omitempty" yaml:"price,omitempty"`
	Return1Y    *float64 `json:"return_1y,omitempty" yaml:"return_1y,omitempty"`   // trailing 1y total return (fraction)
	Volatility  *float64 `json:"volatility,omitempty" yaml:"volatility,omitempty"` // annualized
	MaxDrawdown *float64 `json:"max_drawdown,omitempty" yaml:"max_drawdown,omitempty"`
	RiskScore   *float64 `json:"risk_score,omitempty" yaml:"risk_score,omitempty"` // 0 ~ 100
	Yield       *float64 `json:"yield,omitempty" yaml:"yield,omitempty"`           // fraction, 0.08 = 8%
	TradingDays *int     `json:"trading_days,omitempty" yaml:"trading_days,omitempty"`

	// Raw metadata windows, used when the growth cache has no entry
	Windows ReturnWindow `json:"windows,omitempty" yaml:"windows,omitempty"`
}

// HasPrice reports whether a positive latest price is known
func (i *Instrument) HasPrice() bool {
	return i.Price != nil && *i.Price > 0
}

// Universe is the instrument set of one invocation plus the tickers that
// were dropped for data gaps.
type Universe struct {
	Instruments []Instrument      `json:"instruments"`
	Excluded    map[string]string `json:"excluded,omitempty"` // ticker: 사유
}

// NewUniverse builds a universe sorted by ticker
func NewUniverse(instruments []Instrument) *Universe {
	sorted := make([]Instrument, len(instruments))
	copy(sorted, instruments)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Ticker < sorted[j].Ticker
	})
	return &Universe{
		Instruments: sorted,
		Excluded:    make(map[string]string),
	}
}

// Get finds an instrument by ticker
func (u *Universe) Get(ticker string) (*Instrument, bool) {
	for i := range u.Instruments {
		if u.Instruments[i].Ticker == ticker {
			return &u.Instruments[i], true
		}
	}
	return nil, false
}

// Contains checks if a ticker is in the universe
func (u *Universe) Contains(ticker string) bool {
	_, ok := u.Get(ticker)
	return ok
}

// Exclude records a data-gap exclusion
func (u *Universe) Exclude(ticker, reason string) {
	if u.Excluded == nil {
		u.Excluded = make(map[string]string)
	}
	u.Excluded[ticker] = reason
}

// IsExcluded checks if a ticker is excluded with reason
func (u *Universe) IsExcluded(ticker string) (bool, string) {
	reason, exists := u.Excluded[ticker]
	return exists, reason
}

// Count returns the number of instruments
func (u *Universe) Count() int {
	return len(u.Instruments)
}

// Float returns a pointer to v, for populating optional fields
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v
func Int(v int) *int {
	return &v
}
