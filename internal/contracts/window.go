package contracts

// ReturnWindow holds the four trailing cumulative returns of an instrument.
// A nil horizon means the data was insufficient; zero is a valid return.
type ReturnWindow struct {
	R4  *float64 `json:"r4,omitempty" yaml:"r4,omitempty"`
	R13 *float64 `json:"r13,omitempty" yaml:"r13,omitempty"`
	R26 *float64 `json:"r26,omitempty" yaml:"r26,omitempty"`
	R52 *float64 `json:"r52,omitempty" yaml:"r52,omitempty"`
}

// Complete reports whether all four horizons are present
func (w ReturnWindow) Complete() bool {
	return w.R4 != nil && w.R13 != nil && w.R26 != nil && w.R52 != nil
}

// IsEmpty reports whether no horizon is present
func (w ReturnWindow) IsEmpty() bool {
	return w.R4 == nil && w.R13 == nil && w.R26 == nil && w.R52 == nil
}

// Values returns r4, r13, r26, r52. Only valid when Complete() is true.
func (w ReturnWindow) Values() (r4, r13, r26, r52 float64) {
	return *w.R4, *w.R13, *w.R26, *w.R52
}

// NewReturnWindow builds a complete window
func NewReturnWindow(r4, r13, r26, r52 float64) ReturnWindow {
	return ReturnWindow{R4: Float(r4), R13: Float(r13), R26: Float(r26), R52: Float(r52)}
}

// GrowthCache is the reinvestment-growth cache keyed by ticker
type GrowthCache map[string]ReturnWindow
