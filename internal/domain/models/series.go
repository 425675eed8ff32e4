package models

// BandPoint is one time step of the Monte Carlo fan chart.
type BandPoint struct {
	Day    int     `json:"day"`
	P5     float64 `json:"p5"`
	Median float64 `json:"median"`
	P95    float64 `json:"p95"`
}

// ContributionEntry is one bar of the risk-contribution chart.
type ContributionEntry struct {
	Ticker       string  `json:"ticker"`
	Contribution float64 `json:"contribution"`
}

// DerivedSeries holds chart-ready series recomputed from the raw payloads.
// It is transient display state; the raw responses stay untouched.
type DerivedSeries struct {
	MonteCarloBand     []BandPoint         `json:"monte_carlo_band,omitempty"`
	Frontier           []FrontierPoint     `json:"frontier,omitempty"`
	RiskRanking        []ContributionEntry `json:"risk_ranking,omitempty"`
	DisplayAllocations []Allocation        `json:"display_allocations,omitempty"`
}
