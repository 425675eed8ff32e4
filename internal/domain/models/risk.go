package models

import "time"

// VaRResult is the value-at-risk estimate for one confidence level.
type VaRResult struct {
	ConfidenceLevel   float64 `json:"confidence_level"`
	VaRPercent        float64 `json:"var_percent"`
	VaRAmount         float64 `json:"var_amount"`
	ExpectedShortfall float64 `json:"expected_shortfall"`
	ESAmount          float64 `json:"es_amount"`
}

// RiskMetrics aggregates the distributional risk measures of the portfolio.
type RiskMetrics struct {
	DailyVolatility  float64     `json:"daily_volatility"`
	AnnualVolatility float64     `json:"annual_volatility"`
	VaRResults       []VaRResult `json:"var_results"`
	MaxDrawdown      float64     `json:"max_drawdown"`
	AvgDrawdown      float64     `json:"avg_drawdown"`
	Skewness         float64     `json:"skewness"`
	Kurtosis         float64     `json:"kurtosis"`
	ProbLoss1Pct     float64     `json:"prob_loss_1_percent"`
	ProbLoss5Pct     float64     `json:"prob_loss_5_percent"`
	ProbLoss10Pct    float64     `json:"prob_loss_10_percent"`
}

// MonteCarloPath is one simulated trajectory of portfolio values over time,
// labeled with the percentile it represents.
type MonteCarloPath struct {
	Percentile string    `json:"percentile"`
	Values     []float64 `json:"values"`
}

// MonteCarloResults carries simulation aggregates plus sample paths for charts.
type MonteCarloResults struct {
	NumSimulations   int              `json:"num_simulations"`
	SimulationDays   int              `json:"simulation_days"`
	MeanFinalValue   float64          `json:"mean_final_value"`
	MedianFinalValue float64          `json:"median_final_value"`
	StdFinalValue    float64          `json:"std_final_value"`
	MinFinalValue    float64          `json:"min_final_value"`
	MaxFinalValue    float64          `json:"max_final_value"`
	Percentile5      float64          `json:"percentile_5"`
	Percentile10     float64          `json:"percentile_10"`
	Percentile25     float64          `json:"percentile_25"`
	Percentile75     float64          `json:"percentile_75"`
	Percentile90     float64          `json:"percentile_90"`
	Percentile95     float64          `json:"percentile_95"`
	ProbProfit       float64          `json:"prob_profit"`
	ProbLossGt10     float64          `json:"prob_loss_gt_10"`
	ProbLossGt20     float64          `json:"prob_loss_gt_20"`
	ProbGainGt10     float64          `json:"prob_gain_gt_10"`
	ProbGainGt20     float64          `json:"prob_gain_gt_20"`
	SamplePaths      []MonteCarloPath `json:"sample_paths"`
}

// StressScenario is the impact of one named historical shock.
type StressScenario struct {
	ScenarioName           string  `json:"scenario_name"`
	Description            string  `json:"description"`
	PortfolioImpactPercent float64 `json:"portfolio_impact_percent"`
	PortfolioImpactAmount  float64 `json:"portfolio_impact_amount"`
	VaRUnderStress         float64 `json:"var_under_stress"`
}

// RiskResponse is the payload of POST /risk/analyze. RiskContribution maps
// ticker to percentage of total risk; neither sorted nor guaranteed to sum
// exactly to 100.
type RiskResponse struct {
	AnalysisTimestamp time.Time          `json:"analysis_timestamp"`
	PortfolioValue    float64            `json:"portfolio_value"`
	Tickers           []string           `json:"tickers"`
	Weights           map[string]float64 `json:"weights"`
	RiskMetrics       RiskMetrics        `json:"risk_metrics"`
	MonteCarlo        MonteCarloResults  `json:"monte_carlo"`
	StressScenarios   []StressScenario   `json:"stress_scenarios"`
	RiskContribution  map[string]float64 `json:"risk_contribution"`
}
