package models

import "time"

// Allocation is one optimized position. weight_percent is weight*100 as
// reported by the service.
type Allocation struct {
	Ticker         string  `json:"ticker"`
	Weight         float64 `json:"weight"`
	WeightPercent  float64 `json:"weight_percent"`
	ExpectedReturn float64 `json:"expected_return"`
}

// PortfolioMetrics summarizes the optimized portfolio.
type PortfolioMetrics struct {
	ExpectedAnnualReturn float64 `json:"expected_annual_return"`
	AnnualVolatility     float64 `json:"annual_volatility"`
	SharpeRatio          float64 `json:"sharpe_ratio"`
}

// FrontierPoint is one efficient-frontier sample. Points arrive in no
// particular order.
type FrontierPoint struct {
	Return     float64 `json:"return"`
	Volatility float64 `json:"volatility"`
	Sharpe     float64 `json:"sharpe"`
}

// WeightConstraints bound per-asset weights during optimization.
type WeightConstraints struct {
	MinWeight float64 `json:"min_weight"`
	MaxWeight float64 `json:"max_weight"`
}

// OptimizationResponse is the payload of POST /optimization/optimize.
// Weights is the exact mapping the risk phase must consume.
type OptimizationResponse struct {
	OptimizationTimestamp time.Time          `json:"optimization_timestamp"`
	ObjectiveUsed         Objective          `json:"objective_used"`
	Tickers               []string           `json:"tickers"`
	Allocations           []Allocation       `json:"allocations"`
	Weights               map[string]float64 `json:"weights"`
	Metrics               PortfolioMetrics   `json:"metrics"`
	SentimentViewsUsed    bool               `json:"sentiment_views_used"`
	ConstraintsApplied    *WeightConstraints `json:"constraints_applied,omitempty"`
	EfficientFrontier     []FrontierPoint    `json:"efficient_frontier"`
}
