package models

import "time"

// Phase is the orchestrator state for a single analysis run.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseSentiment    Phase = "sentiment"
	PhaseOptimization Phase = "optimization"
	PhaseRisk         Phase = "risk"
	PhaseComplete     Phase = "complete"
	PhaseError        Phase = "error"
)

// Terminal reports whether the phase ends a run.
func (p Phase) Terminal() bool {
	return p == PhaseComplete || p == PhaseError
}

// Objective selects the optimization target on the allocator service.
type Objective string

const (
	ObjectiveMaxSharpe     Objective = "max_sharpe"
	ObjectiveMinVolatility Objective = "min_volatility"
)

// RunRequest starts one analysis run over a basket of tickers.
type RunRequest struct {
	Tickers        []string  `json:"tickers" validate:"required,min=2,max=10,unique"`
	PortfolioValue float64   `json:"portfolio_value" default:"100000" validate:"gt=0"`
	Objective      Objective `json:"objective" default:"max_sharpe" validate:"oneof=max_sharpe min_volatility"`
	UseSentiment   bool      `json:"use_sentiment"`
	Timeframe      string    `json:"timeframe" default:"3y" validate:"oneof=1y 3y 5y"`
	NumSimulations int       `json:"num_simulations" default:"5000" validate:"gte=1000,lte=50000"`
}

// PhaseEvent is published on every run phase transition.
type PhaseEvent struct {
	RunID     uint64    `json:"run_id"`
	Phase     Phase     `json:"phase"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// RunSnapshot is a point-in-time copy of the current run, safe to serialize.
// Raw service payloads and derived series are replaced wholesale on re-run.
type RunSnapshot struct {
	RunID          uint64                `json:"run_id"`
	Tickers        []string              `json:"tickers"`
	PortfolioValue float64               `json:"portfolio_value"`
	Objective      Objective             `json:"objective"`
	UseSentiment   bool                  `json:"use_sentiment"`
	Phase          Phase                 `json:"phase"`
	Error          string                `json:"error,omitempty"`
	StartedAt      time.Time             `json:"started_at"`
	Sentiment      *SentimentResponse    `json:"sentiment,omitempty"`
	Optimization   *OptimizationResponse `json:"optimization,omitempty"`
	Risk           *RiskResponse         `json:"risk,omitempty"`
	Series         *DerivedSeries        `json:"series,omitempty"`
}
