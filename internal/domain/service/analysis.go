package service

import (
	"context"

	"SmartAllocator/internal/domain/models"
)

// AnalysisService is the remote allocator service consumed phase by phase.
// Each call is a single request/response round trip with no internal retry.
type AnalysisService interface {
	RequestSentiment(ctx context.Context, tickers []string, maxArticlesPerTicker int) (*models.SentimentResponse, error)
	RequestOptimization(ctx context.Context, tickers []string, objective models.Objective, useSentiment bool, timeframe string, constraints *models.WeightConstraints) (*models.OptimizationResponse, error)
	RequestRisk(ctx context.Context, tickers []string, weights map[string]float64, portfolioValue float64, numSimulations int) (*models.RiskResponse, error)
	RequestMarketOverview(ctx context.Context, tickers []string, timeframe string) (*models.MarketOverviewResponse, error)
}

// Metrics records orchestration events.
type Metrics interface {
	RecordRunStarted()
	RecordRunFinished(phase models.Phase)
	RecordRunSuperseded()
	RecordPhaseDuration(phase models.Phase, status string, seconds float64)
	RecordRemoteError(operation string)
}
