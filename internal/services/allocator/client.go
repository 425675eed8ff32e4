// Package allocator is the typed HTTP client for the remote analysis service
// (sentiment scoring, Black-Litterman optimization, Monte Carlo risk).
package allocator

import (
	"context"
	"strings"

	"SmartAllocator/internal/domain/models"
	domsvc "SmartAllocator/internal/domain/service"
	"SmartAllocator/pkg/config"
	xhttp "SmartAllocator/pkg/http"
)

const (
	defaultMaxArticles    = 10
	defaultNumSimulations = 5000
)

// Client talks to the allocator service API under its /api/v1 prefix.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

// New builds a Client from config; the base URL is required there.
func New(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.Allocator.BaseURL, "/") + "/api/v1",
		http:    xhttp.NewClient(xhttp.WithTimeout(cfg.Allocator.Timeout)),
	}
}

type sentimentRequest struct {
	Tickers              []string `json:"tickers"`
	MaxArticlesPerTicker int      `json:"max_articles_per_ticker"`
}

// RequestSentiment scores news sentiment per ticker.
func (c *Client) RequestSentiment(ctx context.Context, tickers []string, maxArticlesPerTicker int) (*models.SentimentResponse, error) {
	if maxArticlesPerTicker <= 0 {
		maxArticlesPerTicker = defaultMaxArticles
	}
	var out models.SentimentResponse
	err := c.postJSON(ctx, "/sentiment/analyze", sentimentRequest{
		Tickers:              tickers,
		MaxArticlesPerTicker: maxArticlesPerTicker,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type optimizationRequest struct {
	Tickers      []string                 `json:"tickers"`
	Timeframe    string                   `json:"timeframe"`
	Objective    models.Objective         `json:"objective"`
	UseSentiment bool                     `json:"use_sentiment"`
	Constraints  models.WeightConstraints `json:"constraints"`
}

// RequestOptimization runs the Black-Litterman optimization. A nil
// constraints pointer gets the service default of [0, 1] per asset.
func (c *Client) RequestOptimization(ctx context.Context, tickers []string, objective models.Objective, useSentiment bool, timeframe string, constraints *models.WeightConstraints) (*models.OptimizationResponse, error) {
	cons := models.WeightConstraints{MinWeight: 0, MaxWeight: 1}
	if constraints != nil {
		cons = *constraints
	}
	var out models.OptimizationResponse
	err := c.postJSON(ctx, "/optimization/optimize", optimizationRequest{
		Tickers:      tickers,
		Timeframe:    timeframe,
		Objective:    objective,
		UseSentiment: useSentiment,
		Constraints:  cons,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type riskRequest struct {
	Tickers        []string           `json:"tickers"`
	Weights        map[string]float64 `json:"weights"`
	PortfolioValue float64            `json:"portfolio_value"`
	NumSimulations int                `json:"num_simulations"`
}

// RequestRisk runs the Monte Carlo risk analysis. weights must be the exact
// mapping returned by the optimization call.
func (c *Client) RequestRisk(ctx context.Context, tickers []string, weights map[string]float64, portfolioValue float64, numSimulations int) (*models.RiskResponse, error) {
	if numSimulations <= 0 {
		numSimulations = defaultNumSimulations
	}
	var out models.RiskResponse
	err := c.postJSON(ctx, "/risk/analyze", riskRequest{
		Tickers:        tickers,
		Weights:        weights,
		PortfolioValue: portfolioValue,
		NumSimulations: numSimulations,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type marketDataRequest struct {
	Tickers   []string `json:"tickers"`
	Timeframe string   `json:"timeframe"`
}

// RequestMarketOverview fetches per-ticker statistics for the basket preview.
func (c *Client) RequestMarketOverview(ctx context.Context, tickers []string, timeframe string) (*models.MarketOverviewResponse, error) {
	var out models.MarketOverviewResponse
	err := c.postJSON(ctx, "/market/data", marketDataRequest{
		Tickers:   tickers,
		Timeframe: timeframe,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

var _ domsvc.AnalysisService = (*Client)(nil)
