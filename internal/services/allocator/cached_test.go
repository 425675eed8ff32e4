package allocator

import (
	"context"
	"testing"
	"time"

	"SmartAllocator/internal/domain/models"
	"SmartAllocator/pkg/cache"
	applogger "SmartAllocator/pkg/logger"
)

type countingService struct {
	sentimentCalls int
	marketCalls    int
	riskCalls      int
}

func (s *countingService) RequestSentiment(_ context.Context, tickers []string, _ int) (*models.SentimentResponse, error) {
	s.sentimentCalls++
	results := make(map[string]models.TickerSentiment, len(tickers))
	for _, t := range tickers {
		results[t] = models.TickerSentiment{SentimentScore: 0.5, DominantSentiment: "positive"}
	}
	return &models.SentimentResponse{Results: results, MarketSentimentIndex: 0.5}, nil
}

func (s *countingService) RequestOptimization(_ context.Context, _ []string, _ models.Objective, _ bool, _ string, _ *models.WeightConstraints) (*models.OptimizationResponse, error) {
	return &models.OptimizationResponse{}, nil
}

func (s *countingService) RequestRisk(_ context.Context, _ []string, _ map[string]float64, _ float64, _ int) (*models.RiskResponse, error) {
	s.riskCalls++
	return &models.RiskResponse{}, nil
}

func (s *countingService) RequestMarketOverview(_ context.Context, _ []string, _ string) (*models.MarketOverviewResponse, error) {
	s.marketCalls++
	return &models.MarketOverviewResponse{TradingDays: 756}, nil
}

func cachedTestLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func TestSentimentServedFromCacheOnRepeat(t *testing.T) {
	inner := &countingService{}
	c := NewCachedClient(inner, cache.NewMemoryCache(), cachedTestLogger(t), time.Minute, time.Minute)

	ctx := context.Background()
	first, err := c.RequestSentiment(ctx, []string{"AAPL", "MSFT"}, 10)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := c.RequestSentiment(ctx, []string{"AAPL", "MSFT"}, 10)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if inner.sentimentCalls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", inner.sentimentCalls)
	}
	if second.Results["AAPL"].SentimentScore != first.Results["AAPL"].SentimentScore {
		t.Fatalf("cached response differs from original")
	}
}

func TestSentimentKeyIgnoresTickerOrder(t *testing.T) {
	inner := &countingService{}
	c := NewCachedClient(inner, cache.NewMemoryCache(), cachedTestLogger(t), time.Minute, time.Minute)

	ctx := context.Background()
	if _, err := c.RequestSentiment(ctx, []string{"MSFT", "AAPL"}, 10); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := c.RequestSentiment(ctx, []string{"AAPL", "MSFT"}, 10); err != nil {
		t.Fatalf("second call: %v", err)
	}

	if inner.sentimentCalls != 1 {
		t.Fatalf("ticker order changed the cache key, %d upstream calls", inner.sentimentCalls)
	}
}

func TestDifferentArticleLimitBypassesCache(t *testing.T) {
	inner := &countingService{}
	c := NewCachedClient(inner, cache.NewMemoryCache(), cachedTestLogger(t), time.Minute, time.Minute)

	ctx := context.Background()
	if _, err := c.RequestSentiment(ctx, []string{"AAPL", "MSFT"}, 10); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := c.RequestSentiment(ctx, []string{"AAPL", "MSFT"}, 20); err != nil {
		t.Fatalf("second call: %v", err)
	}

	if inner.sentimentCalls != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", inner.sentimentCalls)
	}
}

func TestRiskNeverCached(t *testing.T) {
	inner := &countingService{}
	c := NewCachedClient(inner, cache.NewMemoryCache(), cachedTestLogger(t), time.Minute, time.Minute)

	ctx := context.Background()
	weights := map[string]float64{"AAPL": 0.6, "MSFT": 0.4}
	for i := 0; i < 3; i++ {
		if _, err := c.RequestRisk(ctx, []string{"AAPL", "MSFT"}, weights, 100000, 5000); err != nil {
			t.Fatalf("risk call %d: %v", i, err)
		}
	}
	if inner.riskCalls != 3 {
		t.Fatalf("expected 3 upstream calls, got %d", inner.riskCalls)
	}
}

func TestNilStoreDisablesCaching(t *testing.T) {
	inner := &countingService{}
	c := NewCachedClient(inner, nil, cachedTestLogger(t), time.Minute, time.Minute)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := c.RequestMarketOverview(ctx, []string{"AAPL", "MSFT"}, "3y"); err != nil {
			t.Fatalf("market call %d: %v", i, err)
		}
	}
	if inner.marketCalls != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", inner.marketCalls)
	}
}
