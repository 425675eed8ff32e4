package allocator

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"SmartAllocator/internal/domain/models"
	domsvc "SmartAllocator/internal/domain/service"
	"SmartAllocator/pkg/cache"
	applogger "SmartAllocator/pkg/logger"
)

const (
	sentimentKeyPrefix = "sentiment"
	marketKeyPrefix    = "market"
)

// CachedClient wraps an AnalysisService and caches the read-mostly
// operations (sentiment, market overview). Optimization and risk runs
// depend on run-specific inputs and always go to the remote service.
type CachedClient struct {
	inner        domsvc.AnalysisService
	store        cache.Service
	log          *applogger.Logger
	sentimentTTL time.Duration
	marketTTL    time.Duration
}

// NewCachedClient decorates inner with TTL caching. A nil store
// disables caching entirely.
func NewCachedClient(inner domsvc.AnalysisService, store cache.Service, log *applogger.Logger, sentimentTTL, marketTTL time.Duration) *CachedClient {
	if sentimentTTL <= 0 {
		sentimentTTL = 5 * time.Minute
	}
	if marketTTL <= 0 {
		marketTTL = time.Minute
	}
	return &CachedClient{
		inner:        inner,
		store:        store,
		log:          log,
		sentimentTTL: sentimentTTL,
		marketTTL:    marketTTL,
	}
}

var _ domsvc.AnalysisService = (*CachedClient)(nil)

func (c *CachedClient) RequestSentiment(ctx context.Context, tickers []string, maxArticlesPerTicker int) (*models.SentimentResponse, error) {
	key := tickerSetKey(sentimentKeyPrefix, tickers, maxArticlesPerTicker)

	var cached models.SentimentResponse
	if c.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	resp, err := c.inner.RequestSentiment(ctx, tickers, maxArticlesPerTicker)
	if err != nil {
		return nil, err
	}
	c.remember(ctx, key, resp, c.sentimentTTL)
	return resp, nil
}

func (c *CachedClient) RequestOptimization(ctx context.Context, tickers []string, objective models.Objective, useSentiment bool, timeframe string, constraints *models.WeightConstraints) (*models.OptimizationResponse, error) {
	return c.inner.RequestOptimization(ctx, tickers, objective, useSentiment, timeframe, constraints)
}

func (c *CachedClient) RequestRisk(ctx context.Context, tickers []string, weights map[string]float64, portfolioValue float64, numSimulations int) (*models.RiskResponse, error) {
	return c.inner.RequestRisk(ctx, tickers, weights, portfolioValue, numSimulations)
}

func (c *CachedClient) RequestMarketOverview(ctx context.Context, tickers []string, timeframe string) (*models.MarketOverviewResponse, error) {
	key := tickerSetKey(marketKeyPrefix, tickers, timeframe)

	var cached models.MarketOverviewResponse
	if c.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	resp, err := c.inner.RequestMarketOverview(ctx, tickers, timeframe)
	if err != nil {
		return nil, err
	}
	c.remember(ctx, key, resp, c.marketTTL)
	return resp, nil
}

func (c *CachedClient) lookup(ctx context.Context, key string, dest interface{}) bool {
	if c.store == nil {
		return false
	}
	err := c.store.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		c.log.Warn("cache lookup failed", applogger.String("key", key), applogger.Error(err))
	}
	return false
}

func (c *CachedClient) remember(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c.store == nil {
		return
	}
	if err := c.store.Set(ctx, key, value, ttl); err != nil {
		c.log.Warn("cache store failed", applogger.String("key", key), applogger.Error(err))
	}
}

// tickerSetKey builds an order-insensitive cache key for a ticker set
// plus trailing parameters.
func tickerSetKey(prefix string, tickers []string, params ...interface{}) string {
	sorted := make([]string, len(tickers))
	copy(sorted, tickers)
	sort.Strings(sorted)

	args := make([]interface{}, 0, len(params)+1)
	args = append(args, cache.HashKey(strings.Join(sorted, ",")))
	args = append(args, params...)
	return cache.GenerateKeyWithParams(prefix, args...)
}
