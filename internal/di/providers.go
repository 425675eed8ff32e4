package di

import (
	"fmt"

	domsvc "SmartAllocator/internal/domain/service"
	"SmartAllocator/internal/handler/api"
	"SmartAllocator/internal/handler/ws"
	"SmartAllocator/internal/services/allocator"
	"SmartAllocator/internal/usecase"
	"SmartAllocator/pkg/cache"
	"SmartAllocator/pkg/config"
	xlogger "SmartAllocator/pkg/logger"
	"SmartAllocator/pkg/metrics"
	"SmartAllocator/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	l, err := xlogger.New(&xlogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domsvc.Metrics {
	return metrics.New()
}

// ProvideCache creates the response cache. Redis-backed layered cache
// when enabled, plain in-memory otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}

	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache), nil
}

// ProvideAnalysisService creates the allocator client wrapped with
// response caching for the read-mostly operations.
func ProvideAnalysisService(cfg *config.Config, store cache.Service, logger *xlogger.Logger) domsvc.AnalysisService {
	client := allocator.New(cfg)
	return allocator.NewCachedClient(client, store, logger,
		cfg.Cache.SentimentTTL,
		cfg.Cache.MarketTTL,
	)
}

// ProvideOrchestrator creates the analysis run orchestrator.
func ProvideOrchestrator(svc domsvc.AnalysisService, m domsvc.Metrics, logger *xlogger.Logger, cfg *config.Config) *usecase.Orchestrator {
	return usecase.NewOrchestrator(svc, m, logger,
		usecase.WithMaxArticlesPerTicker(cfg.Allocator.MaxArticlesPerTicker),
	)
}

// ProvideAnalysisHandler creates the dashboard API handler.
func ProvideAnalysisHandler(logger *xlogger.Logger, orch *usecase.Orchestrator, svc domsvc.AnalysisService, cfg *config.Config) *api.AnalysisHandler {
	opts := []api.AnalysisHandlerOption{}
	if cfg.RateLimit.Enabled {
		opts = append(opts, api.WithRunRateLimit(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec))
	}
	return api.NewAnalysisHandler(logger, orch, svc, opts...)
}

// ProvideStreamHandler creates the websocket phase-event handler.
func ProvideStreamHandler(logger *xlogger.Logger, orch *usecase.Orchestrator) *ws.StreamHandler {
	return ws.NewStreamHandler(logger, orch)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *xlogger.Logger,
	orch *usecase.Orchestrator,
	analysisHandler *api.AnalysisHandler,
	streamHandler *ws.StreamHandler,
) *server.App {
	return server.New(cfg, logger, orch, analysisHandler, streamHandler)
}
