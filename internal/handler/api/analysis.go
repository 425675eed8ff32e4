package api

import (
	"errors"
	"net/http"

	"SmartAllocator/internal/domain/models"
	domsvc "SmartAllocator/internal/domain/service"
	"SmartAllocator/internal/service/ratelimit"
	"SmartAllocator/internal/services/allocator"
	"SmartAllocator/internal/usecase"
	xhttp "SmartAllocator/pkg/http"
	xlogger "SmartAllocator/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler exposes the dashboard API: starting runs, polling run
// state and fetching the market overview for a basket.
type AnalysisHandler struct {
	logger  *xlogger.Logger
	orch    *usecase.Orchestrator
	svc     domsvc.AnalysisService
	limiter *ratelimit.Limiter

	rateLimitEnabled bool
	rateCapacity     float64
	rateRefillPerSec float64
}

// AnalysisHandlerOption configures AnalysisHandler.
type AnalysisHandlerOption func(*AnalysisHandler)

// WithRunRateLimit enables per-client rate limiting on run starts.
func WithRunRateLimit(capacity, refillPerSec float64) AnalysisHandlerOption {
	return func(h *AnalysisHandler) {
		h.rateLimitEnabled = true
		h.rateCapacity = capacity
		h.rateRefillPerSec = refillPerSec
	}
}

func NewAnalysisHandler(logger *xlogger.Logger, orch *usecase.Orchestrator, svc domsvc.AnalysisService, opts ...AnalysisHandlerOption) *AnalysisHandler {
	h := &AnalysisHandler{
		logger:  logger,
		orch:    orch,
		svc:     svc,
		limiter: ratelimit.New(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/analysis/run", h.StartRun)
	g.GET("/analysis/state", h.State)
	g.POST("/market/overview", h.MarketOverview)

	e.GET("/healthz", h.Health)
}

// StartRun kicks off a new analysis run. A run already in flight is
// superseded. The response is 202 with the assigned run id; progress is
// observed via GET /api/analysis/state or the websocket stream.
func (h *AnalysisHandler) StartRun(c echo.Context) error {
	req := &models.RunRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if h.rateLimitEnabled {
		if !h.limiter.Allow(c.RealIP(), h.rateCapacity, h.rateRefillPerSec) {
			return xhttp.TooManyRequestsResponse(c, "too many run requests, slow down")
		}
	}

	runID, err := h.orch.Start(*req)
	if err != nil {
		var verr *usecase.ValidationError
		if errors.As(err, &verr) {
			return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
				Code:    "ERR_INVALID_TICKERS",
				Field:   "tickers",
				Message: verr.Message,
			}})
		}
		h.logger.Error("run start failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	h.logger.Info("analysis run accepted",
		xlogger.Uint64("run_id", runID),
		xlogger.Strings("tickers", req.Tickers),
		xlogger.Bool("use_sentiment", req.UseSentiment),
	)
	return xhttp.AcceptedResponse(c, map[string]interface{}{"run_id": runID})
}

// State returns a snapshot of the current run, including any derived
// series computed so far.
func (h *AnalysisHandler) State(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.orch.Snapshot())
}

// MarketOverview proxies basket statistics from the allocator service.
// Responses are cached upstream of this handler.
func (h *AnalysisHandler) MarketOverview(c echo.Context) error {
	req := &models.MarketOverviewRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.svc.RequestMarketOverview(c.Request().Context(), req.Tickers, req.Timeframe)
	if err != nil {
		h.logger.Error("market overview failed", xlogger.Error(err))
		return xhttp.BadGatewayResponse(c, allocator.UserMessage(err))
	}
	return xhttp.SuccessResponse(c, res)
}

// Health is a liveness probe.
func (h *AnalysisHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
