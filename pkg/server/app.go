package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"SmartAllocator/internal/handler/api"
	"SmartAllocator/internal/handler/ws"
	"SmartAllocator/internal/usecase"
	"SmartAllocator/pkg/config"
	xhttp "SmartAllocator/pkg/http"
	applogger "SmartAllocator/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	orch       *usecase.Orchestrator
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	orch *usecase.Orchestrator,
	analysisHandler *api.AnalysisHandler,
	streamHandler *ws.StreamHandler,
) *App {
	httpServer := xhttp.NewServer(
		[]xhttp.Handler{analysisHandler, streamHandler},
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithMetrics(cfg.Metrics.Enabled, cfg.Metrics.Path),
	)

	return &App{
		cfg:        cfg,
		logger:     logger,
		orch:       orch,
		httpServer: httpServer,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("allocator", a.cfg.Allocator.BaseURL),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	// Cancel any in-flight run so phase goroutines exit promptly.
	a.orch.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		return err
	}

	a.logger.Info("shutdown complete")
	return nil
}
