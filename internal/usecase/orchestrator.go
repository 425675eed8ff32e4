package usecase

import (
	"context"
	"sync"
	"time"

	"SmartAllocator/internal/domain/models"
	domsvc "SmartAllocator/internal/domain/service"
	"SmartAllocator/internal/services/allocator"
	"SmartAllocator/internal/services/series"
	xlogger "SmartAllocator/pkg/logger"
	"SmartAllocator/pkg/util"
)

// ValidationError is a pre-flight rejection: nothing was sent to the
// allocator service and the current run is untouched.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Orchestrator drives one analysis run through its phases:
// sentiment (optional) → optimization → risk. Phases are strictly sequential
// and fail-fast; the risk phase consumes the exact weights mapping returned
// by the optimization phase. There is a single mutable "current run" slot;
// starting a new run supersedes the previous one and every completion
// handler checks its captured run id against the slot before writing.
type Orchestrator struct {
	svc     domsvc.AnalysisService
	metrics domsvc.Metrics
	log     *xlogger.Logger

	maxArticlesPerTicker int

	mu     sync.Mutex
	seq    uint64
	cur    *run
	subSeq uint64
	subs   map[uint64]chan models.PhaseEvent
}

type run struct {
	id           uint64
	req          models.RunRequest
	phase        models.Phase
	errMsg       string
	startedAt    time.Time
	cancel       context.CancelFunc
	sentiment    *models.SentimentResponse
	optimization *models.OptimizationResponse
	risk         *models.RiskResponse
	series       models.DerivedSeries
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithMaxArticlesPerTicker caps articles fetched in the sentiment phase.
func WithMaxArticlesPerTicker(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxArticlesPerTicker = n
		}
	}
}

// NewOrchestrator builds the analysis orchestrator.
func NewOrchestrator(svc domsvc.AnalysisService, metrics domsvc.Metrics, log *xlogger.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		svc:                  svc,
		metrics:              metrics,
		log:                  log,
		maxArticlesPerTicker: 10,
		subs:                 make(map[uint64]chan models.PhaseEvent),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start validates the request and launches a fresh run, superseding any run
// still in flight. It returns the new run id immediately; phases execute in
// the background and are observable via Snapshot and Subscribe.
func (o *Orchestrator) Start(req models.RunRequest) (uint64, error) {
	tickers := util.NormalizeTickers(req.Tickers)
	if len(tickers) < 2 {
		return 0, &ValidationError{Message: "at least 2 valid tickers are required"}
	}
	if req.PortfolioValue <= 0 {
		return 0, &ValidationError{Message: "portfolio value must be positive"}
	}
	req.Tickers = tickers

	ctx, cancel := context.WithCancel(context.Background())

	o.mu.Lock()
	if o.cur != nil && !o.cur.phase.Terminal() {
		// cancellation by superseding: the old run's late responses will be
		// discarded by the id guard even if its context cancel races
		o.cur.cancel()
		o.metrics.RecordRunSuperseded()
	}
	o.seq++
	r := &run{
		id:        o.seq,
		req:       req,
		phase:     models.PhaseIdle,
		startedAt: time.Now(),
		cancel:    cancel,
	}
	o.cur = r
	id := r.id
	o.mu.Unlock()

	o.metrics.RecordRunStarted()
	o.log.Info("analysis run started",
		xlogger.Uint64("run_id", id),
		xlogger.Strings("tickers", tickers),
		xlogger.String("objective", string(req.Objective)),
		xlogger.Bool("use_sentiment", req.UseSentiment),
	)

	go o.execute(ctx, id, req)
	return id, nil
}

// execute walks the phases for run id. Every store/transition is guarded: if
// the run was superseded meanwhile the result is dropped and the goroutine
// exits without touching the newer run.
func (o *Orchestrator) execute(ctx context.Context, id uint64, req models.RunRequest) {
	if req.UseSentiment {
		if !o.transition(id, models.PhaseSentiment) {
			return
		}
		start := time.Now()
		sent, err := o.svc.RequestSentiment(ctx, req.Tickers, o.maxArticlesPerTicker)
		if err != nil {
			o.phaseFailed(id, models.PhaseSentiment, start, err)
			return
		}
		o.metrics.RecordPhaseDuration(models.PhaseSentiment, "ok", time.Since(start).Seconds())
		if !o.storeSentiment(id, sent) {
			return
		}
	}

	if !o.transition(id, models.PhaseOptimization) {
		return
	}
	start := time.Now()
	opt, err := o.svc.RequestOptimization(ctx, req.Tickers, req.Objective, req.UseSentiment, req.Timeframe, nil)
	if err != nil {
		o.phaseFailed(id, models.PhaseOptimization, start, err)
		return
	}
	o.metrics.RecordPhaseDuration(models.PhaseOptimization, "ok", time.Since(start).Seconds())
	if !o.storeOptimization(id, opt) {
		return
	}

	if !o.transition(id, models.PhaseRisk) {
		return
	}
	start = time.Now()
	risk, err := o.svc.RequestRisk(ctx, req.Tickers, opt.Weights, req.PortfolioValue, req.NumSimulations)
	if err != nil {
		o.phaseFailed(id, models.PhaseRisk, start, err)
		return
	}
	o.metrics.RecordPhaseDuration(models.PhaseRisk, "ok", time.Since(start).Seconds())
	if !o.storeRisk(id, risk) {
		return
	}

	if o.transition(id, models.PhaseComplete) {
		o.metrics.RecordRunFinished(models.PhaseComplete)
		o.log.Info("analysis run complete", xlogger.Uint64("run_id", id))
	}
}

// transition moves run id to phase. Returns false when the run is stale.
func (o *Orchestrator) transition(id uint64, phase models.Phase) bool {
	o.mu.Lock()
	if o.cur == nil || o.cur.id != id {
		o.mu.Unlock()
		return false
	}
	o.cur.phase = phase
	o.mu.Unlock()

	o.publish(models.PhaseEvent{RunID: id, Phase: phase, Timestamp: time.Now()})
	return true
}

func (o *Orchestrator) phaseFailed(id uint64, phase models.Phase, start time.Time, err error) {
	o.metrics.RecordPhaseDuration(phase, "error", time.Since(start).Seconds())
	o.metrics.RecordRemoteError(string(phase))

	msg := allocator.UserMessage(err)

	o.mu.Lock()
	if o.cur == nil || o.cur.id != id {
		o.mu.Unlock()
		return
	}
	o.cur.phase = models.PhaseError
	o.cur.errMsg = msg
	o.mu.Unlock()

	o.metrics.RecordRunFinished(models.PhaseError)
	o.log.Error("analysis phase failed",
		xlogger.Uint64("run_id", id),
		xlogger.String("phase", string(phase)),
		xlogger.Error(err),
	)
	o.publish(models.PhaseEvent{RunID: id, Phase: models.PhaseError, Error: msg, Timestamp: time.Now()})
}

func (o *Orchestrator) storeSentiment(id uint64, res *models.SentimentResponse) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cur == nil || o.cur.id != id {
		return false
	}
	o.cur.sentiment = res
	return true
}

func (o *Orchestrator) storeOptimization(id uint64, res *models.OptimizationResponse) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cur == nil || o.cur.id != id {
		return false
	}
	o.cur.optimization = res
	o.cur.series.Frontier = series.SortFrontier(res.EfficientFrontier)
	o.cur.series.DisplayAllocations = series.FilterAllocations(res.Allocations)
	return true
}

func (o *Orchestrator) storeRisk(id uint64, res *models.RiskResponse) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cur == nil || o.cur.id != id {
		return false
	}
	o.cur.risk = res
	o.cur.series.MonteCarloBand = series.MonteCarloBand(res.MonteCarlo.SamplePaths)
	o.cur.series.RiskRanking = series.RankRiskContribution(res.RiskContribution, o.contributionOrderLocked())
	return true
}

// contributionOrderLocked resolves the tie-break order for risk ranking:
// allocation order from the optimization response, else the run's tickers.
// Caller holds o.mu.
func (o *Orchestrator) contributionOrderLocked() []string {
	if o.cur.optimization != nil && len(o.cur.optimization.Allocations) > 0 {
		order := make([]string, 0, len(o.cur.optimization.Allocations))
		for _, a := range o.cur.optimization.Allocations {
			order = append(order, a.Ticker)
		}
		return order
	}
	return o.cur.req.Tickers
}

// Snapshot returns a serializable copy of the current run. Payload pointers
// are shared; payloads are immutable once stored.
func (o *Orchestrator) Snapshot() models.RunSnapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.cur == nil {
		return models.RunSnapshot{Phase: models.PhaseIdle}
	}

	r := o.cur
	snap := models.RunSnapshot{
		RunID:          r.id,
		Tickers:        append([]string(nil), r.req.Tickers...),
		PortfolioValue: r.req.PortfolioValue,
		Objective:      r.req.Objective,
		UseSentiment:   r.req.UseSentiment,
		Phase:          r.phase,
		Error:          r.errMsg,
		StartedAt:      r.startedAt,
		Sentiment:      r.sentiment,
		Optimization:   r.optimization,
		Risk:           r.risk,
	}
	if r.optimization != nil || r.risk != nil {
		s := r.series
		snap.Series = &s
	}
	return snap
}

// Shutdown cancels the in-flight run, if any. Meant for process exit;
// the orchestrator is not usable afterwards only by convention.
func (o *Orchestrator) Shutdown() {
	o.mu.Lock()
	if o.cur != nil && !o.cur.phase.Terminal() {
		o.cur.cancel()
	}
	o.mu.Unlock()
}

// Subscribe registers a phase-event listener. Slow listeners miss events
// rather than block a run. The returned func unsubscribes.
func (o *Orchestrator) Subscribe() (<-chan models.PhaseEvent, func()) {
	ch := make(chan models.PhaseEvent, 16)

	o.mu.Lock()
	o.subSeq++
	key := o.subSeq
	o.subs[key] = ch
	o.mu.Unlock()

	return ch, func() {
		o.mu.Lock()
		if c, ok := o.subs[key]; ok {
			delete(o.subs, key)
			close(c)
		}
		o.mu.Unlock()
	}
}

func (o *Orchestrator) publish(ev models.PhaseEvent) {
	o.mu.Lock()
	for _, ch := range o.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	o.mu.Unlock()
}
