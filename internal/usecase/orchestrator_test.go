package usecase

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"SmartAllocator/internal/domain/models"
	"SmartAllocator/internal/services/allocator"
	xlogger "SmartAllocator/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordRunStarted() {}
func (nopMetrics) RecordRunFinished(models.Phase) {}
func (nopMetrics) RecordRunSuperseded() {}
func (nopMetrics) RecordPhaseDuration(models.Phase, string, float64) {}
func (nopMetrics) RecordRemoteError(string) {}

type fakeService struct {
	mu    sync.Mutex
	calls []string

	sentimentErr error
	optErr       error
	riskErr      error

	weights map[string]float64

	riskGate    chan struct{} // when set, risk blocks until closed
	riskStarted chan struct{}

	riskWeights map[string]float64
}

func (f *fakeService) record(op string) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	f.mu.Unlock()
}

func (f *fakeService) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeService) RequestSentiment(ctx context.Context, tickers []string, maxArticles int) (*models.SentimentResponse, error) {
	f.record("sentiment")
	if f.sentimentErr != nil {
		return nil, f.sentimentErr
	}
	return &models.SentimentResponse{Results: map[string]models.TickerSentiment{}}, nil
}

func (f *fakeService) RequestOptimization(ctx context.Context, tickers []string, objective models.Objective, useSentiment bool, timeframe string, constraints *models.WeightConstraints) (*models.OptimizationResponse, error) {
	f.record("optimization")
	if f.optErr != nil {
		return nil, f.optErr
	}
	weights := f.weights
	if weights == nil {
		weights = map[string]float64{"AAPL": 0.6, "MSFT": 0.4}
	}
	allocs := make([]models.Allocation, 0, len(tickers))
	for _, t := range tickers {
		allocs = append(allocs, models.Allocation{Ticker: t, Weight: weights[t]})
	}
	return &models.OptimizationResponse{
		Tickers:     tickers,
		Weights:     weights,
		Allocations: allocs,
		EfficientFrontier: []models.FrontierPoint{
			{Volatility: 12}, {Volatility: 5}, {Volatility: 9},
		},
	}, nil
}

func (f *fakeService) RequestRisk(ctx context.Context, tickers []string, weights map[string]float64, portfolioValue float64, numSimulations int) (*models.RiskResponse, error) {
	f.record("risk")
	f.mu.Lock()
	f.riskWeights = weights
	if f.riskStarted != nil {
		close(f.riskStarted)
		f.riskStarted = nil
	}
	gate := f.riskGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if f.riskErr != nil {
		return nil, f.riskErr
	}
	return &models.RiskResponse{
		Weights: weights,
		MonteCarlo: models.MonteCarloResults{
			SamplePaths: []models.MonteCarloPath{
				{Percentile: "p5", Values: []float64{100, 80}},
				{Percentile: "median", Values: []float64{100, 105}},
				{Percentile: "p95", Values: []float64{100, 130}},
			},
		},
		RiskContribution: map[string]float64{"AAPL": 60, "MSFT": 40},
	}, nil
}

func (f *fakeService) RequestMarketOverview(ctx context.Context, tickers []string, timeframe string) (*models.MarketOverviewResponse, error) {
	f.record("market")
	return &models.MarketOverviewResponse{Tickers: tickers}, nil
}

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func newTestOrchestrator(t *testing.T, svc *fakeService) *Orchestrator {
	t.Helper()
	return NewOrchestrator(svc, nopMetrics{}, testLogger(t))
}

func waitPhase(t *testing.T, o *Orchestrator, want models.Phase) models.RunSnapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap := o.Snapshot()
		if snap.Phase == want {
			return snap
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for phase %s (at %s)", want, o.Snapshot().Phase)
	return models.RunSnapshot{}
}

func runRequest() models.RunRequest {
	return models.RunRequest{
		Tickers:        []string{"AAPL", "MSFT"},
		PortfolioValue: 100000,
		Objective:      models.ObjectiveMaxSharpe,
		UseSentiment:   true,
		Timeframe:      "3y",
		NumSimulations: 5000,
	}
}

func TestPhaseOrderAndWeightPassthrough(t *testing.T) {
	svc := &fakeService{weights: map[string]float64{"AAPL": 0.55, "MSFT": 0.45}}
	o := newTestOrchestrator(t, svc)

	if _, err := o.Start(runRequest()); err != nil {
		t.Fatalf("start: %v", err)
	}
	snap := waitPhase(t, o, models.PhaseComplete)

	want := []string{"sentiment", "optimization", "risk"}
	if got := svc.callLog(); !reflect.DeepEqual(got, want) {
		t.Fatalf("call order %v, want %v", got, want)
	}

	// risk must receive optimization's exact weights mapping
	if !reflect.DeepEqual(svc.riskWeights, snap.Optimization.Weights) {
		t.Fatalf("risk weights %v != optimization weights %v", svc.riskWeights, snap.Optimization.Weights)
	}

	if snap.Series == nil {
		t.Fatalf("derived series missing on complete run")
	}
	if len(snap.Series.MonteCarloBand) == 0 {
		t.Fatalf("monte carlo band missing")
	}
	vols := snap.Series.Frontier
	if vols[0].Volatility != 5 || vols[1].Volatility != 9 || vols[2].Volatility != 12 {
		t.Fatalf("frontier not sorted: %+v", vols)
	}
	if snap.Series.RiskRanking[0].Ticker != "AAPL" {
		t.Fatalf("risk ranking wrong: %+v", snap.Series.RiskRanking)
	}
}

func TestSentimentSkippedWhenDisabled(t *testing.T) {
	svc := &fakeService{}
	o := newTestOrchestrator(t, svc)

	req := runRequest()
	req.UseSentiment = false
	if _, err := o.Start(req); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitPhase(t, o, models.PhaseComplete)

	for _, call := range svc.callLog() {
		if call == "sentiment" {
			t.Fatalf("sentiment requested despite use_sentiment=false")
		}
	}
}

func TestTooFewTickersRejectedWithoutNetworkCalls(t *testing.T) {
	svc := &fakeService{}
	o := newTestOrchestrator(t, svc)

	req := runRequest()
	req.Tickers = []string{"AAPL", "aapl"} // deduplicates to one

	_, err := o.Start(req)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(svc.callLog()) != 0 {
		t.Fatalf("network calls issued: %v", svc.callLog())
	}
	if snap := o.Snapshot(); snap.Phase != models.PhaseIdle {
		t.Fatalf("state changed to %s", snap.Phase)
	}
}

func TestSentimentFailureShortCircuits(t *testing.T) {
	svc := &fakeService{
		sentimentErr: &allocator.ServiceError{StatusCode: 502, Message: "news feed unavailable"},
	}
	o := newTestOrchestrator(t, svc)

	if _, err := o.Start(runRequest()); err != nil {
		t.Fatalf("start: %v", err)
	}
	snap := waitPhase(t, o, models.PhaseError)

	if got := svc.callLog(); !reflect.DeepEqual(got, []string{"sentiment"}) {
		t.Fatalf("later phases attempted: %v", got)
	}
	if snap.Error != "news feed unavailable" {
		t.Fatalf("error message %q", snap.Error)
	}
}

func TestOptimizationFailureStopsRisk(t *testing.T) {
	svc := &fakeService{optErr: errors.New("solver diverged")}
	o := newTestOrchestrator(t, svc)

	req := runRequest()
	req.UseSentiment = false
	if _, err := o.Start(req); err != nil {
		t.Fatalf("start: %v", err)
	}
	snap := waitPhase(t, o, models.PhaseError)

	if got := svc.callLog(); !reflect.DeepEqual(got, []string{"optimization"}) {
		t.Fatalf("risk attempted after optimization failure: %v", got)
	}
	if snap.Error != "solver diverged" {
		t.Fatalf("error message %q", snap.Error)
	}
}

func TestStaleRunCannotOverwriteNewerRun(t *testing.T) {
	gate := make(chan struct{})
	started := make(chan struct{})
	svc := &fakeService{riskGate: gate, riskStarted: started}
	o := newTestOrchestrator(t, svc)

	first := runRequest()
	first.UseSentiment = false
	firstID, err := o.Start(first)
	if err != nil {
		t.Fatalf("start first: %v", err)
	}
	<-started // first run is now blocked inside its risk call

	// second run supersedes while the first awaits its risk response
	second := runRequest()
	second.UseSentiment = true
	second.Tickers = []string{"GOOGL", "NVDA"}
	secondID, err := o.Start(second)
	if err != nil {
		t.Fatalf("start second: %v", err)
	}
	if secondID == firstID {
		t.Fatalf("run ids must differ")
	}

	// let the first run's late risk response arrive
	close(gate)

	snap := waitPhase(t, o, models.PhaseComplete)
	if snap.RunID != secondID {
		t.Fatalf("snapshot belongs to run %d, want %d", snap.RunID, secondID)
	}
	if !reflect.DeepEqual(snap.Tickers, []string{"GOOGL", "NVDA"}) {
		t.Fatalf("stale run leaked into state: %v", snap.Tickers)
	}
}

func TestSubscribeReceivesPhaseEvents(t *testing.T) {
	svc := &fakeService{}
	o := newTestOrchestrator(t, svc)

	events, unsubscribe := o.Subscribe()
	defer unsubscribe()

	req := runRequest()
	req.UseSentiment = false
	if _, err := o.Start(req); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitPhase(t, o, models.PhaseComplete)

	seen := map[models.Phase]bool{}
	timeout := time.After(time.Second)
	for !seen[models.PhaseComplete] {
		select {
		case ev := <-events:
			seen[ev.Phase] = true
		case <-timeout:
			t.Fatalf("events seen so far: %v", seen)
		}
	}
	if !seen[models.PhaseOptimization] || !seen[models.PhaseRisk] {
		t.Fatalf("missing phase events: %v", seen)
	}
}
