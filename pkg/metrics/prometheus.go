package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"SmartAllocator/internal/domain/models"
)

// Recorder implements domain.service.Metrics using Prometheus.
type Recorder struct {
	runsStarted    prometheus.Counter
	runsFinished   *prometheus.CounterVec
	runsSuperseded prometheus.Counter
	phaseDuration  *prometheus.HistogramVec
	remoteErrors   *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		runsStarted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "allocator_runs_started_total",
				Help: "Total number of analysis runs started",
			},
		),
		runsFinished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "allocator_runs_finished_total",
				Help: "Total number of analysis runs reaching a terminal phase",
			},
			[]string{"phase"},
		),
		runsSuperseded: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "allocator_runs_superseded_total",
				Help: "Total number of in-flight runs superseded by a newer run",
			},
		),
		phaseDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "allocator_phase_duration_seconds",
				Help:    "Duration of remote analysis phases in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"phase", "status"},
		),
		remoteErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "allocator_remote_errors_total",
				Help: "Total number of failed allocator service calls",
			},
			[]string{"operation"},
		),
	}
}

// RecordRunStarted counts a new analysis run.
func (r *Recorder) RecordRunStarted() {
	r.runsStarted.Inc()
}

// RecordRunFinished counts a run reaching Complete or Error.
func (r *Recorder) RecordRunFinished(phase models.Phase) {
	r.runsFinished.WithLabelValues(string(phase)).Inc()
}

// RecordRunSuperseded counts an in-flight run displaced by a newer one.
func (r *Recorder) RecordRunSuperseded() {
	r.runsSuperseded.Inc()
}

// RecordPhaseDuration observes one phase round trip.
func (r *Recorder) RecordPhaseDuration(phase models.Phase, status string, seconds float64) {
	r.phaseDuration.WithLabelValues(string(phase), status).Observe(seconds)
}

// RecordRemoteError counts a failed remote operation.
func (r *Recorder) RecordRemoteError(operation string) {
	r.remoteErrors.WithLabelValues(operation).Inc()
}
