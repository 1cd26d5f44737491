package metrics

import (
	"time"

	"card-application-workers/internal/common/validation"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	CardValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "card_validation_total",
			Help: "Card application validations by outcome",
		},
		[]string{"result"},
	)

	CardValidationViolations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "card_validation_violations_total",
			Help: "Rule violations found in card applications",
		},
		[]string{"field", "code"},
	)

	CardValidationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "card_validation_duration_seconds",
			Help:    "Time spent validating one card application",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		},
	)
)

// Validation outcomes.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
)

// ObserveValidation records one validation run.
func ObserveValidation(violations validation.Violations, elapsed time.Duration) {
	result := ResultAccepted
	if len(violations) > 0 {
		result = ResultRejected
	}
	CardValidations.WithLabelValues(result).Inc()
	CardValidationDuration.Observe(elapsed.Seconds())

	for _, v := range violations {
		CardValidationViolations.WithLabelValues(v.Field, string(v.Code)).Inc()
	}
}
