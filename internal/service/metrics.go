package service

import (
	"time"

	"edge-gdt-validator/pkg/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	namespace = "edge_gdt"
	subsystem = "validation"

	validationRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "runs_total",
			Help:      "Total number of validation runs by measurement source and overall status",
		},
		[]string{"source", "overall_status"},
	)

	checkResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "checks_total",
			Help:      "Total number of individual checks by status",
		},
		[]string{"status"},
	)

	validationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "duration_seconds",
			Help:      "Duration of engine evaluation in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"source"},
	)

	persistenceErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "persistence_errors_total",
			Help:      "Total number of reports that failed to persist",
		},
	)
)

func recordRun(source string, report *models.EdgeValidationReport, elapsed time.Duration) {
	validationRunsTotal.WithLabelValues(source, report.OverallStatus().String()).Inc()
	validationDuration.WithLabelValues(source).Observe(elapsed.Seconds())

	for _, result := range report.Results() {
		checkResultsTotal.WithLabelValues(result.Status.String()).Inc()
	}
}
