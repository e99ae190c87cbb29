// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TaskRunsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_task_runs_completed_total",
			Help: "Total number of engine task runs completed",
		},
		[]string{"task_type"},
	)

	TaskRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "risk_task_run_duration_seconds",
			Help:    "Duration of engine task runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
		[]string{"task_type"},
	)

	CategoryContributions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_category_contributions_total",
			Help: "Scored answers recorded against a risk category",
		},
		[]string{"category"},
	)

	IgnoredAnswers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_ignored_answers_total",
			Help: "Answers that could not be scored, by reason",
		},
		[]string{"reason"},
	)

	MultiplierEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_multiplier_events_total",
			Help: "Demographic multipliers applied, by multiplier type",
		},
		[]string{"type"},
	)

	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_recommendations_total",
			Help: "Recommendations emitted, by category (fallback for the default advisory)",
		},
		[]string{"category"},
	)

	ConditionEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_condition_evaluations_total",
			Help: "Condition evaluations, by result (true, false, malformed)",
		},
		[]string{"result"},
	)

	SourceFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "risk_source_fallbacks_total",
			Help: "Source configuration lookups that fell back to the general profile",
		},
	)
)
