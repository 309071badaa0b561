package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WizardTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gritgym_wizard_transitions_total",
			Help: "Wizard events by step they were applied to and outcome",
		},
		[]string{"step", "outcome"},
	)

	ApplicationsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gritgym_applications_submitted_total",
			Help: "Payment applications submitted by plan and payment method",
		},
		[]string{"plan", "method"},
	)

	ApplicationsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gritgym_applications_failed_total",
			Help: "Payment applications that could not be stored",
		},
	)

	ModerationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gritgym_moderation_decisions_total",
			Help: "Moderation attempts by target status and outcome",
		},
		[]string{"status", "outcome"},
	)

	JobsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gritgym_jobs_processed_total",
			Help: "Background jobs by type and final state",
		},
		[]string{"type", "state"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "gritgym_job_duration_seconds",
			Help: "Duration of background job processing in seconds",
		},
		[]string{"type"},
	)
)
