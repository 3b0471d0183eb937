// Package metrics exposes wizard activity as Prometheus collectors fed by the
// engine lifecycle hooks.
package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Metrics owns a private registry so several servers (and tests) can coexist
// in one process.
type Metrics struct {
	registry     *prometheus.Registry
	stepVisits   *prometheus.CounterVec
	fieldUpdates *prometheus.CounterVec
	submissions  *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		stepVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stepwise_step_visits_total",
				Help: "Total number of step entries",
			},
			[]string{"step_id"},
		),
		fieldUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stepwise_field_updates_total",
				Help: "Total number of field updates, by acceptance",
			},
			[]string{"field", "rejected"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stepwise_submissions_total",
				Help: "Total number of submissions, by outcome",
			},
			[]string{"result"},
		),
	}
	m.registry.MustRegister(
		m.stepVisits,
		m.fieldUpdates,
		m.submissions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record metrics and log each event.
// A nil logger disables logging.
func (m *Metrics) Hooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			m.stepVisits.WithLabelValues(e.StepID).Inc()
			if logger != nil {
				logger.DebugContext(ctx, "step_enter", "session_id", e.SessionID, "step", e.Step, "step_id", e.StepID)
			}
		},
		OnStepLeave: func(ctx context.Context, e *domain.StepEvent) {
			if logger != nil {
				logger.DebugContext(ctx, "step_leave", "session_id", e.SessionID, "step_id", e.StepID)
			}
		},
		OnFieldUpdate: func(ctx context.Context, e *domain.FieldEvent) {
			m.fieldUpdates.WithLabelValues(e.Key, strconv.FormatBool(e.Rejected)).Inc()
			if logger != nil {
				logger.DebugContext(ctx, "field_update", "session_id", e.SessionID, "field", e.Key, "rejected", e.Rejected)
			}
		},
		OnSubmit: func(ctx context.Context, e *domain.SubmitEvent) {
			result := "ok"
			if e.IsError {
				result = "error"
			}
			m.submissions.WithLabelValues(result).Inc()
			if logger != nil {
				logger.InfoContext(ctx, "submit", "session_id", e.SessionID, "fields", e.Fields, "result", result)
			}
		},
	}
}
