package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// WorkflowMetrics records counters for the change-request workflow.
type WorkflowMetrics struct {
	created  *prometheus.CounterVec
	resolved *prometheus.CounterVec
	pending  *prometheus.GaugeVec
}

// NewWorkflowMetrics registers the workflow metrics on the provided registerer.
func NewWorkflowMetrics(reg prometheus.Registerer) *WorkflowMetrics {
	if reg == nil {
		return &WorkflowMetrics{}
	}
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "change_requests_created_total",
		Help: "Change requests created.",
	}, []string{"store"})
	resolved := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "change_requests_resolved_total",
		Help: "Change requests resolved, labelled by outcome.",
	}, []string{"store", "outcome"})
	pending := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "change_requests_pending",
		Help: "Change requests currently pending per store.",
	}, []string{"store"})
	reg.MustRegister(created, resolved, pending)
	return &WorkflowMetrics{
		created:  created,
		resolved: resolved,
		pending:  pending,
	}
}

// IncCreated increments the created counter for the store.
func (w *WorkflowMetrics) IncCreated(store string) {
	if w == nil || w.created == nil {
		return
	}
	w.created.WithLabelValues(normalizeLabel(store)).Inc()
}

// IncResolved increments the resolved counter for the store and outcome.
func (w *WorkflowMetrics) IncResolved(store, outcome string) {
	if w == nil || w.resolved == nil {
		return
	}
	w.resolved.WithLabelValues(normalizeLabel(store), normalizeLabel(outcome)).Inc()
}

// SetPending records the current pending depth for the store.
func (w *WorkflowMetrics) SetPending(store string, count float64) {
	if w == nil || w.pending == nil {
		return
	}
	w.pending.WithLabelValues(normalizeLabel(store)).Set(count)
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
