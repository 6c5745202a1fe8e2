package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los contadores del motor de matching.
// Un *Metrics nil es válido: todos los métodos son no-op.
type Metrics struct {
	reg *prometheus.Registry

	matchesCreated   *prometheus.CounterVec
	matchesRescored  *prometheus.CounterVec
	scanRuns         *prometheus.CounterVec
	scanItemFailures prometheus.Counter
	notifications    *prometheus.CounterVec
	publishFailures  prometheus.Counter
	transitions      *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		reg: reg,
		matchesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lostfound",
			Name:      "matches_created_total",
			Help:      "New lost/found matches persisted, by trigger.",
		}, []string{"trigger"}),
		matchesRescored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lostfound",
			Name:      "matches_rescored_total",
			Help:      "Existing matches whose score was refreshed, by trigger.",
		}, []string{"trigger"}),
		scanRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lostfound",
			Name:      "scan_runs_total",
			Help:      "Batch scans, by outcome.",
		}, []string{"outcome"}),
		scanItemFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lostfound",
			Name:      "scan_item_failures_total",
			Help:      "Lost reports skipped by a batch scan because matching failed.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lostfound",
			Name:      "notifications_created_total",
			Help:      "Match notification records created, by type.",
		}, []string{"type"}),
		publishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lostfound",
			Name:      "notification_publish_failures_total",
			Help:      "Notification events that could not be handed to the notifier.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lostfound",
			Name:      "match_transitions_total",
			Help:      "Match lifecycle transitions, by target status.",
		}, []string{"status"}),
	}

	reg.MustRegister(
		m.matchesCreated,
		m.matchesRescored,
		m.scanRuns,
		m.scanItemFailures,
		m.notifications,
		m.publishFailures,
		m.transitions,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) MatchCreated(trigger string) {
	if m == nil {
		return
	}
	m.matchesCreated.WithLabelValues(trigger).Inc()
}

func (m *Metrics) MatchRescored(trigger string) {
	if m == nil {
		return
	}
	m.matchesRescored.WithLabelValues(trigger).Inc()
}

func (m *Metrics) ScanRun(outcome string) {
	if m == nil {
		return
	}
	m.scanRuns.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ScanItemFailed() {
	if m == nil {
		return
	}
	m.scanItemFailures.Inc()
}

func (m *Metrics) NotificationCreated(kind string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(kind).Inc()
}

func (m *Metrics) PublishFailed() {
	if m == nil {
		return
	}
	m.publishFailures.Inc()
}

func (m *Metrics) Transition(status string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(status).Inc()
}
