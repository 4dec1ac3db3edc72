package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	CitizensRegistered prometheus.Counter
	OfficersGranted    *prometheus.CounterVec
	RegionsBound       prometheus.Counter

	RequestsSubmitted *prometheus.CounterVec
	Transitions       *prometheus.CounterVec
	PendingRequests   prometheus.Gauge
	DocumentsIssued   prometheus.Counter

	EndpointLatency *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		CitizensRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "civreg_citizens_registered_total",
			Help: "Total number of citizen registrations",
		}),
		OfficersGranted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civreg_officers_granted_total",
			Help: "Total number of officer role grants, labeled by role",
		}, []string{"role"}),
		RegionsBound: promauto.NewCounter(prometheus.CounterOpts{
			Name: "civreg_regions_bound_total",
			Help: "Total number of region-officer bindings",
		}),
		RequestsSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civreg_requests_submitted_total",
			Help: "Total number of requests submitted, labeled by kind",
		}, []string{"kind"}),
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civreg_request_transitions_total",
			Help: "Total number of lifecycle transitions, labeled by stage and outcome",
		}, []string{"stage", "outcome"}),
		PendingRequests: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "civreg_pending_requests",
			Help: "Current number of requests awaiting a verification decision",
		}),
		DocumentsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "civreg_documents_issued_total",
			Help: "Total number of official documents attached",
		}),
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "civreg_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// IncrementTransition records one lifecycle transition outcome.
func (m *Metrics) IncrementTransition(stage string, approved bool) {
	outcome := "rejected"
	if approved {
		outcome = "approved"
	}
	m.Transitions.WithLabelValues(stage, outcome).Inc()
}
