// Package metrics declares the Prometheus collectors of the sync client and
// the document server. Collectors live in structs rather than package
// globals so several orchestrators can run in one process, each against its
// own registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "second_brain"

// Cycle results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Sync holds the orchestrator collectors.
type Sync struct {
	Cycles         *prometheus.CounterVec
	Conflicts      prometheus.Counter
	Retries        prometheus.Counter
	PendingChanges prometheus.Gauge
	CycleDuration  prometheus.Histogram
}

// NewSync creates the orchestrator collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewSync(reg prometheus.Registerer) *Sync {
	m := &Sync{
		Cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "cycles_total",
			Help:      "Completed synchronization cycles by result.",
		}, []string{"result"}),
		Conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "conflicts_total",
			Help:      "Field-level conflicts resolved by successful cycles.",
		}),
		Retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "retries_total",
			Help:      "Cycle attempts beyond the first.",
		}),
		PendingChanges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "pending_changes",
			Help:      "Local changes not yet reflected in the shadow snapshot.",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "cycle_duration_seconds",
			Help:      "Wall time of synchronization cycles including retries.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Cycles, m.Conflicts, m.Retries, m.PendingChanges, m.CycleDuration)
	}
	return m
}

// ObserveCycle records one finished cycle.
func (m *Sync) ObserveCycle(result string, conflicts int, took time.Duration) {
	m.Cycles.WithLabelValues(result).Inc()
	m.CycleDuration.Observe(took.Seconds())
	if conflicts > 0 {
		m.Conflicts.Add(float64(conflicts))
	}
}

// ObserveAttempt counts retries; attempt is 0-based.
func (m *Sync) ObserveAttempt(attempt int) {
	if attempt > 0 {
		m.Retries.Inc()
	}
}

func (m *Sync) SetPendingChanges(n int) {
	m.PendingChanges.Set(float64(n))
}

// Server holds the document server collectors.
type Server struct {
	Requests *prometheus.CounterVec
}

// Document server operations.
const (
	OperationPull = "pull"
	OperationPush = "push"
)

// NewServer creates the document server collectors and registers them on
// reg. A nil reg leaves them unregistered.
func NewServer(reg prometheus.Registerer) *Server {
	m := &Server{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "document_requests_total",
			Help:      "Document pulls and pushes handled by the server.",
		}, []string{"operation", "result"}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests)
	}
	return m
}

// ObserveRequest records a pull or push; err decides the result label.
func (m *Server) ObserveRequest(operation string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	m.Requests.WithLabelValues(operation, result).Inc()
}

// Handler exposes everything registered on g in the text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// NewRegistry returns a registry preloaded with the Go runtime and process
// collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
