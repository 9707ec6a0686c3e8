package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "zombienet"

// Teardown results.
const (
	ResultOK      = "ok"
	ResultFailed  = "failed"
	ResultTimeout = "timeout"
	ResultSkipped = "skipped"
)

// Registry holds all CLI metrics.
type Registry struct {
	registry *prometheus.Registry

	SessionsStarted      prometheus.Counter
	SessionStartFailures prometheus.Counter

	// Terminations counts termination events by trigger.
	Terminations *prometheus.CounterVec
	// Teardowns counts teardown runs by trigger and result.
	Teardowns        *prometheus.CounterVec
	TeardownDuration prometheus.Histogram
	LogUploads       *prometheus.CounterVec
}

// NewRegistry creates a registry with every CLI metric registered.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "started_total",
			Help:      "Networks started by this process",
		}),
		SessionStartFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "start_failures_total",
			Help:      "Network start attempts that failed",
		}),
		Terminations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "terminations_total",
			Help:      "Termination events observed, by trigger",
		}, []string{"trigger"}),
		Teardowns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "teardowns_total",
			Help:      "Teardown runs, by trigger and result",
		}, []string{"trigger", "result"}),
		TeardownDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "teardown_duration_seconds",
			Help:      "Time spent uploading logs and stopping the network",
			Buckets:   []float64{0.5, 1, 5, 15, 30, 60, 120},
		}),
		LogUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "log_uploads_total",
			Help:      "Log uploads attempted during teardown, by result",
		}, []string{"result"}),
	}

	r.registry.MustRegister(
		r.SessionsStarted,
		r.SessionStartFailures,
		r.Terminations,
		r.Teardowns,
		r.TeardownDuration,
		r.LogUploads,
	)

	return r
}

// MustRegister registers additional collectors.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.registry.MustRegister(cs...)
}

// Gatherer exposes the underlying registry for inspection.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
// The file is written atomically.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
