package metric

import "github.com/prometheus/client_golang/prometheus"

// ActiveSource reports whether a network is currently registered.
type ActiveSource interface {
	Active() bool
}

// ActiveSourceFunc adapts a function to ActiveSource.
type ActiveSourceFunc func() bool

// Active implements ActiveSource.
func (f ActiveSourceFunc) Active() bool { return f() }

// SessionCollector exports whether a network is still registered when
// metrics are gathered. A value of 1 in the final textfile means the
// process ended without releasing its network.
type SessionCollector struct {
	source ActiveSource
	desc   *prometheus.Desc
}

// NewSessionCollector creates a collector backed by source.
func NewSessionCollector(source ActiveSource) *SessionCollector {
	return &SessionCollector{
		source: source,
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "session", "active"),
			"Whether a network session is registered (1) or not (0)",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *SessionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *SessionCollector) Collect(ch chan<- prometheus.Metric) {
	v := 0.0
	if c.source.Active() {
		v = 1
	}
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, v)
}
