package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsPrefix = "drawdown_"

var defaultLatencyBuckets = []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250}

// Metrics records request telemetry for the HTTP facade
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates the request metrics and registers them with the supplied
// Registerer
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metricsPrefix + "requests_total",
			Help: "Total number of calculation requests by operation and error code.",
		}, []string{"op", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    metricsPrefix + "request_duration_milliseconds",
			Help:    "Histogram of calculation request latency in milliseconds.",
			Buckets: defaultLatencyBuckets,
		}, []string{"op"}),
	}

	for _, c := range []prometheus.Collector{m.requestsTotal, m.requestDuration} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe records one finished request. An empty code means success.
func (m *Metrics) Observe(op, code string, elapsed time.Duration) {
	if code == "" {
		code = "OK"
	}
	m.requestsTotal.WithLabelValues(op, code).Inc()
	m.requestDuration.WithLabelValues(op).Observe(float64(elapsed.Microseconds()) / 1000)
}
