package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics — метрики исходящих запросов и refresh-потока.
// Нулевой *Metrics допустим: все методы становятся no-op.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	refresh  *prometheus.CounterVec
}

// NewMetrics создаёт коллекторы и регистрирует их в reg (если reg != nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nutricare",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Outgoing backend requests by method and status code.",
		}, []string{"method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nutricare",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Outgoing backend request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		refresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nutricare",
			Subsystem: "client",
			Name:      "refresh_total",
			Help:      "Token refresh attempts by result.",
		}, []string{"result"}),
	}

	if reg != nil {
		reg.MustRegister(m.requests, m.duration, m.refresh)
	}

	return m
}

// code == "error" — сбой транспорта.
func (m *Metrics) observe(method, code string, d time.Duration) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(method, code).Inc()
	m.duration.WithLabelValues(method).Observe(d.Seconds())
}

func (m *Metrics) refreshed(result string) {
	if m == nil {
		return
	}

	m.refresh.WithLabelValues(result).Inc()
}
