// metrics — Prometheus-коллекторы BFF: исходы выборок списков
// и число активных сессий.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "events_client"

// Metrics реализует fetch.Recorder.
type Metrics struct {
	fetches  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	sessions prometheus.Gauge
}

// New создаёт коллекторы и регистрирует их в reg.
// reg == nil — коллекторы не регистрируются (удобно для тестов).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "list_fetches_total",
			Help:      "Resolved list fetches by list and outcome.",
		}, []string{"list", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "list_fetch_duration_seconds",
			Help:      "Duration of list fetches including fallback.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"list"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Sessions currently holding list screens.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.fetches, m.duration, m.sessions)
	}

	return m
}

// ObserveFetch учитывает итог выборки. Устаревшие (stale) выборки
// считаются, но в гистограмму длительности не попадают.
func (m *Metrics) ObserveFetch(list, outcome string, dur time.Duration) {
	m.fetches.WithLabelValues(list, outcome).Inc()

	if outcome != "stale" {
		m.duration.WithLabelValues(list).Observe(dur.Seconds())
	}
}

// SetSessions выставляет число активных сессий.
func (m *Metrics) SetSessions(n int) {
	m.sessions.Set(float64(n))
}
