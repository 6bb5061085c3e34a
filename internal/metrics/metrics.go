// internal/metrics/metrics.go
//
// Prometheus instrumentation for the solver.
// Responsibilities:
//   - Own a private registry so servers and tests never collide on the
//     global default registerer.
//   - Implement solver.Observer (rounds, search latency, pool size,
//     terminations by reason).
//   - Track active interactive sessions for the HTTP API.
//   - Expose the registry through a promhttp handler for GET /metrics.

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "solver"

// Registry holds the solver collectors.
type Registry struct {
	reg *prometheus.Registry

	rounds       prometheus.Counter
	searchTime   prometheus.Histogram
	poolSize     prometheus.Gauge
	sessions     prometheus.Gauge
	terminations *prometheus.CounterVec
}

// New builds a Registry with Go runtime and process collectors attached.
func New() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Registry{
		reg: reg,
		rounds: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_total",
			Help:      "Completed ranking rounds",
		}),
		searchTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_seconds",
			Help:      "Parallel search latency per round",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		poolSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pool_size",
			Help:      "Candidate pool size at the most recent round",
		}),
		sessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Interactive sessions held in memory",
		}),
		terminations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "terminations_total",
			Help:      "Solver loops that reached a terminal state",
		}, []string{"reason"}),
	}
}

// ObserveRound records one ranking round.
func (r *Registry) ObserveRound(pool int, took time.Duration) {
	r.rounds.Inc()
	r.poolSize.Set(float64(pool))
	r.searchTime.Observe(took.Seconds())
}

// ObserveTermination counts a terminal transition by reason.
func (r *Registry) ObserveTermination(reason string) {
	r.terminations.WithLabelValues(reason).Inc()
}

// SessionOpened / SessionClosed move the active sessions gauge.
func (r *Registry) SessionOpened() { r.sessions.Inc() }
func (r *Registry) SessionClosed() { r.sessions.Dec() }

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer exposes the underlying registry (tests, embedding).
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }
