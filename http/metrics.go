package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sagarc03/challengedb"
)

// Metrics holds the Prometheus collectors for challenge requests.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	results  *prometheus.CounterVec
}

// NewMetrics registers the request collectors on reg. A nil reg gets a fresh
// registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "challengedb_requests_total",
			Help: "Challenge requests by operation and HTTP status code.",
		}, []string{"operation", "code"}),
		results: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "challengedb_operation_results_total",
			Help: "Authorized challenge operations by reported result.",
		}, []string{"operation", "result"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware counts every request routed to op, including rejected ones.
func (m *Metrics) Middleware(op challengedb.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.requests.WithLabelValues(string(op), strconv.Itoa(status)).Inc()
		})
	}
}

func (m *Metrics) observeResult(op challengedb.Operation, result bool) {
	if m == nil {
		return
	}
	m.results.WithLabelValues(string(op), strconv.FormatBool(result)).Inc()
}
