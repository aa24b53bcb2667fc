// Package metrics exports request and planning metrics to Prometheus
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace prefixes every metric name
const DefaultNamespace = "scheduler"

// Metrics holds the collectors. A nil *Metrics records nothing
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	planOutcomes *prometheus.CounterVec
	planDuration *prometheus.HistogramVec
	planErrors   *prometheus.CounterVec
}

// New registers the collectors on reg, reusing any that are already registered
// a nil reg uses a fresh private registry
func New(namespace string, reg *prometheus.Registry) (*Metrics, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{gatherer: reg}
	var err error

	if m.httpRequests, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route pattern, method and status.",
	}, []string{"route", "method", "status"})); err != nil {
		return nil, err
	}
	if m.httpDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})); err != nil {
		return nil, err
	}
	if m.planOutcomes, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "plan_outcomes_total",
		Help:      "Planned instants by operation and slot resolution outcome.",
	}, []string{"operation", "outcome"})); err != nil {
		return nil, err
	}
	if m.planDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "plan_duration_seconds",
		Help:      "Time spent in the planning engine.",
		Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
	}, []string{"operation"})); err != nil {
		return nil, err
	}
	if m.planErrors, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "plan_errors_total",
		Help:      "Planning requests rejected before or during planning.",
	}, []string{"operation"})); err != nil {
		return nil, err
	}
	return m, nil
}

// MustNew is New that panics, for wiring in main
func MustNew(namespace string, reg *prometheus.Registry) *Metrics {
	m, err := New(namespace, reg)
	if err != nil {
		panic(err)
	}
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, fmt.Errorf("register collector: %w", err)
	}
	return c, nil
}

// ObservePlan records one engine call
// outcome is the slot resolution outcome, ignored when err is set
func (m *Metrics) ObservePlan(operation, outcome string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.planDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	if err != nil {
		m.planErrors.WithLabelValues(operation).Inc()
		return
	}
	if outcome != "" {
		m.planOutcomes.WithLabelValues(operation, outcome).Inc()
	}
}

// Middleware counts requests and latency labelled by chi route pattern
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(sw, r)

			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if p := rc.RoutePattern(); p != "" {
					route = p
				}
			}
			m.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(sw.status)).Inc()
			m.httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (s *statusWriter) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
