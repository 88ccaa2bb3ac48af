// Package metrics exposes Prometheus instrumentation for the API and the
// scoring engine.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	analysesTotal    *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
}

// New registers the application metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the application metrics on the given registerer.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "freelanceflow_http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "freelanceflow_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		analysesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "freelanceflow_analyses_total",
			Help: "Analyses run by module and outcome",
		}, []string{"module", "outcome"}),

		analysisDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "freelanceflow_analysis_duration_seconds",
			Help:    "Analysis latency by module",
			Buckets: prometheus.DefBuckets,
		}, []string{"module"}),
	}
}

// Middleware records request counts and latencies per route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			m.requestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// ObserveAnalysis records one analysis run.
func (m *Metrics) ObserveAnalysis(module string, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.analysesTotal.WithLabelValues(module, outcome).Inc()
	m.analysisDuration.WithLabelValues(module).Observe(elapsed.Seconds())
}
