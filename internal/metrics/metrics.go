package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	CatalogOperations   *prometheus.CounterVec
	CacheLookups        *prometheus.CounterVec
	SpecEventsTotal     *prometheus.CounterVec
}

// New creates the service metrics under prefix and registers them with reg.
func New(prefix string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		CatalogOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_operations_total",
				Help: "Catalog mutations by entity, operation and result",
			},
			[]string{"entity", "operation", "result"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_cache_lookups_total",
				Help: "Category tree cache lookups by result",
			},
			[]string{"result"},
		),
		SpecEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_spec_events_total",
				Help: "Product spec events consumed from Kafka by result",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CatalogOperations,
		m.CacheLookups,
		m.SpecEventsTotal,
	)
	return m
}

// RecordOperation is nil-safe so components can run without metrics in tests.
func (m *Metrics) RecordOperation(entity, operation string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.CatalogOperations.WithLabelValues(entity, operation, result).Inc()
}

func (m *Metrics) RecordCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) RecordSpecEvent(result string) {
	if m == nil {
		return
	}
	m.SpecEventsTotal.WithLabelValues(result).Inc()
}

// Middleware records request count and latency per route.
func (m *Metrics) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			// let echo resolve the final status before we read it
			c.Error(err)
		}

		duration := time.Since(start).Seconds()
		method := c.Request().Method
		path := c.Path()
		status := strconv.Itoa(c.Response().Status)

		m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration)
		return nil
	}
}
