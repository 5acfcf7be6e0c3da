// Package metrics owns the prometheus collectors for HTTP traffic and KPI computations
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "maintkpi"

var (
	requestBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}
	computeBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}
	recordBuckets  = prometheus.ExponentialBuckets(10, 4, 8)
)

// Metrics is a set of collectors. A nil *Metrics records nothing
type Metrics struct {
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	computations   *prometheus.CounterVec
	computeLatency *prometheus.HistogramVec
	records        *prometheus.HistogramVec
	queries        *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
// Collectors already registered under the same name are reused
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "http_requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "http_request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   requestBuckets,
		}, []string{"method", "route", "status"}),
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "computations_total",
			Help:      "KPI computations by report kind, granularity and outcome",
		}, []string{"kind", "granularity", "outcome"}),
		computeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "computation_duration_seconds",
			Help:      "Time spent fetching records and aggregating one report",
			Buckets:   computeBuckets,
		}, []string{"kind"}),
		records: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "input_records",
			Help:      "Records fed into one KPI computation",
			Buckets:   recordBuckets,
		}, []string{"kind"}),
		queries: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "query_duration_seconds",
			Help:      "Record source query latency including the row scan",
			Buckets:   requestBuckets,
		}, []string{"backend", "outcome"}),
	}
	if reg == nil {
		return m
	}
	m.requests = register(reg, m.requests)
	m.requestLatency = register(reg, m.requestLatency)
	m.computations = register(reg, m.computations)
	m.computeLatency = register(reg, m.computeLatency)
	m.records = register(reg, m.records)
	m.queries = register(reg, m.queries)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

var (
	defaultOnce sync.Once
	defaultSet  *Metrics
)

// Default returns the process wide set registered on the prometheus default registry
func Default() *Metrics {
	defaultOnce.Do(func() { defaultSet = New(prometheus.DefaultRegisterer) })
	return defaultSet
}

// ObserveRequest records one finished HTTP request. route is the matched pattern, not the raw path
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{"method": method, "route": route, "status": strconv.Itoa(status)}
	m.requests.With(labels).Inc()
	m.requestLatency.With(labels).Observe(d.Seconds())
}

// ObserveComputation records one report computation
func (m *Metrics) ObserveComputation(kind, granularity string, records int, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.computations.WithLabelValues(kind, granularity, outcome).Inc()
	m.computeLatency.WithLabelValues(kind).Observe(d.Seconds())
	if err == nil {
		m.records.WithLabelValues(kind).Observe(float64(records))
	}
}

// ObserveQuery records one backend query, "pg" or "ch"
func (m *Metrics) ObserveQuery(backend string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.queries.WithLabelValues(backend, outcome).Observe(d.Seconds())
}

// Handler serves g in the prometheus text format; nil means the default gatherer
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
