// Package metrics owns the prometheus registry shared by the api and the fetch pipeline
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "reviewharvest"

// Metrics holds every collector the service exports
type Metrics struct {
	reg *prometheus.Registry

	// http
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// fetch pipeline
	PagesFetched   *prometheus.CounterVec
	RecordsKept    prometheus.Counter
	RecordsSkipped *prometheus.CounterVec
	Jobs           *prometheus.CounterVec
	JobDuration    prometheus.Histogram

	// crawl tasks
	TasksRunning prometheus.Gauge
	TasksStarted *prometheus.CounterVec

	// daily schedule
	ScheduleRuns *prometheus.CounterVec
}

// New builds a Metrics bound to a private registry, so tests can create as many as they like
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		PagesFetched: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_fetched_total",
			Help:      "Comment pages requested by outcome (ok, empty, error)",
		}, []string{"outcome"}),
		RecordsKept: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_kept_total",
			Help:      "Normalized review records inside the recency window",
		}),
		RecordsSkipped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_skipped_total",
			Help:      "Raw review records dropped by reason",
		}, []string{"reason"}),
		Jobs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Fetch jobs by result (success, failed)",
		}, []string{"result"}),
		JobDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Wall time of a fetch job including politeness delays",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),

		TasksRunning: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "crawl_tasks_running",
			Help:      "Crawl tasks currently running",
		}),
		TasksStarted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "crawl_tasks_started_total",
			Help:      "Crawl tasks by trigger (api, schedule)",
		}, []string{"trigger"}),

		ScheduleRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_products_total",
			Help:      "Scheduled product runs by outcome (started, skipped, failed)",
		}, []string{"outcome"}),
	}
}

// Registry exposes the underlying registry for tests and custom collectors
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// ObserveHTTP matches the access log Observe hook
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
