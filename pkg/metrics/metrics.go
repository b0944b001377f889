// Package metrics registers the Prometheus collectors shared by the
// HTTP layer, the DB wrapper and the aggregation pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector for one service instance.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec
	DBPoolOpenConns *prometheus.GaugeVec
	DBPoolIdleConns *prometheus.GaugeVec

	ReportsBuiltTotal   *prometheus.CounterVec
	ReportBuildDuration *prometheus.HistogramVec
}

// New registers and returns the collectors, labeled with the service
// name from config.
func New(service string) *Metrics {
	constLabels := prometheus.Labels{"service": service}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "HTTP requests by method, path and status code.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by method and path.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		DBQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Database queries by target database and outcome.",
			ConstLabels: constLabels,
		}, []string{"database", "outcome"}),
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency by target database.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"database"}),
		DBPoolOpenConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Open connections in the pool.",
			ConstLabels: constLabels,
		}, []string{"database"}),
		DBPoolIdleConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Idle connections in the pool.",
			ConstLabels: constLabels,
		}, []string{"database"}),
		ReportsBuiltTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "occupancy_reports_built_total",
			Help:        "Occupancy reports built, by route and outcome.",
			ConstLabels: constLabels,
		}, []string{"route", "outcome"}),
		ReportBuildDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "occupancy_report_build_duration_seconds",
			Help:        "End-to-end pipeline latency by route.",
			ConstLabels: constLabels,
			Buckets:     []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"route"}),
	}
}

// ObserveHTTPRequest records one handled request.
func (m *Metrics) ObserveHTTPRequest(method, path, status string, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveDBQuery records one database query.
func (m *Metrics) ObserveDBQuery(database string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.DBQueriesTotal.WithLabelValues(database, outcome).Inc()
	m.DBQueryDuration.WithLabelValues(database).Observe(elapsed.Seconds())
}

// ObserveReportBuild records one pipeline run.
func (m *Metrics) ObserveReportBuild(route string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.ReportsBuiltTotal.WithLabelValues(route, outcome).Inc()
	m.ReportBuildDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
