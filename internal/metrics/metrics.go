package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// Business metrics
	statementsRenderedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statements_rendered_total",
			Help: "Total number of settlement statements rendered",
		},
		[]string{"format"},
	)

	exportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exports_total",
			Help: "Total number of admin data exports",
		},
		[]string{"type"},
	)

	auditEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_entries_total",
			Help: "Total number of audit entries recorded",
		},
		[]string{"category", "success"},
	)

	auditPersistFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_persist_failures_total",
			Help: "Total number of audit entries that could not be persisted",
		},
		[]string{"sink"},
	)
)

// Middleware records request count and latency by route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry.
func Handler() http.Handler { return promhttp.Handler() }

func RecordStatementRendered(format string) {
	statementsRenderedTotal.WithLabelValues(format).Inc()
}

func RecordExport(kind string) {
	exportsTotal.WithLabelValues(kind).Inc()
}

func RecordAuditEntry(category string, success bool) {
	auditEntriesTotal.WithLabelValues(category, strconv.FormatBool(success)).Inc()
}

func RecordAuditPersistFailure(sink string) {
	auditPersistFailuresTotal.WithLabelValues(sink).Inc()
}
