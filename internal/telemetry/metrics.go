// Package telemetry holds the Prometheus metrics of the forum backend.
//
// Everything registers against the default registry and is exposed by the API
// server at GET /metrics. HTTP metrics are labelled by gorilla/mux route
// template so user-supplied slugs and ids never become label values.
package telemetry

import (
	"database/sql"
	"time"

	"ngoforum-backend/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route template, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, by method and route template.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)
)

// ModerationDecisionsTotal counts reviewer decisions by content kind and
// outcome (approved/rejected).
//
//	sum by (kind) (increase(moderation_decisions_total{decision="rejected"}[7d]))
var ModerationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "moderation_decisions_total",
		Help: "Total number of moderation decisions, by content kind and decision.",
	},
	[]string{"kind", "decision"},
)

// ModerationSubmissionsTotal counts entries added to the queue
var ModerationSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "moderation_submissions_total",
		Help: "Total number of content submissions queued for moderation, by content kind.",
	},
	[]string{"kind"},
)

var MembershipPaymentsCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "membership_payments_completed_total",
		Help: "Total number of membership payments moved into COMPLETED.",
	},
)

// Batch job metrics, labelled by job name.
var (
	JobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_runs_total",
			Help: "Total number of scheduled job runs, by job and outcome.",
		},
		[]string{"job", "outcome"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "job_duration_seconds",
			Help:    "Duration of scheduled job runs.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"job"},
	)

	MembershipsDeactivatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "memberships_deactivated_total",
			Help: "Total number of organizations deactivated by the membership expiry check.",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "Total number of outbound emails, by template and outcome.",
		},
		[]string{"template", "outcome"},
	)
)

// DBOpenConnections is sampled by StartDBStatsCollector
var DBOpenConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "db_open_connections",
		Help: "Current number of open database connections in the pool.",
	},
)

// StartDBStatsCollector samples the connection pool every 30 seconds until the
// database stops answering pings
func StartDBStatsCollector(db *sql.DB) {
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if err := db.Ping(); err != nil {
				logger.Warn("db stats collector: database unreachable, stopping collector", "error", err)
				return
			}
			DBOpenConnections.Set(float64(db.Stats().OpenConnections))
		}
	}()
}
