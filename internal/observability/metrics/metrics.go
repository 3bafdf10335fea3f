package metrics

import (
	"database/sql"
	"log/slog"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "livesky_"

var httpRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: metricPrefix + "http_requests_total",
		Help: "HTTP requests by method and status",
	},
	[]string{"method", "status"},
)

// Register installs all collectors on the default registry. Call once at
// startup, before the server starts handling requests.
func Register(db *sql.DB, logger *slog.Logger) {
	prometheus.MustRegister(httpRequests)
	registerDBMetrics(db, logger)
}

// ObserveRequest counts one handled HTTP request.
func ObserveRequest(method string, status int) {
	httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}
