package metrics

import (
	"database/sql"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

func registerDBMetrics(db *sql.DB, logger *slog.Logger) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "locations_total",
			Help: "Stored locations",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM locations")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "devices_total",
			Help: "Registered devices",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM devices")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "sensor_readings_total",
			Help: "Stored sensor readings",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM sensor_readings")
		},
	))
}

func queryCount(db *sql.DB, logger *slog.Logger, query string) float64 {
	if db == nil {
		return 0
	}
	var count int64
	if err := db.QueryRow(query).Scan(&count); err != nil {
		if logger != nil {
			logger.Warn("metrics query failed", "error", err)
		}
		return 0
	}
	if count < 0 {
		return 0
	}
	return float64(count)
}
