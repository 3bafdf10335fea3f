package telemetry

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/pgarat123/livesky/internal/modules/telemetry/controller"
	"github.com/pgarat123/livesky/internal/modules/telemetry/repository"
	"github.com/pgarat123/livesky/internal/modules/telemetry/service"
	"github.com/pgarat123/livesky/internal/mqtt"
)

// RegisterFeature wires the telemetry module: store, query engine, HTTP
// routes, and (when a subscriber is given) the MQTT ingest bridge.
func RegisterFeature(mux *http.ServeMux, db *sql.DB, subscriber mqtt.ReadingSubscriber, logger *slog.Logger) {
	telemetryRepository := repository.NewRepository(db)
	telemetryService := service.NewService(telemetryRepository)
	telemetryController := controller.NewTelemetryController(telemetryService)
	telemetryController.RegisterRoutes(mux)
	if subscriber != nil {
		telemetryService.RegisterMQTTHandler(subscriber, logger)
	}
}
