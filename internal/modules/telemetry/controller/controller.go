package controller

import (
	"net/http"

	"github.com/pgarat123/livesky/internal/modules/telemetry/types"
)

// TelemetryService is the query-engine surface the HTTP layer needs.
// *service.Service implements it.
type TelemetryService interface {
	RegisterDevice(locationName string, deviceName string) (types.Device, error)
	IngestReading(deviceID *int64, m types.Measurements) (int64, error)
	ListAllReadings() ([]types.DeviceReading, error)
	GetDeviceHistory(deviceID int64, sensor string, rangeHours int) (types.History, error)
}

type TelemetryController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type telemetryControllerImpl struct {
	service TelemetryService
}

func NewTelemetryController(service TelemetryService) TelemetryController {
	return &telemetryControllerImpl{service: service}
}

func (c *telemetryControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/devices", c.handleRegisterDevice)
	mux.HandleFunc("POST /api/data", c.handleIngest)
	mux.HandleFunc("GET /api/data", c.handleReadings)
	mux.HandleFunc("GET /api/devices/{device_id}/history", c.handleHistory)
}
