package service

import (
	"strings"
	"time"

	"github.com/pgarat123/livesky/internal/modules/telemetry/repository"
	"github.com/pgarat123/livesky/internal/modules/telemetry/types"
)

const defaultRangeHours = 24

// Service is the read/write surface over the store. It holds no entity state
// of its own; every operation is a single store transaction.
type Service struct {
	repository repository.TelemetryRepository
	now        func() time.Time
}

func NewService(repository repository.TelemetryRepository) *Service {
	return &Service{repository: repository, now: time.Now}
}

// RegisterDevice creates a device under the named location, creating the
// location first when it does not exist yet. Reusing a location name is not a
// conflict; reusing a device name is.
func (s *Service) RegisterDevice(locationName string, deviceName string) (types.Device, error) {
	if strings.TrimSpace(deviceName) == "" {
		return types.Device{}, types.NewValidationError("device_name missing")
	}
	if strings.TrimSpace(locationName) == "" {
		return types.Device{}, types.NewValidationError("location_name missing")
	}
	return s.repository.RegisterDevice(locationName, deviceName)
}

// IngestReading persists one reading for an existing device. deviceID is a
// pointer so a request that omits the field entirely is distinguishable from
// one that references an unknown device. Fields absent from m stay NULL.
// Measurement values are not range-checked; wind_direction accepts any string.
func (s *Service) IngestReading(deviceID *int64, m types.Measurements) (int64, error) {
	if deviceID == nil {
		return 0, types.NewValidationError("device_id missing")
	}
	if _, err := s.repository.GetDeviceByID(*deviceID); err != nil {
		return 0, err
	}
	ts := s.now().UTC()
	if m.Time != nil {
		ts = m.Time.UTC()
	}
	return s.repository.InsertReading(*deviceID, ts, m)
}

// ListAllReadings returns every reading denormalized with device and location
// names, newest first. A full scan with no pagination — a known scaling
// limit of the API, kept as-is.
func (s *Service) ListAllReadings() ([]types.DeviceReading, error) {
	return s.repository.ListReadings()
}

// GetDeviceHistory returns the selected sensor's readings for one device over
// the last rangeHours hours as parallel label/value slices, oldest first.
// Readings where that sensor is NULL are excluded. An unknown device is not
// an error: the result is simply empty. sensor defaults to temperature,
// rangeHours to 24.
func (s *Service) GetDeviceHistory(deviceID int64, sensor string, rangeHours int) (types.History, error) {
	if sensor == "" {
		sensor = string(types.SensorTemperature)
	}
	sel, ok := types.ParseSensor(sensor)
	if !ok {
		return types.History{}, types.NewValidationError("invalid sensor type")
	}
	if rangeHours <= 0 {
		rangeHours = defaultRangeHours
	}
	from := s.now().UTC().Add(-time.Duration(rangeHours) * time.Hour)
	return s.repository.SensorSeries(deviceID, sel, from)
}
