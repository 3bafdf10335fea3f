package service

import (
	"errors"
	"testing"
	"time"

	"github.com/pgarat123/livesky/internal/modules/telemetry/types"
)

type mockRepo struct {
	device    types.Device
	deviceErr error

	registered    types.Device
	registeredErr error

	insertID  int64
	insertErr error

	readings    []types.DeviceReading
	readingsErr error

	series    types.History
	seriesErr error

	gotDeviceID int64
	gotTS       time.Time
	gotFields   types.Measurements
	gotSensor   types.Sensor
	gotFrom     time.Time
}

func (m *mockRepo) GetLocationByName(name string) (types.Location, error) {
	return types.Location{}, types.ErrLocationNotFound
}

func (m *mockRepo) CreateLocation(name string) (types.Location, error) {
	return types.Location{ID: 1, Name: name}, nil
}

func (m *mockRepo) CreateDevice(name string, locationID int64) (types.Device, error) {
	return types.Device{ID: 1, Name: name, LocationID: locationID}, nil
}

func (m *mockRepo) RegisterDevice(locationName, deviceName string) (types.Device, error) {
	return m.registered, m.registeredErr
}

func (m *mockRepo) GetDeviceByID(id int64) (types.Device, error) {
	return m.device, m.deviceErr
}

func (m *mockRepo) InsertReading(deviceID int64, ts time.Time, fields types.Measurements) (int64, error) {
	m.gotDeviceID = deviceID
	m.gotTS = ts
	m.gotFields = fields
	return m.insertID, m.insertErr
}

func (m *mockRepo) ListReadings() ([]types.DeviceReading, error) {
	return m.readings, m.readingsErr
}

func (m *mockRepo) SensorSeries(deviceID int64, sensor types.Sensor, from time.Time) (types.History, error) {
	m.gotDeviceID = deviceID
	m.gotSensor = sensor
	m.gotFrom = from
	return m.series, m.seriesErr
}

func (m *mockRepo) Reset() error { return nil }

func newTestService(repo *mockRepo, now time.Time) *Service {
	s := NewService(repo)
	s.now = func() time.Time { return now }
	return s
}

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }

func TestRegisterDevice_Validation(t *testing.T) {
	svc := NewService(&mockRepo{})

	var verr *types.ValidationError
	if _, err := svc.RegisterDevice("Garden", ""); !errors.As(err, &verr) {
		t.Errorf("empty device name: err = %v; want ValidationError", err)
	}
	if _, err := svc.RegisterDevice("", "StationA"); !errors.As(err, &verr) {
		t.Errorf("empty location name: err = %v; want ValidationError", err)
	}
}

func TestRegisterDevice_ConflictPassesThrough(t *testing.T) {
	svc := NewService(&mockRepo{registeredErr: types.ErrDeviceExists})

	_, err := svc.RegisterDevice("Garden", "StationA")
	if !errors.Is(err, types.ErrDeviceExists) {
		t.Fatalf("err = %v; want ErrDeviceExists", err)
	}
}

func TestIngestReading_MissingDeviceID(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.IngestReading(nil, types.Measurements{Temperature: f64(20)})
	var verr *types.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v; want ValidationError", err)
	}
	if verr.Msg != "device_id missing" {
		t.Errorf("message = %q; want device_id missing", verr.Msg)
	}
}

func TestIngestReading_UnknownDevice(t *testing.T) {
	svc := NewService(&mockRepo{deviceErr: types.ErrDeviceNotFound})

	_, err := svc.IngestReading(i64(42), types.Measurements{})
	if !errors.Is(err, types.ErrDeviceNotFound) {
		t.Fatalf("err = %v; want ErrDeviceNotFound", err)
	}
}

func TestIngestReading_DefaultsTimestampToNow(t *testing.T) {
	now := time.Date(2025, 8, 16, 16, 10, 0, 0, time.UTC)
	repo := &mockRepo{device: types.Device{ID: 42}, insertID: 7}
	svc := newTestService(repo, now)

	id, err := svc.IngestReading(i64(42), types.Measurements{Humidity: f64(50)})
	if err != nil {
		t.Fatalf("IngestReading: %v", err)
	}
	if id != 7 {
		t.Errorf("id = %d; want 7", id)
	}
	if !repo.gotTS.Equal(now) {
		t.Errorf("timestamp = %v; want %v", repo.gotTS, now)
	}
	if repo.gotFields.Humidity == nil || *repo.gotFields.Humidity != 50 {
		t.Errorf("humidity not passed through: %+v", repo.gotFields)
	}
	if repo.gotFields.Temperature != nil {
		t.Errorf("absent temperature must stay nil")
	}
}

func TestIngestReading_KeepsCallerTimestamp(t *testing.T) {
	now := time.Date(2025, 8, 16, 16, 10, 0, 0, time.UTC)
	given := time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)
	repo := &mockRepo{device: types.Device{ID: 42}}
	svc := newTestService(repo, now)

	_, err := svc.IngestReading(i64(42), types.Measurements{Time: &given})
	if err != nil {
		t.Fatalf("IngestReading: %v", err)
	}
	if !repo.gotTS.Equal(given) {
		t.Errorf("timestamp = %v; want caller-supplied %v", repo.gotTS, given)
	}
}

func TestGetDeviceHistory_Defaults(t *testing.T) {
	now := time.Date(2025, 8, 16, 12, 0, 0, 0, time.UTC)
	repo := &mockRepo{series: types.History{Labels: []string{}, Data: []any{}}}
	svc := newTestService(repo, now)

	_, err := svc.GetDeviceHistory(1, "", 0)
	if err != nil {
		t.Fatalf("GetDeviceHistory: %v", err)
	}
	if repo.gotSensor != types.SensorTemperature {
		t.Errorf("sensor = %q; want temperature", repo.gotSensor)
	}
	if want := now.Add(-24 * time.Hour); !repo.gotFrom.Equal(want) {
		t.Errorf("window start = %v; want %v", repo.gotFrom, want)
	}
}

func TestGetDeviceHistory_ExplicitRange(t *testing.T) {
	now := time.Date(2025, 8, 16, 12, 0, 0, 0, time.UTC)
	repo := &mockRepo{series: types.History{Labels: []string{}, Data: []any{}}}
	svc := newTestService(repo, now)

	_, err := svc.GetDeviceHistory(1, "wind_speed", 1)
	if err != nil {
		t.Fatalf("GetDeviceHistory: %v", err)
	}
	if repo.gotSensor != types.SensorWindSpeed {
		t.Errorf("sensor = %q; want wind_speed", repo.gotSensor)
	}
	if want := now.Add(-time.Hour); !repo.gotFrom.Equal(want) {
		t.Errorf("window start = %v; want %v", repo.gotFrom, want)
	}
}

func TestGetDeviceHistory_InvalidSensor(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.GetDeviceHistory(1, "co2", 24)
	var verr *types.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v; want ValidationError", err)
	}
	if verr.Msg != "invalid sensor type" {
		t.Errorf("message = %q; want invalid sensor type", verr.Msg)
	}
}
