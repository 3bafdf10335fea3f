package repository

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/pgarat123/livesky/internal/modules/telemetry/types"
)

//go:embed sql/get-location-by-name.sql
var getLocationByNameSQL string

//go:embed sql/insert-location.sql
var insertLocationSQL string

//go:embed sql/insert-device.sql
var insertDeviceSQL string

//go:embed sql/get-device-by-id.sql
var getDeviceByIDSQL string

//go:embed sql/insert-reading.sql
var insertReadingSQL string

//go:embed sql/list-readings.sql
var listReadingsSQL string

//go:embed sql/sensor-series.sql
var sensorSeriesSQL string

//go:embed sql/reset.sql
var resetSQL string

type TelemetryRepository interface {
	GetLocationByName(name string) (types.Location, error)
	CreateLocation(name string) (types.Location, error)
	CreateDevice(name string, locationID int64) (types.Device, error)
	RegisterDevice(locationName string, deviceName string) (types.Device, error)
	GetDeviceByID(id int64) (types.Device, error)
	InsertReading(deviceID int64, ts time.Time, m types.Measurements) (int64, error)
	ListReadings() ([]types.DeviceReading, error)
	SensorSeries(deviceID int64, sensor types.Sensor, from time.Time) (types.History, error)
	Reset() error
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) TelemetryRepository {
	return &repositoryImpl{db: db}
}

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}

func (r *repositoryImpl) GetLocationByName(name string) (types.Location, error) {
	return getLocationByName(r.db, name)
}

func getLocationByName(q querier, name string) (types.Location, error) {
	var loc types.Location
	err := q.QueryRow(getLocationByNameSQL, name).Scan(&loc.ID, &loc.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Location{}, types.ErrLocationNotFound
		}
		return types.Location{}, fmt.Errorf("get location %q: %w", name, err)
	}
	return loc, nil
}

func (r *repositoryImpl) CreateLocation(name string) (types.Location, error) {
	return createLocation(r.db, name)
}

func createLocation(q querier, name string) (types.Location, error) {
	res, err := q.Exec(insertLocationSQL, name)
	if err != nil {
		if isUniqueViolation(err) {
			return types.Location{}, types.ErrLocationExists
		}
		return types.Location{}, fmt.Errorf("insert location %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return types.Location{}, fmt.Errorf("location insert id: %w", err)
	}
	return types.Location{ID: id, Name: name}, nil
}

func (r *repositoryImpl) CreateDevice(name string, locationID int64) (types.Device, error) {
	return createDevice(r.db, name, locationID)
}

func createDevice(q querier, name string, locationID int64) (types.Device, error) {
	res, err := q.Exec(insertDeviceSQL, name, locationID)
	if err != nil {
		if isUniqueViolation(err) {
			return types.Device{}, types.ErrDeviceExists
		}
		if isForeignKeyViolation(err) {
			return types.Device{}, types.ErrLocationNotFound
		}
		return types.Device{}, fmt.Errorf("insert device %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return types.Device{}, fmt.Errorf("device insert id: %w", err)
	}
	return types.Device{ID: id, Name: name, LocationID: locationID}, nil
}

// RegisterDevice resolves the location by name, creating it when absent, and
// creates the device under it. The whole check-then-insert sequence runs in a
// single transaction so two concurrent registrations of the same new location
// name cannot both create it.
func (r *repositoryImpl) RegisterDevice(locationName string, deviceName string) (types.Device, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return types.Device{}, fmt.Errorf("begin register device: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("rollback register device", "error", err)
		}
	}()

	loc, err := getLocationByName(tx, locationName)
	if errors.Is(err, types.ErrLocationNotFound) {
		loc, err = createLocation(tx, locationName)
		if errors.Is(err, types.ErrLocationExists) {
			// Lost the race to a concurrent writer; the row exists now.
			loc, err = getLocationByName(tx, locationName)
		}
	}
	if err != nil {
		return types.Device{}, err
	}

	dev, err := createDevice(tx, deviceName, loc.ID)
	if err != nil {
		return types.Device{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Device{}, fmt.Errorf("commit register device: %w", err)
	}
	return dev, nil
}

func (r *repositoryImpl) GetDeviceByID(id int64) (types.Device, error) {
	var dev types.Device
	err := r.db.QueryRow(getDeviceByIDSQL, id).Scan(&dev.ID, &dev.Name, &dev.LocationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Device{}, types.ErrDeviceNotFound
		}
		return types.Device{}, fmt.Errorf("get device %d: %w", id, err)
	}
	return dev, nil
}

func (r *repositoryImpl) InsertReading(deviceID int64, ts time.Time, m types.Measurements) (int64, error) {
	// Whole-second UTC RFC3339 is fixed-width, so the TEXT column sorts and
	// compares chronologically. The API serializes at second precision anyway.
	tsStr := ts.UTC().Truncate(time.Second).Format(time.RFC3339)
	res, err := r.db.Exec(insertReadingSQL,
		deviceID, tsStr,
		m.Temperature, m.Humidity, m.Pressure, m.WindSpeed, m.WindDirection,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, types.ErrDeviceNotFound
		}
		return 0, fmt.Errorf("insert reading: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading insert id: %w", err)
	}
	return id, nil
}

func (r *repositoryImpl) ListReadings() ([]types.DeviceReading, error) {
	rows, err := r.db.Query(listReadingsSQL)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close readings rows", "error", err)
		}
	}()

	out := []types.DeviceReading{}
	for rows.Next() {
		var rec types.DeviceReading
		var ts string
		err := rows.Scan(
			&rec.ID, &rec.DeviceID, &ts,
			&rec.Temperature, &rec.Humidity, &rec.Pressure, &rec.WindSpeed, &rec.WindDirection,
			&rec.DeviceName, &rec.LocationName,
		)
		if err != nil {
			return nil, err
		}
		t, err := parseTimestamp(ts)
		if err != nil {
			return nil, err
		}
		rec.Time = t
		rec.Timestamp = types.FormatTimestamp(t)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SensorSeries returns the readings of one device from `from` onward where the
// selected column is non-NULL, oldest first, as parallel label/value slices.
func (r *repositoryImpl) SensorSeries(deviceID int64, sensor types.Sensor, from time.Time) (types.History, error) {
	query := fmt.Sprintf(sensorSeriesSQL, sensor.Column())
	fromStr := from.UTC().Truncate(time.Second).Format(time.RFC3339)
	rows, err := r.db.Query(query, deviceID, fromStr)
	if err != nil {
		return types.History{}, fmt.Errorf("sensor series: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close series rows", "error", err)
		}
	}()

	hist := types.History{Labels: []string{}, Data: []any{}}
	for rows.Next() {
		var ts string
		var err error
		if sensor.Numeric() {
			var v float64
			if err = rows.Scan(&ts, &v); err == nil {
				hist.Data = append(hist.Data, v)
			}
		} else {
			var v string
			if err = rows.Scan(&ts, &v); err == nil {
				hist.Data = append(hist.Data, v)
			}
		}
		if err != nil {
			return types.History{}, err
		}
		t, err := parseTimestamp(ts)
		if err != nil {
			return types.History{}, err
		}
		hist.Labels = append(hist.Labels, types.FormatTimestamp(t))
	}
	return hist, rows.Err()
}

// Reset deletes all rows and resets the id sequences. Used by the seed tool,
// never by the service.
func (r *repositoryImpl) Reset() error {
	if _, err := r.db.Exec(resetSQL); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	// sqlite_sequence only exists once an AUTOINCREMENT row has been written;
	// on a fresh database there is nothing to reset.
	_, err := r.db.Exec(`DELETE FROM sqlite_sequence WHERE name IN ('sensor_readings', 'devices', 'locations')`)
	if err != nil && !strings.Contains(err.Error(), "no such table") {
		return fmt.Errorf("reset sequences: %w", err)
	}
	return nil
}

func parseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		var err2 error
		t, err2 = time.Parse(time.RFC3339, ts)
		if err2 != nil {
			return time.Time{}, fmt.Errorf("parse timestamp %q: RFC3339Nano: %w; RFC3339: %w", ts, err, err2)
		}
	}
	return t, nil
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}

func isForeignKeyViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintForeignKey
}
