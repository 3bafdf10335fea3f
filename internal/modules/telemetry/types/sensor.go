package types

import "time"

// Sensor enumerates the five measurement columns a history query can select.
// The string form is the wire value of the `sensor` query parameter.
type Sensor string

const (
	SensorTemperature   Sensor = "temperature"
	SensorHumidity      Sensor = "humidity"
	SensorPressure      Sensor = "pressure"
	SensorWindSpeed     Sensor = "wind_speed"
	SensorWindDirection Sensor = "wind_direction"
)

// ParseSensor maps a wire value to a Sensor. Anything outside the enumeration
// is rejected here, before it can reach the store.
func ParseSensor(s string) (Sensor, bool) {
	switch Sensor(s) {
	case SensorTemperature, SensorHumidity, SensorPressure, SensorWindSpeed, SensorWindDirection:
		return Sensor(s), true
	}
	return "", false
}

// Column returns the sensor_readings column backing the sensor. Only values
// produced by ParseSensor reach SQL, so this is safe to interpolate.
func (s Sensor) Column() string {
	return string(s)
}

// Numeric reports whether the sensor's column stores REAL values.
// wind_direction is the one TEXT column.
func (s Sensor) Numeric() bool {
	return s != SensorWindDirection
}

// FormatTimestamp renders a stored instant the way the API serializes it:
// ISO-8601 at second precision with an asserted trailing Z. The store does
// not track a timezone; readings are written in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05") + "Z"
}
