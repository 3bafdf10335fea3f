package types

import (
	"testing"
	"time"
)

func TestParseSensor(t *testing.T) {
	valid := []string{"temperature", "humidity", "pressure", "wind_speed", "wind_direction"}
	for _, s := range valid {
		sensor, ok := ParseSensor(s)
		if !ok {
			t.Errorf("ParseSensor(%q) rejected a valid sensor", s)
		}
		if sensor.Column() != s {
			t.Errorf("Column() = %q; want %q", sensor.Column(), s)
		}
	}

	for _, s := range []string{"", "co2", "Temperature", "temperature "} {
		if _, ok := ParseSensor(s); ok {
			t.Errorf("ParseSensor(%q) accepted an invalid sensor", s)
		}
	}
}

func TestSensorNumeric(t *testing.T) {
	if !SensorTemperature.Numeric() {
		t.Error("temperature should be numeric")
	}
	if SensorWindDirection.Numeric() {
		t.Error("wind_direction should not be numeric")
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, 8, 16, 16, 10, 0, 0, time.UTC)
	if got := FormatTimestamp(ts); got != "2025-08-16T16:10:00Z" {
		t.Errorf("FormatTimestamp = %q; want 2025-08-16T16:10:00Z", got)
	}

	// Non-UTC instants are rendered in UTC; sub-second precision is dropped.
	warsaw := time.FixedZone("CEST", 2*60*60)
	ts = time.Date(2025, 8, 16, 18, 10, 0, 123456789, warsaw)
	if got := FormatTimestamp(ts); got != "2025-08-16T16:10:00Z" {
		t.Errorf("FormatTimestamp = %q; want 2025-08-16T16:10:00Z", got)
	}
}
