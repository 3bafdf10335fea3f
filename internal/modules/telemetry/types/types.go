package types

import "time"

type Location struct {
	ID   int64  `json:"location_id"`
	Name string `json:"location_name"`
}

type Device struct {
	ID         int64  `json:"device_id"`
	Name       string `json:"device_name"`
	LocationID int64  `json:"location_id"`
}

// Reading is one stored sensor record. Measurement fields are pointers so a
// field that was absent at ingestion stays absent in JSON output.
type Reading struct {
	ID            int64     `json:"id"`
	DeviceID      int64     `json:"device_id"`
	Time          time.Time `json:"-"`
	Temperature   *float64  `json:"temperature,omitempty"`
	Humidity      *float64  `json:"humidity,omitempty"`
	Pressure      *float64  `json:"pressure,omitempty"`
	WindSpeed     *float64  `json:"wind_speed,omitempty"`
	WindDirection *string   `json:"wind_direction,omitempty"`
}

// Measurements carries the optional sensor fields of an ingest request.
type Measurements struct {
	Time          *time.Time
	Temperature   *float64
	Humidity      *float64
	Pressure      *float64
	WindSpeed     *float64
	WindDirection *string
}

// DeviceReading is a Reading joined with its device and location names for
// display. The redundancy is never persisted.
type DeviceReading struct {
	Reading
	DeviceName   string `json:"device_name"`
	LocationName string `json:"location_name"`
	Timestamp    string `json:"timestamp"`
}

// History holds a windowed single-sensor series as two parallel slices of
// equal length, the shape charting clients expect.
type History struct {
	Labels []string `json:"labels"`
	Data   []any    `json:"data"`
}
