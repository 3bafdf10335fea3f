package controller

import (
	"net/http"
	"strconv"
)

func parseDeviceID(r *http.Request) (int64, bool) {
	s := r.PathValue("device_id")
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// parseHistoryQuery extracts the sensor and range parameters. Both fall back
// to their defaults downstream: an empty sensor means temperature and a
// non-positive range means 24 hours. An unparsable range is treated as
// omitted, which is what the original handler did.
func parseHistoryQuery(r *http.Request) (sensor string, rangeHours int) {
	q := r.URL.Query()
	sensor = q.Get("sensor")
	if s := q.Get("range"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			rangeHours = n
		}
	}
	return sensor, rangeHours
}
