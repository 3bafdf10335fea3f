package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pgarat123/livesky/internal/modules/telemetry/types"
	"github.com/pgarat123/livesky/internal/utils"
)

type registerDeviceRequest struct {
	DeviceName   string `json:"device_name"`
	LocationName string `json:"location_name"`
}

func (c *telemetryControllerImpl) handleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	var req registerDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	dev, err := c.service.RegisterDevice(req.LocationName, req.DeviceName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	slog.Info("device registered", "device_id", dev.ID, "device_name", dev.Name, "location_id", dev.LocationID)
	utils.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": fmt.Sprintf("device %q registered with id %d", dev.Name, dev.ID),
	})
}

type ingestRequest struct {
	DeviceID      *int64     `json:"device_id"`
	Timestamp     *time.Time `json:"timestamp"`
	Temperature   *float64   `json:"temperature"`
	Humidity      *float64   `json:"humidity"`
	Pressure      *float64   `json:"pressure"`
	WindSpeed     *float64   `json:"wind_speed"`
	WindDirection *string    `json:"wind_direction"`
}

func (c *telemetryControllerImpl) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id, err := c.service.IngestReading(req.DeviceID, types.Measurements{
		Time:          req.Timestamp,
		Temperature:   req.Temperature,
		Humidity:      req.Humidity,
		Pressure:      req.Pressure,
		WindSpeed:     req.WindSpeed,
		WindDirection: req.WindDirection,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": fmt.Sprintf("reading %d stored", id),
	})
}

func (c *telemetryControllerImpl) handleReadings(w http.ResponseWriter, r *http.Request) {
	readings, err := c.service.ListAllReadings()
	if err != nil {
		slog.Error("list readings failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load readings")
		return
	}
	utils.WriteJSON(w, http.StatusOK, readings)
}

func (c *telemetryControllerImpl) handleHistory(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := parseDeviceID(r)
	if !ok {
		// Matches the original route converter: a non-integer id is an
		// unroutable path, not a bad request.
		utils.WriteError(w, http.StatusNotFound, "device id must be an integer")
		return
	}

	sensor, rangeHours := parseHistoryQuery(r)
	hist, err := c.service.GetDeviceHistory(deviceID, sensor, rangeHours)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, hist)
}

// writeServiceError maps the core's failure classes onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *types.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.WriteError(w, http.StatusBadRequest, verr.Msg)
	case errors.Is(err, types.ErrDeviceNotFound), errors.Is(err, types.ErrLocationNotFound):
		utils.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, types.ErrDeviceExists), errors.Is(err, types.ErrLocationExists):
		utils.WriteError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("telemetry operation failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
