package service

import (
	"log/slog"

	"github.com/pgarat123/livesky/internal/modules/telemetry/types"
	"github.com/pgarat123/livesky/internal/mqtt"
)

// RegisterMQTTHandler feeds readings published on the broker through the same
// ingestion path as HTTP.
func (s *Service) RegisterMQTTHandler(subscriber mqtt.ReadingSubscriber, logger *slog.Logger) {
	subscriber.SetMessageHandler(func(msg mqtt.ReadingMessage) error {
		id, err := s.IngestReading(msg.DeviceID, types.Measurements{
			Time:          msg.Timestamp,
			Temperature:   msg.Temperature,
			Humidity:      msg.Humidity,
			Pressure:      msg.Pressure,
			WindSpeed:     msg.WindSpeed,
			WindDirection: msg.WindDirection,
		})
		if err != nil {
			logger.Error("failed to store reading",
				"device_id", msg.DeviceID,
				"error", err,
			)
			return err
		}

		logger.Debug("stored reading", "reading_id", id)
		return nil
	})
}
