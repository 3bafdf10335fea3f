// Package seed clears and repopulates the store with realistic sample data.
// It is a caller of the telemetry repository, not part of the query engine.
package seed

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pgarat123/livesky/internal/modules/telemetry/repository"
	"github.com/pgarat123/livesky/internal/modules/telemetry/types"
)

type Seeder struct {
	repository repository.TelemetryRepository
	logger     *slog.Logger
	now        func() time.Time
	rng        *rand.Rand
}

func NewSeeder(repository repository.TelemetryRepository, logger *slog.Logger) *Seeder {
	return &Seeder{
		repository: repository,
		logger:     logger,
		now:        time.Now,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Clear removes all rows and resets the id sequences.
func (s *Seeder) Clear() error {
	s.logger.Info("clearing all data and resetting sequences")
	if err := s.repository.Reset(); err != nil {
		return err
	}
	s.logger.Info("data cleared")
	return nil
}

// Seed clears the store, registers the profile's devices and fills in
// generated readings over the profile's window.
func (s *Seeder) Seed(p Profile) error {
	if err := s.Clear(); err != nil {
		return err
	}

	s.logger.Info("seeding database")
	now := s.now().UTC()
	start := now.Add(-time.Duration(p.WindowDays) * 24 * time.Hour)
	interval := time.Duration(p.IntervalMinutes) * time.Minute

	for _, spec := range p.Devices {
		loc, err := s.ensureLocation(spec.Location)
		if err != nil {
			return err
		}
		dev, err := s.repository.CreateDevice(spec.Name, loc.ID)
		if err != nil {
			return fmt.Errorf("create device %q: %w", spec.Name, err)
		}

		points := Generate(start, now, interval, s.rng)
		for _, pt := range points {
			if _, err := s.repository.InsertReading(dev.ID, pt.Time, pt.Measurements); err != nil {
				return fmt.Errorf("insert reading for device %d: %w", dev.ID, err)
			}
		}
		s.logger.Info("seeded readings", "device_id", dev.ID, "device_name", dev.Name, "count", len(points))
	}

	s.logger.Info("database seeded")
	return nil
}

func (s *Seeder) ensureLocation(name string) (types.Location, error) {
	loc, err := s.repository.CreateLocation(name)
	if errors.Is(err, types.ErrLocationExists) {
		return s.repository.GetLocationByName(name)
	}
	if err != nil {
		return types.Location{}, fmt.Errorf("create location %q: %w", name, err)
	}
	return loc, nil
}
