package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DeviceSpec names one device to register and the location it belongs to.
type DeviceSpec struct {
	Name     string `yaml:"name"`
	Location string `yaml:"location"`
}

// Profile describes what the seed command generates: which devices exist and
// the window/interval of the synthetic readings.
type Profile struct {
	Devices         []DeviceSpec `yaml:"devices"`
	WindowDays      int          `yaml:"window_days"`
	IntervalMinutes int          `yaml:"interval_minutes"`
}

// DefaultProfile mirrors the original fixture: one weather station in a
// garden, a week of readings every 15 minutes.
func DefaultProfile() Profile {
	return Profile{
		Devices: []DeviceSpec{
			{Name: "Weather Station Pro", Location: "My Garden"},
		},
		WindowDays:      7,
		IntervalMinutes: 15,
	}
}

// LoadProfile reads a YAML profile from path. An empty path returns the
// default profile.
func LoadProfile(path string) (Profile, error) {
	if path == "" {
		return DefaultProfile(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile file: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile file: %w", err)
	}

	if p.WindowDays == 0 {
		p.WindowDays = 7
	}
	if p.IntervalMinutes == 0 {
		p.IntervalMinutes = 15
	}

	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("invalid profile: %w", err)
	}
	return p, nil
}

func (p Profile) Validate() error {
	if len(p.Devices) == 0 {
		return fmt.Errorf("at least one device is required")
	}
	for i, d := range p.Devices {
		if d.Name == "" {
			return fmt.Errorf("device %d: name is required", i)
		}
		if d.Location == "" {
			return fmt.Errorf("device %d: location is required", i)
		}
	}
	if p.WindowDays < 0 {
		return fmt.Errorf("window_days must not be negative")
	}
	if p.IntervalMinutes <= 0 {
		return fmt.Errorf("interval_minutes must be positive")
	}
	return nil
}
