package seed

import (
	"math"
	"math/rand"
	"time"

	"github.com/pgarat123/livesky/internal/modules/telemetry/types"
)

var windDirections = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Point is one generated reading: an instant plus a full set of measurements.
type Point struct {
	Time         time.Time
	Measurements types.Measurements
}

// Generate produces one reading per interval over [start, end], inclusive of
// both ends. Temperature follows a diurnal sine wave around 15°C peaking
// mid-afternoon; humidity moves opposite to it; pressure, wind speed and
// wind direction are jittered around plausible values.
func Generate(start, end time.Time, interval time.Duration, rng *rand.Rand) []Point {
	var points []Point
	for current := start; !current.After(end); current = current.Add(interval) {
		hourOfDay := float64(current.Hour()) + float64(current.Minute())/60

		variation := math.Sin((hourOfDay - 9) * (math.Pi / 12))
		temperature := round2(15 + variation*8 + uniform(rng, -1, 1))

		humidity := round2(clamp(0, 100, 70-variation*20+uniform(rng, -5, 5)))

		pressure := round2(1013 + uniform(rng, -5, 5))

		windSpeed := round2(uniform(rng, 0, 25))

		windDirection := windDirections[rng.Intn(len(windDirections))]

		points = append(points, Point{
			Time: current,
			Measurements: types.Measurements{
				Temperature:   &temperature,
				Humidity:      &humidity,
				Pressure:      &pressure,
				WindSpeed:     &windSpeed,
				WindDirection: &windDirection,
			},
		})
	}
	return points
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func clamp(lo, hi, v float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
