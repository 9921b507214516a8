package weather

import (
	"math/rand"
	"time"

	"github.com/anubhav-001/saferov/internal/common"
)

// Fallback synthesizes weather data when the live source is unavailable.
// Values are randomized inside documented bounds around a per-metro base
// temperature; the tables are named configuration so tests can swap them.
type Fallback struct {
	BaseTemps       map[string]float64
	DefaultBaseTemp float64
	Conditions      []string
}

// DefaultFallback returns the stock synthetic-weather tables.
func DefaultFallback() *Fallback {
	return &Fallback{
		BaseTemps: map[string]float64{
			"Delhi":     30,
			"Mumbai":    30,
			"Bangalore": 28,
			"Chennai":   28,
			"Kolkata":   32,
		},
		DefaultBaseTemp: 25,
		Conditions:      []string{"Clear", "Partly Cloudy", "Cloudy", "Light Rain"},
	}
}

func (f *Fallback) baseTemp(location string) float64 {
	for metro, temp := range f.BaseTemps {
		if common.HasAny(location, metro) {
			return temp
		}
	}
	return f.DefaultBaseTemp
}

// Snapshot synthesizes current conditions: temperature within ±5°C of the
// metro base, humidity 40-80%, wind 5-25 km/h, visibility 8-15 km, UV 3-8,
// and no alerts.
func (f *Fallback) Snapshot(location string) Snapshot {
	base := f.baseTemp(location)
	return Snapshot{
		Location:      location,
		TemperatureC:  base + uniform(-5, 5),
		HumidityPct:   uniform(40, 80),
		WindSpeedKmh:  uniform(5, 25),
		VisibilityKm:  uniform(8, 15),
		Conditions:    f.Conditions[rand.Intn(len(f.Conditions))],
		UVIndex:       uniform(3, 8),
		FeelsLikeC:    base + uniform(-3, 3),
		PressureHpa:   uniform(1000, 1020),
		CloudCoverPct: uniform(0, 50),
		Source:        SourceFallback,
	}
}

// Forecast synthesizes a daily outlook starting today.
func (f *Fallback) Forecast(location string, days int, now time.Time) []ForecastDay {
	base := f.baseTemp(location)
	out := make([]ForecastDay, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, ForecastDay{
			Date:              now.AddDate(0, 0, i).Format("2006-01-02"),
			TempMaxC:          base + uniform(-3, 8),
			TempMinC:          base + uniform(-8, 3),
			Conditions:        f.Conditions[rand.Intn(len(f.Conditions))],
			PrecipProbability: uniform(0, 30),
			WindSpeedKmh:      uniform(5, 20),
			HumidityPct:       uniform(40, 80),
		})
	}
	return out
}

func uniform(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}
