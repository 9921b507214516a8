package crime

import (
	"math/rand"
	"time"

	"github.com/anubhav-001/saferov/internal/common"
)

// BaseProfile is the fixed crime profile the fallback generator scales.
type BaseProfile struct {
	TotalCrimes    int
	ViolentCrimes  int
	PropertyCrimes int
	CyberCrimes    int
	Population     int
}

// RegionOverride lowers the baseline safety score inside a bounding box.
type RegionOverride struct {
	Name           string
	MinLat, MaxLat float64
	MinLon, MaxLon float64
	SafetyScore    float64
}

// Fallback generates deterministic synthetic crime data when the live source
// is unavailable. The tables are named configuration, not physical truth:
// tests and deployments can swap them wholesale.
type Fallback struct {
	Base             BaseProfile
	StateMultipliers map[string]float64
	BaseMonthlyCount int
	BaselineSafety   float64
	Regions          []RegionOverride
}

// DefaultFallback returns the stock synthetic-data tables.
func DefaultFallback() *Fallback {
	return &Fallback{
		Base: BaseProfile{
			TotalCrimes:    1500,
			ViolentCrimes:  300,
			PropertyCrimes: 800,
			CyberCrimes:    200,
			Population:     500000,
		},
		StateMultipliers: map[string]float64{
			"Delhi":     1.5,
			"Mumbai":    1.3,
			"Bangalore": 1.1,
			"Chennai":   1.0,
			"Kolkata":   1.2,
			"Hyderabad": 1.0,
		},
		BaseMonthlyCount: 100,
		BaselineSafety:   7.0,
		Regions: []RegionOverride{
			{Name: "Delhi NCR", MinLat: 28.0, MaxLat: 29.0, MinLon: 77.0, MaxLon: 78.0, SafetyScore: 6.0},
			{Name: "Mumbai Metro", MinLat: 19.0, MaxLat: 20.0, MinLon: 72.0, MaxLon: 73.0, SafetyScore: 6.5},
		},
	}
}

func (f *Fallback) multiplier(state string) float64 {
	if m, ok := f.StateMultipliers[state]; ok {
		return m
	}
	return 1.0
}

// Snapshot derives plausible statistics from the base profile scaled by the
// per-state multiplier.
func (f *Fallback) Snapshot(state, district string, year int) Snapshot {
	m := f.multiplier(state)
	return Snapshot{
		State:          state,
		District:       district,
		Year:           year,
		TotalCrimes:    int(float64(f.Base.TotalCrimes) * m),
		ViolentCrimes:  int(float64(f.Base.ViolentCrimes) * m),
		PropertyCrimes: int(float64(f.Base.PropertyCrimes) * m),
		CyberCrimes:    int(float64(f.Base.CyberCrimes) * m),
		Population:     int(float64(f.Base.Population) * m),
		CrimeRatePer100k: common.Round2(
			float64(f.Base.TotalCrimes) * m / float64(f.Base.Population) * 100000,
		),
		Source: SourceFallback,
	}
}

// Trend synthesizes a monthly series ending at now, oldest first. A seasonal
// multiplier peaks in mid-winter and mid-summer months, with ±10% jitter per
// point. The synthetic direction is always stable.
func (f *Fallback) Trend(state, district string, months int, now time.Time) Trend {
	points := make([]TrendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		monthDate := now.AddDate(0, 0, -30*i)
		seasonal := 1 + 0.2*abs(float64(int(monthDate.Month()))-6)/6
		jitter := 1 + (rand.Float64()*0.2 - 0.1)
		total := int(float64(f.BaseMonthlyCount) * seasonal * jitter)

		points = append(points, TrendPoint{
			Month:          monthDate.Format("2006-01"),
			TotalCrimes:    total,
			ViolentCrimes:  int(float64(total) * 0.2),
			PropertyCrimes: int(float64(total) * 0.6),
			CyberCrimes:    int(float64(total) * 0.1),
		})
	}

	return Trend{
		State:     state,
		District:  district,
		Months:    months,
		Points:    points,
		Direction: DirectionStable,
		Source:    SourceFallback,
	}
}

// Indicators applies the bounding-box overrides, else the fixed baseline.
func (f *Fallback) Indicators(lat, lon, radiusKm float64) Indicators {
	score := f.BaselineSafety
	for _, r := range f.Regions {
		if lat >= r.MinLat && lat <= r.MaxLat && lon >= r.MinLon && lon <= r.MaxLon {
			score = r.SafetyScore
			break
		}
	}

	return Indicators{
		Latitude:                 lat,
		Longitude:                lon,
		RadiusKm:                 radiusKm,
		SafetyScore:              score,
		CrimeDensity:             "medium",
		PoliceStationsNearby:     3,
		EmergencyResponseMinutes: 8,
		StreetLightingScore:      7,
		CrowdDensityScore:        6,
		TransportSafetyScore:     7,
		Source:                   SourceFallback,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
