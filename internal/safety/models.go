package safety

import (
	"github.com/anubhav-001/saferov/internal/crime"
	"github.com/anubhav-001/saferov/internal/weather"
)

// TouristProfile describes the traveler being assessed. Zero values on
// optional fields are filled by WithDefaults; explicit out-of-range values
// are contract violations surfaced by the engine.
type TouristProfile struct {
	LocationRisk    int    `json:"location_risk" validate:"min=1,max=10"`
	GroupSize       int    `json:"group_size" validate:"min=1"`
	ExperienceLevel string `json:"experience_level" validate:"oneof=beginner intermediate expert"`
	HasItinerary    bool   `json:"has_itinerary"`
	Age             int    `json:"age" validate:"min=1,max=120"`
	HealthScore     int    `json:"health_score" validate:"min=1,max=10"`
}

// WithDefaults returns a copy with each unset optional field replaced by its
// documented default.
func (p TouristProfile) WithDefaults() TouristProfile {
	if p.LocationRisk == 0 {
		p.LocationRisk = 5
	}
	if p.GroupSize == 0 {
		p.GroupSize = 1
	}
	if p.ExperienceLevel == "" {
		p.ExperienceLevel = "beginner"
	}
	if p.Age == 0 {
		p.Age = 30
	}
	if p.HealthScore == 0 {
		p.HealthScore = 8
	}
	return p
}

// Features is the full input set handed to a Predictor.
type Features struct {
	LocationRisk     int
	GroupSize        int
	ExperienceLevel  string
	HasItinerary     bool
	Age              int
	HealthScore      int
	CrimeRiskScore   float64
	WeatherRiskScore float64
}

// Availability records which data sections were actually populated when an
// assessment was built. Fallback-served sections still count as present;
// degradation shows up through the per-section data_source labels instead.
type Availability struct {
	CrimeStats  bool
	CrimeTrend  bool
	Indicators  bool
	State       bool
	District    bool
	Coordinates bool
}

// WeatherAvailability is the weather-route variant of Availability.
type WeatherAvailability struct {
	Conditions   bool
	Alerts       bool
	Coordinates  bool
	CityAndState bool
	State        bool
}

// Assessment is the complete safety picture for one location and profile.
type Assessment struct {
	ID                   string                 `json:"assessment_id"`
	SafetyScore          int                    `json:"safety_score"`
	CrimeRiskScore       float64                `json:"crime_risk_score"`
	WeatherSafetyScore   float64                `json:"weather_safety_score"`
	WeatherRiskScore     float64                `json:"weather_risk_score"`
	EnhancedLocationRisk float64                `json:"enhanced_location_risk"`
	Confidence           float64                `json:"confidence"`
	Recommendations      []string               `json:"recommendations"`
	CrimeStats           crime.Snapshot         `json:"crime_statistics"`
	CrimeTrend           crime.Trend            `json:"crime_trends"`
	SafetyIndicators     *crime.Indicators      `json:"safety_indicators,omitempty"`
	Weather              weather.SafetyAnalysis `json:"weather"`
}
