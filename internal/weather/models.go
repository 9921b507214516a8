package weather

// Data source labels attached to every structure the adapter hands out.
const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

// Snapshot is the current-conditions view for a location.
type Snapshot struct {
	Location      string  `json:"location"`
	TemperatureC  float64 `json:"temperature_c"`
	HumidityPct   float64 `json:"humidity_pct"`
	WindSpeedKmh  float64 `json:"wind_speed_kmh"`
	VisibilityKm  float64 `json:"visibility_km"`
	Conditions    string  `json:"conditions"`
	UVIndex       float64 `json:"uv_index"`
	FeelsLikeC    float64 `json:"feels_like_c"`
	PressureHpa   float64 `json:"pressure_hpa"`
	CloudCoverPct float64 `json:"cloud_cover_pct"`
	Alerts        []Alert `json:"alerts"`
	Source        string  `json:"data_source"`
}

// Alert is an active weather warning with its derived safety level and
// event-specific recommendations.
type Alert struct {
	Event           string   `json:"event"`
	Severity        string   `json:"severity"`
	Description     string   `json:"description"`
	SafetyLevel     int      `json:"safety_level"`
	Recommendations []string `json:"recommendations"`
}

// ForecastDay is one day of the multi-day outlook.
type ForecastDay struct {
	Date              string  `json:"date"`
	TempMaxC          float64 `json:"temp_max_c"`
	TempMinC          float64 `json:"temp_min_c"`
	Conditions        string  `json:"conditions"`
	PrecipProbability float64 `json:"precip_probability"`
	WindSpeedKmh      float64 `json:"wind_speed_kmh"`
	HumidityPct       float64 `json:"humidity_pct"`
}

// Factors holds the per-metric risk tiers behind a safety score.
type Factors struct {
	Temperature Tier `json:"temperature_risk"`
	Humidity    Tier `json:"humidity_risk"`
	Wind        Tier `json:"wind_risk"`
	Visibility  Tier `json:"visibility_risk"`
	Condition   Tier `json:"weather_condition_risk"`
	UV          Tier `json:"uv_risk"`
}

// SafetyAnalysis is the weather side of an assessment: the bounded safety
// score, the snapshot it was computed from, per-factor tiers, and the
// weather-driven recommendations.
type SafetyAnalysis struct {
	Location        string   `json:"location"`
	Score           float64  `json:"weather_safety_score"`
	Snapshot        Snapshot `json:"weather_conditions"`
	Factors         Factors  `json:"safety_factors"`
	Recommendations []string `json:"recommendations"`
	Alerts          []Alert  `json:"alerts"`
}
