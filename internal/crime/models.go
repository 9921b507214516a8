package crime

// Data source labels attached to every structure the adapter hands out.
const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

// Trend directions.
const (
	DirectionIncreasing = "increasing"
	DirectionDecreasing = "decreasing"
	DirectionStable     = "stable"
)

// Snapshot is the crime-statistics view for one region and year.
// Component counts are reported as delivered by the source; callers must
// not assume they sum to TotalCrimes when the data is synthetic.
type Snapshot struct {
	State            string  `json:"state"`
	District         string  `json:"district,omitempty"`
	Year             int     `json:"year"`
	TotalCrimes      int     `json:"total_crimes"`
	ViolentCrimes    int     `json:"violent_crimes"`
	PropertyCrimes   int     `json:"property_crimes"`
	CyberCrimes      int     `json:"cyber_crimes"`
	Population       int     `json:"population"`
	CrimeRatePer100k float64 `json:"crime_rate_per_100k"`
	Source           string  `json:"data_source"`
}

// TrendPoint is one month of the trend series.
type TrendPoint struct {
	Month          string `json:"month"` // YYYY-MM
	TotalCrimes    int    `json:"total_crimes"`
	ViolentCrimes  int    `json:"violent_crimes"`
	PropertyCrimes int    `json:"property_crimes"`
	CyberCrimes    int    `json:"cyber_crimes"`
}

// Trend is a monthly series ordered oldest to newest, plus the derived
// overall direction.
type Trend struct {
	State     string       `json:"state"`
	District  string       `json:"district,omitempty"`
	Months    int          `json:"trend_period_months"`
	Points    []TrendPoint `json:"trends"`
	Direction string       `json:"trend_direction"`
	Source    string       `json:"data_source"`
}

// Indicators describes localized safety signals around a coordinate.
type Indicators struct {
	Latitude                 float64 `json:"latitude"`
	Longitude                float64 `json:"longitude"`
	RadiusKm                 float64 `json:"radius_km"`
	SafetyScore              float64 `json:"safety_score"`
	CrimeDensity             string  `json:"crime_density"`
	PoliceStationsNearby     int     `json:"police_stations_nearby"`
	EmergencyResponseMinutes int     `json:"emergency_response_time_minutes"`
	StreetLightingScore      int     `json:"street_lighting_score"`
	CrowdDensityScore        int     `json:"crowd_density_score"`
	TransportSafetyScore     int     `json:"transport_safety_score"`
	Source                   string  `json:"data_source"`
}

// SafetyData bundles everything the adapter knows about one location.
// Indicators is nil when the location had no coordinates.
type SafetyData struct {
	Snapshot   Snapshot    `json:"crime_statistics"`
	Trend      Trend       `json:"crime_trends"`
	Indicators *Indicators `json:"safety_indicators,omitempty"`
	RiskScore  float64     `json:"calculated_risk_score"`
}
