package crime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jonboulle/clockwork"
	"github.com/sony/gobreaker"

	"github.com/anubhav-001/saferov/internal/cache"
	"github.com/anubhav-001/saferov/internal/common"
	"github.com/anubhav-001/saferov/internal/geo"
	"github.com/anubhav-001/saferov/internal/observability"
	"github.com/anubhav-001/saferov/internal/upstream"
)

const metricSource = "crime"

// referenceRate is the crime rate per 100k that maps to the middle of the
// risk scale. A policy constant inherited for behavioral compatibility, not
// a calibrated quantity.
const referenceRate = 200.0

// defaultPopulation guards the rate computation against degenerate snapshots.
const defaultPopulation = 100000

// Options configures a Service. Zero-value fields select defaults.
type Options struct {
	BaseURL  string
	APIKey   string
	Cache    *cache.Store
	Metrics  *observability.Metrics
	Fallback *Fallback       // nil selects DefaultFallback
	Clock    clockwork.Clock // nil selects the real clock
}

// Service fetches crime statistics, trends, and localized safety indicators
// for a region, consulting its TTL cache first and degrading to deterministic
// synthetic data when the upstream source fails. Failures never escape to
// callers.
type Service struct {
	baseURL  string
	apiKey   string
	httpCfg  upstream.ClientConfig
	circuit  *gobreaker.CircuitBreaker
	cache    *cache.Store
	clock    clockwork.Clock
	fallback *Fallback
	metrics  *observability.Metrics
}

// NewService creates a crime data adapter on the shared HTTP client.
func NewService(client *http.Client, opts Options) *Service {
	fb := opts.Fallback
	if fb == nil {
		fb = DefaultFallback()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &Service{
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
		httpCfg: upstream.ClientConfig{
			Client:  client,
			Backoff: upstream.DefaultBackoff(),
		},
		circuit:  upstream.NewBreaker("crime"),
		cache:    opts.Cache,
		clock:    clk,
		fallback: fb,
		metrics:  opts.Metrics,
	}
}

// CrimeSnapshot returns crime statistics for a state (and optionally district
// and crime type). A zero year defaults to the current year.
func (s *Service) CrimeSnapshot(ctx context.Context, state, district, crimeType string, year int) Snapshot {
	if year == 0 {
		year = s.clock.Now().Year()
	}

	key := fmt.Sprintf("crime:%s:%s:%s:%d", state, district, crimeType, year)
	if v, ok := s.cache.Get(key); ok {
		s.metrics.CacheLookup(metricSource, true)
		return v.(Snapshot)
	}
	s.metrics.CacheLookup(metricSource, false)

	params := url.Values{}
	params.Set("state", state)
	params.Set("year", strconv.Itoa(year))
	if district != "" {
		params.Set("district", district)
	}
	if crimeType != "" {
		params.Set("crime_type", crimeType)
	}

	var payload snapshotPayload
	if err := s.fetch(ctx, "crime-statistics", params, &payload); err != nil {
		s.serveFallback("crime-statistics", err)
		return s.fallback.Snapshot(state, district, year)
	}
	s.metrics.UpstreamOutcome(metricSource, "success")

	snap := payload.toSnapshot(state, district, year)
	s.cache.Put(key, snap)
	return snap
}

// CrimeTrend returns the monthly crime series for the past months (default 12)
// with a direction derived from the series itself.
func (s *Service) CrimeTrend(ctx context.Context, state, district string, months int) Trend {
	if months <= 0 {
		months = 12
	}

	key := fmt.Sprintf("trend:%s:%s:%d", state, district, months)
	if v, ok := s.cache.Get(key); ok {
		s.metrics.CacheLookup(metricSource, true)
		return v.(Trend)
	}
	s.metrics.CacheLookup(metricSource, false)

	params := url.Values{}
	params.Set("state", state)
	params.Set("months", strconv.Itoa(months))
	if district != "" {
		params.Set("district", district)
	}

	var payload trendPayload
	if err := s.fetch(ctx, "crime-trends", params, &payload); err != nil {
		s.serveFallback("crime-trends", err)
		return s.fallback.Trend(state, district, months, s.clock.Now())
	}
	s.metrics.UpstreamOutcome(metricSource, "success")

	trend := Trend{
		State:     state,
		District:  district,
		Months:    months,
		Points:    payload.Trends,
		Direction: DeriveDirection(payload.Trends),
		Source:    SourceLive,
	}
	s.cache.Put(key, trend)
	return trend
}

// SafetyIndicators returns localized safety signals around a coordinate.
// A non-positive radius defaults to 10 km.
func (s *Service) SafetyIndicators(ctx context.Context, lat, lon, radiusKm float64) Indicators {
	if radiusKm <= 0 {
		radiusKm = 10
	}

	key := fmt.Sprintf("safety:%.4f:%.4f:%.1f", lat, lon, radiusKm)
	if v, ok := s.cache.Get(key); ok {
		s.metrics.CacheLookup(metricSource, true)
		return v.(Indicators)
	}
	s.metrics.CacheLookup(metricSource, false)

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lng", fmt.Sprintf("%f", lon))
	params.Set("radius", fmt.Sprintf("%f", radiusKm))

	var payload indicatorsPayload
	if err := s.fetch(ctx, "safety-indicators", params, &payload); err != nil {
		s.serveFallback("safety-indicators", err)
		return s.fallback.Indicators(lat, lon, radiusKm)
	}
	s.metrics.UpstreamOutcome(metricSource, "success")

	ind := payload.toIndicators(lat, lon, radiusKm)
	s.cache.Put(key, ind)
	return ind
}

// ComprehensiveSafetyData orchestrates all three lookups plus the risk score.
// Safety indicators are fetched only when the descriptor has both coordinates.
func (s *Service) ComprehensiveSafetyData(ctx context.Context, loc geo.Descriptor) SafetyData {
	snap := s.CrimeSnapshot(ctx, loc.State, loc.District, "", 0)
	trend := s.CrimeTrend(ctx, loc.State, loc.District, 12)

	var indicators *Indicators
	if loc.HasCoordinates() {
		ind := s.SafetyIndicators(ctx, *loc.Latitude, *loc.Longitude, 10)
		indicators = &ind
	}

	return SafetyData{
		Snapshot:   snap,
		Trend:      trend,
		Indicators: indicators,
		RiskScore:  RiskScore(snap),
	}
}

// RiskScore maps a snapshot onto the 1-10 risk scale: per-100k rates for
// total, violent, and property crimes weighted 0.3/0.5/0.2, scaled against
// the reference rate, clamped and rounded to two decimals.
func RiskScore(snap Snapshot) float64 {
	pop := float64(snap.Population)
	if pop <= 0 {
		pop = defaultPopulation
	}

	totalRate := float64(snap.TotalCrimes) / pop * 100000
	violentRate := float64(snap.ViolentCrimes) / pop * 100000
	propertyRate := float64(snap.PropertyCrimes) / pop * 100000

	risk := totalRate*0.3 + violentRate*0.5 + propertyRate*0.2
	return common.Round2(common.Clamp(risk/referenceRate*5, 1, 10))
}

// DeriveDirection compares the mean of the newest quarter of the series
// against the oldest quarter; a shift beyond ±10% is a trend.
func DeriveDirection(points []TrendPoint) string {
	if len(points) < 2 {
		return DirectionStable
	}

	window := len(points) / 4
	if window == 0 {
		window = 1
	}

	oldest := meanTotal(points[:window])
	newest := meanTotal(points[len(points)-window:])
	if oldest == 0 {
		return DirectionStable
	}

	switch ratio := newest / oldest; {
	case ratio > 1.1:
		return DirectionIncreasing
	case ratio < 0.9:
		return DirectionDecreasing
	default:
		return DirectionStable
	}
}

func meanTotal(points []TrendPoint) float64 {
	var sum float64
	for _, p := range points {
		sum += float64(p.TotalCrimes)
	}
	return sum / float64(len(points))
}

func (s *Service) fetch(ctx context.Context, endpoint string, params url.Values, out any) error {
	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/%s?%s", s.baseURL, endpoint, params.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	resp, err := upstream.Do(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", upstream.ErrBadPayload, err)
	}
	return nil
}

// serveFallback logs the failure mode and records that synthetic data is
// being substituted. Fallback results are not cached, so recovery of the
// live source is picked up on the next call.
func (s *Service) serveFallback(op string, err error) {
	switch {
	case errors.Is(err, upstream.ErrAuthFailed):
		log.Printf("crime %s: authentication failed; serving fallback data", op)
	case errors.Is(err, upstream.ErrRateLimited):
		log.Printf("crime %s: rate limited; serving fallback data", op)
	default:
		log.Printf("crime %s: %v; serving fallback data", op, err)
	}
	s.metrics.UpstreamOutcome(metricSource, upstream.Outcome(err))
	s.metrics.Fallback(metricSource)
}

// Upstream payload shapes.

type snapshotPayload struct {
	TotalCrimes      int     `json:"total_crimes"`
	ViolentCrimes    int     `json:"violent_crimes"`
	PropertyCrimes   int     `json:"property_crimes"`
	CyberCrimes      int     `json:"cyber_crimes"`
	Population       int     `json:"population"`
	CrimeRatePer100k float64 `json:"crime_rate_per_100k"`
}

func (p snapshotPayload) toSnapshot(state, district string, year int) Snapshot {
	rate := p.CrimeRatePer100k
	if rate == 0 && p.Population > 0 {
		rate = common.Round2(float64(p.TotalCrimes) / float64(p.Population) * 100000)
	}
	return Snapshot{
		State:            state,
		District:         district,
		Year:             year,
		TotalCrimes:      p.TotalCrimes,
		ViolentCrimes:    p.ViolentCrimes,
		PropertyCrimes:   p.PropertyCrimes,
		CyberCrimes:      p.CyberCrimes,
		Population:       p.Population,
		CrimeRatePer100k: rate,
		Source:           SourceLive,
	}
}

type trendPayload struct {
	Trends []TrendPoint `json:"trends"`
}

type indicatorsPayload struct {
	SafetyScore              float64 `json:"safety_score"`
	CrimeDensity             string  `json:"crime_density"`
	PoliceStationsNearby     int     `json:"police_stations_nearby"`
	EmergencyResponseMinutes int     `json:"emergency_response_time_minutes"`
	StreetLightingScore      int     `json:"street_lighting_score"`
	CrowdDensityScore        int     `json:"crowd_density_score"`
	TransportSafetyScore     int     `json:"transport_safety_score"`
}

func (p indicatorsPayload) toIndicators(lat, lon, radiusKm float64) Indicators {
	return Indicators{
		Latitude:                 lat,
		Longitude:                lon,
		RadiusKm:                 radiusKm,
		SafetyScore:              p.SafetyScore,
		CrimeDensity:             p.CrimeDensity,
		PoliceStationsNearby:     p.PoliceStationsNearby,
		EmergencyResponseMinutes: p.EmergencyResponseMinutes,
		StreetLightingScore:      p.StreetLightingScore,
		CrowdDensityScore:        p.CrowdDensityScore,
		TransportSafetyScore:     p.TransportSafetyScore,
		Source:                   SourceLive,
	}
}
