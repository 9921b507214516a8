package weather

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
	"github.com/anubhav-001/saferov/internal/observability"
	"github.com/anubhav-001/saferov/internal/upstream"
)

const metricSource = "weather"

// maxForecastDays is the upstream timeline API limit.
const maxForecastDays = 15

// Options configures a Service. Zero-value fields select defaults.
type Options struct {
	BaseURL  string
	APIKey   string
	Cache    *cache.Store
	Metrics  *observability.Metrics
	Fallback *Fallback       // nil selects DefaultFallback
	Clock    clockwork.Clock // nil selects the real clock
}

// Service fetches current conditions, forecasts, and alerts for a location
// string, consulting its TTL cache first and degrading to synthetic data when
// the upstream source fails. Failures never escape to callers.
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

// NewService creates a weather data adapter on the shared HTTP client.
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
		circuit:  upstream.NewBreaker("weather"),
		cache:    opts.Cache,
		clock:    clk,
		fallback: fb,
		metrics:  opts.Metrics,
	}
}

// CurrentWeather returns current conditions for a location string
// (e.g. "Delhi,India" or "28.6139,77.2090").
func (s *Service) CurrentWeather(ctx context.Context, location string) Snapshot {
	key := "current:" + location
	if v, ok := s.cache.Get(key); ok {
		s.metrics.CacheLookup(metricSource, true)
		return v.(Snapshot)
	}
	s.metrics.CacheLookup(metricSource, false)

	var payload timelinePayload
	if err := s.fetch(ctx, location, 1, &payload); err != nil {
		s.serveFallback("current", err)
		return s.fallback.Snapshot(location)
	}
	s.metrics.UpstreamOutcome(metricSource, "success")

	snap := payload.toSnapshot(location)
	s.cache.Put(key, snap)
	return snap
}

// Forecast returns the daily outlook for up to maxForecastDays days.
func (s *Service) Forecast(ctx context.Context, location string, days int) []ForecastDay {
	if days <= 0 {
		days = 7
	}
	if days > maxForecastDays {
		days = maxForecastDays
	}

	key := fmt.Sprintf("forecast:%s:%d", location, days)
	if v, ok := s.cache.Get(key); ok {
		s.metrics.CacheLookup(metricSource, true)
		return v.([]ForecastDay)
	}
	s.metrics.CacheLookup(metricSource, false)

	var payload timelinePayload
	if err := s.fetch(ctx, location, days, &payload); err != nil {
		s.serveFallback("forecast", err)
		return s.fallback.Forecast(location, days, s.clock.Now())
	}
	s.metrics.UpstreamOutcome(metricSource, "success")

	forecast := payload.toForecast(days)
	s.cache.Put(key, forecast)
	return forecast
}

// Alerts returns the active warnings whose derived safety level exceeds 5.
func (s *Service) Alerts(ctx context.Context, location string) []Alert {
	return significantAlerts(s.CurrentWeather(ctx, location))
}

func significantAlerts(snap Snapshot) []Alert {
	significant := make([]Alert, 0, len(snap.Alerts))
	for _, a := range snap.Alerts {
		if a.SafetyLevel > 5 {
			significant = append(significant, a)
		}
	}
	return significant
}

// SafetyScore computes the weather safety analysis for a location: the
// bounded score, per-factor tiers, weather recommendations, and significant
// alerts.
func (s *Service) SafetyScore(ctx context.Context, location string) SafetyAnalysis {
	snap := s.CurrentWeather(ctx, location)
	score, factors := Score(snap)

	return SafetyAnalysis{
		Location:        location,
		Score:           score,
		Snapshot:        snap,
		Factors:         factors,
		Recommendations: Recommendations(snap),
		Alerts:          significantAlerts(snap),
	}
}

func (s *Service) fetch(ctx context.Context, location string, days int, out *timelinePayload) error {
	buildRequest := func() (*http.Request, error) {
		params := url.Values{}
		params.Set("unitGroup", "metric")
		params.Set("contentType", "json")
		params.Set("key", s.apiKey)
		params.Set("days", strconv.Itoa(days))

		u := fmt.Sprintf("%s/%s?%s", s.baseURL, url.PathEscape(location), params.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
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

// serveFallback logs the failure mode and records the substitution. Fallback
// results are not cached, so source recovery is picked up on the next call.
func (s *Service) serveFallback(op string, err error) {
	switch {
	case errors.Is(err, upstream.ErrAuthFailed):
		log.Printf("weather %s: authentication failed; serving fallback data", op)
	case errors.Is(err, upstream.ErrRateLimited):
		log.Printf("weather %s: rate limited; serving fallback data", op)
	default:
		log.Printf("weather %s: %v; serving fallback data", op, err)
	}
	s.metrics.UpstreamOutcome(metricSource, upstream.Outcome(err))
	s.metrics.Fallback(metricSource)
}

// Upstream timeline payload shape.

type timelinePayload struct {
	Address           string `json:"address"`
	CurrentConditions struct {
		Temp       float64 `json:"temp"`
		Humidity   float64 `json:"humidity"`
		WindSpeed  float64 `json:"windspeed"`
		Visibility float64 `json:"visibility"`
		Conditions string  `json:"conditions"`
		UVIndex    float64 `json:"uvindex"`
		FeelsLike  float64 `json:"feelslike"`
		Pressure   float64 `json:"pressure"`
		CloudCover float64 `json:"cloudcover"`
	} `json:"currentConditions"`
	Days []struct {
		Datetime   string  `json:"datetime"`
		TempMax    float64 `json:"tempmax"`
		TempMin    float64 `json:"tempmin"`
		Conditions string  `json:"conditions"`
		PrecipProb float64 `json:"precipprob"`
		WindSpeed  float64 `json:"windspeed"`
		Humidity   float64 `json:"humidity"`
	} `json:"days"`
	Alerts []struct {
		Event       string `json:"event"`
		Severity    string `json:"severity"`
		Description string `json:"description"`
	} `json:"alerts"`
}

func (p timelinePayload) toSnapshot(location string) Snapshot {
	cc := p.CurrentConditions

	alerts := make([]Alert, 0, len(p.Alerts))
	for _, a := range p.Alerts {
		alerts = append(alerts, Alert{
			Event:           a.Event,
			Severity:        a.Severity,
			Description:     a.Description,
			SafetyLevel:     AlertSafetyLevel(a.Severity),
			Recommendations: AlertRecommendations(a.Event),
		})
	}

	return Snapshot{
		Location:      location,
		TemperatureC:  cc.Temp,
		HumidityPct:   cc.Humidity,
		WindSpeedKmh:  cc.WindSpeed,
		VisibilityKm:  cc.Visibility,
		Conditions:    cc.Conditions,
		UVIndex:       cc.UVIndex,
		FeelsLikeC:    cc.FeelsLike,
		PressureHpa:   cc.Pressure,
		CloudCoverPct: cc.CloudCover,
		Alerts:        alerts,
		Source:        SourceLive,
	}
}

func (p timelinePayload) toForecast(days int) []ForecastDay {
	out := make([]ForecastDay, 0, days)
	for i, d := range p.Days {
		if i >= days {
			break
		}
		out = append(out, ForecastDay{
			Date:              d.Datetime,
			TempMaxC:          d.TempMax,
			TempMinC:          d.TempMin,
			Conditions:        d.Conditions,
			PrecipProbability: d.PrecipProb,
			WindSpeedKmh:      d.WindSpeed,
			HumidityPct:       d.Humidity,
		})
	}
	return out
}
