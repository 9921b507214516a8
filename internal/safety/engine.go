package safety

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/anubhav-001/saferov/internal/crime"
	"github.com/anubhav-001/saferov/internal/geo"
	"github.com/anubhav-001/saferov/internal/observability"
	"github.com/anubhav-001/saferov/internal/weather"
)

// Options configures an Engine. Crime and Weather are required; Resolver and
// Predictor fall back to no geocoding and the heuristic scorer.
type Options struct {
	Crime     *crime.Service
	Weather   *weather.Service
	Resolver  *geo.Resolver
	Predictor Predictor
	Metrics   *observability.Metrics
}

// Engine aggregates the two data adapters into a single assessment. The
// profile is the only input that can fail an assessment; data-source trouble
// shows up as lower confidence, never as an error.
type Engine struct {
	crime     *crime.Service
	weather   *weather.Service
	resolver  *geo.Resolver
	predictor Predictor
	validate  *validator.Validate
	metrics   *observability.Metrics
}

// NewEngine wires the aggregation engine.
func NewEngine(opts Options) *Engine {
	pred := opts.Predictor
	if pred == nil {
		pred = HeuristicPredictor{}
	}
	return &Engine{
		crime:     opts.Crime,
		weather:   opts.Weather,
		resolver:  opts.Resolver,
		predictor: pred,
		validate:  validator.New(),
		metrics:   opts.Metrics,
	}
}

// Assess produces the full safety assessment for a location and profile.
// The crime and weather lookups are independent and run concurrently.
func (e *Engine) Assess(ctx context.Context, loc geo.Descriptor, profile TouristProfile) (Assessment, error) {
	start := time.Now()

	profile = profile.WithDefaults()
	if err := e.validate.Struct(profile); err != nil {
		return Assessment{}, fmt.Errorf("invalid tourist profile: %w", err)
	}

	loc = e.resolveCoordinates(loc)

	var (
		wg          sync.WaitGroup
		crimeData   crime.SafetyData
		weatherData weather.SafetyAnalysis
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		crimeData = e.crime.ComprehensiveSafetyData(ctx, loc)
	}()
	go func() {
		defer wg.Done()
		weatherData = e.weather.SafetyScore(ctx, loc.WeatherQuery())
	}()
	wg.Wait()

	weatherRisk := 10 - weatherData.Score
	score := e.predictor.PredictSafetyScore(Features{
		LocationRisk:     profile.LocationRisk,
		GroupSize:        profile.GroupSize,
		ExperienceLevel:  profile.ExperienceLevel,
		HasItinerary:     profile.HasItinerary,
		Age:              profile.Age,
		HealthScore:      profile.HealthScore,
		CrimeRiskScore:   crimeData.RiskScore,
		WeatherRiskScore: weatherRisk,
	})

	confidence := Confidence(Availability{
		CrimeStats:  true,
		CrimeTrend:  true,
		Indicators:  crimeData.Indicators != nil,
		State:       loc.State != "",
		District:    loc.District != "",
		Coordinates: loc.HasCoordinates(),
	})

	e.metrics.AssessmentCompleted(time.Since(start).Seconds())

	return Assessment{
		ID:                   uuid.NewString(),
		SafetyScore:          score,
		CrimeRiskScore:       crimeData.RiskScore,
		WeatherSafetyScore:   weatherData.Score,
		WeatherRiskScore:     weatherRisk,
		EnhancedLocationRisk: (float64(profile.LocationRisk) + crimeData.RiskScore) / 2,
		Confidence:           confidence,
		Recommendations:      Recommendations(weatherData.Recommendations, crimeData, weatherData.Alerts, score, profile),
		CrimeStats:           crimeData.Snapshot,
		CrimeTrend:           crimeData.Trend,
		SafetyIndicators:     crimeData.Indicators,
		Weather:              weatherData,
	}, nil
}

// WeatherSafety runs the weather-only analysis and attaches the
// weather-variant confidence for the descriptor.
func (e *Engine) WeatherSafety(ctx context.Context, loc geo.Descriptor) (weather.SafetyAnalysis, float64) {
	loc = e.resolveCoordinates(loc)
	analysis := e.weather.SafetyScore(ctx, loc.WeatherQuery())

	confidence := WeatherConfidence(WeatherAvailability{
		Conditions:   true,
		Alerts:       len(analysis.Alerts) > 0,
		Coordinates:  loc.HasCoordinates(),
		CityAndState: loc.City != "" && loc.State != "",
		State:        loc.State != "",
	})
	return analysis, confidence
}

// resolveCoordinates geocodes a descriptor missing coordinates when a
// resolver is configured. Geocoding failure is non-fatal.
func (e *Engine) resolveCoordinates(loc geo.Descriptor) geo.Descriptor {
	if e.resolver == nil || !e.resolver.Enabled() || loc.HasCoordinates() {
		return loc
	}
	resolved, err := e.resolver.Resolve(loc)
	if err != nil {
		log.Printf("geocoding %q failed: %v; proceeding without coordinates", loc.Key(), err)
		return loc
	}
	return resolved
}
