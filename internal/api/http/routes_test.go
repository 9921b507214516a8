package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anubhav-001/saferov/internal/cache"
	"github.com/anubhav-001/saferov/internal/crime"
	"github.com/anubhav-001/saferov/internal/observability"
	"github.com/anubhav-001/saferov/internal/safety"
	"github.com/anubhav-001/saferov/internal/weather"
)

// newTestApp wires the routes against upstream sources that always refuse
// authentication, so handlers serve fallback data.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(upstream.Close)

	metrics := observability.NewMetricsForTesting()
	clock := clockwork.NewFakeClock()

	crimeSvc := crime.NewService(upstream.Client(), crime.Options{
		BaseURL: upstream.URL,
		Cache:   cache.New(time.Hour, clock),
		Metrics: metrics,
		Clock:   clock,
	})
	weatherSvc := weather.NewService(upstream.Client(), weather.Options{
		BaseURL: upstream.URL,
		Cache:   cache.New(30*time.Minute, clock),
		Metrics: metrics,
		Clock:   clock,
	})
	engine := safety.NewEngine(safety.Options{Crime: crimeSvc, Weather: weatherSvc, Metrics: metrics})

	app := fiber.New()
	RegisterRoutes(app, engine, crimeSvc, weatherSvc)
	return app
}

func TestForecastDaysValidation(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather/forecast?location=Delhi&days=20", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather/forecast?location=Delhi&days=-1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Omitted days defaults to a week.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather/forecast?location=Delhi", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Days     int                   `json:"days"`
		Forecast []weather.ForecastDay `json:"forecast"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 7, body.Days)
	assert.Len(t, body.Forecast, 7)
}

func TestWeatherCurrentRequiresLocation(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather/current", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather/current?location=Mumbai", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var snap weather.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, weather.SourceFallback, snap.Source)
}

func TestCrimeStatisticsRequiresState(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/crime/statistics?district=Central", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/crime/statistics?state=Delhi", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var snap crime.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, crime.SourceFallback, snap.Source)
	assert.Equal(t, "Delhi", snap.State)
}

func TestCrimeIndicatorsValidation(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/crime/indicators?lat=28.6", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "lon is required")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/crime/indicators?lat=95&lon=77.2", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "latitude out of range")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/crime/indicators?lat=28.6&lon=77.2", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var ind crime.Indicators
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ind))
	assert.Equal(t, 10.0, ind.RadiusKm, "radius defaults to 10km")
}

func TestAssessEndpoint(t *testing.T) {
	app := newTestApp(t)

	body := `{
		"state": "Delhi", "district": "Central Delhi",
		"latitude": 28.6139, "longitude": 77.2090,
		"location_risk": 6, "group_size": 2,
		"experience_level": "intermediate", "has_itinerary": true,
		"age": 28, "health_score": 7
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/safety/assess", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var a safety.Assessment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&a))
	assert.NotEmpty(t, a.ID)
	assert.GreaterOrEqual(t, a.SafetyScore, 1)
	assert.LessOrEqual(t, a.SafetyScore, 10)
	assert.GreaterOrEqual(t, a.Confidence, 0.75)
	assert.NotEmpty(t, a.Recommendations)
}

func TestAssessRejectsInvalidProfile(t *testing.T) {
	app := newTestApp(t)

	body := `{"state": "Delhi", "experience_level": "wizard"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/safety/assess", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWeatherSafetyEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather/safety", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "state or city is required")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather/safety?state=Delhi&city=New+Delhi", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Analysis   weather.SafetyAnalysis `json:"analysis"`
		Confidence float64                `json:"confidence"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.GreaterOrEqual(t, body.Analysis.Score, 1.0)
	assert.LessOrEqual(t, body.Analysis.Score, 10.0)
	// conditions term plus the city+state location term.
	assert.InDelta(t, 0.8, body.Confidence, 1e-9)
}
