package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/anubhav-001/saferov/internal/geo"
)

type AppConfig struct {
	CrimeAPIBaseURL string
	CrimeAPIKey     string

	WeatherAPIBaseURL string
	WeatherAPIKey     string

	// GeocoderAPIKey enables coordinate resolution for partial locations.
	// Empty disables geocoding; assessments still work without it.
	GeocoderAPIKey string

	// Cache TTLs per data source.
	CrimeCacheTTL   time.Duration
	WeatherCacheTTL time.Duration

	// Shared HTTP client timeout for upstream calls.
	HTTPTimeout time.Duration

	// FetchInterval controls how often the prefetch job warms the caches.
	FetchInterval time.Duration

	// Locations the prefetch job keeps warm.
	TrackedLocations []geo.Descriptor

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.CrimeAPIBaseURL = getenvDefault("CRIME_API_BASE_URL", "https://api.ncrb.gov.in")
	cfg.CrimeAPIKey = os.Getenv("CRIME_API_KEY")

	cfg.WeatherAPIBaseURL = getenvDefault("WEATHER_API_BASE_URL",
		"https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline")
	cfg.WeatherAPIKey = os.Getenv("WEATHER_API_KEY")

	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	var err error
	if cfg.CrimeCacheTTL, err = getenvDuration("CRIME_CACHE_TTL", "1h"); err != nil {
		return nil, err
	}
	if cfg.WeatherCacheTTL, err = getenvDuration("WEATHER_CACHE_TTL", "30m"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.FetchInterval, err = getenvDuration("FETCH_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	cfg.Port = getenvDefault("PORT", "8080")

	locs, err := loadTrackedLocations()
	if err != nil {
		return nil, err
	}
	cfg.TrackedLocations = locs

	return cfg, nil
}

// loadTrackedLocations pairs TRACKED_CITIES with TRACKED_STATES positionally.
// Both empty means no prefetching.
func loadTrackedLocations() ([]geo.Descriptor, error) {
	citiesEnv := os.Getenv("TRACKED_CITIES")
	statesEnv := os.Getenv("TRACKED_STATES")
	if citiesEnv == "" && statesEnv == "" {
		return nil, nil
	}

	cities := strings.Split(citiesEnv, ",")
	states := strings.Split(statesEnv, ",")
	if len(cities) != len(states) {
		return nil, fmt.Errorf("number of tracked cities and states must be the same")
	}

	var locs []geo.Descriptor
	for i := range cities {
		locs = append(locs, geo.Descriptor{
			City:  strings.TrimSpace(cities[i]),
			State: strings.TrimSpace(states[i]),
		})
	}
	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
