package httpapi

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/anubhav-001/saferov/internal/crime"
	"github.com/anubhav-001/saferov/internal/geo"
	"github.com/anubhav-001/saferov/internal/safety"
	"github.com/anubhav-001/saferov/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, engine *safety.Engine, crimeSvc *crime.Service, weatherSvc *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Post("/safety/assess", func(c *fiber.Ctx) error {
		var req assessRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		assessment, err := engine.Assess(c.Context(), req.toDescriptor(), req.toProfile())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(assessment)
	})

	v1.Get("/crime/statistics", func(c *fiber.Ctx) error {
		region, err := parseRegionQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		year, err := queryInt(c, "year", 0)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		snap := crimeSvc.CrimeSnapshot(c.Context(), region.State, region.District, c.Query("crime_type"), year)
		return c.JSON(snap)
	})

	v1.Get("/crime/trends", func(c *fiber.Ctx) error {
		region, err := parseRegionQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		months, err := queryInt(c, "months", 12)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(crimeSvc.CrimeTrend(c.Context(), region.State, region.District, months))
	})

	v1.Get("/crime/indicators", func(c *fiber.Ctx) error {
		var req indicatorsQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(crimeSvc.SafetyIndicators(c.Context(), req.Latitude, req.Longitude, req.RadiusKm))
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		location, err := requireLocation(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(weatherSvc.CurrentWeather(c.Context(), location))
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		location, err := requireLocation(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var req forecastQuery
		req.Days, err = queryInt(c, "days", 7)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(fiber.Map{
			"location": location,
			"days":     req.Days,
			"forecast": weatherSvc.Forecast(c.Context(), location, req.Days),
		})
	})

	v1.Get("/weather/alerts", func(c *fiber.Ctx) error {
		location, err := requireLocation(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{
			"location": location,
			"alerts":   weatherSvc.Alerts(c.Context(), location),
		})
	})

	v1.Get("/weather/safety", func(c *fiber.Ctx) error {
		var req locationFields
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		analysis, confidence := engine.WeatherSafety(c.Context(), req.toDescriptor())
		return c.JSON(fiber.Map{
			"analysis":   analysis,
			"confidence": confidence,
		})
	})
}

// assessRequest is the flat assessment body: location fields plus the
// tourist profile.
type assessRequest struct {
	State     string   `json:"state"`
	District  string   `json:"district"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	LocationRisk    int    `json:"location_risk"`
	GroupSize       int    `json:"group_size"`
	ExperienceLevel string `json:"experience_level"`
	HasItinerary    bool   `json:"has_itinerary"`
	Age             int    `json:"age"`
	HealthScore     int    `json:"health_score"`
}

func (r assessRequest) toDescriptor() geo.Descriptor {
	return geo.Descriptor{
		State:     r.State,
		District:  r.District,
		City:      r.City,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
}

func (r assessRequest) toProfile() safety.TouristProfile {
	return safety.TouristProfile{
		LocationRisk:    r.LocationRisk,
		GroupSize:       r.GroupSize,
		ExperienceLevel: r.ExperienceLevel,
		HasItinerary:    r.HasItinerary,
		Age:             r.Age,
		HealthScore:     r.HealthScore,
	}
}

// regionQuery holds the state/district pair used by the crime endpoints.
type regionQuery struct {
	State    string `validate:"required"`
	District string
}

func parseRegionQuery(c *fiber.Ctx) (regionQuery, error) {
	q := regionQuery{
		State:    c.Query("state"),
		District: c.Query("district"),
	}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// indicatorsQuery holds coordinates for the safety-indicators endpoint.
type indicatorsQuery struct {
	Latitude  float64 `validate:"min=-90,max=90"`
	Longitude float64 `validate:"min=-180,max=180"`
	RadiusKm  float64 `validate:"min=0,max=100"`
}

func (q *indicatorsQuery) bind(c *fiber.Ctx) error {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "lat and lon query parameters are required")
	}

	var err error
	if q.Latitude, err = strconv.ParseFloat(latStr, 64); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid lat")
	}
	if q.Longitude, err = strconv.ParseFloat(lonStr, 64); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid lon")
	}

	q.RadiusKm = 10
	if radiusStr := c.Query("radius_km"); radiusStr != "" {
		if q.RadiusKm, err = strconv.ParseFloat(radiusStr, 64); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid radius_km")
		}
	}

	return validate.Struct(q)
}

// forecastQuery bounds the forecast length to what the upstream supports.
type forecastQuery struct {
	Days int `validate:"min=1,max=15"`
}

// locationFields holds the descriptor pieces accepted by the weather-safety
// endpoint. At least one of state or city must be present.
type locationFields struct {
	State     string
	District  string
	City      string
	Latitude  *float64
	Longitude *float64
}

func (l *locationFields) bind(c *fiber.Ctx) error {
	l.State = c.Query("state")
	l.District = c.Query("district")
	l.City = c.Query("city")

	if latStr := c.Query("lat"); latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid lat")
		}
		l.Latitude = &lat
	}
	if lonStr := c.Query("lon"); lonStr != "" {
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid lon")
		}
		l.Longitude = &lon
	}

	if l.State == "" && l.City == "" {
		return fiber.NewError(fiber.StatusBadRequest, "state or city query parameter is required")
	}
	return nil
}

func (l locationFields) toDescriptor() geo.Descriptor {
	return geo.Descriptor{
		State:     l.State,
		District:  l.District,
		City:      l.City,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
	}
}

func requireLocation(c *fiber.Ctx) (string, error) {
	location := c.Query("location")
	if location == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "location query parameter is required")
	}
	return location, nil
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+key)
	}
	return n, nil
}
