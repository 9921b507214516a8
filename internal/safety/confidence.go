package safety

// Confidence estimates how much of the assessment rests on actual data
// versus defaults. Base 0.5, each available section adds its increment,
// capped at 1.0.
func Confidence(a Availability) float64 {
	c := 0.5
	if a.CrimeStats {
		c += 0.2
	}
	if a.CrimeTrend {
		c += 0.15
	}
	if a.Indicators {
		c += 0.1
	}
	if a.State {
		c += 0.05
	}
	if a.District {
		c += 0.05
	}
	if a.Coordinates {
		c += 0.05
	}
	if c > 1 {
		c = 1
	}
	return c
}

// WeatherConfidence is the weather-route variant. Location completeness
// contributes a single tiered term: coordinates beat city+state beat
// state alone.
func WeatherConfidence(a WeatherAvailability) float64 {
	c := 0.5
	if a.Conditions {
		c += 0.2
	}
	if a.Alerts {
		c += 0.1
	}
	switch {
	case a.Coordinates:
		c += 0.15
	case a.CityAndState:
		c += 0.1
	case a.State:
		c += 0.05
	}
	if c > 1 {
		c = 1
	}
	return c
}
