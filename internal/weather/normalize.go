package weather

import (
	"github.com/anubhav-001/saferov/internal/common"
)

// Tier is a qualitative risk bucket derived from a raw weather metric.
type Tier string

const (
	TierLow      Tier = "low"
	TierModerate Tier = "moderate"
	TierHigh     Tier = "high"
	TierExtreme  Tier = "extreme"
)

// baseSafetyScore is the starting point the per-metric penalties subtract from.
const baseSafetyScore = 7.0

// dangerousConditions incur a flat penalty regardless of the other metrics.
var dangerousConditions = []string{"Thunderstorm", "Heavy Rain", "Snow", "Fog", "Hail"}

// TemperatureRisk maps degrees Celsius to a penalty and tier.
func TemperatureRisk(c float64) (float64, Tier) {
	switch {
	case c < 0 || c > 40:
		return 3, TierExtreme
	case c < 5 || c > 35:
		return 2, TierHigh
	case c < 10 || c > 30:
		return 1, TierModerate
	default:
		return 0, TierLow
	}
}

// HumidityRisk maps relative humidity percent to a penalty and tier.
func HumidityRisk(pct float64) (float64, Tier) {
	switch {
	case pct > 90:
		return 2, TierHigh
	case pct > 80:
		return 1, TierModerate
	default:
		return 0, TierLow
	}
}

// WindRisk maps wind speed in km/h to a penalty and tier.
func WindRisk(kmh float64) (float64, Tier) {
	switch {
	case kmh > 50:
		return 3, TierExtreme
	case kmh > 30:
		return 2, TierHigh
	case kmh > 20:
		return 1, TierModerate
	default:
		return 0, TierLow
	}
}

// VisibilityRisk maps visibility in km to a penalty and tier.
func VisibilityRisk(km float64) (float64, Tier) {
	switch {
	case km < 1:
		return 3, TierExtreme
	case km < 5:
		return 2, TierHigh
	case km < 10:
		return 1, TierModerate
	default:
		return 0, TierLow
	}
}

// ConditionRisk maps a condition label to a penalty and tier. Only the
// dangerous set carries a penalty; rain and cloud cover mark the tier without
// subtracting anything further.
func ConditionRisk(label string) (float64, Tier) {
	if common.HasAny(label, dangerousConditions...) {
		return 2, TierHigh
	}
	if common.HasAny(label, "Rain", "Cloudy") {
		return 0, TierModerate
	}
	return 0, TierLow
}

// UVRisk maps the UV index to a penalty and tier.
func UVRisk(idx float64) (float64, Tier) {
	switch {
	case idx > 10:
		return 1, TierExtreme
	case idx > 8:
		return 0.5, TierHigh
	case idx > 6:
		return 0, TierModerate
	default:
		return 0, TierLow
	}
}

// Score converts a snapshot into the bounded weather safety score and the
// per-factor tiers behind it.
func Score(snap Snapshot) (float64, Factors) {
	var penalties float64
	var f Factors

	var p float64
	p, f.Temperature = TemperatureRisk(snap.TemperatureC)
	penalties += p
	p, f.Humidity = HumidityRisk(snap.HumidityPct)
	penalties += p
	p, f.Wind = WindRisk(snap.WindSpeedKmh)
	penalties += p
	p, f.Visibility = VisibilityRisk(snap.VisibilityKm)
	penalties += p
	p, f.Condition = ConditionRisk(snap.Conditions)
	penalties += p
	p, f.UV = UVRisk(snap.UVIndex)
	penalties += p

	return common.Clamp(baseSafetyScore-penalties, 1, 10), f
}

// Recommendations produces the weather-driven advice for a snapshot, one
// note per triggered metric band.
func Recommendations(snap Snapshot) []string {
	var recs []string

	switch {
	case snap.TemperatureC < 0:
		recs = append(recs, "Extreme cold. Dress warmly and limit outdoor exposure.")
	case snap.TemperatureC < 10:
		recs = append(recs, "Cold weather. Wear warm clothing and layers.")
	case snap.TemperatureC > 35:
		recs = append(recs, "Hot weather. Stay hydrated and avoid peak sun hours.")
	case snap.TemperatureC > 30:
		recs = append(recs, "Warm weather. Drink plenty of water and wear sunscreen.")
	}

	if snap.HumidityPct > 80 {
		recs = append(recs, "High humidity. Stay hydrated and take breaks in shaded or cooled areas.")
	}

	switch {
	case snap.WindSpeedKmh > 30:
		recs = append(recs, "Strong winds. Be cautious of falling objects and unstable surfaces.")
	case snap.WindSpeedKmh > 20:
		recs = append(recs, "Moderate winds. Secure loose items and stay aware of conditions.")
	}

	if snap.VisibilityKm < 5 {
		recs = append(recs, "Poor visibility. Use extra caution when traveling and avoid unnecessary trips.")
	}

	switch {
	case common.HasAny(snap.Conditions, "Thunderstorm"):
		recs = append(recs, "Thunderstorm conditions. Seek shelter and avoid outdoor activities.")
	case common.HasAny(snap.Conditions, "Rain"):
		recs = append(recs, "Rainy conditions. Carry rain gear and take care on wet surfaces.")
	case common.HasAny(snap.Conditions, "Snow"):
		recs = append(recs, "Snow conditions. Allow extra travel time and dress for the cold.")
	case common.HasAny(snap.Conditions, "Fog"):
		recs = append(recs, "Foggy conditions. Reduce speed and use fog lights when driving.")
	}

	switch {
	case snap.UVIndex > 8:
		recs = append(recs, "High UV index. Use sunscreen, wear a hat, and seek shade.")
	case snap.UVIndex > 6:
		recs = append(recs, "Moderate UV index. Apply sunscreen and wear protective clothing.")
	}

	return recs
}

// AlertSafetyLevel derives the 1-10 safety level from an alert severity.
func AlertSafetyLevel(severity string) int {
	switch severity {
	case "extreme", "severe", "Extreme", "Severe":
		return 9
	case "moderate", "major", "Moderate", "Major":
		return 7
	case "minor", "Minor":
		return 5
	default:
		return 3
	}
}

// AlertRecommendations returns event-specific advice for an alert.
func AlertRecommendations(event string) []string {
	switch {
	case common.HasAny(event, "thunderstorm", "Thunderstorm"):
		return []string{
			"Avoid outdoor activities during thunderstorms.",
			"Seek shelter in a sturdy building.",
			"Avoid open areas and tall objects.",
		}
	case common.HasAny(event, "flood", "Flood"):
		return []string{
			"Avoid flooded areas and roads.",
			"Do not attempt to cross flooded streets.",
			"Move to higher ground if necessary.",
		}
	case common.HasAny(event, "heat", "Heat"):
		return []string{
			"Stay hydrated and drink plenty of water.",
			"Avoid outdoor activities during peak heat.",
			"Wear light-colored, loose-fitting clothing.",
		}
	case common.HasAny(event, "cold", "freeze", "Cold", "Freeze"):
		return []string{
			"Dress in layers to stay warm.",
			"Limit time outdoors.",
			"Be aware of frostbite and hypothermia risks.",
		}
	default:
		return nil
	}
}
