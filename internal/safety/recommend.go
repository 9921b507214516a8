package safety

import (
	"github.com/anubhav-001/saferov/internal/crime"
	"github.com/anubhav-001/saferov/internal/weather"
)

// Recommendations builds the ordered advice list for an assessment. The rule
// order is fixed: weather-driven notes first, then the score band block,
// trend direction, crime-mix notes, active-alert note, solo-travel note,
// and the beginner-guide note. Matching rules all fire; none suppress
// later ones.
func Recommendations(
	weatherRecs []string,
	data crime.SafetyData,
	alerts []weather.Alert,
	score int,
	profile TouristProfile,
) []string {
	recs := make([]string, 0, len(weatherRecs)+8)
	recs = append(recs, weatherRecs...)

	switch {
	case score <= 3:
		recs = append(recs,
			"High risk area detected. Avoid traveling alone.",
			"Stay in well-lit, populated areas.",
			"Keep emergency contacts readily available.",
			"Consider postponing non-essential travel.",
		)
	case score <= 6:
		recs = append(recs,
			"Moderate risk area. Travel with companions when possible.",
			"Stay alert and aware of your surroundings.",
			"Keep valuables secure and out of sight.",
			"Share your itinerary with trusted contacts.",
		)
	default:
		recs = append(recs,
			"Low risk area. Enjoy your travels safely.",
			"Maintain basic safety precautions.",
			"Keep emergency contacts updated.",
		)
	}

	switch data.Trend.Direction {
	case crime.DirectionIncreasing:
		recs = append(recs, "Crime rates are increasing in this area. Exercise extra caution.")
	case crime.DirectionDecreasing:
		recs = append(recs, "Crime rates are decreasing in this area. Good safety trend.")
	}

	snap := data.Snapshot
	if snap.TotalCrimes > 0 {
		if float64(snap.ViolentCrimes) > float64(snap.TotalCrimes)*0.3 {
			recs = append(recs, "High violent crime rate. Avoid isolated areas, especially at night.")
		}
		if float64(snap.PropertyCrimes) > float64(snap.TotalCrimes)*0.5 {
			recs = append(recs, "High property crime rate. Keep valuables secure and avoid displaying expensive items.")
		}
	}

	for _, a := range alerts {
		if a.SafetyLevel > 7 {
			recs = append(recs, "Weather alerts active. Monitor conditions closely.")
			break
		}
	}

	if profile.GroupSize == 1 {
		recs = append(recs, "Solo travel detected. Consider joining group tours or connecting with other travelers.")
	}
	if profile.ExperienceLevel == "beginner" {
		recs = append(recs, "As a beginner traveler, consider hiring a local guide for safer exploration.")
	}

	return recs
}
