package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anubhav-001/saferov/internal/crime"
	"github.com/anubhav-001/saferov/internal/weather"
)

func indexOf(items []string, target string) int {
	for i, item := range items {
		if item == target {
			return i
		}
	}
	return -1
}

func TestRecommendations_RelativeOrderForHighRiskSoloBeginner(t *testing.T) {
	profile := TouristProfile{GroupSize: 1, ExperienceLevel: "beginner"}
	recs := Recommendations(nil, crime.SafetyData{}, nil, 2, profile)

	highRisk := indexOf(recs, "High risk area detected. Avoid traveling alone.")
	solo := indexOf(recs, "Solo travel detected. Consider joining group tours or connecting with other travelers.")
	guide := indexOf(recs, "As a beginner traveler, consider hiring a local guide for safer exploration.")

	require.NotEqual(t, -1, highRisk)
	require.NotEqual(t, -1, solo)
	require.NotEqual(t, -1, guide)
	assert.Less(t, highRisk, solo)
	assert.Less(t, solo, guide)
}

func TestRecommendations_WeatherNotesComeFirst(t *testing.T) {
	weatherRecs := []string{"Hot weather. Stay hydrated and avoid peak sun hours."}
	recs := Recommendations(weatherRecs, crime.SafetyData{}, nil, 8, TouristProfile{GroupSize: 2, ExperienceLevel: "expert"})

	require.NotEmpty(t, recs)
	assert.Equal(t, weatherRecs[0], recs[0])
}

func TestRecommendations_CrimeMixNotes(t *testing.T) {
	data := crime.SafetyData{
		Snapshot: crime.Snapshot{TotalCrimes: 1000, ViolentCrimes: 400, PropertyCrimes: 600},
		Trend:    crime.Trend{Direction: crime.DirectionIncreasing},
	}
	recs := Recommendations(nil, data, nil, 5, TouristProfile{GroupSize: 3, ExperienceLevel: "intermediate"})

	assert.Contains(t, recs, "Crime rates are increasing in this area. Exercise extra caution.")
	assert.Contains(t, recs, "High violent crime rate. Avoid isolated areas, especially at night.")
	assert.Contains(t, recs, "High property crime rate. Keep valuables secure and avoid displaying expensive items.")
}

func TestRecommendations_AlertNoteOnlyAboveLevelSeven(t *testing.T) {
	minor := []weather.Alert{{Event: "Heat Advisory", SafetyLevel: 7}}
	severe := []weather.Alert{{Event: "Thunderstorm Warning", SafetyLevel: 9}}

	const note = "Weather alerts active. Monitor conditions closely."
	assert.NotContains(t, Recommendations(nil, crime.SafetyData{}, minor, 8, TouristProfile{GroupSize: 2}), note)

	withSevere := Recommendations(nil, crime.SafetyData{}, severe, 8, TouristProfile{GroupSize: 2})
	assert.Contains(t, withSevere, note)

	// A second high alert does not duplicate the note.
	double := append(severe, weather.Alert{Event: "Flood Warning", SafetyLevel: 9})
	count := 0
	for _, r := range Recommendations(nil, crime.SafetyData{}, double, 8, TouristProfile{GroupSize: 2}) {
		if r == note {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
