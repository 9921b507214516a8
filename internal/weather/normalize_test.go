package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemperatureRisk(t *testing.T) {
	cases := []struct {
		temp    float64
		penalty float64
		tier    Tier
	}{
		{-5, 3, TierExtreme},
		{45, 3, TierExtreme},
		{2, 2, TierHigh},
		{38, 2, TierHigh},
		{7, 1, TierModerate},
		{32, 1, TierModerate},
		{20, 0, TierLow},
	}
	for _, tc := range cases {
		p, tier := TemperatureRisk(tc.temp)
		assert.Equal(t, tc.penalty, p, "temp %.0f", tc.temp)
		assert.Equal(t, tc.tier, tier, "temp %.0f", tc.temp)
	}
}

func TestWindAndVisibilityRisk(t *testing.T) {
	p, tier := WindRisk(60)
	assert.Equal(t, 3.0, p)
	assert.Equal(t, TierExtreme, tier)

	p, tier = WindRisk(25)
	assert.Equal(t, 1.0, p)
	assert.Equal(t, TierModerate, tier)

	p, tier = VisibilityRisk(0.5)
	assert.Equal(t, 3.0, p)
	assert.Equal(t, TierExtreme, tier)

	p, tier = VisibilityRisk(12)
	assert.Equal(t, 0.0, p)
	assert.Equal(t, TierLow, tier)
}

func TestConditionRisk(t *testing.T) {
	p, tier := ConditionRisk("Thunderstorm")
	assert.Equal(t, 2.0, p)
	assert.Equal(t, TierHigh, tier)

	p, tier = ConditionRisk("Light Rain")
	assert.Equal(t, 0.0, p, "non-dangerous rain marks the tier without a penalty")
	assert.Equal(t, TierModerate, tier)

	p, tier = ConditionRisk("Partly Cloudy")
	assert.Equal(t, 0.0, p)
	assert.Equal(t, TierModerate, tier)

	p, tier = ConditionRisk("Clear")
	assert.Equal(t, 0.0, p)
	assert.Equal(t, TierLow, tier)
}

func TestUVRisk(t *testing.T) {
	p, tier := UVRisk(11)
	assert.Equal(t, 1.0, p)
	assert.Equal(t, TierExtreme, tier)

	p, tier = UVRisk(9)
	assert.Equal(t, 0.5, p)
	assert.Equal(t, TierHigh, tier)

	p, tier = UVRisk(7)
	assert.Equal(t, 0.0, p)
	assert.Equal(t, TierModerate, tier)
}

func TestScore_AllPenaltiesClampToFloor(t *testing.T) {
	snap := Snapshot{
		TemperatureC: 45,
		HumidityPct:  95,
		WindSpeedKmh: 60,
		VisibilityKm: 0.5,
		Conditions:   "Thunderstorm",
		UVIndex:      11,
	}

	score, factors := Score(snap)
	assert.Equal(t, 1.0, score, "penalties far exceed the base; score clamps to 1")
	assert.Equal(t, TierExtreme, factors.Temperature)
	assert.Equal(t, TierHigh, factors.Humidity)
	assert.Equal(t, TierExtreme, factors.Wind)
	assert.Equal(t, TierExtreme, factors.Visibility)
	assert.Equal(t, TierHigh, factors.Condition)
	assert.Equal(t, TierExtreme, factors.UV)
}

func TestScore_MildConditionsKeepBase(t *testing.T) {
	snap := Snapshot{
		TemperatureC: 22,
		HumidityPct:  55,
		WindSpeedKmh: 10,
		VisibilityKm: 12,
		Conditions:   "Clear",
		UVIndex:      4,
	}
	score, _ := Score(snap)
	assert.Equal(t, 7.0, score)
}

func TestAlertSafetyLevel(t *testing.T) {
	assert.Equal(t, 9, AlertSafetyLevel("extreme"))
	assert.Equal(t, 9, AlertSafetyLevel("severe"))
	assert.Equal(t, 7, AlertSafetyLevel("moderate"))
	assert.Equal(t, 7, AlertSafetyLevel("major"))
	assert.Equal(t, 5, AlertSafetyLevel("minor"))
	assert.Equal(t, 3, AlertSafetyLevel("advisory"))
}

func TestRecommendations_BandsTriggerIndependently(t *testing.T) {
	recs := Recommendations(Snapshot{
		TemperatureC: 38,
		HumidityPct:  85,
		WindSpeedKmh: 35,
		VisibilityKm: 3,
		Conditions:   "Thunderstorm",
		UVIndex:      9,
	})
	assert.Len(t, recs, 6, "every triggered band contributes one note")

	recs = Recommendations(Snapshot{
		TemperatureC: 22, HumidityPct: 50, WindSpeedKmh: 10, VisibilityKm: 12,
		Conditions: "Clear", UVIndex: 4,
	})
	assert.Empty(t, recs)
}
