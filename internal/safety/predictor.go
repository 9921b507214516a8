package safety

import (
	"math"

	"github.com/anubhav-001/saferov/internal/common"
)

// Predictor turns a feature set into an integer safety score on the 1-10
// scale. The engine treats it as a black box so a trained model can replace
// the heuristic without touching the aggregation path.
type Predictor interface {
	PredictSafetyScore(f Features) int
}

// HeuristicPredictor is the default feature-weighted scorer. Each feature
// contributes a weighted risk term in [0,1]; the summed risk is mapped onto
// the 1-10 safety scale, higher meaning safer.
type HeuristicPredictor struct{}

func (HeuristicPredictor) PredictSafetyScore(f Features) int {
	enhanced := (float64(f.LocationRisk) + f.CrimeRiskScore) / 2

	risk := enhanced / 10 * 0.35
	risk += experienceRisk(f.ExperienceLevel) * 0.15
	risk += groupRisk(f.GroupSize) * 0.15
	if !f.HasItinerary {
		risk += 0.10
	}
	if f.Age < 18 || f.Age > 65 {
		risk += 0.08
	} else {
		risk += 0.04
	}
	risk += (10 - float64(f.HealthScore)) / 9 * 0.15
	risk += f.WeatherRiskScore / 10 * 0.10

	score := math.Round(10 - risk*9)
	return int(common.Clamp(score, 1, 10))
}

func experienceRisk(level string) float64 {
	switch level {
	case "expert":
		return 0.3
	case "intermediate":
		return 0.6
	default:
		return 1.0
	}
}

// groupRisk decays with group size but never drops below a floor; traveling
// in a group helps, it does not make risk vanish.
func groupRisk(size int) float64 {
	if size < 1 {
		size = 1
	}
	return math.Max(0.25, 1/float64(size))
}
