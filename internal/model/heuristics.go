package model

import "math"

// Constants tuning the long-horizon heuristics. Calibrated against the
// Philippines dataset's scale; see the package doc in internal/domain.
const (
	// maxConfidentYears is the horizon within which confidence is not decayed.
	maxConfidentYears = 15
	// maxPredictionYears is the horizon at which decay bottoms out
	// (2100 minus the 2024 window start).
	maxPredictionYears = 76

	dampeningHorizon = 50.0
	dampeningFloor   = 0.2
)

// dampeningFactor shrinks a polynomial model's predicted deviation for
// far-future targets to counter extrapolation overshoot. Returns a value in
// [0.2, 1], with 1 for targets at or before the current calendar year.
func dampeningFactor(yearsIntoFuture int) float64 {
	if yearsIntoFuture <= 0 {
		return 1
	}
	return math.Max(dampeningFloor, 1-math.Pow(float64(yearsIntoFuture)/dampeningHorizon, 0.8))
}

// changeAdjustment further tempers the predicted change based on its own
// magnitude: large upward swings shrink toward 0.3x, large downward swings
// expand up to 1.7x so cooling predictions are not over-damped.
func changeAdjustment(predictedChange float64) float64 {
	if predictedChange > 0 {
		return math.Max(0.3, 1-predictedChange/10)
	}
	return math.Min(1.7, 1-predictedChange/10)
}

// decayMultiplier reduces R²-derived confidence as the target year recedes
// from the present. Within maxConfidentYears the multiplier is 1; beyond it
// the multiplier falls along a 0.7-power curve and floors at 0.25.
func decayMultiplier(yearsIntoFuture int) float64 {
	if yearsIntoFuture <= maxConfidentYears {
		return 1
	}
	decay := math.Pow(float64(yearsIntoFuture-maxConfidentYears)/float64(maxPredictionYears-maxConfidentYears), 0.7)
	return math.Max(0.25, 1-decay*0.75)
}

// decayedConfidence applies decayMultiplier to a raw R² and clamps to [0, 1].
func decayedConfidence(rawR2 float64, yearsIntoFuture int) float64 {
	return clamp01(rawR2 * decayMultiplier(yearsIntoFuture))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
