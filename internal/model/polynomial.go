package model

import (
	"fmt"

	"github.com/couchcryptid/climate-forecast/internal/domain"
	"github.com/couchcryptid/climate-forecast/internal/regress"
)

// recentWindow is how many of the most recent records the polynomial model
// fits against. The full 122-year series would let the early 20th century
// dominate the curvature; the recent window tracks the modern trend.
const recentWindow = 30

func predictPolynomial(series []domain.HistoricalRecord, targetYear int) (domain.PredictionOutcome, error) {
	recent := series
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}

	// Normalize x to years since the first recent record. Fitting raw
	// calendar years (1993² ≈ 4M) would wreck the conditioning of the
	// Vandermonde system.
	origin := recent[0].Year
	points := make([]regress.Point, len(recent))
	for i, r := range recent {
		points[i] = regress.Point{X: float64(r.Year - origin), Y: r.FiveYearSmooth}
	}

	fit, err := regress.FitPolynomial(points, 2)
	if err != nil {
		return domain.PredictionOutcome{}, err
	}

	raw := fit.Predict(float64(targetYear - origin))
	last := recent[len(recent)-1]

	yearsIntoFuture := targetYear - domain.CurrentYear()
	damp := dampeningFactor(yearsIntoFuture)
	predictedChange := raw - last.FiveYearSmooth
	adjust := changeAdjustment(predictedChange)
	prediction := last.FiveYearSmooth + predictedChange*damp*adjust

	adjR2 := adjustedR2(fit.R2, len(points), 2)
	confidence := decayedConfidence(adjR2, yearsIntoFuture)

	equation := fmt.Sprintf("y = %.6fx² + %.6fx + %.4f (x = year − %d)",
		fit.Coefficients[2], fit.Coefficients[1], fit.Coefficients[0], origin)

	details := []string{
		fmt.Sprintf("Polynomial (degree 2) regression over the last %d records (%d–%d).", len(recent), origin, last.Year),
		fmt.Sprintf("Raw fit R²: %.4f, adjusted for degrees of freedom: %.4f.", fit.R2, adjR2),
		fmt.Sprintf("Dampening factor %.3f × change adjustment %.3f applied to a raw change of %+.3f°C.", damp, adjust, predictedChange),
		fmt.Sprintf("Predicted annual mean (5-year smooth basis) for %d: %.2f°C.", targetYear, prediction),
		fmt.Sprintf("Confidence after %d-year horizon decay: %.1f%%.", maxInt(yearsIntoFuture, 0), confidence*100),
	}

	return domain.PredictionOutcome{
		PredictedTemperature: prediction,
		Confidence:           confidence,
		ModelEquation:        equation,
		Details:              details,
	}, nil
}

// adjustedR2 penalizes R² for model complexity:
// 1 − (1−R²)(n−1)/(n−p−1) with p fitted parameters (excluding intercept).
// Falls back to the raw R² when the sample is too small for the correction.
func adjustedR2(r2 float64, n, p int) float64 {
	if n-p-1 <= 0 {
		return r2
	}
	return 1 - (1-r2)*float64(n-1)/float64(n-p-1)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
