package model

import (
	"fmt"

	"github.com/couchcryptid/climate-forecast/internal/domain"
	"github.com/couchcryptid/climate-forecast/internal/regress"
)

// predictLinear fits a degree-1 regression over the entire series. Unlike the
// polynomial model there is no dampening: linear extrapolation is already
// bounded by the fitted slope.
func predictLinear(series []domain.HistoricalRecord, targetYear int) (domain.PredictionOutcome, error) {
	origin := series[0].Year
	points := make([]regress.Point, len(series))
	for i, r := range series {
		points[i] = regress.Point{X: float64(r.Year - origin), Y: r.FiveYearSmooth}
	}

	fit, err := regress.FitLinear(points)
	if err != nil {
		return domain.PredictionOutcome{}, err
	}

	prediction := fit.Predict(float64(targetYear - origin))

	yearsIntoFuture := targetYear - domain.CurrentYear()
	confidence := decayedConfidence(fit.R2, yearsIntoFuture)

	last := series[len(series)-1]
	equation := fmt.Sprintf("y = %.6fx + %.4f (x = year − %d)", fit.Slope, fit.Intercept, origin)

	details := []string{
		fmt.Sprintf("Linear regression over the full series (%d–%d, %d records).", origin, last.Year, len(series)),
		fmt.Sprintf("Fitted warming rate: %+.4f°C per year, R²: %.4f.", fit.Slope, fit.R2),
		fmt.Sprintf("Predicted annual mean (5-year smooth basis) for %d: %.2f°C.", targetYear, prediction),
		fmt.Sprintf("Confidence after horizon decay: %.1f%%.", confidence*100),
	}

	return domain.PredictionOutcome{
		PredictedTemperature: prediction,
		Confidence:           confidence,
		ModelEquation:        equation,
		Details:              details,
	}, nil
}
