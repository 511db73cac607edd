package simulate

import (
	"fmt"
	"math"

	"github.com/couchcryptid/climate-forecast/internal/domain"
)

// plausibilityMargin widens the historical envelope the further out the
// target year lies: 1.5°C at the present, growing by 0.05°C per year and
// capping at +3°C.
func plausibilityMargin(yearsIntoFuture int) float64 {
	if yearsIntoFuture < 0 {
		yearsIntoFuture = 0
	}
	return 1.5 + math.Min(3, float64(yearsIntoFuture)/20)
}

// checkPlausibility accepts a prediction iff it lies within the historical
// annual-mean envelope widened by the margin (bounds inclusive). A rejection
// carries domain.ErrOutOfRange.
func checkPlausibility(prediction float64, series []domain.HistoricalRecord, targetYear int) error {
	minTemp, maxTemp := domain.AnnualMeanRange(series)
	margin := plausibilityMargin(targetYear - domain.CurrentYear())

	if prediction < minTemp-margin || prediction > maxTemp+margin {
		return fmt.Errorf("%w: %.2f°C outside [%.2f, %.2f]",
			domain.ErrOutOfRange, prediction, minTemp-margin, maxTemp+margin)
	}
	return nil
}
