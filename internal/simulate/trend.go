package simulate

import (
	"math"
	"strconv"

	"github.com/couchcryptid/climate-forecast/internal/domain"
	"github.com/couchcryptid/climate-forecast/internal/model"
)

// trendLine interpolates the path from the last historical point to the
// accepted prediction by re-invoking the same model at intermediate years.
// The first point is always the last historical record; the last point is
// always exactly (targetYear, finalPrediction).
func trendLine(kind domain.ModelKind, series []domain.HistoricalRecord, targetYear int, finalPrediction float64) domain.TrendLine {
	last, ok := domain.LastRecord(series)
	if !ok {
		return domain.TrendLine{Years: []string{}, Temperatures: []float64{}}
	}

	line := domain.TrendLine{
		Years:        []string{strconv.Itoa(last.Year)},
		Temperatures: []float64{last.FiveYearSmooth},
	}

	yearStep := int(math.Ceil(float64(targetYear-last.Year) / 5))
	if yearStep > 0 {
		for year := last.Year + yearStep; year < targetYear; year += yearStep {
			line.Years = append(line.Years, strconv.Itoa(year))
			line.Temperatures = append(line.Temperatures, interpolateAt(kind, series, year, finalPrediction))
		}
	}

	line.Years = append(line.Years, strconv.Itoa(targetYear))
	line.Temperatures = append(line.Temperatures, finalPrediction)
	return line
}

// interpolateAt runs the model at an intermediate year. A failed or
// NaN-carrying result falls back to the final prediction so the line stays
// renderable.
func interpolateAt(kind domain.ModelKind, series []domain.HistoricalRecord, year int, finalPrediction float64) float64 {
	outcome, err := model.Predict(kind, series, year)
	if err != nil || math.IsNaN(outcome.PredictedTemperature) || math.IsInf(outcome.PredictedTemperature, 0) {
		return finalPrediction
	}
	return outcome.PredictedTemperature
}
