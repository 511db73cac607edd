package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-forecast/internal/domain"
	"github.com/couchcryptid/climate-forecast/internal/simulate"
)

func TestCSV_CompletedRun(t *testing.T) {
	records := []domain.HistoricalRecord{
		{Year: 2021, AnnualMean: 26.15, FiveYearSmooth: 26.1},
		{Year: 2022, AnnualMean: 26.3, FiveYearSmooth: 26.2},
	}
	result := simulate.Result{
		Model:      domain.ModelLinear,
		TargetYear: 2030,
		Outcome: domain.PredictionOutcome{
			PredictedTemperature: 26.5,
			Confidence:           0.9,
			Details:              []string{"Linear regression over 2 records.", "Confidence: 90.0%."},
		},
		TrendLine: domain.TrendLine{
			Years:        []string{"2022", "2026", "2030"},
			Temperatures: []float64{26.2, 26.35, 26.5},
		},
	}

	payload := CSV(records, result)
	lines := strings.Split(payload, "\n")

	require.GreaterOrEqual(t, len(lines), 12)
	assert.Equal(t, "Year,Annual Mean,5-Year Smooth", lines[0])
	assert.Equal(t, "2021,26.15,26.10", lines[1])
	assert.Equal(t, "2022,26.30,26.20", lines[2])
	assert.Equal(t, "", lines[3])
	assert.Equal(t, "Prediction Results", lines[4])
	assert.Equal(t, "Year,Predicted Temperature", lines[5])
	assert.Equal(t, "2022,26.20", lines[6])
	assert.Equal(t, "2030,26.50", lines[8])
	assert.Equal(t, "", lines[9])
	assert.Equal(t, "Simulation Details", lines[10])
	assert.Equal(t, "Linear regression over 2 records.", lines[11])
}

func TestCSV_RejectedRun(t *testing.T) {
	records := []domain.HistoricalRecord{{Year: 2022, AnnualMean: 26.3, FiveYearSmooth: 26.2}}
	result := simulate.Result{
		Model:      domain.ModelPolynomial,
		TargetYear: 2023,
		Outcome: domain.PredictionOutcome{
			Details:      []string{},
			ErrorMessage: "Please select a year from 2024 onwards for predictions.",
		},
		TrendLine: domain.TrendLine{Years: []string{}, Temperatures: []float64{}},
	}

	payload := CSV(records, result)

	assert.Contains(t, payload, "Prediction Results\nYear,Predicted Temperature\n\n")
	assert.Contains(t, payload, "Simulation Details\nPlease select a year from 2024 onwards for predictions.\n")
}
