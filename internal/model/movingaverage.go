package model

import (
	"fmt"

	"github.com/couchcryptid/climate-forecast/internal/domain"
)

// movingAverageWindow is the number of trailing records the moving-average
// model extrapolates from.
const movingAverageWindow = 5

// predictMovingAverage extrapolates the mean of the last five smooth values
// by their average yearly change. Confidence is the R² of the implied local
// trend against the actual window values; no horizon decay is applied —
// the short window already prices in the extrapolation risk.
func predictMovingAverage(series []domain.HistoricalRecord, targetYear int) (domain.PredictionOutcome, error) {
	window := series
	if len(window) > movingAverageWindow {
		window = window[len(window)-movingAverageWindow:]
	}

	var avg float64
	for _, r := range window {
		avg += r.FiveYearSmooth
	}
	avg /= float64(len(window))

	first := window[0]
	last := window[len(window)-1]

	var yearlyChange float64
	if len(window) > 1 {
		yearlyChange = (last.FiveYearSmooth - first.FiveYearSmooth) / float64(len(window)-1)
	}

	yearsAhead := targetYear - last.Year
	prediction := avg + yearlyChange*float64(yearsAhead)

	confidence := clamp01(windowTrendR2(window, avg, yearlyChange))

	details := []string{
		fmt.Sprintf("Moving average over the last %d records (%d–%d).", len(window), first.Year, last.Year),
		fmt.Sprintf("Window mean %.3f°C, average yearly change %+.4f°C.", avg, yearlyChange),
		fmt.Sprintf("Extrapolated %d years past %d: %.2f°C for %d.", yearsAhead, last.Year, prediction, targetYear),
		fmt.Sprintf("Confidence from local trend fit: %.1f%%.", confidence*100),
	}

	return domain.PredictionOutcome{
		PredictedTemperature: prediction,
		Confidence:           confidence,
		Details:              details,
	}, nil
}

// windowTrendR2 scores how well the implied trend line (window mean plus the
// average yearly change, centered on the window midpoint) explains the actual
// smooth values. Returns 0 for a constant window.
func windowTrendR2(window []domain.HistoricalRecord, avg, yearlyChange float64) float64 {
	mid := float64(len(window)-1) / 2

	var ssTot, ssRes float64
	for i, r := range window {
		dy := r.FiveYearSmooth - avg
		ssTot += dy * dy
		fitted := avg + yearlyChange*(float64(i)-mid)
		res := r.FiveYearSmooth - fitted
		ssRes += res * res
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}
