package domain

import "context"

// HistoricalRecord is one year of the climate series. Records arrive ordered
// ascending by year with no duplicates and are never mutated during a run.
type HistoricalRecord struct {
	Year           int     `json:"year"`
	AnnualMean     float64 `json:"annual_mean"`
	FiveYearSmooth float64 `json:"five_year_smooth"`
}

// SeriesSource supplies the ordered historical series. Implementations
// include the upstream climate API, the local store, and the bundled
// fallback dataset; the prediction core never knows which one served it.
type SeriesSource interface {
	FetchSeries(ctx context.Context) ([]HistoricalRecord, error)
}

// AnnualMeanRange returns the min and max annual mean across the series.
// Both are 0 for an empty series.
func AnnualMeanRange(series []HistoricalRecord) (minTemp, maxTemp float64) {
	if len(series) == 0 {
		return 0, 0
	}
	minTemp, maxTemp = series[0].AnnualMean, series[0].AnnualMean
	for _, r := range series[1:] {
		if r.AnnualMean < minTemp {
			minTemp = r.AnnualMean
		}
		if r.AnnualMean > maxTemp {
			maxTemp = r.AnnualMean
		}
	}
	return minTemp, maxTemp
}

// LastRecord returns the final (most recent) record. ok is false for an
// empty series.
func LastRecord(series []HistoricalRecord) (rec HistoricalRecord, ok bool) {
	if len(series) == 0 {
		return HistoricalRecord{}, false
	}
	return series[len(series)-1], true
}
