// Package render assembles chart-consumer payloads: a category axis of year
// labels and index-aligned series with nullable points.
package render

import (
	"strconv"

	"github.com/couchcryptid/climate-forecast/internal/domain"
)

// Series is one plottable line. Points are nullable so a series can cover
// only part of the category axis.
type Series struct {
	Name   string     `json:"name"`
	Dashed bool       `json:"dashed,omitempty"`
	Points []*float64 `json:"points"`
}

// ChartData is the shape the charting layer consumes.
type ChartData struct {
	Categories []string `json:"categories"`
	Series     []Series `json:"series"`
}

// Chart builds the payload for the given model view: the polynomial view
// plots raw annual means, the linear and moving-average views plot the
// five-year smooth the models actually fit. When a non-empty trend line is
// supplied, a dashed "Prediction Trend" series is appended, null-padded up
// to the junction point (the last historical year).
func Chart(records []domain.HistoricalRecord, kind domain.ModelKind, trend domain.TrendLine) ChartData {
	categories := make([]string, 0, len(records)+len(trend.Years))
	for _, r := range records {
		categories = append(categories, strconv.Itoa(r.Year))
	}

	historical := Series{
		Name:   historicalSeriesName(kind),
		Points: make([]*float64, 0, len(records)),
	}
	for _, r := range records {
		historical.Points = append(historical.Points, ptr(historicalValue(kind, r)))
	}

	chart := ChartData{Categories: categories, Series: []Series{historical}}
	if len(trend.Years) == 0 || len(records) == 0 {
		return chart
	}

	// The trend line's first point repeats the last historical year, so the
	// combined axis appends trend years from index 1.
	chart.Categories = append(chart.Categories, trend.Years[1:]...)

	prediction := Series{
		Name:   "Prediction Trend",
		Dashed: true,
		Points: make([]*float64, len(chart.Categories)),
	}
	junction := len(records) - 1
	prediction.Points[junction] = ptr(trend.Temperatures[0])
	for i := 1; i < len(trend.Temperatures); i++ {
		prediction.Points[junction+i] = ptr(trend.Temperatures[i])
	}

	// Extend the historical series with nulls so both series share the axis.
	for range trend.Years[1:] {
		historical.Points = append(historical.Points, nil)
	}
	chart.Series[0] = Series{Name: historical.Name, Points: historical.Points}
	chart.Series = append(chart.Series, prediction)
	return chart
}

func historicalSeriesName(kind domain.ModelKind) string {
	if kind == domain.ModelPolynomial {
		return "Annual Mean"
	}
	return "5-Year Smooth"
}

func historicalValue(kind domain.ModelKind, r domain.HistoricalRecord) float64 {
	if kind == domain.ModelPolynomial {
		return r.AnnualMean
	}
	return r.FiveYearSmooth
}

func ptr(v float64) *float64 { return &v }
