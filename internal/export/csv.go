// Package export builds the CSV text payload consumed by the download
// surface: the historical table, the prediction trend, and the simulation
// narrative, separated by blank lines.
package export

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/climate-forecast/internal/domain"
	"github.com/couchcryptid/climate-forecast/internal/simulate"
)

// CSV renders the export payload for one completed run. Rejected runs
// produce the historical table followed by the error message in the details
// section, with an empty prediction table.
func CSV(records []domain.HistoricalRecord, result simulate.Result) string {
	var b strings.Builder

	b.WriteString("Year,Annual Mean,5-Year Smooth\n")
	for _, r := range records {
		fmt.Fprintf(&b, "%d,%.2f,%.2f\n", r.Year, r.AnnualMean, r.FiveYearSmooth)
	}

	b.WriteString("\nPrediction Results\n")
	b.WriteString("Year,Predicted Temperature\n")
	for i, year := range result.TrendLine.Years {
		fmt.Fprintf(&b, "%s,%.2f\n", year, result.TrendLine.Temperatures[i])
	}

	b.WriteString("\nSimulation Details\n")
	if result.Rejected() {
		b.WriteString(result.Outcome.ErrorMessage + "\n")
	}
	for _, detail := range result.Outcome.Details {
		b.WriteString(detail + "\n")
	}

	return b.String()
}
