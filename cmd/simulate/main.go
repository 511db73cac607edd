// Command simulate runs a single temperature prediction from the command
// line, without the HTTP service. It reads the historical series from a JSON
// fixture (or falls back to the bundled Philippines dataset), runs the chosen
// model, and prints the outcome. Optionally writes the full CSV export.
//
// Usage:
//
//	go run ./cmd/simulate -model polynomial -year 2050
//	go run ./cmd/simulate -model linear -year 2080 -data data/series.json -csv-out out.csv
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/couchcryptid/climate-forecast/internal/domain"
	"github.com/couchcryptid/climate-forecast/internal/export"
	"github.com/couchcryptid/climate-forecast/internal/observability"
	"github.com/couchcryptid/climate-forecast/internal/series"
	"github.com/couchcryptid/climate-forecast/internal/simulate"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	modelFlag := flag.String("model", "polynomial", "prediction model: polynomial, linear, or moving-average")
	yearFlag := flag.Int("year", 0, "target year (2024-2100)")
	dataFlag := flag.String("data", "", "path to a JSON series fixture (default: bundled dataset)")
	csvOut := flag.String("csv-out", "", "optional path to write the CSV export")
	flag.Parse()

	if *yearFlag == 0 {
		flag.Usage()
		return fmt.Errorf("missing required flag: -year")
	}

	kind, err := domain.ParseModelKind(*modelFlag)
	if err != nil {
		return err
	}

	records, err := loadSeries(*dataFlag)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	simulator := simulate.New(logger, observability.NewMetricsForTesting())
	result := simulator.Run(records, kind, *yearFlag)

	printResult(result, len(records))

	if *csvOut != "" {
		payload := export.CSV(records, result)
		if err := os.WriteFile(*csvOut, []byte(payload), 0o600); err != nil {
			return fmt.Errorf("writing csv export: %w", err)
		}
		log.Printf("wrote CSV export: %s", *csvOut)
	}
	return nil
}

func loadSeries(path string) ([]domain.HistoricalRecord, error) {
	if path == "" {
		return series.Fallback(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading series fixture: %w", err)
	}
	var records []domain.HistoricalRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing series fixture: %w", err)
	}
	return series.Normalize(records), nil
}

func printResult(result simulate.Result, recordCount int) {
	fmt.Printf("Model:       %s\n", result.Model)
	fmt.Printf("Target year: %d\n", result.TargetYear)
	fmt.Printf("Records:     %d\n", recordCount)
	fmt.Println()

	if result.Rejected() {
		fmt.Printf("Rejected: %s\n", result.Outcome.ErrorMessage)
		return
	}

	fmt.Printf("Predicted temperature: %.2f°C\n", result.Outcome.PredictedTemperature)
	fmt.Printf("Confidence:            %.1f%%\n", result.Outcome.Confidence*100)
	if result.Outcome.ModelEquation != "" {
		fmt.Printf("Equation:              %s\n", result.Outcome.ModelEquation)
	}

	if len(result.Outcome.Details) > 0 {
		fmt.Println("\nDetails:")
		for _, d := range result.Outcome.Details {
			fmt.Printf("  - %s\n", d)
		}
	}

	if n := len(result.TrendLine.Years); n > 0 {
		fmt.Println("\nTrend:")
		for i := 0; i < n; i++ {
			fmt.Printf("  %s  %.2f\n", result.TrendLine.Years[i], result.TrendLine.Temperatures[i])
		}
	}
}
