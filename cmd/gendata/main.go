// Command gendata converts a raw annual-temperature CSV into the JSON series
// fixture the forecast service consumes. It computes the centered five-year
// smooth the models rely on, shrinking the window at the series edges.
//
// Usage:
//
//	go run ./cmd/gendata -csv-in data/raw/philippines.csv -json-out internal/series/philippines.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/couchcryptid/climate-forecast/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvIn := flag.String("csv-in", "", "input CSV with Year and Annual Mean columns")
	jsonOut := flag.String("json-out", "", "output path for the JSON series fixture")
	flag.Parse()

	if *csvIn == "" || *jsonOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv-in, -json-out")
	}

	records, err := loadCSV(*csvIn)
	if err != nil {
		return fmt.Errorf("loading %s: %w", *csvIn, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no data rows in %s", *csvIn)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Year < records[j].Year })
	applySmooth(records)

	if err := writeJSON(*jsonOut, records); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}

	log.Printf("wrote %d records (%d-%d) to %s",
		len(records), records[0].Year, records[len(records)-1].Year, *jsonOut)
	return nil
}

func loadCSV(path string) ([]domain.HistoricalRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows")
	}

	yearCol, meanCol, err := findColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var records []domain.HistoricalRecord
	for i, row := range rows[1:] {
		if yearCol >= len(row) || meanCol >= len(row) {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(row[yearCol]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad year %q", i+2, row[yearCol])
		}
		mean, err := strconv.ParseFloat(strings.TrimSpace(row[meanCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad annual mean %q", i+2, row[meanCol])
		}
		records = append(records, domain.HistoricalRecord{Year: year, AnnualMean: mean})
	}
	return records, nil
}

// findColumns locates the year and mean columns by fuzzy header match, so
// both "Annual Mean" and "annual_mean" style headers work.
func findColumns(header []string) (yearCol, meanCol int, err error) {
	yearCol, meanCol = -1, -1
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		switch {
		case key == "year":
			yearCol = i
		case strings.Contains(key, "mean") || strings.Contains(key, "temperature"):
			if meanCol == -1 {
				meanCol = i
			}
		}
	}
	if yearCol == -1 || meanCol == -1 {
		return 0, 0, fmt.Errorf("header must contain Year and Annual Mean columns, got %v", header)
	}
	return yearCol, meanCol, nil
}

// applySmooth fills FiveYearSmooth with a centered five-year average of the
// annual means. The window shrinks near the edges of the series rather than
// padding, so the first and last records average fewer years.
func applySmooth(records []domain.HistoricalRecord) {
	for i := range records {
		lo := max(0, i-2)
		hi := min(len(records)-1, i+2)

		var sum float64
		for j := lo; j <= hi; j++ {
			sum += records[j].AnnualMean
		}
		records[i].FiveYearSmooth = round2(sum / float64(hi-lo+1))
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
