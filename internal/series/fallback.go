// Package series supplies the historical climate series: an embedded
// fallback dataset, a source chain that prefers fresher sources, and a
// background refresher that keeps an in-memory snapshot current.
package series

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/climate-forecast/internal/domain"
)

// philippines.json is the bundled Philippines annual mean temperature series
// (1901-2022) with the centered five-year smooth, generated by cmd/gendata.
//
//go:embed philippines.json
var fallbackJSON []byte

// Fallback returns a fresh copy of the bundled static series. It is the
// source of last resort: the prediction core is guaranteed a non-empty
// series even when both the upstream API and the local store are unavailable.
func Fallback() []domain.HistoricalRecord {
	var records []domain.HistoricalRecord
	if err := json.Unmarshal(fallbackJSON, &records); err != nil {
		// The fixture is compiled into the binary; failing to parse it is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("bundled series fixture is corrupt: %v", err))
	}
	return records
}
