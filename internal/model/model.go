// Package model implements the three prediction strategies. All share the
// contract Predict(series, targetYear) -> PredictionOutcome; dispatch is
// keyed on domain.ModelKind.
package model

import (
	"fmt"

	"github.com/couchcryptid/climate-forecast/internal/domain"
)

// Predict dispatches to the strategy selected by kind. An empty series yields
// a trivial zero outcome without error; the caller is expected to have
// substituted a fallback series before reaching this point. Degenerate fits
// surface as a domain.ErrDegenerateFit-wrapped error for the simulator to
// recover.
func Predict(kind domain.ModelKind, series []domain.HistoricalRecord, targetYear int) (domain.PredictionOutcome, error) {
	if len(series) == 0 {
		return domain.PredictionOutcome{Details: []string{}}, nil
	}

	switch kind {
	case domain.ModelPolynomial:
		return predictPolynomial(series, targetYear)
	case domain.ModelLinear:
		return predictLinear(series, targetYear)
	case domain.ModelMovingAverage:
		return predictMovingAverage(series, targetYear)
	default:
		return domain.PredictionOutcome{}, fmt.Errorf("unknown model kind %q", kind)
	}
}
