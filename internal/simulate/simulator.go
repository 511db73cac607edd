// Package simulate orchestrates one prediction run: target-year validation,
// model dispatch, the plausibility guard, and trend-line generation. Every
// run returns a well-formed result; faults become user-visible messages,
// never panics.
package simulate

import (
	"log/slog"
	"math"
	"time"

	"github.com/couchcryptid/climate-forecast/internal/domain"
	"github.com/couchcryptid/climate-forecast/internal/model"
	"github.com/couchcryptid/climate-forecast/internal/observability"
	"github.com/couchcryptid/climate-forecast/internal/series"
)

// User-visible rejection messages.
const (
	msgYearTooEarly = "Please select a year from 2024 onwards for predictions."
	msgYearTooLate  = "Please select a year up to 2100 for predictions."
	msgOutOfRange   = "Prediction falls outside realistic range"
	msgCalcError    = "Calculation error occurred"
)

// Result is the assembled output of one simulation run.
type Result struct {
	Model       domain.ModelKind         `json:"model"`
	TargetYear  int                      `json:"target_year"`
	Outcome     domain.PredictionOutcome `json:"outcome"`
	TrendLine   domain.TrendLine         `json:"trend_line"`
	GeneratedAt time.Time                `json:"generated_at"`
}

// Rejected reports whether the run was rejected before producing a usable
// prediction.
func (r Result) Rejected() bool {
	return r.Outcome.ErrorMessage != ""
}

// Simulator runs simulations. It holds no per-run state: each Run is a pure
// function of its inputs plus the calendar year, so identical invocations
// produce identical results.
type Simulator struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Simulator.
func New(logger *slog.Logger, metrics *observability.Metrics) *Simulator {
	return &Simulator{logger: logger, metrics: metrics}
}

// Run executes one simulation: Validating -> Computing -> Validated|Rejected.
// An empty input series is substituted with the bundled fallback dataset so
// no model ever executes on an empty sequence.
func (s *Simulator) Run(seriesData []domain.HistoricalRecord, kind domain.ModelKind, targetYear int) Result {
	start := time.Now()
	result := s.run(seriesData, kind, targetYear)
	s.metrics.SimulationDuration.Observe(time.Since(start).Seconds())
	return result
}

func (s *Simulator) run(seriesData []domain.HistoricalRecord, kind domain.ModelKind, targetYear int) Result {
	// Validating.
	if targetYear < domain.MinTargetYear {
		return s.rejected(kind, targetYear, msgYearTooEarly, "rejected_year")
	}
	if targetYear > domain.MaxTargetYear {
		return s.rejected(kind, targetYear, msgYearTooLate, "rejected_year")
	}

	if len(seriesData) == 0 {
		s.logger.Warn("empty series handed to simulator, using bundled fallback")
		seriesData = series.Fallback()
	}

	// Computing.
	outcome, err := model.Predict(kind, seriesData, targetYear)
	if err != nil {
		s.logger.Warn("model computation failed", "model", string(kind), "target_year", targetYear, "error", err)
		return s.rejected(kind, targetYear, msgCalcError, "rejected_fault")
	}
	if math.IsNaN(outcome.PredictedTemperature) || math.IsInf(outcome.PredictedTemperature, 0) {
		s.logger.Warn("model produced a non-finite prediction", "model", string(kind), "target_year", targetYear)
		return s.rejected(kind, targetYear, msgCalcError, "rejected_fault")
	}

	if err := checkPlausibility(outcome.PredictedTemperature, seriesData, targetYear); err != nil {
		s.logger.Info("prediction rejected by plausibility guard",
			"model", string(kind), "target_year", targetYear, "error", err)
		return s.rejected(kind, targetYear, msgOutOfRange, "rejected_range")
	}

	// Validated: assemble the trend line and finish.
	s.metrics.SimulationsTotal.WithLabelValues(string(kind), "accepted").Inc()
	result := Result{
		Model:       kind,
		TargetYear:  targetYear,
		Outcome:     outcome,
		TrendLine:   trendLine(kind, seriesData, targetYear, outcome.PredictedTemperature),
		GeneratedAt: time.Now().UTC(),
	}

	s.logger.Info("simulation completed",
		"model", string(kind),
		"target_year", targetYear,
		"prediction", outcome.PredictedTemperature,
		"confidence", outcome.Confidence,
	)
	return result
}

// rejected builds the zero-prediction result for a rejected run: error
// message set, empty trend line, no further computation.
func (s *Simulator) rejected(kind domain.ModelKind, targetYear int, message, metricOutcome string) Result {
	s.metrics.SimulationsTotal.WithLabelValues(string(kind), metricOutcome).Inc()
	return Result{
		Model:      kind,
		TargetYear: targetYear,
		Outcome: domain.PredictionOutcome{
			Details:      []string{},
			ErrorMessage: message,
		},
		TrendLine:   domain.TrendLine{Years: []string{}, Temperatures: []float64{}},
		GeneratedAt: time.Now().UTC(),
	}
}
