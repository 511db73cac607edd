package domain

import (
	"fmt"
	"strings"
)

// Target year bounds enforced before any model runs.
const (
	MinTargetYear = 2024
	MaxTargetYear = 2100
)

// ModelKind selects which prediction strategy the simulator dispatches to.
type ModelKind string

const (
	ModelPolynomial    ModelKind = "polynomial"
	ModelLinear        ModelKind = "linear"
	ModelMovingAverage ModelKind = "moving-average"
)

// ParseModelKind normalizes a user-supplied model name. It accepts a few
// common spellings for the moving-average model.
func ParseModelKind(s string) (ModelKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "polynomial":
		return ModelPolynomial, nil
	case "linear":
		return ModelLinear, nil
	case "moving-average", "moving_average", "movingaverage":
		return ModelMovingAverage, nil
	default:
		return "", fmt.Errorf("unknown model %q (want polynomial, linear, or moving-average)", s)
	}
}

// PredictionOutcome is the result of one model invocation. A fresh outcome is
// produced per run and never mutated afterwards.
type PredictionOutcome struct {
	PredictedTemperature float64  `json:"predicted_temperature"`
	Confidence           float64  `json:"confidence"`
	ModelEquation        string   `json:"model_equation,omitempty"`
	Details              []string `json:"details"`
	ErrorMessage         string   `json:"error_message,omitempty"`
}

// TrendLine is the interpolated path from the last historical point to the
// target year's prediction. Years and Temperatures are index-aligned and
// always equal length.
type TrendLine struct {
	Years        []string  `json:"years"`
	Temperatures []float64 `json:"temperatures"`
}
